package request

// StartGameRequest is the request body for starting a game
type StartGameRequest struct {
	Variant string `json:"variant,omitempty"`
	Word    string `json:"word,omitempty"`
}

// GuessRequest is the request body for a guess
type GuessRequest struct {
	Guess string `json:"guess"`
}

// MessageRequest is a free-text chat message that may contain a guess
type MessageRequest struct {
	Text string `json:"text"`
}
