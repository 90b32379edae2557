package model

// WordInfo is the result of a dictionary lookup
type WordInfo struct {
	Word        string   `json:"word"`
	Found       bool     `json:"found"`
	Definition  string   `json:"definition,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"` // Near matches when not found
}
