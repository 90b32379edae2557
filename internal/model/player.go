package model

// PlayerID identifies a chat participant as supplied by the chat platform
type PlayerID string

// ConversationKey identifies the channel or thread a game is played in
type ConversationKey string

// Location is where a session's announcement message was posted
type Location struct {
	Key       ConversationKey `json:"key"`
	MessageID string          `json:"message_id"`
}
