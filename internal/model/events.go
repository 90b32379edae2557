package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventAnnouncementPosted  EventType = "announcement_posted"
	EventAnnouncementUpdated EventType = "announcement_updated"
)

// Announcement is the rendered board content delivered to a conversation
type Announcement struct {
	Text      string `json:"text"`
	ImagePath string `json:"image_path,omitempty"`
}

// Event is the payload streamed to conversation subscribers
type Event struct {
	Type         EventType    `json:"type"`
	Timestamp    time.Time    `json:"timestamp"`
	Location     Location     `json:"location"`
	Announcement Announcement `json:"announcement"`
}
