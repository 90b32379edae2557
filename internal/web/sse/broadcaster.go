package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/hangbot/internal/model"
)

// Broadcaster publishes conversation events to SSE clients
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// BroadcastEvent sends an event to everyone watching its conversation.
// Conversations nobody is watching are skipped.
func (b *Broadcaster) BroadcastEvent(event model.Event) error {
	hub := b.hubManager.GetHub(event.Location.Key)
	if hub == nil {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("sse failed to encode event",
			slog.String("conversation", string(event.Location.Key)),
			slog.Any("error", err))
		return err
	}

	hub.BroadcastEvent(string(event.Type), event.Location.MessageID, string(data))
	return nil
}
