package announce

import (
	"context"

	"github.com/google/uuid"

	"github.com/mcoot/hangbot/internal/dependencies/clock"
	"github.com/mcoot/hangbot/internal/model"
)

// EventPublisher pushes an event to a conversation's subscribers
type EventPublisher interface {
	BroadcastEvent(event model.Event) error
}

// StreamChannel delivers announcements as events on the conversation stream
type StreamChannel struct {
	publisher EventPublisher
	clock     clock.Clock
}

var _ Channel = (*StreamChannel)(nil)

// NewStreamChannel creates a channel publishing through publisher
func NewStreamChannel(publisher EventPublisher, clock clock.Clock) *StreamChannel {
	return &StreamChannel{
		publisher: publisher,
		clock:     clock,
	}
}

// Post implements Channel; every post gets a fresh message id
func (c *StreamChannel) Post(ctx context.Context, key model.ConversationKey, a model.Announcement) (model.Location, error) {
	loc := model.Location{Key: key, MessageID: uuid.NewString()}
	err := c.publisher.BroadcastEvent(model.Event{
		Type:         model.EventAnnouncementPosted,
		Timestamp:    c.clock.Now(),
		Location:     loc,
		Announcement: a,
	})
	if err != nil {
		return model.Location{}, err
	}
	return loc, nil
}

// Update implements Channel
func (c *StreamChannel) Update(ctx context.Context, loc model.Location, a model.Announcement) error {
	return c.publisher.BroadcastEvent(model.Event{
		Type:         model.EventAnnouncementUpdated,
		Timestamp:    c.clock.Now(),
		Location:     loc,
		Announcement: a,
	})
}
