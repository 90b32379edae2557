package announce

import (
	"context"

	"github.com/mcoot/hangbot/internal/model"
)

// Channel delivers board announcements to a conversation
type Channel interface {
	// Post publishes a new announcement and returns where it landed
	Post(ctx context.Context, key model.ConversationKey, a model.Announcement) (model.Location, error)
	// Update edits a previously posted announcement in place
	Update(ctx context.Context, loc model.Location, a model.Announcement) error
}
