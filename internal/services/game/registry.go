package game

import (
	"context"
	"sync"

	"github.com/mcoot/hangbot/internal/dependencies/clock"
	"github.com/mcoot/hangbot/internal/model"
)

// Registry maps each conversation to its current session
type Registry struct {
	stats StatsRecorder
	clock clock.Clock

	mu       sync.RWMutex
	sessions map[model.ConversationKey]*Session
}

// NewRegistry creates an empty registry
func NewRegistry(stats StatsRecorder, clock clock.Clock) *Registry {
	return &Registry{
		stats:    stats,
		clock:    clock,
		sessions: make(map[model.ConversationKey]*Session),
	}
}

// CreateSession creates a session for key, replacing any previous one
func (r *Registry) CreateSession(
	ctx context.Context,
	key model.ConversationKey,
	variant model.Variant,
	solution string,
	originator model.PlayerID,
	definition string,
) *Session {
	session := NewSession(ctx, variant, solution, originator, definition, r.stats, r.clock.Now())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[key] = session
	return session
}

// GetSession returns the session for key, if one was ever created
func (r *Registry) GetSession(key model.ConversationKey) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[key]
	return session, ok
}

// Count returns the number of conversations with a session
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
