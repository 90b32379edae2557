package mocks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mcoot/hangbot/internal/model"
)

// ErrMockDelivery is returned by MockChannel while failures are queued
var ErrMockDelivery = errors.New("mock delivery failure")

// MockChannel records announcements in memory instead of delivering them
type MockChannel struct {
	mu sync.Mutex

	Posts   []MockPost
	Updates []MockUpdate

	// FailPosts and FailUpdates are the number of upcoming calls that fail
	FailPosts   int
	FailUpdates int

	// UpdateEntered, when set, receives a value as each Update begins.
	// UpdateGate, when set, holds each Update until the gate yields a value
	// or is closed.
	UpdateEntered chan struct{}
	UpdateGate    chan struct{}

	nextID int
}

// MockPost is a recorded Post call
type MockPost struct {
	Key          model.ConversationKey
	Announcement model.Announcement
}

// MockUpdate is a recorded Update call
type MockUpdate struct {
	Location     model.Location
	Announcement model.Announcement
}

// NewMockChannel creates an empty MockChannel
func NewMockChannel() *MockChannel {
	return &MockChannel{}
}

// Post records the announcement and returns a sequential message id
func (c *MockChannel) Post(ctx context.Context, key model.ConversationKey, a model.Announcement) (model.Location, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.FailPosts > 0 {
		c.FailPosts--
		return model.Location{}, ErrMockDelivery
	}

	c.nextID++
	c.Posts = append(c.Posts, MockPost{Key: key, Announcement: a})
	return model.Location{Key: key, MessageID: fmt.Sprintf("msg-%d", c.nextID)}, nil
}

// Update records the edit
func (c *MockChannel) Update(ctx context.Context, loc model.Location, a model.Announcement) error {
	c.mu.Lock()
	entered, gate := c.UpdateEntered, c.UpdateGate
	c.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.FailUpdates > 0 {
		c.FailUpdates--
		return ErrMockDelivery
	}

	c.Updates = append(c.Updates, MockUpdate{Location: loc, Announcement: a})
	return nil
}

// LastUpdate returns the most recent update, or false if there were none
func (c *MockChannel) LastUpdate() (MockUpdate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Updates) == 0 {
		return MockUpdate{}, false
	}
	return c.Updates[len(c.Updates)-1], true
}
