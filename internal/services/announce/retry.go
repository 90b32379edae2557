package announce

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/mcoot/hangbot/internal/model"
)

// RetryConfig bounds delivery attempts
type RetryConfig struct {
	MaxAttempts int
	Interval    time.Duration
}

// DefaultRetryConfig is five attempts ten seconds apart
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 5,
		Interval:    10 * time.Second,
	}
}

// RetryingChannel retries failed deliveries on a constant backoff
type RetryingChannel struct {
	next   Channel
	config RetryConfig
	logger *slog.Logger
}

var _ Channel = (*RetryingChannel)(nil)

// NewRetryingChannel wraps next with bounded retries
func NewRetryingChannel(next Channel, config RetryConfig, logger *slog.Logger) *RetryingChannel {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	return &RetryingChannel{
		next:   next,
		config: config,
		logger: logger.With(slog.String("component", "announce")),
	}
}

// Post implements Channel
func (c *RetryingChannel) Post(ctx context.Context, key model.ConversationKey, a model.Announcement) (model.Location, error) {
	var loc model.Location
	err := c.retry(ctx, "post", string(key), func() error {
		var err error
		loc, err = c.next.Post(ctx, key, a)
		return err
	})
	return loc, err
}

// Update implements Channel
func (c *RetryingChannel) Update(ctx context.Context, loc model.Location, a model.Announcement) error {
	return c.retry(ctx, "update", string(loc.Key), func() error {
		return c.next.Update(ctx, loc, a)
	})
}

func (c *RetryingChannel) retry(ctx context.Context, op, key string, fn func() error) error {
	attempt := 0
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.config.Interval), uint64(c.config.MaxAttempts-1)),
		ctx,
	)

	err := backoff.Retry(func() error {
		attempt++
		return fn()
	}, policy)
	if err != nil {
		c.logger.Error("announcement delivery failed",
			slog.String("op", op),
			slog.String("conversation", key),
			slog.Int("attempts", attempt),
			slog.String("error", err.Error()),
		)
		return err
	}
	if attempt > 1 {
		c.logger.Info("announcement delivered after retry",
			slog.String("op", op),
			slog.String("conversation", key),
			slog.Int("attempts", attempt),
		)
	}
	return nil
}
