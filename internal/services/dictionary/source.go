package dictionary

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/hangbot/internal/model"
)

// WordSource validates candidate solutions and supplies definitions
type WordSource interface {
	Lookup(ctx context.Context, word string) (model.WordInfo, error)
}

var (
	_ WordSource = (*Service)(nil)
	_ WordSource = (*RemoteClient)(nil)
	_ WordSource = (*FallbackSource)(nil)
)

// FallbackSource asks the primary source first and the secondary when the
// primary errors. A clean not-found from the primary is final.
type FallbackSource struct {
	primary   WordSource
	secondary WordSource
	logger    *slog.Logger
}

// NewFallbackSource chains two word sources
func NewFallbackSource(primary, secondary WordSource, logger *slog.Logger) *FallbackSource {
	return &FallbackSource{
		primary:   primary,
		secondary: secondary,
		logger:    logger.With(slog.String("component", "dictionary")),
	}
}

// Lookup implements WordSource
func (f *FallbackSource) Lookup(ctx context.Context, word string) (model.WordInfo, error) {
	info, err := f.primary.Lookup(ctx, word)
	if err == nil {
		return info, nil
	}
	if errors.Is(err, context.Canceled) {
		return model.WordInfo{}, err
	}
	f.logger.Warn("primary dictionary lookup failed, using fallback",
		slog.String("word", word),
		slog.String("error", err.Error()),
	)
	return f.secondary.Lookup(ctx, word)
}
