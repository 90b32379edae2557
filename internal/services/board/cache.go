package board

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"log/slog"
	"strconv"

	"golang.org/x/crypto/blake2b"

	"github.com/mcoot/hangbot/internal/model"
)

// ContentKey hashes the inputs of a render so identical boards share a key.
// Fields are length prefixed so no two field lists hash the same input.
func ContentKey(kind string, fields ...string) string {
	var buf bytes.Buffer
	for _, f := range append([]string{kind}, fields...) {
		buf.WriteString(strconv.Itoa(len(f)))
		buf.WriteByte(':')
		buf.WriteString(f)
	}

	sum := blake2b.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])
}

// cached returns a stored render for key, or renders and stores it.
// Storage failures are logged and the fresh render is still returned.
func (s *Service) cached(ctx context.Context, key string, render func() ([]byte, error)) ([]byte, error) {
	data, err := s.storage.GetRender(ctx, key)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, model.ErrRenderNotFound) {
		s.logger.Warn("failed to read cached render",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}

	data, err = render()
	if err != nil {
		return nil, err
	}

	if err := s.storage.SaveRender(ctx, key, data); err != nil {
		s.logger.Warn("failed to cache render",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	return data, nil
}
