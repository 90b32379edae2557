package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/hangbot/internal/dependencies/mocks"
	"github.com/mcoot/hangbot/internal/model"
)

func TestRegistryCreateAndGet(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	registry := NewRegistry(&recordingStats{}, clk)

	_, ok := registry.GetSession("C1")
	assert.False(t, ok)

	created := registry.CreateSession(context.Background(), "C1", model.VariantHangman, "crane", "alice", "")
	got, ok := registry.GetSession("C1")
	require.True(t, ok)
	assert.Same(t, created, got)
	assert.Equal(t, clk.Now(), got.CreatedAt())
}

func TestRegistryCreateOverwrites(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	registry := NewRegistry(&recordingStats{}, clk)

	first := registry.CreateSession(context.Background(), "C1", model.VariantHangman, "crane", "alice", "")
	clk.Advance(time.Minute)
	second := registry.CreateSession(context.Background(), "C1", model.VariantWordle, "slate", "bob", "")

	got, _ := registry.GetSession("C1")
	assert.Same(t, second, got)
	assert.NotSame(t, first, got)
	assert.True(t, got.CreatedAt().After(first.CreatedAt()))
	assert.Equal(t, 1, registry.Count())
}

func TestRegistryKeysAreIndependent(t *testing.T) {
	registry := NewRegistry(&recordingStats{}, mocks.NewMockClock(time.Now()))

	registry.CreateSession(context.Background(), "C1", model.VariantHangman, "crane", "alice", "")
	registry.CreateSession(context.Background(), "C2", model.VariantHangman, "slate", "alice", "")

	one, _ := registry.GetSession("C1")
	two, _ := registry.GetSession("C2")
	assert.Equal(t, "CRANE", one.Solution())
	assert.Equal(t, "SLATE", two.Solution())
}
