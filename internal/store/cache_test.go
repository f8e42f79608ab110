package store

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/DukeRupert/vigil/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) *SnapshotCache {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	cache, err := NewSnapshotCache(filepath.Join(t.TempDir(), "cache.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestSnapshotCache_EmptyReadsNil(t *testing.T) {
	cache := newCache(t)
	assert.Nil(t, cache.ReadAll(context.Background()))
}

func TestSnapshotCache_WriteReadRoundTrip(t *testing.T) {
	cache := newCache(t)
	ctx := context.Background()

	docs := []domain.Inspection{
		{ID: "1", Owner: "Dana", ClientInfo: domain.ClientInfo{Location: "Pier 4", Code: "7"}},
		{ID: "2", Owner: "Miguel"},
	}
	require.NoError(t, cache.WriteAll(ctx, docs))

	got := cache.ReadAll(ctx)
	require.Len(t, got, 2)
	assert.Equal(t, docs, got)
}

func TestSnapshotCache_RewriteIsWholesale(t *testing.T) {
	cache := newCache(t)
	ctx := context.Background()

	require.NoError(t, cache.WriteAll(ctx, []domain.Inspection{{ID: "1"}, {ID: "2"}}))
	require.NoError(t, cache.WriteAll(ctx, []domain.Inspection{{ID: "3"}}))

	got := cache.ReadAll(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)
}

func TestSnapshotCache_WriteNilClearsSnapshot(t *testing.T) {
	cache := newCache(t)
	ctx := context.Background()

	require.NoError(t, cache.WriteAll(ctx, []domain.Inspection{{ID: "1"}}))
	require.NoError(t, cache.WriteAll(ctx, nil))

	assert.Empty(t, cache.ReadAll(ctx))
}

func TestSnapshotCache_SurvivesReopen(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	first, err := NewSnapshotCache(path, logger)
	require.NoError(t, err)
	require.NoError(t, first.WriteAll(ctx, []domain.Inspection{{ID: "persisted"}}))
	require.NoError(t, first.Close())

	second, err := NewSnapshotCache(path, logger)
	require.NoError(t, err)
	defer second.Close()

	got := second.ReadAll(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "persisted", got[0].ID)
}
