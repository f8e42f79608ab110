package storage

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) *LocalStorage {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	s, err := NewLocalStorage(LocalConfig{
		BasePath: t.TempDir(),
		BaseURL:  "http://localhost:8080/files",
	}, logger)
	require.NoError(t, err)
	return s
}

func TestLocalStorage_PutAndURL(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	key := "inspections/1/reports/a.txt"
	require.NoError(t, s.Put(ctx, key, strings.NewReader("report body"), "text/plain"))

	data, err := os.ReadFile(filepath.Join(s.basePath, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "report body", string(data))

	url, err := s.URL(ctx, key, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/"+key, url)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	for _, key := range []string{"", "../etc/passwd", "a/../../b"} {
		err := s.Put(ctx, key, strings.NewReader("x"), "text/plain")
		require.Error(t, err, "key %q", key)
		assert.True(t, errors.Is(err, ErrInvalidKey))
	}
}

func TestLocalStorage_DeleteIdempotent(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	key := "inspections/1/reports/b.txt"
	require.NoError(t, s.Put(ctx, key, strings.NewReader("x"), "text/plain"))
	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key), "deleting an absent key is not an error")
}

func TestReportKey(t *testing.T) {
	key := ReportKey("1700000000000", "txt")
	assert.Equal(t, "inspections/1700000000000/report.txt", key)
	assert.Equal(t, key, ReportKey("1700000000000", "txt"),
		"key is deterministic so cleanup can find it")
	assert.NotEqual(t, key, ReportKey("1700000000001", "txt"))
}
