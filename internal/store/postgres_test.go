package store

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validateRow is the shape gate for listings; these rows never see a real
// database.
func TestValidateRow(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	s := NewPostgresStore(nil, logger)

	t.Run("well-formed row", func(t *testing.T) {
		data := []byte(`{
			"id": "1700000000000",
			"clientInfo": {"clientLocation": "Pier 4", "clientCode": "7"},
			"timestamp": 1700000000000,
			"owner": "Dana"
		}`)
		summary, ok := s.validateRow("1700000000000", data)
		require.True(t, ok)
		assert.Equal(t, "1700000000000", summary.ID)
		assert.Equal(t, "Pier 4", summary.ClientInfo.Location)
		assert.Equal(t, int64(1700000000000), summary.Timestamp)
		assert.Equal(t, "Dana", summary.Owner)
	})

	tests := []struct {
		name string
		data string
	}{
		{"unparseable document", `{not json`},
		{"missing clientInfo", `{"id": "1", "timestamp": 5}`},
		{"null clientInfo", `{"id": "1", "clientInfo": null, "timestamp": 5}`},
		{"non-numeric timestamp", `{"id": "1", "clientInfo": {}, "timestamp": "yesterday"}`},
		{"missing timestamp", `{"id": "1", "clientInfo": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := s.validateRow("1", []byte(tt.data))
			assert.False(t, ok, "malformed row must be skipped, not surfaced")
		})
	}
}
