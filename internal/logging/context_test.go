package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/Amund211/bosslevels/internal/logging"
	"github.com/stretchr/testify/require"
)

type logRecorder struct {
	buf bytes.Buffer
}

func (r *logRecorder) logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(&r.buf, nil))
}

// entries returns every logged line without the time field
func (r *logRecorder) entries(t *testing.T) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for line := range strings.Lines(r.buf.String()) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		require.Contains(t, entry, "time")
		delete(entry, "time")
		entries = append(entries, entry)
	}
	return entries
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	t.Run("stored logger", func(t *testing.T) {
		t.Parallel()

		logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
		ctx := logging.AddToContext(t.Context(), logger)

		require.Same(t, logger, logging.FromContext(ctx))
	})

	t.Run("fallback is shared", func(t *testing.T) {
		t.Parallel()

		first := logging.FromContext(t.Context())
		require.NotNil(t, first)
		require.Same(t, first, logging.FromContext(t.Context()))
	})

	t.Run("nil logger falls back", func(t *testing.T) {
		t.Parallel()

		ctx := logging.AddToContext(t.Context(), nil)
		require.NotNil(t, logging.FromContext(ctx))
	})
}

func TestAddMetaToContext(t *testing.T) {
	t.Parallel()

	recorder := &logRecorder{}
	ctx := logging.AddToContext(t.Context(), recorder.logger().With(slog.String("instanceID", "abc")))

	logging.FromContext(ctx).Info("start")

	ctx = logging.AddBossToContext(ctx, "zulrah")
	logging.FromContext(ctx).Info("applying")

	ctx = logging.AddMetaToContext(ctx, slog.Int64("count", 12), slog.String("boss", "vorkath"))
	logging.FromContext(ctx).Info("applied")

	require.Equal(t, []map[string]any{
		{"level": "INFO", "msg": "start", "instanceID": "abc"},
		{"level": "INFO", "msg": "applying", "instanceID": "abc", "boss": "zulrah"},
		{"level": "INFO", "msg": "applied", "instanceID": "abc", "boss": "vorkath", "count": float64(12)},
	}, recorder.entries(t))
}
