package observabilitytest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/require"

	"github.com/wandb/spectra/internal/observability"
	"github.com/wandb/spectra/internal/sentry_ext"
)

// NewTestLogger returns a logger whose output goes to the test log.
func NewTestLogger(t *testing.T) *observability.CoreLogger {
	t.Helper()
	return observability.NewCoreLogger(
		slog.New(slog.NewJSONHandler(t.Output(), &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})),
		nil,
	)
}

// NewRecordingTestLogger is like NewTestLogger but also records messages
// into the returned buffer.
func NewRecordingTestLogger(t *testing.T) (
	*observability.CoreLogger,
	*bytes.Buffer,
) {
	t.Helper()

	recorded := &bytes.Buffer{}
	return observability.NewCoreLogger(
		slog.New(slog.NewJSONHandler(
			io.MultiWriter(t.Output(), recorded),
			&slog.HandlerOptions{Level: slog.LevelDebug},
		)),
		nil,
	), recorded
}

// NewSentryTestLogger is like NewRecordingTestLogger but also reports to
// a mock Sentry transport.
func NewSentryTestLogger(t *testing.T) (
	*observability.CoreLogger,
	*bytes.Buffer,
	*sentry.MockTransport,
) {
	t.Helper()

	recorded := &bytes.Buffer{}
	transport := &sentry.MockTransport{}
	client := sentry_ext.New(sentry_ext.Params{
		DSN:       "https://key@sentry.invalid/1",
		Transport: transport,
	})
	require.NotNil(t, client)

	return observability.NewCoreLogger(
		slog.New(slog.NewJSONHandler(
			io.MultiWriter(t.Output(), recorded),
			&slog.HandlerOptions{Level: slog.LevelDebug},
		)),
		&observability.CoreLoggerParams{Sentry: client},
	), recorded, transport
}

// ExtractLogs parses the records captured by a recording logger.
//
// The "time" key is dropped; "level" and "msg" are always present.
func ExtractLogs(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	records := make([]map[string]any, 0)
	for line := range bytes.Lines(buf.Bytes()) {
		var record map[string]any
		require.NoError(t, json.Unmarshal(line, &record))
		delete(record, "time")
		records = append(records, record)
	}
	return records
}
