package observability_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/spectra/internal/observability"
	"github.com/wandb/spectra/internal/observabilitytest"
	"github.com/wandb/spectra/internal/sentry_ext"
)

func TestNewTags(t *testing.T) {
	testCases := []struct {
		name   string
		input  []any
		expect observability.Tags
	}{
		{
			name:   "from slog.Attr",
			input:  []any{slog.Int64("spectrum", 3)},
			expect: observability.Tags{"spectrum": "3"},
		},
		{
			name:   "from key and value",
			input:  []any{"point", 2},
			expect: observability.Tags{"point": "2"},
		},
		{
			name:   "incomplete pair is dropped",
			input:  []any{slog.String("state", "idle"), "dangling"},
			expect: observability.Tags{"state": "idle"},
		},
		{
			name:   "unsupported types are skipped",
			input:  []any{map[string]string{"x": "y"}, "k", "v"},
			expect: observability.Tags{"k": "v"},
		},
		{
			name:   "empty",
			input:  []any{},
			expect: observability.Tags{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, observability.NewTags(tc.input...))
		})
	}
}

func TestNewNoOpLogger(t *testing.T) {
	logger := observability.NewNoOpLogger()

	require.NotNil(t, logger.Logger)

	// Without Sentry, capturing only logs.
	logger.CaptureError(errors.New("boom"))
	logger.CaptureWarn("warn")
	logger.CaptureFatal(errors.New("fatal"))
	assert.PanicsWithValue(t, "boom", func() {
		defer logger.Reraise()
		panic("boom")
	})
}

func TestCaptureError_LogsMessageAndArgs(t *testing.T) {
	logger, buf := observabilitytest.NewRecordingTestLogger(t)

	logger.CaptureError(errors.New("controller: drag failed"), "dataset", 1)

	logs := observabilitytest.ExtractLogs(t, buf)
	require.Len(t, logs, 1)
	assert.Equal(t, "ERROR", logs[0]["level"])
	assert.Equal(t, "controller: drag failed", logs[0]["msg"])
	assert.EqualValues(t, 1, logs[0]["dataset"])
}

func TestCaptureError_SendsToSentryOnce(t *testing.T) {
	logger, _, transport := observabilitytest.NewSentryTestLogger(t)

	logger.CaptureError(errors.New("repeated"))
	logger.CaptureError(errors.New("repeated"))
	logger.CaptureError(errors.New("different"))

	assert.Len(t, transport.Events(), 2)
}

func TestWith_KeepsSentry(t *testing.T) {
	logger, _, transport := observabilitytest.NewSentryTestLogger(t)

	logger.With("session", "a").CaptureWarn("hover on stale point")

	events := transport.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "hover on stale point", events[0].Message)
}

func TestBaseTagsWinOverArgs(t *testing.T) {
	transport := &sentry.MockTransport{}
	buf := &bytes.Buffer{}
	logger := observability.NewCoreLogger(
		slog.New(slog.NewJSONHandler(buf, nil)),
		&observability.CoreLoggerParams{
			Sentry: sentry_ext.New(sentry_ext.Params{
				DSN:       "https://key@sentry.invalid/1",
				Transport: transport,
			}),
			Tags: observability.Tags{"version": "1.2.3"},
		},
	)

	logger.CaptureWarn("config: unreadable", "version", "other", "path", "/x")

	events := transport.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "1.2.3", events[0].Tags["version"])
	assert.Equal(t, "/x", events[0].Tags["path"])
	logs := observabilitytest.ExtractLogs(t, buf)
	require.Len(t, logs, 1)
	assert.Equal(t, "1.2.3", logs[0]["version"])
}

func TestCaptureFatal_NotRateLimited(t *testing.T) {
	logger, buf, transport := observabilitytest.NewSentryTestLogger(t)

	logger.CaptureFatal(errors.New("spectra: terminal lost"))
	logger.CaptureFatal(errors.New("spectra: terminal lost"))

	assert.Len(t, transport.Events(), 2)
	logs := observabilitytest.ExtractLogs(t, buf)
	require.Len(t, logs, 2)
	assert.Equal(t, "ERROR+4", logs[0]["level"])
	assert.Equal(t, "spectra: terminal lost", logs[0]["msg"])
}

func TestReraise_ReportsAndPanicsAgain(t *testing.T) {
	logger, buf, transport := observabilitytest.NewSentryTestLogger(t)

	assert.PanicsWithValue(t, "render failed", func() {
		defer logger.Reraise("phase", "run")
		panic("render failed")
	})

	events := transport.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "run", events[0].Tags["phase"])
	logs := observabilitytest.ExtractLogs(t, buf)
	require.Len(t, logs, 1)
	assert.Equal(t, "panic", logs[0]["msg"])
	assert.Equal(t, "render failed", logs[0]["error"])
}

func TestReraise_NoPanic(t *testing.T) {
	logger, _, transport := observabilitytest.NewSentryTestLogger(t)

	assert.NotPanics(t, func() {
		defer logger.Reraise()
	})
	assert.Empty(t, transport.Events())
}
