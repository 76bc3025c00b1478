package observability

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"time"

	"github.com/wandb/spectra/internal/sentry_ext"
)

// LevelFatal sits above slog.LevelError.
const LevelFatal = slog.Level(12)

const (
	captureCacheSize = 100
	captureInterval  = 5 * time.Minute
)

// Tags label Sentry events.
type Tags map[string]string

// NewTags collects tags from slog.Attr values and key-value pairs,
// skipping anything else and a trailing key with no value.
func NewTags(args ...any) Tags {
	tags := Tags{}
	for i := 0; i < len(args); i++ {
		switch x := args[i].(type) {
		case slog.Attr:
			tags[x.Key] = x.Value.String()
		case string:
			if i+1 >= len(args) {
				return tags
			}
			i++
			tags[x] = slog.AnyValue(args[i]).String()
		}
	}
	return tags
}

type CoreLoggerParams struct {
	Sentry *sentry_ext.Client

	// Tags go on every record and every Sentry event.
	Tags Tags

	// RateLimiter replaces the default per-message limiter.
	RateLimiter *CaptureRateLimiter
}

// CoreLogger writes structured logs and forwards errors and warnings
// to Sentry.
//
// A CoreLogger without a Sentry client only logs.
type CoreLogger struct {
	*slog.Logger

	tags    Tags
	sentry  *sentry_ext.Client
	limiter *CaptureRateLimiter
}

func NewCoreLogger(logger *slog.Logger, params *CoreLoggerParams) *CoreLogger {
	if params == nil {
		params = &CoreLoggerParams{}
	}

	cl := &CoreLogger{
		tags:    maps.Clone(params.Tags),
		sentry:  params.Sentry,
		limiter: params.RateLimiter,
	}
	if cl.tags == nil {
		cl.tags = Tags{}
	}

	attrs := make([]any, 0, len(cl.tags))
	for k, v := range cl.tags {
		attrs = append(attrs, slog.String(k, v))
	}
	cl.Logger = logger.With(attrs...)

	if cl.limiter == nil && cl.sentry != nil {
		limiter, err := NewCaptureRateLimiter(captureCacheSize, captureInterval)
		if err != nil {
			cl.Error("observability: no capture rate limit", "error", err)
		}
		cl.limiter = limiter
	}
	return cl
}

// With is like slog.Logger.With but keeps the Sentry client.
func (cl *CoreLogger) With(args ...any) *CoreLogger {
	derived := *cl
	derived.Logger = cl.Logger.With(args...)
	return &derived
}

// eventTags are the tags for an event logged with args.
//
// The logger's own tags take precedence.
func (cl *CoreLogger) eventTags(args []any) Tags {
	tags := NewTags(args...)
	maps.Copy(tags, cl.tags)
	return tags
}

// CaptureError logs err and reports it unless the same message was
// reported recently.
func (cl *CoreLogger) CaptureError(err error, args ...any) {
	msg := err.Error()
	cl.Error(msg, args...)
	if cl.sentry != nil && cl.limiter.AllowCapture(msg) {
		cl.sentry.CaptureException(err, cl.eventTags(args))
	}
}

// CaptureWarn is CaptureError for conditions that are not errors.
func (cl *CoreLogger) CaptureWarn(msg string, args ...any) {
	cl.Warn(msg, args...)
	if cl.sentry != nil && cl.limiter.AllowCapture(msg) {
		cl.sentry.CaptureMessage(msg, cl.eventTags(args))
	}
}

// CaptureFatal logs err at LevelFatal and always reports it.
func (cl *CoreLogger) CaptureFatal(err error, args ...any) {
	cl.Log(context.Background(), LevelFatal, err.Error(), args...)
	cl.sentry.CaptureException(err, cl.eventTags(args))
}

// Reraise reports a panic in progress, then continues it.
//
// It must be deferred directly so that recover sees the panic.
func (cl *CoreLogger) Reraise(args ...any) {
	v := recover()
	if v == nil {
		return
	}
	cl.Log(context.Background(), LevelFatal, "panic", "error", v)
	cl.sentry.Reraise(v, cl.eventTags(args))
}

// NewNoOpLogger returns a logger that discards everything.
func NewNoOpLogger() *CoreLogger {
	return NewCoreLogger(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
}
