package sentry_ext

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
)

type Params struct {
	// DSN is the Data Source Name for the sentry client.
	//
	// An empty DSN disables sending; events are dropped by the SDK.
	DSN string

	// Release is the version of the application.
	Release string

	// Environment is the environment the application is running in.
	Environment string

	// Transport overrides the SDK transport. Used in tests.
	Transport sentry.Transport
}

// Client reports errors and messages to Sentry through its own hub.
//
// A nil *Client is valid and drops everything.
type Client struct {
	hub *sentry.Hub
}

// New creates a client with a dedicated hub.
//
// Returns nil if the SDK client cannot be created.
func New(params Params) *Client {
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:              params.DSN,
		AttachStacktrace: true,
		Release:          params.Release,
		Environment:      params.Environment,
		Transport:        params.Transport,
		BeforeSend:       RemoveInternalFrames,
	})
	if err != nil {
		slog.Error("sentry_ext: New: failed to create client", "err", err)
		return nil
	}

	if params.DSN == "" {
		slog.Debug("sentry_ext: New: sentry is disabled, no DSN provided")
	}

	return &Client{hub: sentry.NewHub(client, sentry.NewScope())}
}

// CaptureException sends an error-level event tagged with tags.
func (c *Client) CaptureException(err error, tags map[string]string) {
	if c == nil || err == nil {
		return
	}
	c.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		c.hub.CaptureException(err)
	})
}

// CaptureMessage sends an info-level event tagged with tags.
func (c *Client) CaptureMessage(msg string, tags map[string]string) {
	if c == nil {
		return
	}
	c.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		c.hub.CaptureMessage(msg)
	})
}

// Reraise reports a recovered panic value and panics with it again.
func (c *Client) Reraise(v any, tags map[string]string) {
	if v == nil {
		return
	}

	err, ok := v.(error)
	if !ok {
		err = fmt.Errorf("%v", v)
	}
	c.CaptureException(fmt.Errorf("panic: %w", err), tags)
	c.Flush(2 * time.Second)

	panic(v)
}

// Flush waits for queued events to be sent.
func (c *Client) Flush(timeout time.Duration) bool {
	if c == nil {
		return true
	}
	return c.hub.Flush(timeout)
}

// RemoveInternalFrames drops the trailing stack frames that belong to the
// reporting code itself, so events point at the caller.
func RemoveInternalFrames(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	for i := range event.Exception {
		st := event.Exception[i].Stacktrace
		if st == nil {
			continue
		}

		frames := st.Frames
		for len(frames) > 0 && isInternalFrame(frames[len(frames)-1]) {
			frames = frames[:len(frames)-1]
		}
		st.Frames = frames
	}
	return event
}

func isInternalFrame(frame sentry.Frame) bool {
	for _, module := range internalModules {
		if strings.HasSuffix(frame.Module, module) {
			return true
		}
	}
	return false
}

var internalModules = []string{
	"internal/sentry_ext",
	"internal/observability",
}
