package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// AnalyticsClient wraps the posthog client so callers never have to check
// whether analytics is configured. Capture calls on a disabled client are
// no-ops.
type AnalyticsClient struct {
	client posthog.Client
	logger *slog.Logger
}

// NewAnalyticsClient builds the wrapper. An empty API key disables capture
// entirely.
func NewAnalyticsClient(apiKey string, logger *slog.Logger) *AnalyticsClient {
	if apiKey == "" {
		logger.Warn("Analytics disabled: no PostHog API key configured")
		return &AnalyticsClient{logger: logger}
	}

	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	if err != nil {
		logger.Warn("Analytics disabled: PostHog client failed to initialize",
			slog.String("error", err.Error()))
		return &AnalyticsClient{logger: logger}
	}

	return &AnalyticsClient{client: client, logger: logger}
}

// Enabled reports whether capture calls will reach PostHog.
func (a *AnalyticsClient) Enabled() bool {
	return a != nil && a.client != nil
}

// Capture enqueues one event attributed to distinctID. Failures are logged
// and swallowed.
func (a *AnalyticsClient) Capture(distinctID, event string, properties map[string]any) {
	if !a.Enabled() {
		return
	}
	err := a.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil && a.logger != nil {
		a.logger.Warn("Failed to enqueue analytics event",
			slog.String("event", event),
			slog.String("error", err.Error()))
	}
}

// Close flushes buffered events. Safe on a disabled client.
func (a *AnalyticsClient) Close() {
	if a == nil || a.client == nil {
		return
	}
	if err := a.client.Close(); err != nil && a.logger != nil {
		a.logger.Warn("Failed to close analytics client", slog.String("error", err.Error()))
	}
}
