package notifier

import "context"

// Call lifecycle event types.
const (
	EventCallStart = "call_start"
	EventCallEnd   = "call_end"
)

// Notifier tells the backend about call lifecycle events.
// Notify never blocks on the network and never reports delivery failures.
type Notifier interface {
	Notify(ctx context.Context, eventType string, data map[string]any)

	// Close waits for in-flight notifications until ctx is done.
	Close(ctx context.Context) error
}
