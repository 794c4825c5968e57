package notifier

import "context"

type noopNotifier struct{}

// NewNoop returns a Notifier that drops every event.
func NewNoop() Notifier {
	return noopNotifier{}
}

func (noopNotifier) Notify(context.Context, string, map[string]any) {}

func (noopNotifier) Close(context.Context) error { return nil }
