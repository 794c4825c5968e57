package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type eventBody struct {
	EventType string         `json:"event_type"`
	Data      map[string]any `json:"data"`
}

// Notify posts the event on a tracked goroutine detached from ctx cancellation.
func (n *httpNotifier) Notify(ctx context.Context, eventType string, data map[string]any) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		n.l.Warnf(ctx, "notifier.Notify: dropped %s after close", eventType)
		return
	}

	detached := context.WithoutCancel(ctx)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		sctx, cancel := context.WithTimeout(detached, n.timeout)
		defer cancel()
		if err := n.send(sctx, eventType, data); err != nil {
			n.l.Warnf(detached, "notifier.Notify: %s: %v", eventType, err)
		}
	}()
}

func (n *httpNotifier) send(ctx context.Context, eventType string, data map[string]any) error {
	body, err := json.Marshal(eventBody{EventType: eventType, Data: data})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return nil
}

// Close stops accepting events and waits for in-flight ones.
func (n *httpNotifier) Close(ctx context.Context) error {
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
