package notify

import "context"

// Notifier defines the interface for publishing messages to a notification
// channel. This abstraction allows swapping the logging implementation with
// a real chat or email integration without refactoring.
type Notifier interface {
	Publish(ctx context.Context, message string) error
}
