package ports

import "context"

// Notifier is the best-effort notify hook exposed by an originating job.
// Implementations must treat delivery as fire-and-forget: a notification
// failure must never abort batching, so Notify returns nothing.
type Notifier interface {
	Notify(ctx context.Context, message string)
}
