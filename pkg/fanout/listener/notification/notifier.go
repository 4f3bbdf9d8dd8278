package notification

import (
	"context"

	ports "github.com/tigerroll/fanout/pkg/fanout/core/ports"
	logger "github.com/tigerroll/fanout/pkg/fanout/support/util/logger"
)

// LogNotifier is a Notifier implementation that only logs notifications.
// Jobs can embed it to satisfy the optional notify hook without wiring a real
// transport.
type LogNotifier struct{}

// NewLogNotifier creates a new LogNotifier instance.
func NewLogNotifier() ports.Notifier {
	return &LogNotifier{}
}

// Notify logs the message. Delivery is best-effort by construction: logging
// cannot fail the batching path.
func (n *LogNotifier) Notify(ctx context.Context, message string) {
	logger.Infof("Notification: %s", message)
}

var _ ports.Notifier = (*LogNotifier)(nil)
