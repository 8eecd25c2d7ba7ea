package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier implements Notifier by writing messages to the structured
// log. Replace with a real integration for production use.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Publish(ctx context.Context, message string) error {
	n.logger.Info().Str("channel", "feedback").Msg(message)
	return nil
}
