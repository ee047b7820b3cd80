package vault

import (
	"log/slog"

	"github.com/alexjbarnes/contact-sync/internal/contacts"
)

// LogNotices is a contacts.NoticeSink that writes progress and summary
// messages to the logger. It stands in for the pop-up notices a
// desktop host would show.
type LogNotices struct {
	logger *slog.Logger
}

// NewLogNotices creates a notice sink over the logger.
func NewLogNotices(logger *slog.Logger) *LogNotices {
	return &LogNotices{logger: logger}
}

// Show logs the message and returns a handle for follow-up updates.
func (n *LogNotices) Show(message string) contacts.Notice {
	n.logger.Info("notice", slog.String("message", message))
	return &logNotice{logger: n.logger}
}

type logNotice struct {
	logger *slog.Logger
}

// SetMessage logs progress updates at debug level so per-contact
// ticks don't flood the default output.
func (n *logNotice) SetMessage(message string) {
	n.logger.Debug("notice", slog.String("message", message))
}

func (n *logNotice) Hide() {}
