package contacts

import (
	"context"
	"encoding/json"
	"log/slog"
)

// ErrorsFileName is the base name of the reserved errors note kept in
// the contacts folder. Notes with this name are never treated as
// contacts.
const ErrorsFileName = "Errors"

// ErrorReporter accumulates structured failure reports into an
// append-only errors note, independent of the main success path. It
// never returns an error: a failure inside reporting must not mask
// the failure being reported.
type ErrorReporter struct {
	store  DocumentStore
	logger *slog.Logger
}

// NewErrorReporter creates a reporter writing through the given store.
func NewErrorReporter(store DocumentStore, logger *slog.Logger) *ErrorReporter {
	return &ErrorReporter{store: store, logger: logger}
}

// Report appends a Markdown section describing the failure to the
// errors note in folder, creating the note on first use, and brings
// it to the user's attention. Context, when non-nil, is JSON-encoded
// into a fenced block.
func (r *ErrorReporter) Report(ctx context.Context, folder, heading string, cause error, context any) {
	r.logger.Warn("contact sync error",
		slog.String("heading", heading),
		slog.String("error", cause.Error()),
	)

	path := folder + "/" + ErrorsFileName + noteExtension

	exists, err := r.store.FileExists(ctx, path)
	if err != nil {
		r.logger.Warn("errors note lookup failed", slog.String("error", err.Error()))
		return
	}

	if !exists {
		if err := r.store.Create(ctx, path, ""); err != nil {
			r.logger.Warn("creating errors note failed", slog.String("error", err.Error()))
			return
		}
	}

	text := "## " + heading + "\n### Error message\n\n" + cause.Error() + "\n"

	if context != nil {
		if data, err := json.Marshal(context); err == nil {
			text += "### Data\n\n```json\n" + string(data) + "\n```\n"
		}
	}

	if err := r.store.Append(ctx, path, text); err != nil {
		r.logger.Warn("appending to errors note failed", slog.String("error", err.Error()))
		return
	}

	if err := r.store.Reveal(ctx, path); err != nil {
		r.logger.Warn("revealing errors note failed", slog.String("error", err.Error()))
	}
}
