// Package errors defines the sentinel errors shared across packages,
// so callers can branch on error identity instead of message text.
package errors

import "errors"

// CardDAV client errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoRecordData       = errors.New("remote record has no data")
)

// Vault store errors.
var (
	ErrNoteExists  = errors.New("note already exists")
	ErrEscapesRoot = errors.New("path escapes vault root")
)
