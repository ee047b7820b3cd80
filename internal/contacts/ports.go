package contacts

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_ports_test.go -package=contacts

// Listing is the result of listing one folder, non-recursively.
type Listing struct {
	Files   []string
	Folders []string
}

// MutableFrontmatter is the editable view of a note's frontmatter
// block handed to ProcessFrontmatter callbacks. Implementations must
// preserve the order of existing keys and leave untouched keys
// byte-identical.
type MutableFrontmatter interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Delete(key string)
}

// DocumentStore is the narrow host capability the engine writes
// through. Paths are vault-relative, slash-separated.
type DocumentStore interface {
	List(ctx context.Context, folder string) (Listing, error)
	Create(ctx context.Context, path, body string) error
	// Frontmatter returns the cached frontmatter mapping for a note,
	// or nil when the note has no frontmatter block.
	Frontmatter(ctx context.Context, path string) (map[string]any, error)
	// ProcessBody applies a read-modify-write transform to the note
	// body (everything after the frontmatter block).
	ProcessBody(ctx context.Context, path string, fn func(body string) string) error
	// ProcessFrontmatter applies a read-modify-write transform to the
	// note's frontmatter block.
	ProcessFrontmatter(ctx context.Context, path string, fn func(fm MutableFrontmatter)) error
	Rename(ctx context.Context, oldPath, newPath string) error
	CreateFolder(ctx context.Context, path string) error
	FolderExists(ctx context.Context, path string) (bool, error)
	FileExists(ctx context.Context, path string) (bool, error)
	Append(ctx context.Context, path, text string) error
	// Reveal brings a note to the user's attention in the host UI.
	// Hosts without a UI may treat it as a no-op.
	Reveal(ctx context.Context, path string) error
}

// RemoteFetcher fetches the full remote contact set.
type RemoteFetcher interface {
	FetchContacts(ctx context.Context, username, password, serverURL string) ([]RemoteRecord, error)
}

// Notice is one in-progress or summary message shown to the user.
type Notice interface {
	SetMessage(message string)
	Hide()
}

// NoticeSink shows transient progress and summary messages.
type NoticeSink interface {
	Show(message string) Notice
}
