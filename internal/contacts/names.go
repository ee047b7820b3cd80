package contacts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// noteExtension is the extension for contact notes.
const noteExtension = ".md"

// maxNameProbes bounds the collision suffix search before falling
// back to a timestamp suffix.
const maxNameProbes = 1000

// NameAllocator hands out collision-free note paths. Each call probes
// live storage, so names claimed earlier in the same pass are seen.
type NameAllocator struct {
	store DocumentStore
}

// NewNameAllocator creates an allocator over the given store.
func NewNameAllocator(store DocumentStore) *NameAllocator {
	return &NameAllocator{store: store}
}

// Allocate returns an unoccupied path folder/base.md, appending " 2",
// " 3", … until a free slot is found.
func (a *NameAllocator) Allocate(ctx context.Context, folder, base string) (string, error) {
	for n := 1; n <= maxNameProbes; n++ {
		name := base
		if n > 1 {
			name = fmt.Sprintf("%s %d", base, n)
		}

		path := folder + "/" + name + noteExtension

		exists, err := a.store.FileExists(ctx, path)
		if err != nil {
			return "", fmt.Errorf("probing %s: %w", path, err)
		}

		if !exists {
			return path, nil
		}
	}

	// Fallback: a timestamp suffix guarantees uniqueness.
	return fmt.Sprintf("%s/%s %d%s", folder, base, time.Now().UnixMilli(), noteExtension), nil
}

// SanitizeBaseName converts a display name into a usable file base
// name: NFC-normalized, path separators and frontmatter-hostile
// characters replaced, surrounding whitespace and dots trimmed.
func SanitizeBaseName(name string) string {
	name = norm.NFC.String(name)

	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "",
		":", "-",
		"#", "",
		"|", "-",
		"^", "",
		"[", "",
		"]", "",
	)
	name = replacer.Replace(name)

	name = strings.Trim(name, " .")
	if name == "" {
		name = "Unnamed contact"
	}

	return name
}
