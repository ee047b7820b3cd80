package vault

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexjbarnes/contact-sync/internal/contacts"
	apperrors "github.com/alexjbarnes/contact-sync/internal/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(t.TempDir(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	return store
}

func writeNote(t *testing.T, store *Store, rel, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(store.Root(), rel), []byte(content), 0o644))
}

func readNote(t *testing.T, store *Store, rel string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(store.Root(), rel))
	require.NoError(t, err)

	return string(data)
}

func TestNew(t *testing.T) {
	_, err := New("", slog.New(slog.DiscardHandler))
	assert.Error(t, err)

	_, err = New(filepath.Join(t.TempDir(), "missing"), slog.New(slog.DiscardHandler))
	assert.Error(t, err)

	dir := t.TempDir()
	file := filepath.Join(dir, "file.md")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err = New(file, slog.New(slog.DiscardHandler))
	assert.Error(t, err)
}

func TestCreate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "Contacts/Ola.md", "# Ola"))
	assert.Equal(t, "# Ola", readNote(t, store, "Contacts/Ola.md"))

	err := store.Create(ctx, "Contacts/Ola.md", "again")
	assert.ErrorIs(t, err, apperrors.ErrNoteExists)
}

func TestFrontmatter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	writeNote(t, store, "plain.md", "no frontmatter here")

	fields, err := store.Frontmatter(ctx, "plain.md")
	require.NoError(t, err)
	assert.Nil(t, fields)

	writeNote(t, store, "contact.md", "---\nname: Ola\n---\nbody")

	fields, err = store.Frontmatter(ctx, "contact.md")
	require.NoError(t, err)
	assert.Equal(t, "Ola", fields["name"])

	_, err = store.Frontmatter(ctx, "missing.md")
	assert.Error(t, err)
}

func TestFrontmatter_CacheInvalidatedByWrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	writeNote(t, store, "contact.md", "---\nname: Ola\n---\nbody")

	fields, err := store.Frontmatter(ctx, "contact.md")
	require.NoError(t, err)
	assert.Equal(t, "Ola", fields["name"])

	err = store.ProcessFrontmatter(ctx, "contact.md", func(fm contacts.MutableFrontmatter) {
		fm.Set("name", "Kari")
	})
	require.NoError(t, err)

	fields, err = store.Frontmatter(ctx, "contact.md")
	require.NoError(t, err)
	assert.Equal(t, "Kari", fields["name"])
}

func TestProcessFrontmatter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	writeNote(t, store, "contact.md", "---\nfavorite food: pizza\nname: Ola\n---\n# Ola\nbody")

	err := store.ProcessFrontmatter(ctx, "contact.md", func(fm contacts.MutableFrontmatter) {
		fm.Set("name", "Kari")
		fm.Set("telephone", []string{"123"})
		fm.Delete("nonexistent")
	})
	require.NoError(t, err)

	content := readNote(t, store, "contact.md")
	assert.Equal(t, "---\nfavorite food: pizza\nname: Kari\ntelephone:\n    - \"123\"\n---\n# Ola\nbody", content)
}

func TestProcessFrontmatter_CreatesBlock(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	writeNote(t, store, "plain.md", "# Heading\nbody")

	err := store.ProcessFrontmatter(ctx, "plain.md", func(fm contacts.MutableFrontmatter) {
		fm.Set("name", "Ola")
	})
	require.NoError(t, err)

	assert.Equal(t, "---\nname: Ola\n---\n# Heading\nbody", readNote(t, store, "plain.md"))
}

func TestProcessBody(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	writeNote(t, store, "contact.md", "---\nname: Ola\n---\n# Ola\nbody")

	err := store.ProcessBody(ctx, "contact.md", func(body string) string {
		assert.Equal(t, "# Ola\nbody", body)
		return "# Kari\nbody"
	})
	require.NoError(t, err)

	// The frontmatter block is untouched byte for byte.
	assert.Equal(t, "---\nname: Ola\n---\n# Kari\nbody", readNote(t, store, "contact.md"))
}

func TestProcessBody_NoOpLeavesFileAlone(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	writeNote(t, store, "contact.md", "body")

	info, err := os.Stat(filepath.Join(store.Root(), "contact.md"))
	require.NoError(t, err)

	err = store.ProcessBody(ctx, "contact.md", func(body string) string { return body })
	require.NoError(t, err)

	after, err := os.Stat(filepath.Join(store.Root(), "contact.md"))
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), after.ModTime())
}

func TestRename(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	writeNote(t, store, "a.md", "content")

	require.NoError(t, store.Rename(ctx, "a.md", "sub/folder/b.md"))
	assert.Equal(t, "content", readNote(t, store, "sub/folder/b.md"))

	writeNote(t, store, "c.md", "other")

	err := store.Rename(ctx, "c.md", "sub/folder/b.md")
	assert.ErrorIs(t, err, apperrors.ErrNoteExists)
}

func TestAppend(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "errors.md", "first\n"))
	require.NoError(t, store.Append(ctx, "errors.md", "second\n"))

	assert.Equal(t, "first\nsecond\n", readNote(t, store, "errors.md"))
}

func TestList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(filepath.Join(store.Root(), "Contacts", "Deleted"), 0o755))
	writeNote(t, store, "Contacts/b.md", "")
	writeNote(t, store, "Contacts/a.md", "")
	writeNote(t, store, "Contacts/.hidden.md", "")

	listing, err := store.List(ctx, "Contacts")
	require.NoError(t, err)
	assert.Equal(t, []string{"Contacts/a.md", "Contacts/b.md"}, listing.Files)
	assert.Equal(t, []string{"Contacts/Deleted"}, listing.Folders)

	_, err = store.List(ctx, "missing")
	assert.Error(t, err)
}

func TestFolderAndFileExists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateFolder(ctx, "Contacts"))

	ok, err := store.FolderExists(ctx, "Contacts")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.FileExists(ctx, "Contacts")
	require.NoError(t, err)
	assert.False(t, ok)

	writeNote(t, store, "Contacts/a.md", "")

	ok, err = store.FileExists(ctx, "Contacts/a.md")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.FolderExists(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolve_RejectsEscapes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.List(ctx, "../outside")
	assert.ErrorIs(t, err, apperrors.ErrEscapesRoot)

	err = store.Create(ctx, "../outside.md", "")
	assert.ErrorIs(t, err, apperrors.ErrEscapesRoot)

	_, err = store.FileExists(ctx, "a/../../b.md")
	assert.Error(t, err)
}

func TestResolve_RejectsSymlinkEscape(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	outside := t.TempDir()
	require.NoError(t, os.Symlink(outside, filepath.Join(store.Root(), "link")))

	err := store.Create(ctx, "link/escaped.md", "content")
	assert.ErrorContains(t, err, "symlink")

	_, err = store.List(ctx, "link")
	assert.ErrorContains(t, err, "symlink")
}
