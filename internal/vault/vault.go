// Package vault provides a filesystem-backed document store for a
// Markdown vault directory. Paths are vault-relative and
// slash-separated; writes are atomic (temp file + rename).
package vault

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/alexjbarnes/contact-sync/internal/contacts"
	apperrors "github.com/alexjbarnes/contact-sync/internal/errors"
)

// Store implements contacts.DocumentStore over a local directory.
type Store struct {
	root   string
	logger *slog.Logger

	mu      sync.Mutex
	fmCache map[string]fmCacheEntry
}

type fmCacheEntry struct {
	modTime time.Time
	fields  map[string]any
}

// New creates a Store rooted at the given directory.
func New(root string, logger *slog.Logger) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("vault path must not be empty")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving vault path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("accessing vault path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault path is not a directory: %s", abs)
	}

	return &Store{
		root:    abs,
		logger:  logger,
		fmCache: make(map[string]fmCacheEntry),
	}, nil
}

// Root returns the absolute path to the vault root.
func (s *Store) Root() string {
	return s.root
}

// resolve converts a vault-relative path to an absolute path, validating
// that it stays within the vault root. It evaluates symlinks to prevent
// symlink-based escape from the vault directory.
func (s *Store) resolve(relPath string) (string, error) {
	if strings.Contains(relPath, "..") {
		return "", fmt.Errorf("%w: path must not contain '..': %s", apperrors.ErrEscapesRoot, relPath)
	}

	abs := filepath.Join(s.root, filepath.FromSlash(relPath))
	if !strings.HasPrefix(abs, s.root+string(filepath.Separator)) && abs != s.root {
		return "", fmt.Errorf("%w: %s", apperrors.ErrEscapesRoot, relPath)
	}

	real, err := evalExistingPrefix(abs)
	if err != nil {
		return "", fmt.Errorf("evaluating path: %w", err)
	}
	if !strings.HasPrefix(real, s.root+string(filepath.Separator)) && real != s.root {
		return "", fmt.Errorf("%w via symlink: %s", apperrors.ErrEscapesRoot, relPath)
	}

	return abs, nil
}

// evalExistingPrefix resolves symlinks for the longest existing prefix of
// the path. For a path like /vault/newdir/newfile.md where newdir doesn't
// exist, it evaluates /vault (which does exist) and appends the remaining
// components. This lets us detect symlink escape even for not-yet-created
// paths.
func evalExistingPrefix(abs string) (string, error) {
	real, err := filepath.EvalSymlinks(abs)
	if err == nil {
		return real, nil
	}

	dir := filepath.Dir(abs)
	base := filepath.Base(abs)
	if dir == abs {
		return abs, nil
	}

	parentReal, err := evalExistingPrefix(dir)
	if err != nil {
		return "", err
	}

	return filepath.Join(parentReal, base), nil
}

// List returns the files and folders directly inside folder, as
// vault-relative slash paths. Hidden entries are skipped.
func (s *Store) List(_ context.Context, folder string) (contacts.Listing, error) {
	abs, err := s.resolve(folder)
	if err != nil {
		return contacts.Listing{}, err
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return contacts.Listing{}, fmt.Errorf("reading directory: %w", err)
	}

	var listing contacts.Listing

	for _, de := range entries {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		rel := name
		if folder != "" {
			rel = folder + "/" + name
		}

		if de.IsDir() {
			listing.Folders = append(listing.Folders, rel)
		} else {
			listing.Files = append(listing.Files, rel)
		}
	}

	sort.Strings(listing.Files)
	sort.Strings(listing.Folders)

	return listing, nil
}

// Create writes a new note with the given body and no frontmatter.
// It refuses to overwrite an existing file.
func (s *Store) Create(_ context.Context, path, body string) error {
	abs, err := s.resolve(path)
	if err != nil {
		return err
	}

	if _, err := os.Stat(abs); err == nil {
		return fmt.Errorf("%w: %s", apperrors.ErrNoteExists, path)
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("creating directories: %w", err)
	}

	return s.writeAtomic(abs, body)
}

// Frontmatter returns the note's frontmatter fields, or nil when the
// note has no frontmatter block. Results are cached by modification
// time so a full-folder scan rereads only changed files.
func (s *Store) Frontmatter(_ context.Context, path string) (map[string]any, error) {
	abs, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("checking file: %w", err)
	}

	s.mu.Lock()
	cached, ok := s.fmCache[path]
	s.mu.Unlock()

	if ok && cached.modTime.Equal(info.ModTime()) {
		return cached.fields, nil
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	fields, err := parseFrontmatterMap(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing frontmatter of %s: %w", path, err)
	}

	s.mu.Lock()
	s.fmCache[path] = fmCacheEntry{modTime: info.ModTime(), fields: fields}
	s.mu.Unlock()

	return fields, nil
}

// ProcessBody applies fn to the note body, leaving the frontmatter
// block byte-identical.
func (s *Store) ProcessBody(_ context.Context, path string, fn func(body string) string) error {
	abs, err := s.resolve(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	front, body := splitDocument(string(data))

	newBody := fn(body)
	if newBody == body {
		return nil
	}

	s.invalidate(path)

	return s.writeAtomic(abs, front+newBody)
}

// ProcessFrontmatter applies fn to an editable view of the note's
// frontmatter block. Existing key order and untouched values survive
// the round trip; a block is created when the note has none.
func (s *Store) ProcessFrontmatter(_ context.Context, path string, fn func(fm contacts.MutableFrontmatter)) error {
	abs, err := s.resolve(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	front, body := splitDocument(string(data))

	fm, err := parseFrontmatterNode(front)
	if err != nil {
		return fmt.Errorf("parsing frontmatter of %s: %w", path, err)
	}

	fn(fm)

	newFront, err := fm.render()
	if err != nil {
		return fmt.Errorf("rendering frontmatter of %s: %w", path, err)
	}

	if newFront == front {
		return nil
	}

	s.invalidate(path)

	return s.writeAtomic(abs, newFront+body)
}

// Rename moves a note, creating destination directories as needed. It
// refuses to overwrite an existing file.
func (s *Store) Rename(_ context.Context, oldPath, newPath string) error {
	absSrc, err := s.resolve(oldPath)
	if err != nil {
		return err
	}

	absDst, err := s.resolve(newPath)
	if err != nil {
		return err
	}

	if _, err := os.Stat(absDst); err == nil {
		return fmt.Errorf("destination %w: %s", apperrors.ErrNoteExists, newPath)
	}

	if err := os.MkdirAll(filepath.Dir(absDst), 0755); err != nil {
		return fmt.Errorf("creating destination directories: %w", err)
	}

	if err := os.Rename(absSrc, absDst); err != nil {
		return fmt.Errorf("moving file: %w", err)
	}

	s.invalidate(oldPath)
	s.invalidate(newPath)

	return nil
}

// CreateFolder creates the folder and any missing parents.
func (s *Store) CreateFolder(_ context.Context, path string) error {
	abs, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(abs, 0755); err != nil {
		return fmt.Errorf("creating folder: %w", err)
	}

	return nil
}

// FolderExists reports whether path exists and is a directory.
func (s *Store) FolderExists(_ context.Context, path string) (bool, error) {
	abs, err := s.resolve(path)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking folder: %w", err)
	}

	return info.IsDir(), nil
}

// FileExists reports whether path exists and is a regular file.
func (s *Store) FileExists(_ context.Context, path string) (bool, error) {
	abs, err := s.resolve(path)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking file: %w", err)
	}

	return !info.IsDir(), nil
}

// Append adds text to the end of a note, creating it when missing.
func (s *Store) Append(_ context.Context, path, text string) error {
	abs, err := s.resolve(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(abs)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("creating directories: %w", err)
	}

	s.invalidate(path)

	return s.writeAtomic(abs, string(data)+text)
}

// Reveal logs the note path. There is no UI to bring it up in.
func (s *Store) Reveal(_ context.Context, path string) error {
	s.logger.Info("note needs attention", slog.String("path", path))
	return nil
}

func (s *Store) invalidate(path string) {
	s.mu.Lock()
	delete(s.fmCache, path)
	s.mu.Unlock()
}

// writeAtomic writes content via a temp file and rename, preserving
// the permissions of an existing file.
func (s *Store) writeAtomic(abs, content string) error {
	dir := filepath.Dir(abs)

	tmp, err := os.CreateTemp(dir, ".contact-sync-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}

	perm := fs.FileMode(0644)
	if info, err := os.Stat(abs); err == nil {
		perm = info.Mode()
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting file permissions: %w", err)
	}

	if err := os.Rename(tmpName, abs); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
