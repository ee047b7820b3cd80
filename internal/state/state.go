// Package state persists the memory one update pass leaves for the
// next: the settings it ran under and the remote snapshot it applied.
package state

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/alexjbarnes/contact-sync/internal/contacts"
)

const (
	// stateDirPerm is the permission mode for the state directory (~/.contact-sync/).
	stateDirPerm = fs.FileMode(0o700)

	// stateFilePerm is the permission mode for the state database file.
	stateFilePerm = fs.FileMode(0o600)

	// stateOpenTimeout is the maximum time to wait for the bolt database lock.
	stateOpenTimeout = 5 * time.Second
)

var runsBucket = []byte("runs")

// LastRun is the persisted outcome of one update pass for one account.
// The password is cleared before writing so it never reaches disk.
type LastRun struct {
	Settings   contacts.Settings       `json:"usedSettings"`
	UpdateData []contacts.RemoteRecord `json:"updateData"`
	At         time.Time               `json:"at"`
}

// State wraps a bbolt database for all persistent application state.
type State struct {
	db *bolt.DB
}

// Load opens the state database at ~/.contact-sync/state.db, creating
// it if it does not exist.
func Load() (*State, error) {
	return LoadAt(dbPath())
}

// LoadAt opens a state database at the given path, creating it if it
// does not exist. Useful for tests that need an isolated database.
func LoadAt(path string) (*State, error) {
	if err := os.MkdirAll(filepath.Dir(path), stateDirPerm); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	db, err := bolt.Open(path, stateFilePerm, &bolt.Options{Timeout: stateOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(runsBucket)

		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing state db: %w", err)
	}

	return &State{db: db}, nil
}

// Close closes the database.
func (s *State) Close() error {
	return s.db.Close()
}

// runKey identifies one account's run memory.
func runKey(username, serverURL string) []byte {
	return []byte(username + "@" + serverURL)
}

// LastRun returns the previous pass's memory for an account, or nil
// when none has been recorded.
func (s *State) LastRun(username, serverURL string) (*LastRun, error) {
	var run *LastRun

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(runsBucket).Get(runKey(username, serverURL))
		if v == nil {
			return nil
		}

		run = &LastRun{}

		return json.Unmarshal(v, run)
	})
	if err != nil {
		return nil, fmt.Errorf("reading last run: %w", err)
	}

	return run, nil
}

// SaveLastRun persists one pass's memory for an account. The password
// and the nested memory fields are cleared before serializing so raw
// credentials never reach disk and the record stays flat.
func (s *State) SaveLastRun(username, serverURL string, run LastRun) error {
	run.Settings = run.Settings.Snapshot()
	run.Settings.Password = ""

	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(run)
		if err != nil {
			return err
		}

		return tx.Bucket(runsBucket).Put(runKey(username, serverURL), data)
	})
}

func dbPath() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		// Fail loudly rather than silently writing to the current directory
		// where the database might end up with wrong permissions or inside
		// a source-controlled tree.
		fmt.Fprintf(os.Stderr, "fatal: cannot determine home directory: %v\n", err)
		os.Exit(1)
	}

	return filepath.Join(dir, ".contact-sync", "state.db")
}
