// Package contacts implements the reconciliation core: it pairs
// remote CardDAV records with Markdown notes in a vault folder and
// computes the minimal set of local mutations (create, update in
// place, rename, relocate) needed to bring the folder up to date,
// while preserving user-owned frontmatter keys and note content.
package contacts

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// RecordKey is the reserved frontmatter key holding the serialized
// RemoteRecord. Its value is the system's only source of truth for
// which remote version a local note is at.
const RecordKey = "cardDAVRecord"

// RemoteRecord is one contact (or group) entity as fetched from the
// remote address book. URL is the stable identity; Etag is the remote
// version fingerprint; Data is the raw vCard text.
type RemoteRecord struct {
	URL  string `json:"url"`
	Etag string `json:"etag"`
	Data string `json:"data"`
}

// Encode serializes the record for storage under RecordKey.
func (r RemoteRecord) Encode() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encoding remote record: %w", err)
	}

	return string(b), nil
}

// DecodeRecord parses a serialized record back into a RemoteRecord.
func DecodeRecord(s string) (RemoteRecord, error) {
	var r RemoteRecord
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return RemoteRecord{}, fmt.Errorf("decoding remote record: %w", err)
	}

	return r, nil
}

// PeekURL extracts the url field from a serialized record without a
// full unmarshal. Returns "" when the value is not valid JSON.
func PeekURL(s string) string {
	return gjson.Get(s, "url").Str
}

// PeekEtag extracts the etag field from a serialized record.
func PeekEtag(s string) string {
	return gjson.Get(s, "etag").Str
}

// LocalRecord is the materialized view of one contact note: its path,
// the cached frontmatter, and the remote record it was last synced to.
type LocalRecord struct {
	Path        string
	Name        string
	Frontmatter map[string]any
	Record      RemoteRecord
}
