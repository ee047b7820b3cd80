package contacts

import (
	"fmt"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Settings is the configuration surface consumed by one pass, plus
// the engine's persisted memory of the previous pass.
type Settings struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	ServerURL string `json:"serverUrl"`
	Folder    string `json:"folder"`

	// IsNameHeading controls whether note bodies carry a "# Name"
	// heading line.
	IsNameHeading bool `json:"isNameHeading"`

	// Per-category label toggles for presentation values.
	TelLabels     bool `json:"telLabels"`
	EmailLabels   bool `json:"emailLabels"`
	URLLabels     bool `json:"urlLabels"`
	RelatedLabels bool `json:"relatedLabels"`
	AddressLabels bool `json:"addressLabels"`

	// ExcludedKeys is a space-delimited list of vCard keys dropped
	// from presentation frontmatter. The data stays recoverable from
	// the reserved record key.
	ExcludedKeys string `json:"excludedKeys"`

	// Groups is an allow-list of remote group names. Empty means all
	// contacts are synced.
	Groups []string `json:"groups"`

	// Memory of the previous pass. Written only by the orchestrator
	// after a pass completes, never mid-pass.
	PreviousUpdateSettings *Settings      `json:"previousUpdateSettings,omitempty"`
	PreviousUpdateData     []RemoteRecord `json:"previousUpdateData,omitempty"`
}

// DefaultExcludedKeys mirrors the vendor metadata keys that carry no
// presentation value for a contact note.
const DefaultExcludedKeys = "n photo prodid rev uid version xAbadr xAbLabel " +
	"xAbShowAs xImagehash xImagetype xSharedPhotoDisplayPref " +
	"xAddressingGrammar xAppleSubadministrativearea xAppleSublocality"

// Validate checks that the settings are usable for a pass. The folder
// must already be in normalized form so that stored paths compare
// reliably against listing results.
func (s Settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Username, validation.Required.Error("username is required")),
		validation.Field(&s.Password, validation.Required.Error("app specific password is required")),
		validation.Field(&s.Folder,
			validation.Required.Error("contacts folder is required"),
			validation.By(folderIsNormalized),
		),
	)
}

func folderIsNormalized(value any) error {
	folder, _ := value.(string)
	if folder == "" {
		return nil
	}

	if normalized := NormalizeFolder(folder); folder != normalized {
		return fmt.Errorf("folder %q is not normalized (want %q)", folder, normalized)
	}

	return nil
}

// NormalizeFolder converts a folder setting to the canonical
// slash-separated relative form used for all stored paths.
func NormalizeFolder(folder string) string {
	folder = strings.TrimSpace(strings.ReplaceAll(folder, "\\", "/"))
	folder = strings.Trim(folder, "/")

	var parts []string

	for _, p := range strings.Split(folder, "/") {
		if p != "" && p != "." {
			parts = append(parts, p)
		}
	}

	return strings.Join(parts, "/")
}

// ExcludedKeySet tokenizes ExcludedKeys by whitespace.
func (s Settings) ExcludedKeySet() map[string]bool {
	set := make(map[string]bool)

	for _, k := range strings.Fields(s.ExcludedKeys) {
		set[k] = true
	}

	return set
}

// EqualPresentation reports whether two settings snapshots agree on
// every field that affects what a pass writes, ignoring the memory
// fields. A false result forces a rewrite-all pass. The password is
// not compared: persisted snapshots carry a blanked one, and it has
// no effect on note content anyway.
func (s Settings) EqualPresentation(other Settings) bool {
	return s.Username == other.Username &&
		s.ServerURL == other.ServerURL &&
		s.Folder == other.Folder &&
		s.IsNameHeading == other.IsNameHeading &&
		s.TelLabels == other.TelLabels &&
		s.EmailLabels == other.EmailLabels &&
		s.URLLabels == other.URLLabels &&
		s.RelatedLabels == other.RelatedLabels &&
		s.AddressLabels == other.AddressLabels &&
		s.ExcludedKeys == other.ExcludedKeys &&
		slices.Equal(s.Groups, other.Groups)
}

// Snapshot returns a copy of the settings with the memory fields
// cleared, suitable for persisting as the next pass's
// previousUpdateSettings.
func (s Settings) Snapshot() Settings {
	s.PreviousUpdateSettings = nil
	s.PreviousUpdateData = nil

	return s
}
