package contacts

import (
	"fmt"
	"strings"

	"github.com/alexjbarnes/contact-sync/internal/vcard"
)

// Presentation keys produced by the builder.
const (
	keyName           = "name"
	keyTelephone      = "telephone"
	keyEmail          = "email"
	keyAddresses      = "addresses"
	keyURL            = "url"
	keyOrganization   = "organization"
	keyDepartement    = "departement"
	keyBirthday       = "birthday"
	keyRelatedNames   = "related names"
	keyInstantMessage = "instant message"
	keySocialProfile  = "social profile"
	keyDate           = "date"
)

// labelFieldKey is the vCard property that names other fields in the
// same group.
const labelFieldKey = "xAbLabel"

// Type tags that never act as labels.
var reservedTypeTags = map[string]bool{
	"cell":     true,
	"voice":    true,
	"pref":     true,
	"internet": true,
}

// Protocol prefixes stripped from instant-message and social-profile
// handles.
var handlePrefixes = []string{"xmpp:", "x-apple:"}

// Frontmatter is an ordered key → value mapping. Values are either
// string or []string. Key order follows first insertion.
type Frontmatter struct {
	keys   []string
	values map[string]any
}

// NewFrontmatter returns an empty mapping.
func NewFrontmatter() *Frontmatter {
	return &Frontmatter{values: make(map[string]any)}
}

// Set inserts or replaces a scalar value, preserving the key's first
// insertion position.
func (f *Frontmatter) Set(key string, value any) {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}

	f.values[key] = value
}

// Add appends a value to the list stored under key, promoting an
// existing scalar to a list.
func (f *Frontmatter) Add(key, value string) {
	existing, ok := f.values[key]
	if !ok {
		f.Set(key, []string{value})
		return
	}

	switch v := existing.(type) {
	case []string:
		f.values[key] = append(v, value)
	case string:
		f.values[key] = []string{v, value}
	default:
		f.values[key] = []string{fmt.Sprint(v), value}
	}
}

// Value returns the value stored under key.
func (f *Frontmatter) Value(key string) (any, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Has reports whether key is present.
func (f *Frontmatter) Has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (f *Frontmatter) Keys() []string {
	return f.keys
}

// Len returns the number of keys.
func (f *Frontmatter) Len() int {
	return len(f.keys)
}

// BuildFrontmatter folds a parsed record into the presentation
// frontmatter for one contact note, honoring the settings' label
// toggles and excluded-key list. The mapping is deterministic: key
// order matches first occurrence in fields, and multi-value entries
// keep source order. The reserved record key is not set here; the
// engine owns it.
func BuildFrontmatter(fields []vcard.Field, fullName string, settings Settings) *Frontmatter {
	excluded := settings.ExcludedKeySet()
	labels := groupLabels(fields)

	fm := NewFrontmatter()
	fm.Set(keyName, fullName)

	for _, f := range fields {
		// fn feeds the derived name and never appears directly.
		if f.Key == "fn" || excluded[f.Key] {
			continue
		}

		switch f.Key {
		case "org":
			addOrganization(fm, f)
		case "tel":
			fm.Add(keyTelephone, withLabel(f.Value, resolveLabel(f, labels), settings.TelLabels))
		case "email":
			fm.Add(keyEmail, withLabel(f.Value, resolveLabel(f, labels), settings.EmailLabels))
		case "adr":
			fm.Add(keyAddresses, joinAddress(f.Parts))
		case "url":
			fm.Add(keyURL, withLabel(f.Value, resolveLabel(f, labels), settings.URLLabels))
		case "bday":
			fm.Set(keyBirthday, f.Value)
		case "xAbrelatednames":
			fm.Add(keyRelatedNames, relatedNameLink(f.Value, resolveLabel(f, labels), settings.RelatedLabels))
		case "impp":
			fm.Add(keyInstantMessage, instantMessage(f))
		case "xSocialprofile":
			fm.Add(keySocialProfile, socialProfile(f))
		case "xAbdate":
			fm.Add(keyDate, withLabel(f.Value, resolveLabel(f, labels), true))
		default:
			addPassthrough(fm, f)
		}
	}

	return fm
}

// groupLabels indexes label-field values by their group.
func groupLabels(fields []vcard.Field) map[string]string {
	labels := make(map[string]string)

	for _, f := range fields {
		if f.Key == labelFieldKey && f.Group != "" {
			labels[f.Group] = f.Value
		}
	}

	return labels
}

// resolveLabel finds the human label for a field: the stripped label
// field sharing the group when one exists, otherwise the first type
// tag outside the reserved set. Returns "" when neither applies.
func resolveLabel(f vcard.Field, labels map[string]string) string {
	if f.Group != "" {
		raw, ok := labels[f.Group]
		if !ok {
			return ""
		}

		raw = strings.TrimSuffix(strings.TrimPrefix(raw, "_$!<"), ">!$_")

		return capitalizeLabel(raw)
	}

	for _, t := range f.Types {
		if !reservedTypeTags[t] {
			return capitalizeLabel(t)
		}
	}

	return ""
}

// capitalizeLabel upcases the first letter and lowercases the rest.
// "iphone" keeps Apple's own casing.
func capitalizeLabel(s string) string {
	if s == "" {
		return ""
	}

	if strings.EqualFold(s, "iphone") {
		return "iPhone"
	}

	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// withLabel prefixes value with "Label: " when labelling is enabled
// and a label resolved.
func withLabel(value, label string, enabled bool) string {
	if !enabled || label == "" {
		return value
	}

	return label + ": " + value
}

// joinAddress joins non-empty address components with ", ".
// Addresses never take inline labels.
func joinAddress(parts []string) string {
	var kept []string

	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}

	return strings.Join(kept, ", ")
}

// addOrganization maps the two org components to organization and
// departement, omitting empty components entirely.
func addOrganization(fm *Frontmatter, f vcard.Field) {
	if len(f.Parts) > 0 && f.Parts[0] != "" {
		fm.Set(keyOrganization, f.Parts[0])
	}

	if len(f.Parts) > 1 && f.Parts[1] != "" {
		fm.Set(keyDepartement, f.Parts[1])
	}
}

// relatedNameLink formats a related name as a wiki link, with the
// label inside the link alias when labelling is enabled.
func relatedNameLink(value, label string, enabled bool) string {
	if enabled && label != "" {
		return "[[" + value + "|" + label + ": " + value + "]]"
	}

	return "[[" + value + "]]"
}

// instantMessage formats an impp field as "<ServiceType>: <handle>".
func instantMessage(f vcard.Field) string {
	handle := stripHandlePrefixes(f.Value)

	service := f.Param("xServiceType")
	if service == "" {
		return handle
	}

	return service + ": " + handle
}

// socialProfile formats a social-profile field as
// "<Capitalized type>: <handle>" when a type tag exists.
func socialProfile(f vcard.Field) string {
	handle := stripHandlePrefixes(f.Value)

	for _, t := range f.Types {
		if !reservedTypeTags[t] {
			return capitalizeLabel(t) + ": " + handle
		}
	}

	return handle
}

func stripHandlePrefixes(value string) string {
	for _, p := range handlePrefixes {
		value = strings.TrimPrefix(value, p)
	}

	return value
}

// addPassthrough stores an unrecognized key as-is; repeats accumulate
// into a list.
func addPassthrough(fm *Frontmatter, f vcard.Field) {
	value := f.Value
	if f.Parts != nil {
		value = strings.Join(f.Parts, ", ")
	}

	if fm.Has(f.Key) {
		fm.Add(f.Key, value)
		return
	}

	fm.Set(f.Key, value)
}
