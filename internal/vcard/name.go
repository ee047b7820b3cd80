package vcard

import (
	"strings"
)

// Structured name component order in the N property.
const (
	nFamily = iota
	nGiven
	nMiddle
	nPrefix
	nSuffix
	nComponents
)

// FullName derives the display name for a contact record. It prefers
// the formatted name (FN); for records shown as a company it falls
// back to the organization name; otherwise it composes
// "prefix given middle family suffix" from the structured N property.
// Backslash escape sequences are stripped from the result.
func FullName(data string) string {
	return FullNameFromFields(Parse(data))
}

// FullNameFromFields is FullName over an already-parsed record.
func FullNameFromFields(fields []Field) string {
	var (
		n         []string
		org       string
		company   bool
		formatted string
	)

	for _, f := range fields {
		switch f.Key {
		case "fn":
			if formatted == "" {
				formatted = f.Value
			}
		case "n":
			n = f.Parts
		case "org":
			if len(f.Parts) > 0 {
				org = f.Parts[0]
			}
		case "xAbShowAs":
			company = company || strings.EqualFold(f.Value, "COMPANY")
		}
	}

	if formatted != "" {
		return stripBackslashes(formatted)
	}

	if company && org != "" {
		return stripBackslashes(org)
	}

	return stripBackslashes(composeName(n))
}

// composeName joins the structured name parts in display order,
// skipping empty components.
func composeName(n []string) string {
	for len(n) < nComponents {
		n = append(n, "")
	}

	ordered := []string{n[nPrefix], n[nGiven], n[nMiddle], n[nFamily], n[nSuffix]}

	var parts []string

	for _, p := range ordered {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return strings.Join(parts, " ")
}

func stripBackslashes(s string) string {
	return strings.ReplaceAll(s, "\\", "")
}

// Group-record properties used by address-book server group entries.
const (
	kindKey   = "xAddressbookserverKind"
	memberKey = "xAddressbookserverMember"
	uidPrefix = "urn:uuid:"
)

// IsGroup reports whether the parsed record is an address-book group
// marker rather than a contact.
func IsGroup(fields []Field) bool {
	for _, f := range fields {
		if f.Key == kindKey && strings.EqualFold(f.Value, "group") {
			return true
		}
	}

	return false
}

// GroupName returns the display name of a group record.
func GroupName(fields []Field) string {
	return FullNameFromFields(fields)
}

// Members returns the member UIDs referenced by a group record, with
// the urn:uuid: prefix stripped.
func Members(fields []Field) []string {
	var uids []string

	for _, f := range fields {
		if f.Key != memberKey {
			continue
		}

		uids = append(uids, strings.TrimPrefix(f.Value, uidPrefix))
	}

	return uids
}

// UID returns the record's UID property value, or "".
func UID(fields []Field) string {
	for _, f := range fields {
		if f.Key == "uid" {
			return f.Value
		}
	}

	return ""
}
