package contacts

import (
	"slices"

	"github.com/alexjbarnes/contact-sync/internal/vcard"
)

// FilterByGroups drops group-definition cards from the remote set and,
// when allowed is non-empty, keeps only contacts that are a member of
// at least one selected group. A group is selected when its UID is in
// allowed; the display name is accepted as well so hand-written
// configs can name groups the way the address book shows them. Group
// cards are never materialized as notes either way.
func FilterByGroups(records []RemoteRecord, allowed []string) []RemoteRecord {
	var (
		contacts []RemoteRecord
		members  map[string]bool
	)

	if len(allowed) > 0 {
		members = make(map[string]bool)
	}

	for _, rec := range records {
		fields := vcard.Parse(rec.Data)

		if !vcard.IsGroup(fields) {
			contacts = append(contacts, rec)
			continue
		}

		if members == nil {
			continue
		}

		if !slices.Contains(allowed, vcard.UID(fields)) &&
			!slices.Contains(allowed, vcard.GroupName(fields)) {
			continue
		}

		for _, uid := range vcard.Members(fields) {
			members[uid] = true
		}
	}

	if members == nil {
		return contacts
	}

	kept := contacts[:0]

	for _, rec := range contacts {
		if members[vcard.UID(vcard.Parse(rec.Data))] {
			kept = append(kept, rec)
		}
	}

	return kept
}
