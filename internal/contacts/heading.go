package contacts

import (
	"strings"
)

// headingFor returns the heading line for a display name.
func headingFor(name string) string {
	return "# " + name
}

// patchHeading reconciles the note body's heading line with the
// current heading policy. oldName is the display name the note had
// before this update, newName the one it has now. prevEnabled is the
// policy the body was last written under, curEnabled the policy now.
//
// The transitions:
//   - off → off: body untouched.
//   - on → off: a leading heading for either name is removed.
//   - off → on: the heading is inserted before the body, with a
//     separating newline only when body content follows.
//   - on → on: only the heading text is patched, and only when the
//     name changed.
func patchHeading(body, oldName, newName string, prevEnabled, curEnabled bool) string {
	first, rest, hasRest := strings.Cut(body, "\n")

	switch {
	case !prevEnabled && !curEnabled:
		return body

	case prevEnabled && !curEnabled:
		if first == headingFor(oldName) || first == headingFor(newName) {
			if !hasRest {
				return ""
			}

			return rest
		}

		return body

	case !prevEnabled && curEnabled:
		if first == headingFor(newName) {
			return body
		}

		if body == "" {
			return headingFor(newName)
		}

		return headingFor(newName) + "\n" + body

	default: // on → on
		if oldName != newName && first == headingFor(oldName) {
			if !hasRest {
				return headingFor(newName)
			}

			return headingFor(newName) + "\n" + rest
		}

		return body
	}
}
