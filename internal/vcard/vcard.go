// Package vcard tokenizes vCard 3.0 text into structured fields and
// derives display names. It is deliberately not a full RFC 6350
// implementation: it covers the property shapes produced by CardDAV
// servers for contact and group records.
package vcard

import (
	"strings"
)

// Compound properties whose value is a ';'-separated component list.
var compoundKeys = map[string]bool{
	"n":   true,
	"adr": true,
	"org": true,
}

// Field is one parsed vCard property.
type Field struct {
	// Key is the camelCased property name, e.g. "tel", "xAbLabel".
	Key string

	// Group is the item grouping prefix ("item3" in "item3.TEL:..."),
	// linking a value field to its label field.
	Group string

	// Types holds the lowercased TYPE parameter values in source order.
	Types []string

	// Params holds the remaining parameters with camelCased keys,
	// e.g. "xServiceType" or "value".
	Params map[string]string

	// Value is the property value with escape sequences resolved.
	// Empty for compound properties.
	Value string

	// Parts holds the components of compound properties (n, adr, org).
	Parts []string
}

// Param returns a named parameter value, or "" when absent.
func (f Field) Param(name string) string {
	return f.Params[name]
}

// Parse tokenizes a raw vCard into fields. BEGIN, END, and VERSION
// lines are dropped. Folded lines are joined before tokenizing.
func Parse(data string) []Field {
	var fields []Field

	for _, line := range unfold(data) {
		name, value, ok := splitNameValue(line)
		if !ok {
			continue
		}

		group, key, params, types := parseName(name)
		switch key {
		case "begin", "end", "version":
			continue
		}

		f := Field{
			Key:    key,
			Group:  group,
			Types:  types,
			Params: params,
		}

		if compoundKeys[key] {
			f.Parts = splitComponents(value)
		} else {
			f.Value = unescape(value)
		}

		fields = append(fields, f)
	}

	return fields
}

// unfold joins continuation lines (lines starting with space or tab)
// onto the preceding line and returns the logical lines.
func unfold(data string) []string {
	raw := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")

	var lines []string

	for _, line := range raw {
		if line == "" {
			continue
		}

		if (line[0] == ' ' || line[0] == '\t') && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}

		lines = append(lines, line)
	}

	return lines
}

// splitNameValue splits a logical line at the first ':' outside
// double quotes.
func splitNameValue(line string) (name, value string, ok bool) {
	inQuotes := false

	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuotes = !inQuotes
		case ':':
			if !inQuotes {
				return line[:i], line[i+1:], true
			}
		}
	}

	return "", "", false
}

// parseName splits the part before ':' into the group prefix, the
// camelCased key, the TYPE list, and the remaining parameters.
func parseName(name string) (group, key string, params map[string]string, types []string) {
	segments := strings.Split(name, ";")

	prop := segments[0]
	if dot := strings.IndexByte(prop, '.'); dot >= 0 {
		group = prop[:dot]
		prop = prop[dot+1:]
	}

	key = camelCase(prop)
	params = map[string]string{}

	for _, seg := range segments[1:] {
		pk, pv, found := strings.Cut(seg, "=")
		if !found || pv == "" {
			continue
		}

		pv = strings.Trim(pv, "\"")

		if strings.EqualFold(pk, "type") {
			for _, t := range strings.Split(pv, ",") {
				if t != "" {
					types = append(types, strings.ToLower(t))
				}
			}

			continue
		}

		params[camelCase(pk)] = pv
	}

	return group, key, params, types
}

// splitComponents splits a compound value on unescaped ';'.
func splitComponents(value string) []string {
	var (
		parts []string
		cur   strings.Builder
	)

	for i := 0; i < len(value); i++ {
		c := value[i]

		if c == '\\' && i+1 < len(value) {
			cur.WriteString(unescapeChar(value[i+1]))
			i++

			continue
		}

		if c == ';' {
			parts = append(parts, cur.String())
			cur.Reset()

			continue
		}

		cur.WriteByte(c)
	}

	parts = append(parts, cur.String())

	return parts
}

// unescape resolves vCard escape sequences in a simple value.
func unescape(value string) string {
	if !strings.ContainsRune(value, '\\') {
		return value
	}

	var out strings.Builder

	for i := 0; i < len(value); i++ {
		if value[i] == '\\' && i+1 < len(value) {
			out.WriteString(unescapeChar(value[i+1]))
			i++

			continue
		}

		out.WriteByte(value[i])
	}

	return out.String()
}

func unescapeChar(c byte) string {
	switch c {
	case 'n', 'N':
		return "\n"
	default:
		return string(c)
	}
}

// camelCase converts a vCard property or parameter name to the key
// form used throughout the frontmatter layer: "X-ABLabel" becomes
// "xAbLabel", "X-SOCIALPROFILE" becomes "xSocialprofile", "nUID"
// becomes "nUid". Dash-separated segments are split into words; an
// uppercase run followed by lowercase letters donates its last letter
// to the next word (so "ABLabel" reads as "AB" + "Label").
func camelCase(name string) string {
	var (
		out   strings.Builder
		first = true
	)

	for _, seg := range strings.Split(name, "-") {
		for _, word := range splitWords(seg) {
			if first {
				out.WriteString(strings.ToLower(word))

				first = false

				continue
			}

			out.WriteString(strings.ToUpper(word[:1]))
			out.WriteString(strings.ToLower(word[1:]))
		}
	}

	return out.String()
}

// splitWords breaks a name segment into case-delimited words.
func splitWords(seg string) []string {
	var words []string

	runes := []rune(seg)
	start := 0

	for i := 1; i < len(runes); i++ {
		prevUpper := isUpper(runes[i-1])
		curUpper := isUpper(runes[i])

		switch {
		case !prevUpper && curUpper:
			// lower→upper boundary: "nUID" splits before "UID".
			words = append(words, string(runes[start:i]))
			start = i
		case prevUpper && !curUpper && i-start > 1:
			// An uppercase run ending in lowercase: the last upper
			// letter starts the next word ("ABLabel" → "AB", "Label").
			words = append(words, string(runes[start:i-1]))
			start = i - 1
		}
	}

	if start < len(runes) {
		words = append(words, string(runes[start:]))
	}

	return words
}

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}
