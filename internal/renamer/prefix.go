package renamer

import (
	"strings"
	"unicode/utf8"
)

// LeadingPrefixExists reports whether every name in a sibling set starts with
// the same decimal digit, which is taken to be left over from export
// numbering rather than part of the name.
//
// A set of zero or one names never has a prefix. A set whose names all have
// their first '.' right after the first character ("1.Intro", "2.Setup") is
// already a single-digit ordinal and is left alone. A set containing a name
// that stripping would empty is also left alone.
func LeadingPrefixExists(names []string) bool {
	if len(names) <= 1 {
		return false
	}

	allOrdinal := true
	for _, name := range names {
		if firstDotIndex(name) != 1 {
			allOrdinal = false
			break
		}
	}
	if allOrdinal {
		return false
	}

	first, _ := utf8.DecodeRuneInString(names[0])
	if first < '0' || first > '9' {
		return false
	}

	prefix := string(first)
	for _, name := range names {
		if !strings.HasPrefix(name, prefix) || utf8.RuneCountInString(name) < 2 {
			return false
		}
	}
	return true
}

// StripFirstChar removes the first character of name.
func StripFirstChar(name string) string {
	_, size := utf8.DecodeRuneInString(name)
	return name[size:]
}

// StripLeadingPrefix peels shared leading digits off a sibling set, one
// character per pass, until LeadingPrefixExists no longer holds.
// It returns the new names; the input slice is not modified.
func StripLeadingPrefix(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	for LeadingPrefixExists(out) {
		for i := range out {
			out[i] = StripFirstChar(out[i])
		}
	}
	return out
}

// firstDotIndex returns the character index of the first '.' in name, or -1.
func firstDotIndex(name string) int {
	i := strings.IndexByte(name, '.')
	if i < 0 {
		return -1
	}
	return utf8.RuneCountInString(name[:i])
}
