package renamer

import (
	"math"
	"strconv"
	"strings"
)

// Rule names, as used in configuration and on the command line.
const (
	RuleStripPrefix    = "strip_prefix"
	RuleIncreaseIndex  = "increase_index"
	RuleReplaceImage   = "replace_image"
	RuleCleanName      = "clean_name"
	RuleAppendPlatform = "append_platform"
)

// Kind distinguishes directory and file sibling sets.
type Kind int

const (
	KindDir Kind = iota
	KindFile
)

func (k Kind) String() string {
	if k == KindDir {
		return "dir"
	}
	return "file"
}

// Rule computes new names for a sibling set.
// Rename must return a slice of the same length as names; an entry equal to
// its input means the entry is left alone.
type Rule interface {
	Name() string
	Rename(names []string) []string
}

// StripPrefix returns the rule that removes shared leading digits.
func StripPrefix() Rule { return stripPrefixRule{} }

type stripPrefixRule struct{}

func (stripPrefixRule) Name() string { return RuleStripPrefix }

func (stripPrefixRule) Rename(names []string) []string { return StripLeadingPrefix(names) }

// nameRule applies fn to every name independently.
type nameRule struct {
	name string
	fn   func(string) string
}

func (r nameRule) Name() string { return r.name }

func (r nameRule) Rename(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = r.fn(n)
	}
	return out
}

// ReplaceImage renames "image.jpg" to "poster.jpg". The match is exact and
// case-sensitive.
func ReplaceImage() Rule {
	return nameRule{name: RuleReplaceImage, fn: replaceImageName}
}

func replaceImageName(name string) string {
	if name != "image.jpg" {
		return name
	}
	return "poster.jpg"
}

// IncreaseIndex bumps a leading "N." sequence index by one.
// For files, hidden names (leading '.') are skipped.
func IncreaseIndex(kind Kind) Rule {
	return nameRule{name: RuleIncreaseIndex, fn: func(name string) string {
		return increaseIndex(name, kind)
	}}
}

func increaseIndex(name string, kind Kind) string {
	if kind == KindFile && strings.HasPrefix(name, ".") {
		return name
	}
	index, rest, ok := strings.Cut(name, ".")
	if !ok {
		return name
	}
	n, err := strconv.Atoi(strings.TrimSpace(index))
	if err != nil || n == math.MaxInt {
		return name
	}
	return strconv.Itoa(n+1) + "." + rest
}

// CleanName normalizes hyphen-delimited segments to " - ".
// For files, a dangling "-" before .mp4 or .srt is dropped first.
func CleanName(kind Kind) Rule {
	return nameRule{name: RuleCleanName, fn: func(name string) string {
		return cleanName(name, kind)
	}}
}

func cleanName(name string, kind Kind) string {
	if kind == KindFile {
		for _, ext := range []string{".mp4", ".srt"} {
			if strings.HasSuffix(name, "-"+ext) {
				name = strings.ReplaceAll(name, "-"+ext, ext)
			}
		}
	}
	segments := strings.Split(name, "-")
	for i, s := range segments {
		segments[i] = strings.TrimSpace(s)
	}
	return strings.Join(segments, " - ")
}

// PlatformSuffix appends suffix to each name. Names that already carry the
// suffix are left alone so repeated runs do not stack it.
func PlatformSuffix(suffix string) Rule {
	return nameRule{name: RuleAppendPlatform, fn: func(name string) string {
		if suffix == "" || strings.HasSuffix(name, suffix) {
			return name
		}
		return name + suffix
	}}
}

// suffixedRule runs a rule on top-level names as if the platform suffix were
// absent, so a re-run sees the same base names the first run saw. Changed
// names get their suffix back.
type suffixedRule struct {
	Rule
	suffix string
}

func (r suffixedRule) Rename(names []string) []string {
	bases := make([]string, len(names))
	carried := make([]bool, len(names))
	for i, n := range names {
		if len(n) > len(r.suffix) && strings.HasSuffix(n, r.suffix) {
			bases[i] = strings.TrimSuffix(n, r.suffix)
			carried[i] = true
			continue
		}
		bases[i] = n
	}

	out := r.Rule.Rename(bases)
	for i := range out {
		switch {
		case out[i] == bases[i]:
			out[i] = names[i]
		case carried[i]:
			out[i] += r.suffix
		}
	}
	return out
}
