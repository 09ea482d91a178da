package renamer

import (
	"fmt"
	"sort"
	"strings"
)

// RuleSet selects which rules run.
type RuleSet struct {
	StripPrefix    bool
	ReplaceImage   bool
	IncreaseIndex  bool
	CleanName      bool
	AppendPlatform bool
}

// DefaultRuleSet enables the rules of a standard run.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		StripPrefix:    true,
		ReplaceImage:   true,
		AppendPlatform: true,
	}
}

// Step is one pipeline entry.
type Step struct {
	Rule    Rule
	Enabled bool
}

// Pipeline is the ordered rule list applied to each sibling set.
// Dirs run on the subdirectories of every directory, Files on the files of
// every directory below the root, and TopLevel on the root's subdirectories
// once the walk is complete.
//
// Suffix is the platform suffix. Directory rules on the root's subdirectories
// look past it, so names tagged by an earlier run are treated like the
// untagged names they came from.
type Pipeline struct {
	Dirs     []Step
	Files    []Step
	TopLevel []Step
	Suffix   string
}

// NewPipeline builds the standard rule order for the given selection.
func NewPipeline(rules RuleSet, suffix string) *Pipeline {
	return &Pipeline{
		Dirs: []Step{
			{Rule: StripPrefix(), Enabled: rules.StripPrefix},
			{Rule: IncreaseIndex(KindDir), Enabled: rules.IncreaseIndex},
			{Rule: CleanName(KindDir), Enabled: rules.CleanName},
		},
		Files: []Step{
			{Rule: StripPrefix(), Enabled: rules.StripPrefix},
			{Rule: IncreaseIndex(KindFile), Enabled: rules.IncreaseIndex},
			{Rule: ReplaceImage(), Enabled: rules.ReplaceImage},
			{Rule: CleanName(KindFile), Enabled: rules.CleanName},
		},
		TopLevel: []Step{
			{Rule: PlatformSuffix(suffix), Enabled: rules.AppendPlatform},
		},
		Suffix: suffix,
	}
}

// topLevel adapts a directory rule for the root's sibling set.
func (p *Pipeline) topLevel(r Rule) Rule {
	if p.Suffix == "" {
		return r
	}
	return suffixedRule{Rule: r, suffix: p.Suffix}
}

// Enabled returns the sorted, de-duplicated names of the enabled rules.
func (p *Pipeline) Enabled() []string {
	seen := make(map[string]bool)
	for _, steps := range [][]Step{p.Dirs, p.Files, p.TopLevel} {
		for _, s := range steps {
			if s.Enabled {
				seen[s.Rule.Name()] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ResolveSuffix looks up the suffix for platform. An exact key match wins;
// otherwise the lookup is case-insensitive.
func ResolveSuffix(platforms map[string]string, platform string) (string, error) {
	if suffix, ok := platforms[platform]; ok {
		return suffix, nil
	}
	for name, suffix := range platforms {
		if strings.EqualFold(name, platform) {
			return suffix, nil
		}
	}

	known := make([]string, 0, len(platforms))
	for name := range platforms {
		known = append(known, name)
	}
	sort.Strings(known)
	return "", fmt.Errorf("%w %q (known: %s)", ErrUnknownPlatform, platform, strings.Join(known, ", "))
}
