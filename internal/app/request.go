package app

import (
	"fmt"

	"vcr-go/internal/config"
	"vcr-go/internal/renamer"
)

// Request describes one CLI invocation against a course tree.
// Enable and Disable name rules to switch on or off on top of the config.
type Request struct {
	Root     string
	Platform string
	Enable   []string
	Disable  []string
}

// Rules returns the config's rule selection with the request's overrides
// applied. Naming a rule in both Enable and Disable is an error.
func (r *Request) Rules(cfg *config.Config) (config.RulesConfig, error) {
	rules := cfg.Rules
	enabled := make(map[string]bool, len(r.Enable))
	for _, name := range r.Enable {
		if err := rules.Set(name, true); err != nil {
			return rules, err
		}
		enabled[name] = true
	}
	for _, name := range r.Disable {
		if enabled[name] {
			return rules, fmt.Errorf("rule %s is both enabled and disabled", name)
		}
		if err := rules.Set(name, false); err != nil {
			return rules, err
		}
	}
	return rules, nil
}

// Pipeline builds the rename pipeline for the request. The platform must be
// configured even when append_platform is off, so typos are caught early.
func (r *Request) Pipeline(cfg *config.Config) (*renamer.Pipeline, error) {
	rules, err := r.Rules(cfg)
	if err != nil {
		return nil, err
	}

	suffix, err := renamer.ResolveSuffix(cfg.Platforms, r.Platform)
	if err != nil {
		return nil, err
	}

	return renamer.NewPipeline(renamer.RuleSet{
		StripPrefix:    rules.StripPrefix,
		ReplaceImage:   rules.ReplaceImage,
		IncreaseIndex:  rules.IncreaseIndex,
		CleanName:      rules.CleanName,
		AppendPlatform: rules.AppendPlatform,
	}, suffix), nil
}
