package format

import (
	"github.com/samber/lo"

	"github.com/yaklabco/sclangfmt/pkg/config"
)

// ResolveRules returns the enabled rules of the registry in pipeline order,
// limited to the given stages (all stages when empty).
//
// A rule starts at its default, then the rules map of the configuration
// applies, then the CLI enable list, then the CLI disable list.
func ResolveRules(registry *Registry, cfg *config.Config, stages []Stage) []Rule {
	return lo.Filter(registry.Rules(), func(rule Rule, _ int) bool {
		if len(stages) > 0 && !lo.Contains(stages, rule.Stage()) {
			return false
		}
		return ruleEnabled(rule, cfg)
	})
}

func ruleEnabled(rule Rule, cfg *config.Config) bool {
	enabled := rule.DefaultEnabled()
	if cfg == nil {
		return enabled
	}

	if ruleCfg, ok := cfg.Rules[rule.ID()]; ok && ruleCfg.Enabled != nil {
		enabled = *ruleCfg.Enabled
	}
	if lo.Contains(cfg.EnableRules, rule.ID()) || lo.Contains(cfg.EnableRules, rule.Name()) {
		enabled = true
	}
	if lo.Contains(cfg.DisableRules, rule.ID()) || lo.Contains(cfg.DisableRules, rule.Name()) {
		enabled = false
	}
	return enabled
}
