package rules

import (
	"github.com/yaklabco/sclangfmt/pkg/config"
	"github.com/yaklabco/sclangfmt/pkg/format"
)

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *format.Registry) {
	// Structural rules
	registry.Register(NewBlockBraceLayoutRule())      // SC101
	registry.Register(NewArgToPipeRule())             // SC102
	registry.Register(NewPipeHeaderOnBraceLineRule()) // SC103
	registry.Register(NewTrailingClosureRule())       // SC104
	registry.Register(NewIterationClosureRule())      // SC105
	registry.Register(NewPipeParamCommasRule())       // SC106
	registry.Register(NewDotChainLayoutRule())        // SC107

	// Header rules
	registry.Register(NewPipeDefaultParensRule()) // SC201

	// Spacing rules
	registry.Register(NewCommaSpacingRule())              // SC301
	registry.Register(NewAssignmentSpacingRule())         // SC302
	registry.Register(NewSemicolonSpacingRule())          // SC303
	registry.Register(NewDotSpacingRule())                // SC304
	registry.Register(NewBlockPaddingRule())              // SC305
	registry.Register(NewBinaryOperatorSpacingRule())     // SC306
	registry.Register(NewColonSpacingRule())              // SC307
	registry.Register(NewKeywordParenSpacingRule())       // SC308
	registry.Register(NewCallParenSpacingRule())          // SC309
	registry.Register(NewParenPaddingRule())              // SC310
	registry.Register(NewBlockBraceSpacingRule())         // SC311
	registry.Register(NewDeclarationKeywordSpacingRule()) // SC312
	registry.Register(NewPipeHeaderSpacingRule())         // SC313
	registry.Register(NewPipeBodySpacingRule())           // SC314
	registry.Register(NewInlineCommentSpacingRule())      // SC315

	// Indent rules
	registry.Register(NewIndentStyleRule())      // SC401
	registry.Register(NewNestingIndentRule())    // SC402
	registry.Register(NewInlineWhitespaceRule()) // SC403

	// Layout rules
	registry.Register(NewIfCompactRule())         // SC501
	registry.Register(NewIfExpandRule())          // SC502
	registry.Register(NewCollectionCompactRule()) // SC503
	registry.Register(NewCollectionExpandRule())  // SC504
	registry.Register(NewArrayMultilineRule())    // SC505
	registry.Register(NewEventMultilineRule())    // SC506

	// Cleanup rules
	registry.Register(NewNoSemicolonBeforeBraceRule()) // SC601
	registry.Register(NewTrailingWhitespaceRule())     // SC602
	registry.Register(NewFinalNewlineRule())           // SC603
}

// RuleInfos describes the rules of a registry for config templates.
func RuleInfos(registry *format.Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, len(rules))
	for i, rule := range rules {
		infos[i] = config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Stage:       rule.Stage().String(),
			Enabled:     rule.DefaultEnabled(),
			Tags:        rule.Tags(),
		}
	}
	return infos
}

//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(format.DefaultRegistry)
	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		return RuleInfos(format.DefaultRegistry)
	}
}
