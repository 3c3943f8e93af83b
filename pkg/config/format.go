package config

// FormatRuleID renders a rule identifier in the given format.
// An empty name always renders as the bare ID.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	if ruleName == "" {
		return ruleID
	}

	switch format {
	case RuleFormatID:
		return ruleID
	case RuleFormatName:
		return ruleName
	default:
		return ruleID + "/" + ruleName
	}
}

// IsValid reports whether the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatDiff:
		return true
	default:
		return false
	}
}

// IsValid reports whether the indent style is known.
func (s IndentStyle) IsValid() bool {
	return s == IndentSpaces || s == IndentTabs
}
