package classify

// Rule identifies the rule that produced a Decision.
type Rule uint8

const (
	// RuleLastLine marks the final line, which never keeps a break.
	RuleLastLine Rule = iota
	RuleDisabled
	RuleEmptyLine
	RuleIndent
	RuleStartBreakChar
	RuleFits
	RuleStartChar
	RuleSoft
)

func (r Rule) String() string {
	switch r {
	case RuleLastLine:
		return "last-line"
	case RuleDisabled:
		return "disabled"
	case RuleEmptyLine:
		return "empty-line"
	case RuleIndent:
		return "indent"
	case RuleStartBreakChar:
		return "start-breakchar"
	case RuleFits:
		return "fits"
	case RuleStartChar:
		return "startchar"
	case RuleSoft:
		return "soft"
	default:
		return "unknown"
	}
}

// Decision is the verdict for the boundary after one line.
type Decision struct {
	Manual bool
	Rule   Rule
}
