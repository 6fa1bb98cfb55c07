package token

// SepKind classifies what follows a word in the source.
type SepKind uint8

const (
	// SepNone means nothing follows the word (end of input without newline).
	SepNone SepKind = iota
	// SepSpace is a single space character.
	SepSpace
	// SepBreak is a break character (see Separator.Char), kept on emission.
	SepBreak
	// SepNewline terminates a source line.
	SepNewline
)

func (k SepKind) String() string {
	switch k {
	case SepNone:
		return "none"
	case SepSpace:
		return "space"
	case SepBreak:
		return "break"
	case SepNewline:
		return "newline"
	default:
		return "unknown"
	}
}
