package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"reflow/internal/classify"
	"reflow/internal/token"
)

// DecisionOutput describes the boundary after one line.
type DecisionOutput struct {
	Line    int    `json:"line"`
	Text    string `json:"text"`
	OrigLen int    `json:"orig_len"`
	Break   string `json:"break"`
	Rule    string `json:"rule"`
}

func buildDecisions(lines []token.Line, ds []classify.Decision) []DecisionOutput {
	n := min(len(lines), len(ds))
	out := make([]DecisionOutput, 0, n)
	for i := range n {
		kind := "soft"
		if ds[i].Manual {
			kind = "manual"
		}
		out = append(out, DecisionOutput{
			Line:    lines[i].Index + 1,
			Text:    strings.Join(lines[i].Words(), " "),
			OrigLen: lines[i].OrigLen,
			Break:   kind,
			Rule:    ds[i].Rule.String(),
		})
	}
	return out
}

// FormatDecisionsPretty prints one row per line: number, verdict, rule, text.
func FormatDecisionsPretty(w io.Writer, lines []token.Line, ds []classify.Decision, colored bool) error {
	pal := newPalette(colored)
	for _, d := range buildDecisions(lines, ds) {
		verdict := pal.note.Sprintf("%-6s", d.Break)
		if d.Break == "manual" {
			verdict = pal.warn.Sprintf("%-6s", d.Break)
		}
		if _, err := fmt.Fprintf(w, "%4d %s %-15s %3d | %s\n", d.Line, verdict, d.Rule, d.OrigLen, d.Text); err != nil {
			return err
		}
	}
	return nil
}

// FormatDecisionsJSON writes the same rows as a JSON array.
func FormatDecisionsJSON(w io.Writer, lines []token.Line, ds []classify.Decision) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildDecisions(lines, ds))
}
