package advisor

import (
	"fmt"
	"strings"
)

const systemPrompt = `You identify which musical instrument part a scanned sheet-music page header refers to.
Answer with a JSON object {"instrument": "<name from the provided list, or empty string>", "confidence": <0.0-1.0>}.
Pick only from the provided list. Use an empty instrument when the header does not name a part.`

func buildUserPrompt(fragment string, candidates []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Page header text: %q\n\nKnown instrument parts:\n", fragment)
	for _, candidate := range candidates {
		b.WriteString("- ")
		b.WriteString(candidate)
		b.WriteByte('\n')
	}
	return b.String()
}
