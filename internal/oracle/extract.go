package oracle

import (
	"encoding/json"
	"strings"
)

// Verdict is the structured result of a fix validation.
type Verdict struct {
	Fixed       bool   `json:"fixed"`
	Explanation string `json:"explanation"`
}

// ExtractVerdict pulls the first-{ .. last-} JSON object out of free-form
// oracle text. Anything that does not decode as a verdict degrades to
// fixed:false; a parse failure is never an error.
func ExtractVerdict(text string) Verdict {
	fallback := Verdict{Fixed: false, Explanation: "Could not parse validation result."}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return fallback
	}

	var v Verdict
	if err := json.Unmarshal([]byte(text[start:end+1]), &v); err != nil {
		return fallback
	}
	return v
}
