package moderation

import (
	"encoding/json"
	"strings"
)

// Verdict values the classifier may assign.
const (
	VerdictValid = "valid"
	VerdictSpam  = "spam"
)

// ParseVerdicts extracts an id→verdict map from raw model output, tolerating
// the ways the model empirically misbehaves despite the prompt's "raw JSON
// only" directive: fenced code blocks, and commentary before or after the
// object. Returns nil when nothing parseable remains; the caller treats nil
// as "classification unavailable".
//
// The recovery order is fixed:
//  1. strip a leading ```-fence line (with optional language tag) and a
//     trailing ``` closer, then trim;
//  2. parse the whole remainder as one JSON object of string values;
//  3. failing that, parse the substring from the first '{' to the last '}'.
func ParseVerdicts(raw string) map[string]string {
	text := stripFences(raw)

	var verdicts map[string]string
	if err := json.Unmarshal([]byte(text), &verdicts); err == nil {
		return verdicts
	}

	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first != -1 && last != -1 && last > first {
		if err := json.Unmarshal([]byte(text[first:last+1]), &verdicts); err == nil {
			return verdicts
		}
	}
	return nil
}

func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		if nl := strings.Index(text, "\n"); nl != -1 {
			text = text[nl+1:]
		} else {
			text = ""
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
