package moderation

import (
	"encoding/json"
	"strings"
)

// PromptRow is the slice of a posting the classifier gets to see. Everything
// else rides along opaquely when the row is moved.
type PromptRow struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Company    string `json:"company"`
	URL        string `json:"url,omitempty"`
	SalaryLow  int    `json:"salaryLow,omitempty"`
	SalaryHigh int    `json:"salaryHigh,omitempty"`
}

// BuildPrompt renders the moderation instruction block for one batch. It is
// deterministic and pure: same rows and source, same string.
//
// The rubric deliberately biases the model toward "valid" — a legitimate
// posting wrongly trashed costs more than a spam posting a human later
// removes. The output-format directive is load-bearing: ParseVerdicts
// expects one raw JSON object, and the two must change together.
func BuildPrompt(rows []PromptRow, source string) string {
	data, _ := json.MarshalIndent(rows, "", "  ")

	return strings.Join([]string{
		"You are a cautious but **inclusive** moderator for an online job board.",
		"",
		"### TASK",
		"For each JSON object decide whether it is:",
		`• **"valid"** – a plausible job / internship worth publishing`,
		`• **"spam"**  – obviously fraudulent, unethical, or missing core info`,
		"",
		"**When in doubt, choose *valid*.** Err on inclusion.",
		"",
		"### OUTPUT FORMAT",
		"Reply with **one raw JSON object** (no markdown).",
		`Keys   → row "id"`,
		`Values → "valid" or "spam"`,
		"",
		"### VERY OBVIOUS RED FLAGS (mark as spam)",
		"1. Contains words like *MLM*, *escort*, *casino*, *crypto pump*, *organ trade*.",
		"2. URL is plain HTTP and the domain looks random (e.g. numbers-only).",
		"3. Salary upper-bound ≥ 10 million (clearly nonsense) **or** ≤ 0.",
		"4. Both *title* **and** *company* are empty.",
		"",
		"### OTHERWISE DEFAULT TO VALID",
		"",
		"### EXAMPLES",
		`{"id":"ok1","title":"Software Engineer","company":"Apple","url":"https://jobs.apple.com/123"} → valid`,
		`{"id":"bad1","title":"Crypto Pump Recruiter","company":"MoonCoin","url":"http://moon-pump.xyz"} → spam`,
		"",
		"### DATA (source = " + source + ")",
		string(data),
		"",
		"### REMINDER",
		"**Respond with only the JSON** — no comments, no markdown.",
	}, "\n")
}
