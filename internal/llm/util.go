package llm

import (
	"regexp"
	"strings"
)

// A fence info string per CommonMark: a word starting with a letter, as in
// ```json or ```c++. Anything else on the first line is payload.
var fenceLangRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+#.-]*$`)

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// LLMs often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Drop the first line only when it is a language identifier.
		if idx := strings.Index(text, "\n"); idx >= 0 {
			if fenceLangRe.MatchString(text[:idx]) {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}
