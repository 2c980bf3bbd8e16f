package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare json", `{"formName":"x"}`, `{"formName":"x"}`},
		{"json fence", "```json\n{\"formName\":\"x\"}\n```", `{"formName":"x"}`},
		{"generic fence", "```\n{\"formName\":\"x\"}\n```", `{"formName":"x"}`},
		{"fence with language id", "```javascript\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n{\"a\":1}\n  ", `{"a":1}`},
		{"empty", "", ""},
		{"fence on same line as brace", "```{\"a\":1}```", `{"a":1}`},
		{"array on first fence line kept", "```\n[\"a\",\"b\"]\n```", `["a","b"]`},
		{"quoted string first line kept", "```\n\"json\"\n```", `"json"`},
		{"json5 language id dropped", "```json5\n{\"a\":1}\n```", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.input))
		})
	}
}
