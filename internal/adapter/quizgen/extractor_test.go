package quizgen

import (
	"testing"

	"github.com/Swayamo/quizverse/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "json fenced payload",
			input: "```json\n[1,2]\n```",
			want:  "[1,2]",
		},
		{
			name:  "plain fenced payload",
			input: "```\n[{\"question\": \"Q1\"}]\n```",
			want:  `[{"question": "Q1"}]`,
		},
		{
			name:  "payload wrapped in prose",
			input: "Here is your quiz:\n[{\"question\": \"Q1\"}]\nEnjoy!",
			want:  `[{"question": "Q1"}]`,
		},
		{
			name:  "bare payload",
			input: `[{"question": "Q1"}]`,
			want:  `[{"question": "Q1"}]`,
		},
		{
			name:    "no brackets at all",
			input:   "I could not generate a quiz for that topic.",
			wantErr: true,
		},
		{
			name:    "closing bracket before opening",
			input:   "] nothing here [",
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONArray(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, domain.IsCode(err, domain.CodeExtraction))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "fenced object",
			input: "```json\n{\"quiz\": {}}\n```",
			want:  `{"quiz": {}}`,
		},
		{
			name:  "object with surrounding prose",
			input: "Sure! {\"quiz\": {\"topic\": \"Go\"}} Hope that helps.",
			want:  `{"quiz": {"topic": "Go"}}`,
		},
		{
			name:    "no braces",
			input:   "no structured data here",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, domain.IsCode(err, domain.CodeExtraction))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// The boundary search is first/last occurrence, not bracket-balanced. Prose
// containing a stray bracket after the payload shifts the extracted slice;
// this pins the known behavior rather than endorsing it.
func TestExtractJSONArrayNotBalanced(t *testing.T) {
	input := `[{"question": "Q1"}] and also [see docs]`
	got, err := ExtractJSONArray(input)
	assert.NoError(t, err)
	assert.Equal(t, `[{"question": "Q1"}] and also [see docs]`, got)
}
