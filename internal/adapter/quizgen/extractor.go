// Package quizgen implements the quiz generation pipeline: prompt building,
// the LLM call, defensive extraction and normalization of the model's output,
// and the deterministic fallback bank used when any stage fails.
package quizgen

import (
	"strings"

	"github.com/Swayamo/quizverse/internal/domain"
)

// stripFences removes a leading ```json or ``` fence and the trailing fence
// when the response is wrapped in a markdown code block.
func stripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "```json") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		return strings.TrimSpace(trimmed)
	}
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		return strings.TrimSpace(trimmed)
	}
	return trimmed
}

// ExtractJSONArray locates the JSON array payload inside an arbitrary LLM
// response: the substring from the first '[' to the last ']' inclusive,
// after stripping any markdown fence.
//
// The boundary search is deliberately not bracket-balanced; a '[' or ']' in
// prose outside the payload can shift the boundaries. This mirrors the
// behavior the rest of the pipeline was tuned against, and the normalizer
// rejects anything that does not parse into a valid quiz.
func ExtractJSONArray(text string) (string, error) {
	cleaned := stripFences(text)

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end < start {
		return "", domain.NewExtractionError("could not find valid JSON array in the AI response")
	}
	return cleaned[start : end+1], nil
}

// ExtractJSONObject is the object-payload counterpart of ExtractJSONArray,
// bounded by the first '{' and the last '}'.
func ExtractJSONObject(text string) (string, error) {
	cleaned := stripFences(text)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return "", domain.NewExtractionError("could not find valid JSON object in the AI response")
	}
	return cleaned[start : end+1], nil
}
