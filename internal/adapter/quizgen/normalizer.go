package quizgen

import (
	"encoding/json"
	"fmt"

	"github.com/Swayamo/quizverse/internal/domain"
)

// The LLM does not reliably honor the requested output schema. Four shapes
// show up in practice and are detected in fixed priority order:
//
//  1. { "quiz": { "topic", "description", "questions" } }
//  2. a bare array of question objects
//  3. { "questions": [...], "topic"?, "description"? }   (already canonical)
//  4. { "quizz": { "name", "description", "questions" } } where questions may
//     use { "questionText", "answers": [{ "answerText", "isCorrect" }] }
//
// The first detector that recognizes the payload wins.

const defaultTopic = "General Knowledge"

type shapeDetector func(raw any) (topic, description string, questions []any, ok bool)

var shapeDetectors = []shapeDetector{
	detectWrappedQuiz,
	detectBareArray,
	detectCanonical,
	detectQuizzShape,
}

// Normalize converts a decoded JSON payload in any recognized shape into the
// canonical quiz representation, validating every question on the way.
// Normalizing already-canonical input is a no-op, so the operation is
// idempotent.
func Normalize(raw any) (*domain.GeneratedQuiz, error) {
	if raw == nil {
		return nil, domain.NewValidationError("quiz data must be a valid object")
	}

	var (
		topic       string
		description string
		questions   []any
		matched     bool
	)
	for _, detect := range shapeDetectors {
		if t, d, qs, ok := detect(raw); ok {
			topic, description, questions, matched = t, d, qs, true
			break
		}
	}
	if !matched {
		return nil, domain.NewValidationError("quiz data does not match any known shape")
	}

	if len(questions) == 0 {
		return nil, domain.NewValidationError("quiz must contain at least one question")
	}

	quiz := &domain.GeneratedQuiz{
		Topic:       topic,
		Description: description,
		Questions:   make([]domain.GeneratedQuestion, 0, len(questions)),
	}
	if quiz.Topic == "" {
		quiz.Topic = defaultTopic
	}

	for i, rawQuestion := range questions {
		question, err := normalizeQuestion(rawQuestion, i+1)
		if err != nil {
			return nil, err
		}
		quiz.Questions = append(quiz.Questions, *question)
	}

	return quiz, nil
}

// NormalizeBytes decodes a JSON payload and normalizes it.
func NormalizeBytes(data []byte) (*domain.GeneratedQuiz, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("quiz payload is not valid JSON: %v", err))
	}
	return Normalize(raw)
}

func detectWrappedQuiz(raw any) (string, string, []any, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return "", "", nil, false
	}
	inner, ok := obj["quiz"].(map[string]any)
	if !ok {
		return "", "", nil, false
	}
	questions, _ := inner["questions"].([]any)
	return stringField(inner, "topic"), stringField(inner, "description"), questions, true
}

func detectBareArray(raw any) (string, string, []any, bool) {
	arr, ok := raw.([]any)
	if !ok {
		return "", "", nil, false
	}
	return "", "", arr, true
}

func detectCanonical(raw any) (string, string, []any, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return "", "", nil, false
	}
	rawQuestions, ok := obj["questions"]
	if !ok {
		return "", "", nil, false
	}
	questions, _ := rawQuestions.([]any)
	return stringField(obj, "topic"), stringField(obj, "description"), questions, true
}

func detectQuizzShape(raw any) (string, string, []any, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return "", "", nil, false
	}
	inner, ok := obj["quizz"].(map[string]any)
	if !ok {
		return "", "", nil, false
	}
	questions, _ := inner["questions"].([]any)
	return stringField(inner, "name"), stringField(inner, "description"), questions, true
}

// normalizeQuestion validates one question object and translates the
// alternate {questionText, answers:[{answerText, isCorrect}]} layout into
// the canonical one. index is 1-based and only used in error messages.
func normalizeQuestion(raw any, index int) (*domain.GeneratedQuestion, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, domain.NewValidationError(fmt.Sprintf("question %d is not a valid object", index))
	}

	text := stringField(obj, "question")
	if text == "" {
		text = stringField(obj, "questionText")
	}
	if text == "" {
		return nil, domain.NewValidationError(fmt.Sprintf("question %d is missing question text", index))
	}

	answers, _ := obj["answers"].([]any)

	options := stringSliceField(obj, "options")
	if len(options) == 0 && len(answers) > 0 {
		for _, rawAnswer := range answers {
			if answer, ok := rawAnswer.(map[string]any); ok {
				options = append(options, stringField(answer, "answerText"))
			}
		}
	}
	if len(options) < 2 {
		return nil, domain.NewValidationError(fmt.Sprintf("question %d must have at least 2 options", index))
	}

	correctAnswer := stringField(obj, "correctAnswer")
	if correctAnswer == "" && len(answers) > 0 {
		for _, rawAnswer := range answers {
			answer, ok := rawAnswer.(map[string]any)
			if !ok {
				continue
			}
			if isCorrect, _ := answer["isCorrect"].(bool); isCorrect {
				correctAnswer = stringField(answer, "answerText")
				break
			}
		}
	}
	if correctAnswer == "" {
		return nil, domain.NewValidationError(fmt.Sprintf("question %d is missing correct answer", index))
	}

	question := &domain.GeneratedQuestion{
		Question:      text,
		Options:       options,
		CorrectAnswer: correctAnswer,
		Explanation:   stringField(obj, "explanation"),
	}

	found := false
	for _, opt := range question.Options {
		if opt == question.CorrectAnswer {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.NewValidationError(
			fmt.Sprintf("the correct answer for question %d must be included in the options", index))
	}

	return question, nil
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func stringSliceField(obj map[string]any, key string) []string {
	raw, ok := obj[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
