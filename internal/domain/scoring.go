package domain

// Strength bands are thresholded independently from feedback bands. The cut
// points differ on purpose; do not merge them.
const (
	StrengthExcellent     = "excellent"
	StrengthGood          = "good"
	StrengthNeedsPractice = "needs practice"

	FeedbackWellDone       = "well done"
	FeedbackKeepPracticing = "keep practicing"
	FeedbackReview         = "review recommended"
)

// ScoreSubmission evaluates a submission against the quiz's persisted
// correctness flags. An answer referencing an unknown question or option is
// skipped rather than failing the whole submission. TotalQuestions counts the
// submitted answers, not the quiz's questions, so a partial submission is
// scored over what was attempted.
func ScoreSubmission(quiz *Quiz, answers []SubmissionAnswer) *ScoredResult {
	optionsByQuestion := make(map[string]map[string]bool, len(quiz.Questions))
	for _, q := range quiz.Questions {
		opts := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			opts[o.ID] = o.IsCorrect
		}
		optionsByQuestion[q.ID] = opts
	}

	result := &ScoredResult{
		TotalQuestions: len(answers),
		PerQuestion:    make(map[string]bool),
	}

	for _, answer := range answers {
		opts, ok := optionsByQuestion[answer.QuestionID]
		if !ok {
			continue
		}
		isCorrect, ok := opts[answer.SelectedOptionID]
		if !ok {
			continue
		}
		if isCorrect {
			result.Score++
		}
		result.PerQuestion[answer.QuestionID] = isCorrect
		result.AnswerResults = append(result.AnswerResults, AnswerResult{
			QuestionID:       answer.QuestionID,
			SelectedOptionID: answer.SelectedOptionID,
			IsCorrect:        isCorrect,
		})
	}

	result.Percentage = Percentage(result.Score, result.TotalQuestions)
	result.StrengthBand = StrengthBand(result.Percentage)
	result.Feedback = FeedbackBand(result.Percentage)
	return result
}

// Percentage reports 0 for an empty submission instead of dividing by zero.
func Percentage(score, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(score) / float64(total) * 100
}

// StrengthBand maps a percentage onto a qualitative band. Boundaries are
// inclusive at the lower bound of each tier.
func StrengthBand(percentage float64) string {
	switch {
	case percentage >= 80:
		return StrengthExcellent
	case percentage >= 60:
		return StrengthGood
	default:
		return StrengthNeedsPractice
	}
}

// FeedbackBand uses its own cut points, distinct from StrengthBand.
func FeedbackBand(percentage float64) string {
	switch {
	case percentage >= 70:
		return FeedbackWellDone
	case percentage >= 50:
		return FeedbackKeepPracticing
	default:
		return FeedbackReview
	}
}
