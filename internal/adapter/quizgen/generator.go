package quizgen

import (
	"context"
	"fmt"
	"time"

	"github.com/Swayamo/quizverse/internal/domain"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// sourceTextLimit caps how much document text is embedded in the prompt.
const sourceTextLimit = 8000

const defaultTimeout = 30 * time.Second

const topicPromptTemplate = `Generate a %s quiz with %d multiple choice questions about %s.
Each question should have 4 options with only one correct answer.
Format the response as a valid JSON array with this exact structure:
[{"question": "Question text", "options": ["Option1", "Option2", "Option3", "Option4"], "correctAnswer": "Correct option text", "explanation": "Why this answer is correct"}]
Ensure the output is ONLY the JSON array, without any introductory text or markdown formatting.`

const documentPromptTemplate = `Given the following text extracted from a document, generate a %s level quiz about "%s" with %d multiple choice questions.

Text from document:
%s%s

Format the response as a valid JSON object with this exact structure:
{
  "quiz": {
    "topic": "%s",
    "description": "Brief description of the quiz based on the document content",
    "questions": [
      {
        "question": "Question text",
        "options": ["Option1", "Option2", "Option3", "Option4"],
        "correctAnswer": "Correct option text",
        "explanation": "Why this answer is correct"
      }
    ]
  }
}

Ensure questions are directly related to the content in the document. The output should be ONLY the JSON object.`

// Generator orchestrates quiz generation: it prompts the LLM, pipes the raw
// response through extraction and normalization, and degrades to the fallback
// bank on any failure along the way. Callers always receive a well-formed
// quiz unless even the fallback produces nothing.
type Generator struct {
	llm     llms.Model
	timeout time.Duration
	logger  *zap.Logger
}

// NewGenerator creates a Generator. timeout bounds each LLM call; zero means
// the default of 30s.
func NewGenerator(llm llms.Model, timeout time.Duration, logger *zap.Logger) *Generator {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Generator{
		llm:     llm,
		timeout: timeout,
		logger:  logger,
	}
}

var _ domain.QuizGenerationService = (*Generator)(nil)

// Generate produces a canonical quiz for the request. LLM transport errors,
// unparseable responses and validation failures are all treated the same:
// logged and routed to the fallback path. The returned error is non-nil only
// when the fallback itself yields zero questions.
func (g *Generator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GeneratedQuiz, error) {
	req.Difficulty = domain.NormalizeDifficulty(req.Difficulty)
	if req.NumQuestions <= 0 {
		req.NumQuestions = 3
	}

	quiz, err := g.generateWithLLM(ctx, req)
	if err != nil {
		g.logger.Warn("AI generation failed, using fallback questions",
			zap.String("topic", req.Topic),
			zap.Error(err))
		quiz = g.fallbackQuiz(req)
	} else {
		g.logger.Info("AI generation succeeded",
			zap.String("topic", req.Topic),
			zap.Int("num_questions", len(quiz.Questions)))
	}

	if len(quiz.Questions) == 0 {
		return nil, domain.NewGenerationError(
			fmt.Sprintf("could not produce any questions for topic %q", req.Topic))
	}
	return quiz, nil
}

// generateWithLLM runs the happy path: prompt, call, extract, parse,
// normalize. Every failure is returned to the caller for fallback handling;
// nothing here is surfaced to the end user.
func (g *Generator) generateWithLLM(ctx context.Context, req domain.GenerationRequest) (*domain.GeneratedQuiz, error) {
	prompt := g.buildPrompt(req)

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	response, err := llms.GenerateFromSinglePrompt(callCtx, g.llm, prompt, llms.WithTemperature(0.7))
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	var payload string
	if req.SourceText != "" {
		payload, err = ExtractJSONObject(response)
	} else {
		payload, err = ExtractJSONArray(response)
	}
	if err != nil {
		return nil, err
	}

	quiz, err := NormalizeBytes([]byte(payload))
	if err != nil {
		return nil, err
	}

	if len(quiz.Questions) != req.NumQuestions {
		// Accepted discrepancy: the model is not forced to hit the count.
		g.logger.Warn("AI generated a different number of questions than requested",
			zap.Int("requested", req.NumQuestions),
			zap.Int("generated", len(quiz.Questions)))
	}

	quiz.Topic = req.Topic
	quiz.Difficulty = req.Difficulty
	if req.SourceText != "" {
		quiz.SourceType = domain.SourcePDF
	} else {
		quiz.SourceType = domain.SourceAIGenerated
	}
	return quiz, nil
}

func (g *Generator) buildPrompt(req domain.GenerationRequest) string {
	if req.SourceText == "" {
		return fmt.Sprintf(topicPromptTemplate, req.Difficulty, req.NumQuestions, req.Topic)
	}

	excerpt := req.SourceText
	marker := ""
	if len(excerpt) > sourceTextLimit {
		excerpt = excerpt[:sourceTextLimit]
		marker = " ... (text truncated)"
	}
	return fmt.Sprintf(documentPromptTemplate,
		req.Difficulty, req.Topic, req.NumQuestions, excerpt, marker, req.Topic)
}

// fallbackQuiz builds the degraded quiz. The document path synthesizes
// topic-templated questions from the source text; the plain path slices the
// fixed keyword bank.
func (g *Generator) fallbackQuiz(req domain.GenerationRequest) *domain.GeneratedQuiz {
	if req.SourceText != "" {
		quiz := DocumentFallback(req.SourceText, req.Topic, req.Difficulty, req.NumQuestions)
		quiz.SourceType = domain.SourcePDF
		return quiz
	}
	return &domain.GeneratedQuiz{
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		SourceType: domain.SourceFallback,
		Questions:  FallbackQuestions(req.Topic, req.Difficulty, req.NumQuestions),
	}
}
