package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Swayamo/quizverse/internal/domain"
	"github.com/Swayamo/quizverse/internal/dto"
)

const (
	maxTopicLength    = 200
	maxQuestionCount  = 20
	minPasswordLength = 8
	maxUsernameLength = 50
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	ulidPattern  = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
)

// Validator provides request validation.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRegisterRequest validates a registration body.
func (v *Validator) ValidateRegisterRequest(req *dto.RegisterRequest) error {
	if strings.TrimSpace(req.Username) == "" {
		return domain.NewInvalidInputError("username is required")
	}
	if len(req.Username) > maxUsernameLength {
		return domain.NewInvalidInputError(fmt.Sprintf("username must be at most %d characters", maxUsernameLength))
	}
	if !emailPattern.MatchString(req.Email) {
		return domain.NewInvalidInputError("a valid email address is required")
	}
	if len(req.Password) < minPasswordLength {
		return domain.NewInvalidInputError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	return nil
}

// ValidateLoginRequest validates a login body.
func (v *Validator) ValidateLoginRequest(req *dto.LoginRequest) error {
	if !emailPattern.MatchString(req.Email) {
		return domain.NewInvalidInputError("a valid email address is required")
	}
	if req.Password == "" {
		return domain.NewInvalidInputError("password is required")
	}
	return nil
}

// ValidateGenerateQuizRequest validates a generation body. The zero question
// count is allowed; the service applies its default.
func (v *Validator) ValidateGenerateQuizRequest(req *dto.GenerateQuizRequest) error {
	if strings.TrimSpace(req.Topic) == "" {
		return domain.NewInvalidInputError("topic is required")
	}
	if len(req.Topic) > maxTopicLength {
		return domain.NewInvalidInputError(fmt.Sprintf("topic must be at most %d characters", maxTopicLength))
	}
	if req.NumQuestions < 0 || req.NumQuestions > maxQuestionCount {
		return domain.NewInvalidInputError(fmt.Sprintf("numQuestions must be between 1 and %d", maxQuestionCount))
	}
	return nil
}

// ValidateSubmitQuizRequest validates a submission body.
func (v *Validator) ValidateSubmitQuizRequest(req *dto.SubmitQuizRequest) error {
	for i, answer := range req.Answers {
		if strings.TrimSpace(answer.QuestionID) == "" {
			return domain.NewInvalidInputError(fmt.Sprintf("answer %d is missing questionId", i+1))
		}
		if strings.TrimSpace(answer.SelectedOptionID) == "" {
			return domain.NewInvalidInputError(fmt.Sprintf("answer %d is missing selectedOptionId", i+1))
		}
	}
	if req.TimeTaken < 0 {
		return domain.NewInvalidInputError("timeTaken cannot be negative")
	}
	return nil
}

// ValidateQuizID checks the path parameter is a well-formed ULID.
func (v *Validator) ValidateQuizID(quizID string) error {
	if !ulidPattern.MatchString(quizID) {
		return domain.NewInvalidInputError("quiz id must be a valid ULID")
	}
	return nil
}
