package handler

import (
	"bytes"
	"io"
	"strconv"

	"github.com/Swayamo/quizverse/internal/domain"
	"github.com/Swayamo/quizverse/internal/dto"
	"github.com/Swayamo/quizverse/internal/middleware"
	"github.com/Swayamo/quizverse/internal/service"
	"github.com/Swayamo/quizverse/internal/validation"
	"github.com/gofiber/fiber/v2"
)

const maxUploadBytes = 10 << 20 // 10 MiB

type QuizHandler struct {
	quizService  service.QuizService
	statsService service.StatsService
	validator    *validation.Validator
}

func NewQuizHandler(quizService service.QuizService, statsService service.StatsService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{
		quizService:  quizService,
		statsService: statsService,
		validator:    validator,
	}
}

// GenerateQuiz creates a quiz for a topic.
// @Summary Generate a quiz
// @Description Generates a multiple-choice quiz for a topic. Degrades to the built-in question bank if generation fails.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Generation parameters"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid input"
// @Failure 503 {object} middleware.ErrorResponse "No questions available"
// @Security BearerAuth
// @Router /quizzes/generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.ValidateGenerateQuizRequest(&req); err != nil {
		return err
	}

	resp, err := h.quizService.GenerateQuiz(c.Context(), middleware.UserID(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GenerateQuizFromPDF creates a quiz grounded in an uploaded PDF.
// @Summary Generate a quiz from a PDF
// @Description Extracts text from the uploaded PDF and generates a quiz grounded in it.
// @Tags quizzes
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Param topic formData string true "Quiz topic"
// @Param difficulty formData string false "easy, medium or hard"
// @Param numQuestions formData int false "Number of questions"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid upload or insufficient text"
// @Security BearerAuth
// @Router /quizzes/generate-from-pdf [post]
func (h *QuizHandler) GenerateQuizFromPDF(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "a PDF file upload is required")
	}
	if fileHeader.Size > maxUploadBytes {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "uploaded file is too large")
	}

	req := dto.GenerateQuizRequest{
		Topic:      c.FormValue("topic"),
		Difficulty: c.FormValue("difficulty"),
	}
	if v := c.FormValue("numQuestions"); v != "" {
		count, err := strconv.Atoi(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "numQuestions must be a number")
		}
		req.NumQuestions = count
	}
	if err := h.validator.ValidateGenerateQuizRequest(&req); err != nil {
		return err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return domain.NewInternalError("failed to open uploaded file", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return domain.NewInternalError("failed to read uploaded file", err)
	}

	resp, err := h.quizService.GenerateQuizFromDocument(c.Context(), middleware.UserID(c), &req, bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetQuiz returns a quiz for taking.
// @Summary Get a quiz
// @Description Returns the quiz with its questions and options. Correct answers are not included.
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} middleware.ErrorResponse "Quiz not found"
// @Security BearerAuth
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quizID := c.Params("id")
	if err := h.validator.ValidateQuizID(quizID); err != nil {
		return err
	}

	resp, err := h.quizService.GetQuiz(c.Context(), middleware.UserID(c), quizID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitQuiz scores a submission.
// @Summary Submit quiz answers
// @Description Scores the submitted answers and records the result.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.SubmitQuizRequest true "Submitted answers"
// @Success 200 {object} dto.SubmitQuizResponse
// @Failure 404 {object} middleware.ErrorResponse "Quiz not found"
// @Security BearerAuth
// @Router /quizzes/{id}/submit [post]
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	quizID := c.Params("id")
	if err := h.validator.ValidateQuizID(quizID); err != nil {
		return err
	}

	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.ValidateSubmitQuizRequest(&req); err != nil {
		return err
	}

	userID := middleware.UserID(c)
	resp, err := h.quizService.SubmitQuiz(c.Context(), userID, quizID, &req)
	if err != nil {
		return err
	}

	// The aggregates just changed; drop the cached dashboard.
	_ = h.statsService.InvalidateUserStats(c.Context(), userID)

	return c.JSON(resp)
}

// GetQuizResults returns the detailed results for a completed quiz.
// @Summary Get quiz results
// @Description Returns the latest result with per-question breakdown and analysis.
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResultsResponse
// @Failure 404 {object} middleware.ErrorResponse "Quiz or result not found"
// @Security BearerAuth
// @Router /quizzes/{id}/results [get]
func (h *QuizHandler) GetQuizResults(c *fiber.Ctx) error {
	quizID := c.Params("id")
	if err := h.validator.ValidateQuizID(quizID); err != nil {
		return err
	}

	resp, err := h.quizService.GetQuizResults(c.Context(), middleware.UserID(c), quizID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuizHistory returns the user's quiz history.
// @Summary Get quiz history
// @Description Returns the user's quizzes joined with their results, newest first.
// @Tags quizzes
// @Produce json
// @Success 200 {array} dto.HistoryEntryResponse
// @Security BearerAuth
// @Router /quizzes/history [get]
func (h *QuizHandler) GetQuizHistory(c *fiber.Ctx) error {
	resp, err := h.quizService.GetQuizHistory(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetUserStats returns the user's dashboard statistics.
// @Summary Get user statistics
// @Description Returns totals, average score, top topics, recent activity and source breakdown.
// @Tags quizzes
// @Produce json
// @Success 200 {object} dto.UserStatsResponse
// @Security BearerAuth
// @Router /quizzes/user/stats [get]
func (h *QuizHandler) GetUserStats(c *fiber.Ctx) error {
	resp, err := h.statsService.GetUserStats(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
