package handler

import (
	"quiz-progression/internal/domain"
	"quiz-progression/internal/dto"
	"quiz-progression/internal/service"
	"quiz-progression/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler exposes in-progress quiz sessions
type SessionHandler struct {
	sessions  service.SessionManager
	validator *validation.Validator
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(sessions service.SessionManager) *SessionHandler {
	return &SessionHandler{sessions: sessions, validator: validation.NewValidator()}
}

// Start godoc
// @Summary Start quiz session
// @Description Resolves a quiz and opens a timed session for it
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body dto.StartSessionRequest true "Session target"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) Start(c *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidateStartSession(req.StudentID, req.CourseID, req.WeekNumber, req.Variant); len(errs) > 0 {
		return errs
	}

	view, err := h.sessions.Start(c.UserContext(), service.StartSessionRequest{
		StudentID:  req.StudentID,
		CourseID:   req.CourseID,
		WeekNumber: req.WeekNumber,
		Variant:    domain.Variant(req.Variant),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toSessionResponse(view))
}

// Get godoc
// @Summary Get quiz session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	view, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(toSessionResponse(view))
}

// Answer godoc
// @Summary Answer a question
// @Description Records an answer, or clears it when option_index is null
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SessionAnswerRequest true "Answer"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Session already submitted"
// @Router /sessions/{id}/answers [put]
func (h *SessionHandler) Answer(c *fiber.Ctx) error {
	var req dto.SessionAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if req.QuestionID == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("question_id")}
	}
	option := -1
	if req.OptionIndex != nil {
		if *req.OptionIndex < 0 {
			return domain.ValidationErrors{domain.NewInvalidFormatError("option_index", *req.OptionIndex)}
		}
		option = *req.OptionIndex
	}

	view, err := h.sessions.Answer(c.Params("id"), req.QuestionID, option)
	if err != nil {
		return err
	}
	return c.JSON(toSessionResponse(view))
}

// Navigate godoc
// @Summary Move the question cursor
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.NavigateRequest true "Navigation action"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id}/navigate [post]
func (h *SessionHandler) Navigate(c *fiber.Ctx) error {
	var req dto.NavigateRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	view, err := h.sessions.Navigate(c.Params("id"), req.Action, req.Index)
	if err != nil {
		return err
	}
	return c.JSON(toSessionResponse(view))
}

// Submit godoc
// @Summary Submit quiz session
// @Description Grades the session answers once
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Session already submitted"
// @Router /sessions/{id}/submit [post]
func (h *SessionHandler) Submit(c *fiber.Ctx) error {
	view, err := h.sessions.Submit(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(toSessionResponse(view))
}
