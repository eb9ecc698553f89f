package handler

import (
	"quiz-progression/internal/domain"
	"quiz-progression/internal/dto"
	"quiz-progression/internal/middleware"
	"quiz-progression/internal/service"
	"quiz-progression/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// PretestHandler handles pretest HTTP requests
type PretestHandler struct {
	service   service.PretestService
	validator *validation.Validator
}

// NewPretestHandler creates a new PretestHandler instance
func NewPretestHandler(service service.PretestService) *PretestHandler {
	return &PretestHandler{service: service, validator: validation.NewValidator()}
}

// GetStatus godoc
// @Summary Get pretest status
// @Description Reports whether the student has completed the course pretest
// @Tags pretests
// @Produce json
// @Param courseId path string true "Course ID"
// @Param student_id query string true "Student ID"
// @Success 200 {object} dto.PretestStatusResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /pretests/{courseId}/status [get]
func (h *PretestHandler) GetStatus(c *fiber.Ctx) error {
	completed, err := h.service.Status(c.UserContext(), middleware.StudentID(c), middleware.CourseID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.PretestStatusResponse{Completed: completed})
}

// CheckAccess godoc
// @Summary Check course access
// @Description Decides whether the course is locked behind its pretest
// @Tags pretests
// @Produce json
// @Param courseId path string true "Course ID"
// @Param student_id query string true "Student ID"
// @Success 200 {object} dto.PretestAccessResponse
// @Failure 404 {object} middleware.ErrorResponse "Pretest required but not configured"
// @Failure 500 {object} middleware.ErrorResponse
// @Router /pretests/{courseId}/access [get]
func (h *PretestHandler) CheckAccess(c *fiber.Ctx) error {
	access, err := h.service.CheckAccess(c.UserContext(), middleware.StudentID(c), middleware.CourseID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.PretestAccessResponse{Locked: access.Locked, Pretest: toPretestResponse(access.Pretest)})
}

// GetPretest godoc
// @Summary Get course pretest
// @Description Returns the course pretest without the answer key
// @Tags pretests
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.PretestResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /pretests/{courseId} [get]
func (h *PretestHandler) GetPretest(c *fiber.Ctx) error {
	pretest, err := h.service.GetPretest(c.UserContext(), middleware.CourseID(c))
	if err != nil {
		return err
	}
	return c.JSON(toPretestResponse(pretest))
}

// Submit godoc
// @Summary Submit pretest
// @Description Grades the student's only pretest attempt for the course
// @Tags pretests
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param request body dto.SubmitPretestRequest true "Pretest answers"
// @Success 201 {object} dto.PretestResultResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Pretest already completed"
// @Router /pretests/{courseId}/submit [post]
func (h *PretestHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitPretestRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidatePretestSubmission(req.StudentID, req.PretestID, req.Answers); len(errs) > 0 {
		return errs
	}

	result, err := h.service.Submit(c.UserContext(), service.PretestSubmission{
		StudentID: req.StudentID,
		CourseID:  middleware.CourseID(c),
		PretestID: req.PretestID,
		Answers:   req.Answers,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toPretestResultResponse(result))
}

// GetResult godoc
// @Summary Get pretest result
// @Description Returns the stored pretest result with analysis and recommendation
// @Tags pretests
// @Produce json
// @Param courseId path string true "Course ID"
// @Param student_id query string true "Student ID"
// @Success 200 {object} dto.PretestResultResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /pretests/{courseId}/result [get]
func (h *PretestHandler) GetResult(c *fiber.Ctx) error {
	result, err := h.service.Result(c.UserContext(), middleware.StudentID(c), middleware.CourseID(c))
	if err != nil {
		return err
	}
	return c.JSON(toPretestResultResponse(result))
}

// SavePretest godoc
// @Summary Save course pretest
// @Description Replaces the course pretest. Earlier pretest ids stop being accepted.
// @Tags pretests
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param request body dto.SavePretestRequest true "Pretest definition"
// @Success 200 {object} dto.PretestResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /pretests/{courseId} [put]
func (h *PretestHandler) SavePretest(c *fiber.Ctx) error {
	var req dto.SavePretestRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	pretest := &domain.Pretest{
		CourseID:         middleware.CourseID(c),
		Title:            req.Title,
		Questions:        fromQuestionInputs(req.Questions),
		TimeLimitMinutes: req.TimeLimitMinutes,
	}
	if err := h.service.SavePretest(c.UserContext(), pretest); err != nil {
		return err
	}
	return c.JSON(toPretestResponse(pretest))
}
