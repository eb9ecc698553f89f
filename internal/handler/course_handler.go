package handler

import (
	"quiz-progression/internal/domain"
	"quiz-progression/internal/dto"
	"quiz-progression/internal/middleware"
	"quiz-progression/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CourseHandler serves progression, performance and course settings
type CourseHandler struct {
	progression service.ProgressionService
	performance service.PerformanceService
	pretests    service.PretestService
}

// NewCourseHandler creates a new CourseHandler instance
func NewCourseHandler(progression service.ProgressionService, performance service.PerformanceService, pretests service.PretestService) *CourseHandler {
	return &CourseHandler{progression: progression, performance: performance, pretests: pretests}
}

// GetWeekLock godoc
// @Summary Get week lock
// @Description Reports whether a week is locked for the student
// @Tags progression
// @Produce json
// @Param courseId path string true "Course ID"
// @Param week path int true "Week number"
// @Param student_id query string true "Student ID"
// @Success 200 {object} dto.WeekLockResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /courses/{courseId}/weeks/{week}/lock [get]
func (h *CourseHandler) GetWeekLock(c *fiber.Ctx) error {
	week := middleware.Week(c)
	locked, err := h.progression.WeekLock(c.UserContext(), middleware.StudentID(c), middleware.CourseID(c), week)
	if err != nil {
		return err
	}
	return c.JSON(dto.WeekLockResponse{WeekNumber: week, IsLocked: locked})
}

// GetWeekAvailability godoc
// @Summary Get week availability
// @Description Lists which quiz variants the student may take for a week
// @Tags progression
// @Produce json
// @Param courseId path string true "Course ID"
// @Param week path int true "Week number"
// @Param student_id query string true "Student ID"
// @Success 200 {object} progression.Availability
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /courses/{courseId}/weeks/{week}/availability [get]
func (h *CourseHandler) GetWeekAvailability(c *fiber.Ctx) error {
	av, err := h.progression.WeeklyAvailability(c.UserContext(), middleware.StudentID(c), middleware.CourseID(c), middleware.Week(c))
	if err != nil {
		return err
	}
	return c.JSON(av)
}

// GetCourseProgress godoc
// @Summary Get course progress
// @Description Projects lock and availability for every week of the course
// @Tags progression
// @Produce json
// @Param courseId path string true "Course ID"
// @Param student_id query string true "Student ID"
// @Success 200 {object} dto.CourseProgressResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /courses/{courseId}/progress [get]
func (h *CourseHandler) GetCourseProgress(c *fiber.Ctx) error {
	studentID := middleware.StudentID(c)
	progress, err := h.progression.CourseProgress(c.UserContext(), studentID, middleware.CourseID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.CourseProgressResponse{
		CourseID:          progress.CourseID,
		CourseTitle:       progress.CourseTitle,
		StudentID:         studentID,
		PretestCompleted:  progress.PretestCompleted,
		PretestLocked:     progress.PretestLocked,
		PretestConfigured: progress.PretestConfigured,
		Weeks:             progress.Weeks,
	})
}

// GetPerformance godoc
// @Summary Get performance profile
// @Description Aggregates every attempt of the student into strong and weak topics
// @Tags performance
// @Produce json
// @Param courseId path string true "Course ID"
// @Param studentId path string true "Student ID"
// @Success 200 {object} dto.PerformanceResponse
// @Router /courses/{courseId}/students/{studentId}/performance [get]
func (h *CourseHandler) GetPerformance(c *fiber.Ctx) error {
	profile, err := h.performance.Profile(c.UserContext(), middleware.StudentID(c), middleware.CourseID(c))
	if err != nil {
		return err
	}
	return c.JSON(toPerformanceResponse(profile))
}

// SaveSettings godoc
// @Summary Save course settings
// @Description Sets whether the course requires a pretest
// @Tags courses
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param request body dto.CourseSettingsRequest true "Course settings"
// @Success 200 {object} dto.CourseSettingsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /courses/{courseId}/settings [put]
func (h *CourseHandler) SaveSettings(c *fiber.Ctx) error {
	var req dto.CourseSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if req.PretestRequired == nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("pretest_required")}
	}
	settings := &domain.CourseSettings{CourseID: middleware.CourseID(c), PretestRequired: *req.PretestRequired}
	if err := h.pretests.SaveCourseSettings(c.UserContext(), settings); err != nil {
		return err
	}
	return c.JSON(dto.CourseSettingsResponse{CourseID: settings.CourseID, PretestRequired: settings.PretestRequired})
}
