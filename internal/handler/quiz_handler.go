package handler

import (
	"quiz-progression/internal/domain"
	"quiz-progression/internal/dto"
	"quiz-progression/internal/middleware"
	"quiz-progression/internal/service"
	"quiz-progression/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles weekly quiz HTTP requests
type QuizHandler struct {
	catalog   service.QuizCatalog
	quizzes   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(catalog service.QuizCatalog, quizzes service.QuizService) *QuizHandler {
	return &QuizHandler{catalog: catalog, quizzes: quizzes, validator: validation.NewValidator()}
}

func (h *QuizHandler) resolve(c *fiber.Ctx, variant domain.Variant, studentID string) error {
	quiz, err := h.catalog.Resolve(c.UserContext(), service.ResolveRequest{
		CourseID:   middleware.CourseID(c),
		WeekNumber: middleware.Week(c),
		Variant:    variant,
		StudentID:  studentID,
	})
	if err != nil {
		return err
	}
	return c.JSON(toQuizResponse(quiz))
}

// GetMainQuiz godoc
// @Summary Get main quiz
// @Description Returns the graded main quiz of a week, generating it on first request
// @Tags quizzes
// @Produce json
// @Param courseId path string true "Course ID"
// @Param week path int true "Week number"
// @Param student_id query string false "Student ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse "Generation failed"
// @Router /courses/{courseId}/weeks/{week}/quizzes/main [post]
func (h *QuizHandler) GetMainQuiz(c *fiber.Ctx) error {
	return h.resolve(c, domain.VariantMain, c.Query("student_id"))
}

// GetRefresherQuiz godoc
// @Summary Get refresher quiz
// @Description Generates a fresh ungraded refresher quiz for a week
// @Tags quizzes
// @Produce json
// @Param courseId path string true "Course ID"
// @Param week path int true "Week number"
// @Param student_id query string false "Student ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse "Generation failed"
// @Router /courses/{courseId}/weeks/{week}/quizzes/refresher [post]
func (h *QuizHandler) GetRefresherQuiz(c *fiber.Ctx) error {
	return h.resolve(c, domain.VariantRefresher, c.Query("student_id"))
}

// GetDynamicQuiz godoc
// @Summary Get dynamic quiz
// @Description Generates a remedial quiz focused on the student's weak topics
// @Tags quizzes
// @Produce json
// @Param courseId path string true "Course ID"
// @Param week path int true "Week number"
// @Param student_id query string true "Student ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse "Student is not eligible"
// @Failure 500 {object} middleware.ErrorResponse "Generation failed"
// @Router /courses/{courseId}/weeks/{week}/quizzes/dynamic [post]
func (h *QuizHandler) GetDynamicQuiz(c *fiber.Ctx) error {
	return h.resolve(c, domain.VariantDynamic, middleware.StudentID(c))
}

// SubmitQuiz godoc
// @Summary Submit quiz
// @Description Grades a quiz attempt and returns the refreshed week availability
// @Tags quizzes
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param week path int true "Week number"
// @Param request body dto.SubmitQuizRequest true "Quiz answers"
// @Success 201 {object} dto.QuizSubmissionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Quiz already submitted"
// @Router /courses/{courseId}/weeks/{week}/quizzes/submit [post]
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidateQuizSubmission(req.StudentID, req.QuizID, req.Variant, req.Answers); len(errs) > 0 {
		return errs
	}

	result, err := h.quizzes.Submit(c.UserContext(), service.QuizSubmission{
		StudentID:  req.StudentID,
		CourseID:   middleware.CourseID(c),
		WeekNumber: middleware.Week(c),
		Variant:    domain.Variant(req.Variant),
		QuizID:     req.QuizID,
		Answers:    req.Answers,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toSubmissionResponse(result))
}
