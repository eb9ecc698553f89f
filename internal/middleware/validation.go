package middleware

import (
	"quiz-progression/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the validation middleware.
const (
	LocalCourseID  = "validated_course_id"
	LocalWeek      = "validated_week"
	LocalStudentID = "validated_student_id"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateCourseID validates the courseId path parameter
func (vm *ValidationMiddleware) ValidateCourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := c.Params("courseId")
		if errors := vm.validator.ValidateIdentifier("course_id", courseID); len(errors) > 0 {
			return errors
		}
		c.Locals(LocalCourseID, courseID)
		return c.Next()
	}
}

// ValidateWeek parses the week path parameter
func (vm *ValidationMiddleware) ValidateWeek() fiber.Handler {
	return func(c *fiber.Ctx) error {
		week, errors := vm.validator.ParseWeek(c.Params("week"))
		if len(errors) > 0 {
			return errors
		}
		c.Locals(LocalWeek, week)
		return c.Next()
	}
}

// RequireStudentID validates the student_id query parameter, falling back to
// the studentId path parameter.
func (vm *ValidationMiddleware) RequireStudentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		studentID := c.Query("student_id")
		if studentID == "" {
			studentID = c.Params("studentId")
		}
		if errors := vm.validator.ValidateIdentifier("student_id", studentID); len(errors) > 0 {
			return errors
		}
		c.Locals(LocalStudentID, studentID)
		return c.Next()
	}
}

// Validator exposes the underlying validator for body checks in handlers.
func (vm *ValidationMiddleware) Validator() *validation.Validator {
	return vm.validator
}

// CourseID returns the validated course id.
func CourseID(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalCourseID).(string)
	return v
}

// Week returns the validated week number.
func Week(c *fiber.Ctx) int {
	v, _ := c.Locals(LocalWeek).(int)
	return v
}

// StudentID returns the validated student id.
func StudentID(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalStudentID).(string)
	return v
}
