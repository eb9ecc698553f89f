package handler

import (
	"quiz-progression/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups every HTTP handler of the API.
type Handlers struct {
	Pretest *PretestHandler
	Course  *CourseHandler
	Quiz    *QuizHandler
	Session *SessionHandler
}

// RegisterRoutes mounts the API under the given router.
func RegisterRoutes(api fiber.Router, vm *middleware.ValidationMiddleware, h Handlers) {
	student := vm.RequireStudentID()

	pretests := api.Group("/pretests/:courseId", vm.ValidateCourseID())
	pretests.Get("/status", student, h.Pretest.GetStatus)
	pretests.Get("/access", student, h.Pretest.CheckAccess)
	pretests.Get("/result", student, h.Pretest.GetResult)
	pretests.Post("/submit", h.Pretest.Submit)
	pretests.Get("/", h.Pretest.GetPretest)
	pretests.Put("/", h.Pretest.SavePretest)

	courses := api.Group("/courses/:courseId", vm.ValidateCourseID())
	courses.Put("/settings", h.Course.SaveSettings)
	courses.Get("/progress", student, h.Course.GetCourseProgress)
	courses.Get("/students/:studentId/performance", student, h.Course.GetPerformance)

	weeks := courses.Group("/weeks/:week", vm.ValidateWeek())
	weeks.Get("/lock", student, h.Course.GetWeekLock)
	weeks.Get("/availability", student, h.Course.GetWeekAvailability)
	weeks.Post("/quizzes/main", h.Quiz.GetMainQuiz)
	weeks.Post("/quizzes/refresher", h.Quiz.GetRefresherQuiz)
	weeks.Post("/quizzes/dynamic", student, h.Quiz.GetDynamicQuiz)
	weeks.Post("/quizzes/submit", h.Quiz.SubmitQuiz)

	sessions := api.Group("/sessions")
	sessions.Post("/", h.Session.Start)
	sessions.Get("/:id", h.Session.Get)
	sessions.Put("/:id/answers", h.Session.Answer)
	sessions.Post("/:id/navigate", h.Session.Navigate)
	sessions.Post("/:id/submit", h.Session.Submit)
}
