package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"quiz-progression/internal/domain"
	"quiz-progression/internal/dto"
	"quiz-progression/internal/middleware"
	"quiz-progression/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePretest() *domain.Pretest {
	return &domain.Pretest{
		ID:       "pre-1",
		CourseID: "algebra-101",
		Title:    "Algebra I Pretest",
		Questions: []domain.Question{
			{ID: "p1", Text: "1 + 1?", Options: []string{"1", "2"}, CorrectOptionIndex: 1, TopicID: "integers"},
		},
		MaxScore: 1,
	}
}

func TestPretestHandler_GetStatus(t *testing.T) {
	app, m := newTestApp()
	m.pretests.StatusFunc = func(ctx context.Context, studentID, courseID string) (bool, error) {
		assert.Equal(t, "s1", studentID)
		assert.Equal(t, "algebra-101", courseID)
		return true, nil
	}

	resp := doRequest(t, app, http.MethodGet, "/api/pretests/algebra-101/status?student_id=s1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.PretestStatusResponse
	decode(t, resp, &body)
	assert.True(t, body.Completed)
}

func TestPretestHandler_GetStatus_MissingStudent(t *testing.T) {
	app, _ := newTestApp()

	resp := doRequest(t, app, http.MethodGet, "/api/pretests/algebra-101/status", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body middleware.ValidationErrorResponse
	decode(t, resp, &body)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "student_id", body.Errors[0].Field)
}

func TestPretestHandler_CheckAccess(t *testing.T) {
	t.Run("locked with pretest", func(t *testing.T) {
		app, m := newTestApp()
		m.pretests.CheckAccessFunc = func(ctx context.Context, studentID, courseID string) (*domain.PretestAccess, error) {
			return &domain.PretestAccess{Locked: true, Pretest: samplePretest()}, nil
		}

		resp := doRequest(t, app, http.MethodGet, "/api/pretests/algebra-101/access?student_id=s1", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body dto.PretestAccessResponse
		decode(t, resp, &body)
		assert.True(t, body.Locked)
		require.NotNil(t, body.Pretest)
		assert.Equal(t, "pre-1", body.Pretest.ID)
	})

	t.Run("required but not configured", func(t *testing.T) {
		app, m := newTestApp()
		m.pretests.CheckAccessFunc = func(ctx context.Context, studentID, courseID string) (*domain.PretestAccess, error) {
			return nil, domain.NewNotFoundError(domain.ReasonPretestNotConfigured)
		}

		resp := doRequest(t, app, http.MethodGet, "/api/pretests/algebra-101/access?student_id=s1", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestPretestHandler_GetPretest_HidesAnswerKey(t *testing.T) {
	app, m := newTestApp()
	m.pretests.GetPretestFunc = func(ctx context.Context, courseID string) (*domain.Pretest, error) {
		return samplePretest(), nil
	}

	resp := doRequest(t, app, http.MethodGet, "/api/pretests/algebra-101", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	decode(t, resp, &body)
	questions := body["questions"].([]interface{})
	require.Len(t, questions, 1)
	assert.NotContains(t, questions[0].(map[string]interface{}), "correct_option_index")
}

func TestPretestHandler_Submit(t *testing.T) {
	submittedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		app, m := newTestApp()
		m.pretests.SubmitFunc = func(ctx context.Context, sub service.PretestSubmission) (*domain.PretestResult, error) {
			assert.Equal(t, "algebra-101", sub.CourseID)
			assert.Equal(t, "pre-1", sub.PretestID)
			assert.Equal(t, domain.Answers{"p1": 1}, sub.Answers)
			return &domain.PretestResult{
				Attempt: &domain.PretestAttempt{
					ID: "att-1", PretestID: "pre-1", CourseID: "algebra-101",
					Score: 1, MaxScore: 1, Percentage: 100, PerformanceLevel: domain.LevelStrong,
					SubmittedAt: submittedAt,
				},
				Analysis: domain.PretestAnalysis{Percentage: 100, Strengths: []string{"integers"}},
			}, nil
		}

		resp := doRequest(t, app, http.MethodPost, "/api/pretests/algebra-101/submit",
			dto.SubmitPretestRequest{StudentID: "s1", PretestID: "pre-1", Answers: map[string]int{"p1": 1}})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var body dto.PretestResultResponse
		decode(t, resp, &body)
		assert.Equal(t, "att-1", body.AttemptID)
		assert.Equal(t, 100, body.Percentage)
		assert.Equal(t, "strong", body.PerformanceLevel)
		assert.Equal(t, []string{"integers"}, body.Analysis.Strengths)
		assert.Nil(t, body.Recommendation)
	})

	t.Run("already completed", func(t *testing.T) {
		app, m := newTestApp()
		m.pretests.SubmitFunc = func(ctx context.Context, sub service.PretestSubmission) (*domain.PretestResult, error) {
			return nil, domain.NewAlreadyCompletedError("Pretest already completed")
		}

		resp := doRequest(t, app, http.MethodPost, "/api/pretests/algebra-101/submit",
			dto.SubmitPretestRequest{StudentID: "s1", PretestID: "pre-1", Answers: map[string]int{}})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var body middleware.ErrorResponse
		decode(t, resp, &body)
		assert.Equal(t, string(domain.CodeAlreadyCompleted), body.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		app, _ := newTestApp()
		resp := doRequest(t, app, http.MethodPost, "/api/pretests/algebra-101/submit", "{not json")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing pretest id", func(t *testing.T) {
		app, _ := newTestApp()
		resp := doRequest(t, app, http.MethodPost, "/api/pretests/algebra-101/submit",
			dto.SubmitPretestRequest{StudentID: "s1", Answers: map[string]int{"p1": 1}})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body middleware.ValidationErrorResponse
		decode(t, resp, &body)
		require.Len(t, body.Errors, 1)
		assert.Equal(t, "pretest_id", body.Errors[0].Field)
	})
}

func TestPretestHandler_GetResult_NotFound(t *testing.T) {
	app, m := newTestApp()
	m.pretests.ResultFunc = func(ctx context.Context, studentID, courseID string) (*domain.PretestResult, error) {
		return nil, domain.NewNotFoundError("Pretest attempt not found")
	}

	resp := doRequest(t, app, http.MethodGet, "/api/pretests/algebra-101/result?student_id=s1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPretestHandler_SavePretest(t *testing.T) {
	app, m := newTestApp()
	m.pretests.SavePretestFunc = func(ctx context.Context, pretest *domain.Pretest) error {
		assert.Equal(t, "algebra-101", pretest.CourseID)
		require.Len(t, pretest.Questions, 2)
		assert.Equal(t, 1, pretest.Questions[0].CorrectOptionIndex)
		pretest.ID = "pre-2"
		pretest.MaxScore = 2
		return nil
	}

	resp := doRequest(t, app, http.MethodPut, "/api/pretests/algebra-101", dto.SavePretestRequest{
		Title: "Diagnostic",
		Questions: []dto.QuestionInput{
			{ID: "p1", Text: "1 + 1?", Options: []string{"1", "2"}, CorrectOptionIndex: 1, TopicID: "integers"},
			{ID: "p2", Text: "1/2 + 1/2?", Options: []string{"1", "2"}, CorrectOptionIndex: 0, TopicID: "fractions"},
		},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.PretestResponse
	decode(t, resp, &body)
	assert.Equal(t, "pre-2", body.ID)
	assert.Equal(t, 2, body.MaxScore)
}
