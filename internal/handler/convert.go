package handler

import (
	"quiz-progression/internal/domain"
	"quiz-progression/internal/dto"
	"quiz-progression/internal/service"
)

// toQuestionResponses strips the answer key and explanations.
func toQuestionResponses(questions []domain.Question) []dto.QuestionResponse {
	out := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, dto.QuestionResponse{
			ID:         q.ID,
			Text:       q.Text,
			Options:    q.Options,
			TopicID:    q.TopicID,
			TopicTitle: q.TopicTitle,
			IsBonus:    q.IsBonus,
		})
	}
	return out
}

func toQuizResponse(quiz *domain.QuizDefinition) dto.QuizResponse {
	return dto.QuizResponse{
		ID:               quiz.ID,
		CourseID:         quiz.CourseID,
		WeekNumber:       quiz.WeekNumber,
		Variant:          string(quiz.Variant),
		Title:            quiz.Title,
		Questions:        toQuestionResponses(quiz.Questions),
		MaxScore:         quiz.MaxScore,
		TimeLimitMinutes: quiz.TimeLimitMinutes,
	}
}

func toPretestResponse(p *domain.Pretest) *dto.PretestResponse {
	if p == nil {
		return nil
	}
	return &dto.PretestResponse{
		ID:               p.ID,
		CourseID:         p.CourseID,
		Title:            p.Title,
		Questions:        toQuestionResponses(p.Questions),
		MaxScore:         p.MaxScore,
		TimeLimitMinutes: p.TimeLimitMinutes,
	}
}

func toSubmissionResponse(res *service.SubmissionResult) *dto.QuizSubmissionResponse {
	if res == nil || res.Attempt == nil {
		return nil
	}
	a := res.Attempt
	breakdown := a.TopicBreakdown
	if breakdown == nil {
		breakdown = []domain.TopicPerformance{}
	}
	return &dto.QuizSubmissionResponse{
		AttemptID:        a.ID,
		QuizID:           a.QuizID,
		CourseID:         a.CourseID,
		WeekNumber:       a.WeekNumber,
		Variant:          string(a.Variant),
		Score:            a.Score,
		MaxScore:         a.MaxScore,
		Percentage:       a.Percentage,
		PerformanceLevel: string(a.PerformanceLevel),
		CorrectCount:     res.CorrectCount,
		IncorrectCount:   res.IncorrectCount,
		TopicBreakdown:   breakdown,
		SubmittedAt:      a.SubmittedAt,
		Availability:     res.Availability,
		NextWeekLocked:   res.NextWeekLocked,
	}
}

func toPretestResultResponse(res *domain.PretestResult) dto.PretestResultResponse {
	a := res.Attempt
	return dto.PretestResultResponse{
		AttemptID:        a.ID,
		PretestID:        a.PretestID,
		CourseID:         a.CourseID,
		Score:            a.Score,
		MaxScore:         a.MaxScore,
		Percentage:       a.Percentage,
		PerformanceLevel: string(a.PerformanceLevel),
		TopicBreakdown:   res.Analysis.TopicBreakdown,
		SubmittedAt:      a.SubmittedAt,
		Analysis:         res.Analysis,
		Recommendation:   res.Recommendation,
	}
}

func toSessionResponse(v service.SessionView) dto.SessionResponse {
	resp := dto.SessionResponse{
		ID:               v.ID,
		State:            string(v.State),
		CurrentIndex:     v.CurrentIndex,
		Answers:          v.Answers,
		RemainingSeconds: v.RemainingSeconds,
		Expired:          v.Expired,
		UpdatedAt:        v.UpdatedAt,
	}
	if v.Quiz != nil {
		resp.Quiz = toQuizResponse(v.Quiz)
	}
	if resp.Answers == nil {
		resp.Answers = map[string]int{}
	}
	if v.Result != nil {
		resp.Result = toSubmissionResponse(*v.Result)
	}
	return resp
}

func toPerformanceResponse(p *service.PerformanceProfile) dto.PerformanceResponse {
	topics := make([]dto.TopicProgressResponse, 0, len(p.Topics))
	for _, t := range p.Topics {
		topics = append(topics, dto.TopicProgressResponse(t))
	}
	return dto.PerformanceResponse{
		StudentID:     p.StudentID,
		CourseID:      p.CourseID,
		AttemptsCount: p.AttemptsCount,
		Strengths:     p.Strengths,
		Weaknesses:    p.Weaknesses,
		Topics:        topics,
	}
}

func fromQuestionInputs(in []dto.QuestionInput) []domain.Question {
	out := make([]domain.Question, 0, len(in))
	for _, q := range in {
		out = append(out, domain.Question{
			ID:                 q.ID,
			Text:               q.Text,
			Options:            q.Options,
			CorrectOptionIndex: q.CorrectOptionIndex,
			TopicID:            q.TopicID,
			TopicTitle:         q.TopicTitle,
			IsBonus:            q.IsBonus,
			Explanation:        q.Explanation,
		})
	}
	return out
}
