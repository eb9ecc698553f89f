package domain

import "context"

// GenerationRequest describes the quiz content to produce for a week.
type GenerationRequest struct {
	CourseID      string
	CourseTitle   string
	WeekNumber    int
	Variant       Variant
	Topics        []Topic
	BonusTopics   []Topic // previous week's topics, main quiz only
	QuestionCount int
	BonusCount    int
	// Nonce varies refresher prompts so successive calls do not repeat.
	Nonce string
}

// QuizGenerator is the external content generator.
type QuizGenerator interface {
	GenerateQuestions(ctx context.Context, req GenerationRequest) ([]Question, error)
}
