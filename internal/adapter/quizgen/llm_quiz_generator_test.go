package quizgen

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-progression/internal/config"
	"quiz-progression/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel returns a canned completion and records the prompt it saw.
type fakeModel struct {
	response string
	err      error
	delay    time.Duration
	prompt   string
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if len(messages) > 0 && len(messages[0].Parts) > 0 {
		if text, ok := messages[0].Parts[0].(llms.TextContent); ok {
			f.prompt = text.Text
		}
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.response}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func weekRequest(variant domain.Variant) domain.GenerationRequest {
	return domain.GenerationRequest{
		CourseID:      "algebra-101",
		CourseTitle:   "Algebra I",
		WeekNumber:    2,
		Variant:       variant,
		Topics:        []domain.Topic{{ID: "linear", Title: "Linear equations"}, {ID: "slope", Title: "Slope"}},
		BonusTopics:   []domain.Topic{{ID: "integers", Title: "Integers"}},
		QuestionCount: 2,
		BonusCount:    1,
	}
}

const validResponse = `<think>let me plan the quiz</think>
Here is your quiz:
{
  "questions": [
    {"id": "q1", "question": "Solve 2x = 4", "options": ["1", "2", "3", "4"], "correct_answer": 1, "topic_id": "linear"},
    {"id": "q1", "question": "Slope of y = 3x", "options": ["3", "1"], "correct_answer": 0, "topic_id": "slope", "topic_title": "Slope"},
    {"question": "What is -2 + 5?", "options": ["3", "-3"], "correct_answer": 0, "topic_id": "integers", "is_bonus": true}
  ]
}
Good luck!`

func TestNewLLMQuizGenerator(t *testing.T) {
	_, err := NewLLMQuizGenerator(nil, time.Second)
	assert.Error(t, err)

	gen, err := NewLLMQuizGenerator(&fakeModel{}, time.Second)
	assert.NoError(t, err)
	assert.NotNil(t, gen)
}

func TestNewModel_Validation(t *testing.T) {
	_, err := NewModel(config.LLMConfig{Provider: "openai"})
	assert.ErrorContains(t, err, "API key cannot be empty")

	_, err = NewModel(config.LLMConfig{Provider: "ollama"})
	assert.ErrorContains(t, err, "server URL cannot be empty")

	_, err = NewModel(config.LLMConfig{Provider: "gemini"})
	assert.ErrorContains(t, err, "unsupported llm provider")
}

func TestGenerateQuestions_Success(t *testing.T) {
	model := &fakeModel{response: validResponse}
	gen, err := NewLLMQuizGenerator(model, time.Second)
	require.NoError(t, err)

	questions, err := gen.GenerateQuestions(context.Background(), weekRequest(domain.VariantMain))
	require.NoError(t, err)
	require.Len(t, questions, 3)

	assert.Equal(t, "q1", questions[0].ID)
	assert.Equal(t, "Linear equations", questions[0].TopicTitle, "title filled from the request topics")
	assert.Equal(t, 1, questions[0].CorrectOptionIndex)

	assert.Equal(t, "q_2", questions[1].ID, "duplicate ids are replaced")
	assert.Equal(t, "q_3", questions[2].ID, "missing ids get a positional default")
	assert.True(t, questions[2].IsBonus)
	assert.Equal(t, "Integers", questions[2].TopicTitle)

	assert.Contains(t, model.prompt, "week 2")
	assert.Contains(t, model.prompt, "Algebra I")
	assert.Contains(t, model.prompt, "- linear: Linear equations")
	assert.Contains(t, model.prompt, "bonus questions")
}

func TestGenerateQuestions_BonusOnlyOnMain(t *testing.T) {
	gen, err := NewLLMQuizGenerator(&fakeModel{response: validResponse}, time.Second)
	require.NoError(t, err)

	questions, err := gen.GenerateQuestions(context.Background(), weekRequest(domain.VariantRefresher))
	require.NoError(t, err)
	for _, q := range questions {
		assert.False(t, q.IsBonus)
	}
}

func TestGenerateQuestions_Failures(t *testing.T) {
	tests := []struct {
		name     string
		model    *fakeModel
		contains string
	}{
		{"llm error", &fakeModel{err: errors.New("connection refused")}, "LLM call failed"},
		{"no json", &fakeModel{response: "I cannot help with that"}, "no JSON object"},
		{"schema: too few options", &fakeModel{response: `{"questions":[{"question":"x","options":["only"],"correct_answer":0}]}`}, "schema validation failed"},
		{"schema: missing questions", &fakeModel{response: `{"items":[]}`}, "schema validation failed"},
		{"correct index out of range", &fakeModel{response: `{"questions":[{"question":"x","options":["a","b"],"correct_answer":5}]}`}, "out of range"},
		{"only bonus questions", &fakeModel{response: `{"questions":[{"question":"x","options":["a","b"],"correct_answer":0,"is_bonus":true}]}`}, "no graded questions"},
		{"timeout", &fakeModel{delay: time.Second, response: validResponse}, "timed out"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewLLMQuizGenerator(tt.model, 50*time.Millisecond)
			require.NoError(t, err)
			_, err = gen.GenerateQuestions(context.Background(), weekRequest(domain.VariantMain))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestBuildPrompt_Variants(t *testing.T) {
	dynamic := weekRequest(domain.VariantDynamic)
	dynamic.BonusCount = 0
	prompt := BuildPrompt(dynamic)
	assert.Contains(t, prompt, "remedial quiz")
	assert.NotContains(t, prompt, "bonus questions")

	refresher := weekRequest(domain.VariantRefresher)
	refresher.Nonce = "abc123"
	assert.Contains(t, BuildPrompt(refresher), "Variation seed: abc123")
}

func TestExtractJSON(t *testing.T) {
	out, err := extractJSON("noise {\"a\": {\"b\": 1}} trailing")
	require.NoError(t, err)
	assert.Equal(t, `{"a": {"b": 1}}`, out)

	_, err = extractJSON("} backwards {")
	assert.Error(t, err)
}
