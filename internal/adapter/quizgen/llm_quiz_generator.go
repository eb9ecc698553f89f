package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"quiz-progression/internal/config"
	"quiz-progression/internal/domain"
	"quiz-progression/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// LLMQuizGenerator implements domain.QuizGenerator on top of a langchaingo model.
type LLMQuizGenerator struct {
	llm         llms.Model
	timeout     time.Duration
	temperature float64
}

// NewLLMQuizGenerator wraps an already constructed model.
func NewLLMQuizGenerator(llm llms.Model, timeout time.Duration) (*LLMQuizGenerator, error) {
	if llm == nil {
		return nil, errors.New("llm model cannot be nil")
	}
	return &LLMQuizGenerator{llm: llm, timeout: timeout, temperature: 0.7}, nil
}

// NewModel builds the langchaingo model selected by cfg.Provider.
func NewModel(cfg config.LLMConfig) (llms.Model, error) {
	switch cfg.Provider {
	case "ollama", "":
		if cfg.ServerURL == "" {
			return nil, fmt.Errorf("ollama server URL cannot be empty")
		}
		httpClient := &http.Client{Timeout: cfg.GenerationTimeout}
		return ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
			ollama.WithFormat("json"),
		)
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai API key cannot be empty")
		}
		opts := []openai.Option{openai.WithToken(cfg.APIKey)}
		if cfg.Model != "" {
			opts = append(opts, openai.WithModel(cfg.Model))
		}
		if cfg.ServerURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.ServerURL))
		}
		return openai.New(opts...)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}

type generatedQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	TopicID       string   `json:"topic_id"`
	TopicTitle    string   `json:"topic_title"`
	IsBonus       bool     `json:"is_bonus"`
	Explanation   string   `json:"explanation"`
}

type generatedQuiz struct {
	Questions []generatedQuestion `json:"questions"`
}

// GenerateQuestions prompts the model and converts its JSON answer into questions.
func (g *LLMQuizGenerator) GenerateQuestions(ctx context.Context, req domain.GenerationRequest) ([]domain.Question, error) {
	l := logger.Get()
	prompt := BuildPrompt(req)

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	l.Info("Requesting quiz generation",
		zap.String("course_id", req.CourseID),
		zap.Int("week", req.WeekNumber),
		zap.String("variant", string(req.Variant)),
		zap.Int("question_count", req.QuestionCount))

	raw, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(g.temperature))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("LLM request timed out", zap.Error(err))
			return nil, fmt.Errorf("LLM request timed out: %w", err)
		}
		l.Error("Failed to get response from LLM", zap.Error(err))
		return nil, fmt.Errorf("LLM call failed: %w", err)
	}
	l.Debug("Raw LLM response received", zap.String("raw_response", raw))

	payload, err := extractJSON(raw)
	if err != nil {
		l.Error("No JSON object in LLM response", zap.String("response", raw))
		return nil, err
	}
	if err := validateGenerated(payload); err != nil {
		l.Error("LLM response failed schema validation", zap.Error(err))
		return nil, err
	}

	var out generatedQuiz
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal generated quiz: %w", err)
	}

	questions, err := toQuestions(out.Questions, req)
	if err != nil {
		return nil, err
	}
	l.Info("Quiz generated", zap.Int("questions", len(questions)))
	return questions, nil
}

// extractJSON strips reasoning blocks and returns the text between the first '{' and the last '}'.
func extractJSON(text string) (string, error) {
	cleaned := strings.TrimSpace(text)
	if start := strings.Index(cleaned, "<think>"); start != -1 {
		if end := strings.Index(cleaned, "</think>"); end > start {
			cleaned = strings.TrimSpace(cleaned[:start] + cleaned[end+len("</think>"):])
		}
	}
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return "", errors.New("no JSON object found in LLM response")
	}
	return cleaned[start : end+1], nil
}

func toQuestions(items []generatedQuestion, req domain.GenerationRequest) ([]domain.Question, error) {
	titles := make(map[string]string)
	for _, t := range req.Topics {
		titles[t.ID] = t.Title
	}
	for _, t := range req.BonusTopics {
		titles[t.ID] = t.Title
	}

	seen := make(map[string]struct{}, len(items))
	questions := make([]domain.Question, 0, len(items))
	for i, item := range items {
		q := domain.Question{
			ID:                 strings.TrimSpace(item.ID),
			Text:               strings.TrimSpace(item.Question),
			Options:            item.Options,
			CorrectOptionIndex: item.CorrectAnswer,
			TopicID:            item.TopicID,
			TopicTitle:         item.TopicTitle,
			IsBonus:            item.IsBonus && req.Variant == domain.VariantMain,
			Explanation:        item.Explanation,
		}
		if _, dup := seen[q.ID]; q.ID == "" || dup {
			for n := i + 1; ; n++ {
				q.ID = fmt.Sprintf("q_%d", n)
				if _, taken := seen[q.ID]; !taken {
					break
				}
			}
		}
		seen[q.ID] = struct{}{}
		if q.TopicTitle == "" {
			q.TopicTitle = titles[q.TopicID]
		}
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("generated question %d is invalid: %w", i+1, err)
		}
		questions = append(questions, q)
	}
	if domain.GradedQuestionCount(questions) == 0 {
		return nil, errors.New("generated quiz has no graded questions")
	}
	return questions, nil
}

var _ domain.QuizGenerator = (*LLMQuizGenerator)(nil)
