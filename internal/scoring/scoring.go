// Package scoring grades multiple choice answers against a question set.
//
// Score is pure: the same questions and answers always produce the same
// Result. Quizzes and pretests differ only in the Thresholds table passed in.
package scoring

import (
	"math"

	"quiz-progression/internal/domain"
)

// Band maps an inclusive lower percentage bound to a level.
type Band struct {
	Min   int
	Level domain.PerformanceLevel
}

// Thresholds is an ordered table of bands, highest Min first. The last band is the floor.
type Thresholds []Band

var (
	// TopicThresholds buckets per-topic results: strong >= 80, moderate >= 50, weak below.
	TopicThresholds = Thresholds{
		{Min: 80, Level: domain.LevelStrong},
		{Min: 50, Level: domain.LevelModerate},
		{Min: math.MinInt, Level: domain.LevelWeak},
	}

	// QuizThresholds buckets overall weekly quiz results.
	QuizThresholds = TopicThresholds

	// PretestThresholds buckets overall pretest results: moderate_plus >= 85, below_moderate >= 60, fail below.
	PretestThresholds = Thresholds{
		{Min: 85, Level: domain.LevelModeratePlus},
		{Min: 60, Level: domain.LevelBelowModerate},
		{Min: math.MinInt, Level: domain.LevelFail},
	}
)

// Level returns the bucket for a percentage.
func (t Thresholds) Level(percentage int) domain.PerformanceLevel {
	for _, b := range t {
		if percentage >= b.Min {
			return b.Level
		}
	}
	if len(t) == 0 {
		return ""
	}
	return t[len(t)-1].Level
}

// Result is a fully populated scoring outcome.
type Result struct {
	Score            int
	MaxScore         int
	Percentage       int
	CorrectCount     int
	IncorrectCount   int
	PerformanceLevel domain.PerformanceLevel
	TopicBreakdown   []domain.TopicPerformance
}

// Percentage rounds correct/total*100 half away from zero. A zero total yields 0.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// IsCorrect reports whether the answer set holds the correct option for q.
// Unanswered questions are incorrect.
func IsCorrect(q domain.Question, answers domain.Answers) bool {
	chosen, ok := answers[q.ID]
	return ok && chosen == q.CorrectOptionIndex
}

// Score grades answers against questions.
//
// Non-bonus questions make up MaxScore. A correct bonus question adds to
// Score only, so Percentage may exceed 100; it is not clamped. The topic
// breakdown covers non-bonus questions with a topic, in order of first
// appearance, and is always bucketed with TopicThresholds.
func Score(questions []domain.Question, answers domain.Answers, thresholds Thresholds) Result {
	var res Result

	type acc struct {
		title   string
		total   int
		correct int
	}
	topics := make(map[string]*acc)
	var order []string

	for _, q := range questions {
		correct := IsCorrect(q, answers)
		if correct {
			res.Score++
			res.CorrectCount++
		} else {
			res.IncorrectCount++
		}
		if q.IsBonus {
			continue
		}
		res.MaxScore++

		if q.TopicID == "" {
			continue
		}
		a, ok := topics[q.TopicID]
		if !ok {
			a = &acc{title: q.TopicTitle}
			topics[q.TopicID] = a
			order = append(order, q.TopicID)
		}
		if a.title == "" {
			a.title = q.TopicTitle
		}
		a.total++
		if correct {
			a.correct++
		}
	}

	res.Percentage = Percentage(res.Score, res.MaxScore)
	res.PerformanceLevel = thresholds.Level(res.Percentage)

	res.TopicBreakdown = make([]domain.TopicPerformance, 0, len(order))
	for _, id := range order {
		a := topics[id]
		pct := Percentage(a.correct, a.total)
		res.TopicBreakdown = append(res.TopicBreakdown, domain.TopicPerformance{
			TopicID:          id,
			TopicTitle:       a.title,
			QuestionsCount:   a.total,
			CorrectCount:     a.correct,
			IncorrectCount:   a.total - a.correct,
			Percentage:       pct,
			PerformanceLevel: TopicThresholds.Level(pct),
		})
	}

	return res
}

// Strengths returns titles of strong topics, falling back to ids.
func Strengths(breakdown []domain.TopicPerformance) []string {
	return titlesAt(breakdown, domain.LevelStrong)
}

// Weaknesses returns titles of weak topics, falling back to ids.
func Weaknesses(breakdown []domain.TopicPerformance) []string {
	return titlesAt(breakdown, domain.LevelWeak)
}

func titlesAt(breakdown []domain.TopicPerformance, level domain.PerformanceLevel) []string {
	out := []string{}
	for _, tp := range breakdown {
		if tp.PerformanceLevel != level {
			continue
		}
		if tp.TopicTitle != "" {
			out = append(out, tp.TopicTitle)
		} else {
			out = append(out, tp.TopicID)
		}
	}
	return out
}

// Weakest returns the topic with the lowest percentage. Ties go to the
// earlier topic in the breakdown, which follows declaration order.
func Weakest(breakdown []domain.TopicPerformance) (domain.TopicPerformance, bool) {
	if len(breakdown) == 0 {
		return domain.TopicPerformance{}, false
	}
	weakest := breakdown[0]
	for _, tp := range breakdown[1:] {
		if tp.Percentage < weakest.Percentage {
			weakest = tp
		}
	}
	return weakest, true
}
