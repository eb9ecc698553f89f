// Package progression projects week lock and quiz availability from a
// student's attempt history for one course. Nothing here is stored: every
// answer is recomputed from the attempts on each call.
package progression

import (
	"quiz-progression/internal/domain"
)

// History indexes a student's graded attempts for one course by week.
// Repeatable variants are ignored.
type History struct {
	main    map[int]*domain.QuizAttempt
	dynamic map[int]*domain.QuizAttempt
}

// NewHistory builds a History from attempts of a single student and course.
// If a slot somehow holds several attempts the earliest submission wins.
func NewHistory(attempts []*domain.QuizAttempt) History {
	h := History{
		main:    make(map[int]*domain.QuizAttempt),
		dynamic: make(map[int]*domain.QuizAttempt),
	}
	for _, a := range attempts {
		if a == nil {
			continue
		}
		var slot map[int]*domain.QuizAttempt
		switch a.Variant {
		case domain.VariantMain:
			slot = h.main
		case domain.VariantDynamic:
			slot = h.dynamic
		default:
			continue
		}
		if prev, ok := slot[a.WeekNumber]; ok && !a.SubmittedAt.Before(prev.SubmittedAt) {
			continue
		}
		slot[a.WeekNumber] = a
	}
	return h
}

// Main returns the Main attempt for a week.
func (h History) Main(week int) (*domain.QuizAttempt, bool) {
	a, ok := h.main[week]
	return a, ok
}

// Dynamic returns the Dynamic attempt for a week.
func (h History) Dynamic(week int) (*domain.QuizAttempt, bool) {
	a, ok := h.dynamic[week]
	return a, ok
}

func (h History) MainCompleted(week int) bool {
	_, ok := h.main[week]
	return ok
}

func (h History) DynamicCompleted(week int) bool {
	_, ok := h.dynamic[week]
	return ok
}

// MainPercentage returns the stored Main percentage for a week.
func (h History) MainPercentage(week int) (int, bool) {
	a, ok := h.main[week]
	if !ok {
		return 0, false
	}
	return a.Percentage, true
}

// WeekLock reports whether week is locked. Week 1 (and anything below) is never locked.
// Week N > 1 unlocks once week N-1 has a Main attempt that passed, or a
// failed Main followed by a completed Dynamic.
func WeekLock(h History, week int) bool {
	if week <= 1 {
		return false
	}
	prev := week - 1
	pct, mainDone := h.MainPercentage(prev)
	if !mainDone {
		return true
	}
	return !(pct >= domain.PassingPercentage || h.DynamicCompleted(prev))
}

// Availability is the per-week offer shown to a student.
type Availability struct {
	WeekNumber         int  `json:"week_number"`
	MainAvailable      bool `json:"main_available"`
	MainCompleted      bool `json:"main_completed"`
	MainScore          *int `json:"main_score"`
	RefresherAvailable bool `json:"refresher_available"`
	DynamicAvailable   bool `json:"dynamic_available"`
	DynamicRequired    bool `json:"dynamic_required"`
	DynamicCompleted   bool `json:"dynamic_completed"`
}

// WeeklyAvailability computes which variants a student may take for a week.
func WeeklyAvailability(h History, week int) Availability {
	av := Availability{WeekNumber: week}
	if pct, ok := h.MainPercentage(week); ok {
		p := pct
		av.MainCompleted = true
		av.MainScore = &p
	}
	av.DynamicCompleted = h.DynamicCompleted(week)
	av.MainAvailable = !av.MainCompleted
	av.RefresherAvailable = av.MainCompleted
	av.DynamicRequired = av.MainCompleted && *av.MainScore < domain.PassingPercentage && !av.DynamicCompleted
	av.DynamicAvailable = av.DynamicRequired
	return av
}

// DynamicEligibility returns "" when a Dynamic quiz may be issued for week,
// otherwise the reason it may not.
func DynamicEligibility(h History, week int) string {
	pct, ok := h.MainPercentage(week)
	if !ok {
		return domain.ReasonMainNotCompleted
	}
	if pct >= domain.PassingPercentage {
		return domain.ReasonMainAlreadyPassed
	}
	if h.DynamicCompleted(week) {
		return domain.ReasonDynamicAlreadyTaken
	}
	return ""
}

// WeekStatus combines lock and availability for one week.
type WeekStatus struct {
	Availability
	Title    string `json:"title,omitempty"`
	IsLocked bool   `json:"is_locked"`
}

// Overview projects every week in weeks from one history. When pretestLocked
// is set every week after the first is locked regardless of quiz history.
func Overview(h History, weeks []domain.Week, pretestLocked bool) []WeekStatus {
	out := make([]WeekStatus, 0, len(weeks))
	for _, w := range weeks {
		locked := WeekLock(h, w.Number)
		if pretestLocked && w.Number > 1 {
			locked = true
		}
		out = append(out, WeekStatus{
			Availability: WeeklyAvailability(h, w.Number),
			Title:        w.Title,
			IsLocked:     locked,
		})
	}
	return out
}
