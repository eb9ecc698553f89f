package progression

import (
	"testing"
	"time"

	"quiz-progression/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attempt(variant domain.Variant, week, pct int) *domain.QuizAttempt {
	return &domain.QuizAttempt{
		ID:          string(variant) + "-attempt",
		StudentID:   "s1",
		CourseID:    "c1",
		Variant:     variant,
		WeekNumber:  week,
		Percentage:  pct,
		SubmittedAt: time.Date(2025, 1, week, 10, 0, 0, 0, time.UTC),
	}
}

func TestWeekLock_FirstWeekNeverLocked(t *testing.T) {
	h := NewHistory(nil)
	assert.False(t, WeekLock(h, 1))
	assert.False(t, WeekLock(h, 0))
}

func TestWeekLock_Table(t *testing.T) {
	tests := []struct {
		name     string
		attempts []*domain.QuizAttempt
		week     int
		locked   bool
	}{
		{"no main attempt", nil, 2, true},
		{"main passed at boundary", []*domain.QuizAttempt{attempt(domain.VariantMain, 1, 60)}, 2, false},
		{"main failed at 59", []*domain.QuizAttempt{attempt(domain.VariantMain, 1, 59)}, 2, true},
		{"main failed then dynamic done", []*domain.QuizAttempt{
			attempt(domain.VariantMain, 1, 50),
			attempt(domain.VariantDynamic, 1, 30),
		}, 2, false},
		{"refresher attempts do not unlock", []*domain.QuizAttempt{
			attempt(domain.VariantMain, 1, 50),
			attempt(domain.VariantRefresher, 1, 100),
			attempt(domain.VariantRefresher, 1, 100),
		}, 2, true},
		{"only previous week matters", []*domain.QuizAttempt{
			attempt(domain.VariantMain, 1, 90),
		}, 3, true},
		{"week 3 unlocked by week 2", []*domain.QuizAttempt{
			attempt(domain.VariantMain, 2, 75),
		}, 3, false},
		{"dynamic without main", []*domain.QuizAttempt{
			attempt(domain.VariantDynamic, 1, 90),
		}, 2, true},
		{"bonus percentage above hundred", []*domain.QuizAttempt{
			attempt(domain.VariantMain, 1, 110),
		}, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.locked, WeekLock(NewHistory(tt.attempts), tt.week))
		})
	}
}

func TestWeekLock_MatchesFormula(t *testing.T) {
	for _, mainDone := range []bool{false, true} {
		for _, pct := range []int{0, 59, 60, 61, 100} {
			for _, dynDone := range []bool{false, true} {
				var attempts []*domain.QuizAttempt
				if mainDone {
					attempts = append(attempts, attempt(domain.VariantMain, 4, pct))
				}
				if dynDone {
					attempts = append(attempts, attempt(domain.VariantDynamic, 4, 10))
				}
				expected := !(mainDone && (pct >= 60 || dynDone))
				assert.Equal(t, expected, WeekLock(NewHistory(attempts), 5),
					"main=%v pct=%d dynamic=%v", mainDone, pct, dynDone)
			}
		}
	}
}

func TestWeeklyAvailability_NoAttempts(t *testing.T) {
	av := WeeklyAvailability(NewHistory(nil), 1)
	assert.True(t, av.MainAvailable)
	assert.False(t, av.MainCompleted)
	assert.Nil(t, av.MainScore)
	assert.False(t, av.RefresherAvailable)
	assert.False(t, av.DynamicAvailable)
	assert.False(t, av.DynamicRequired)
	assert.False(t, av.DynamicCompleted)
}

func TestWeeklyAvailability_MainFailed(t *testing.T) {
	h := NewHistory([]*domain.QuizAttempt{attempt(domain.VariantMain, 1, 50)})
	av := WeeklyAvailability(h, 1)
	assert.False(t, av.MainAvailable)
	assert.True(t, av.MainCompleted)
	require.NotNil(t, av.MainScore)
	assert.Equal(t, 50, *av.MainScore)
	assert.True(t, av.RefresherAvailable)
	assert.True(t, av.DynamicRequired)
	assert.True(t, av.DynamicAvailable)
	assert.True(t, WeekLock(h, 2))
}

func TestWeeklyAvailability_ScoreBoundary(t *testing.T) {
	at60 := WeeklyAvailability(NewHistory([]*domain.QuizAttempt{attempt(domain.VariantMain, 1, 60)}), 1)
	assert.False(t, at60.DynamicRequired)
	assert.False(t, at60.DynamicAvailable)

	at59 := WeeklyAvailability(NewHistory([]*domain.QuizAttempt{attempt(domain.VariantMain, 1, 59)}), 1)
	assert.True(t, at59.DynamicRequired)
	assert.True(t, at59.DynamicAvailable)
}

func TestWeeklyAvailability_DynamicCompleted(t *testing.T) {
	h := NewHistory([]*domain.QuizAttempt{
		attempt(domain.VariantMain, 1, 40),
		attempt(domain.VariantDynamic, 1, 70),
	})
	av := WeeklyAvailability(h, 1)
	assert.True(t, av.DynamicCompleted)
	assert.False(t, av.DynamicRequired)
	assert.False(t, av.DynamicAvailable)
}

func TestDynamicEligibility(t *testing.T) {
	assert.Equal(t, domain.ReasonMainNotCompleted, DynamicEligibility(NewHistory(nil), 1))

	passed := NewHistory([]*domain.QuizAttempt{attempt(domain.VariantMain, 1, 70)})
	assert.Equal(t, domain.ReasonMainAlreadyPassed, DynamicEligibility(passed, 1))

	failed := NewHistory([]*domain.QuizAttempt{attempt(domain.VariantMain, 1, 59)})
	assert.Equal(t, "", DynamicEligibility(failed, 1))

	done := NewHistory([]*domain.QuizAttempt{
		attempt(domain.VariantMain, 1, 20),
		attempt(domain.VariantDynamic, 1, 20),
	})
	assert.Equal(t, domain.ReasonDynamicAlreadyTaken, DynamicEligibility(done, 1))
}

func TestNewHistory_EarliestAttemptWins(t *testing.T) {
	first := attempt(domain.VariantMain, 1, 40)
	later := attempt(domain.VariantMain, 1, 90)
	later.SubmittedAt = first.SubmittedAt.Add(time.Hour)

	h := NewHistory([]*domain.QuizAttempt{later, first, nil})
	got, ok := h.Main(1)
	require.True(t, ok)
	assert.Equal(t, 40, got.Percentage)
}

func TestOverview(t *testing.T) {
	weeks := []domain.Week{{Number: 1, Title: "Intro"}, {Number: 2}, {Number: 3}}
	h := NewHistory([]*domain.QuizAttempt{attempt(domain.VariantMain, 1, 80)})

	statuses := Overview(h, weeks, false)
	require.Len(t, statuses, 3)
	assert.False(t, statuses[0].IsLocked)
	assert.Equal(t, "Intro", statuses[0].Title)
	assert.True(t, statuses[0].RefresherAvailable)
	assert.False(t, statuses[1].IsLocked)
	assert.True(t, statuses[2].IsLocked)

	gated := Overview(h, weeks, true)
	assert.False(t, gated[0].IsLocked)
	assert.True(t, gated[1].IsLocked)
	assert.True(t, gated[2].IsLocked)
}
