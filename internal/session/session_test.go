package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"quiz-progression/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func newFakeTicker() *fakeTicker {
	return &fakeTicker{ch: make(chan time.Time)}
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()               { f.stopped.Store(true) }

func (f *fakeTicker) factory() func(time.Duration) Ticker {
	return func(time.Duration) Ticker { return f }
}

func testQuiz(limit *int) *domain.QuizDefinition {
	return &domain.QuizDefinition{
		ID:         "quiz-1",
		CourseID:   "c1",
		WeekNumber: 1,
		Variant:    domain.VariantMain,
		Questions: []domain.Question{
			{ID: "q1", Text: "one", Options: []string{"a", "b"}, CorrectOptionIndex: 0},
			{ID: "q2", Text: "two", Options: []string{"a", "b", "c"}, CorrectOptionIndex: 1},
			{ID: "q3", Text: "three", Options: []string{"a", "b"}, CorrectOptionIndex: 1},
		},
		MaxScore:         3,
		TimeLimitMinutes: limit,
	}
}

func intPtr(v int) *int { return &v }

func recordingSubmit(calls *int32, got *domain.Answers) SubmitFunc[string] {
	var mu sync.Mutex
	return func(ctx context.Context, answers domain.Answers, auto bool) (string, error) {
		atomic.AddInt32(calls, 1)
		mu.Lock()
		*got = answers
		mu.Unlock()
		if auto {
			return "auto", nil
		}
		return "manual", nil
	}
}

func TestSession_Navigation(t *testing.T) {
	var calls int32
	var got domain.Answers
	s, err := New("s1", testQuiz(nil), recordingSubmit(&calls, &got))
	require.NoError(t, err)

	assert.False(t, s.Previous())
	assert.True(t, s.Next())
	assert.True(t, s.Next())
	assert.False(t, s.Next())
	assert.Equal(t, 2, s.Snapshot().CurrentIndex)

	require.NoError(t, s.JumpTo(0))
	assert.Equal(t, 0, s.Snapshot().CurrentIndex)

	var vErrs domain.ValidationErrors
	assert.ErrorAs(t, s.JumpTo(3), &vErrs)
	assert.ErrorAs(t, s.JumpTo(-1), &vErrs)
}

func TestSession_AnswersCanBeChangedBeforeSubmit(t *testing.T) {
	var calls int32
	var got domain.Answers
	s, err := New("s1", testQuiz(nil), recordingSubmit(&calls, &got))
	require.NoError(t, err)

	require.NoError(t, s.Answer("q1", 1))
	require.NoError(t, s.Answer("q1", 0))
	require.NoError(t, s.Answer("q2", 2))
	require.NoError(t, s.ClearAnswer("q2"))

	var notFound *domain.DomainError
	err = s.Answer("missing", 0)
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, domain.CodeNotFound, notFound.Code)

	var vErrs domain.ValidationErrors
	assert.ErrorAs(t, s.Answer("q1", 2), &vErrs)

	res, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "manual", res)
	assert.Equal(t, domain.Answers{"q1": 0}, got)
	assert.Equal(t, StateSubmitted, s.State())
}

func TestSession_SubmitIsExactlyOnce(t *testing.T) {
	var calls int32
	var got domain.Answers
	s, err := New("s1", testQuiz(nil), recordingSubmit(&calls, &got))
	require.NoError(t, err)

	_, err = s.Submit(context.Background())
	require.NoError(t, err)

	_, err = s.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrAlreadyCompleted)
	assert.ErrorIs(t, s.Answer("q1", 0), domain.ErrAlreadyCompleted)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	view := s.Snapshot()
	require.NotNil(t, view.Result)
	assert.Equal(t, "manual", *view.Result)
}

func TestSession_ConcurrentSubmitsProduceOneSubmission(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	submit := func(ctx context.Context, answers domain.Answers, auto bool) (int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 1, nil
	}
	s, err := New[int]("s1", testQuiz(nil), submit)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var ok, rejected int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Submit(context.Background()); err == nil {
				atomic.AddInt32(&ok, 1)
			} else if errors.Is(err, domain.ErrAlreadyCompleted) {
				atomic.AddInt32(&rejected, 1)
			}
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, int32(1), ok)
	assert.Equal(t, int32(9), rejected)
}

func TestSession_FailedSubmitReturnsToActive(t *testing.T) {
	fail := true
	submit := func(ctx context.Context, answers domain.Answers, auto bool) (string, error) {
		if fail {
			return "", errors.New("storage unavailable")
		}
		return "ok", nil
	}
	s, err := New("s1", testQuiz(nil), submit)
	require.NoError(t, err)

	_, err = s.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateActive, s.State())
	require.NoError(t, s.Answer("q3", 1))

	fail = false
	res, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", res)
}

func TestSession_AlreadyCompletedFromStorageIsTerminal(t *testing.T) {
	submit := func(ctx context.Context, answers domain.Answers, auto bool) (string, error) {
		return "", domain.NewAlreadyCompletedError("main quiz already submitted")
	}
	s, err := New("s1", testQuiz(nil), submit)
	require.NoError(t, err)

	_, err = s.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrAlreadyCompleted)
	assert.Equal(t, StateSubmitted, s.State())
	assert.Nil(t, s.Snapshot().Result)
}

func TestSession_CountdownAutoSubmitsOnce(t *testing.T) {
	ticker := newFakeTicker()
	var calls int32
	var got domain.Answers
	done := make(chan string, 1)

	s, err := New("s1", testQuiz(intPtr(1)), recordingSubmit(&calls, &got),
		WithTicker[string](ticker.factory()),
		WithTickInterval[string](20*time.Second),
		WithAutoSubmitHook[string](func(res string, err error) {
			assert.NoError(t, err)
			done <- res
		}),
	)
	require.NoError(t, err)
	require.NoError(t, s.Answer("q2", 1))

	ticker.ch <- time.Now()
	ticker.ch <- time.Now()
	assert.Eventually(t, func() bool {
		view := s.Snapshot()
		return view.RemainingSeconds != nil && *view.RemainingSeconds == 20
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, StateActive, s.State())

	ticker.ch <- time.Now()

	select {
	case res := <-done:
		assert.Equal(t, "auto", res)
	case <-time.After(time.Second):
		t.Fatal("countdown did not submit")
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, domain.Answers{"q2": 1}, got)
	assert.Equal(t, StateSubmitted, s.State())

	_, err = s.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrAlreadyCompleted)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Eventually(t, ticker.stopped.Load, time.Second, 5*time.Millisecond)
}

func TestSession_ManualSubmitBeatsTimer(t *testing.T) {
	ticker := newFakeTicker()
	var calls int32
	var got domain.Answers

	s, err := New("s1", testQuiz(intPtr(1)), recordingSubmit(&calls, &got),
		WithTicker[string](ticker.factory()),
		WithTickInterval[string](time.Minute),
	)
	require.NoError(t, err)

	_, err = s.Submit(context.Background())
	require.NoError(t, err)

	// The countdown goroutine exits once the session is submitted.
	assert.Eventually(t, ticker.stopped.Load, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSession_ExpiredFailedSubmitFreezesAnswers(t *testing.T) {
	ticker := newFakeTicker()
	var attempts int32
	done := make(chan struct{}, 1)
	submit := func(ctx context.Context, answers domain.Answers, auto bool) (string, error) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			return "", errors.New("temporary failure")
		}
		return "retried", nil
	}

	s, err := New("s1", testQuiz(intPtr(1)), submit,
		WithTicker[string](ticker.factory()),
		WithTickInterval[string](time.Minute),
		WithAutoSubmitHook[string](func(string, error) { done <- struct{}{} }),
	)
	require.NoError(t, err)

	ticker.ch <- time.Now()
	<-done

	assert.Equal(t, StateActive, s.State())
	var domainErr *domain.DomainError
	require.ErrorAs(t, s.Answer("q1", 0), &domainErr)
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)

	res, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "retried", res)
}

func TestNew_RejectsEmptyQuiz(t *testing.T) {
	_, err := New("s1", &domain.QuizDefinition{}, func(context.Context, domain.Answers, bool) (string, error) {
		return "", nil
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
