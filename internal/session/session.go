// Package session tracks one in-progress quiz attempt: the question cursor,
// the learner's answers, an optional countdown and exactly-once submission.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"quiz-progression/internal/domain"
	"quiz-progression/internal/logger"

	"go.uber.org/zap"
)

// State of a session. Submitted is terminal.
type State string

const (
	StateActive     State = "active"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
)

// SubmitFunc persists the collected answers. auto is true when the countdown expired.
type SubmitFunc[R any] func(ctx context.Context, answers domain.Answers, auto bool) (R, error)

// Ticker is the periodic clock driving the countdown.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker wraps time.NewTicker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

type options[R any] struct {
	interval   time.Duration
	newTicker  func(time.Duration) Ticker
	baseCtx    context.Context
	onComplete func(R, error)
}

// Option configures a Session.
type Option[R any] func(*options[R])

// WithTickInterval sets how much time each tick removes from the countdown.
func WithTickInterval[R any](d time.Duration) Option[R] {
	return func(o *options[R]) { o.interval = d }
}

// WithTicker replaces the wall clock ticker.
func WithTicker[R any](f func(time.Duration) Ticker) Option[R] {
	return func(o *options[R]) { o.newTicker = f }
}

// WithContext sets the context used for automatic submission.
func WithContext[R any](ctx context.Context) Option[R] {
	return func(o *options[R]) { o.baseCtx = ctx }
}

// WithAutoSubmitHook is called after the countdown triggers a submission.
func WithAutoSubmitHook[R any](fn func(R, error)) Option[R] {
	return func(o *options[R]) { o.onComplete = fn }
}

const (
	msgSubmitted = "quiz session already submitted"
	msgExpired   = "time limit reached, submit the quiz"
)

// Session is safe for concurrent use.
type Session[R any] struct {
	id       string
	quiz     *domain.QuizDefinition
	submitFn SubmitFunc[R]
	opts     options[R]

	mu        sync.Mutex
	state     State
	cursor    int
	answers   domain.Answers
	remaining time.Duration
	timed     bool
	expired   bool
	result    R
	hasResult bool
	updatedAt time.Time

	stop     chan struct{}
	stopOnce sync.Once
	ticker   Ticker
}

// New starts a session for quiz. If the quiz has a time limit the countdown starts immediately.
func New[R any](id string, quiz *domain.QuizDefinition, submit SubmitFunc[R], opts ...Option[R]) (*Session[R], error) {
	if quiz == nil || len(quiz.Questions) == 0 {
		return nil, domain.NewInvalidInputError("quiz has no questions")
	}
	if submit == nil {
		return nil, errors.New("session: submit function is required")
	}

	o := options[R]{
		interval:  time.Second,
		newTicker: NewTimeTicker,
		baseCtx:   context.Background(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Session[R]{
		id:        id,
		quiz:      quiz,
		submitFn:  submit,
		opts:      o,
		state:     StateActive,
		answers:   domain.Answers{},
		updatedAt: time.Now(),
		stop:      make(chan struct{}),
	}

	if quiz.TimeLimitMinutes != nil && *quiz.TimeLimitMinutes > 0 {
		s.timed = true
		s.remaining = time.Duration(*quiz.TimeLimitMinutes) * time.Minute
		s.ticker = o.newTicker(o.interval)
		go s.countdown()
	}

	return s, nil
}

func (s *Session[R]) ID() string { return s.id }

func (s *Session[R]) Quiz() *domain.QuizDefinition { return s.quiz }

// countdown is the single goroutine consuming ticks.
func (s *Session[R]) countdown() {
	defer s.ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-s.ticker.C():
			s.mu.Lock()
			if s.state != StateActive || s.expired {
				s.mu.Unlock()
				continue
			}
			s.remaining -= s.opts.interval
			if s.remaining > 0 {
				s.mu.Unlock()
				continue
			}
			s.remaining = 0
			s.expired = true
			s.mu.Unlock()

			logger.Get().Info("Quiz session time limit reached, submitting",
				zap.String("session_id", s.id),
				zap.String("quiz_id", s.quiz.ID))
			res, err := s.submit(s.opts.baseCtx, true)
			if s.opts.onComplete != nil {
				s.opts.onComplete(res, err)
			}
			return
		}
	}
}

// Submit sends the current answers exactly once. Later calls fail with AlreadyCompleted.
func (s *Session[R]) Submit(ctx context.Context) (R, error) {
	return s.submit(ctx, false)
}

func (s *Session[R]) submit(ctx context.Context, auto bool) (R, error) {
	var zero R

	s.mu.Lock()
	if s.state != StateActive {
		s.mu.Unlock()
		return zero, domain.NewAlreadyCompletedError(msgSubmitted)
	}
	s.state = StateSubmitting
	answers := make(domain.Answers, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}
	s.mu.Unlock()

	res, err := s.submitFn(ctx, answers, auto)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = time.Now()
	if err != nil && !errors.Is(err, domain.ErrAlreadyCompleted) {
		// Not recorded; let the learner retry.
		s.state = StateActive
		return zero, err
	}
	s.state = StateSubmitted
	if err == nil {
		s.result = res
		s.hasResult = true
	}
	s.close()
	return res, err
}

// Answer records the chosen option for a question.
func (s *Session[R]) Answer(questionID string, option int) error {
	q, ok := s.question(questionID)
	if !ok {
		return domain.NewNotFoundError(fmt.Sprintf("question %s not in quiz", questionID))
	}
	if option < 0 || option >= len(q.Options) {
		return domain.ValidationErrors{domain.NewOutOfRangeError("option_index", option, 0, len(q.Options)-1)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writableLocked(); err != nil {
		return err
	}
	s.answers[questionID] = option
	s.updatedAt = time.Now()
	return nil
}

// ClearAnswer removes the answer for a question.
func (s *Session[R]) ClearAnswer(questionID string) error {
	if _, ok := s.question(questionID); !ok {
		return domain.NewNotFoundError(fmt.Sprintf("question %s not in quiz", questionID))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writableLocked(); err != nil {
		return err
	}
	delete(s.answers, questionID)
	s.updatedAt = time.Now()
	return nil
}

func (s *Session[R]) writableLocked() error {
	if s.state != StateActive {
		return domain.NewAlreadyCompletedError(msgSubmitted)
	}
	if s.expired {
		return domain.NewInvalidInputError(msgExpired)
	}
	return nil
}

func (s *Session[R]) question(id string) (domain.Question, bool) {
	for _, q := range s.quiz.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return domain.Question{}, false
}

// Next moves to the following question. It returns false at the last question.
func (s *Session[R]) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor >= len(s.quiz.Questions)-1 {
		return false
	}
	s.cursor++
	return true
}

// Previous moves to the preceding question. It returns false at the first question.
func (s *Session[R]) Previous() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor == 0 {
		return false
	}
	s.cursor--
	return true
}

// JumpTo moves the cursor to index.
func (s *Session[R]) JumpTo(index int) error {
	if index < 0 || index >= len(s.quiz.Questions) {
		return domain.ValidationErrors{domain.NewOutOfRangeError("index", index, 0, len(s.quiz.Questions)-1)}
	}
	s.mu.Lock()
	s.cursor = index
	s.mu.Unlock()
	return nil
}

// View is a point-in-time copy of the session state.
type View[R any] struct {
	ID               string
	State            State
	Quiz             *domain.QuizDefinition
	CurrentIndex     int
	Answers          domain.Answers
	RemainingSeconds *int
	Expired          bool
	Result           *R
	UpdatedAt        time.Time
}

// Snapshot returns a copy of the current state.
func (s *Session[R]) Snapshot() View[R] {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View[R]{
		ID:           s.id,
		State:        s.state,
		Quiz:         s.quiz,
		CurrentIndex: s.cursor,
		Answers:      make(domain.Answers, len(s.answers)),
		Expired:      s.expired,
		UpdatedAt:    s.updatedAt,
	}
	for k, a := range s.answers {
		v.Answers[k] = a
	}
	if s.timed {
		secs := int(s.remaining / time.Second)
		v.RemainingSeconds = &secs
	}
	if s.hasResult {
		r := s.result
		v.Result = &r
	}
	return v
}

func (s *Session[R]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close stops the countdown without submitting.
func (s *Session[R]) Close() {
	s.close()
}

func (s *Session[R]) close() {
	s.stopOnce.Do(func() { close(s.stop) })
}
