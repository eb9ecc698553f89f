package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"quiz-progression/internal/domain"
	"quiz-progression/internal/logger"
	"quiz-progression/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StartSessionRequest opens an in-progress attempt for one quiz variant.
type StartSessionRequest struct {
	StudentID  string
	CourseID   string
	WeekNumber int
	Variant    domain.Variant
}

// Navigation actions accepted by SessionManager.Navigate.
const (
	NavigateNext     = "next"
	NavigatePrevious = "previous"
	NavigateJump     = "jump"
)

// SessionView is the state of a hosted session.
type SessionView = session.View[*SubmissionResult]

// SessionManager hosts quiz sessions for HTTP clients. Sessions live in
// memory only and are dropped after the idle timeout.
type SessionManager interface {
	Start(ctx context.Context, req StartSessionRequest) (SessionView, error)
	Get(id string) (SessionView, error)
	Answer(id, questionID string, option int) (SessionView, error)
	Navigate(id, action string, index int) (SessionView, error)
	Submit(ctx context.Context, id string) (SessionView, error)
	Close()
}

type hostedSession struct {
	sess       *session.Session[*SubmissionResult]
	lastAccess time.Time
}

type sessionManager struct {
	catalog     QuizCatalog
	quizzes     QuizService
	idleTimeout time.Duration
	options     []session.Option[*SubmissionResult]
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*hostedSession
}

// NewSessionManager creates a SessionManager. opts are applied to every session.
func NewSessionManager(catalog QuizCatalog, quizzes QuizService, idleTimeout time.Duration, opts ...session.Option[*SubmissionResult]) SessionManager {
	return &sessionManager{
		catalog:     catalog,
		quizzes:     quizzes,
		idleTimeout: idleTimeout,
		options:     opts,
		now:         time.Now,
		sessions:    make(map[string]*hostedSession),
	}
}

// Start resolves the quiz through the catalog and opens a session for it.
func (m *sessionManager) Start(ctx context.Context, req StartSessionRequest) (SessionView, error) {
	m.sweep()

	quiz, err := m.catalog.Resolve(ctx, ResolveRequest{
		CourseID:   req.CourseID,
		WeekNumber: req.WeekNumber,
		Variant:    req.Variant,
		StudentID:  req.StudentID,
	})
	if err != nil {
		return SessionView{}, err
	}

	id := uuid.NewString()
	submit := func(ctx context.Context, answers domain.Answers, auto bool) (*SubmissionResult, error) {
		return m.quizzes.Submit(ctx, QuizSubmission{
			StudentID:  req.StudentID,
			CourseID:   quiz.CourseID,
			WeekNumber: quiz.WeekNumber,
			Variant:    quiz.Variant,
			QuizID:     quiz.ID,
			Answers:    answers,
		})
	}
	opts := append([]session.Option[*SubmissionResult]{
		session.WithAutoSubmitHook(func(_ *SubmissionResult, err error) {
			if err != nil {
				logger.Get().Warn("Automatic submission failed", zap.String("session_id", id), zap.Error(err))
				return
			}
			logger.Get().Info("Session submitted on time limit", zap.String("session_id", id))
		}),
	}, m.options...)

	sess, err := session.New(id, quiz, submit, opts...)
	if err != nil {
		return SessionView{}, err
	}

	m.mu.Lock()
	m.sessions[id] = &hostedSession{sess: sess, lastAccess: m.now()}
	m.mu.Unlock()

	logger.Get().Info("Quiz session started",
		zap.String("session_id", id),
		zap.String("student_id", req.StudentID),
		zap.String("quiz_id", quiz.ID),
		zap.String("variant", string(quiz.Variant)))
	return sess.Snapshot(), nil
}

func (m *sessionManager) lookup(id string) (*session.Session[*SubmissionResult], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.sessions[id]
	if !ok {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Session %s not found", id))
	}
	h.lastAccess = m.now()
	return h.sess, nil
}

func (m *sessionManager) Get(id string) (SessionView, error) {
	sess, err := m.lookup(id)
	if err != nil {
		return SessionView{}, err
	}
	return sess.Snapshot(), nil
}

func (m *sessionManager) Answer(id, questionID string, option int) (SessionView, error) {
	sess, err := m.lookup(id)
	if err != nil {
		return SessionView{}, err
	}
	if option < 0 {
		err = sess.ClearAnswer(questionID)
	} else {
		err = sess.Answer(questionID, option)
	}
	if err != nil {
		return SessionView{}, err
	}
	return sess.Snapshot(), nil
}

// Navigate moves the cursor. next and previous stop at the ends without error.
func (m *sessionManager) Navigate(id, action string, index int) (SessionView, error) {
	sess, err := m.lookup(id)
	if err != nil {
		return SessionView{}, err
	}
	switch action {
	case NavigateNext:
		sess.Next()
	case NavigatePrevious:
		sess.Previous()
	case NavigateJump:
		if err := sess.JumpTo(index); err != nil {
			return SessionView{}, err
		}
	default:
		return SessionView{}, domain.ValidationErrors{domain.NewInvalidFormatError("action", action)}
	}
	return sess.Snapshot(), nil
}

// Submit grades the session. Only the first submission succeeds.
func (m *sessionManager) Submit(ctx context.Context, id string) (SessionView, error) {
	sess, err := m.lookup(id)
	if err != nil {
		return SessionView{}, err
	}
	if _, err := sess.Submit(ctx); err != nil {
		return SessionView{}, err
	}
	return sess.Snapshot(), nil
}

// sweep drops sessions idle for longer than the timeout.
func (m *sessionManager) sweep() {
	if m.idleTimeout <= 0 {
		return
	}
	cutoff := m.now().Add(-m.idleTimeout)

	m.mu.Lock()
	var stale []*hostedSession
	for id, h := range m.sessions {
		if h.lastAccess.Before(cutoff) {
			stale = append(stale, h)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, h := range stale {
		h.sess.Close()
	}
	if len(stale) > 0 {
		logger.Get().Debug("Evicted idle quiz sessions", zap.Int("count", len(stale)))
	}
}

// Close stops every countdown and forgets all sessions.
func (m *sessionManager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*hostedSession)
	m.mu.Unlock()
	for _, h := range sessions {
		h.sess.Close()
	}
}
