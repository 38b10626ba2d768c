package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"milyoner_webapp/internal/domain"
	"milyoner_webapp/internal/logger"
	"milyoner_webapp/internal/quiz"
	"milyoner_webapp/internal/repository"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ErrSessionInProgress = errors.New("an active quiz session already exists")
	ErrNoActiveSession   = errors.New("no active quiz session")
)

var (
	sessionsStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quiz_sessions_started_total",
		Help: "Quiz sessions started",
	})
	sessionsFinished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quiz_sessions_finished_total",
		Help: "Quiz sessions finished, by outcome",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(sessionsStarted)
	prometheus.MustRegister(sessionsFinished)
}

// PayoutRecorder commits a terminal session's earnings and xp.
type PayoutRecorder interface {
	RecordPayout(ctx context.Context, userID int64, earnings, xpGained int64) error
}

// HistoryWriter appends a finished session record.
type HistoryWriter interface {
	Create(ctx context.Context, gh *domain.GameHistory) error
}

var _ PayoutRecorder = (*EconomyService)(nil)
var _ HistoryWriter = (*repository.GameHistoryRepository)(nil)

// QuizService is the server-side session store: one active session per user,
// server-issued deadlines, payout on termination. The session is the source
// of truth; the client only renders it.
type QuizService struct {
	mu       sync.RWMutex
	sessions map[int64]*quiz.Session // userID -> session

	source      QuestionSource
	economy     PayoutRecorder
	historyRepo HistoryWriter

	now func() time.Time
}

func NewQuizService(source QuestionSource, economy PayoutRecorder, historyRepo HistoryWriter) *QuizService {
	s := &QuizService{
		sessions:    make(map[int64]*quiz.Session),
		source:      source,
		economy:     economy,
		historyRepo: historyRepo,
		now:         time.Now,
	}
	go s.cleanupAbandoned()
	return s
}

// Start builds a fresh 15-question session. A previous session whose deadline
// already passed is resolved as a timeout first; a live one blocks the start.
func (s *QuizService) Start(ctx context.Context, userID int64) (*quiz.Session, error) {
	s.mu.Lock()
	if existing, ok := s.sessions[userID]; ok && existing.Active() {
		if _, err := existing.Expire(s.now()); err == nil {
			delete(s.sessions, userID)
			s.mu.Unlock()
			s.settle(ctx, existing)
			s.mu.Lock()
		} else {
			s.mu.Unlock()
			return nil, ErrSessionInProgress
		}
	}
	s.mu.Unlock()

	questions, err := BuildLadderQuestions(ctx, s.source)
	if err != nil {
		return nil, err
	}

	session, err := quiz.NewSession(uuid.New().String(), userID, questions, s.now())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[userID] = session
	s.mu.Unlock()

	sessionsStarted.Inc()
	return session, nil
}

// Get returns the user's session, active or not yet settled.
func (s *QuizService) Get(userID int64) (*quiz.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[userID]
	if !ok {
		return nil, ErrNoActiveSession
	}
	return session, nil
}

// Answer applies a chosen option and settles the session if it terminated.
func (s *QuizService) Answer(ctx context.Context, userID int64, option string) (quiz.Result, error) {
	s.mu.Lock()
	session, ok := s.sessions[userID]
	if !ok {
		s.mu.Unlock()
		return quiz.Result{}, ErrNoActiveSession
	}
	res, err := session.Answer(option, s.now())
	terminal := !session.Active()
	if terminal {
		delete(s.sessions, userID)
	}
	s.mu.Unlock()

	if terminal {
		s.settle(ctx, session)
	}
	return res, err
}

// Withdraw ends the session keeping the last answered prize. Withdrawing at
// position 0 discards the session silently (unscored exit).
func (s *QuizService) Withdraw(ctx context.Context, userID int64) (quiz.Result, error) {
	s.mu.Lock()
	session, ok := s.sessions[userID]
	if !ok {
		s.mu.Unlock()
		return quiz.Result{}, ErrNoActiveSession
	}
	res, err := session.Withdraw(s.now())
	if errors.Is(err, quiz.ErrNothingToWithdraw) {
		delete(s.sessions, userID)
		s.mu.Unlock()
		return quiz.Result{State: quiz.StateWithdrawn}, nil
	}
	terminal := !session.Active()
	if terminal {
		delete(s.sessions, userID)
	}
	s.mu.Unlock()

	if terminal {
		s.settle(ctx, session)
	}
	return res, err
}

// Expire resolves a timed-out question once the server deadline has passed.
func (s *QuizService) Expire(ctx context.Context, userID int64) (quiz.Result, error) {
	s.mu.Lock()
	session, ok := s.sessions[userID]
	if !ok {
		s.mu.Unlock()
		return quiz.Result{}, ErrNoActiveSession
	}
	res, err := session.Expire(s.now())
	terminal := !session.Active()
	if terminal {
		delete(s.sessions, userID)
	}
	s.mu.Unlock()

	if terminal {
		s.settle(ctx, session)
	}
	return res, err
}

// LifelineEffect is what a lifeline application returns to the client.
type LifelineEffect struct {
	Hidden      []string         `json:"hidden_options,omitempty"`
	Advice      map[string]int   `json:"audience_advice,omitempty"`
	NewQuestion *domain.Question `json:"new_question,omitempty"`
}

// ApplyLifeline consumes and applies one lifeline. Consumption sticks even
// when the backing fetch fails; the effect then degrades instead of erroring.
func (s *QuizService) ApplyLifeline(ctx context.Context, userID int64, kind quiz.Lifeline) (*LifelineEffect, error) {
	s.mu.Lock()
	session, ok := s.sessions[userID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNoActiveSession
	}
	if err := session.ConsumeLifeline(kind); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	switch kind {
	case quiz.LifelineFifty:
		hidden := session.ApplyFifty()
		s.mu.Unlock()
		return &LifelineEffect{Hidden: hidden}, nil

	case quiz.LifelineAudience:
		current := *session.Current()
		s.mu.Unlock()

		advice, err := s.source.AdviseAudience(ctx, &current)

		s.mu.Lock()
		defer s.mu.Unlock()
		if !session.Active() {
			return nil, quiz.ErrNotActive
		}
		if err != nil {
			logger.Warn("audience advice unavailable, using fallback", "user_id", userID, "error", err)
			advice = session.FallbackAudienceAdvice()
		}
		session.SetAudienceAdvice(advice)
		return &LifelineEffect{Advice: advice}, nil

	default: // quiz.LifelineSwap
		current := *session.Current()
		s.mu.Unlock()

		replacement, err := s.source.FetchReplacement(ctx, current.Difficulty, current.ID)

		s.mu.Lock()
		defer s.mu.Unlock()
		if !session.Active() {
			return nil, quiz.ErrNotActive
		}
		if err != nil {
			// lifeline stays consumed; the player keeps the question
			logger.Warn("swap question unavailable", "user_id", userID, "error", err)
			return &LifelineEffect{NewQuestion: session.Current()}, nil
		}
		session.ReplaceQuestion(*replacement, s.now())
		return &LifelineEffect{NewQuestion: session.Current()}, nil
	}
}

// settle commits the terminal outcome: wallet/xp payout plus a history row.
// It runs on its own context so a dropped client cannot cancel the payout.
func (s *QuizService) settle(_ context.Context, session *quiz.Session) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sessionsFinished.WithLabelValues(string(session.State)).Inc()

	if err := s.economy.RecordPayout(ctx, session.UserID, session.Payout, session.XPGained); err != nil {
		logger.Error("failed to record quiz payout",
			"user_id", session.UserID, "payout", session.Payout, "error", err)
	}

	gh := &domain.GameHistory{
		UserID:   session.UserID,
		Score:    session.Score(),
		Earnings: session.Payout,
		Outcome:  string(session.State),
	}
	if err := s.historyRepo.Create(ctx, gh); err != nil {
		logger.Error("failed to record game history", "user_id", session.UserID, "error", err)
	}
}

// cleanupAbandoned drops sessions idle past the TTL; their outcome is a
// timeout loss so the safe-zone payout is still honored.
func (s *QuizService) cleanupAbandoned() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := s.now()
		var expired []*quiz.Session

		s.mu.Lock()
		for userID, session := range s.sessions {
			if now.Sub(session.CreatedAt) > quiz.SessionTTL {
				if _, err := session.Expire(now); err == nil {
					expired = append(expired, session)
				}
				delete(s.sessions, userID)
			}
		}
		s.mu.Unlock()

		for _, session := range expired {
			s.settle(context.Background(), session)
		}
	}
}

// ActiveSessions reports the current store size (readiness endpoint).
func (s *QuizService) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
