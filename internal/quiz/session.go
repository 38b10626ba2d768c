package quiz

import (
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"milyoner_webapp/internal/domain"
)

// QuestionDuration is how long the player has for each question. The deadline
// is issued by the server; a client that stalls past it loses the question.
const QuestionDuration = 30 * time.Second

// SessionTTL is how long an abandoned session survives before cleanup.
const SessionTTL = time.Hour

// State of a session. Active is the only non-terminal state.
type State string

const (
	StateActive    State = "active"
	StateWithdrawn State = "withdrawn"
	StateLost      State = "lost"
	StateWon       State = "won"
)

// Lifeline kinds, each usable once per session.
type Lifeline string

const (
	LifelineFifty    Lifeline = "fifty"    // hide two wrong options
	LifelineAudience Lifeline = "audience" // percentage hint
	LifelineSwap     Lifeline = "swap"     // replace current question
)

// XP awards, carried over from the original scoring.
const (
	XPPerStepLost     = 100 // per answered question on a loss or timeout
	XPPerStepWithdraw = 50  // per answered question on a walk-away
	XPWin             = 5000
)

var (
	ErrNotActive           = errors.New("session is not active")
	ErrNoQuestions         = errors.New("session needs exactly 15 questions")
	ErrOptionHidden        = errors.New("option was eliminated by fifty-fifty")
	ErrUnknownOption       = errors.New("option is not part of the question")
	ErrLifelineAlreadyUsed = errors.New("lifeline already used")
	ErrUnknownLifeline     = errors.New("unknown lifeline")
	ErrDeadlineNotReached  = errors.New("deadline not reached")
	ErrNothingToWithdraw   = errors.New("nothing to withdraw at position 0")
)

// Session is the server-side state of one quiz run. It is a plain state
// machine with no I/O; locking and persistence belong to the caller.
type Session struct {
	ID     string
	UserID int64

	Questions []domain.Question // one per tier, index == position
	Position  int
	State     State
	Deadline  time.Time

	Used           map[Lifeline]bool
	HiddenOptions  []string
	AudienceAdvice map[string]int

	Payout   int64
	XPGained int64

	CreatedAt time.Time
}

// Result describes the effect of an answer, withdrawal or expiry.
type Result struct {
	State    State `json:"state"`
	Correct  bool  `json:"correct"`
	Position int   `json:"position"`
	Payout   int64 `json:"payout"`
	XPGained int64 `json:"xp_gained"`
}

// NewSession builds an active session over exactly 15 questions.
func NewSession(id string, userID int64, questions []domain.Question, now time.Time) (*Session, error) {
	if len(questions) != Steps {
		return nil, ErrNoQuestions
	}
	return &Session{
		ID:        id,
		UserID:    userID,
		Questions: questions,
		Position:  0,
		State:     StateActive,
		Deadline:  now.Add(QuestionDuration),
		Used:      make(map[Lifeline]bool),
		CreatedAt: now,
	}, nil
}

// Current returns the question at the current position.
func (s *Session) Current() *domain.Question {
	return &s.Questions[s.Position]
}

// Active reports whether the session can still accept moves.
func (s *Session) Active() bool {
	return s.State == StateActive
}

// Answer applies a chosen option. A late answer counts as a timeout loss.
func (s *Session) Answer(option string, now time.Time) (Result, error) {
	if !s.Active() {
		return s.result(false), ErrNotActive
	}
	if now.After(s.Deadline) {
		return s.terminateLost(), nil
	}
	for _, hidden := range s.HiddenOptions {
		if option == hidden {
			return s.result(false), ErrOptionHidden
		}
	}
	if !s.contains(option) {
		return s.result(false), ErrUnknownOption
	}

	if !s.Current().IsCorrect(option) {
		return s.terminateLost(), nil
	}

	if s.Position == Steps-1 {
		s.State = StateWon
		s.Payout = PrizeLadder[Steps-1]
		s.XPGained = XPWin
		return s.result(true), nil
	}

	s.Position++
	s.Deadline = now.Add(QuestionDuration)
	s.clearTransient()
	return s.result(true), nil
}

// Expire resolves a timed-out question. It only acts once the server-issued
// deadline has actually passed.
func (s *Session) Expire(now time.Time) (Result, error) {
	if !s.Active() {
		return s.result(false), ErrNotActive
	}
	if !now.After(s.Deadline) {
		return s.result(false), ErrDeadlineNotReached
	}
	return s.terminateLost(), nil
}

// Withdraw ends the session keeping the last answered prize. Withdrawing at
// position 0 is an unscored exit and is rejected here.
func (s *Session) Withdraw(now time.Time) (Result, error) {
	if !s.Active() {
		return s.result(false), ErrNotActive
	}
	if now.After(s.Deadline) {
		return s.terminateLost(), nil
	}
	if s.Position == 0 {
		return s.result(false), ErrNothingToWithdraw
	}
	s.State = StateWithdrawn
	s.Payout = WithdrawPayout(s.Position)
	s.XPGained = int64(s.Position) * XPPerStepWithdraw
	return s.result(false), nil
}

// ConsumeLifeline marks a lifeline as used. Consumption sticks even when the
// effect behind it later fails, so callers consume first.
func (s *Session) ConsumeLifeline(kind Lifeline) error {
	switch kind {
	case LifelineFifty, LifelineAudience, LifelineSwap:
	default:
		return ErrUnknownLifeline
	}
	if !s.Active() {
		return ErrNotActive
	}
	if s.Used[kind] {
		return ErrLifelineAlreadyUsed
	}
	s.Used[kind] = true
	return nil
}

// ApplyFifty hides two of the three wrong options, picked at random.
// Exactly two options stay visible and one of them is the correct answer.
func (s *Session) ApplyFifty() []string {
	wrong := s.Current().WrongOptions()
	first := randIndex(len(wrong))
	second := randIndex(len(wrong) - 1)
	if second >= first {
		second++
	}
	s.HiddenOptions = []string{wrong[first], wrong[second]}
	return s.HiddenOptions
}

// SetAudienceAdvice stores the percentage hint for the current question.
func (s *Session) SetAudienceAdvice(advice map[string]int) {
	s.AudienceAdvice = advice
}

// FallbackAudienceAdvice builds a deterministic distribution biased toward
// the correct answer, used when the advice provider is unavailable.
func (s *Session) FallbackAudienceAdvice() map[string]int {
	shares := []int{15, 12, 8}
	advice := make(map[string]int, domain.OptionCount)
	i := 0
	for _, opt := range s.Current().Options {
		if s.Current().IsCorrect(opt) {
			advice[opt] = 65
			continue
		}
		advice[opt] = shares[i]
		i++
	}
	return advice
}

// ReplaceQuestion swaps in a new question at the current position and drops
// all per-question transient state.
func (s *Session) ReplaceQuestion(q domain.Question, now time.Time) {
	s.Questions[s.Position] = q
	s.Deadline = now.Add(QuestionDuration)
	s.clearTransient()
}

// Remaining returns the time left on the current question, never negative.
func (s *Session) Remaining(now time.Time) time.Duration {
	if !s.Active() {
		return 0
	}
	left := s.Deadline.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Score is the number of correctly answered questions.
func (s *Session) Score() int {
	if s.State == StateWon {
		return Steps
	}
	return s.Position
}

func (s *Session) terminateLost() Result {
	s.State = StateLost
	s.Payout = SafePayout(s.Position)
	s.XPGained = int64(s.Position) * XPPerStepLost
	return s.result(false)
}

func (s *Session) clearTransient() {
	s.HiddenOptions = nil
	s.AudienceAdvice = nil
}

func (s *Session) contains(option string) bool {
	for _, opt := range s.Current().Options {
		if opt == option {
			return true
		}
	}
	return false
}

func (s *Session) result(correct bool) Result {
	return Result{
		State:    s.State,
		Correct:  correct,
		Position: s.Position,
		Payout:   s.Payout,
		XPGained: s.XPGained,
	}
}

func randIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}
