package quiz

import (
	"fmt"
	"testing"
	"time"

	"milyoner_webapp/internal/domain"
)

func testQuestions() []domain.Question {
	qs := make([]domain.Question, Steps)
	for i := range qs {
		qs[i] = domain.Question{
			ID:            int64(i + 1),
			Text:          fmt.Sprintf("question %d", i+1),
			Options:       []string{"right", "wrong1", "wrong2", "wrong3"},
			CorrectAnswer: "right",
			Difficulty:    i + 1,
			Category:      "test",
		}
	}
	return qs
}

func newTestSession(t *testing.T, now time.Time) *Session {
	t.Helper()
	s, err := NewSession("s1", 42, testQuestions(), now)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestNewSessionRequiresFifteenQuestions(t *testing.T) {
	if _, err := NewSession("s1", 1, testQuestions()[:10], time.Now()); err != ErrNoQuestions {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}

func TestCorrectAnswersAdvanceByOne(t *testing.T) {
	now := time.Now()
	s := newTestSession(t, now)

	for i := 0; i < Steps-1; i++ {
		res, err := s.Answer("right", now)
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if !res.Correct || res.State != StateActive {
			t.Fatalf("answer %d: correct=%v state=%s", i, res.Correct, res.State)
		}
		if res.Position != i+1 {
			t.Fatalf("answer %d: position = %d; want %d", i, res.Position, i+1)
		}
	}
}

func TestWinOnLastQuestion(t *testing.T) {
	now := time.Now()
	s := newTestSession(t, now)
	for i := 0; i < Steps-1; i++ {
		if _, err := s.Answer("right", now); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}

	res, err := s.Answer("right", now)
	if err != nil {
		t.Fatalf("final answer: %v", err)
	}
	if res.State != StateWon {
		t.Fatalf("state = %s; want won", res.State)
	}
	if res.Payout != PrizeLadder[Steps-1] {
		t.Fatalf("payout = %d; want %d", res.Payout, PrizeLadder[Steps-1])
	}
	if res.XPGained != XPWin {
		t.Fatalf("xp = %d; want %d", res.XPGained, XPWin)
	}
	if s.Score() != Steps {
		t.Fatalf("score = %d; want %d", s.Score(), Steps)
	}
}

func TestWrongAnswerPaysSafeZone(t *testing.T) {
	now := time.Now()
	s := newTestSession(t, now)
	// answer 6 questions correctly, fail at position 6 (tier 7)
	for i := 0; i < 6; i++ {
		if _, err := s.Answer("right", now); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}

	res, err := s.Answer("wrong1", now)
	if err != nil {
		t.Fatalf("wrong answer: %v", err)
	}
	if res.State != StateLost {
		t.Fatalf("state = %s; want lost", res.State)
	}
	if res.Payout != PrizeLadder[4] {
		t.Fatalf("payout = %d; want tier-5 prize %d", res.Payout, PrizeLadder[4])
	}
	if res.XPGained != 6*XPPerStepLost {
		t.Fatalf("xp = %d; want %d", res.XPGained, 6*XPPerStepLost)
	}
}

func TestWrongAnswerBeforeSafeZonePaysNothing(t *testing.T) {
	now := time.Now()
	s := newTestSession(t, now)
	for i := 0; i < 3; i++ {
		if _, err := s.Answer("right", now); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}
	res, _ := s.Answer("wrong2", now)
	if res.State != StateLost || res.Payout != 0 {
		t.Fatalf("state=%s payout=%d; want lost, 0", res.State, res.Payout)
	}
}

func TestAnswerAfterTerminalIsIgnored(t *testing.T) {
	now := time.Now()
	s := newTestSession(t, now)
	if _, err := s.Answer("wrong1", now); err != nil {
		t.Fatalf("wrong answer: %v", err)
	}
	if _, err := s.Answer("right", now); err != ErrNotActive {
		t.Fatalf("expected ErrNotActive, got %v", err)
	}
}

func TestLateAnswerCountsAsTimeout(t *testing.T) {
	now := time.Now()
	s := newTestSession(t, now)
	for i := 0; i < 5; i++ {
		if _, err := s.Answer("right", now); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}

	late := now.Add(QuestionDuration + time.Second)
	res, err := s.Answer("right", late)
	if err != nil {
		t.Fatalf("late answer: %v", err)
	}
	if res.State != StateLost {
		t.Fatalf("state = %s; want lost", res.State)
	}
	if res.Payout != SafePayout(5) {
		t.Fatalf("payout = %d; want %d", res.Payout, SafePayout(5))
	}
}

func TestExpireRespectsDeadline(t *testing.T) {
	now := time.Now()
	s := newTestSession(t, now)

	if _, err := s.Expire(now.Add(time.Second)); err != ErrDeadlineNotReached {
		t.Fatalf("expected ErrDeadlineNotReached, got %v", err)
	}

	res, err := s.Expire(now.Add(QuestionDuration + time.Second))
	if err != nil {
		t.Fatalf("expire: %v", err)
	}
	if res.State != StateLost || res.Payout != 0 {
		t.Fatalf("state=%s payout=%d; want lost, 0", res.State, res.Payout)
	}
}

func TestWithdraw(t *testing.T) {
	now := time.Now()
	s := newTestSession(t, now)

	if _, err := s.Withdraw(now); err != ErrNothingToWithdraw {
		t.Fatalf("expected ErrNothingToWithdraw at position 0, got %v", err)
	}

	for i := 0; i < 7; i++ {
		if _, err := s.Answer("right", now); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}

	res, err := s.Withdraw(now)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if res.State != StateWithdrawn {
		t.Fatalf("state = %s; want withdrawn", res.State)
	}
	if res.Payout != PrizeLadder[6] {
		t.Fatalf("payout = %d; want %d", res.Payout, PrizeLadder[6])
	}
	if res.XPGained != 7*XPPerStepWithdraw {
		t.Fatalf("xp = %d; want %d", res.XPGained, 7*XPPerStepWithdraw)
	}
}

func TestLifelineSingleUse(t *testing.T) {
	now := time.Now()
	s := newTestSession(t, now)

	if err := s.ConsumeLifeline(LifelineFifty); err != nil {
		t.Fatalf("first use: %v", err)
	}
	hidden := s.ApplyFifty()

	posBefore := s.Position
	if err := s.ConsumeLifeline(LifelineFifty); err != ErrLifelineAlreadyUsed {
		t.Fatalf("expected ErrLifelineAlreadyUsed, got %v", err)
	}
	if s.Position != posBefore || len(s.HiddenOptions) != len(hidden) {
		t.Fatalf("session state changed by rejected lifeline")
	}

	// other kinds are still available
	if err := s.ConsumeLifeline(LifelineAudience); err != nil {
		t.Fatalf("audience after fifty: %v", err)
	}
	if err := s.ConsumeLifeline(LifelineSwap); err != nil {
		t.Fatalf("swap after fifty: %v", err)
	}
}

func TestFiftyLeavesCorrectAnswerVisible(t *testing.T) {
	for i := 0; i < 20; i++ {
		s := newTestSession(t, time.Now())
		hidden := s.ApplyFifty()
		if len(hidden) != 2 {
			t.Fatalf("hidden %d options; want 2", len(hidden))
		}
		for _, h := range hidden {
			if h == s.Current().CorrectAnswer {
				t.Fatalf("fifty-fifty hid the correct answer")
			}
		}
		if hidden[0] == hidden[1] {
			t.Fatalf("fifty-fifty hid the same option twice")
		}
	}
}

func TestHiddenOptionCannotBeChosen(t *testing.T) {
	now := time.Now()
	s := newTestSession(t, now)
	if err := s.ConsumeLifeline(LifelineFifty); err != nil {
		t.Fatalf("consume: %v", err)
	}
	hidden := s.ApplyFifty()

	if _, err := s.Answer(hidden[0], now); err != ErrOptionHidden {
		t.Fatalf("expected ErrOptionHidden, got %v", err)
	}
	if !s.Active() || s.Position != 0 {
		t.Fatalf("rejected answer mutated session state")
	}
}

func TestFallbackAudienceAdviceSumsTo100(t *testing.T) {
	s := newTestSession(t, time.Now())
	advice := s.FallbackAudienceAdvice()
	if len(advice) != domain.OptionCount {
		t.Fatalf("advice has %d entries; want %d", len(advice), domain.OptionCount)
	}
	sum := 0
	best, bestOpt := 0, ""
	for opt, pct := range advice {
		sum += pct
		if pct > best {
			best, bestOpt = pct, opt
		}
	}
	if sum != 100 {
		t.Fatalf("advice sums to %d; want 100", sum)
	}
	if bestOpt != s.Current().CorrectAnswer {
		t.Fatalf("advice favors %q; want %q", bestOpt, s.Current().CorrectAnswer)
	}
}

func TestReplaceQuestionClearsTransientState(t *testing.T) {
	now := time.Now()
	s := newTestSession(t, now)
	if err := s.ConsumeLifeline(LifelineFifty); err != nil {
		t.Fatalf("consume: %v", err)
	}
	s.ApplyFifty()
	s.SetAudienceAdvice(map[string]int{"right": 100})

	repl := domain.Question{
		Text:          "replacement",
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: "a",
		Difficulty:    1,
		Category:      "test",
	}
	s.ReplaceQuestion(repl, now.Add(5*time.Second))

	if s.Current().Text != "replacement" {
		t.Fatalf("current question not replaced")
	}
	if s.HiddenOptions != nil || s.AudienceAdvice != nil {
		t.Fatalf("transient state not cleared on swap")
	}
	if !s.Deadline.After(now.Add(QuestionDuration)) {
		t.Fatalf("deadline not reset on swap")
	}
}

func TestAdvanceClearsTransientState(t *testing.T) {
	now := time.Now()
	s := newTestSession(t, now)
	if err := s.ConsumeLifeline(LifelineFifty); err != nil {
		t.Fatalf("consume: %v", err)
	}
	s.ApplyFifty()

	if _, err := s.Answer("right", now); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if s.HiddenOptions != nil || s.AudienceAdvice != nil {
		t.Fatalf("transient state survived advancing")
	}
}
