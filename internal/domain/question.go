package domain

import "errors"

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// Difficulty tiers run 1..15, one per ladder step.
const (
	MinDifficulty = 1
	MaxDifficulty = 15
)

var ErrInvalidQuestion = errors.New("invalid question")

type Question struct {
	ID            int64    `db:"id" json:"id"`
	Text          string   `db:"text" json:"text"`
	Options       []string `db:"options" json:"options"`
	CorrectAnswer string   `db:"correct_answer" json:"correct_answer"`
	Difficulty    int      `db:"difficulty" json:"difficulty"`
	Category      string   `db:"category" json:"category"`
}

// Validate checks the structural invariants: exactly four options and the
// correct answer present among them.
func (q *Question) Validate() error {
	if q.Text == "" {
		return ErrInvalidQuestion
	}
	if len(q.Options) != OptionCount {
		return ErrInvalidQuestion
	}
	if q.Difficulty < MinDifficulty || q.Difficulty > MaxDifficulty {
		return ErrInvalidQuestion
	}
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return nil
		}
	}
	return ErrInvalidQuestion
}

// IsCorrect reports whether the chosen option matches the correct answer.
// Comparison is an exact string match; option order never affects it.
func (q *Question) IsCorrect(option string) bool {
	return option == q.CorrectAnswer
}

// WrongOptions returns the options that are not the correct answer.
func (q *Question) WrongOptions() []string {
	wrong := make([]string, 0, OptionCount-1)
	for _, opt := range q.Options {
		if opt != q.CorrectAnswer {
			wrong = append(wrong, opt)
		}
	}
	return wrong
}
