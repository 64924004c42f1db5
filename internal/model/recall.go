package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidRecallPerformance = errors.New("model: invalid recall performance")

// RecallPerformance records how the last self-test of a card went. An empty
// value means the card has not been graded yet.
type RecallPerformance string

const (
	RecallCorrect   RecallPerformance = "correct"
	RecallIncorrect RecallPerformance = "incorrect"
	RecallUnrated   RecallPerformance = ""
)

func (p RecallPerformance) IsValid() bool {
	switch p {
	case RecallCorrect, RecallIncorrect, RecallUnrated:
		return true
	default:
		return false
	}
}

// RecallCard is a question/answer flashcard attached to a task. Grading a
// card updates LastPerformance only; it never feeds the review interval.
type RecallCard struct {
	Question        string            `json:"question"`
	Answer          string            `json:"answer"`
	LastPerformance RecallPerformance `json:"lastPerformance,omitempty"`
}

func (c RecallCard) Validate() error {
	if strings.TrimSpace(c.Question) == "" {
		return errors.New("model: recall card question is required")
	}
	if strings.TrimSpace(c.Answer) == "" {
		return errors.New("model: recall card answer is required")
	}
	if !c.LastPerformance.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRecallPerformance, c.LastPerformance)
	}
	return nil
}
