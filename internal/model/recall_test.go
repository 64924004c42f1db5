package model

import (
	"errors"
	"testing"
)

func TestRecallCardValidateSuccess(t *testing.T) {
	card := RecallCard{
		Question: "What is the derivative of x^2?",
		Answer:   "2x",
	}
	if err := card.Validate(); err != nil {
		t.Fatalf("expected valid card, got error: %v", err)
	}
}

func TestRecallCardValidateRequiresQuestionAndAnswer(t *testing.T) {
	card := RecallCard{Answer: "2x"}
	if err := card.Validate(); err == nil {
		t.Fatal("expected error for missing question")
	}
	card = RecallCard{Question: "What is the derivative of x^2?"}
	if err := card.Validate(); err == nil {
		t.Fatal("expected error for missing answer")
	}
}

func TestRecallCardValidateInvalidPerformance(t *testing.T) {
	card := RecallCard{
		Question:        "Q",
		Answer:          "A",
		LastPerformance: RecallPerformance("partial"),
	}
	err := card.Validate()
	if err == nil || !errors.Is(err, ErrInvalidRecallPerformance) {
		t.Fatalf("expected ErrInvalidRecallPerformance, got: %v", err)
	}
}

func TestRecallPerformanceIsValid(t *testing.T) {
	valid := []RecallPerformance{RecallCorrect, RecallIncorrect, RecallUnrated}
	for _, item := range valid {
		if !item.IsValid() {
			t.Fatalf("expected valid performance: %q", item)
		}
	}
	if RecallPerformance("other").IsValid() {
		t.Fatal("expected invalid performance")
	}
}
