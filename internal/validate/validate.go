// Package validate enforces the question record invariants. Acceptance is
// all-or-nothing: either the whole candidate set passes or none of it does.
package validate

import (
	"errors"
	"fmt"

	"github.com/pavelanni/quizforge/internal/model"
)

// ErrEmptySet is returned when the candidate set has no questions at all.
var ErrEmptySet = errors.New("No questions provided")

// MissingFieldError reports a required field absent from a candidate.
// Index is 1-based.
type MissingFieldError struct {
	Index int
	Field string
}

func (e *MissingFieldError) Error() string {
	switch e.Field {
	case "correct_answer":
		return fmt.Sprintf("Question %d: Missing correct answer", e.Index)
	default:
		return fmt.Sprintf("Question %d: Missing question text", e.Index)
	}
}

// InsufficientOptionsError reports fewer than two distinct options.
type InsufficientOptionsError struct {
	Index int
}

func (e *InsufficientOptionsError) Error() string {
	return fmt.Sprintf("Question %d: Need at least 2 options", e.Index)
}

// AnswerNotInOptionsError reports a correct answer that is not a member of
// the candidate's option list.
type AnswerNotInOptionsError struct {
	Index int
}

func (e *AnswerNotInOptionsError) Error() string {
	return fmt.Sprintf("Question %d: Correct answer not in options", e.Index)
}

// Questions checks a whole candidate set in record order and returns the
// first violation found, or nil if every candidate is well-formed. The error
// message carries the 1-based index of the offending record.
func Questions(questions []model.Question) error {
	if len(questions) == 0 {
		return ErrEmptySet
	}

	for i, q := range questions {
		idx := i + 1
		if q.Question == "" {
			return &MissingFieldError{Index: idx, Field: "question"}
		}
		if distinctCount(q.Options) < 2 {
			return &InsufficientOptionsError{Index: idx}
		}
		if q.CorrectAnswer == "" {
			return &MissingFieldError{Index: idx, Field: "correct_answer"}
		}
		if !contains(q.Options, q.CorrectAnswer) {
			return &AnswerNotInOptionsError{Index: idx}
		}
	}

	return nil
}

func distinctCount(options []string) int {
	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		seen[opt] = struct{}{}
	}
	return len(seen)
}

func contains(options []string, answer string) bool {
	for _, opt := range options {
		if opt == answer {
			return true
		}
	}
	return false
}
