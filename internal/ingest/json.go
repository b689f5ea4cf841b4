package ingest

import (
	"encoding/json"

	"github.com/pavelanni/quizforge/internal/model"
)

// JSON parses a JSON document into candidate records. The top-level value
// must be an array; each element's fields are taken as-is with no remapping
// and no per-field validation.
func JSON(data string) ([]model.Question, error) {
	var questions []model.Question
	if err := json.Unmarshal([]byte(data), &questions); err != nil {
		if typeErr, ok := err.(*json.UnmarshalTypeError); ok && typeErr.Field == "" {
			return nil, &ShapeError{}
		}
		return nil, &SyntaxError{Err: err}
	}
	// A null document unmarshals into a nil slice without error; an empty
	// array gives a non-nil one. Only the array counts as a question list.
	if questions == nil {
		return nil, &ShapeError{}
	}
	return questions, nil
}
