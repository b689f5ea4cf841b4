package export

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pavelanni/quizforge/internal/ingest"
	"github.com/pavelanni/quizforge/internal/model"
)

func sampleQuestions() []model.Question {
	return []model.Question{
		{
			Question:      "What is 2+2?",
			Type:          model.TypeMultipleChoice,
			Options:       []string{"1", "2", "3", "4"},
			CorrectAnswer: "4",
			Explanation:   "Basic arithmetic",
			Difficulty:    model.DifficultyEasy,
		},
		{
			Question:      "Capital of France?",
			Type:          model.TypeMultipleChoice,
			Options:       []string{"London", "Paris", "Berlin", "Madrid"},
			CorrectAnswer: "Paris",
			Difficulty:    model.DifficultyMedium,
		},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	data, err := CSV(sampleQuestions())
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}

	questions, err := ingest.CSV(string(data))
	if err != nil {
		t.Fatalf("ingest exported CSV: %v", err)
	}
	if !reflect.DeepEqual(questions, sampleQuestions()) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", questions, sampleQuestions())
	}
}

func TestCSVHeader(t *testing.T) {
	data, err := CSV(nil)
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	want := "question,option_a,option_b,option_c,option_d,correct_answer,explanation,difficulty"
	if got := strings.TrimSpace(string(data)); got != want {
		t.Errorf("header = %q, want %q", got, want)
	}
}

func TestCSVPadsShortOptionLists(t *testing.T) {
	questions := []model.Question{{
		Question:      "True or false?",
		Type:          model.TypeTrueFalse,
		Options:       []string{"True", "False"},
		CorrectAnswer: "True",
	}}
	data, err := CSV(questions)
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if want := "True or false?,True,False,,,True,,"; lines[1] != want {
		t.Errorf("row = %q, want %q", lines[1], want)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	data, err := JSON(sampleQuestions())
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	questions, err := ingest.JSON(string(data))
	if err != nil {
		t.Fatalf("ingest exported JSON: %v", err)
	}
	if !reflect.DeepEqual(questions, sampleQuestions()) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", questions, sampleQuestions())
	}
}
