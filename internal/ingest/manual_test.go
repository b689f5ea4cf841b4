package ingest

import (
	"reflect"
	"testing"

	"github.com/pavelanni/quizforge/internal/model"
)

func completeEntry() ManualEntry {
	return ManualEntry{
		Question:      "What is Go?",
		Options:       [4]string{"Language", "Animal", "Game", "Tool"},
		CorrectAnswer: "Language",
		Explanation:   "It is a programming language.",
		Difficulty:    model.DifficultyEasy,
	}
}

func TestManualCompleteEntry(t *testing.T) {
	q, ok := Manual(completeEntry())
	if !ok {
		t.Fatal("expected candidate from complete entry")
	}
	if q.Type != model.TypeMultipleChoice {
		t.Errorf("type = %q, want multiple_choice", q.Type)
	}
	if want := []string{"Language", "Animal", "Game", "Tool"}; !reflect.DeepEqual(q.Options, want) {
		t.Errorf("options = %v, want %v", q.Options, want)
	}
	if q.Difficulty != model.DifficultyEasy {
		t.Errorf("difficulty = %q, want easy", q.Difficulty)
	}
}

func TestManualIncompleteEntriesDropped(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ManualEntry)
	}{
		{"missing question", func(e *ManualEntry) { e.Question = "" }},
		{"missing first option", func(e *ManualEntry) { e.Options[0] = "" }},
		{"missing last option", func(e *ManualEntry) { e.Options[3] = "" }},
		{"missing correct answer", func(e *ManualEntry) { e.CorrectAnswer = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := completeEntry()
			tt.mutate(&e)
			if _, ok := Manual(e); ok {
				t.Error("expected incomplete entry to be dropped")
			}
		})
	}
}

func TestManualDifficultyDefault(t *testing.T) {
	e := completeEntry()
	e.Difficulty = ""
	q, ok := Manual(e)
	if !ok {
		t.Fatal("expected candidate")
	}
	if q.Difficulty != model.DifficultyMedium {
		t.Errorf("difficulty = %q, want medium", q.Difficulty)
	}
}
