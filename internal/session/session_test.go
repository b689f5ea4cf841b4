package session

import (
	"testing"

	"github.com/pavelanni/quizforge/internal/model"
)

func q(text string) model.Question {
	return model.Question{
		Question:      text,
		Type:          model.TypeMultipleChoice,
		Options:       []string{"a", "b"},
		CorrectAnswer: "a",
	}
}

func TestNewSessionDefaults(t *testing.T) {
	s := New()
	if s.QuestionCount() != 0 {
		t.Errorf("new session has %d questions", s.QuestionCount())
	}
	if got := s.Settings(); got != model.DefaultRenderSettings() {
		t.Errorf("settings = %+v, want defaults", got)
	}
}

func TestReplaceQuestionsDiscardsOldSet(t *testing.T) {
	s := New()
	s.ReplaceQuestions([]model.Question{q("old1"), q("old2")})
	s.ReplaceQuestions([]model.Question{q("new")})

	questions := s.Questions()
	if len(questions) != 1 || questions[0].Question != "new" {
		t.Errorf("questions = %+v, want single new question", questions)
	}
}

func TestAddQuestionsPreservesOrder(t *testing.T) {
	s := New()
	s.ReplaceQuestions([]model.Question{q("first")})
	s.AddQuestions(q("second"), q("third"))

	questions := s.Questions()
	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}
	for i, want := range []string{"first", "second", "third"} {
		if questions[i].Question != want {
			t.Errorf("question %d = %q, want %q", i+1, questions[i].Question, want)
		}
	}
}

func TestUpdateQuestion(t *testing.T) {
	s := New()
	s.ReplaceQuestions([]model.Question{q("one"), q("two")})

	if err := s.UpdateQuestion(2, q("edited")); err != nil {
		t.Fatalf("UpdateQuestion: %v", err)
	}
	if got := s.Questions()[1].Question; got != "edited" {
		t.Errorf("question 2 = %q, want edited", got)
	}

	for _, index := range []int{0, 3, -1} {
		if err := s.UpdateQuestion(index, q("x")); err == nil {
			t.Errorf("index %d: expected out of range error", index)
		}
	}
}

func TestQuestionsReturnsCopy(t *testing.T) {
	s := New()
	s.ReplaceQuestions([]model.Question{q("original")})

	snapshot := s.Questions()
	snapshot[0].Question = "mutated"

	if got := s.Questions()[0].Question; got != "original" {
		t.Errorf("session state mutated through snapshot: %q", got)
	}
}

func TestClearQuestions(t *testing.T) {
	s := New()
	s.ReplaceQuestions([]model.Question{q("one")})
	s.ClearQuestions()
	if s.QuestionCount() != 0 {
		t.Errorf("expected empty set, got %d", s.QuestionCount())
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := New()

	custom := model.DefaultRenderSettings()
	custom.Resolution = "4K"
	custom.FPS = 60
	s.SaveSettings(custom)
	if got := s.Settings(); got != custom {
		t.Errorf("settings = %+v, want %+v", got, custom)
	}

	s.ResetSettings()
	if got := s.Settings(); got != model.DefaultRenderSettings() {
		t.Errorf("after reset settings = %+v, want defaults", got)
	}
}
