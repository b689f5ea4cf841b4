// Package session holds the live working state: the accepted question set
// and the current render settings. The original tool kept these as ambient
// globals; here they live in one explicit object handed to each component.
package session

import (
	"fmt"
	"sync"

	"github.com/pavelanni/quizforge/internal/model"
)

// Session is single-writer state. The mutex serializes access so the same
// object can back concurrent HTTP handlers; readers always see the latest
// fully-replaced set.
type Session struct {
	mu        sync.Mutex
	questions []model.Question
	settings  model.RenderSettings
}

// New creates a session with no questions and default render settings.
func New() *Session {
	return &Session{settings: model.DefaultRenderSettings()}
}

// Questions returns a copy of the accepted question set.
func (s *Session) Questions() []model.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Question(nil), s.questions...)
}

// QuestionCount returns the size of the accepted set.
func (s *Session) QuestionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions)
}

// ReplaceQuestions swaps in a new accepted set, discarding the old one.
func (s *Session) ReplaceQuestions(questions []model.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = append([]model.Question(nil), questions...)
}

// AddQuestions appends accepted candidates, preserving insertion order.
func (s *Session) AddQuestions(questions ...model.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = append(s.questions, questions...)
}

// UpdateQuestion replaces the question at the 1-based index.
func (s *Session) UpdateQuestion(index int, q model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 1 || index > len(s.questions) {
		return fmt.Errorf("question index %d out of range (1..%d)", index, len(s.questions))
	}
	s.questions[index-1] = q
	return nil
}

// ClearQuestions empties the accepted set.
func (s *Session) ClearQuestions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = nil
}

// Settings returns the current render settings value.
func (s *Session) Settings() model.RenderSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SaveSettings replaces the render settings wholesale.
func (s *Session) SaveSettings(settings model.RenderSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// ResetSettings restores the default render settings.
func (s *Session) ResetSettings() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = model.DefaultRenderSettings()
}
