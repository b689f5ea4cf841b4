package ingest

import "github.com/pavelanni/quizforge/internal/model"

// ManualEntry holds one question's fields as entered interactively.
type ManualEntry struct {
	Question      string           `json:"question"`
	Options       [4]string        `json:"options"`
	CorrectAnswer string           `json:"correct_answer"`
	Explanation   string           `json:"explanation"`
	Difficulty    model.Difficulty `json:"difficulty"`
}

// Manual converts a manual entry into a candidate record. A candidate is
// produced only when the question text, all four option slots, and the
// correct answer are present; an incomplete entry is dropped without error,
// matching the batch adapters where a bad row never becomes a partial record.
func Manual(e ManualEntry) (model.Question, bool) {
	if e.Question == "" || e.CorrectAnswer == "" {
		return model.Question{}, false
	}
	for _, opt := range e.Options {
		if opt == "" {
			return model.Question{}, false
		}
	}

	difficulty := e.Difficulty
	if difficulty == "" {
		difficulty = model.DefaultDifficulty
	}

	return model.Question{
		Question:      e.Question,
		Type:          model.TypeMultipleChoice,
		Options:       e.Options[:],
		CorrectAnswer: e.CorrectAnswer,
		Explanation:   e.Explanation,
		Difficulty:    difficulty,
	}, true
}
