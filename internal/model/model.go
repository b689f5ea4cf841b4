package model

import "time"

// Difficulty represents question difficulty level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DefaultDifficulty is used when an imported question carries no difficulty.
const DefaultDifficulty = DifficultyMedium

// QuestionType represents the kind of a question.
type QuestionType string

const (
	// TypeMultipleChoice is a question with a fixed option list.
	TypeMultipleChoice QuestionType = "multiple_choice"
	// TypeTrueFalse is a multiple-choice specialization with the fixed
	// option pair {True, False}.
	TypeTrueFalse QuestionType = "true_false"
	// TypeShortAnswer is a free-response question with no options.
	TypeShortAnswer QuestionType = "short_answer"
)

// IsFixedOption reports whether questions of this type carry an option list.
func (t QuestionType) IsFixedOption() bool {
	return t == TypeMultipleChoice || t == TypeTrueFalse
}

// IsFreeResponse reports whether questions of this type accept a literal
// answer instead of an option choice.
func (t QuestionType) IsFreeResponse() bool {
	return t == TypeShortAnswer
}

// TrueFalseOptions is the option pair every true/false question carries.
var TrueFalseOptions = []string{"True", "False"}

// Question is one quiz question. A Question either passed validation as part
// of a whole set or it never entered the accepted set; there is no partially
// accepted state.
type Question struct {
	ID            int          `json:"id,omitempty"`
	Question      string       `json:"question"`
	Type          QuestionType `json:"type,omitempty"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correct_answer"`
	Explanation   string       `json:"explanation"`
	Difficulty    Difficulty   `json:"difficulty,omitempty"`
}

// QuizDocument is the persisted form of a quiz: an immutable snapshot of the
// accepted set taken at save time.
type QuizDocument struct {
	ID          int64      `json:"id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	Questions   []Question `json:"questions"`
}

// RenderSettings holds the user-editable video settings. The whole value is
// replaced on save and on reset; nothing mutates it field by field.
type RenderSettings struct {
	Resolution          string `json:"resolution"`
	FPS                 int    `json:"fps"`
	DurationPerQuestion int    `json:"duration_per_question"`
	BackgroundMusic     bool   `json:"background_music"`
	Subtitles           bool   `json:"subtitles"`
	Transitions         string `json:"transitions"`
	TextFont            string `json:"text_font"`
	FontSize            int    `json:"font_size"`
	BackgroundColor     string `json:"background_color"`
	TextColor           string `json:"text_color"`
}

// DefaultRenderSettings returns the settings every session starts with.
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		Resolution:          "1080p",
		FPS:                 30,
		DurationPerQuestion: 10,
		BackgroundMusic:     true,
		Subtitles:           true,
		Transitions:         "fade",
		TextFont:            "Arial",
		FontSize:            24,
		BackgroundColor:     "#1a1a1a",
		TextColor:           "#ffffff",
	}
}

// JobStatus represents the state of a compilation job.
type JobStatus string

const (
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// CompileJob records one attempt to turn an accepted question set plus render
// settings into a video. Once the status is completed or failed the job is
// immutable and lives in the history ledger.
type CompileJob struct {
	ID            string         `json:"id"`
	QuizName      string         `json:"quiz_name"`
	QuestionCount int            `json:"question_count"`
	Settings      RenderSettings `json:"settings"`
	Status        JobStatus      `json:"status"`
	OutputFile    string         `json:"output_file,omitempty"`
	Error         string         `json:"error,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}
