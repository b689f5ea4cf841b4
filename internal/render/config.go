// Package render derives the immutable render configuration consumed by the
// video renderer and defines the renderer collaborator contract.
package render

import "github.com/pavelanni/quizforge/internal/model"

// Constants fixed in this version; not user-settable.
const (
	Codec              = "h264"
	AnswerRevealDelay  = 3
	TransitionDuration = 1
	TextToSpeech       = true
	MusicVolume        = 0.3
)

// VideoConfig holds the output video properties.
type VideoConfig struct {
	Resolution string `json:"resolution"`
	FPS        int    `json:"fps"`
	Codec      string `json:"codec"`
}

// TimingConfig holds per-question display timing in seconds.
type TimingConfig struct {
	QuestionDuration   int `json:"question_duration"`
	AnswerRevealDelay  int `json:"answer_reveal_delay"`
	TransitionDuration int `json:"transition_duration"`
}

// StylingConfig holds text and transition styling.
type StylingConfig struct {
	BackgroundColor  string `json:"background_color"`
	TextColor        string `json:"text_color"`
	FontFamily       string `json:"font_family"`
	FontSize         int    `json:"font_size"`
	UseSubtitles     bool   `json:"use_subtitles"`
	TransitionEffect string `json:"transition_effect"`
}

// AudioConfig holds music and speech options.
type AudioConfig struct {
	BackgroundMusic bool    `json:"background_music"`
	TextToSpeech    bool    `json:"text_to_speech"`
	MusicVolume     float64 `json:"music_volume"`
}

// Config is the immutable render configuration derived from the mutable
// render settings.
type Config struct {
	Video   VideoConfig   `json:"video"`
	Timing  TimingConfig  `json:"timing"`
	Styling StylingConfig `json:"styling"`
	Audio   AudioConfig   `json:"audio"`
}

// Compile groups flat render settings into the sectioned configuration. It is
// a pure function: identical settings always produce identical configurations,
// and any settings value is accepted without range checking.
func Compile(s model.RenderSettings) Config {
	return Config{
		Video: VideoConfig{
			Resolution: s.Resolution,
			FPS:        s.FPS,
			Codec:      Codec,
		},
		Timing: TimingConfig{
			QuestionDuration:   s.DurationPerQuestion,
			AnswerRevealDelay:  AnswerRevealDelay,
			TransitionDuration: TransitionDuration,
		},
		Styling: StylingConfig{
			BackgroundColor:  s.BackgroundColor,
			TextColor:        s.TextColor,
			FontFamily:       s.TextFont,
			FontSize:         s.FontSize,
			UseSubtitles:     s.Subtitles,
			TransitionEffect: s.Transitions,
		},
		Audio: AudioConfig{
			BackgroundMusic: s.BackgroundMusic,
			TextToSpeech:    TextToSpeech,
			MusicVolume:     MusicVolume,
		},
	}
}
