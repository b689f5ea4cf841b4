package job

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pavelanni/quizforge/internal/model"
	"github.com/pavelanni/quizforge/internal/render"
	"github.com/pavelanni/quizforge/internal/validate"
)

type fakeRenderer struct {
	steps  []render.Step
	failAt int // 1-based step index to fail on, 0 means never
}

func (r *fakeRenderer) RunStep(_ context.Context, step render.Step) error {
	r.steps = append(r.steps, step)
	if r.failAt != 0 && step.Index == r.failAt {
		return errors.New("encoder crashed")
	}
	return nil
}

type fakeLedger struct {
	jobs []model.CompileJob
	err  error
}

func (l *fakeLedger) AppendJob(job model.CompileJob) (int64, error) {
	if l.err != nil {
		return 0, l.err
	}
	l.jobs = append(l.jobs, job)
	return int64(len(l.jobs)), nil
}

func testQuestions(n int) []model.Question {
	questions := make([]model.Question, n)
	for i := range questions {
		questions[i] = model.Question{
			Question:      "Q",
			Type:          model.TypeMultipleChoice,
			Options:       []string{"a", "b"},
			CorrectAnswer: "a",
			Difficulty:    model.DifficultyMedium,
		}
	}
	return questions
}

func newTestEngine(r render.Renderer, l Ledger) *Engine {
	e := NewEngine(r, l)
	e.now = func() time.Time { return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC) }
	return e
}

func TestRunWalksFullStepSequence(t *testing.T) {
	renderer := &fakeRenderer{}
	ledger := &fakeLedger{}
	e := newTestEngine(renderer, ledger)

	var progress []Progress
	job, err := e.Run(context.Background(), Request{
		QuizName:  "math-quiz",
		Questions: testQuestions(3),
		Settings:  model.DefaultRenderSettings(),
		Progress:  func(p Progress) { progress = append(progress, p) },
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(renderer.steps) != 8 {
		t.Fatalf("expected 8 steps for 3 questions, got %d", len(renderer.steps))
	}
	wantLabels := []string{
		"Processing question 1/3",
		"Processing question 2/3",
		"Processing question 3/3",
		"Rendering video...",
		"Adding audio...",
		"Adding subtitles...",
		"Finalizing video...",
		"Video generation complete!",
	}
	for i, step := range renderer.steps {
		if step.Label != wantLabels[i] {
			t.Errorf("step %d label = %q, want %q", i+1, step.Label, wantLabels[i])
		}
		if step.Total != 8 {
			t.Errorf("step %d total = %d, want 8", i+1, step.Total)
		}
	}

	if len(progress) != 8 {
		t.Fatalf("expected 8 progress events, got %d", len(progress))
	}
	prev := 0.0
	for _, p := range progress {
		if p.Fraction <= prev {
			t.Errorf("progress not strictly increasing: %v after %v", p.Fraction, prev)
		}
		prev = p.Fraction
	}
	if prev != 1.0 {
		t.Errorf("final progress = %v, want 1.0", prev)
	}

	if job.Status != model.StatusCompleted {
		t.Errorf("status = %q, want completed", job.Status)
	}
	if job.QuestionCount != 3 {
		t.Errorf("question count = %d, want 3", job.QuestionCount)
	}
	if want := "math-quiz_20240315_103000.mp4"; job.OutputFile != want {
		t.Errorf("output file = %q, want %q", job.OutputFile, want)
	}
	if len(ledger.jobs) != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", len(ledger.jobs))
	}
	if ledger.jobs[0].ID != job.ID {
		t.Error("ledger entry does not match returned job")
	}
}

func TestRunRejectsInvalidSetWithoutLedgerEntry(t *testing.T) {
	renderer := &fakeRenderer{}
	ledger := &fakeLedger{}
	e := newTestEngine(renderer, ledger)

	_, err := e.Run(context.Background(), Request{
		QuizName:  "empty",
		Questions: nil,
		Settings:  model.DefaultRenderSettings(),
	})
	if !errors.Is(err, validate.ErrEmptySet) {
		t.Fatalf("expected ErrEmptySet, got %v", err)
	}
	if len(renderer.steps) != 0 {
		t.Error("renderer must not run for a rejected set")
	}
	if len(ledger.jobs) != 0 {
		t.Error("rejected runs must leave no history entry")
	}
}

func TestRunRendererFailureRecordsFailedJob(t *testing.T) {
	renderer := &fakeRenderer{failAt: 5}
	ledger := &fakeLedger{}
	e := newTestEngine(renderer, ledger)

	var progress []Progress
	job, err := e.Run(context.Background(), Request{
		QuizName:  "broken",
		Questions: testQuestions(3),
		Settings:  model.DefaultRenderSettings(),
		Progress:  func(p Progress) { progress = append(progress, p) },
	})

	var stepErr *RenderStepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("expected RenderStepError, got %v", err)
	}
	if stepErr.Step != 5 {
		t.Errorf("failing step = %d, want 5", stepErr.Step)
	}
	if !strings.HasPrefix(err.Error(), "Error generating video: ") {
		t.Errorf("unexpected message: %q", err.Error())
	}

	if job.Status != model.StatusFailed {
		t.Errorf("status = %q, want failed", job.Status)
	}
	if job.OutputFile != "" {
		t.Errorf("failed job must have no output file, got %q", job.OutputFile)
	}
	if job.Error == "" {
		t.Error("failed job must carry the renderer error")
	}

	if len(ledger.jobs) != 1 || ledger.jobs[0].Status != model.StatusFailed {
		t.Fatalf("expected one failed ledger entry, got %+v", ledger.jobs)
	}
	// Steps 1..4 completed before the failure and their progress stands.
	if len(progress) != 4 {
		t.Errorf("expected 4 progress events before failure, got %d", len(progress))
	}
}

func TestRunSnapshotsSettings(t *testing.T) {
	renderer := &fakeRenderer{}
	ledger := &fakeLedger{}
	e := newTestEngine(renderer, ledger)

	settings := model.DefaultRenderSettings()
	settings.Resolution = "4K"
	job, err := e.Run(context.Background(), Request{
		QuizName:  "snap",
		Questions: testQuestions(1),
		Settings:  settings,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if job.Settings.Resolution != "4K" {
		t.Errorf("settings snapshot lost: %+v", job.Settings)
	}
	if ledger.jobs[0].Settings.Resolution != "4K" {
		t.Error("ledger entry carries wrong settings")
	}
}

func TestOutputFileFormats(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		format string
		want   string
	}{
		{"", "quiz_20240102_030405.mp4"},
		{"mp4", "quiz_20240102_030405.mp4"},
		{"webm", "quiz_20240102_030405.webm"},
		{".mkv", "quiz_20240102_030405.mkv"},
		{"WEBM", "quiz_20240102_030405.webm"},
	}
	for _, tt := range tests {
		if got := outputFile("quiz", tt.format, at); got != tt.want {
			t.Errorf("outputFile(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestJobIDsAreUniquePerEngine(t *testing.T) {
	e := newTestEngine(&fakeRenderer{}, &fakeLedger{})
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		id := e.nextID()
		if seen[id] {
			t.Fatalf("duplicate job ID %q", id)
		}
		seen[id] = true
	}
}
