// Package job orchestrates compilation runs: validation, configuration
// derivation, the render step sequence, and the history ledger entry.
package job

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pavelanni/quizforge/internal/model"
	"github.com/pavelanni/quizforge/internal/render"
	"github.com/pavelanni/quizforge/internal/validate"
)

// RenderStepError surfaces a failure reported by the renderer collaborator.
type RenderStepError struct {
	Step int
	Err  error
}

func (e *RenderStepError) Error() string {
	return fmt.Sprintf("Error generating video: %v", e.Err)
}

func (e *RenderStepError) Unwrap() error { return e.Err }

// Progress is one ordered progress event. Fraction is Step/Total, strictly
// increasing within a job and bounded in (0,1].
type Progress struct {
	Step     int
	Total    int
	Fraction float64
	Label    string
}

// ProgressFunc receives progress events as steps complete.
type ProgressFunc func(Progress)

// Ledger is the history sink completed and failed jobs are appended to.
type Ledger interface {
	AppendJob(job model.CompileJob) (int64, error)
}

// Request holds everything a compilation run consumes. Questions and Settings
// are snapshots: the engine never mutates them and later edits to the live
// session do not affect a started job.
type Request struct {
	QuizName  string
	Questions []model.Question
	Settings  model.RenderSettings
	Format    string // output extension; empty means mp4
	Progress  ProgressFunc
}

// Engine runs compilation jobs against a renderer and records outcomes in
// the ledger.
type Engine struct {
	renderer render.Renderer
	ledger   Ledger
	now      func() time.Time

	mu  sync.Mutex
	seq int
}

// NewEngine creates an engine using the given renderer and history ledger.
func NewEngine(r render.Renderer, l Ledger) *Engine {
	return &Engine{renderer: r, ledger: l, now: time.Now}
}

// Run executes one compilation job to a terminal state.
//
// The candidate set is validated first; on rejection no job is recorded and
// the validator's error is returned directly. Otherwise the engine walks a
// fixed sequence of len(questions)+5 steps in order: one per question, four
// finishing steps, and a completion marker. A renderer failure terminates the
// job as failed; the job is still appended to history with no output file,
// and progress already reported stays reported.
func (e *Engine) Run(ctx context.Context, req Request) (model.CompileJob, error) {
	if err := validate.Questions(req.Questions); err != nil {
		return model.CompileJob{}, err
	}

	cfg := render.Compile(req.Settings)
	total := len(req.Questions) + 5

	job := model.CompileJob{
		ID:            e.nextID(),
		QuizName:      req.QuizName,
		QuestionCount: len(req.Questions),
		Settings:      req.Settings,
		Status:        model.StatusRunning,
		CreatedAt:     e.now(),
	}

	for step := 0; step < total; step++ {
		label := stepLabel(step, len(req.Questions))
		err := e.renderer.RunStep(ctx, render.Step{
			Index:  step + 1,
			Total:  total,
			Label:  label,
			Config: cfg,
		})
		if err != nil {
			job.Status = model.StatusFailed
			job.Error = err.Error()
			if _, appendErr := e.ledger.AppendJob(job); appendErr != nil {
				return job, fmt.Errorf("record failed job: %w", appendErr)
			}
			return job, &RenderStepError{Step: step + 1, Err: err}
		}
		if req.Progress != nil {
			req.Progress(Progress{
				Step:     step + 1,
				Total:    total,
				Fraction: float64(step+1) / float64(total),
				Label:    label,
			})
		}
	}

	job.Status = model.StatusCompleted
	job.OutputFile = outputFile(req.QuizName, req.Format, e.now())
	if _, err := e.ledger.AppendJob(job); err != nil {
		return job, fmt.Errorf("record job: %w", err)
	}

	return job, nil
}

func (e *Engine) nextID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seq++
	return fmt.Sprintf("%s-%04d", e.now().Format("20060102150405"), e.seq)
}

func stepLabel(step, questionCount int) string {
	switch {
	case step < questionCount:
		return fmt.Sprintf("Processing question %d/%d", step+1, questionCount)
	case step == questionCount:
		return "Rendering video..."
	case step == questionCount+1:
		return "Adding audio..."
	case step == questionCount+2:
		return "Adding subtitles..."
	case step == questionCount+3:
		return "Finalizing video..."
	default:
		return "Video generation complete!"
	}
}

func outputFile(quizName, format string, completedAt time.Time) string {
	ext := strings.ToLower(strings.TrimPrefix(format, "."))
	if ext == "" {
		ext = "mp4"
	}
	return fmt.Sprintf("%s_%s.%s", quizName, completedAt.Format("20060102_150405"), ext)
}
