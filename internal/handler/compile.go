package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pavelanni/quizforge/internal/i18n"
	"github.com/pavelanni/quizforge/internal/job"
	"github.com/pavelanni/quizforge/internal/model"
	"github.com/pavelanni/quizforge/internal/render"
	"github.com/pavelanni/quizforge/internal/validate"
)

// isValidationError reports whether err came from the candidate-set
// validator, as opposed to the renderer or the history ledger.
func isValidationError(err error) bool {
	var missingField *validate.MissingFieldError
	var insufficientOptions *validate.InsufficientOptionsError
	var answerNotInOptions *validate.AnswerNotInOptionsError
	return errors.Is(err, validate.ErrEmptySet) ||
		errors.As(err, &missingField) ||
		errors.As(err, &insufficientOptions) ||
		errors.As(err, &answerNotInOptions)
}

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.session.Settings())
}

func (h *Handler) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var settings model.RenderSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	h.session.SaveSettings(settings)
	respondJSON(w, http.StatusOK, map[string]string{
		"message": i18n.T(r.Context(), "SettingsSaved"),
	})
}

func (h *Handler) handleResetSettings(w http.ResponseWriter, r *http.Request) {
	h.session.ResetSettings()
	respondJSON(w, http.StatusOK, map[string]any{
		"message":  i18n.T(r.Context(), "SettingsReset"),
		"settings": h.session.Settings(),
	})
}

func (h *Handler) handleConfigPreview(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, render.Compile(h.session.Settings()))
}

func (h *Handler) handleCompile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		QuizName string `json:"quiz_name"`
		Format   string `json:"format"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.QuizName == "" {
		req.QuizName = "Quiz_Video"
	}

	// Snapshot the set and settings now; session edits made while the job
	// runs must not leak into it.
	questions := h.session.Questions()
	settings := h.session.Settings()

	result, err := h.engine.Run(r.Context(), job.Request{
		QuizName:  req.QuizName,
		Questions: questions,
		Settings:  settings,
		Format:    req.Format,
		Progress: func(p job.Progress) {
			slog.Debug("compile progress",
				"quiz", req.QuizName, "step", p.Step, "total", p.Total, "label", p.Label)
		},
	})

	var stepErr *job.RenderStepError
	switch {
	case errors.As(err, &stepErr):
		// Recorded in history as failed; surface the collaborator's message.
		respondJSON(w, http.StatusInternalServerError, map[string]any{
			"error": err.Error(),
			"job":   result,
		})
		return
	case isValidationError(err):
		// Validation rejected the set: no job was ever really started.
		respondError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		// Ledger append failed; the job itself may have finished.
		slog.Error("record compile job", "quiz", req.QuizName, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":            i18n.Td(r.Context(), "VideoGenerated", map[string]any{"File": result.OutputFile}),
		"job":                result,
		"estimated_duration": len(questions) * settings.DurationPerQuestion,
	})
}
