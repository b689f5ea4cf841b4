package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/quizforge/internal/i18n"
	"github.com/pavelanni/quizforge/internal/model"
	"github.com/pavelanni/quizforge/internal/store"
)

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	questions := h.session.Questions()

	byDifficulty := map[model.Difficulty]int{}
	for _, q := range questions {
		byDifficulty[q.Difficulty]++
	}

	jobCount, err := h.store.JobCount()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	quizCount, err := h.store.QuizCount()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	settings := h.session.Settings()
	respondJSON(w, http.StatusOK, map[string]any{
		"questions":            len(questions),
		"questions_easy":       byDifficulty[model.DifficultyEasy],
		"questions_medium":     byDifficulty[model.DifficultyMedium],
		"questions_hard":       byDifficulty[model.DifficultyHard],
		"videos_generated":     jobCount,
		"quizzes_saved":        quizCount,
		"resolution":           settings.Resolution,
		"duration_per_question": settings.DurationPerQuestion,
		"estimated_duration":   len(questions) * settings.DurationPerQuestion,
	})
}

// historyEntry pairs a job with its current 1-based position. Positions are
// derived per listing and shift after deletions.
type historyEntry struct {
	Position int              `json:"position"`
	Job      model.CompileJob `json:"job"`
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.store.ListJobs()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	entries := make([]historyEntry, 0, len(jobs))
	for i, j := range jobs {
		entries = append(entries, historyEntry{Position: i + 1, Job: j})
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"count":   len(entries),
		"history": entries,
	})
}

func (h *Handler) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	position, err := strconv.Atoi(chi.URLParam(r, "position"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid history position")
		return
	}

	if err := h.store.DeleteJobAt(position); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": i18n.T(r.Context(), "HistoryEntryDeleted"),
	})
}

func (h *Handler) handleSaveQuiz(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	id, err := h.store.SaveQuiz(model.QuizDocument{
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   time.Now(),
		Questions:   h.session.Questions(),
	})
	if errors.Is(err, store.ErrUntitled) || errors.Is(err, store.ErrNoQuestions) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("save quiz", "title", req.Title, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"id":      id,
		"message": i18n.T(r.Context(), "QuizSaved"),
	})
}

func (h *Handler) handleListQuizzes(w http.ResponseWriter, r *http.Request) {
	docs, err := h.store.ListQuizzes()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type summary struct {
		ID          int64     `json:"id"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		CreatedAt   time.Time `json:"created_at"`
		Questions   int       `json:"questions"`
	}
	summaries := make([]summary, 0, len(docs))
	for _, d := range docs {
		summaries = append(summaries, summary{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			CreatedAt:   d.CreatedAt,
			Questions:   len(d.Questions),
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"count":   len(summaries),
		"quizzes": summaries,
	})
}

func (h *Handler) quizIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "quizID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid quiz ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := h.quizIDParam(w, r)
	if !ok {
		return
	}

	doc, err := h.store.GetQuiz(id)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "quiz not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

func (h *Handler) handleDeleteQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := h.quizIDParam(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteQuiz(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "quiz not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": i18n.T(r.Context(), "QuizDeleted"),
	})
}
