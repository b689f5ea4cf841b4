package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/quizforge/internal/export"
	"github.com/pavelanni/quizforge/internal/i18n"
	"github.com/pavelanni/quizforge/internal/ingest"
	"github.com/pavelanni/quizforge/internal/job"
	"github.com/pavelanni/quizforge/internal/llm"
	"github.com/pavelanni/quizforge/internal/model"
	"github.com/pavelanni/quizforge/internal/session"
	"github.com/pavelanni/quizforge/internal/store"
	"github.com/pavelanni/quizforge/internal/validate"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	session *session.Session
	store   *store.Store
	engine  *job.Engine
	llm     *llm.Client // nil when no LLM endpoint is configured
}

// New creates a new Handler.
func New(sess *session.Session, st *store.Store, engine *job.Engine, llmClient *llm.Client) *Handler {
	return &Handler{session: sess, store: st, engine: engine, llm: llmClient}
}

// Routes registers all API routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/api/stats", h.handleStats)

	r.Post("/api/questions/upload", h.handleUpload)
	r.Post("/api/questions/paste", h.handlePaste)
	r.Post("/api/questions/manual", h.handleManual)
	r.Post("/api/questions/generate", h.handleGenerate)
	r.Get("/api/questions", h.handleListQuestions)
	r.Put("/api/questions/{index}", h.handleUpdateQuestion)
	r.Delete("/api/questions", h.handleClearQuestions)
	r.Get("/api/questions/export", h.handleExport)

	r.Get("/api/settings", h.handleGetSettings)
	r.Put("/api/settings", h.handleSaveSettings)
	r.Post("/api/settings/reset", h.handleResetSettings)
	r.Get("/api/settings/config", h.handleConfigPreview)

	r.Post("/api/compile", h.handleCompile)
	r.Get("/api/history", h.handleHistory)
	r.Delete("/api/history/{position}", h.handleDeleteHistory)

	r.Post("/api/quizzes", h.handleSaveQuiz)
	r.Get("/api/quizzes", h.handleListQuizzes)
	r.Get("/api/quizzes/{quizID}", h.handleGetQuiz)
	r.Delete("/api/quizzes/{quizID}", h.handleDeleteQuiz)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// importResult is the response body for every ingestion endpoint.
type importResult struct {
	Imported int    `json:"imported"`
	Message  string `json:"message"`
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "file too large")
		return
	}

	file, header, err := r.FormFile("questions_file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	format := "json"
	if strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		format = "csv"
	}
	h.importQuestions(w, r, format, string(data))
}

func (h *Handler) handlePaste(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Format string `json:"format"`
		Data   string `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	h.importQuestions(w, r, strings.ToLower(req.Format), req.Data)
}

// importQuestions runs the selected ingestion adapter and replaces the
// accepted set on success, matching the upload/paste semantics of the UI.
func (h *Handler) importQuestions(w http.ResponseWriter, r *http.Request, format, data string) {
	var (
		questions []model.Question
		err       error
	)
	switch format {
	case "csv":
		questions, err = ingest.CSV(data)
	case "json":
		questions, err = ingest.JSON(data)
	default:
		respondError(w, http.StatusBadRequest, "unsupported format: "+format)
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.session.ReplaceQuestions(questions)
	slog.Info("imported questions", "format", format, "count", len(questions))
	respondJSON(w, http.StatusOK, importResult{
		Imported: len(questions),
		Message:  i18n.Tp(r.Context(), "ImportedQuestions", len(questions)),
	})
}

func (h *Handler) handleManual(w http.ResponseWriter, r *http.Request) {
	var entry ingest.ManualEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	// An incomplete entry is dropped, not rejected; the count makes the
	// omission observable to the caller.
	q, ok := ingest.Manual(entry)
	if !ok {
		respondJSON(w, http.StatusOK, importResult{
			Imported: 0,
			Message:  i18n.Tp(r.Context(), "QuestionsAdded", 0),
		})
		return
	}

	h.session.AddQuestions(q)
	respondJSON(w, http.StatusOK, importResult{
		Imported: 1,
		Message:  i18n.Tp(r.Context(), "QuestionsAdded", 1),
	})
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if h.llm == nil {
		respondError(w, http.StatusServiceUnavailable, "no LLM endpoint configured")
		return
	}

	var req struct {
		Topic      string           `json:"topic"`
		Count      int              `json:"count"`
		Difficulty model.Difficulty `json:"difficulty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Topic == "" {
		respondError(w, http.StatusBadRequest, "topic is required")
		return
	}
	if req.Count <= 0 {
		req.Count = 5
	}

	questions, err := h.llm.GenerateQuestions(r.Context(), req.Topic, req.Count, req.Difficulty)
	if err != nil {
		slog.Error("question generation failed", "topic", req.Topic, "error", err)
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	h.session.AddQuestions(questions...)
	respondJSON(w, http.StatusOK, importResult{
		Imported: len(questions),
		Message:  i18n.Tp(r.Context(), "QuestionsAdded", len(questions)),
	})
}

func (h *Handler) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	questions := h.session.Questions()

	if d := r.URL.Query().Get("difficulty"); d != "" {
		var filtered []model.Question
		for _, q := range questions {
			if q.Difficulty == model.Difficulty(d) {
				filtered = append(filtered, q)
			}
		}
		questions = filtered
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"count":     len(questions),
		"questions": questions,
	})
}

func (h *Handler) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid question index")
		return
	}

	var q model.Question
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if q.Type == "" {
		q.Type = model.TypeMultipleChoice
	}
	// A true/false question always carries the fixed option pair; the
	// client only has to pick the answer.
	if q.Type == model.TypeTrueFalse && len(q.Options) == 0 {
		q.Options = append([]string(nil), model.TrueFalseOptions...)
	}

	// The edited record must be as well-formed as anything entering the set.
	if err := validate.Questions([]model.Question{q}); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.session.UpdateQuestion(index, q); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": i18n.T(r.Context(), "QuestionUpdated"),
	})
}

func (h *Handler) handleClearQuestions(w http.ResponseWriter, r *http.Request) {
	h.session.ClearQuestions()
	respondJSON(w, http.StatusOK, map[string]string{
		"message": i18n.T(r.Context(), "QuestionsCleared"),
	})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	questions := h.session.Questions()

	switch strings.ToLower(r.URL.Query().Get("format")) {
	case "csv":
		data, err := export.CSV(questions)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="questions.csv"`)
		_, _ = w.Write(data)
	case "json", "":
		data, err := export.JSON(questions)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="questions.json"`)
		_, _ = w.Write(data)
	default:
		respondError(w, http.StatusBadRequest, "unsupported format")
	}
}
