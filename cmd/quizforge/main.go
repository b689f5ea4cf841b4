package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pavelanni/quizforge/internal/export"
	"github.com/pavelanni/quizforge/internal/handler"
	appI18n "github.com/pavelanni/quizforge/internal/i18n"
	"github.com/pavelanni/quizforge/internal/ingest"
	"github.com/pavelanni/quizforge/internal/job"
	"github.com/pavelanni/quizforge/internal/llm"
	"github.com/pavelanni/quizforge/internal/model"
	"github.com/pavelanni/quizforge/internal/render"
	"github.com/pavelanni/quizforge/internal/session"
	"github.com/pavelanni/quizforge/internal/store"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "quizforge",
		Short: "Quiz question manager and quiz video compiler",
	}

	serve := serveCmd()
	root.AddCommand(serve, compileCmd(), exportCmd(), historyCmd(), generateCmd())

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE

	// Register serve flags on root so bare `quizforge --addr ...` still works.
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the quiz API server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.String("db", "quizforge.db", "SQLite database path")
	f.StringP("lang", "l", "en", "Message language (en, ru)")
	f.String("llm-url", "", "OpenAI-compatible API base URL for question generation (empty = disabled)")
	f.String("llm-key", "ollama", "API key for LLM")
	f.String("llm-model", "llama3.2", "LLM model name")
	f.Duration("step-delay", 500*time.Millisecond, "Simulated render step duration")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func compileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a question file into a quiz video",
		RunE:  runCompile,
	}
	f := cmd.Flags()
	f.String("db", "quizforge.db", "SQLite database path")
	f.StringP("input", "i", "", "Question file (.csv or .json, required)")
	f.StringP("name", "n", "Quiz_Video", "Quiz name for the output file")
	f.StringP("format", "f", "mp4", "Output format (mp4, webm, mkv)")
	f.Duration("step-delay", 500*time.Millisecond, "Simulated render step duration")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a saved quiz's questions as CSV or JSON",
		RunE:  runExport,
	}
	f := cmd.Flags()
	f.String("db", "quizforge.db", "SQLite database path")
	f.Int64("quiz-id", 0, "Saved quiz ID (required)")
	f.StringP("format", "f", "json", "Export format (csv, json)")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")

	_ = cmd.MarkFlagRequired("quiz-id")

	return cmd
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or prune compilation history",
		RunE:  runHistory,
	}
	f := cmd.Flags()
	f.String("db", "quizforge.db", "SQLite database path")
	f.Int("delete", 0, "Delete the entry at this 1-based position")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate candidate questions with an LLM and print them as JSON",
		RunE:  runGenerate,
	}
	f := cmd.Flags()
	f.StringP("topic", "t", "", "Question topic (required)")
	f.IntP("count", "c", 5, "Number of questions to generate")
	f.StringP("difficulty", "d", "medium", "Difficulty (easy, medium, hard)")
	f.String("llm-url", "http://localhost:11434/v1", "OpenAI-compatible API base URL")
	f.String("llm-key", "ollama", "API key for LLM")
	f.String("llm-model", "llama3.2", "LLM model name")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")

	_ = cmd.MarkFlagRequired("topic")

	return cmd
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("QUIZFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("quizforge")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/quizforge")
	v.AddConfigPath("/etc/quizforge")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	var llmClient *llm.Client
	if url := v.GetString("llm-url"); url != "" {
		llmClient = llm.New(url, v.GetString("llm-key"), v.GetString("llm-model"))
		if err := llmClient.Ping(cmd.Context()); err != nil {
			return fmt.Errorf("LLM health check: %w", err)
		}
		slog.Info("LLM endpoint OK", "url", url, "model", v.GetString("llm-model"))
	}

	sess := session.New()
	renderer := &render.Simulated{Delay: v.GetDuration("step-delay")}
	engine := job.NewEngine(renderer, db)

	h := handler.New(sess, db, engine, llmClient)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appI18n.Middleware(lang))
	h.Routes(r)

	addr := v.GetString("addr")
	slog.Info("starting server", "addr", addr, "db", v.GetString("db"), "lang", lang)
	return http.ListenAndServe(addr, r)
}

func runCompile(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	inputPath := v.GetString("input")
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inputPath, err)
	}

	var questions []model.Question
	if strings.EqualFold(filepath.Ext(inputPath), ".csv") {
		questions, err = ingest.CSV(string(data))
	} else {
		questions, err = ingest.JSON(string(data))
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", inputPath, err)
	}
	slog.Info("parsed questions", "path", inputPath, "count", len(questions))

	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	renderer := &render.Simulated{Delay: v.GetDuration("step-delay")}
	engine := job.NewEngine(renderer, db)

	result, err := engine.Run(cmd.Context(), job.Request{
		QuizName:  v.GetString("name"),
		Questions: questions,
		Settings:  model.DefaultRenderSettings(),
		Format:    v.GetString("format"),
		Progress: func(p job.Progress) {
			fmt.Fprintf(os.Stderr, "[%3.0f%%] %s\n", p.Fraction*100, p.Label)
		},
	})
	if err != nil {
		return err
	}

	fmt.Println(result.OutputFile)
	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	doc, err := db.GetQuiz(v.GetInt64("quiz-id"))
	if err != nil {
		return fmt.Errorf("load quiz %d: %w", v.GetInt64("quiz-id"), err)
	}

	var data []byte
	switch strings.ToLower(v.GetString("format")) {
	case "csv":
		data, err = export.CSV(doc.Questions)
	case "json":
		data, err = export.JSON(doc.Questions)
	default:
		return fmt.Errorf("unsupported format %q", v.GetString("format"))
	}
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	return writeOutput(v.GetString("output"), data)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if pos := v.GetInt("delete"); pos > 0 {
		if err := db.DeleteJobAt(pos); err != nil {
			return err
		}
		fmt.Printf("deleted history entry at position %d\n", pos)
		return nil
	}

	jobs, err := db.ListJobs()
	if err != nil {
		return fmt.Errorf("list jobs: %w", err)
	}
	for i, j := range jobs {
		output := j.OutputFile
		if output == "" {
			output = "-"
		}
		fmt.Printf("%3d  %-12s %-9s %3d questions  %s\n",
			i+1, j.ID, j.Status, j.QuestionCount, output)
	}
	return nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	client := llm.New(v.GetString("llm-url"), v.GetString("llm-key"), v.GetString("llm-model"))
	if err := client.Ping(cmd.Context()); err != nil {
		return fmt.Errorf("LLM health check: %w", err)
	}

	questions, err := client.GenerateQuestions(
		cmd.Context(),
		v.GetString("topic"),
		v.GetInt("count"),
		model.Difficulty(v.GetString("difficulty")),
	)
	if err != nil {
		return fmt.Errorf("generate questions: %w", err)
	}

	data, err := export.JSON(questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	return writeOutput(v.GetString("output"), data)
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}
