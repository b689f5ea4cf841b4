package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pavelanni/quizforge/internal/model"

	_ "modernc.org/sqlite"
)

// ErrUntitled is returned when saving a quiz without a title.
var ErrUntitled = errors.New("quiz title is required")

// ErrNoQuestions is returned when saving a quiz with an empty question set.
var ErrNoQuestions = errors.New("quiz has no questions")

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS quizzes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		questions TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS jobs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_id TEXT NOT NULL,
		quiz_name TEXT NOT NULL,
		question_count INTEGER NOT NULL,
		settings TEXT NOT NULL,
		status TEXT NOT NULL,
		output_file TEXT NOT NULL DEFAULT '',
		error TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveQuiz persists an immutable snapshot of a quiz document and returns its
// handle. The title is required at save time; questions get 1-based ids
// assigned here. Subsequent edits to the live set never alter a saved
// snapshot; saving again produces a new one.
func (s *Store) SaveQuiz(doc model.QuizDocument) (int64, error) {
	if doc.Title == "" {
		return 0, ErrUntitled
	}
	if len(doc.Questions) == 0 {
		return 0, ErrNoQuestions
	}

	questions := append([]model.Question(nil), doc.Questions...)
	for i := range questions {
		questions[i].ID = i + 1
	}
	payload, err := json.Marshal(questions)
	if err != nil {
		return 0, fmt.Errorf("marshal questions: %w", err)
	}

	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := s.db.Exec(
		`INSERT INTO quizzes (title, description, created_at, questions) VALUES (?, ?, ?, ?)`,
		doc.Title, doc.Description, createdAt, string(payload),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetQuiz returns a saved quiz document by handle.
func (s *Store) GetQuiz(id int64) (model.QuizDocument, error) {
	var doc model.QuizDocument
	var payload string
	err := s.db.QueryRow(
		`SELECT id, title, description, created_at, questions FROM quizzes WHERE id = ?`, id,
	).Scan(&doc.ID, &doc.Title, &doc.Description, &doc.CreatedAt, &payload)
	if err != nil {
		return doc, err
	}
	if err := json.Unmarshal([]byte(payload), &doc.Questions); err != nil {
		return doc, fmt.Errorf("unmarshal questions: %w", err)
	}
	return doc, nil
}

// ListQuizzes returns all saved quiz documents, newest first.
func (s *Store) ListQuizzes() ([]model.QuizDocument, error) {
	rows, err := s.db.Query(`SELECT id, title, description, created_at, questions FROM quizzes ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var docs []model.QuizDocument
	for rows.Next() {
		var doc model.QuizDocument
		var payload string
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Description, &doc.CreatedAt, &payload); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payload), &doc.Questions); err != nil {
			return nil, fmt.Errorf("unmarshal questions for quiz %d: %w", doc.ID, err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// DeleteQuiz removes a saved quiz by handle.
func (s *Store) DeleteQuiz(id int64) error {
	res, err := s.db.Exec(`DELETE FROM quizzes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// QuizCount returns the number of saved quizzes.
func (s *Store) QuizCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM quizzes`).Scan(&count)
	return count, err
}

// AppendJob records a terminal compilation job in the history ledger.
// Only the job engine appends; entries are never updated.
func (s *Store) AppendJob(job model.CompileJob) (int64, error) {
	settings, err := json.Marshal(job.Settings)
	if err != nil {
		return 0, fmt.Errorf("marshal settings: %w", err)
	}
	res, err := s.db.Exec(
		`INSERT INTO jobs (job_id, quiz_name, question_count, settings, status, output_file, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.QuizName, job.QuestionCount, string(settings),
		job.Status, job.OutputFile, job.Error, job.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListJobs returns history entries in completion order. Positions are
// presentational: callers derive them from the returned order and must
// re-resolve after any deletion.
func (s *Store) ListJobs() ([]model.CompileJob, error) {
	rows, err := s.db.Query(
		`SELECT job_id, quiz_name, question_count, settings, status, output_file, error, created_at
		 FROM jobs ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var jobs []model.CompileJob
	for rows.Next() {
		var job model.CompileJob
		var settings string
		if err := rows.Scan(&job.ID, &job.QuizName, &job.QuestionCount, &settings,
			&job.Status, &job.OutputFile, &job.Error, &job.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(settings), &job.Settings); err != nil {
			return nil, fmt.Errorf("unmarshal settings for job %s: %w", job.ID, err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// JobCount returns the number of history entries.
func (s *Store) JobCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM jobs`).Scan(&count)
	return count, err
}

// DeleteJobAt removes exactly one history entry by its current 1-based
// position in completion order. Remaining entries keep their order; their
// positions shift because positions are re-derived on each listing.
func (s *Store) DeleteJobAt(position int) error {
	if position < 1 {
		return fmt.Errorf("history position %d out of range", position)
	}
	var id int64
	err := s.db.QueryRow(
		`SELECT id FROM jobs ORDER BY id LIMIT 1 OFFSET ?`, position-1,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return fmt.Errorf("history position %d out of range", position)
	}
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`DELETE FROM jobs WHERE id = ?`, id)
	return err
}
