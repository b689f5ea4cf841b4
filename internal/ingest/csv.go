package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pavelanni/quizforge/internal/model"
)

// RequiredColumns are the CSV header columns every import must carry,
// in schema order.
var RequiredColumns = []string{
	"question", "option_a", "option_b", "option_c", "option_d", "correct_answer",
}

// CSV parses comma-delimited question text with a header row. Each data row
// becomes one multiple-choice candidate with options in column order. The
// explanation and difficulty columns are optional and default to "" and
// medium. Row order is preserved.
func CSV(data string) ([]model.Question, error) {
	r := csv.NewReader(strings.NewReader(data))
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, &SchemaError{Missing: append([]string(nil), RequiredColumns...)}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	var questions []model.Question
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		field := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		q := model.Question{
			Question: field("question"),
			Type:     model.TypeMultipleChoice,
			Options: []string{
				field("option_a"), field("option_b"),
				field("option_c"), field("option_d"),
			},
			CorrectAnswer: field("correct_answer"),
			Explanation:   field("explanation"),
			Difficulty:    model.Difficulty(field("difficulty")),
		}
		if q.Difficulty == "" {
			q.Difficulty = model.DefaultDifficulty
		}
		questions = append(questions, q)
	}

	return questions, nil
}
