// Package export serializes an accepted question set back to tabular or
// JSON form, the inverse of the ingest adapters.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/pavelanni/quizforge/internal/ingest"
	"github.com/pavelanni/quizforge/internal/model"
)

// CSV writes one row per record under the tabular ingestion header, so
// ingesting the output yields the same set back (modulo the defaults the
// ingest side inserts for omitted optional columns). Option lists shorter
// than four slots are padded with empty cells.
func CSV(questions []model.Question) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append(append([]string(nil), ingest.RequiredColumns...), "explanation", "difficulty")
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for _, q := range questions {
		row := []string{q.Question}
		for i := 0; i < 4; i++ {
			if i < len(q.Options) {
				row = append(row, q.Options[i])
			} else {
				row = append(row, "")
			}
		}
		row = append(row, q.CorrectAnswer, q.Explanation, string(q.Difficulty))
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSON re-serializes the question sequence directly.
func JSON(questions []model.Question) ([]byte, error) {
	return json.MarshalIndent(questions, "", "  ")
}
