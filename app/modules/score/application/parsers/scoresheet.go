package parsers

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/xuri/excelize/v2"
)

// SubmissionDraft is one parsed scoresheet row, ready to be submitted
// against a tournament.
type SubmissionDraft struct {
	PlayerID sharedtypes.PlayerID
	Score    sharedtypes.Score
}

// ParseScoresheet reads an .xlsx scoresheet into submission drafts. The first
// sheet must carry a "player_id | score" header row; blank rows are skipped
// and malformed rows fail with their line number.
func ParseScoresheet(r io.Reader) ([]SubmissionDraft, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open scoresheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("scoresheet has no sheets")
	}

	sheetName := sheets[0]
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheetName)
	}

	if err := validateHeader(rows[0]); err != nil {
		return nil, err
	}

	var drafts []SubmissionDraft
	for i, row := range rows[1:] {
		line := i + 2

		if isBlankRow(row) {
			continue
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("row %d: expected player_id and score columns", line)
		}

		playerID := strings.TrimSpace(row[0])
		if playerID == "" {
			return nil, fmt.Errorf("row %d: missing player_id", line)
		}

		raw := strings.TrimSpace(row[1])
		score, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: non-numeric score value %q", line, raw)
		}
		if score < 0 {
			return nil, fmt.Errorf("row %d: negative score value %d", line, score)
		}

		drafts = append(drafts, SubmissionDraft{
			PlayerID: sharedtypes.PlayerID(playerID),
			Score:    sharedtypes.Score(score),
		})
	}

	if len(drafts) == 0 {
		return nil, fmt.Errorf("scoresheet has no submission rows")
	}

	return drafts, nil
}

func validateHeader(header []string) error {
	if len(header) < 2 ||
		!strings.EqualFold(strings.TrimSpace(header[0]), "player_id") ||
		!strings.EqualFold(strings.TrimSpace(header[1]), "score") {
		return fmt.Errorf("scoresheet header must be player_id | score")
	}
	return nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
