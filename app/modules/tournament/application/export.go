package tournamentservice

import (
	"context"
	"fmt"

	"github.com/Arcadelis/arcadis-scoring/internal/results"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/xuri/excelize/v2"
)

// ExportResults renders an ended tournament's final standings as an xlsx
// workbook. The same finality rule as GetTournamentResults applies.
func (s *TournamentService) ExportResults(ctx context.Context, id sharedtypes.TournamentID) (results.OperationResult[[]byte, error], error) {
	return withTelemetry(s, ctx, "ExportResults", string(id), func(ctx context.Context) (results.OperationResult[[]byte, error], error) {
		res, err := s.GetTournamentResults(ctx, id)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}
		if res.IsFailure() {
			return results.FailureResult[[]byte, error](*res.Failure), nil
		}

		data, err := BuildResultsWorkbook(*res.Success)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, fmt.Errorf("failed to render results workbook: %w", err)
		}
		return results.SuccessResult[[]byte, error](data), nil
	})
}

// BuildResultsWorkbook builds a single-sheet workbook with one row per
// ranked entry. Pure over the results document, so clients can render a
// workbook from a retrieved results payload without another round trip.
func BuildResultsWorkbook(res *TournamentResults) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Results"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := []string{"Rank", "Player", "Score"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, entry := range res.Results {
		values := []any{entry.Rank, string(entry.PlayerID), int64(entry.Score)}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
