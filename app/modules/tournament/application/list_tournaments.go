package tournamentservice

import (
	"context"
	"fmt"

	"github.com/Arcadelis/arcadis-scoring/internal/results"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// ListTournaments returns every registered tournament ID in creation order.
func (s *TournamentService) ListTournaments(ctx context.Context) (results.OperationResult[[]sharedtypes.TournamentID, error], error) {
	return withTelemetry(s, ctx, "ListTournaments", "index", func(ctx context.Context) (results.OperationResult[[]sharedtypes.TournamentID, error], error) {
		ids, err := s.repo.GetIndex(ctx, nil)
		if err != nil {
			return results.OperationResult[[]sharedtypes.TournamentID, error]{}, fmt.Errorf("failed to list tournaments: %w", err)
		}
		return results.SuccessResult[[]sharedtypes.TournamentID, error](ids), nil
	})
}

// ListActiveTournaments returns tournaments currently inside their window,
// in creation order. The backing store has no notion of "active", so the
// index is loaded and filtered here.
func (s *TournamentService) ListActiveTournaments(ctx context.Context, gameID sharedtypes.GameID) (results.OperationResult[[]TournamentSummary, error], error) {
	return withTelemetry(s, ctx, "ListActiveTournaments", string(gameID), func(ctx context.Context) (results.OperationResult[[]TournamentSummary, error], error) {
		ids, err := s.repo.GetIndex(ctx, nil)
		if err != nil {
			return results.OperationResult[[]TournamentSummary, error]{}, fmt.Errorf("failed to load tournament index: %w", err)
		}
		if len(ids) == 0 {
			return results.SuccessResult[[]TournamentSummary, error]([]TournamentSummary{}), nil
		}

		tournaments, err := s.repo.GetByIDs(ctx, nil, ids)
		if err != nil {
			return results.OperationResult[[]TournamentSummary, error]{}, fmt.Errorf("failed to load tournaments: %w", err)
		}

		// GetByIDs gives no ordering guarantee; restore creation order from
		// the index before filtering.
		byID := make(map[sharedtypes.TournamentID]int, len(tournaments))
		for i := range tournaments {
			byID[tournaments[i].ID] = i
		}

		now := s.clock.Now()
		summaries := make([]TournamentSummary, 0, len(ids))
		for _, id := range ids {
			i, ok := byID[id]
			if !ok {
				continue
			}
			t := &tournaments[i]
			if t.Status(now) != sharedtypes.TournamentActive {
				continue
			}
			if gameID != "" && t.GameID != gameID {
				continue
			}
			summaries = append(summaries, TournamentSummary{
				TournamentID: t.ID,
				GameID:       t.GameID,
				StartTime:    t.StartTime,
				EndTime:      t.EndTime,
				MaxEntries:   t.MaxEntries,
				EntryCount:   len(t.Entries),
				Status:       sharedtypes.TournamentActive,
			})
		}

		return results.SuccessResult[[]TournamentSummary, error](summaries), nil
	})
}
