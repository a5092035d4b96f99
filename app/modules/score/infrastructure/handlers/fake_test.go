package scorehandlers

import (
	"context"

	scoreservice "github.com/Arcadelis/arcadis-scoring/app/modules/score/application"
	"github.com/Arcadelis/arcadis-scoring/internal/results"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// FakeService implements scoreservice.Service for handler tests.
type FakeService struct {
	SubmitScoreFunc      func(ctx context.Context, input scoreservice.SubmitScoreInput) (results.OperationResult[*scoreservice.SubmissionResult, error], error)
	GetPlayerHistoryFunc func(ctx context.Context, playerID sharedtypes.PlayerID) (results.OperationResult[*scoreservice.PlayerHistoryView, error], error)
}

func NewFakeService() *FakeService {
	return &FakeService{}
}

func (f *FakeService) SubmitScore(ctx context.Context, input scoreservice.SubmitScoreInput) (results.OperationResult[*scoreservice.SubmissionResult, error], error) {
	if f.SubmitScoreFunc != nil {
		return f.SubmitScoreFunc(ctx, input)
	}
	return results.OperationResult[*scoreservice.SubmissionResult, error]{}, nil
}

func (f *FakeService) GetPlayerHistory(ctx context.Context, playerID sharedtypes.PlayerID) (results.OperationResult[*scoreservice.PlayerHistoryView, error], error) {
	if f.GetPlayerHistoryFunc != nil {
		return f.GetPlayerHistoryFunc(ctx, playerID)
	}
	return results.OperationResult[*scoreservice.PlayerHistoryView, error]{}, nil
}

var _ scoreservice.Service = (*FakeService)(nil)
