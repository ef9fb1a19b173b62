package api

import (
	"context"
	"go-gitissues/internal/domain/types/apitypes"

	"github.com/stretchr/testify/mock"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchIssues(ctx context.Context, owner, repo string) ([]apitypes.RawIssue, error) {
	args := m.Called(ctx, owner, repo)

	issues, _ := args.Get(0).([]apitypes.RawIssue)

	return issues, args.Error(1)
}
