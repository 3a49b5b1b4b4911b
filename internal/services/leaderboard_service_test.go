// file: internal/services/leaderboard_service_test.go
package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"dsavault/internal/models"
	"dsavault/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCache struct {
	entries map[string][]byte
	sets    int
	gets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	f.gets++
	raw, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	f.sets++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = raw
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	delete(f.entries, key)
	return nil
}

func (f *fakeCache) Health(context.Context) error { return nil }
func (f *fakeCache) Close() error                 { return nil }

func TestGetLeaderboard_RanksAndLabels(t *testing.T) {
	now := time.Now()
	problemRepo := newFakeProblemRepo()
	problemRepo.globalStats = &repositories.GlobalProblemStats{
		TotalSolved:        30,
		ActiveToday:        2,
		AvgDifficultyScore: 2.1,
	}
	problemRepo.leaderboard = []*models.LeaderboardEntry{
		{UserID: 2, Name: "Grace", ProblemsSolved: 10, DifficultyScore: 25, LastSolvedAt: &now},
		{UserID: 1, Name: "Alan", ProblemsSolved: 20, DifficultyScore: 25, LastSolvedAt: &now},
		{UserID: 3, Name: "Edsger", ProblemsSolved: 5, DifficultyScore: 9, LastSolvedAt: &now},
	}

	svc := NewLeaderboardService(problemRepo, newFakeUserRepo(), newFakeCache(), time.Minute, zap.NewNop())

	view, err := svc.GetLeaderboard(context.Background())
	require.NoError(t, err)

	require.Len(t, view.Entries, 3)
	assert.Equal(t, "Alan", view.Entries[0].Name, "ties break on raw solve count")
	assert.Equal(t, 1, view.Entries[0].Rank)
	assert.Equal(t, 3, view.Entries[2].Rank)
	assert.Equal(t, "Medium", view.AvgDifficulty)
	assert.Equal(t, 30, view.TotalSolved)
}

func TestGetLeaderboard_ServedFromCache(t *testing.T) {
	problemRepo := newFakeProblemRepo()
	c := newFakeCache()
	svc := NewLeaderboardService(problemRepo, newFakeUserRepo(), c, time.Minute, zap.NewNop())

	_, err := svc.GetLeaderboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, c.sets)

	_, err = svc.GetLeaderboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, c.sets, "second call must not rebuild the view")
}

func TestGetLeaderboard_EmptyBoard(t *testing.T) {
	svc := NewLeaderboardService(newFakeProblemRepo(), newFakeUserRepo(), newFakeCache(), time.Minute, zap.NewNop())

	view, err := svc.GetLeaderboard(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, view.Entries)
	assert.Empty(t, view.Entries)
	assert.Equal(t, "N/A", view.AvgDifficulty)
}
