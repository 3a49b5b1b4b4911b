// file: internal/services/badge_service_test.go
package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"dsavault/internal/badges"
	"dsavault/internal/models"
	"dsavault/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ===============================
// FAKE REPOSITORIES
// ===============================

type fakeProblemRepo struct {
	problems    map[int64][]*models.Problem
	findErr     error
	findCalls   int
	writeCalled bool

	globalStats *repositories.GlobalProblemStats
	leaderboard []*models.LeaderboardEntry
}

func newFakeProblemRepo() *fakeProblemRepo {
	return &fakeProblemRepo{problems: make(map[int64][]*models.Problem)}
}

func (f *fakeProblemRepo) FindByOwner(_ context.Context, ownerID int64) ([]*models.Problem, error) {
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.problems[ownerID], nil
}

func (f *fakeProblemRepo) Create(_ context.Context, p *models.Problem) error {
	f.writeCalled = true
	f.problems[p.OwnerID] = append(f.problems[p.OwnerID], p)
	return nil
}

func (f *fakeProblemRepo) GetByID(_ context.Context, id, ownerID int64) (*models.Problem, error) {
	for _, p := range f.problems[ownerID] {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProblemRepo) Delete(context.Context, int64, int64) error {
	f.writeCalled = true
	return nil
}

func (f *fakeProblemRepo) List(context.Context, int64, models.PaginationParams) (*models.PaginatedResponse[*models.Problem], error) {
	return nil, nil
}

func (f *fakeProblemRepo) UpdateAnalysis(context.Context, *models.Problem) error {
	f.writeCalled = true
	return nil
}

func (f *fakeProblemRepo) TopicCounts(context.Context, int64) ([]*models.TopicCount, error) {
	return nil, nil
}

func (f *fakeProblemRepo) GlobalStats(context.Context) (*repositories.GlobalProblemStats, error) {
	if f.globalStats == nil {
		return &repositories.GlobalProblemStats{}, nil
	}
	return f.globalStats, nil
}

func (f *fakeProblemRepo) LeaderboardRows(context.Context, int) ([]*models.LeaderboardEntry, error) {
	return f.leaderboard, nil
}

type fakeBadgeRepo struct {
	earned    map[int64][]*models.EarnedBadge
	findErr   error
	insertErr error

	// duplicates simulates rows inserted by a concurrent check: Insert on
	// one of these badge ids returns ErrDuplicateBadge.
	duplicates map[string]bool

	inserts int
}

func newFakeBadgeRepo() *fakeBadgeRepo {
	return &fakeBadgeRepo{
		earned:     make(map[int64][]*models.EarnedBadge),
		duplicates: make(map[string]bool),
	}
}

func (f *fakeBadgeRepo) Insert(_ context.Context, badge *models.EarnedBadge) error {
	f.inserts++
	if f.insertErr != nil {
		return f.insertErr
	}
	if f.duplicates[badge.BadgeID] {
		return repositories.ErrDuplicateBadge
	}
	for _, b := range f.earned[badge.OwnerID] {
		if b.BadgeID == badge.BadgeID {
			return repositories.ErrDuplicateBadge
		}
	}
	badge.ID = int64(f.inserts)
	badge.EarnedAt = time.Now()
	f.earned[badge.OwnerID] = append(f.earned[badge.OwnerID], badge)
	return nil
}

func (f *fakeBadgeRepo) FindByOwner(_ context.Context, ownerID int64) ([]*models.EarnedBadge, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.earned[ownerID], nil
}

// ===============================
// TEST HELPERS
// ===============================

func newTestBadgeService(t *testing.T, problemRepo *fakeProblemRepo, badgeRepo *fakeBadgeRepo) *badgeServiceImpl {
	t.Helper()
	catalog, err := badges.NewCatalog(badges.DefaultDefinitions())
	require.NoError(t, err)

	svc := NewBadgeService(catalog, badgeRepo, problemRepo, nil, zap.NewNop())
	return svc.(*badgeServiceImpl)
}

func seedProblems(repo *fakeProblemRepo, ownerID int64, count int, difficulty string, at time.Time) {
	for i := 0; i < count; i++ {
		repo.problems[ownerID] = append(repo.problems[ownerID], &models.Problem{
			ID:         int64(len(repo.problems[ownerID]) + 1),
			OwnerID:    ownerID,
			Title:      fmt.Sprintf("Problem %d", i+1),
			Difficulty: difficulty,
			Topic:      "Arrays",
			CreatedAt:  at.Add(time.Duration(i) * time.Minute),
		})
	}
}

// seedSpread places one problem per day on distinct past days, far enough
// back that no streak can reach today.
func seedSpread(repo *fakeProblemRepo, ownerID int64, count int, difficulty string, base time.Time) {
	for i := 0; i < count; i++ {
		seedProblems(repo, ownerID, 1, difficulty, base.AddDate(0, 0, -(30 + i)))
	}
}

func awardedIDs(badgesList []*models.EarnedBadge) []string {
	ids := make([]string, 0, len(badgesList))
	for _, b := range badgesList {
		ids = append(ids, b.BadgeID)
	}
	return ids
}

// Tuesday at noon keeps daily_count, weekend and time_of_day rules out of the
// way unless a test opts in.
var quietTime = time.Date(2025, 3, 4, 12, 0, 0, 0, time.Local)

// ===============================
// CHECK AND AWARD
// ===============================

func TestCheckAndAward_FirstProblem(t *testing.T) {
	problemRepo := newFakeProblemRepo()
	badgeRepo := newFakeBadgeRepo()
	svc := newTestBadgeService(t, problemRepo, badgeRepo)
	svc.now = func() time.Time { return quietTime }

	// One problem solved days ago: only first_problem should fire.
	seedProblems(problemRepo, 1, 1, "Easy", quietTime.AddDate(0, 0, -3))

	awarded, err := svc.CheckAndAward(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"first_problem"}, awardedIDs(awarded))
	assert.Equal(t, "First Blood", awarded[0].Name)
	assert.Equal(t, 1, awarded[0].Metadata["metric"])
}

func TestCheckAndAward_SecondCallReturnsEmptyDelta(t *testing.T) {
	problemRepo := newFakeProblemRepo()
	badgeRepo := newFakeBadgeRepo()
	svc := newTestBadgeService(t, problemRepo, badgeRepo)
	svc.now = func() time.Time { return quietTime }

	seedProblems(problemRepo, 1, 10, "Easy", quietTime.AddDate(0, 0, -3))

	first, err := svc.CheckAndAward(context.Background(), 1)
	require.NoError(t, err)
	assert.Contains(t, awardedIDs(first), "first_problem")
	assert.Contains(t, awardedIDs(first), "problem_enthusiast")
	assert.Contains(t, awardedIDs(first), "easy_starter")

	// Nothing changed, so the second call must award nothing.
	second, err := svc.CheckAndAward(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestCheckAndAward_DeltaOnlyContainsNewBadges(t *testing.T) {
	problemRepo := newFakeProblemRepo()
	badgeRepo := newFakeBadgeRepo()
	svc := newTestBadgeService(t, problemRepo, badgeRepo)
	svc.now = func() time.Time { return quietTime }

	seedSpread(problemRepo, 1, 9, "Easy", quietTime)
	first, err := svc.CheckAndAward(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"first_problem"}, awardedIDs(first))

	seedProblems(problemRepo, 1, 1, "Easy", quietTime.AddDate(0, 0, -2))
	second, err := svc.CheckAndAward(context.Background(), 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"problem_enthusiast", "easy_starter"}, awardedIDs(second))
}

func TestCheckAndAward_ConcurrentDuplicateSwallowed(t *testing.T) {
	problemRepo := newFakeProblemRepo()
	badgeRepo := newFakeBadgeRepo()
	svc := newTestBadgeService(t, problemRepo, badgeRepo)
	svc.now = func() time.Time { return quietTime }

	seedProblems(problemRepo, 1, 1, "Easy", quietTime.AddDate(0, 0, -3))

	// Another request won the insert race for first_problem.
	badgeRepo.duplicates["first_problem"] = true

	awarded, err := svc.CheckAndAward(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, awarded, "badge lost to a concurrent insert must not appear in the delta")
}

func TestCheckAndAward_DuplicateDoesNotAbortRemainingBadges(t *testing.T) {
	problemRepo := newFakeProblemRepo()
	badgeRepo := newFakeBadgeRepo()
	svc := newTestBadgeService(t, problemRepo, badgeRepo)
	svc.now = func() time.Time { return quietTime }

	seedSpread(problemRepo, 1, 10, "Easy", quietTime)
	badgeRepo.duplicates["first_problem"] = true

	awarded, err := svc.CheckAndAward(context.Background(), 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"problem_enthusiast", "easy_starter"}, awardedIDs(awarded))
}

func TestCheckAndAward_StoreReadFailurePropagates(t *testing.T) {
	problemRepo := newFakeProblemRepo()
	problemRepo.findErr = errors.New("connection refused")
	badgeRepo := newFakeBadgeRepo()
	svc := newTestBadgeService(t, problemRepo, badgeRepo)

	awarded, err := svc.CheckAndAward(context.Background(), 1)
	assert.Nil(t, awarded)
	require.Error(t, err)
	assert.True(t, IsErrorType(err, "STORE_ERROR"))
	assert.Zero(t, badgeRepo.inserts, "no awards may be attempted on a failed read")
}

func TestCheckAndAward_StoreWriteFailurePropagates(t *testing.T) {
	problemRepo := newFakeProblemRepo()
	badgeRepo := newFakeBadgeRepo()
	badgeRepo.insertErr = errors.New("disk full")
	svc := newTestBadgeService(t, problemRepo, badgeRepo)
	svc.now = func() time.Time { return quietTime }

	seedProblems(problemRepo, 1, 1, "Easy", quietTime.AddDate(0, 0, -3))

	_, err := svc.CheckAndAward(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsErrorType(err, "STORE_ERROR"))
}

func TestCheckAndAward_StreakBadgeRequiresToday(t *testing.T) {
	problemRepo := newFakeProblemRepo()
	badgeRepo := newFakeBadgeRepo()
	svc := newTestBadgeService(t, problemRepo, badgeRepo)
	svc.now = func() time.Time { return quietTime }

	// 7 consecutive days ending yesterday: no streak badge.
	for d := 1; d <= 7; d++ {
		seedProblems(problemRepo, 1, 1, "Medium", quietTime.AddDate(0, 0, -d))
	}
	awarded, err := svc.CheckAndAward(context.Background(), 1)
	require.NoError(t, err)
	assert.NotContains(t, awardedIDs(awarded), "fire_starter")

	// Solving today closes the window.
	seedProblems(problemRepo, 1, 1, "Medium", quietTime)
	awarded, err = svc.CheckAndAward(context.Background(), 1)
	require.NoError(t, err)
	assert.Contains(t, awardedIDs(awarded), "fire_starter")
}

func TestCheckAndAward_InvalidOwner(t *testing.T) {
	svc := newTestBadgeService(t, newFakeProblemRepo(), newFakeBadgeRepo())

	_, err := svc.CheckAndAward(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

// ===============================
// LIST WITH PROGRESS
// ===============================

func TestListWithProgress_FullCatalogOrder(t *testing.T) {
	problemRepo := newFakeProblemRepo()
	badgeRepo := newFakeBadgeRepo()
	svc := newTestBadgeService(t, problemRepo, badgeRepo)
	svc.now = func() time.Time { return quietTime }

	views, err := svc.ListWithProgress(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, views, len(badges.DefaultDefinitions()))

	assert.Equal(t, "first_problem", views[0].BadgeID)
	assert.Equal(t, "consistency_king", views[len(views)-1].BadgeID)
	for _, v := range views {
		assert.True(t, v.Locked)
		assert.Zero(t, v.Progress)
		assert.Nil(t, v.EarnedAt)
	}
}

func TestListWithProgress_MixedEarnedAndLocked(t *testing.T) {
	problemRepo := newFakeProblemRepo()
	badgeRepo := newFakeBadgeRepo()
	svc := newTestBadgeService(t, problemRepo, badgeRepo)
	svc.now = func() time.Time { return quietTime }

	seedProblems(problemRepo, 1, 5, "Easy", quietTime.AddDate(0, 0, -3))

	_, err := svc.CheckAndAward(context.Background(), 1)
	require.NoError(t, err)

	views, err := svc.ListWithProgress(context.Background(), 1)
	require.NoError(t, err)

	byID := make(map[string]*models.ProgressView, len(views))
	for _, v := range views {
		byID[v.BadgeID] = v
	}

	earned := byID["first_problem"]
	require.NotNil(t, earned)
	assert.False(t, earned.Locked)
	assert.Equal(t, 100, earned.Progress)
	assert.NotNil(t, earned.EarnedAt)

	// 5 of 10 total problems.
	locked := byID["problem_enthusiast"]
	require.NotNil(t, locked)
	assert.True(t, locked.Locked)
	assert.Equal(t, 50, locked.Progress)
	assert.Nil(t, locked.EarnedAt)

	// 5 of 10 Easy.
	assert.Equal(t, 50, byID["easy_starter"].Progress)
}

func TestListWithProgress_ReadOnly(t *testing.T) {
	problemRepo := newFakeProblemRepo()
	badgeRepo := newFakeBadgeRepo()
	svc := newTestBadgeService(t, problemRepo, badgeRepo)
	svc.now = func() time.Time { return quietTime }

	seedProblems(problemRepo, 1, 10, "Easy", quietTime.AddDate(0, 0, -3))

	// Every requirement here is satisfied, but listing must award nothing.
	views, err := svc.ListWithProgress(context.Background(), 1)
	require.NoError(t, err)
	assert.NotEmpty(t, views)
	assert.Zero(t, badgeRepo.inserts)
	assert.False(t, problemRepo.writeCalled)
}

func TestListWithProgress_NeverCached(t *testing.T) {
	problemRepo := newFakeProblemRepo()
	badgeRepo := newFakeBadgeRepo()
	svc := newTestBadgeService(t, problemRepo, badgeRepo)
	svc.now = func() time.Time { return quietTime }

	_, err := svc.ListWithProgress(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.ListWithProgress(context.Background(), 1)
	require.NoError(t, err)

	// Each call must hit the store again.
	assert.Equal(t, 2, problemRepo.findCalls)
}

func TestListWithProgress_StoreFailurePropagates(t *testing.T) {
	problemRepo := newFakeProblemRepo()
	badgeRepo := newFakeBadgeRepo()
	badgeRepo.findErr = errors.New("timeout")
	svc := newTestBadgeService(t, problemRepo, badgeRepo)

	views, err := svc.ListWithProgress(context.Background(), 1)
	assert.Nil(t, views, "partial results must not be presented as complete")
	require.Error(t, err)
	assert.True(t, IsErrorType(err, "STORE_ERROR"))
}

// ===============================
// STATS
// ===============================

func TestGetStats(t *testing.T) {
	problemRepo := newFakeProblemRepo()
	badgeRepo := newFakeBadgeRepo()
	svc := newTestBadgeService(t, problemRepo, badgeRepo)
	svc.now = func() time.Time { return quietTime }

	seedSpread(problemRepo, 1, 10, "Easy", quietTime)
	_, err := svc.CheckAndAward(context.Background(), 1)
	require.NoError(t, err)

	stats, err := svc.GetStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.ByCategory["special"])
	assert.Equal(t, 1, stats.ByCategory["problem_count"])
	assert.Equal(t, 1, stats.ByCategory["difficulty"])
	assert.Equal(t, 3, stats.ByTier["bronze"])
	assert.Len(t, stats.Recent, 3)
}

func TestGetStats_EmptyUser(t *testing.T) {
	svc := newTestBadgeService(t, newFakeProblemRepo(), newFakeBadgeRepo())

	stats, err := svc.GetStats(context.Background(), 42)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Empty(t, stats.ByCategory)
	assert.Empty(t, stats.Recent)
}
