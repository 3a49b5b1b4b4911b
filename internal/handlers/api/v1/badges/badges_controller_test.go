package badges

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dsavault/internal/contextutils"
	"dsavault/internal/models"
	"dsavault/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockBadgeService is a simplified mock implementation for testing
type mockBadgeService struct {
	views      []*models.ProgressView
	newBadges  []*models.EarnedBadge
	earned     []*models.EarnedBadge
	stats      *models.BadgeStats
	err        error
	checkCalls int
}

func (m *mockBadgeService) CheckAndAward(ctx context.Context, ownerID int64) ([]*models.EarnedBadge, error) {
	m.checkCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.newBadges, nil
}

func (m *mockBadgeService) ListWithProgress(ctx context.Context, ownerID int64) ([]*models.ProgressView, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.views, nil
}

func (m *mockBadgeService) GetEarned(ctx context.Context, ownerID int64) ([]*models.EarnedBadge, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.earned, nil
}

func (m *mockBadgeService) GetStats(ctx context.Context, ownerID int64) (*models.BadgeStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.stats, nil
}

func authedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := contextutils.WithUserID(req.Context(), 7)
	return req.WithContext(ctx)
}

func TestList_ReturnsProgressViews(t *testing.T) {
	mock := &mockBadgeService{
		views: []*models.ProgressView{
			{BadgeID: "first_problem", Name: "First Blood", Progress: 100, Locked: false},
			{BadgeID: "problem_enthusiast", Name: "Enthusiast", Progress: 40, Locked: true},
		},
	}
	controller := NewBadgesController(mock, zap.NewNop())

	rec := httptest.NewRecorder()
	controller.List(rec, authedRequest(http.MethodGet, "/api/v1/badges"))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool                   `json:"success"`
		Data    []*models.ProgressView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 2)
	assert.Equal(t, "first_problem", body.Data[0].BadgeID)
	assert.Equal(t, 40, body.Data[1].Progress)
}

func TestList_DoesNotTriggerAwards(t *testing.T) {
	mock := &mockBadgeService{}
	controller := NewBadgesController(mock, zap.NewNop())

	rec := httptest.NewRecorder()
	controller.List(rec, authedRequest(http.MethodGet, "/api/v1/badges"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, mock.checkCalls)
}

func TestTrigger_ReturnsDelta(t *testing.T) {
	mock := &mockBadgeService{
		newBadges: []*models.EarnedBadge{
			{BadgeID: "fire_starter", Name: "Fire Starter", Tier: "bronze", EarnedAt: time.Now()},
		},
	}
	controller := NewBadgesController(mock, zap.NewNop())

	rec := httptest.NewRecorder()
	controller.Trigger(rec, authedRequest(http.MethodPost, "/api/v1/badges/trigger"))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			NewBadges []*models.EarnedBadge `json:"new_badges"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.NewBadges, 1)
	assert.Equal(t, "fire_starter", body.Data.NewBadges[0].BadgeID)
	assert.Equal(t, 1, mock.checkCalls)
}

func TestTrigger_EmptyDelta(t *testing.T) {
	controller := NewBadgesController(&mockBadgeService{}, zap.NewNop())

	rec := httptest.NewRecorder()
	controller.Trigger(rec, authedRequest(http.MethodPost, "/api/v1/badges/trigger"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"new_badges"`)
}

func TestTrigger_StoreErrorBecomes500(t *testing.T) {
	mock := &mockBadgeService{
		err: services.NewStoreError("load earned badges", errors.New("connection reset")),
	}
	controller := NewBadgesController(mock, zap.NewNop())

	rec := httptest.NewRecorder()
	controller.Trigger(rec, authedRequest(http.MethodPost, "/api/v1/badges/trigger"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "STORE_ERROR")
}

func TestStats(t *testing.T) {
	mock := &mockBadgeService{
		stats: &models.BadgeStats{
			Total:      2,
			ByCategory: map[string]int{"streak": 1, "special": 1},
			ByTier:     map[string]int{"bronze": 2},
		},
	}
	controller := NewBadgesController(mock, zap.NewNop())

	rec := httptest.NewRecorder()
	controller.Stats(rec, authedRequest(http.MethodGet, "/api/v1/badges/stats"))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data models.BadgeStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Data.Total)
	assert.Equal(t, 1, body.Data.ByCategory["streak"])
}
