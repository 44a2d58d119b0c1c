package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/types"
)

func statsRepo(calls *int) *fakeDashboardRepo {
	return &fakeDashboardRepo{
		requestCounts: func(ctx context.Context, scope repositories.RequestScope) (int64, int64, int64, int64, error) {
			*calls++
			return 12, 5, 2, 1, nil
		},
		statusBreakdown: func(ctx context.Context, scope repositories.RequestScope) (map[string]int64, error) {
			return map[string]int64{entities.StatusNew: 4, entities.StatusInProgress: 1}, nil
		},
		typeBreakdown: func(ctx context.Context, scope repositories.RequestScope) (map[string]int64, error) {
			return map[string]int64{entities.TypeCorrective: 10}, nil
		},
		equipmentCounts: func(ctx context.Context) (int64, int64, error) {
			return 30, 3, nil
		},
		teamStats: func(ctx context.Context, scope repositories.RequestScope) ([]types.DashboardTeamStat, error) {
			return []types.DashboardTeamStat{{TeamID: 9, Name: "Mechanics", RequestCount: 7, ActiveRequestCount: 4}}, nil
		},
		byDepartment: func(ctx context.Context) ([]types.DashboardDepartmentStat, error) {
			return []types.DashboardDepartmentStat{{Department: "Production", Count: 18}}, nil
		},
		recentRequests: func(ctx context.Context, scope repositories.RequestScope, limit uint64) ([]types.DashboardRecentRequest, error) {
			return []types.DashboardRecentRequest{{ID: 41, Subject: "Leaking coolant", EquipmentName: "Lathe", Status: entities.StatusNew, Priority: entities.PriorityHigh}}, nil
		},
		recentCompleted: func(ctx context.Context, scope repositories.RequestScope, limit uint64) ([]types.DashboardRecentRequest, error) {
			return nil, nil
		},
	}
}

func TestGetStatsFullyKeyedBreakdowns(t *testing.T) {
	calls := 0
	svc := NewDashboardService(statsRepo(&calls), newFakeCache(), zap.NewNop())

	stats, err := svc.GetStats(actorCtx(types.Actor{ID: 1, IsManager: true}))
	require.NoError(t, err)

	require.Len(t, stats.StatusBreakdown, len(entities.Statuses), "every status key present")
	assert.Equal(t, int64(4), stats.StatusBreakdown[entities.StatusNew])
	assert.Equal(t, int64(0), stats.StatusBreakdown[entities.StatusScrap], "absent statuses report zero")

	require.Len(t, stats.TypeBreakdown, len(entities.RequestTypes))
	assert.Equal(t, int64(0), stats.TypeBreakdown[entities.TypePreventive])

	assert.Equal(t, int64(12), stats.TotalRequests)
	assert.Equal(t, int64(2), stats.OverdueRequests)
	assert.True(t, stats.IsManager)
	require.Len(t, stats.TeamStats, 1)
	require.Len(t, stats.RecentRequests, 1)
	assert.Equal(t, "Leaking coolant", stats.RecentRequests[0].Subject)
}

func TestGetStatsUsesCacheOnSecondCall(t *testing.T) {
	calls := 0
	cache := newFakeCache()
	svc := NewDashboardService(statsRepo(&calls), cache, zap.NewNop())
	ctx := actorCtx(types.Actor{ID: 1, IsManager: true})

	_, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.sets)

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "second call served from cache")
	assert.Equal(t, int64(12), stats.TotalRequests)
}

func TestGetStatsCacheKeySeparatesScopes(t *testing.T) {
	calls := 0
	cache := newFakeCache()
	svc := NewDashboardService(statsRepo(&calls), cache, zap.NewNop())

	_, err := svc.GetStats(actorCtx(types.Actor{ID: 1, IsManager: true}))
	require.NoError(t, err)
	_, err = svc.GetStats(actorCtx(types.Actor{ID: 7}))
	require.NoError(t, err)

	assert.Equal(t, 2, calls, "manager and user scopes never share an entry")
	assert.Contains(t, cache.entries, "dashboard:stats:all")
	assert.Contains(t, cache.entries, "dashboard:stats:user:7")
}

func TestGetStatsDiscardsMalformedCacheEntry(t *testing.T) {
	calls := 0
	cache := newFakeCache()
	cache.entries["dashboard:stats:all"] = "{not json"
	svc := NewDashboardService(statsRepo(&calls), cache, zap.NewNop())

	stats, err := svc.GetStats(actorCtx(types.Actor{ID: 1, IsManager: true}))
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "malformed entry rebuilt from the database")
	assert.Equal(t, int64(12), stats.TotalRequests)
}

func TestGetStatsOmitsTeamStatsForPlainUsers(t *testing.T) {
	calls := 0
	repo := statsRepo(&calls)
	repo.teamStats = func(ctx context.Context, scope repositories.RequestScope) ([]types.DashboardTeamStat, error) {
		t.Fatal("team stats must not be queried for plain users")
		return nil, nil
	}
	svc := NewDashboardService(repo, newFakeCache(), zap.NewNop())

	stats, err := svc.GetStats(actorCtx(types.Actor{ID: 7}))
	require.NoError(t, err)
	assert.Empty(t, stats.TeamStats)
	assert.False(t, stats.IsTechnician)
}
