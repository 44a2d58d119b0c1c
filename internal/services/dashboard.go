package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"
)

// Dashboard aggregates are cheap but hit several tables; a short cache keeps
// frequent polling off the database without letting the numbers go stale.
const dashboardCacheTTL = 30 * time.Second

type DashboardServiceInterface interface {
	GetStats(ctx context.Context) (*types.DashboardStats, error)
}

type DashboardService struct {
	dashboardRepo repositories.DashboardRepositoryInterface
	cache         repositories.CacheRepositoryInterface
	logger        *zap.Logger
}

func NewDashboardService(
	dashboardRepo repositories.DashboardRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		cache:         cache,
		logger:        logger,
	}
}

// cacheKey must separate visibility scopes: a manager and a technician see
// different counts, so they never share an entry.
func dashboardCacheKey(actor types.Actor) string {
	if actor.IsManager {
		return "dashboard:stats:all"
	}
	return fmt.Sprintf("dashboard:stats:user:%d", actor.ID)
}

func (s *DashboardService) GetStats(ctx context.Context) (*types.DashboardStats, error) {
	actor, err := utils.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	key := dashboardCacheKey(actor)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var stats types.DashboardStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
		s.logger.Warn("discarding malformed dashboard cache entry", zap.String("key", key))
	} else if !errors.Is(err, repositories.ErrCacheMiss) {
		s.logger.Warn("dashboard cache read failed", zap.Error(err))
	}

	stats, err := s.buildStats(ctx, actor)
	if err != nil {
		return nil, err
	}

	if serialized, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, key, serialized, dashboardCacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}

func (s *DashboardService) buildStats(ctx context.Context, actor types.Actor) (*types.DashboardStats, error) {
	scope := repositories.ScopeForActor(actor)

	total, open, overdue, completedToday, err := s.dashboardRepo.GetRequestCounts(ctx, scope)
	if err != nil {
		return nil, err
	}

	statusCounts, err := s.dashboardRepo.GetStatusBreakdown(ctx, scope)
	if err != nil {
		return nil, err
	}
	typeCounts, err := s.dashboardRepo.GetTypeBreakdown(ctx, scope)
	if err != nil {
		return nil, err
	}

	totalEquipment, scrapped, err := s.dashboardRepo.GetEquipmentCounts(ctx)
	if err != nil {
		return nil, err
	}

	byDepartment, err := s.dashboardRepo.GetEquipmentByDepartment(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.dashboardRepo.GetRecentRequests(ctx, scope, 10)
	if err != nil {
		return nil, err
	}
	recentCompleted, err := s.dashboardRepo.GetRecentCompleted(ctx, scope, 5)
	if err != nil {
		return nil, err
	}

	stats := &types.DashboardStats{
		TotalEquipment:        totalEquipment,
		ScrappedEquipment:     scrapped,
		TotalRequests:         total,
		OpenRequests:          open,
		OverdueRequests:       overdue,
		CompletedToday:        completedToday,
		StatusBreakdown:       make(map[string]int64, len(entities.Statuses)),
		TypeBreakdown:         make(map[string]int64, len(entities.RequestTypes)),
		EquipmentByDepartment: byDepartment,
		RecentRequests:        recent,
		RecentCompleted:       recentCompleted,
		IsManager:             actor.IsManager,
		IsTechnician:          actor.IsTechnician(),
	}

	// Every enumerated key is present even at zero, so consumers never
	// branch on missing map entries.
	for _, status := range entities.Statuses {
		stats.StatusBreakdown[status] = statusCounts[status]
	}
	for _, requestType := range entities.RequestTypes {
		stats.TypeBreakdown[requestType] = typeCounts[requestType]
	}

	if actor.IsManager || actor.IsTechnician() {
		teamStats, err := s.dashboardRepo.GetTeamStats(ctx, scope)
		if err != nil {
			return nil, err
		}
		stats.TeamStats = teamStats
	}
	return stats, nil
}
