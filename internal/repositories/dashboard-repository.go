package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gearguard/pkg/types"
)

type DashboardRepositoryInterface interface {
	GetRequestCounts(ctx context.Context, scope RequestScope) (total, open, overdue, completedToday int64, err error)
	GetStatusBreakdown(ctx context.Context, scope RequestScope) (map[string]int64, error)
	GetTypeBreakdown(ctx context.Context, scope RequestScope) (map[string]int64, error)
	GetEquipmentCounts(ctx context.Context) (total, scrapped int64, err error)
	GetTeamStats(ctx context.Context, scope RequestScope) ([]types.DashboardTeamStat, error)
	GetEquipmentByDepartment(ctx context.Context) ([]types.DashboardDepartmentStat, error)
	GetRecentRequests(ctx context.Context, scope RequestScope, limit uint64) ([]types.DashboardRecentRequest, error)
	GetRecentCompleted(ctx context.Context, scope RequestScope, limit uint64) ([]types.DashboardRecentRequest, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

// GetRequestCounts gathers the headline counters in one query. The overdue
// filter mirrors MaintenanceRequest.IsOverdue: preventive, scheduled in the
// past, not yet Repaired.
func (r *DashboardRepository) GetRequestCounts(ctx context.Context, scope RequestScope) (int64, int64, int64, int64, error) {
	b := sq.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE mr.status IN ('New', 'In Progress'))",
		"COUNT(*) FILTER (WHERE mr.request_type = 'Preventive' AND mr.scheduled_date < NOW() AND mr.status != 'Repaired')",
		"COUNT(*) FILTER (WHERE mr.completed_at >= date_trunc('day', NOW()))",
	).From("maintenance_requests mr")
	b = applyScope(b, scope.Condition("mr"))

	query, args, err := b.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return 0, 0, 0, 0, err
	}

	var total, open, overdue, completedToday int64
	err = r.storage.QueryRow(ctx, query, args...).Scan(&total, &open, &overdue, &completedToday)
	return total, open, overdue, completedToday, err
}

func (r *DashboardRepository) countByColumn(ctx context.Context, scope RequestScope, column string) (map[string]int64, error) {
	b := sq.Select(column, "COUNT(*)").
		From("maintenance_requests mr").
		GroupBy(column)
	b = applyScope(b, scope.Condition("mr"))

	query, args, err := b.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}
	return counts, rows.Err()
}

func (r *DashboardRepository) GetStatusBreakdown(ctx context.Context, scope RequestScope) (map[string]int64, error) {
	return r.countByColumn(ctx, scope, "mr.status")
}

func (r *DashboardRepository) GetTypeBreakdown(ctx context.Context, scope RequestScope) (map[string]int64, error) {
	return r.countByColumn(ctx, scope, "mr.request_type")
}

func (r *DashboardRepository) GetEquipmentCounts(ctx context.Context) (int64, int64, error) {
	var total, scrapped int64
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_scrapped) FROM equipment`,
	).Scan(&total, &scrapped)
	return total, scrapped, err
}

func (r *DashboardRepository) GetTeamStats(ctx context.Context, scope RequestScope) ([]types.DashboardTeamStat, error) {
	b := sq.Select(
		"t.id AS team_id",
		"t.name AS name",
		"COUNT(mr.id) AS request_count",
		"COUNT(mr.id) FILTER (WHERE mr.status IN ('New', 'In Progress')) AS active_request_count",
	).
		From("maintenance_teams t").
		LeftJoin("maintenance_requests mr ON mr.maintenance_team_id = t.id").
		GroupBy("t.id", "t.name").
		OrderBy("active_request_count DESC", "t.name").
		Limit(5)

	if !scope.All && len(scope.TeamIDs) > 0 {
		b = b.Where(sq.Eq{"t.id": scope.TeamIDs})
	}

	query, args, err := b.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return pgx.CollectRows(rows, pgx.RowToStructByName[types.DashboardTeamStat])
}

func (r *DashboardRepository) GetEquipmentByDepartment(ctx context.Context) ([]types.DashboardDepartmentStat, error) {
	query := `
		SELECT department, COUNT(*) AS count
		FROM equipment
		WHERE NOT is_scrapped
		GROUP BY department
		ORDER BY count DESC
		LIMIT 5
	`
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return pgx.CollectRows(rows, pgx.RowToStructByName[types.DashboardDepartmentStat])
}

func (r *DashboardRepository) recentRequests(ctx context.Context, scope RequestScope, limit uint64, onlyCompleted bool) ([]types.DashboardRecentRequest, error) {
	b := sq.Select(
		"mr.id AS id",
		"mr.subject AS subject",
		"e.name AS equipment_name",
		"mr.status AS status",
		"mr.priority AS priority",
		"mr.created_at AS created_at",
		"mr.completed_at AS completed_at",
	).
		From("maintenance_requests mr").
		Join("equipment e ON e.id = mr.equipment_id").
		Limit(limit)
	b = applyScope(b, scope.Condition("mr"))

	if onlyCompleted {
		b = b.Where("mr.completed_at IS NOT NULL").OrderBy("mr.completed_at DESC")
	} else {
		b = b.OrderBy("mr.created_at DESC")
	}

	query, args, err := b.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return pgx.CollectRows(rows, pgx.RowToStructByName[types.DashboardRecentRequest])
}

func (r *DashboardRepository) GetRecentRequests(ctx context.Context, scope RequestScope, limit uint64) ([]types.DashboardRecentRequest, error) {
	return r.recentRequests(ctx, scope, limit, false)
}

func (r *DashboardRepository) GetRecentCompleted(ctx context.Context, scope RequestScope, limit uint64) ([]types.DashboardRecentRequest, error) {
	return r.recentRequests(ctx, scope, limit, true)
}
