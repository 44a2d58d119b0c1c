package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
)

type ActivityRepositoryInterface interface {
	GetActivitiesForWorkOrder(ctx context.Context, workOrderID uint64) ([]entities.Activity, error)
	FindActivity(ctx context.Context, id uint64) (*entities.Activity, error)
	CreateActivity(ctx context.Context, a entities.Activity) (uint64, error)
	UpdateActivity(ctx context.Context, id uint64, a entities.Activity) error
	DeleteActivity(ctx context.Context, id uint64) error
}

type ActivityRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewActivityRepository(storage *pgxpool.Pool, logger *zap.Logger) ActivityRepositoryInterface {
	return &ActivityRepository{storage: storage, logger: logger}
}

const activityColumns = `
	id, work_order_id, activity_type, description, start_time, end_time,
	cost_cents, parts_used, notes, created_at, updated_at`

func scanActivity(row pgx.Row) (*entities.Activity, error) {
	var a entities.Activity
	var endTime sql.NullTime

	err := row.Scan(
		&a.ID, &a.WorkOrderID, &a.ActivityType, &a.Description, &a.StartTime, &endTime,
		&a.CostCents, &a.PartsUsed, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("activity", 0)
	}
	if err != nil {
		return nil, fmt.Errorf("scan activity: %w", err)
	}

	if endTime.Valid {
		a.EndTime = &endTime.Time
	}
	return &a, nil
}

func (r *ActivityRepository) GetActivitiesForWorkOrder(ctx context.Context, workOrderID uint64) ([]entities.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM maintenance_activities WHERE work_order_id = $1 ORDER BY start_time`
	rows, err := r.storage.Query(ctx, query, workOrderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]entities.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

func (r *ActivityRepository) FindActivity(ctx context.Context, id uint64) (*entities.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM maintenance_activities WHERE id = $1`
	a, err := scanActivity(r.storage.QueryRow(ctx, query, id))
	var notFound *apperrors.NotFoundError
	if errors.As(err, &notFound) {
		return nil, apperrors.NewNotFoundError("activity", id)
	}
	return a, err
}

func (r *ActivityRepository) CreateActivity(ctx context.Context, a entities.Activity) (uint64, error) {
	query := `
		INSERT INTO maintenance_activities (
			work_order_id, activity_type, description, start_time, end_time,
			cost_cents, parts_used, notes, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id
	`
	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		a.WorkOrderID, a.ActivityType, a.Description, a.StartTime, a.EndTime,
		a.CostCents, a.PartsUsed, a.Notes,
	).Scan(&newID)
	return newID, err
}

func (r *ActivityRepository) UpdateActivity(ctx context.Context, id uint64, a entities.Activity) error {
	query := `
		UPDATE maintenance_activities
		SET activity_type = $1, description = $2, start_time = $3, end_time = $4,
		    cost_cents = $5, parts_used = $6, notes = $7, updated_at = NOW()
		WHERE id = $8
	`
	result, err := r.storage.Exec(ctx, query,
		a.ActivityType, a.Description, a.StartTime, a.EndTime,
		a.CostCents, a.PartsUsed, a.Notes, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("activity", id)
	}
	return nil
}

func (r *ActivityRepository) DeleteActivity(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM maintenance_activities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("activity", id)
	}
	return nil
}
