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

type SessionRepositoryInterface interface {
	GetSessionsForWorkOrder(ctx context.Context, workOrderID uint64) ([]entities.MaintenanceSession, error)
	FindSession(ctx context.Context, id uint64) (*entities.MaintenanceSession, error)
	CreateSession(ctx context.Context, s entities.MaintenanceSession) (uint64, error)
	UpdateSession(ctx context.Context, id uint64, s entities.MaintenanceSession) error
	DeleteSession(ctx context.Context, id uint64) error
}

type SessionRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewSessionRepository(storage *pgxpool.Pool, logger *zap.Logger) SessionRepositoryInterface {
	return &SessionRepository{storage: storage, logger: logger}
}

const sessionColumns = `
	id, work_order_id, date, start_time, end_time,
	cost_per_hour_cents, duration_centihours, total_cost_cents, notes,
	created_at, updated_at`

func scanSession(row pgx.Row) (*entities.MaintenanceSession, error) {
	var s entities.MaintenanceSession
	var endTime sql.NullString
	var duration sql.NullInt64

	err := row.Scan(
		&s.ID, &s.WorkOrderID, &s.Date, &s.StartTime, &endTime,
		&s.CostPerHourCents, &duration, &s.TotalCostCents, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("maintenance session", 0)
	}
	if err != nil {
		return nil, fmt.Errorf("scan maintenance session: %w", err)
	}

	if endTime.Valid {
		s.EndTime = &endTime.String
	}
	if duration.Valid {
		s.DurationCentiHrs = &duration.Int64
	}
	return &s, nil
}

func (r *SessionRepository) GetSessionsForWorkOrder(ctx context.Context, workOrderID uint64) ([]entities.MaintenanceSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM maintenance_sessions WHERE work_order_id = $1 ORDER BY date, start_time`
	rows, err := r.storage.Query(ctx, query, workOrderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]entities.MaintenanceSession, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

func (r *SessionRepository) FindSession(ctx context.Context, id uint64) (*entities.MaintenanceSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM maintenance_sessions WHERE id = $1`
	s, err := scanSession(r.storage.QueryRow(ctx, query, id))
	var notFound *apperrors.NotFoundError
	if errors.As(err, &notFound) {
		return nil, apperrors.NewNotFoundError("maintenance session", id)
	}
	return s, err
}

func (r *SessionRepository) CreateSession(ctx context.Context, s entities.MaintenanceSession) (uint64, error) {
	query := `
		INSERT INTO maintenance_sessions (
			work_order_id, date, start_time, end_time,
			cost_per_hour_cents, duration_centihours, total_cost_cents, notes, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id
	`
	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		s.WorkOrderID, s.Date, s.StartTime, s.EndTime,
		s.CostPerHourCents, s.DurationCentiHrs, s.TotalCostCents, s.Notes,
	).Scan(&newID)
	return newID, err
}

func (r *SessionRepository) UpdateSession(ctx context.Context, id uint64, s entities.MaintenanceSession) error {
	query := `
		UPDATE maintenance_sessions
		SET date = $1, start_time = $2, end_time = $3,
		    cost_per_hour_cents = $4, duration_centihours = $5,
		    total_cost_cents = $6, notes = $7, updated_at = NOW()
		WHERE id = $8
	`
	result, err := r.storage.Exec(ctx, query,
		s.Date, s.StartTime, s.EndTime,
		s.CostPerHourCents, s.DurationCentiHrs,
		s.TotalCostCents, s.Notes, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("maintenance session", id)
	}
	return nil
}

func (r *SessionRepository) DeleteSession(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM maintenance_sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("maintenance session", id)
	}
	return nil
}
