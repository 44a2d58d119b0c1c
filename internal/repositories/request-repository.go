package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/internal/infrastructure/db"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

var requestMap = map[string]string{
	"id":                  "mr.id",
	"subject":             "mr.subject",
	"equipment_id":        "mr.equipment_id",
	"maintenance_team_id": "mr.maintenance_team_id",
	"request_type":        "mr.request_type",
	"status":              "mr.status",
	"priority":            "mr.priority",
	"assigned_to_id":      "mr.assigned_to_id",
	"created_by_id":       "mr.created_by_id",
	"scheduled_date":      "mr.scheduled_date",
	"due_date":            "mr.due_date",
	"created_at":          "mr.created_at",
}

// RequestListItem is a request row plus the joined display names every
// read surface (list, kanban, calendar) renders.
type RequestListItem struct {
	entities.MaintenanceRequest
	EquipmentName string
	TeamName      *string
	AssigneeName  *string
	CreatorName   *string
}

type RequestRepositoryInterface interface {
	GetRequests(ctx context.Context, scope RequestScope, filter types.Filter) ([]RequestListItem, uint64, error)
	FindRequest(ctx context.Context, id uint64) (*RequestListItem, error)
	CreateRequest(ctx context.Context, req entities.MaintenanceRequest) (uint64, error)
	UpdateRequest(ctx context.Context, id uint64, req entities.MaintenanceRequest) error
	DeleteRequest(ctx context.Context, id uint64) error
	TransitionInTx(ctx context.Context, tx pgx.Tx, id uint64, newStatus string, stampCompleted bool) error
	UpdateAssignment(ctx context.Context, id uint64, userID uint64, teamID *uint64) error
	GetScheduledBetween(ctx context.Context, scope RequestScope, from, to time.Time) ([]RequestListItem, error)
}

type RequestRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewRequestRepository(storage *pgxpool.Pool, logger *zap.Logger) RequestRepositoryInterface {
	return &RequestRepository{storage: storage, logger: logger}
}

const requestColumns = `
	mr.id, mr.subject, mr.description, mr.equipment_id, mr.maintenance_team_id,
	mr.request_type, mr.status, mr.priority, mr.assigned_to_id,
	mr.scheduled_date, mr.due_date, mr.duration_centihours, mr.completed_at,
	mr.created_by_id, mr.created_at, mr.updated_at,
	e.name, t.name, assignee.full_name, creator.full_name`

func requestSelect(psql sq.StatementBuilderType) sq.SelectBuilder {
	return psql.Select(requestColumns).
		From("maintenance_requests AS mr").
		Join("equipment e ON mr.equipment_id = e.id").
		LeftJoin("maintenance_teams t ON mr.maintenance_team_id = t.id").
		LeftJoin("users assignee ON mr.assigned_to_id = assignee.id").
		LeftJoin("users creator ON mr.created_by_id = creator.id")
}

func scanRequestItem(row pgx.Row) (*RequestListItem, error) {
	var item RequestListItem
	var teamID, assigneeID, creatorID, duration sql.NullInt64
	var scheduled, due, completed sql.NullTime
	var teamName, assigneeName, creatorName sql.NullString

	err := row.Scan(
		&item.ID, &item.Subject, &item.Description, &item.EquipmentID, &teamID,
		&item.RequestType, &item.Status, &item.Priority, &assigneeID,
		&scheduled, &due, &duration, &completed,
		&creatorID, &item.CreatedAt, &item.UpdatedAt,
		&item.EquipmentName, &teamName, &assigneeName, &creatorName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("maintenance request", 0)
	}
	if err != nil {
		return nil, fmt.Errorf("scan maintenance request: %w", err)
	}

	if teamID.Valid {
		id := uint64(teamID.Int64)
		item.MaintenanceTeamID = &id
	}
	if assigneeID.Valid {
		id := uint64(assigneeID.Int64)
		item.AssignedToID = &id
	}
	if creatorID.Valid {
		id := uint64(creatorID.Int64)
		item.CreatedByID = &id
	}
	if duration.Valid {
		item.DurationCentiHrs = &duration.Int64
	}
	if scheduled.Valid {
		item.ScheduledDate = &scheduled.Time
	}
	if due.Valid {
		item.DueDate = &due.Time
	}
	if completed.Valid {
		item.CompletedAt = &completed.Time
	}
	if teamName.Valid {
		item.TeamName = &teamName.String
	}
	if assigneeName.Valid {
		item.AssigneeName = &assigneeName.String
	}
	if creatorName.Valid {
		item.CreatorName = &creatorName.String
	}
	return &item, nil
}

func (r *RequestRepository) GetRequests(ctx context.Context, scope RequestScope, filter types.Filter) ([]RequestListItem, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	cond := scope.Condition("mr")

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"mr.subject": pat},
				sq.ILike{"e.name": pat},
			})
		}
		return b
	}

	countBuilder := psql.Select("COUNT(mr.id)").
		From("maintenance_requests AS mr").
		Join("equipment e ON mr.equipment_id = e.id")
	countBuilder = applyScope(applySearch(countBuilder), cond)

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = db.ApplyListParams(countBuilder, countFilter, requestMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []RequestListItem{}, 0, nil
	}

	baseBuilder := applyScope(applySearch(requestSelect(psql)), cond)
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("mr.id DESC")
	}
	baseBuilder = db.ApplyListParams(baseBuilder, filter, requestMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	requests := make([]RequestListItem, 0, filter.Limit)
	for rows.Next() {
		item, err := scanRequestItem(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, *item)
	}
	return requests, total, nil
}

func (r *RequestRepository) FindRequest(ctx context.Context, id uint64) (*RequestListItem, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := requestSelect(psql).Where(sq.Eq{"mr.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	item, err := scanRequestItem(r.storage.QueryRow(ctx, query, args...))
	var notFound *apperrors.NotFoundError
	if errors.As(err, &notFound) {
		return nil, apperrors.NewNotFoundError("maintenance request", id)
	}
	return item, err
}

func (r *RequestRepository) CreateRequest(ctx context.Context, req entities.MaintenanceRequest) (uint64, error) {
	query := `
		INSERT INTO maintenance_requests (
			subject, description, equipment_id, maintenance_team_id,
			request_type, status, priority, assigned_to_id,
			scheduled_date, due_date, created_by_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		RETURNING id
	`
	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		req.Subject, req.Description, req.EquipmentID, req.MaintenanceTeamID,
		req.RequestType, req.Status, req.Priority, req.AssignedToID,
		req.ScheduledDate, req.DueDate, req.CreatedByID,
	).Scan(&newID)
	return newID, err
}

func (r *RequestRepository) UpdateRequest(ctx context.Context, id uint64, req entities.MaintenanceRequest) error {
	query := `
		UPDATE maintenance_requests
		SET subject = $1, description = $2, priority = $3,
		    maintenance_team_id = $4, assigned_to_id = $5,
		    scheduled_date = $6, due_date = $7, duration_centihours = $8,
		    updated_at = NOW()
		WHERE id = $9
	`
	result, err := r.storage.Exec(ctx, query,
		req.Subject, req.Description, req.Priority,
		req.MaintenanceTeamID, req.AssignedToID,
		req.ScheduledDate, req.DueDate, req.DurationCentiHrs, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("maintenance request", id)
	}
	return nil
}

func (r *RequestRepository) DeleteRequest(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM maintenance_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("maintenance request", id)
	}
	return nil
}

// TransitionInTx moves the request to newStatus. When stampCompleted is set
// the COALESCE keeps the first completion timestamp: re-entering Repaired
// never overwrites it, even under concurrent transitions.
func (r *RequestRepository) TransitionInTx(ctx context.Context, tx pgx.Tx, id uint64, newStatus string, stampCompleted bool) error {
	var result pgconn.CommandTag
	var err error
	if stampCompleted {
		result, err = tx.Exec(ctx, `
			UPDATE maintenance_requests
			SET status = $1, completed_at = COALESCE(completed_at, NOW()), updated_at = NOW()
			WHERE id = $2
		`, newStatus, id)
	} else {
		result, err = tx.Exec(ctx, `
			UPDATE maintenance_requests
			SET status = $1, updated_at = NOW()
			WHERE id = $2
		`, newStatus, id)
	}
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("maintenance request", id)
	}
	return nil
}

func (r *RequestRepository) UpdateAssignment(ctx context.Context, id uint64, userID uint64, teamID *uint64) error {
	query := `
		UPDATE maintenance_requests
		SET assigned_to_id = $1,
		    maintenance_team_id = COALESCE($2, maintenance_team_id),
		    updated_at = NOW()
		WHERE id = $3
	`
	result, err := r.storage.Exec(ctx, query, userID, teamID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("maintenance request", id)
	}
	return nil
}

// scheduledBetweenQuery builds the calendar feed query: preventive requests
// only, scheduled inside the window, scoped to the actor. Corrective requests
// never appear on the calendar even when they carry a scheduled date.
func scheduledBetweenQuery(scope RequestScope, from, to time.Time) (string, []interface{}, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	b := requestSelect(psql).
		Where(sq.Eq{"mr.request_type": entities.TypePreventive}).
		Where(sq.GtOrEq{"mr.scheduled_date": from}).
		Where(sq.LtOrEq{"mr.scheduled_date": to}).
		OrderBy("mr.scheduled_date ASC")
	b = applyScope(b, scope.Condition("mr"))
	return b.ToSql()
}

func (r *RequestRepository) GetScheduledBetween(ctx context.Context, scope RequestScope, from, to time.Time) ([]RequestListItem, error) {
	query, args, err := scheduledBetweenQuery(scope, from, to)
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]RequestListItem, 0)
	for rows.Next() {
		item, err := scanRequestItem(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *item)
	}
	return requests, rows.Err()
}
