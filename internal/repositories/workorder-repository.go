package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

// ErrDuplicateWorkOrderNumber surfaces the unique-constraint violation on
// work_order_number so the service can retry with a fresh number.
var ErrDuplicateWorkOrderNumber = errors.New("work order number already taken")

var workOrderMap = map[string]string{
	"id":                     "wo.id",
	"work_order_number":      "wo.work_order_number",
	"equipment_id":           "wo.equipment_id",
	"maintenance_request_id": "wo.maintenance_request_id",
	"date":                   "wo.date",
	"status":                 "wo.status",
	"priority":               "wo.priority",
	"assigned_to_id":         "wo.assigned_to_id",
	"created_at":             "wo.created_at",
}

// WorkOrderListItem joins the names and the session cost sum the list shows.
type WorkOrderListItem struct {
	entities.WorkOrder
	EquipmentName  string
	AssigneeName   *string
	TotalCostCents int64
}

type WorkOrderRepositoryInterface interface {
	GetWorkOrders(ctx context.Context, filter types.Filter) ([]WorkOrderListItem, uint64, error)
	FindWorkOrder(ctx context.Context, id uint64) (*WorkOrderListItem, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, wo entities.WorkOrder) (uint64, error)
	UpdateWorkOrder(ctx context.Context, id uint64, wo entities.WorkOrder) error
	DeleteWorkOrder(ctx context.Context, id uint64) error
	ListNumbersInTx(ctx context.Context, tx pgx.Tx) ([]string, error)
	CountInTx(ctx context.Context, tx pgx.Tx) (uint64, error)
}

type WorkOrderRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewWorkOrderRepository(storage *pgxpool.Pool, logger *zap.Logger) WorkOrderRepositoryInterface {
	return &WorkOrderRepository{storage: storage, logger: logger}
}

const workOrderColumns = `
	wo.id, wo.work_order_number, wo.equipment_id, wo.maintenance_request_id,
	wo.date, wo.time, wo.status, wo.priority, wo.assigned_to_id, wo.description,
	wo.created_at, wo.updated_at,
	e.name, u.full_name,
	COALESCE((SELECT SUM(s.total_cost_cents) FROM maintenance_sessions s WHERE s.work_order_id = wo.id), 0)`

func workOrderSelect(psql sq.StatementBuilderType) sq.SelectBuilder {
	return psql.Select(workOrderColumns).
		From("work_orders AS wo").
		Join("equipment e ON wo.equipment_id = e.id").
		LeftJoin("users u ON wo.assigned_to_id = u.id")
}

func scanWorkOrderItem(row pgx.Row) (*WorkOrderListItem, error) {
	var item WorkOrderListItem
	var requestID, assigneeID sql.NullInt64
	var woTime, assigneeName sql.NullString

	err := row.Scan(
		&item.ID, &item.WorkOrderNumber, &item.EquipmentID, &requestID,
		&item.Date, &woTime, &item.Status, &item.Priority, &assigneeID, &item.Description,
		&item.CreatedAt, &item.UpdatedAt,
		&item.EquipmentName, &assigneeName,
		&item.TotalCostCents,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("work order", 0)
	}
	if err != nil {
		return nil, fmt.Errorf("scan work order: %w", err)
	}

	if requestID.Valid {
		id := uint64(requestID.Int64)
		item.MaintenanceRequestID = &id
	}
	if assigneeID.Valid {
		id := uint64(assigneeID.Int64)
		item.AssignedToID = &id
	}
	if woTime.Valid {
		item.Time = woTime.String
	}
	if assigneeName.Valid {
		item.AssigneeName = &assigneeName.String
	}
	return &item, nil
}

func (r *WorkOrderRepository) GetWorkOrders(ctx context.Context, filter types.Filter) ([]WorkOrderListItem, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"wo.work_order_number": pat},
				sq.ILike{"e.name": pat},
			})
		}
		return b
	}

	countBuilder := psql.Select("COUNT(wo.id)").
		From("work_orders AS wo").
		Join("equipment e ON wo.equipment_id = e.id")
	countBuilder = applySearch(countBuilder)

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = db.ApplyListParams(countBuilder, countFilter, workOrderMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []WorkOrderListItem{}, 0, nil
	}

	baseBuilder := applySearch(workOrderSelect(psql))
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("wo.id DESC")
	}
	baseBuilder = db.ApplyListParams(baseBuilder, filter, workOrderMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]WorkOrderListItem, 0, filter.Limit)
	for rows.Next() {
		item, err := scanWorkOrderItem(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *item)
	}
	return orders, total, nil
}

func (r *WorkOrderRepository) FindWorkOrder(ctx context.Context, id uint64) (*WorkOrderListItem, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := workOrderSelect(psql).Where(sq.Eq{"wo.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	item, err := scanWorkOrderItem(r.storage.QueryRow(ctx, query, args...))
	var notFound *apperrors.NotFoundError
	if errors.As(err, &notFound) {
		return nil, apperrors.NewNotFoundError("work order", id)
	}
	return item, err
}

// CreateInTx inserts the work order with its pre-allocated number. A unique
// violation on the number column maps to ErrDuplicateWorkOrderNumber so the
// caller can re-allocate and retry inside a fresh transaction.
func (r *WorkOrderRepository) CreateInTx(ctx context.Context, tx pgx.Tx, wo entities.WorkOrder) (uint64, error) {
	query := `
		INSERT INTO work_orders (
			work_order_number, equipment_id, maintenance_request_id,
			date, time, status, priority, assigned_to_id, description, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id
	`
	var newID uint64
	err := tx.QueryRow(ctx, query,
		wo.WorkOrderNumber, wo.EquipmentID, wo.MaintenanceRequestID,
		wo.Date, wo.Time, wo.Status, wo.Priority, wo.AssignedToID, wo.Description,
	).Scan(&newID)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return 0, ErrDuplicateWorkOrderNumber
	}
	return newID, err
}

func (r *WorkOrderRepository) UpdateWorkOrder(ctx context.Context, id uint64, wo entities.WorkOrder) error {
	query := `
		UPDATE work_orders
		SET date = $1, time = $2, status = $3, priority = $4,
		    assigned_to_id = $5, description = $6, updated_at = NOW()
		WHERE id = $7
	`
	result, err := r.storage.Exec(ctx, query,
		wo.Date, wo.Time, wo.Status, wo.Priority,
		wo.AssignedToID, wo.Description, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("work order", id)
	}
	return nil
}

func (r *WorkOrderRepository) DeleteWorkOrder(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM work_orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("work order", id)
	}
	return nil
}

func (r *WorkOrderRepository) ListNumbersInTx(ctx context.Context, tx pgx.Tx) ([]string, error) {
	rows, err := tx.Query(ctx, `SELECT work_order_number FROM work_orders`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	numbers := make([]string, 0)
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

func (r *WorkOrderRepository) CountInTx(ctx context.Context, tx pgx.Tx) (uint64, error) {
	var total uint64
	err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM work_orders`).Scan(&total)
	return total, err
}
