package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/internal/infrastructure/db"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

var equipmentMap = map[string]string{
	"id":                  "e.id",
	"name":                "e.name",
	"serial_number":       "e.serial_number",
	"department":          "e.department",
	"location":            "e.location",
	"category_id":         "e.category_id",
	"condition":           "e.condition",
	"maintenance_team_id": "e.maintenance_team_id",
	"is_scrapped":         "e.is_scrapped",
	"created_at":          "e.created_at",
}

// EquipmentListItem joins the display names and the open-request counter the
// list endpoint needs in one round trip.
type EquipmentListItem struct {
	entities.Equipment
	CategoryName       *string
	TeamName           *string
	EmployeeName       *string
	ActiveRequestCount int64
}

type EquipmentRepositoryInterface interface {
	GetEquipment(ctx context.Context, filter types.Filter) ([]EquipmentListItem, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*EquipmentListItem, error)
	CreateEquipment(ctx context.Context, eq entities.Equipment) (uint64, error)
	UpdateEquipment(ctx context.Context, id uint64, eq entities.Equipment) error
	DeleteEquipment(ctx context.Context, id uint64) error
	MarkScrappedInTx(ctx context.Context, tx pgx.Tx, id uint64) error
	GetCategories(ctx context.Context) ([]entities.EquipmentCategory, error)
	CreateCategory(ctx context.Context, name string) (uint64, error)
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

const equipmentColumns = `
	e.id, e.name, e.serial_number, e.department, e.location, e.category_id,
	e.company, e.used_for, e.acquisition_date, e.condition, e.description,
	e.maintenance_team_id, e.assigned_employee_id, e.is_scrapped,
	e.created_at, e.updated_at,
	c.name, t.name, u.full_name,
	(SELECT COUNT(*) FROM maintenance_requests mr WHERE mr.equipment_id = e.id AND mr.status IN ('New', 'In Progress'))`

func scanEquipmentItem(row pgx.Row) (*EquipmentListItem, error) {
	var item EquipmentListItem
	var serial, categoryName, teamName, employeeName sql.NullString
	var acquisition sql.NullTime
	var categoryID, teamID, employeeID sql.NullInt64

	err := row.Scan(
		&item.ID, &item.Name, &serial, &item.Department, &item.Location, &categoryID,
		&item.Company, &item.UsedFor, &acquisition, &item.Condition, &item.Description,
		&teamID, &employeeID, &item.IsScrapped,
		&item.CreatedAt, &item.UpdatedAt,
		&categoryName, &teamName, &employeeName,
		&item.ActiveRequestCount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("equipment", 0)
	}
	if err != nil {
		return nil, fmt.Errorf("scan equipment: %w", err)
	}

	if serial.Valid {
		item.SerialNumber = &serial.String
	}
	if acquisition.Valid {
		item.AcquisitionDate = &acquisition.Time
	}
	if categoryID.Valid {
		id := uint64(categoryID.Int64)
		item.CategoryID = &id
	}
	if teamID.Valid {
		id := uint64(teamID.Int64)
		item.MaintenanceTeamID = &id
	}
	if employeeID.Valid {
		id := uint64(employeeID.Int64)
		item.AssignedEmployeeID = &id
	}
	if categoryName.Valid {
		item.CategoryName = &categoryName.String
	}
	if teamName.Valid {
		item.TeamName = &teamName.String
	}
	if employeeName.Valid {
		item.EmployeeName = &employeeName.String
	}
	return &item, nil
}

func equipmentSelect(psql sq.StatementBuilderType) sq.SelectBuilder {
	return psql.Select(equipmentColumns).
		From("equipment AS e").
		LeftJoin("equipment_categories c ON e.category_id = c.id").
		LeftJoin("maintenance_teams t ON e.maintenance_team_id = t.id").
		LeftJoin("users u ON e.assigned_employee_id = u.id")
}

func (r *EquipmentRepository) GetEquipment(ctx context.Context, filter types.Filter) ([]EquipmentListItem, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"e.name": pat},
				sq.ILike{"e.serial_number": pat},
				sq.ILike{"e.location": pat},
			})
		}
		return b
	}

	countBuilder := applySearch(psql.Select("COUNT(e.id)").From("equipment AS e"))
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = db.ApplyListParams(countBuilder, countFilter, equipmentMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []EquipmentListItem{}, 0, nil
	}

	baseBuilder := applySearch(equipmentSelect(psql))
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("e.id DESC")
	}
	baseBuilder = db.ApplyListParams(baseBuilder, filter, equipmentMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]EquipmentListItem, 0, filter.Limit)
	for rows.Next() {
		item, err := scanEquipmentItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *item)
	}
	return items, total, nil
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*EquipmentListItem, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := equipmentSelect(psql).Where(sq.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	item, err := scanEquipmentItem(r.storage.QueryRow(ctx, query, args...))
	var notFound *apperrors.NotFoundError
	if errors.As(err, &notFound) {
		return nil, apperrors.NewNotFoundError("equipment", id)
	}
	return item, err
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, eq entities.Equipment) (uint64, error) {
	query := `
		INSERT INTO equipment (
			name, serial_number, department, location, category_id, company,
			used_for, acquisition_date, condition, description,
			maintenance_team_id, assigned_employee_id, is_scrapped, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, false, NOW())
		RETURNING id
	`
	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		eq.Name, eq.SerialNumber, eq.Department, eq.Location, eq.CategoryID, eq.Company,
		eq.UsedFor, eq.AcquisitionDate, eq.Condition, eq.Description,
		eq.MaintenanceTeamID, eq.AssignedEmployeeID,
	).Scan(&newID)
	return newID, err
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, id uint64, eq entities.Equipment) error {
	query := `
		UPDATE equipment
		SET name = $1, serial_number = $2, department = $3, location = $4,
		    category_id = $5, company = $6, used_for = $7, acquisition_date = $8,
		    condition = $9, description = $10, maintenance_team_id = $11,
		    assigned_employee_id = $12, updated_at = NOW()
		WHERE id = $13
	`
	result, err := r.storage.Exec(ctx, query,
		eq.Name, eq.SerialNumber, eq.Department, eq.Location,
		eq.CategoryID, eq.Company, eq.UsedFor, eq.AcquisitionDate,
		eq.Condition, eq.Description, eq.MaintenanceTeamID,
		eq.AssignedEmployeeID, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("equipment", id)
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("equipment", id)
	}
	return nil
}

// MarkScrappedInTx flips is_scrapped inside the same transaction that moves
// the owning request to Scrap. Idempotent: a second call is a no-op, not an
// error.
func (r *EquipmentRepository) MarkScrappedInTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	_, err := tx.Exec(ctx, `UPDATE equipment SET is_scrapped = true, updated_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *EquipmentRepository) GetCategories(ctx context.Context) ([]entities.EquipmentCategory, error) {
	rows, err := r.storage.Query(ctx, `SELECT id, name FROM equipment_categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]entities.EquipmentCategory, 0)
	for rows.Next() {
		var c entities.EquipmentCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *EquipmentRepository) CreateCategory(ctx context.Context, name string) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO equipment_categories (name) VALUES ($1) RETURNING id`, name,
	).Scan(&newID)
	return newID, err
}
