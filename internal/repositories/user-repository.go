package repositories

import (
	"context"
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

var userMap = map[string]string{
	"id":         "u.id",
	"full_name":  "u.full_name",
	"email":      "u.email",
	"is_manager": "u.is_manager",
	"is_active":  "u.is_active",
	"created_at": "u.created_at",
}

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
	CreateUser(ctx context.Context, user entities.User) (uint64, error)
	UpdateUser(ctx context.Context, id uint64, user entities.User) error
	DeleteUser(ctx context.Context, id uint64) error
	GetTeamsForUser(ctx context.Context, userID uint64) ([]entities.MaintenanceTeam, error)
	GetTeamIDsForUser(ctx context.Context, userID uint64) ([]uint64, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(
		&u.ID, &u.FullName, &u.Email, &u.PasswordHash,
		&u.IsManager, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("user", 0)
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

const userColumns = "u.id, u.full_name, u.email, u.password_hash, u.is_manager, u.is_active, u.created_at, u.updated_at"

func (r *UserRepository) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"u.full_name": pat},
				sq.ILike{"u.email": pat},
			})
		}
		return b
	}

	countBuilder := applySearch(psql.Select("COUNT(u.id)").From("users AS u"))
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = db.ApplyListParams(countBuilder, countFilter, userMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.User{}, 0, nil
	}

	baseBuilder := applySearch(psql.Select(userColumns).From("users AS u"))
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("u.id DESC")
	}
	baseBuilder = db.ApplyListParams(baseBuilder, filter, userMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]entities.User, 0, filter.Limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}
	return users, total, nil
}

func (r *UserRepository) findOne(ctx context.Context, where sq.Eq) (*entities.User, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(userColumns).From("users u").Where(where).ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.storage.QueryRow(ctx, query, args...))
}

func (r *UserRepository) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	user, err := r.findOne(ctx, sq.Eq{"u.id": id})
	var notFound *apperrors.NotFoundError
	if errors.As(err, &notFound) {
		return nil, apperrors.NewNotFoundError("user", id)
	}
	return user, err
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, sq.Eq{"u.email": email})
}

func (r *UserRepository) CreateUser(ctx context.Context, user entities.User) (uint64, error) {
	query := `
		INSERT INTO users (full_name, email, password_hash, is_manager, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id
	`
	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		user.FullName, user.Email, user.PasswordHash, user.IsManager, user.IsActive,
	).Scan(&newID)
	return newID, err
}

func (r *UserRepository) UpdateUser(ctx context.Context, id uint64, user entities.User) error {
	query := `
		UPDATE users
		SET full_name = $1, email = $2, password_hash = $3, is_manager = $4,
		    is_active = $5, updated_at = NOW()
		WHERE id = $6
	`
	result, err := r.storage.Exec(ctx, query,
		user.FullName, user.Email, user.PasswordHash, user.IsManager, user.IsActive, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("user", id)
	}
	return nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("user", id)
	}
	return nil
}

func (r *UserRepository) GetTeamsForUser(ctx context.Context, userID uint64) ([]entities.MaintenanceTeam, error) {
	query := `
		SELECT t.id, t.name, t.company, t.created_at, t.updated_at
		FROM maintenance_teams t
		JOIN team_members tm ON tm.team_id = t.id
		WHERE tm.user_id = $1
		ORDER BY t.name
	`
	rows, err := r.storage.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]entities.MaintenanceTeam, 0)
	for rows.Next() {
		var t entities.MaintenanceTeam
		if err := rows.Scan(&t.ID, &t.Name, &t.Company, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan team for user: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *UserRepository) GetTeamIDsForUser(ctx context.Context, userID uint64) ([]uint64, error) {
	rows, err := r.storage.Query(ctx, `SELECT team_id FROM team_members WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
