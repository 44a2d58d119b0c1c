package repositories

import (
	"context"
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

var teamMap = map[string]string{
	"id":         "t.id",
	"name":       "t.name",
	"company":    "t.company",
	"created_at": "t.created_at",
}

// TeamListItem carries the per-team counters the list endpoint shows.
type TeamListItem struct {
	entities.MaintenanceTeam
	MemberCount        int64
	ActiveRequestCount int64
}

type TeamRepositoryInterface interface {
	GetTeams(ctx context.Context, filter types.Filter) ([]TeamListItem, uint64, error)
	FindTeam(ctx context.Context, id uint64) (*entities.MaintenanceTeam, error)
	CreateTeam(ctx context.Context, team entities.MaintenanceTeam) (uint64, error)
	UpdateTeam(ctx context.Context, id uint64, team entities.MaintenanceTeam) error
	DeleteTeam(ctx context.Context, id uint64) error
	GetMembers(ctx context.Context, teamID uint64) ([]entities.User, error)
	AddMember(ctx context.Context, teamID, userID uint64) error
	RemoveMember(ctx context.Context, teamID, userID uint64) error
	IsMember(ctx context.Context, teamID, userID uint64) (bool, error)
}

type TeamRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTeamRepository(storage *pgxpool.Pool, logger *zap.Logger) TeamRepositoryInterface {
	return &TeamRepository{storage: storage, logger: logger}
}

func (r *TeamRepository) GetTeams(ctx context.Context, filter types.Filter) ([]TeamListItem, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"t.name": pat},
				sq.ILike{"t.company": pat},
			})
		}
		return b
	}

	countBuilder := applySearch(psql.Select("COUNT(t.id)").From("maintenance_teams AS t"))
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = db.ApplyListParams(countBuilder, countFilter, teamMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []TeamListItem{}, 0, nil
	}

	// Active = any request not yet Repaired, Rejected or Scrap.
	baseBuilder := applySearch(psql.Select(
		"t.id", "t.name", "t.company", "t.created_at", "t.updated_at",
		"(SELECT COUNT(*) FROM team_members tm WHERE tm.team_id = t.id)",
		"(SELECT COUNT(*) FROM maintenance_requests mr WHERE mr.maintenance_team_id = t.id AND mr.status IN ('New', 'In Progress'))",
	).From("maintenance_teams AS t"))

	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("t.name ASC")
	}
	baseBuilder = db.ApplyListParams(baseBuilder, filter, teamMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	teams := make([]TeamListItem, 0, filter.Limit)
	for rows.Next() {
		var item TeamListItem
		err := rows.Scan(
			&item.ID, &item.Name, &item.Company, &item.CreatedAt, &item.UpdatedAt,
			&item.MemberCount, &item.ActiveRequestCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, item)
	}
	return teams, total, nil
}

func (r *TeamRepository) FindTeam(ctx context.Context, id uint64) (*entities.MaintenanceTeam, error) {
	var t entities.MaintenanceTeam
	err := r.storage.QueryRow(ctx,
		`SELECT id, name, company, created_at, updated_at FROM maintenance_teams WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Company, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("team", id)
	}
	if err != nil {
		return nil, fmt.Errorf("scan team: %w", err)
	}
	return &t, nil
}

// mapTeamNameConflict turns the unique-constraint violation on
// maintenance_teams.name into a field-level validation error.
func mapTeamNameConflict(err error, name string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperrors.NewValidationError("name", "team name %q is already taken", name)
	}
	return err
}

func (r *TeamRepository) CreateTeam(ctx context.Context, team entities.MaintenanceTeam) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO maintenance_teams (name, company, created_at) VALUES ($1, $2, NOW()) RETURNING id`,
		team.Name, team.Company,
	).Scan(&newID)
	if err != nil {
		return 0, mapTeamNameConflict(err, team.Name)
	}
	return newID, nil
}

func (r *TeamRepository) UpdateTeam(ctx context.Context, id uint64, team entities.MaintenanceTeam) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE maintenance_teams SET name = $1, company = $2, updated_at = NOW() WHERE id = $3`,
		team.Name, team.Company, id,
	)
	if err != nil {
		return mapTeamNameConflict(err, team.Name)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("team", id)
	}
	return nil
}

func (r *TeamRepository) DeleteTeam(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM maintenance_teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("team", id)
	}
	return nil
}

func (r *TeamRepository) GetMembers(ctx context.Context, teamID uint64) ([]entities.User, error) {
	query := `
		SELECT u.id, u.full_name, u.email, u.password_hash, u.is_manager, u.is_active, u.created_at, u.updated_at
		FROM users u
		JOIN team_members tm ON tm.user_id = u.id
		WHERE tm.team_id = $1
		ORDER BY u.full_name
	`
	rows, err := r.storage.Query(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *user)
	}
	return members, rows.Err()
}

func (r *TeamRepository) AddMember(ctx context.Context, teamID, userID uint64) error {
	_, err := r.storage.Exec(ctx,
		`INSERT INTO team_members (team_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		teamID, userID,
	)
	return err
}

func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID uint64) error {
	result, err := r.storage.Exec(ctx,
		`DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`,
		teamID, userID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("team member", userID)
	}
	return nil
}

func (r *TeamRepository) IsMember(ctx context.Context, teamID, userID uint64) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2)`,
		teamID, userID,
	).Scan(&exists)
	return exists, err
}
