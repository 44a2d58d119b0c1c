package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedCategories(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - seeding 'equipment_categories'...")

	for _, name := range categoriesData {
		if _, err := db.Exec(ctx,
			"INSERT INTO equipment_categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING",
			name,
		); err != nil {
			return err
		}
	}
	return nil
}

func seedEquipment(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - seeding 'equipment'...")

	categoryIDs, err := mapIDsByName(ctx, db, "equipment_categories")
	if err != nil {
		return fmt.Errorf("load category ids: %w", err)
	}
	teamIDs, err := mapIDsByName(ctx, db, "maintenance_teams")
	if err != nil {
		return fmt.Errorf("load team ids: %w", err)
	}

	for _, e := range equipmentData {
		var exists bool
		if err := db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM equipment WHERE serial_number = $1)", e.SerialNumber).Scan(&exists); err != nil {
			return err
		}
		if exists {
			continue
		}

		categoryID, ok := categoryIDs[e.Category]
		if !ok {
			log.Printf("    warning: category %q not found, skipping %q", e.Category, e.Name)
			continue
		}
		teamID, ok := teamIDs[e.Team]
		if !ok {
			log.Printf("    warning: team %q not found, skipping %q", e.Team, e.Name)
			continue
		}

		if _, err := db.Exec(ctx,
			`INSERT INTO equipment (name, serial_number, department, location, category_id, company, condition, maintenance_team_id)
			 VALUES ($1, $2, $3, $4, $5, 'GearGuard Inc.', $6, $7)`,
			e.Name, e.SerialNumber, e.Department, e.Location, categoryID, e.Condition, teamID,
		); err != nil {
			return fmt.Errorf("insert equipment %q: %w", e.Name, err)
		}
	}
	return nil
}

func mapIDsByName(ctx context.Context, db *pgxpool.Pool, table string) (map[string]uint64, error) {
	rows, err := db.Query(ctx, fmt.Sprintf("SELECT id, name FROM %s", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]uint64)
	for rows.Next() {
		var id uint64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[name] = id
	}
	return out, rows.Err()
}
