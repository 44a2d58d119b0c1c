package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedTeams(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - seeding 'maintenance_teams'...")

	for _, t := range teamsData {
		var exists bool
		if err := db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM maintenance_teams WHERE name = $1)", t.Name).Scan(&exists); err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := db.Exec(ctx,
			"INSERT INTO maintenance_teams (name, company) VALUES ($1, $2)",
			t.Name, t.Company,
		); err != nil {
			return err
		}
	}
	return nil
}
