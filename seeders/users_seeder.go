package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func seedUsers(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - seeding 'users'...")

	for _, u := range usersData {
		var userID uint64
		err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", u.Email).Scan(&userID)
		if err == nil {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		err = db.QueryRow(ctx,
			`INSERT INTO users (full_name, email, password_hash, is_manager, is_active)
			 VALUES ($1, $2, $3, $4, TRUE) RETURNING id`,
			u.FullName, u.Email, string(hash), u.IsManager,
		).Scan(&userID)
		if err != nil {
			return fmt.Errorf("insert user %q: %w", u.Email, err)
		}

		for _, teamName := range u.Teams {
			var teamID uint64
			if err := db.QueryRow(ctx, "SELECT id FROM maintenance_teams WHERE name = $1", teamName).Scan(&teamID); err != nil {
				return fmt.Errorf("team %q not found for user %q: %w", teamName, u.Email, err)
			}
			if _, err := db.Exec(ctx,
				"INSERT INTO team_members (team_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
				teamID, userID,
			); err != nil {
				return err
			}
		}
	}
	return nil
}
