package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedCore fills teams and users: the minimum needed to log in.
func SeedCore(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("seeding core data...")

	if err := seedTeams(ctx, db); err != nil {
		log.Fatalf("seed teams: %v", err)
	}
	if err := seedUsers(ctx, db); err != nil {
		log.Fatalf("seed users: %v", err)
	}
	log.Println("core data seeded")
}

// SeedEquipment fills categories and sample equipment. Depends on SeedCore.
func SeedEquipment(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("seeding equipment data...")

	if err := seedCategories(ctx, db); err != nil {
		log.Fatalf("seed categories: %v", err)
	}
	if err := seedEquipment(ctx, db); err != nil {
		log.Fatalf("seed equipment: %v", err)
	}
	log.Println("equipment data seeded")
}
