package main

import (
	"context"
	"flag"
	"log"

	"gearguard/pkg/config"
	"gearguard/pkg/database/postgresql"
	"gearguard/seeders"
)

func main() {
	runCore := flag.Bool("core", false, "seed teams and users")
	runEquipment := flag.Bool("equipment", false, "seed categories and sample equipment")
	runAll := flag.Bool("all", false, "run all seeders")
	flag.Parse()

	if !*runCore && !*runEquipment && !*runAll {
		log.Println("no seeder selected")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	dbPool, err := postgresql.ConnectDB(context.Background(), cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer dbPool.Close()

	if *runAll || *runCore {
		seeders.SeedCore(dbPool)
	}
	if *runAll || *runEquipment {
		seeders.SeedEquipment(dbPool)
	}

	log.Println("seeding finished")
}
