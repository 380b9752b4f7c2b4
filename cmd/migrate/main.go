package main

import (
	"fmt"
	"os"

	"github.com/wastegate/wastegate/internal/config"
	"github.com/wastegate/wastegate/internal/repository/postgres"
	"github.com/wastegate/wastegate/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := postgres.New(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	applied, err := postgres.RunMigrations(db, migrations.GetFS())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}

	if applied == 0 {
		fmt.Println("Database is up to date")
		return
	}
	fmt.Printf("Applied %d migrations\n", applied)
}
