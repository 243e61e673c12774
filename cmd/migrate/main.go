// cmd/migrate/main.go
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Jomachado2002/Zennelectronica-sub006/internal/config"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/db"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/migration"
)

func main() {
	// .env dosyasını yükle
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	// Config yükle
	cfg := config.LoadConfig()

	// Database bağlantısı
	database, err := db.Connect(cfg.GetDSN())
	if err != nil {
		fmt.Printf("Database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	// Migration runner oluştur (CLI config ile)
	runner := migration.NewRunner(database, migration.CLIConfig())

	switch command {
	case "init":
		handleInit(runner)
	case "status":
		handleStatus(runner)
	case "up":
		handleUp(runner)
	case "down":
		handleDown(runner)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`
Migration CLI Tool

USAGE:
    go run cmd/migrate/main.go <command>

COMMANDS:
    init       Initialize migration system
    status     Show migration status
    up         Apply all pending migrations
    down       Rollback the last applied migration

EXAMPLES:
    go run cmd/migrate/main.go init
    go run cmd/migrate/main.go status
    go run cmd/migrate/main.go up
    go run cmd/migrate/main.go down
`)
}

func handleInit(runner *migration.Runner) {
	fmt.Println("Initializing migration system...")

	if err := runner.Initialize(); err != nil {
		fmt.Printf("Initialization failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Migration system initialized successfully!")
	fmt.Println("  Migration tracking table created")
	fmt.Println("  Run 'status' to check current state")
}

func handleStatus(runner *migration.Runner) {
	fmt.Println("Checking migration status...")

	status, err := runner.GetStatus()
	if err != nil {
		fmt.Printf("Failed to get migration status: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nMigration Status:\n")
	fmt.Printf("  Current Version: %d\n", status.CurrentVersion)
	fmt.Printf("  Applied: %d\n", status.AppliedCount)
	fmt.Printf("  Pending: %d\n", status.PendingCount)

	if len(status.Migrations) > 0 {
		fmt.Printf("\nMigrations:\n")
		fmt.Println("  VERSION | STATUS   | NAME")
		fmt.Println("  --------|----------|--------------------")

		for _, m := range status.Migrations {
			statusText := "PENDING"
			appliedAt := ""

			if m.Applied {
				statusText = "APPLIED"
				if m.AppliedAt != nil {
					appliedAt = fmt.Sprintf(" (%s)", m.AppliedAt.Format("2006-01-02 15:04"))
				}
			}

			fmt.Printf("  %06d  | %-8s | %s%s\n", m.Version, statusText, m.Name, appliedAt)
		}
	}

	if status.PendingCount > 0 {
		fmt.Printf("\nYou have %d pending migration(s). Run 'up' to apply them.\n", status.PendingCount)
	} else {
		fmt.Printf("\nAll migrations are up to date!\n")
	}
}

func handleUp(runner *migration.Runner) {
	fmt.Println("Applying all pending migrations...")

	if err := runner.Initialize(); err != nil {
		fmt.Printf("Initialization failed: %v\n", err)
		os.Exit(1)
	}

	if err := runner.RunUp(); err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("All migrations completed successfully!")
}

func handleDown(runner *migration.Runner) {
	fmt.Println("Rolling back the last applied migration...")

	// Confirmation
	fmt.Printf("WARNING: This will rollback your database!\n")
	fmt.Printf("Are you sure you want to continue? (y/N): ")

	var response string
	fmt.Scanln(&response)

	if strings.ToLower(response) != "y" && strings.ToLower(response) != "yes" {
		fmt.Println("Rollback cancelled")
		return
	}

	if err := runner.RunDown(); err != nil {
		fmt.Printf("Rollback failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Rollback completed successfully!")
}
