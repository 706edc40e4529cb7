package main

import (
  "context"
  "fmt"
  "os"
  "github.com/yungbote/outcometrack-backend/internal/db"
  "github.com/yungbote/outcometrack-backend/internal/logger"
  "github.com/yungbote/outcometrack-backend/internal/seed"
)

// Loads a YAML catalog (instructors, programs, outcomes, courses, sections)
// into Postgres. Safe to re-run: existing rows are matched by natural key.
func main() {
  log, err := logger.New("development")
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  if len(os.Args) < 2 {
    log.Error("Usage: seed <catalog.yaml>")
    os.Exit(1)
  }
  catalog, err := seed.LoadFile(os.Args[1])
  if err != nil {
    log.Error("Catalog load failed", "error", err)
    os.Exit(1)
  }

  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Error("Postgres auto migration failed", "error", err)
    os.Exit(1)
  }

  seeder := seed.NewSeeder(postgresService.DB(), log)
  if err := seeder.Apply(context.Background(), catalog); err != nil {
    log.Error("Seed failed", "error", err)
    os.Exit(1)
  }
  log.Info("Seed complete",
    "instructors", len(catalog.Instructors),
    "programs", len(catalog.Programs),
  )
}
