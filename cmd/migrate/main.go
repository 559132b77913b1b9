package main

import (
	"log"
	"os"

	"quizard/internal/config"
	"quizard/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	db, err := sqlx.Connect("pgx", cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	driver, err := pgx.WithInstance(db.DB, &pgx.Config{})
	if err != nil {
		l.Fatal("Failed to create migration driver", zap.Error(err))
	}

	m, err := migrate.NewWithDatabaseInstance("file://database/migrations", cfg.DB.DBName, driver)
	if err != nil {
		l.Fatal("Failed to create migrator", zap.Error(err))
	}

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	default:
		l.Fatal("Unknown migration direction", zap.String("direction", direction))
	}

	if err != nil && err != migrate.ErrNoChange {
		l.Fatal("Migration failed", zap.String("direction", direction), zap.Error(err))
	}

	version, dirty, _ := m.Version()
	l.Info("Migrations completed",
		zap.String("direction", direction),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
}
