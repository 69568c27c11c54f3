package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/stockalert-app/stockalert-backend/pkg/config"
	"github.com/stockalert-app/stockalert-backend/pkg/db"
	"github.com/stockalert-app/stockalert-backend/pkg/logger"
	"github.com/stockalert-app/stockalert-backend/pkg/migrate"
)

const usage = `usage: migrate [flags] <command>

commands:
  up        apply all pending migrations
  down      roll back the most recent migration
  status    print migration status
  version   migrate to the version given by -version
  create    scaffold a new SQL migration named by -name
  validate  check the migrations directory without touching the store
`

func main() {
	_ = godotenv.Load()

	dir := flag.String("dir", migrate.DefaultDir, "migrations directory")
	name := flag.String("name", "", "migration name, used by create")
	version := flag.String("version", "", "target version (YYYYMMDDHHMMSS), used by version")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		flag.Usage()
		os.Exit(2)
	}

	logg := logger.New(logger.Options{ServiceName: "migrate"})

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"command": command,
		"dir":     *dir,
	})

	if err := run(ctx, command, cfg, logg, *dir, *name, *version); err != nil {
		logg.Error(ctx, "migrate failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, cfg *config.Config, logg *logger.Logger, dir, name, version string) error {
	// create and validate only touch the migrations directory.
	switch command {
	case "create":
		if name == "" {
			return fmt.Errorf("create requires -name")
		}
		path, err := migrate.CreateSQLMigration(dir, name)
		if err != nil {
			return err
		}
		fmt.Println("created", path)
		return nil
	case "validate":
		if err := migrate.ValidateDir(dir); err != nil {
			return err
		}
		fmt.Println("migrations ok")
		return nil
	}

	return withStore(ctx, cfg, logg, func(sqlDB *sql.DB) error {
		switch command {
		case "up", "down", "status":
			return migrate.Run(ctx, sqlDB, dir, command)
		case "version":
			if version == "" {
				return fmt.Errorf("version requires -version")
			}
			return migrate.MigrateToVersion(ctx, sqlDB, dir, version)
		default:
			return fmt.Errorf("unknown command %q", command)
		}
	})
}

func withStore(ctx context.Context, cfg *config.Config, logg *logger.Logger, fn func(*sql.DB) error) error {
	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer client.Close()

	sqlDB, err := client.DB().DB()
	if err != nil {
		return err
	}
	return fn(sqlDB)
}
