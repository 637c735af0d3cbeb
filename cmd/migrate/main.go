package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/ledgerbook/backend/internal/infrastructure/config"
	"github.com/ledgerbook/backend/internal/infrastructure/logger"
	"github.com/ledgerbook/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const usage = `Ledgerbook schema migrations

Usage:
  migrate [-path dir] [-log-level level] <command> [argument]

Database commands:
  up                Apply all pending migrations
  down              Roll back all migrations
  step <n>          Apply n migrations (negative n rolls back)
  version           Show the applied version
  force <version>   Set the version after a failed run

File commands:
  create <name>     Write a new up/down pair
  list              List embedded migrations

The database is read from config.toml or LEDGERBOOK_DATABASE_* variables.`

// dbCommand runs against an open migrator; arg is the optional positional argument.
type dbCommand func(m *migration.Migrator, arg string, log *zap.Logger) error

var dbCommands = map[string]dbCommand{
	"up":      func(m *migration.Migrator, _ string, _ *zap.Logger) error { return m.Up() },
	"down":    func(m *migration.Migrator, _ string, _ *zap.Logger) error { return m.Down() },
	"step":    runStep,
	"version": runVersion,
	"force":   runForce,
}

func main() {
	dir := flag.String("path", migration.SourceDir, "Directory new migrations are written to")
	level := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	command, arg := flag.Arg(0), flag.Arg(1)

	log, err := logger.New(&logger.Config{Level: *level, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	switch command {
	case "create":
		err = runCreate(*dir, arg, log)
	case "list":
		err = runList(log)
	default:
		run, ok := dbCommands[command]
		if !ok {
			flag.Usage()
			log.Fatal("Unknown command", zap.String("command", command))
		}
		err = withMigrator(log, func(m *migration.Migrator) error { return run(m, arg, log) })
	}
	if err != nil {
		log.Fatal("Migration command failed", zap.String("command", command), zap.Error(err))
	}
}

// withMigrator opens the configured postgres database for the duration of fn.
func withMigrator(log *zap.Logger, fn func(*migration.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("driver %q has no SQL migrations; the server creates sqlite schemas on start", cfg.Database.Driver)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	m, err := migration.New(db, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()
	return fn(m)
}

func runCreate(dir, name string, log *zap.Logger) error {
	if name == "" {
		return errors.New("usage: migrate create <name>")
	}
	mf, err := migration.CreateMigration(dir, name)
	if err != nil {
		return err
	}
	log.Info("Migration created",
		zap.Uint("version", mf.Version),
		zap.String("up_file", mf.UpPath),
		zap.String("down_file", mf.DownPath),
	)
	return nil
}

func runList(log *zap.Logger) error {
	names, err := migration.ListMigrations(migration.Files())
	if err != nil {
		return err
	}
	log.Info("Embedded migrations", zap.Int("count", len(names)))
	for _, name := range names {
		fmt.Println("  -", name)
	}
	return nil
}

func runStep(m *migration.Migrator, arg string, _ *zap.Logger) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("usage: migrate step <n>: %w", err)
	}
	return m.Steps(n)
}

func runForce(m *migration.Migrator, arg string, _ *zap.Logger) error {
	version, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("usage: migrate force <version>: %w", err)
	}
	return m.Force(version)
}

func runVersion(m *migration.Migrator, _ string, log *zap.Logger) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	if version == 0 {
		log.Info("No migrations applied")
		return nil
	}
	log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
