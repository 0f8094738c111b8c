package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/ngson927/Greatea-smart-management/internal/config"
	"github.com/ngson927/Greatea-smart-management/pkg/logger"
	"github.com/urfave/cli/v2"
)

type contextKey string

const dbKey contextKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "db-url",
		Usage:   "Database connection string (defaults to the DB_* settings)",
		EnvVars: []string{"DATABASE_URL"},
	}
}

func newDataDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory containing one CSV file per table",
		Value:   "./data/seeds",
		EnvVars: []string{"SEED_DATA_DIR"},
	}
}

func initDB(c *cli.Context) error {
	dsn := c.String("db-url")
	if dsn == "" {
		dsn = config.Load().Database.DSN()
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.PingContext(c.Context); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFrom(c *cli.Context) *sql.DB {
	return c.Context.Value(dbKey).(*sql.DB)
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		logger.Log.Debug().Err(err).Msg("no .env file loaded")
	}
	logger.SetOutput(os.Stderr)

	app := &cli.App{
		Name:  "seed",
		Usage: "Create the inventory schema and load it from CSV files",
		Flags: []cli.Flag{
			newDBURLFlag(),
		},
		Before: initDB,
		After:  closeDB,
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Create any missing tables",
				Action: runSchema,
			},
			{
				Name:   "data",
				Usage:  "Upsert every table from <data-dir>/<table>.csv",
				Flags:  []cli.Flag{newDataDirFlag()},
				Action: runSeeder,
			},
			{
				Name:  "all",
				Usage: "Create the schema, then load the data",
				Flags: []cli.Flag{newDataDirFlag()},
				Action: func(c *cli.Context) error {
					if err := runSchema(c); err != nil {
						return fmt.Errorf("error creating schema: %w", err)
					}
					if err := runSeeder(c); err != nil {
						return fmt.Errorf("error seeding data: %w", err)
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("seed failed")
	}
}

func runSchema(c *cli.Context) error {
	if _, err := dbFrom(c).ExecContext(c.Context, schemaDDL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	logger.Log.Info().Msg("schema ready")
	return nil
}

func runSeeder(c *cli.Context) error {
	dataDir := c.String("data-dir")
	ctx := c.Context

	tx, err := dbFrom(c).BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Defer a rollback in case anything fails.
	defer tx.Rollback()

	logger.Log.Info().Str("data_dir", dataDir).Msg("Starting database seeding...")

	for _, table := range seedTables {
		if err := table.loadFile(ctx, tx, filepath.Join(dataDir, table.file)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Log.Info().Msg("Database seeding completed successfully!")
	return nil
}
