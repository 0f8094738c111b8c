package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/ngson927/Greatea-smart-management/internal/config"
	"github.com/ngson927/Greatea-smart-management/internal/export"
	"github.com/ngson927/Greatea-smart-management/internal/repository/postgres"
	"github.com/ngson927/Greatea-smart-management/internal/service"
	"github.com/ngson927/Greatea-smart-management/internal/storage"
	"github.com/ngson927/Greatea-smart-management/pkg/logger"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

type contextKey string

const serviceKey contextKey = "analytics_service"

const cliMaxConcurrent = 4

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "db-url",
		Usage:   "Database connection string (defaults to the DB_* settings)",
		EnvVars: []string{"DATABASE_URL"},
	}
}

func initService(c *cli.Context) error {
	cfg := config.Load()

	dsn := c.String("db-url")
	if dsn == "" {
		dsn = cfg.Database.DSN()
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.PingContext(c.Context); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	wrapped := postgres.Wrap(sqlx.NewDb(db, "pgx"), cliMaxConcurrent)
	svc := service.NewAnalyticsService(
		postgres.NewInventoryRepository(wrapped),
		postgres.NewRestockRepository(wrapped),
		nil,
		service.SettingsFromConfig(cfg.Analytics),
	)

	c.Context = context.WithValue(c.Context, serviceKey, svc)
	c.App.Metadata["db"] = db
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.App.Metadata["db"].(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func analyticsService(c *cli.Context) *service.AnalyticsService {
	return c.Context.Value(serviceKey).(*service.AnalyticsService)
}

func printJSON(c *cli.Context, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = fmt.Fprintln(c.App.Writer, string(out))
	return err
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg := config.Load()
	logger.SetLevel(cfg.Log.Level)
	logger.SetOutput(os.Stderr)

	app := &cli.App{
		Name:     "analytics",
		Usage:    "Compute inventory analytics reports from the operational database",
		Metadata: map[string]interface{}{},
		Flags: []cli.Flag{
			newDBURLFlag(),
		},
		Commands: []*cli.Command{
			{
				Name:   "forecast",
				Usage:  "Print the usage forecast with reorder urgency",
				Before: initService,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					report, err := analyticsService(c).Forecast(c.Context)
					if err != nil {
						return err
					}
					return printJSON(c, report)
				},
			},
			{
				Name:   "suppliers",
				Usage:  "Print supplier performance scorecards",
				Before: initService,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					report, err := analyticsService(c).Suppliers(c.Context)
					if err != nil {
						return err
					}
					return printJSON(c, report)
				},
			},
			{
				Name:   "expenses",
				Usage:  "Print monthly expense trends by category",
				Before: initService,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					report, err := analyticsService(c).Expenses(c.Context)
					if err != nil {
						return err
					}
					return printJSON(c, report)
				},
			},
			{
				Name:  "export",
				Usage: "Render the forecast, supplier and expense reports to files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Usage:   "Output directory",
						Value:   "./reports",
						EnvVars: []string{"EXPORT_DIR"},
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "csv or xlsx",
						Value: string(export.FormatCSV),
					},
					&cli.BoolFlag{
						Name:  "upload",
						Usage: "Upload the rendered files to object storage",
					},
				},
				Before: initService,
				After:  closeDB,
				Action: runExport,
			},
			{
				Name:  "reports",
				Usage: "List archived reports for a day",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "date",
						Usage: "Day in YYYYMMDD format",
						Value: time.Now().In(cfg.Analytics.Location).Format("20060102"),
					},
				},
				Action: listReports,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("analytics command failed")
	}
}

func runExport(c *cli.Context) error {
	format, err := export.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}

	svc := analyticsService(c)
	start := time.Now()

	var reports export.Reports
	g, ctx := errgroup.WithContext(c.Context)
	g.Go(func() (err error) {
		reports.Forecast, err = svc.Forecast(ctx)
		return err
	})
	g.Go(func() (err error) {
		reports.Suppliers, err = svc.Suppliers(ctx)
		return err
	})
	g.Go(func() (err error) {
		reports.Expenses, err = svc.Expenses(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	paths, err := export.Write(c.String("out"), format, reports)
	if err != nil {
		return err
	}
	logger.Log.Info().
		Strs("files", paths).
		Dur("duration", time.Since(start)).
		Msg("reports exported")

	if !c.Bool("upload") {
		return nil
	}

	cfg := config.Load()
	if !cfg.Storage.Enabled {
		return fmt.Errorf("upload requested but STORAGE_ENABLED is false")
	}
	store, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return err
	}
	keys, err := storage.UploadReports(c.Context, store, svc.Today(), paths)
	if err != nil {
		return err
	}
	for _, key := range keys {
		fmt.Fprintln(c.App.Writer, key)
	}
	return nil
}

func listReports(c *cli.Context) error {
	day, err := time.Parse("20060102", c.String("date"))
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", c.String("date"), err)
	}

	store, err := storage.NewMinioClient(config.Load().Storage)
	if err != nil {
		return err
	}

	objects, err := store.ListObjects(c.Context, storage.ReportPrefix(day))
	if err != nil {
		return err
	}
	for _, object := range objects {
		fmt.Fprintf(c.App.Writer, "%s\t%d\n", object.Key, object.Size)
	}
	return nil
}
