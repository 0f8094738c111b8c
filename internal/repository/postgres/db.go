package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/ngson927/Greatea-smart-management/internal/config"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
)

const defaultMaxConcurrent = 10

type DB struct {
	*sqlx.DB
	sem *semaphore.Weighted
}

var (
	dbInstance *DB
	once       sync.Once
)

// NewDB creates a new database connection pool
func NewDB(cfg *config.DatabaseConfig) (*DB, error) {
	var err error
	once.Do(func() {
		var db *sqlx.DB
		db, err = sqlx.Connect("postgres", cfg.DSN())
		if err != nil {
			return
		}

		// Configure connection pool
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		dbInstance = Wrap(db, defaultMaxConcurrent)
	})

	return dbInstance, err
}

// Wrap bounds an already opened pool to maxConcurrent operations at a time.
func Wrap(db *sqlx.DB, maxConcurrent int64) *DB {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	return &DB{
		DB:  db,
		sem: semaphore.NewWeighted(maxConcurrent),
	}
}

// WithConn runs fn while holding one of the pool's concurrency slots
func (db *DB) WithConn(ctx context.Context, fn func() error) error {
	if err := db.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("could not acquire semaphore: %w", err)
	}
	defer db.sem.Release(1)

	return fn()
}

// WithTx executes a function within a transaction
func (db *DB) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return db.WithConn(ctx, func() error {
		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("could not begin transaction: %w", err)
		}

		if err := fn(tx.Tx); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("could not rollback transaction")
			}
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("could not commit transaction: %w", err)
		}

		return nil
	})
}

// selectAll runs a bounded SELECT into dest and logs how long it took
func (db *DB) selectAll(ctx context.Context, what string, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := db.WithConn(ctx, func() error {
		return sqlx.SelectContext(ctx, db.DB, dest, query, args...)
	})
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", what, err)
	}

	log.Debug().
		Str("collection", what).
		Dur("duration", time.Since(start)).
		Msg("collection loaded")

	return nil
}
