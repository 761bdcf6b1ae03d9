package db

import (
	"context"
	"database/sql"
	"embed"
	"time"

	"emperror.dev/errors"
	"github.com/Masterminds/squirrel"
	"github.com/ReneKroon/ttlcache/v2"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/warden-bot/warden/common/log"

	migrate "github.com/rubenv/sql-migrate"

	// pgx driver for migrations
	_ "github.com/jackc/pgx/v4/stdlib"
)

// sq is a squirrel builder for postgres
var sq = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// ErrNotFound is returned when a queried row doesn't exist.
const ErrNotFound = errors.Sentinel("not found in database")

type DB struct {
	*pgxpool.Pool

	settings *ttlcache.Cache
}

// New connects to the database at url, running migrations first unless noAutoMigrate is set.
func New(url string, noAutoMigrate bool) (*DB, error) {
	if !noAutoMigrate {
		err := RunMigrations(url)
		if err != nil {
			return nil, errors.Wrap(err, "running migrations")
		}
	}

	pool, err := pgxpool.Connect(context.Background(), url)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to postgres")
	}

	db := &DB{
		Pool:     pool,
		settings: ttlcache.NewCache(),
	}
	err = db.settings.SetTTL(10 * time.Minute)
	if err != nil {
		return nil, errors.Wrap(err, "setting cache ttl")
	}

	return db, nil
}

// Close closes the pool and the settings cache.
func (db *DB) Close() {
	_ = db.settings.Close()
	db.Pool.Close()
}

//go:embed migrations
var fs embed.FS

// RunMigrations runs all of the migrations in migrations/.
func RunMigrations(url string) (err error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}

	// we close this because we end up using pgx's native driver for all other queries.
	defer db.Close()

	err = db.Ping()
	if err != nil {
		return errors.Wrap(err, "pinging database")
	}

	migrations := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: fs,
		Root:       "migrations",
	}

	migrate.SetTable("migration_history")

	n, err := migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		return errors.Wrap(err, "running migrations")
	}

	if n != 0 {
		log.Debugf("Performed %v migrations!", n)
	}
	return nil
}
