package sqlite

import (
	"database/sql"
	"os"
	"time"

	"github.com/Masterminds/squirrel"

	_ "github.com/mattn/go-sqlite3"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/rs/zerolog"
)

type DB struct {
	*sql.DB
	QueryBuilder *squirrel.StatementBuilderType
}

// NewDB opens the store at path, runs pending migrations and wraps the
// driver with tracing and query logging. Both paths come from config;
// nothing is read from the environment here.
func NewDB(path, migrationsPath string) (*DB, error) {
	migrationDB, err := sql.Open("sqlite3", dsn(path))

	if err != nil {
		return nil, err
	}

	if err := RunMigrations(migrationDB, migrationsPath); err != nil {
		migrationDB.Close()
		return nil, err
	}

	migrationDB.Close()

	sqlDB, err := otelsql.Open("sqlite3", dsn(path),
		otelsql.WithDBSystem("sqlite"),
		otelsql.WithDBName("taskhub"),
	)

	if err != nil {
		return nil, err
	}

	logger := zerolog.New(os.Stdout)
	db := sqldblogger.OpenDriver(dsn(path), sqlDB.Driver(), zerologadapter.New(logger))

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return Wrap(db), nil
}

// Wrap attaches the query builder to an already opened handle. Tests use
// it with an in-memory connection.
func Wrap(db *sql.DB) *DB {
	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

	return &DB{
		DB:           db,
		QueryBuilder: &queryBuilder,
	}
}

func RunMigrations(db *sql.DB, migrationsPath string) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})

	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationsPath,
		"sqlite3",
		driver,
	)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}

// Referential actions (cascade delete, set-null) depend on this pragma;
// sqlite leaves it off per connection by default.
func dsn(path string) string {
	return "file:" + path + "?_foreign_keys=on"
}
