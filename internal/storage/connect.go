package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/runnerr0/newsreports/internal/config"
)

// ConnectError is returned by Open when the database cannot be reached.
// It is the only failure the CLI treats as fatal with a friendly message.
type ConnectError struct {
	Database string
	Err      error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("failed to connect to database named %s: %v", e.Database, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// Open connects to the configured database and verifies the connection
// with a ping. The returned Store owns a single connection until Close.
func Open(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger) (*Store, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, DSN(cfg))
	if err != nil {
		return nil, &ConnectError{Database: cfg.Name, Err: err}
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			log.Debug().
				Str("code", string(pqErr.Code)).
				Str("condition", pqErr.Code.Name()).
				Msg("postgres rejected connection")
		}
		return nil, &ConnectError{Database: cfg.Name, Err: err}
	}

	log.Info().
		Str("database", cfg.Name).
		Str("driver", cfg.Driver).
		Msg("successfully connected to database")

	return &Store{db: db, dialect: dialect, log: log}, nil
}

// DSN builds the driver connection string. For Postgres only the fields
// that are set are emitted so lib/pq falls back to PG* environment
// variables for the rest. SQLite databases are opened read-only.
func DSN(cfg config.DatabaseConfig) string {
	if cfg.Driver == config.DriverSQLite {
		return "file:" + sqliteURIPath.Replace(cfg.Name) + "?mode=ro"
	}

	parts := []string{"dbname=" + quoteDSN(cfg.Name)}
	if cfg.Host != "" {
		parts = append(parts, "host="+quoteDSN(cfg.Host))
	}
	if cfg.Port != 0 {
		parts = append(parts, "port="+strconv.Itoa(cfg.Port))
	}
	if cfg.User != "" {
		parts = append(parts, "user="+quoteDSN(cfg.User))
	}
	if cfg.Password != "" {
		parts = append(parts, "password="+quoteDSN(cfg.Password))
	}
	if cfg.SSLMode != "" {
		parts = append(parts, "sslmode="+quoteDSN(cfg.SSLMode))
	}
	return strings.Join(parts, " ")
}

// sqliteURIPath escapes the characters SQLite would otherwise read as the
// start of the query, the fragment or an escape in a file: URI.
var sqliteURIPath = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// quoteDSN quotes a libpq key/value when it is empty or contains spaces,
// quotes or backslashes.
func quoteDSN(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}
