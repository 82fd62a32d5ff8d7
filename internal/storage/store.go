package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// Store runs catalog queries over one exclusively owned connection.
type Store struct {
	db      *sql.DB
	dialect Dialect
	log     zerolog.Logger
}

// NewStore wraps an already-opened database. Open is the usual way in.
func NewStore(db *sql.DB, dialect Dialect, log zerolog.Logger) *Store {
	return &Store{db: db, dialect: dialect, log: log}
}

// Dialect reports the SQL flavour the store renders queries in.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Run executes q and returns every row it produced. The result set is read
// completely before Run returns.
func (s *Store) Run(ctx context.Context, q Query) ([]Row, error) {
	if s.db == nil {
		return nil, fmt.Errorf("run %s: store is closed", q.Name)
	}

	query, args, err := q.ToSQL(s.dialect)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", q.Name, err)
	}
	s.log.Debug().Str("query", q.Name).Str("sql", query).Interface("args", args).Msg("running query")

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", q.Name, err)
	}
	defer rows.Close()

	result := []Row{}
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Label, &r.Value); err != nil {
			return nil, fmt.Errorf("scan %s: %w", q.Name, err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("run %s: %w", q.Name, err)
	}

	s.log.Debug().Str("query", q.Name).Int("rows", len(result)).Msg("query finished")
	return result, nil
}

// Close releases the connection. Calling it again is a no-op.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
