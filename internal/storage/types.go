package storage

import (
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"

	"github.com/runnerr0/newsreports/internal/config"
)

// Row is one line of a report: a label (article title, author name or day)
// and the value measured for it.
type Row struct {
	Label string
	Value float64
}

// FormatValue renders the value with a fixed number of decimals.
func (r Row) FormatValue(precision int) string {
	return strconv.FormatFloat(r.Value, 'f', precision, 64)
}

// Query is a named report query. The SQL is built per dialect when run.
type Query struct {
	Name      string
	Header    string
	Suffix    string
	Precision int

	build func(d Dialect) sq.SelectBuilder
}

// ToSQL renders the query for the given dialect.
func (q Query) ToSQL(d Dialect) (string, []interface{}, error) {
	return q.build(d).PlaceholderFormat(d.placeholder()).ToSql()
}

// Dialect selects the SQL flavour the catalog is rendered in.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

// DialectFor maps a database/sql driver name to its dialect.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case config.DriverPostgres:
		return Postgres, nil
	case config.DriverSQLite:
		return SQLite, nil
	default:
		return 0, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func (d Dialect) String() string {
	if d == SQLite {
		return "sqlite"
	}
	return "postgres"
}

func (d Dialect) placeholder() sq.PlaceholderFormat {
	if d == SQLite {
		return sq.Question
	}
	return sq.Dollar
}
