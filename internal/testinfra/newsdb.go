// Package testinfra builds throwaway news databases for tests.
package testinfra

import (
	"database/sql"
	"path/filepath"
	"testing"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// Author, Article and Hit describe the rows seeded into a news database.
type Author struct {
	ID   int
	Name string
}

type Article struct {
	Title  string
	Slug   string
	Author int
}

// Hit is one request in the log table. Time uses "2006-01-02 15:04:05".
type Hit struct {
	Path   string
	Status string
	Time   string
}

// Dataset is everything a news database holds.
type Dataset struct {
	Authors  []Author
	Articles []Article
	Log      []Hit
}

// ArticleHit returns a hit on /article/<slug>.
func ArticleHit(slug, status, ts string) Hit {
	return Hit{Path: "/article/" + slug, Status: status, Time: ts}
}

// Repeat returns n copies of h.
func Repeat(h Hit, n int) []Hit {
	hits := make([]Hit, n)
	for i := range hits {
		hits[i] = h
	}
	return hits
}

// SampleDataset is the small dataset used across packages: article A by X
// has 5 hits, article B by Y has 3, and 2016-07-01 has one 404 out of two
// requests.
func SampleDataset() Dataset {
	var hits []Hit
	hits = append(hits, ArticleHit("a", "200 OK", "2016-07-01 10:00:00"))
	hits = append(hits, ArticleHit("a", "404 NOT FOUND", "2016-07-01 11:00:00"))
	hits = append(hits, Repeat(ArticleHit("a", "200 OK", "2016-07-02 09:30:00"), 3)...)
	hits = append(hits, Repeat(ArticleHit("b", "200 OK", "2016-07-02 12:15:00"), 3)...)

	return Dataset{
		Authors: []Author{
			{ID: 1, Name: "X"},
			{ID: 2, Name: "Y"},
		},
		Articles: []Article{
			{Title: "A", Slug: "a", Author: 1},
			{Title: "B", Slug: "b", Author: 2},
		},
		Log: hits,
	}
}

// NewsDB writes ds into a fresh SQLite file under t.TempDir and returns its
// path. The database is closed before returning.
func NewsDB(t *testing.T, ds Dataset) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "news.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	seed(t, db, schema("TEXT"), sq.Question, ds)
	return path
}

// schema returns the news tables. timeType is the column type of log.time.
func schema(timeType string) []string {
	return []string{
		`CREATE TABLE authors (
			id   INTEGER PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE articles (
			author INTEGER NOT NULL REFERENCES authors(id),
			title  TEXT NOT NULL,
			slug   TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE log (
			path   TEXT,
			status TEXT,
			time   ` + timeType + `
		)`,
		`CREATE INDEX idx_log_path ON log(path)`,
	}
}

// seed creates the tables and inserts ds in one transaction.
func seed(t *testing.T, db *sql.DB, stmts []string, ph sq.PlaceholderFormat, ds Dataset) {
	t.Helper()

	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	tx, err := db.Begin()
	require.NoError(t, err)
	defer tx.Rollback() //nolint:errcheck

	insert := func(table string, cols ...string) sq.InsertBuilder {
		return sq.Insert(table).Columns(cols...).PlaceholderFormat(ph).RunWith(tx)
	}
	for _, a := range ds.Authors {
		_, err := insert("authors", "id", "name").Values(a.ID, a.Name).Exec()
		require.NoError(t, err)
	}
	for _, a := range ds.Articles {
		_, err := insert("articles", "author", "title", "slug").Values(a.Author, a.Title, a.Slug).Exec()
		require.NoError(t, err)
	}
	for _, h := range ds.Log {
		_, err := insert("log", "path", "status", "time").Values(h.Path, h.Status, h.Time).Exec()
		require.NoError(t, err)
	}
	require.NoError(t, tx.Commit())
}
