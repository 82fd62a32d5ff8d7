package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogOrder(t *testing.T) {
	var names []string
	for _, q := range Catalog() {
		names = append(names, q.Name)
	}
	assert.Equal(t, []string{"top_authors", "top_articles", "error_days"}, names)
}

func TestCatalogHeaders(t *testing.T) {
	assert.Equal(t, "Top Authors:", TopAuthors().Header)
	assert.Equal(t, "views", TopAuthors().Suffix)
	assert.Equal(t, "Top 3 Articles:", TopArticles().Header)
	assert.Equal(t, "views", TopArticles().Suffix)
	assert.Equal(t, "Dates with more than 1% error views:", ErrorDays().Header)
	assert.Equal(t, "% error views", ErrorDays().Suffix)
	assert.Equal(t, 2, ErrorDays().Precision)
	assert.Equal(t, 0, TopAuthors().Precision)
}

func TestTopArticlesSQL_Postgres(t *testing.T) {
	query, args, err := TopArticles().ToSQL(Postgres)
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT articles.title, count(*) AS n_visits FROM articles "+
			"JOIN log ON log.path = concat('/article/', articles.slug) "+
			"GROUP BY articles.title ORDER BY n_visits DESC LIMIT 3",
		query)
	assert.Empty(t, args)
}

func TestTopAuthorsSQL_HasNoLimit(t *testing.T) {
	for _, d := range []Dialect{Postgres, SQLite} {
		query, _, err := TopAuthors().ToSQL(d)
		require.NoError(t, err)
		assert.Contains(t, query, "JOIN authors ON articles.author = authors.id", d.String())
		assert.Contains(t, query, "GROUP BY authors.name", d.String())
		assert.NotContains(t, query, "LIMIT", d.String())
	}
}

func TestErrorDaysSQL_Postgres(t *testing.T) {
	query, args, err := ErrorDays().ToSQL(Postgres)
	require.NoError(t, err)

	assert.Contains(t, query, "log.status LIKE $1")
	assert.Contains(t, query, "err_percent > $2")
	assert.Contains(t, query, "to_char(all_visits.day, 'DD-Mon-YYYY') AS label")
	assert.Contains(t, query, "round(100.0 * err_visits.errs / all_visits.total, 2) AS err_percent")
	assert.Contains(t, query, ") AS err_visits ON all_visits.day = err_visits.day")
	assert.NotContains(t, query, "?")
	assert.Equal(t, []interface{}{NotFoundPattern, ErrorThreshold}, args)
}

func TestErrorDaysSQL_SQLite(t *testing.T) {
	query, args, err := ErrorDays().ToSQL(SQLite)
	require.NoError(t, err)

	assert.Contains(t, query, "log.status LIKE ?")
	assert.Contains(t, query, "err_percent > ?")
	assert.Contains(t, query, "strftime('%Y', all_visits.day)")
	assert.NotContains(t, query, "$1")
	assert.Equal(t, []interface{}{"%404%", 1.0}, args)
}

func TestArticlePathPerDialect(t *testing.T) {
	assert.Equal(t, "concat('/article/', articles.slug)", Postgres.articlePath())
	assert.Equal(t, "'/article/' || articles.slug", SQLite.articlePath())
}

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("postgres")
	require.NoError(t, err)
	assert.Equal(t, Postgres, d)

	d, err = DialectFor("sqlite3")
	require.NoError(t, err)
	assert.Equal(t, SQLite, d)

	_, err = DialectFor("mysql")
	assert.Error(t, err)
}
