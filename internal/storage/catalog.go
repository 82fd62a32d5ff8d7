package storage

import sq "github.com/Masterminds/squirrel"

const (
	// TopArticlesLimit caps the article report. The author report is
	// deliberately unbounded.
	TopArticlesLimit = 3

	// ErrorThreshold is the error percentage a day has to exceed.
	ErrorThreshold = 1.0

	// NotFoundPattern matches error statuses such as "404 NOT FOUND".
	NotFoundPattern = "%404%"
)

// Catalog returns the report queries in the order they are written out.
func Catalog() []Query {
	return []Query{TopAuthors(), TopArticles(), ErrorDays()}
}

// TopArticles counts log hits per article and keeps the busiest three.
func TopArticles() Query {
	return Query{
		Name:   "top_articles",
		Header: "Top 3 Articles:",
		Suffix: "views",
		build: func(d Dialect) sq.SelectBuilder {
			return sq.Select("articles.title", "count(*) AS n_visits").
				From("articles").
				Join("log ON log.path = " + d.articlePath()).
				GroupBy("articles.title").
				OrderBy("n_visits DESC").
				Limit(TopArticlesLimit)
		},
	}
}

// TopAuthors sums log hits over every article an author wrote.
func TopAuthors() Query {
	return Query{
		Name:   "top_authors",
		Header: "Top Authors:",
		Suffix: "views",
		build: func(d Dialect) sq.SelectBuilder {
			return sq.Select("authors.name", "count(*) AS n_visits").
				From("articles").
				Join("authors ON articles.author = authors.id").
				Join("log ON log.path = " + d.articlePath()).
				GroupBy("authors.name").
				OrderBy("n_visits DESC")
		},
	}
}

// ErrorDays lists the days on which more than ErrorThreshold percent of
// requests returned a not-found status.
func ErrorDays() Query {
	return Query{
		Name:      "error_days",
		Header:    "Dates with more than 1% error views:",
		Suffix:    "% error views",
		Precision: 2,
		build: func(d Dialect) sq.SelectBuilder {
			allVisits := sq.Select("date(log.time) AS day", "count(*) AS total").
				From("log").
				GroupBy("date(log.time)")

			errVisits := sq.Select("date(log.time) AS day", "count(*) AS errs").
				From("log").
				Where("log.status LIKE ?", NotFoundPattern).
				GroupBy("date(log.time)")

			perDay := sq.Select(
				"all_visits.day AS day",
				d.dayLabel("all_visits.day")+" AS label",
				"round(100.0 * err_visits.errs / all_visits.total, 2) AS err_percent",
			).
				FromSelect(allVisits, "all_visits").
				JoinClause(errVisits.Prefix("JOIN (").Suffix(") AS err_visits ON all_visits.day = err_visits.day"))

			return sq.Select("label", "err_percent").
				FromSelect(perDay, "all_errs").
				Where(sq.Gt{"err_percent": ErrorThreshold}).
				OrderBy("day")
		},
	}
}

// articlePath builds '/article/<slug>' for the joined articles row.
func (d Dialect) articlePath() string {
	if d == SQLite {
		return "'/article/' || articles.slug"
	}
	return "concat('/article/', articles.slug)"
}

// dayLabel formats a date column as DD-Mon-YYYY.
func (d Dialect) dayLabel(col string) string {
	if d == SQLite {
		return "strftime('%d', " + col + ") || '-' || " +
			"substr('JanFebMarAprMayJunJulAugSepOctNovDec', 3 * cast(strftime('%m', " + col + ") AS integer) - 2, 3) || '-' || " +
			"strftime('%Y', " + col + ")"
	}
	return "to_char(" + col + ", 'DD-Mon-YYYY')"
}
