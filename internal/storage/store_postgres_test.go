//go:build integration

package storage

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/newsreports/internal/testinfra"
)

// openPostgresStore seeds a Postgres container and opens it.
func openPostgresStore(t *testing.T, ds testinfra.Dataset) *Store {
	t.Helper()
	cfg := testinfra.PostgresNewsDB(t, ds)

	store, err := Open(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.Equal(t, Postgres, store.Dialect())
	return store
}

func TestPostgres_SampleDataset(t *testing.T) {
	store := openPostgresStore(t, testinfra.SampleDataset())
	ctx := context.Background()

	authors, err := store.Run(ctx, TopAuthors())
	require.NoError(t, err)
	assert.Equal(t, []Row{{Label: "X", Value: 5}, {Label: "Y", Value: 3}}, authors)

	articles, err := store.Run(ctx, TopArticles())
	require.NoError(t, err)
	assert.Equal(t, []Row{{Label: "A", Value: 5}, {Label: "B", Value: 3}}, articles)

	days, err := store.Run(ctx, ErrorDays())
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "01-Jul-2016", days[0].Label)
	assert.Equal(t, "50.00", days[0].FormatValue(2))
}

func TestPostgres_ErrorDays_ThresholdIsStrict(t *testing.T) {
	ds := testinfra.SampleDataset()
	ds.Log = nil
	ds.Log = append(ds.Log, testinfra.ArticleHit("a", "404 NOT FOUND", "2016-07-10 01:00:00"))
	ds.Log = append(ds.Log, testinfra.Repeat(testinfra.ArticleHit("a", "200 OK", "2016-07-10 02:00:00"), 99)...)
	ds.Log = append(ds.Log, testinfra.ArticleHit("a", "404 NOT FOUND", "2016-07-11 01:00:00"))
	ds.Log = append(ds.Log, testinfra.Repeat(testinfra.ArticleHit("a", "200 OK", "2016-07-11 02:00:00"), 98)...)
	store := openPostgresStore(t, ds)

	rows, err := store.Run(context.Background(), ErrorDays())
	require.NoError(t, err)

	assert.Equal(t, []Row{{Label: "11-Jul-2016", Value: 1.01}}, rows)
}
