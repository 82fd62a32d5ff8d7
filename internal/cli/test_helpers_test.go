package cli

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	return captureFile(t, &os.Stdout, fn)
}

// captureStderr is captureOutput for stderr, where logs and parser errors go.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	return captureFile(t, &os.Stderr, fn)
}

func captureFile(t *testing.T, target **os.File, fn func()) string {
	t.Helper()
	old := *target
	r, w, err := os.Pipe()
	require.NoError(t, err)
	*target = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	fn()

	w.Close()
	*target = old
	return <-done
}

// useSQLite points the config layer at the sqlite3 driver for one test.
func useSQLite(t *testing.T) {
	t.Helper()
	t.Setenv("REPORTS_DATABASE_DRIVER", "sqlite3")
}

const sampleReport = "Top Authors:\n" +
	"\tX - 5 views\n" +
	"\tY - 3 views\n" +
	"\n" +
	"Top 3 Articles:\n" +
	"\tA - 5 views\n" +
	"\tB - 3 views\n" +
	"\n" +
	"Dates with more than 1% error views:\n" +
	"\t01-Jul-2016 - 50.00 % error views\n" +
	"\n"
