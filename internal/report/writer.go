// Package report renders query results as labelled text blocks.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/runnerr0/newsreports/internal/storage"
)

// Block is one section of the report file: a header line followed by one
// indented line per row.
type Block struct {
	Header    string
	Suffix    string
	Precision int
	Rows      []storage.Row
}

// NewBlock pairs a query's presentation with the rows it returned.
func NewBlock(q storage.Query, rows []storage.Row) Block {
	return Block{
		Header:    q.Header,
		Suffix:    q.Suffix,
		Precision: q.Precision,
		Rows:      rows,
	}
}

// Render writes b to w:
//
//	<header>
//		<label> - <value> <suffix>
//	(blank line)
func Render(w io.Writer, b Block) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, b.Header)
	for _, r := range b.Rows {
		fmt.Fprintf(bw, "\t%s - %s %s\n", r.Label, r.FormatValue(b.Precision), b.Suffix)
	}
	fmt.Fprintln(bw)
	return bw.Flush()
}

// Append adds b to the end of the file at path, creating it if needed.
// Existing content is never truncated.
func Append(path string, b Block) (err error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open report file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close report file: %w", cerr)
		}
	}()

	if err := Render(f, b); err != nil {
		return fmt.Errorf("write report file: %w", err)
	}
	return nil
}
