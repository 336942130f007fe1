// Package report renders the end-of-run summary of the cleaning pipeline.
//
// On a terminal the summary is a pair of width-aligned tables (steps and
// output files). Elsewhere it collapses into one "summary:" line that log
// scrapers can parse.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"campaign/internal/output"
)

// Step is the outcome of one pipeline stage.
type Step struct {
	Name     string
	Duration time.Duration
	Err      error
}

// Summary collects the counters of one run.
type Summary struct {
	Job         string
	Archives    int
	RowsRead    int
	RowsWritten int

	// DuplicateKeys counts client_id values shared by several rows.
	DuplicateKeys int

	Steps   []Step
	Files   []output.FileInfo
	Elapsed time.Duration
}

// Failed reports whether any step failed.
func (s Summary) Failed() bool {
	for _, st := range s.Steps {
		if st.Err != nil {
			return true
		}
	}
	return false
}

// Line renders the summary as a single key=value line.
func (s Summary) Line() string {
	status := "success"
	if s.Failed() {
		status = "failure"
	}
	return fmt.Sprintf("summary: job=%s status=%s archives=%d rows_read=%d rows_written=%d duplicate_keys=%d files=%d elapsed=%s",
		s.Job, status, s.Archives, s.RowsRead, s.RowsWritten, s.DuplicateKeys, len(s.Files), s.Elapsed.Truncate(time.Millisecond))
}

// WriteTable renders the summary as aligned tables.
func (s Summary) WriteTable(w io.Writer) error {
	steps := [][]string{{"step", "status", "duration"}}
	for _, st := range s.Steps {
		status := "ok"
		if st.Err != nil {
			status = "failed"
		}
		steps = append(steps, []string{st.Name, status, st.Duration.Truncate(time.Microsecond).String()})
	}

	files := [][]string{{"file", "rows", "bytes", "xxh3"}}
	for _, f := range s.Files {
		files = append(files, []string{f.Name, fmt.Sprint(f.Rows), fmt.Sprint(f.Bytes), fmt.Sprintf("%016x", f.Hash)})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "job %s: %d archives, %d rows read, %d rows written in %s\n",
		s.Job, s.Archives, s.RowsRead, s.RowsWritten, s.Elapsed.Truncate(time.Millisecond))
	if s.DuplicateKeys > 0 {
		fmt.Fprintf(&b, "warning: %d duplicated client_id values\n", s.DuplicateKeys)
	}
	b.WriteByte('\n')
	for _, line := range Table(steps) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if len(s.Files) > 0 {
		b.WriteByte('\n')
		for _, line := range Table(files) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Table lays out rows as a pipe table. The first row is the header and is
// followed by a dashed separator. Columns are padded by display width, so
// wide runes line up.
func Table(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}

	widths := make([]int, cols)
	for _, r := range rows {
		for i, c := range r {
			if w := runewidth.StringWidth(c); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	line := func(r []string) string {
		var sb strings.Builder
		sb.WriteString("|")
		for i := 0; i < cols; i++ {
			content := ""
			if i < len(r) {
				content = r[i]
			}
			sb.WriteString(" ")
			sb.WriteString(runewidth.FillRight(content, widths[i]))
			sb.WriteString(" |")
		}
		return sb.String()
	}

	out := make([]string, 0, len(rows)+1)
	out = append(out, line(rows[0]))
	sep := make([]string, cols)
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	out = append(out, line(sep))
	for _, r := range rows[1:] {
		out = append(out, line(r))
	}
	return out
}
