// Package output writes the normalized table as three column projections.
//
// The output directory is treated as disposable: every run removes it and
// recreates it before writing. In the default mode a failure after that
// reset leaves the directory cleared but incomplete. Atomic mode stages the
// files in a sibling directory and swaps it into place only once every file
// is written.
package output

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/zeebo/xxh3"

	"campaign/internal/etlerr"
	"campaign/internal/schema"
	"campaign/pkg/records"
)

// Options configures a Writer.
type Options struct {
	// Dir is the output directory. It is destroyed and recreated.
	Dir string

	// Atomic stages files in a sibling directory and renames it over Dir.
	Atomic bool

	// Projections to write; nil means schema.Outputs().
	Projections []schema.Projection

	Verbose bool
}

// FileInfo describes one written file.
type FileInfo struct {
	Name  string
	Rows  int
	Bytes int64
	// Hash is the xxh3-64 digest of the file contents.
	Hash uint64
}

// Manifest lists the files of one run in write order.
type Manifest struct {
	Dir   string
	Files []FileInfo
}

// Writer writes projections of a table into a directory.
type Writer struct {
	opt Options
}

// NewWriter returns a Writer for opt.
func NewWriter(opt Options) *Writer {
	if opt.Projections == nil {
		opt.Projections = schema.Outputs()
	}
	return &Writer{opt: opt}
}

// Write resets the output directory and writes every projection of t.
func (w *Writer) Write(ctx context.Context, t records.Table) (Manifest, error) {
	if w.opt.Dir == "" {
		return Manifest{}, etlerr.IO("output.write", "", fmt.Errorf("output directory is empty"))
	}
	if !w.opt.Atomic {
		if err := ReplaceDir(w.opt.Dir); err != nil {
			return Manifest{}, err
		}
		return w.writeAll(ctx, w.opt.Dir, t)
	}

	parent := filepath.Dir(filepath.Clean(w.opt.Dir))
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return Manifest{}, etlerr.IO("output.stage", parent, err)
	}
	stage, err := os.MkdirTemp(parent, "."+filepath.Base(w.opt.Dir)+".staging-")
	if err != nil {
		return Manifest{}, etlerr.IO("output.stage", w.opt.Dir, err)
	}
	m, err := w.writeAll(ctx, stage, t)
	if err != nil {
		_ = os.RemoveAll(stage)
		return Manifest{}, err
	}
	if err := swapDir(stage, w.opt.Dir); err != nil {
		_ = os.RemoveAll(stage)
		return Manifest{}, err
	}
	m.Dir = w.opt.Dir
	return m, nil
}

func (w *Writer) writeAll(ctx context.Context, dir string, t records.Table) (Manifest, error) {
	m := Manifest{Dir: dir}
	for _, p := range w.opt.Projections {
		if err := ctx.Err(); err != nil {
			return Manifest{}, err
		}
		fi, err := writeProjection(filepath.Join(dir, p.File), p.Columns, t.Rows)
		if err != nil {
			return Manifest{}, etlerr.IO("output.write", filepath.Join(dir, p.File), err)
		}
		if w.opt.Verbose {
			log.Printf("output: wrote file=%s rows=%d bytes=%d xxh3=%016x", fi.Name, fi.Rows, fi.Bytes, fi.Hash)
		}
		m.Files = append(m.Files, fi)
	}
	return m, nil
}

// writeProjection writes header plus rows restricted to cols. The content
// is hashed while it is written.
func writeProjection(path string, cols []string, rows []records.Record) (fi FileInfo, err error) {
	f, err := os.Create(path)
	if err != nil {
		return FileInfo{}, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	h := xxh3.New()
	cw := &countWriter{w: io.MultiWriter(f, h)}
	bw := bufio.NewWriter(cw)
	enc := csv.NewWriter(bw)

	if err := enc.Write(cols); err != nil {
		return FileInfo{}, err
	}
	buf := make([]string, len(cols))
	for _, r := range rows {
		for i, c := range cols {
			buf[i] = formatCell(r[c])
		}
		if err := enc.Write(buf); err != nil {
			return FileInfo{}, err
		}
	}
	enc.Flush()
	if err := enc.Error(); err != nil {
		return FileInfo{}, err
	}
	if err := bw.Flush(); err != nil {
		return FileInfo{}, err
	}
	return FileInfo{Name: filepath.Base(path), Rows: len(rows), Bytes: cw.n, Hash: h.Sum64()}, nil
}

// formatCell renders a value as CSV text. nil (the null marker) is an empty
// cell.
func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
