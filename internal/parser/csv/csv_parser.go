// Package csv decodes a comma-separated document into a records.Table. It is
// strict: malformed quoting or a row whose width differs from the header is
// an error rather than a skipped row, since a partial table would silently
// lose clients.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"campaign/pkg/records"
)

// DefaultIndexHeaders are the header names treated as a leading positional
// index column. A spreadsheet export writes the index with an empty header;
// some tools rename it "Unnamed: 0".
var DefaultIndexHeaders = []string{"", "Unnamed: 0"}

// Options configures the CSV parser. Zero values select the defaults.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from header names.
	TrimSpace bool

	// IndexHeaders lists header names that mark the first column as a
	// positional index to discard. Nil means DefaultIndexHeaders; an empty,
	// non-nil slice keeps every column.
	IndexHeaders []string

	// HeaderMap renames source headers to canonical keys.
	HeaderMap map[string]string
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser {
	if opt.IndexHeaders == nil {
		opt.IndexHeaders = DefaultIndexHeaders
	}
	return &Parser{opt: opt}
}

// ErrNoHeader is returned for an empty document.
var ErrNoHeader = errors.New("csv: missing header row")

// Parse reads the whole document from r. A byte-order mark (UTF-8 or
// UTF-16) is honored and removed before the header is read. Empty cells are
// kept as empty strings so pass-through columns round-trip exactly.
func (p *Parser) Parse(r io.Reader) (records.Table, error) {
	dec := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(dec)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}

	header, err := cr.Read()
	if err == io.EOF {
		return records.Table{}, ErrNoHeader
	}
	if err != nil {
		return records.Table{}, fmt.Errorf("read csv header: %w", err)
	}

	cols := p.normalizeHeaders(header)
	skip := 0
	if len(cols) > 0 && p.isIndexHeader(header[0]) {
		skip = 1
	}

	t := records.Table{Columns: append([]string(nil), cols[skip:]...)}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.ParseError already carries the line number.
			return records.Table{}, fmt.Errorf("read csv row: %w", err)
		}
		rec := make(records.Record, len(row)-skip)
		for i := skip; i < len(row); i++ {
			rec[cols[i]] = row[i]
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

func (p *Parser) isIndexHeader(h string) bool {
	h = strings.TrimSpace(h)
	for _, ih := range p.opt.IndexHeaders {
		if h == ih {
			return true
		}
	}
	return false
}

// normalizeHeaders applies TrimSpace and HeaderMap to the header row.
func (p *Parser) normalizeHeaders(h []string) []string {
	res := make([]string, len(h))
	for i, col := range h {
		c := col
		if p.opt.TrimSpace {
			c = strings.TrimSpace(c)
		}
		if m, ok := p.opt.HeaderMap[c]; ok {
			c = m
		}
		res[i] = c
	}
	return res
}
