// Package records defines the in-memory row and table types shared by the
// reader, transformer, and writer stages.
package records

// Record is a single row keyed by column name. Values read from CSV are
// strings; transformers may replace them with ints or nil (the null marker).
type Record map[string]any

// Table is an ordered set of records plus the column order of its source.
type Table struct {
	// Columns lists the column names in source header order.
	Columns []string

	// Rows holds the records in source order.
	Rows []Record
}

// Len returns the number of rows in t.
func (t Table) Len() int { return len(t.Rows) }

// HasColumn reports whether name is one of t's columns.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Concat joins tables into one unified table. Rows keep concatenation order
// and are not deduplicated. Columns are the union of all input columns in
// first-seen order.
//
// The returned table shares Record maps with its inputs.
func Concat(tables ...Table) Table {
	var (
		out   Table
		seen  = make(map[string]struct{})
		total int
	)
	for _, t := range tables {
		total += len(t.Rows)
		for _, c := range t.Columns {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out.Columns = append(out.Columns, c)
		}
	}
	out.Rows = make([]Record, 0, total)
	for _, t := range tables {
		out.Rows = append(out.Rows, t.Rows...)
	}
	return out
}

// Project returns the values of cols for r in column order. Missing keys
// yield nil.
func (r Record) Project(cols []string) []any {
	out := make([]any, len(cols))
	for i, c := range cols {
		out[i] = r[c]
	}
	return out
}
