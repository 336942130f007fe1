package builtin

import (
	"fmt"
	"strings"

	"campaign/pkg/records"
)

// Duplicate is one key that occurs in more than one record.
type Duplicate struct {
	Key string
	// Rows are the 1-based positions of the records sharing Key.
	Rows []int
}

// KeyAudit finds records sharing the same business key. It never removes
// records; concatenated inputs keep every row, and the audit only reports
// keys that would make a join across the output tables ambiguous.
//
// A record's key is the concatenation of Keys as strings (nil -> "\x00").
// Records lacking any key field are skipped.
type KeyAudit struct {
	Keys []string
}

// Find returns the duplicated keys in order of first occurrence.
func (a KeyAudit) Find(in []records.Record) []Duplicate {
	if len(in) == 0 || len(a.Keys) == 0 {
		return nil
	}

	rows := make(map[string][]int, len(in))
	var order []string
	for i, r := range in {
		key, ok := a.keyOf(r)
		if !ok {
			continue
		}
		if _, seen := rows[key]; !seen {
			order = append(order, key)
		}
		rows[key] = append(rows[key], i+1)
	}

	var out []Duplicate
	for _, k := range order {
		if len(rows[k]) > 1 {
			out = append(out, Duplicate{Key: k, Rows: rows[k]})
		}
	}
	return out
}

func (a KeyAudit) keyOf(r records.Record) (string, bool) {
	var b strings.Builder
	for i, k := range a.Keys {
		v, ok := r[k]
		if !ok {
			return "", false
		}
		if i > 0 {
			b.WriteByte('\x1f')
		}
		switch t := v.(type) {
		case nil:
			b.WriteByte('\x00')
		case string:
			b.WriteString(t)
		default:
			b.WriteString(fmt.Sprint(t))
		}
	}
	return b.String(), true
}
