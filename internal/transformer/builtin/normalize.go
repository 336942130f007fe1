// Package builtin contains simple, reusable transformers used by the pipeline.
package builtin

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"campaign/pkg/records"
)

// nbsp is U+00A0 NO-BREAK SPACE, common in spreadsheet exports.
const nbsp = "\u00a0"

// Normalize cleans string cells in place: NBSP becomes an ASCII space, the
// value is trimmed of edge whitespace, and the result is put in Unicode NFC
// form. Non-string values are left untouched.
//
// Only the columns in Fields are cleaned; every other cell keeps its source
// text. An empty Fields cleans every string cell.
type Normalize struct {
	Fields []string
}

// Apply implements transformer.Transformer.
func (n Normalize) Apply(in []records.Record) ([]records.Record, error) {
	for _, r := range in {
		if len(n.Fields) == 0 {
			for k, v := range r {
				cleanCell(r, k, v)
			}
			continue
		}
		for _, k := range n.Fields {
			if v, ok := r[k]; ok {
				cleanCell(r, k, v)
			}
		}
	}
	return in, nil
}

func cleanCell(r records.Record, k string, v any) {
	s, ok := v.(string)
	if !ok {
		return
	}
	if c := cleanText(s); c != s {
		r[k] = c
	}
}

func cleanText(s string) string {
	if strings.Contains(s, nbsp) {
		s = strings.ReplaceAll(s, nbsp, " ")
	}
	if HasEdgeSpace(s) {
		s = strings.TrimSpace(s)
	}
	if !norm.NFC.IsNormalString(s) {
		s = norm.NFC.String(s)
	}
	return s
}

// HasEdgeSpace reports whether s starts or ends with ASCII whitespace
// (space, tab, LF, CR).
func HasEdgeSpace(s string) bool {
	if s == "" {
		return false
	}
	return isASCIISpace(s[0]) || isASCIISpace(s[len(s)-1])
}

func isASCIISpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
