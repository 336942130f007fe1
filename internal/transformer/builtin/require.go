package builtin

import (
	"fmt"

	"campaign/internal/etlerr"
	"campaign/pkg/records"
)

// Require fails the chain when any record lacks one of Fields. A present
// key with a nil or empty value is accepted; only absent columns fail.
type Require struct {
	Fields []string
}

// Apply returns in unchanged, or a parse error naming the first row and
// column found missing.
func (r Require) Apply(in []records.Record) ([]records.Record, error) {
	for i, rec := range in {
		for _, f := range r.Fields {
			if _, ok := rec[f]; !ok {
				return nil, etlerr.Parse("require", fmt.Sprintf("row %d", i+1),
					fmt.Errorf("missing column %q", f))
			}
		}
	}
	return in, nil
}
