// Package transformer defines the record-level transform contract used by the
// normalize stage. Transformers operate on the whole unified table in memory.
package transformer

import (
	"fmt"

	"campaign/pkg/records"
)

// Transformer rewrites a slice of records. Implementations may mutate the
// records in place and return the same slice. A non-nil error aborts the
// chain.
type Transformer interface {
	Apply([]records.Record) ([]records.Record, error)
}

// Func adapts a plain function to Transformer.
type Func func([]records.Record) ([]records.Record, error)

// Apply calls f.
func (f Func) Apply(in []records.Record) ([]records.Record, error) { return f(in) }

// Chain is an ordered list of transformers.
type Chain []Transformer

// Apply runs each transformer in order, stopping at the first error. The
// error is wrapped with the failing step's position.
func (c Chain) Apply(in []records.Record) ([]records.Record, error) {
	out := in
	for i, t := range c {
		var err error
		out, err = t.Apply(out)
		if err != nil {
			return nil, fmt.Errorf("transform[%d]: %w", i, err)
		}
	}
	return out, nil
}
