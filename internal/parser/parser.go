// Package parser defines the decoding contract between archive members and
// the in-memory table model.
package parser

import (
	"io"

	"campaign/pkg/records"
)

// Parser decodes one tabular document.
type Parser interface {
	Parse(r io.Reader) (records.Table, error)
}
