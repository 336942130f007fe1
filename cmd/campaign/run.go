package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"campaign/internal/archive"
	"campaign/internal/config"
	"campaign/internal/metrics"
	"campaign/internal/output"
	csvparser "campaign/internal/parser/csv"
	"campaign/internal/report"
	"campaign/internal/schema"
	"campaign/internal/transformer"
	"campaign/internal/transformer/builtin"
	"campaign/internal/transformer/campaign"
	"campaign/pkg/records"
)

// Step names used for metrics and the summary.
const (
	stepRead      = "read"
	stepConcat    = "concat"
	stepNormalize = "normalize"
	stepWrite     = "write"
)

// pipeline runs the four cleaning stages for one configuration.
type pipeline struct {
	cfg     config.Pipeline
	verbose bool
}

// rules is the transform chain applied to the concatenated rows.
func (pl pipeline) rules() transformer.Chain {
	return transformer.Chain{
		builtin.Require{Fields: schema.InputColumns},
		builtin.Normalize{Fields: []string{schema.Job, schema.Education}},
		campaign.Normalizer{Year: pl.cfg.Normalize.Year},
	}
}

// run reads every archive, concatenates, normalizes and writes the three
// projections. The summary is filled as far as the run got, also on error.
func (pl pipeline) run(ctx context.Context) (sum report.Summary, err error) {
	start := time.Now()
	sum.Job = pl.cfg.Job
	defer func() { sum.Elapsed = time.Since(start) }()

	policy, err := archive.ParseMemberPolicy(pl.cfg.Input.Member)
	if err != nil {
		return sum, fmt.Errorf("input.member: %w", err)
	}
	reader := archive.NewReader(csvparser.NewParser(csvparser.Options{}), policy, pl.verbose)

	var tables []records.Table
	err = pl.step(&sum, stepRead, func() error {
		var err error
		tables, err = reader.ReadAll(ctx, pl.cfg.Input.Dir, pl.cfg.Input.Extensions)
		return err
	})
	if err != nil {
		return sum, err
	}
	sum.Archives = len(tables)
	for _, t := range tables {
		sum.RowsRead += t.Len()
	}
	metrics.RecordFiles(pl.cfg.Job, "archive", int64(sum.Archives))
	metrics.RecordRows(pl.cfg.Job, "read", int64(sum.RowsRead))

	var table records.Table
	_ = pl.step(&sum, stepConcat, func() error {
		table = records.Concat(tables...)
		return nil
	})
	if dups := (builtin.KeyAudit{Keys: []string{schema.ClientID}}).Find(table.Rows); len(dups) > 0 {
		sum.DuplicateKeys = len(dups)
		metrics.RecordRows(pl.cfg.Job, "duplicate_key", int64(len(dups)))
		log.Printf("concat: warning: %d client_id values occur more than once (first %q at rows %v)",
			len(dups), dups[0].Key, dups[0].Rows)
	}

	err = pl.step(&sum, stepNormalize, func() error {
		rows, err := pl.rules().Apply(table.Rows)
		if err != nil {
			return err
		}
		table.Rows = rows
		return nil
	})
	if err != nil {
		return sum, err
	}
	metrics.RecordRows(pl.cfg.Job, "normalized", int64(table.Len()))

	w := output.NewWriter(output.Options{
		Dir:     pl.cfg.Output.Dir,
		Atomic:  pl.cfg.Output.Atomic,
		Verbose: pl.verbose,
	})
	var m output.Manifest
	err = pl.step(&sum, stepWrite, func() error {
		var err error
		m, err = w.Write(ctx, table)
		return err
	})
	if err != nil {
		return sum, err
	}
	sum.Files = m.Files
	sum.RowsWritten = table.Len()
	metrics.RecordFiles(pl.cfg.Job, "output", int64(len(m.Files)))
	for _, f := range m.Files {
		metrics.RecordRows(pl.cfg.Job, "written", int64(f.Rows))
	}
	return sum, nil
}

// step times fn, records it as a metric and appends it to the summary.
func (pl pipeline) step(sum *report.Summary, name string, fn func() error) error {
	t0 := time.Now()
	err := fn()
	d := time.Since(t0)

	metrics.RecordStep(pl.cfg.Job, name, err, d)
	sum.Steps = append(sum.Steps, report.Step{Name: name, Duration: d, Err: err})
	if pl.verbose {
		log.Printf("step: name=%s duration=%s ok=%t", name, d.Truncate(time.Microsecond), err == nil)
	}
	return err
}
