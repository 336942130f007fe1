package config

// This file adds a lightweight linter/validator for Pipeline values. It
// performs static checks over a decoded Pipeline and returns a list of issues
// (errors and warnings) that callers can surface in a CLI or tests.

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"campaign/internal/archive"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation/lint finding for a Pipeline.
//
// Path is a dotted path into the config (e.g. "input.dir",
// "input.extensions[1]"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue has SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidatePipeline performs static validation / linting of a Pipeline.
//
// It does not mutate the pipeline. Callers may decide whether to treat
// warnings as fatal or not.
//
// Example:
//
//	p, err := config.Load(path)
//	if err != nil { ... }
//	for _, iss := range config.ValidatePipeline(p) {
//	    fmt.Printf("%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
//	}
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it is used for metrics labeling and identifying runs",
		})
	}
	issues = append(issues, validateInput(p.Input)...)
	issues = append(issues, validateOutput(p.Output, p.Input)...)
	issues = append(issues, validateNormalize(p.Normalize)...)
	issues = append(issues, validateMetrics(p.Metrics)...)

	return issues
}

func validateInput(in Input) []Issue {
	var issues []Issue

	if strings.TrimSpace(in.Dir) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "input.dir",
			Message:  "input.dir is required",
		})
	}

	if len(in.Extensions) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "input.extensions",
			Message:  fmt.Sprintf("at least one archive extension is required (supported: %s)", strings.Join(archive.Extensions(), ", ")),
		})
	}
	seen := make(map[string]bool, len(in.Extensions))
	for i, e := range in.Extensions {
		path := fmt.Sprintf("input.extensions[%d]", i)
		switch {
		case !strings.HasPrefix(e, "."):
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path,
				Message:  fmt.Sprintf("extension %q must start with a dot", e),
			})
		case !archive.Supported(filepath.Ext(e)):
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path,
				Message:  fmt.Sprintf("unsupported archive format %q (supported: %s)", e, strings.Join(archive.Extensions(), ", ")),
			})
		case seen[strings.ToLower(e)]:
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     path,
				Message:  fmt.Sprintf("duplicate extension %q", e),
			})
		}
		seen[strings.ToLower(e)] = true
	}

	if _, err := archive.ParseMemberPolicy(in.Member); err != nil {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "input.member",
			Message:  err.Error(),
		})
	}

	return issues
}

// validateOutput rejects output directories that would destroy the input
// on reset.
func validateOutput(out Output, in Input) []Issue {
	var issues []Issue

	dir := strings.TrimSpace(out.Dir)
	if dir == "" {
		return append(issues, Issue{
			Severity: SeverityError,
			Path:     "output.dir",
			Message:  "output.dir is required",
		})
	}

	clean := filepath.Clean(dir)
	if clean == "." || clean == string(filepath.Separator) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output.dir",
			Message:  fmt.Sprintf("refusing to reset %q; the output directory is deleted on every run", dir),
		})
	}
	if strings.TrimSpace(in.Dir) != "" && within(filepath.Clean(in.Dir), clean) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output.dir",
			Message:  fmt.Sprintf("output.dir %q contains input.dir %q and would delete it", dir, in.Dir),
		})
	}

	return issues
}

// within reports whether child equals parent or lies below it.
func within(child, parent string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func validateNormalize(n Normalize) []Issue {
	if n.Year < 1 || n.Year > 9999 {
		return []Issue{{
			Severity: SeverityError,
			Path:     "normalize.year",
			Message:  fmt.Sprintf("year %d out of range 1..9999", n.Year),
		}}
	}
	return nil
}

func validateMetrics(m Metrics) []Issue {
	var issues []Issue

	switch strings.ToLower(strings.TrimSpace(m.Backend)) {
	case "", "none":
	case "pushgateway":
		u, err := url.Parse(m.PushgatewayURL)
		if strings.TrimSpace(m.PushgatewayURL) == "" || err != nil || u.Scheme == "" || u.Host == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.pushgateway_url",
				Message:  fmt.Sprintf("pushgateway backend needs an absolute URL, got %q", m.PushgatewayURL),
			})
		}
	case "datadog":
		if strings.TrimSpace(m.DogStatsDAddr) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.dogstatsd_addr",
				Message:  "datadog backend needs a DogStatsD address",
			})
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unsupported metrics backend %q (want none, pushgateway or datadog)", m.Backend),
		})
	}

	for i, tag := range m.Tags {
		if !strings.Contains(tag, ":") {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     fmt.Sprintf("metrics.tags[%d]", i),
				Message:  fmt.Sprintf("tag %q is not in key:value form", tag),
			})
		}
	}

	return issues
}
