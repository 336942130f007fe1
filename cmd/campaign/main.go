// Command campaign cleans the bank marketing campaign export.
//
// It reads every archive in the input directory, concatenates their CSV
// tables, normalizes the coded columns and writes client.csv, campaign.csv
// and economics.csv into the output directory, which is reset first.
//
// Usage:
//
//	campaign [-config pipeline.yaml] [-input files/input] [-output files/output]
//	         [-metrics-backend none|pushgateway|datadog] [-validate] [-v]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"campaign/internal/config"
	"campaign/internal/etlerr"
	"campaign/internal/metrics"
	"campaign/internal/metrics/datadog"
	"campaign/internal/metrics/prompush"
)

// Exit codes.
const (
	exitOK       = 0
	exitFailure  = 1
	exitConfig   = 2
	exitNotFound = 3
	exitParse    = 4
	exitDomain   = 5
	exitIO       = 6
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := realMain(ctx, os.Args[1:], os.Getenv, os.Stderr)
	stop()
	os.Exit(code)
}

// realMain parses args, resolves the configuration (flag, then env, then
// file, then defaults), runs the pipeline and returns the process exit code.
func realMain(ctx context.Context, args []string, getenv func(string) string, stderr io.Writer) int {
	fs := flag.NewFlagSet("campaign", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		cfgPath        = fs.String("config", "", "pipeline config file (YAML or JSON); optional")
		inputDir       = fs.String("input", config.DefaultInputDir, "directory scanned for archives (overrides env CAMPAIGN_INPUT_DIR)")
		outputDir      = fs.String("output", config.DefaultOutputDir, "output directory, reset on every run (overrides env CAMPAIGN_OUTPUT_DIR)")
		metricsBackend = fs.String("metrics-backend", config.DefaultBackend, "metrics backend to use (none, pushgateway, datadog)")
		pushGatewayURL = fs.String("pushgateway-url", config.DefaultPushURL, "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
		dogStatsDAddr  = fs.String("dogstatsd-addr", config.DefaultStatsAddr, "DogStatsD address (overrides env DOGSTATSD_ADDR)")
		validate       = fs.Bool("validate", false, "validate the configuration and exit")
		verbose        = fs.Bool("v", false, "enable verbose logs")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitConfig
	}

	p, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return exitConfig
	}
	p.ApplyEnv(getenv)

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			p.Input.Dir = *inputDir
		case "output":
			p.Output.Dir = *outputDir
		case "metrics-backend":
			p.Metrics.Backend = *metricsBackend
		case "pushgateway-url":
			p.Metrics.PushgatewayURL = *pushGatewayURL
		case "dogstatsd-addr":
			p.Metrics.DogStatsDAddr = *dogStatsDAddr
		}
	})

	issues := config.ValidatePipeline(p)
	for _, iss := range issues {
		fmt.Fprintf(stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		log.Printf("Configuration is invalid: %v", describeConfig(*cfgPath))
		return exitConfig
	}
	if *validate {
		log.Printf("Configuration is valid: %v", describeConfig(*cfgPath))
		return exitOK
	}

	flush := setupMetrics(p, *verbose)
	defer flush()

	if *verbose {
		log.Printf("pipeline: job=%s input=%s extensions=%v member=%s output=%s atomic=%t year=%d",
			p.Job, p.Input.Dir, p.Input.Extensions, p.Input.Member, p.Output.Dir, p.Output.Atomic, p.Normalize.Year)
	}

	sum, err := pipeline{cfg: p, verbose: *verbose}.run(ctx)
	if isTerminal(stderr) {
		_ = sum.WriteTable(stderr)
	} else {
		log.Print(sum.Line())
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitCode(err)
	}
	return exitOK
}

// setupMetrics installs the configured backend and returns a function that
// flushes it. Backend errors are logged and leave metrics disabled.
func setupMetrics(p config.Pipeline, verbose bool) func() {
	var (
		b   metrics.Backend
		err error
	)
	switch strings.ToLower(strings.TrimSpace(p.Metrics.Backend)) {
	case "pushgateway":
		b, err = prompush.NewBackend(p.Job, p.Metrics.PushgatewayURL)
		if err == nil {
			log.Printf("metrics: url=%v, backend=%v, job_name=%v", p.Metrics.PushgatewayURL, p.Metrics.Backend, p.Job)
		}
	case "datadog":
		b, err = datadog.NewBackend(datadog.Config{
			Addr:       p.Metrics.DogStatsDAddr,
			Namespace:  p.Metrics.Namespace,
			GlobalTags: p.Metrics.Tags,
		})
		if err == nil {
			log.Printf("metrics: addr=%v, backend=%v, namespace=%q", p.Metrics.DogStatsDAddr, p.Metrics.Backend, p.Metrics.Namespace)
		}
	default:
		if verbose {
			log.Printf("metrics: disabled (backend=%q)", p.Metrics.Backend)
		}
		return func() {}
	}
	if err != nil {
		log.Printf("metrics: failed to init %s backend: %v; using nop", p.Metrics.Backend, err)
		return func() {}
	}

	metrics.SetBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}
}

// exitCode maps an error onto the process exit code by its kind.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, etlerr.ErrNotFound):
		return exitNotFound
	case errors.Is(err, etlerr.ErrParse):
		return exitParse
	case errors.Is(err, etlerr.ErrDomain):
		return exitDomain
	case errors.Is(err, etlerr.ErrIO):
		return exitIO
	default:
		return exitFailure
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func describeConfig(path string) string {
	if path == "" {
		return "(defaults)"
	}
	return path
}
