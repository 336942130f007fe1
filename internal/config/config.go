// Package config defines the configuration model for the campaign cleaning
// pipeline. Every field has a default, so an empty file (or no file at all)
// reproduces the reference run: read archives from files/input and write
// the three tables to files/output.
//
// Files are decoded with gopkg.in/yaml.v3, which also accepts JSON.
//
// Example:
//
//	job: campaign_clean
//	input:
//	  dir: files/input
//	  extensions: [".zip"]
//	  member: first
//	output:
//	  dir: files/output
//	  atomic: false
//	normalize:
//	  year: 2022
//	metrics:
//	  backend: pushgateway
//	  pushgateway_url: http://localhost:9091
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied by Default and Load.
const (
	DefaultJob       = "campaign_clean"
	DefaultInputDir  = "files/input"
	DefaultOutputDir = "files/output"
	DefaultYear      = 2022
	DefaultBackend   = "none"
	DefaultPushURL   = "http://localhost:9091"
	DefaultStatsAddr = "127.0.0.1:8125"
)

// Pipeline is the top-level configuration object.
type Pipeline struct {
	// Job names the run for metrics grouping.
	Job string `yaml:"job" json:"job"`

	Input     Input     `yaml:"input" json:"input"`
	Output    Output    `yaml:"output" json:"output"`
	Normalize Normalize `yaml:"normalize" json:"normalize"`
	Metrics   Metrics   `yaml:"metrics" json:"metrics"`
}

// Input configures archive discovery.
type Input struct {
	// Dir is scanned (non-recursively) for archives.
	Dir string `yaml:"dir" json:"dir"`

	// Extensions are the archive suffixes to pick up, e.g. ".zip".
	Extensions []string `yaml:"extensions" json:"extensions"`

	// Member selects the archive entry to read: "first" or "first-csv".
	Member string `yaml:"member" json:"member"`
}

// Output configures the output directory.
type Output struct {
	// Dir is deleted and recreated on every run.
	Dir string `yaml:"dir" json:"dir"`

	// Atomic stages files in a sibling directory and renames it into place.
	Atomic bool `yaml:"atomic" json:"atomic"`
}

// Normalize configures the column rules.
type Normalize struct {
	// Year prefixes last_contact_day.
	Year int `yaml:"year" json:"year"`
}

// Metrics selects and configures the metrics backend.
type Metrics struct {
	// Backend is "none", "pushgateway", or "datadog".
	Backend        string   `yaml:"backend" json:"backend"`
	PushgatewayURL string   `yaml:"pushgateway_url" json:"pushgateway_url"`
	DogStatsDAddr  string   `yaml:"dogstatsd_addr" json:"dogstatsd_addr"`
	Namespace      string   `yaml:"namespace" json:"namespace"`
	Tags           []string `yaml:"tags" json:"tags"`
}

// Default returns the configuration of the reference run.
func Default() Pipeline {
	return Pipeline{
		Job: DefaultJob,
		Input: Input{
			Dir:        DefaultInputDir,
			Extensions: []string{".zip"},
			Member:     "first",
		},
		Output:    Output{Dir: DefaultOutputDir},
		Normalize: Normalize{Year: DefaultYear},
		Metrics: Metrics{
			Backend:        DefaultBackend,
			PushgatewayURL: DefaultPushURL,
			DogStatsDAddr:  DefaultStatsAddr,
		},
	}
}

// Decode reads a YAML or JSON document from r on top of Default. Unknown
// keys are rejected so typos surface as errors.
func Decode(r io.Reader) (Pipeline, error) {
	p := Default()
	b, err := io.ReadAll(r)
	if err != nil {
		return Pipeline{}, fmt.Errorf("read config: %w", err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return p, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return Pipeline{}, fmt.Errorf("decode config: %w", err)
	}
	p.fillDefaults()
	return p, nil
}

// Load decodes the file at path. An empty path returns Default.
func Load(path string) (Pipeline, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Pipeline{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// ApplyEnv overrides fields from environment variables, looked up with
// getenv (os.Getenv in production). Empty values are ignored.
//
//	CAMPAIGN_INPUT_DIR, CAMPAIGN_OUTPUT_DIR, METRICS_BACKEND,
//	PUSHGATEWAY_URL, DOGSTATSD_ADDR
func (p *Pipeline) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&p.Input.Dir, "CAMPAIGN_INPUT_DIR")
	set(&p.Output.Dir, "CAMPAIGN_OUTPUT_DIR")
	set(&p.Metrics.Backend, "METRICS_BACKEND")
	set(&p.Metrics.PushgatewayURL, "PUSHGATEWAY_URL")
	set(&p.Metrics.DogStatsDAddr, "DOGSTATSD_ADDR")
}

// fillDefaults restores defaults for fields a document explicitly blanked.
func (p *Pipeline) fillDefaults() {
	d := Default()
	if p.Job == "" {
		p.Job = d.Job
	}
	if p.Input.Dir == "" {
		p.Input.Dir = d.Input.Dir
	}
	if len(p.Input.Extensions) == 0 {
		p.Input.Extensions = d.Input.Extensions
	}
	if p.Input.Member == "" {
		p.Input.Member = d.Input.Member
	}
	if p.Output.Dir == "" {
		p.Output.Dir = d.Output.Dir
	}
	if p.Normalize.Year == 0 {
		p.Normalize.Year = d.Normalize.Year
	}
	if p.Metrics.Backend == "" {
		p.Metrics.Backend = d.Metrics.Backend
	}
}
