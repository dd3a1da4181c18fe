package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied when a field is left out of the file.
const (
	DefaultTrials                    = 5
	DefaultAllPairsMaxNodes          = 100_000
	DefaultDistanceMatrixBudgetBytes = 126_000_000_000
)

type Config struct {
	Trials      int         `yaml:"trials"`
	Guards      Guards      `yaml:"guards"`
	Backends    []string    `yaml:"backends"`
	Results     Results     `yaml:"results"`
	Isomorphism Isomorphism `yaml:"isomorphism"`
	Report      Report      `yaml:"report"`
	Metrics     Metrics     `yaml:"metrics"`
	Log         Log         `yaml:"log"`
}

// Guards skip operations predicted to be too expensive before they start.
type Guards struct {
	// AllPairsMaxNodes: all-pairs runs only when node count is below it.
	AllPairsMaxNodes int `yaml:"all_pairs_max_nodes"`
	// DistanceMatrixBudgetBytes: the distance matrix runs only when
	// nodes*nodes*8 is below it.
	DistanceMatrixBudgetBytes float64 `yaml:"distance_matrix_budget_bytes"`
}

type Results struct {
	Dir string `yaml:"dir"`
}

// Isomorphism describes the ARG Database directory layout:
// <root>/<prefix>/<group>/<type>/.
type Isomorphism struct {
	Prefixes []string            `yaml:"prefixes"`
	Groups   map[string][]string `yaml:"groups"`
}

// Report configures the report command. An empty ChartsDir draws charts
// next to the results being reported.
type Report struct {
	Theme     string   `yaml:"theme"`
	TexExport bool     `yaml:"tex_export"`
	Charts    bool     `yaml:"charts"`
	ChartsDir string   `yaml:"charts_dir"`
	Format    string   `yaml:"format"`
	PathFiles []string `yaml:"path_files"`
}

type Metrics struct {
	Textfile string `yaml:"textfile"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadOrDefault loads path, falling back to Default when the file does not
// exist and was not asked for explicitly.
func LoadOrDefault(path string, explicit bool) (*Config, error) {
	cfg, err := Load(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func applyDefaults(cfg *Config) {
	if cfg.Trials == 0 {
		cfg.Trials = DefaultTrials
	}
	if cfg.Guards.AllPairsMaxNodes == 0 {
		cfg.Guards.AllPairsMaxNodes = DefaultAllPairsMaxNodes
	}
	if cfg.Guards.DistanceMatrixBudgetBytes == 0 {
		cfg.Guards.DistanceMatrixBudgetBytes = DefaultDistanceMatrixBudgetBytes
	}
	if cfg.Results.Dir == "" {
		cfg.Results.Dir = "."
	}
	if len(cfg.Isomorphism.Prefixes) == 0 {
		cfg.Isomorphism.Prefixes = []string{"si6", "si4", "si2"}
	}
	if len(cfg.Isomorphism.Groups) == 0 {
		cfg.Isomorphism.Groups = map[string][]string{"bvg": {"b03", "b06", "b09"}}
	}
	if cfg.Report.Theme == "" {
		cfg.Report.Theme = "default"
	}
	if cfg.Report.Format == "" {
		cfg.Report.Format = "table"
	}
	if len(cfg.Report.PathFiles) == 0 {
		cfg.Report.PathFiles = []string{"USA-road-1.USA", "USA-road-d.USA", "USA-road-t.USA", "USA-road-d.NY", "USA-road-t.NY", "rome99.gr"}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

func validate(cfg *Config) error {
	if cfg.Trials < 1 {
		return fmt.Errorf("trials must be at least 1")
	}
	if cfg.Guards.AllPairsMaxNodes < 0 {
		return fmt.Errorf("guards.all_pairs_max_nodes must not be negative")
	}
	if cfg.Guards.DistanceMatrixBudgetBytes < 0 {
		return fmt.Errorf("guards.distance_matrix_budget_bytes must not be negative")
	}
	seen := map[string]bool{}
	for i, b := range cfg.Backends {
		if b == "" {
			return fmt.Errorf("backend %d: name is required", i)
		}
		if seen[b] {
			return fmt.Errorf("backend %q listed twice", b)
		}
		seen[b] = true
	}
	switch cfg.Report.Theme {
	case "default", "plain":
	default:
		return fmt.Errorf("report.theme must be default or plain, got %q", cfg.Report.Theme)
	}
	switch cfg.Report.Format {
	case "table", "markdown", "json":
	default:
		return fmt.Errorf("report.format must be table, markdown or json, got %q", cfg.Report.Format)
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", cfg.Log.Format)
	}
	return nil
}
