// Package suiteconfig locates the corpus on disk. Everything has a default
// matching the conventional suite layout; a suite.yaml can override any of it.
package suiteconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	coreerrors "github.com/arpitjain799/jsonschema/core/errors"
)

// DefaultPath is where Load looks when no --config flag is given.
const DefaultPath = "suite.yaml"

type Config struct {
	TestsDir       string `yaml:"tests_dir"`
	OutputTestsDir string `yaml:"output_tests_dir"`
	RemotesDir     string `yaml:"remotes_dir"`
	BaseURL        string `yaml:"base_url"`
	ServePort      int    `yaml:"serve_port"`
}

func Default() Config {
	return Config{
		TestsDir:       "tests",
		OutputTestsDir: "output-tests",
		RemotesDir:     "remotes",
		BaseURL:        "http://localhost:1234/",
		ServePort:      1234,
	}
}

// Load reads a config file and fills unset fields from the defaults. A
// missing file at the default path is not an error; an explicitly named file
// must exist.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultPath {
			return Default(), nil
		}
		return Config{}, coreerrors.Wrap(fmt.Errorf("read config: %w", err), coreerrors.CategoryInvalidInput, "")
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, coreerrors.Wrap(fmt.Errorf("parse config %s: %w", path, err), coreerrors.CategoryInvalidInput, "")
	}
	return withDefaults(cfg), nil
}

func withDefaults(cfg Config) Config {
	defaults := Default()
	if cfg.TestsDir == "" {
		cfg.TestsDir = defaults.TestsDir
	}
	if cfg.OutputTestsDir == "" {
		cfg.OutputTestsDir = defaults.OutputTestsDir
	}
	if cfg.RemotesDir == "" {
		cfg.RemotesDir = defaults.RemotesDir
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.ServePort == 0 {
		cfg.ServePort = defaults.ServePort
	}
	return cfg
}
