package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	pkgerrors "github.com/pkg/errors"
)

const (
	DefaultBaseURL  = "https://sandbox.alloy.co/v1"
	DefaultWorkflow = "shelli_test_workflow_id"
)

// Config describes the credentials and endpoint settings read from the environment.
type Config struct {
	WorkflowToken  string        `envconfig:"WORKFLOW_TOKEN"`
	WorkflowSecret string        `envconfig:"WORKFLOW_SECRET"`
	BaseURL        string        `envconfig:"ALLOY_BASE_URL" default:"https://sandbox.alloy.co/v1"`
	Workflow       string        `envconfig:"ALLOY_WORKFLOW" default:"shelli_test_workflow_id"`
	Timeout        time.Duration `envconfig:"ALLOY_TIMEOUT" default:"0s"`
}

// ConfigError reports configuration that is missing or unusable. It is raised
// before any request is attempted.
type ConfigError struct {
	Missing []string
	Err     error
}

func (e *ConfigError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("configuration error: %s must be set", strings.Join(e.Missing, ", "))
	}
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
	return "configuration error"
}

func (e *ConfigError) Unwrap() error { return e.Err }

// LoadEnvFiles loads the first readable dotenv file from paths into the
// process environment. Variables already set are left untouched. Missing
// files are skipped; the returned path is empty when none was found.
func LoadEnvFiles(paths ...string) (string, error) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		err := godotenv.Load(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", pkgerrors.Wrapf(err, "load env file %s", path)
		}
		return path, nil
	}
	return "", nil
}

// FromEnv decodes the configuration from environment variables and validates it.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, &ConfigError{Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load seeds the environment from the first dotenv file found in paths and
// then decodes the configuration from it.
func Load(paths ...string) (*Config, error) {
	if _, err := LoadEnvFiles(paths...); err != nil {
		return nil, &ConfigError{Err: err}
	}
	return FromEnv()
}

// Validate checks that both workflow credentials are present.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.WorkflowToken) == "" {
		missing = append(missing, "WORKFLOW_TOKEN")
	}
	if strings.TrimSpace(c.WorkflowSecret) == "" {
		missing = append(missing, "WORKFLOW_SECRET")
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	if c.Timeout < 0 {
		return &ConfigError{Err: fmt.Errorf("ALLOY_TIMEOUT must not be negative, got %s", c.Timeout)}
	}
	return nil
}
