package config

import (
	"fmt"
	"os"
	"sort"

	eserrors "github.com/systmms/envstore/internal/errors"
	"github.com/systmms/envstore/internal/logging"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "envstore.yaml"

// Config holds the runtime configuration
type Config struct {
	Path       string
	Logger     *logging.Logger
	Definition *Definition
}

// Definition represents the envstore.yaml structure
type Definition struct {
	Version        int                      `yaml:"version" json:"version"`
	DefaultBackend string                   `yaml:"default_backend,omitempty" json:"default_backend,omitempty"`
	Backends       map[string]BackendConfig `yaml:"backends" json:"backends"`
}

// BackendConfig holds one backend's settings. Fields are explicit and
// validated; unrecognized keys are rejected by the schema.
type BackendConfig struct {
	// Type selects the backend implementation: aws.ssm or
	// aws.secretsmanager.
	Type string `yaml:"type" json:"type"`

	Region          string `yaml:"region,omitempty" json:"region,omitempty"`
	Profile         string `yaml:"profile,omitempty" json:"profile,omitempty"`
	AssumeRole      string `yaml:"assume_role,omitempty" json:"assume_role,omitempty"`
	Endpoint        string `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	AccessKeyID     string `yaml:"access_key_id,omitempty" json:"access_key_id,omitempty"`
	SecretAccessKey string `yaml:"secret_access_key,omitempty" json:"secret_access_key,omitempty"`

	// Group is an aws.ssm path prefix prepended to every parameter path.
	Group string `yaml:"group,omitempty" json:"group,omitempty"`

	// WithDecryption controls decryption of secret parameters on reads
	// (aws.ssm only). Defaults to true.
	WithDecryption *bool `yaml:"with_decryption,omitempty" json:"with_decryption,omitempty"`

	// KMSKeyID is the default encryption key for secret-typed writes.
	KMSKeyID string `yaml:"kms_key_id,omitempty" json:"kms_key_id,omitempty"`

	// ForceDelete skips the Secrets Manager recovery window on deletes.
	ForceDelete bool `yaml:"force_delete,omitempty" json:"force_delete,omitempty"`
}

// Load reads and validates the configuration file.
func (c *Config) Load() error {
	path := c.Path
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return eserrors.ConfigError{
				Field:      "config",
				Value:      path,
				Message:    "configuration file not found",
				Suggestion: "Run 'envstore init' to create a starter envstore.yaml",
			}
		}
		return eserrors.SimplifyError(err)
	}

	if err := validateSchema(data); err != nil {
		return err
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return eserrors.ConfigError{
			Field:      "config",
			Value:      path,
			Message:    fmt.Sprintf("invalid YAML: %v", err),
			Suggestion: "Check for indentation errors and missing quotes",
		}
	}

	if err := def.validate(); err != nil {
		return err
	}

	c.Definition = &def
	return nil
}

// validate applies the checks the schema cannot express.
func (d *Definition) validate() error {
	if len(d.Backends) == 0 {
		return eserrors.ConfigError{
			Field:      "backends",
			Message:    "no backends configured",
			Suggestion: "Add at least one backend with type aws.ssm or aws.secretsmanager",
		}
	}

	if d.DefaultBackend != "" {
		if _, ok := d.Backends[d.DefaultBackend]; !ok {
			return eserrors.ConfigError{
				Field:      "default_backend",
				Value:      d.DefaultBackend,
				Message:    "default backend is not defined under 'backends'",
				Suggestion: fmt.Sprintf("Define backends.%s or point default_backend at one of: %v", d.DefaultBackend, d.backendNames()),
			}
		}
	}

	return nil
}

func (d *Definition) backendNames() []string {
	names := make([]string, 0, len(d.Backends))
	for name := range d.Backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetBackend resolves a backend by name. An empty name selects the
// configured default, or the sole backend when only one is defined.
func (c *Config) GetBackend(name string) (string, BackendConfig, error) {
	if c.Definition == nil {
		return "", BackendConfig{}, eserrors.ConfigError{
			Message:    "configuration not loaded",
			Suggestion: "Call Load() before GetBackend()",
		}
	}

	def := c.Definition
	if name == "" {
		switch {
		case def.DefaultBackend != "":
			name = def.DefaultBackend
		case len(def.Backends) == 1:
			name = def.backendNames()[0]
		default:
			return "", BackendConfig{}, eserrors.ConfigError{
				Field:      "backend",
				Message:    "multiple backends configured and no default set",
				Suggestion: fmt.Sprintf("Pass --backend or set default_backend to one of: %v", def.backendNames()),
			}
		}
	}

	backend, ok := def.Backends[name]
	if !ok {
		return "", BackendConfig{}, eserrors.ConfigError{
			Field:      "backend",
			Value:      name,
			Message:    "backend not found",
			Suggestion: fmt.Sprintf("Available backends: %v", def.backendNames()),
		}
	}
	return name, backend, nil
}
