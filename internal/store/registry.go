package store

import (
	"sort"

	"github.com/systmms/envstore/internal/config"
	eserrors "github.com/systmms/envstore/internal/errors"
	"github.com/systmms/envstore/internal/logging"
	"github.com/systmms/envstore/pkg/paramstore"
)

// Registry creates parameter store backends from configuration.
type Registry struct {
	logger   *logging.Logger
	builders map[string]builderFunc
}

type builderFunc func(name string, cfg config.BackendConfig, logger *logging.Logger) (paramstore.Store, error)

// NewRegistry creates a registry with the built-in backend types.
func NewRegistry(logger *logging.Logger) *Registry {
	return &Registry{
		logger: logger,
		builders: map[string]builderFunc{
			"aws.ssm":            buildSSM,
			"aws.secretsmanager": buildSecretsManager,
		},
	}
}

// Create builds the backend described by cfg.
func (r *Registry) Create(name string, cfg config.BackendConfig) (paramstore.Store, error) {
	builder, ok := r.builders[cfg.Type]
	if !ok {
		return nil, eserrors.ConfigError{
			Field:      "type",
			Value:      cfg.Type,
			Message:    "unknown backend type",
			Suggestion: "Supported types: " + joinSorted(r.SupportedTypes()),
		}
	}
	return builder(name, cfg, r.logger)
}

// SupportedTypes returns the registered backend type names.
func (r *Registry) SupportedTypes() []string {
	types := make([]string, 0, len(r.builders))
	for t := range r.builders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func buildSSM(name string, cfg config.BackendConfig, logger *logging.Logger) (paramstore.Store, error) {
	return NewSSMStore(name, SSMConfig{
		ClientConfig:   clientConfig(cfg),
		Group:          cfg.Group,
		WithDecryption: cfg.WithDecryption,
		KMSKeyID:       cfg.KMSKeyID,
	}, WithSSMLogger(logger))
}

func buildSecretsManager(name string, cfg config.BackendConfig, logger *logging.Logger) (paramstore.Store, error) {
	return NewSecretsStore(name, SecretsConfig{
		ClientConfig: clientConfig(cfg),
		ForceDelete:  cfg.ForceDelete,
	}, WithSecretsLogger(logger))
}

func clientConfig(cfg config.BackendConfig) ClientConfig {
	return ClientConfig{
		Region:          cfg.Region,
		Profile:         cfg.Profile,
		AssumeRole:      cfg.AssumeRole,
		Endpoint:        cfg.Endpoint,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
	}
}

func joinSorted(types []string) string {
	out := ""
	for i, t := range types {
		if i > 0 {
			out += ", "
		}
		out += t
	}
	return out
}
