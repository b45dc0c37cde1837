package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/systmms/envstore/internal/config"
	"github.com/systmms/envstore/internal/store"
	"github.com/systmms/envstore/pkg/paramstore"
)

// buildStore loads the configuration and constructs the backend selected by
// the --backend flag (or the config default when the flag is empty). The
// second return value is the backend type, used to attach type-specific
// suggestions to operation errors.
func buildStore(cfg *config.Config, backendFlag string) (paramstore.Store, string, error) {
	if err := cfg.Load(); err != nil {
		return nil, "", err
	}

	name, backendCfg, err := cfg.GetBackend(backendFlag)
	if err != nil {
		return nil, "", err
	}

	registry := store.NewRegistry(cfg.Logger)
	st, err := registry.Create(name, backendCfg)
	if err != nil {
		return nil, "", err
	}
	return st, backendCfg.Type, nil
}

// parameterJSON is the stable shape used by --json output.
type parameterJSON struct {
	Path      string `json:"path"`
	Value     string `json:"value,omitempty"`
	Type      string `json:"type"`
	Version   int64  `json:"version"`
	UpdatedAt string `json:"updated_at,omitempty"`
	ARN       string `json:"arn,omitempty"`
}

func toParameterJSON(p paramstore.Parameter, includeValue bool) parameterJSON {
	out := parameterJSON{
		Path:    p.Path,
		Type:    string(p.Type),
		Version: p.Version,
		ARN:     p.ARN,
	}
	if includeValue {
		out.Value = p.Value
	}
	if !p.UpdatedAt.IsZero() {
		out.UpdatedAt = p.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func printParameterJSON(w io.Writer, p paramstore.Parameter, includeValue bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toParameterJSON(p, includeValue))
}

func printParameterTable(w io.Writer, params []paramstore.Parameter, showValues bool) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if showValues {
		fmt.Fprintln(tw, "PATH\tTYPE\tVERSION\tVALUE")
		for _, p := range params {
			value := p.Value
			if p.Type == paramstore.TypeSecret {
				value = "[REDACTED]"
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", p.Path, p.Type, p.Version, value)
		}
	} else {
		fmt.Fprintln(tw, "PATH\tTYPE\tVERSION")
		for _, p := range params {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", p.Path, p.Type, p.Version)
		}
	}
	tw.Flush()
}

// parseTags converts repeated --tag key=value flags into a map.
func parseTags(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	tags := make(map[string]string, len(raw))
	for _, pair := range raw {
		key, value, ok := splitKeyValue(pair)
		if !ok {
			return nil, fmt.Errorf("invalid tag %q: expected key=value", pair)
		}
		tags[key] = value
	}
	return tags, nil
}

func splitKeyValue(s string) (string, string, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '=' {
			if i == 0 {
				return "", "", false
			}
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}
