// Package config resolves the step configuration from its inputs.
package config

import (
	"strings"

	"github.com/systmms/vaultstep/internal/actions"
	dserrors "github.com/systmms/vaultstep/internal/errors"
	"github.com/systmms/vaultstep/internal/secure"
)

// Input names, as declared in action.yml.
const (
	InputURL          = "url"
	InputToken        = "token"
	InputSecrets      = "secrets"
	InputKVVersion    = "kv-version"
	InputExtraHeaders = "extraHeaders"
	InputExportToken  = "exportToken"
	InputNamespace    = "namespace"
)

// DefaultKVVersion is used when kv-version is not set.
const DefaultKVVersion = "2"

// Config holds the resolved step inputs. The token is sealed as soon as it
// is read; the caller owns it and must Destroy it.
type Config struct {
	URL          string
	Token        *secure.Token
	Secrets      string
	KVVersion    string
	ExtraHeaders string
	ExportToken  bool
	Namespace    string
}

// FromInputs reads and validates every input.
func FromInputs(inputs actions.Inputs) (Config, error) {
	cfg := Config{
		URL:          inputs.GetInput(InputURL),
		Secrets:      inputs.GetInput(InputSecrets),
		KVVersion:    inputs.GetInput(InputKVVersion),
		ExtraHeaders: inputs.GetInput(InputExtraHeaders),
		ExportToken:  strings.EqualFold(inputs.GetInput(InputExportToken), "true"),
		Namespace:    inputs.GetInput(InputNamespace),
	}

	if cfg.KVVersion == "" {
		cfg.KVVersion = DefaultKVVersion
	}

	if raw := inputs.GetInput(InputToken); raw != "" {
		token, err := secure.NewToken(raw)
		if err != nil {
			return Config{}, err
		}
		cfg.Token = token
	}

	if err := cfg.Validate(); err != nil {
		cfg.Token.Destroy()
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required inputs and the KV version.
func (c Config) Validate() error {
	required := []struct {
		name    string
		missing bool
	}{
		{InputURL, c.URL == ""},
		{InputToken, c.Token == nil},
		{InputSecrets, c.Secrets == ""},
	}
	for _, r := range required {
		if r.missing {
			return dserrors.ConfigError{
				Input:      r.name,
				Message:    "Input required and not supplied: " + r.name,
				Suggestion: "Set '" + r.name + "' under 'with:' in the workflow step",
			}
		}
	}

	if c.KVVersion != "1" && c.KVVersion != "2" {
		return dserrors.ConfigError{
			Input:   InputKVVersion,
			Message: `You must provide a valid K/V version (1 or 2). Input: "` + c.KVVersion + `"`,
		}
	}

	return nil
}
