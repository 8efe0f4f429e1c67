// Package step reads the requested secrets from Vault and publishes them
// to the pipeline.
package step

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/systmms/vaultstep/internal/actions"
	"github.com/systmms/vaultstep/internal/config"
	dserrors "github.com/systmms/vaultstep/internal/errors"
	"github.com/systmms/vaultstep/internal/headers"
	"github.com/systmms/vaultstep/internal/logging"
	"github.com/systmms/vaultstep/internal/metrics"
	"github.com/systmms/vaultstep/internal/secretspec"
	"github.com/systmms/vaultstep/internal/secure"
	"github.com/systmms/vaultstep/internal/vault"
)

// TokenEnvVar is the variable the token is exported under when
// exportToken is set.
const TokenEnvVar = "VAULT_TOKEN"

// Runner fetches secrets one at a time, in input order. The first failure
// stops the run; values exported before it stay exported.
type Runner struct {
	reader  vault.Reader
	outputs actions.Outputs
	logger  *logging.Logger
	metrics *metrics.Recorder
}

// NewRunner creates a Runner. rec may be nil.
func NewRunner(reader vault.Reader, outputs actions.Outputs, logger *logging.Logger, rec *metrics.Recorder) *Runner {
	return &Runner{
		reader:  reader,
		outputs: outputs,
		logger:  logger,
		metrics: rec,
	}
}

// Run executes the step for cfg. cfg.Token is revealed only where it is
// used and is left for the caller to destroy.
func (r *Runner) Run(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	engine, err := vault.EngineFor(cfg.KVVersion)
	if err != nil {
		return err
	}

	extra := headers.Parse(cfg.ExtraHeaders)

	requests, err := secretspec.Parse(cfg.Secrets)
	if err != nil {
		return err
	}

	if err := r.maskToken(cfg.Token); err != nil {
		return err
	}

	if cfg.ExportToken {
		if err := r.exportToken(cfg.Token); err != nil {
			return err
		}
	}

	base := http.Header{}
	extra.Apply(base)
	if cfg.Namespace != "" {
		base.Set(vault.NamespaceHeader, cfg.Namespace)
	}

	for _, req := range requests {
		if err := r.fetch(ctx, cfg.URL, engine, cfg.Token, base, req); err != nil {
			return err
		}
	}

	r.logger.Info("Exported %d secret(s) from %s", len(requests), cfg.URL)
	return nil
}

func (r *Runner) fetch(ctx context.Context, baseURL string, engine vault.Engine, token *secure.Token, base http.Header, req secretspec.Request) error {
	header, err := requestHeader(token, base)
	if err != nil {
		return err
	}

	url := engine.URL(baseURL, req.Path)
	r.logger.Debug("Reading %s (kv v%s)", req.Path, engine.Version())

	start := time.Now()
	body, err := r.reader.Read(ctx, url, header)
	r.metrics.RecordFetch(engine.Version(), time.Since(start))
	if err != nil {
		r.metrics.RecordError(engine.Version(), "fetch")
		return fmt.Errorf("failed to read secret %q: %w", req.Path, err)
	}

	data, err := engine.Unwrap(req.Path, body)
	if err != nil {
		r.metrics.RecordError(engine.Version(), "response")
		return err
	}

	raw, err := resolve(data, req)
	if err != nil {
		r.metrics.RecordError(engine.Version(), "response")
		return err
	}
	value, err := vault.Stringify(raw)
	if err != nil {
		r.metrics.RecordError(engine.Version(), "response")
		return err
	}

	// A JSON null is exported as "null" without a mask.
	if raw != nil {
		r.mask(value)
	}

	if err := r.outputs.ExportVariable(req.EnvVarName, value); err != nil {
		r.metrics.RecordError(engine.Version(), "export")
		return fmt.Errorf("failed to export %s: %w", req.EnvVarName, err)
	}

	output := value
	if req.WholeSecret() && needsOutputQuoting(value) {
		output = "'" + value + "'"
	}
	if err := r.outputs.SetOutput(req.OutputVarName, output); err != nil {
		r.metrics.RecordError(engine.Version(), "export")
		return fmt.Errorf("failed to set output %s: %w", req.OutputVarName, err)
	}

	kind := "field"
	if req.WholeSecret() {
		kind = "whole"
	}
	r.metrics.RecordExport(engine.Version(), kind)
	r.logger.Debug("Exported %s as %s", req.Path, req.EnvVarName)
	return nil
}

// requestHeader copies base and adds the token last so extra headers
// cannot replace it.
func requestHeader(token *secure.Token, base http.Header) (http.Header, error) {
	value, err := token.Reveal()
	if err != nil {
		return nil, err
	}
	header := base.Clone()
	header.Set(vault.TokenHeader, value)
	return header, nil
}

func (r *Runner) maskToken(token *secure.Token) error {
	value, err := token.Reveal()
	if err != nil {
		return err
	}
	r.outputs.SetSecret(value)
	r.logger.AddSecret(value)
	return nil
}

func (r *Runner) exportToken(token *secure.Token) error {
	value, err := token.Reveal()
	if err != nil {
		return err
	}
	if err := r.outputs.ExportVariable(TokenEnvVar, value); err != nil {
		return fmt.Errorf("failed to export %s: %w", TokenEnvVar, err)
	}
	r.metrics.RecordTokenExport()
	r.logger.Debug("Exported the Vault token as %s", TokenEnvVar)
	return nil
}

// resolve returns the whole secret or the value at the selector.
func resolve(data map[string]interface{}, req secretspec.Request) (interface{}, error) {
	if req.WholeSecret() {
		return data, nil
	}

	v, ok := vault.Select(data, req.Selector)
	if !ok {
		return nil, &dserrors.ResponseError{
			Path:    req.Path,
			Message: fmt.Sprintf("no key %q found at path %q", req.Selector, req.Path),
		}
	}
	return v, nil
}

// mask registers value with the runner. Multi-line values are also masked
// line by line since the runner matches masks per line.
func (r *Runner) mask(value string) {
	r.outputs.SetSecret(value)
	r.logger.AddSecret(value)
	if !strings.Contains(value, "\n") {
		return
	}
	for _, line := range strings.Split(value, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			r.outputs.SetSecret(line)
			r.logger.AddSecret(line)
		}
	}
}

// needsOutputQuoting reports whether value holds characters that change
// meaning when a step output is interpolated into a workflow expression.
func needsOutputQuoting(value string) bool {
	return strings.ContainsAny(value, "{}[]\",:")
}
