package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/systmms/vaultstep/internal/actions"
	"github.com/systmms/vaultstep/internal/config"
	dserrors "github.com/systmms/vaultstep/internal/errors"
	"github.com/systmms/vaultstep/internal/metrics"
	"github.com/systmms/vaultstep/internal/step"
	"github.com/systmms/vaultstep/internal/vault"
)

func NewRunCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Read secrets from Vault and export them to the job",
		Long: `Read the secrets named in the 'secrets' input from Vault and publish each
one as an environment variable and a step output.

Inputs are read from INPUT_<NAME> variables as set by the runner. Use
--inputs to read them from a YAML file instead when running locally.

Examples:
  # As the entrypoint of the action
  vaultstep run

  # Locally, with inputs from a file
  vaultstep run --inputs inputs.yaml --debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunStep(cmd.Context(), opts)
		},
	}
}

// RunStep resolves the inputs and runs the step once.
func RunStep(ctx context.Context, opts *Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.logger()

	host := opts.Host
	if host == nil {
		host = actions.NewHost()
	}

	var inputs actions.Inputs = host
	if opts.InputsFile != "" {
		fileInputs, err := actions.LoadInputsFile(opts.InputsFile, host)
		if err != nil {
			return dserrors.UserError{
				Message:    "Could not load step inputs",
				Details:    err.Error(),
				Suggestion: "Check that --inputs names a YAML file of input names to scalar values",
				Err:        err,
			}
		}
		inputs = fileInputs
	}

	cfg, err := config.FromInputs(inputs)
	if err != nil {
		return err
	}
	defer cfg.Token.Destroy()

	reader := opts.Reader
	if reader == nil {
		reader = vault.NewHTTPClient(nil)
	}

	rec := metrics.NewRecorder()
	runErr := step.NewRunner(reader, host, logger, rec).Run(ctx, cfg)

	if opts.MetricsFile != "" {
		if err := rec.WriteTextfile(opts.MetricsFile); err != nil {
			logger.Warn("%v", err)
		}
	}

	return runErr
}
