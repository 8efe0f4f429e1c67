package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the vaultstep command tree. Running the root
// command without a subcommand runs the step, which is how the action
// invokes it.
func NewRootCommand(opts *Options, version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vaultstep",
		Short: "Export secrets from HashiCorp Vault to a CI job",
		Long: `vaultstep reads secrets from HashiCorp Vault with a token and exposes them
to later steps of the job as environment variables and step outputs.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunStep(cmd.Context(), opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.InputsFile, "inputs", "", "Read step inputs from a YAML file")
	rootCmd.PersistentFlags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file")
	rootCmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		NewRunCommand(opts),
		NewParseCommand(opts),
	)

	return rootCmd
}
