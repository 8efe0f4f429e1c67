package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	dserrors "github.com/systmms/vaultstep/internal/errors"
	"github.com/systmms/vaultstep/internal/secretspec"
	"gopkg.in/yaml.v3"
)

func NewParseCommand(opts *Options) *cobra.Command {
	var (
		secrets string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Show how a secrets input is interpreted",
		Long: `Parse a secrets input and print the requests it describes, without
contacting Vault.

The input is taken from --secrets, or from stdin when the flag is not set.

Examples:
  vaultstep parse --secrets 'secret/ci npm.token ; secret/ci | CI_SECRETS'
  printf 'secret/db password' | vaultstep parse --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("secrets") {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				secrets = string(data)
			}

			requests, err := secretspec.Parse(secrets)
			if err != nil {
				return err
			}
			opts.logger().Debug("Parsed %d request(s)", len(requests))

			return writeRequests(cmd.OutOrStdout(), requests, format)
		},
	}

	cmd.Flags().StringVar(&secrets, "secrets", "", "Secrets input to parse (default: read stdin)")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, json or yaml")

	return cmd
}

func writeRequests(w io.Writer, requests []secretspec.Request, format string) error {
	if requests == nil {
		requests = []secretspec.Request{}
	}

	switch strings.ToLower(format) {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(requests); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(requests); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return encoder.Close()
	case "table":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintf(tw, "PATH\tSELECTOR\tOUTPUT\tENV\n")
		for _, r := range requests {
			selector := r.Selector
			if r.WholeSecret() {
				selector = "(all)"
			}
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Path, selector, r.OutputVarName, r.EnvVarName)
		}
		return tw.Flush()
	default:
		return dserrors.UserError{
			Message:    fmt.Sprintf("unknown format %q", format),
			Suggestion: "Use --format table, json or yaml",
		}
	}
}
