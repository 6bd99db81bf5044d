package cli

import (
	"github.com/spf13/cobra"

	"github.com/stone-age-io/iot-ui-sub006/internal/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config.yaml>",
		Short: "Validate a configuration file against the schema",
		Long: `Validate a YAML configuration file against the embedded CUE schema.

Checks coordinate ranges, zoom levels, cluster radius, and guard retry
delay without starting anything.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}

			cfg, err := config.Load(args[0])
			if err != nil {
				formatter.Error("E_CONFIG", err.Error())
				return WrapExitError(ExitFailure, "configuration invalid", err)
			}

			formatter.VerboseLog("center=%s zoom=%d cluster_radius=%.0fpx",
				cfg.DefaultCenter(), cfg.Map.Zoom, cfg.Cluster.RadiusPx)
			return formatter.Success("configuration valid")
		},
	}
}
