package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stone-age-io/iot-ui-sub006/internal/catalog"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the catalog with a demo inventory",
		Long: `Create or open the catalog database and load the demo inventory:
two edges, a spread of typed locations, one unplaced entry, and a dense
group that clusters at the default zoom.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}

			cat, err := catalog.Open(dbPath)
			if err != nil {
				formatter.Error("E_CATALOG", err.Error())
				return WrapExitError(ExitCommandError, "open catalog", err)
			}
			defer cat.Close()

			if err := cat.SeedDemo(cmd.Context()); err != nil {
				formatter.Error("E_SEED", err.Error())
				return WrapExitError(ExitFailure, "seed catalog", err)
			}

			locs, err := cat.ListLocations(cmd.Context())
			if err != nil {
				formatter.Error("E_CATALOG", err.Error())
				return WrapExitError(ExitFailure, "list locations", err)
			}
			return formatter.Success(fmt.Sprintf("seeded %d locations into %s", len(locs), dbPath))
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "locmap.db", "catalog database path")
	return cmd
}
