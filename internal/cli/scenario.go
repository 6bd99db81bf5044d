package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stone-age-io/iot-ui-sub006/internal/harness"
)

// NewScenarioCommand creates the scenario command.
func NewScenarioCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scenario <scenario.yaml>",
		Short: "Run a YAML scenario and print its operation trace",
		Long: `Execute a scenario file against a deterministic headless surface
and print the recorded trace. The same runner backs the golden-file
conformance tests, so output here matches test expectations exactly.`,
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

			s, err := harness.LoadScenario(args[0])
			if err != nil {
				formatter.Error("E_SCENARIO", err.Error())
				return WrapExitError(ExitCommandError, "load scenario", err)
			}

			result, err := harness.Run(s)
			if err != nil {
				formatter.Error("E_RUN", err.Error())
				return WrapExitError(ExitFailure, "run scenario", err)
			}

			if rootOpts.Format == "json" {
				return formatter.Success(result)
			}

			fmt.Fprintf(formatter.Writer, "%s: %d ops, final state %s\n",
				result.Scenario, len(result.Ops), result.FinalState)
			for _, op := range result.Ops {
				line, err := json.Marshal(op)
				if err != nil {
					return WrapExitError(ExitFailure, "encode op", err)
				}
				fmt.Fprintf(formatter.Writer, "  %s\n", line)
			}
			for _, id := range result.Selections {
				fmt.Fprintf(formatter.Writer, "selected: %s\n", id)
			}
			return nil
		},
	}
}
