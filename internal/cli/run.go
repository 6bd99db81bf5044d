package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/stone-age-io/iot-ui-sub006/internal/catalog"
	"github.com/stone-age-io/iot-ui-sub006/internal/config"
	"github.com/stone-age-io/iot-ui-sub006/internal/model"
	"github.com/stone-age-io/iot-ui-sub006/internal/surface"
	"github.com/stone-age-io/iot-ui-sub006/internal/testutil"
	"github.com/stone-age-io/iot-ui-sub006/internal/viewport"
)

// RunResult summarizes one full catalog render.
type RunResult struct {
	Locations int          `json:"locations"`
	Markers   int          `json:"markers"`
	Clusters  int          `json:"clusters"`
	Ops       []surface.Op `json:"ops"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath, configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Render the catalog through a headless map surface",
		Long: `Load the catalog, reconcile every location onto a headless map
surface, and print the resulting operation trace: markers, cluster
layers, and the bounds fit.

Defaults for --db and --config come from LOCMAP_CATALOG and
LOCMAP_CONFIG when the flags are unset.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(rootOpts, cmd, dbPath, configPath)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "catalog database path")
	cmd.Flags().StringVar(&configPath, "config", "", "configuration file path")
	return cmd
}

func runRender(rootOpts *RootOptions, cmd *cobra.Command, dbPath, configPath string) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	environ, err := config.ReadEnv()
	if err != nil {
		formatter.Error("E_ENV", err.Error())
		return WrapExitError(ExitCommandError, "read environment", err)
	}
	if dbPath == "" {
		dbPath = environ.CatalogPath
	}
	if configPath == "" {
		configPath = environ.ConfigPath
	}

	cfg := config.Default()
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			formatter.Error("E_CONFIG", err.Error())
			return WrapExitError(ExitFailure, "load config", err)
		}
	}

	cat, err := catalog.Open(dbPath)
	if err != nil {
		formatter.Error("E_CATALOG", err.Error())
		return WrapExitError(ExitCommandError, "open catalog", err)
	}
	defer cat.Close()

	locations, err := cat.ListLocations(cmd.Context())
	if err != nil {
		formatter.Error("E_CATALOG", err.Error())
		return WrapExitError(ExitFailure, "list locations", err)
	}
	edges, err := cat.ListEdges(cmd.Context())
	if err != nil {
		formatter.Error("E_CATALOG", err.Error())
		return WrapExitError(ExitFailure, "list edges", err)
	}
	formatter.VerboseLog("catalog: %d locations, %d edges", len(locations), len(edges))

	level := slog.LevelWarn
	if rootOpts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	surf := surface.NewHeadless(testutil.NewSequenceHandleGenerator())
	ctrl := viewport.New(
		func() (surface.Map, error) { return surf, nil },
		func(l model.Location) { formatter.VerboseLog("selected %s (%s)", l.ID, l.Name) },
		viewport.WithLogger(logger),
		viewport.WithRetryDelay(cfg.RetryDelay()),
		viewport.WithFitOptions(cfg.FitOptions()),
		viewport.WithClusterConfig(cfg.ClusterOptions()),
		viewport.WithDefaultView(cfg.DefaultCenter(), cfg.Map.Zoom),
	)

	if err := ctrl.Initialize(); err != nil {
		formatter.Error("E_RUN", err.Error())
		return WrapExitError(ExitFailure, "initialize viewport", err)
	}
	ctrl.Reconcile(locations, edges)

	result := RunResult{
		Locations: len(locations),
		Markers:   ctrl.MarkerCount(),
		Clusters:  len(ctrl.LayerIDs()),
	}
	ctrl.Teardown()
	result.Ops = surf.Ops()

	if rootOpts.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "%d locations -> %d markers, %d cluster layers\n",
		result.Locations, result.Markers, result.Clusters)
	for _, op := range result.Ops {
		line, err := json.Marshal(op)
		if err != nil {
			return WrapExitError(ExitFailure, "encode op", err)
		}
		fmt.Fprintf(formatter.Writer, "  %s\n", line)
	}
	return nil
}
