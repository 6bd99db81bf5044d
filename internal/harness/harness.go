package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/stone-age-io/iot-ui-sub006/internal/model"
	"github.com/stone-age-io/iot-ui-sub006/internal/surface"
	"github.com/stone-age-io/iot-ui-sub006/internal/testutil"
	"github.com/stone-age-io/iot-ui-sub006/internal/viewport"
)

// Result captures everything observable from one scenario run.
type Result struct {
	Scenario       string       `json:"scenario"`
	FinalState     string       `json:"final_state"`
	PendingRetries int          `json:"pending_retries"`
	Ops            []surface.Op `json:"ops"`
	Selections     []string     `json:"selections,omitempty"`
}

// Run executes a scenario against a fresh controller and recording
// surface. Every run starts with Initialize; teardown only happens when
// the scenario asks for it, so final state is observable either way.
func Run(s *Scenario) (*Result, error) {
	surf := surface.NewHeadless(testutil.NewSequenceHandleGenerator())
	sched := testutil.NewManualScheduler()

	var selections []string
	ctrl := viewport.New(
		func() (surface.Map, error) { return surf, nil },
		func(l model.Location) { selections = append(selections, l.ID) },
		viewport.WithScheduler(sched),
		viewport.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	if err := ctrl.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}

	for i, step := range s.Steps {
		if err := apply(ctrl, surf, sched, step); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Do, err)
		}
	}

	return &Result{
		Scenario:       s.Name,
		FinalState:     ctrl.State().String(),
		PendingRetries: sched.Pending(),
		Ops:            surf.Ops(),
		Selections:     selections,
	}, nil
}

func apply(ctrl *viewport.Controller, surf *surface.Headless, sched *testutil.ManualScheduler, step Step) error {
	switch step.Do {
	case StepReconcile:
		ctrl.Reconcile(step.locations(), step.edges())

	case StepZoomStart:
		surf.EmitZoomStart()

	case StepZoomEnd:
		surf.EmitZoomEnd()

	case StepFire:
		sched.Fire()

	case StepResize:
		ctrl.Resize()

	case StepRecenter:
		ctrl.Recenter()

	case StepOpenDetail:
		if _, ok := ctrl.OpenDetail(step.ID); !ok {
			return fmt.Errorf("location %q not rendered", step.ID)
		}

	case StepSelect:
		if !ctrl.Select(step.ID) {
			return fmt.Errorf("no detail binding for %q", step.ID)
		}

	case StepClusterClick:
		layers := ctrl.LayerIDs()
		if step.Layer >= len(layers) {
			return fmt.Errorf("cluster layer %d not rendered (%d live)", step.Layer, len(layers))
		}
		ctrl.ClusterClick(layers[step.Layer])

	case StepTeardown:
		ctrl.Teardown()

	default:
		return fmt.Errorf("unknown step kind %q", step.Do)
	}
	return nil
}
