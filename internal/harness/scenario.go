package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stone-age-io/iot-ui-sub006/internal/model"
)

// Step kinds understood by the runner.
const (
	StepReconcile    = "reconcile"
	StepZoomStart    = "zoom_start"
	StepZoomEnd      = "zoom_end"
	StepFire         = "fire"
	StepResize       = "resize"
	StepRecenter     = "recenter"
	StepOpenDetail   = "open_detail"
	StepSelect       = "select"
	StepClusterClick = "cluster_click"
	StepTeardown     = "teardown"
)

// Scenario defines one deterministic controller run.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario exercises.
	Description string `yaml:"description,omitempty"`

	// Steps are applied in order to a freshly initialized controller.
	Steps []Step `yaml:"steps"`
}

// Step is one scenario action.
type Step struct {
	// Do selects the step kind (see Step* constants).
	Do string `yaml:"do"`

	// Locations and Edges feed reconcile steps.
	Locations []StepLocation `yaml:"locations,omitempty"`
	Edges     []StepEdge     `yaml:"edges,omitempty"`

	// ID names the location for open_detail and select steps.
	ID string `yaml:"id,omitempty"`

	// Layer indexes into the rendered cluster layers for cluster_click.
	Layer int `yaml:"layer,omitempty"`
}

// StepLocation is a scenario-defined location. Lat and Lng stay unset
// to model entries without coordinates.
type StepLocation struct {
	ID     string   `yaml:"id"`
	Name   string   `yaml:"name"`
	Code   string   `yaml:"code,omitempty"`
	Type   string   `yaml:"type,omitempty"`
	EdgeID string   `yaml:"edge_id,omitempty"`
	Lat    *float64 `yaml:"lat,omitempty"`
	Lng    *float64 `yaml:"lng,omitempty"`
}

// StepEdge is a scenario-defined edge.
type StepEdge struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

var stepKinds = map[string]bool{
	StepReconcile:    true,
	StepZoomStart:    true,
	StepZoomEnd:      true,
	StepFire:         true,
	StepResize:       true,
	StepRecenter:     true,
	StepOpenDetail:   true,
	StepSelect:       true,
	StepClusterClick: true,
	StepTeardown:     true,
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode scenario %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("missing name")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("no steps")
	}
	for i, step := range s.Steps {
		if !stepKinds[step.Do] {
			return fmt.Errorf("step %d: unknown kind %q", i, step.Do)
		}
		if (step.Do == StepOpenDetail || step.Do == StepSelect) && step.ID == "" {
			return fmt.Errorf("step %d: %s requires id", i, step.Do)
		}
	}
	return nil
}

// locations converts a reconcile step's entries to model values.
func (st Step) locations() []model.Location {
	out := make([]model.Location, 0, len(st.Locations))
	for _, l := range st.Locations {
		loc := model.Location{
			ID:     l.ID,
			Name:   l.Name,
			Code:   l.Code,
			Type:   l.Type,
			EdgeID: l.EdgeID,
		}
		if l.Lat != nil || l.Lng != nil {
			loc.Coordinates = &model.Coordinates{Lat: l.Lat, Lng: l.Lng}
		}
		out = append(out, loc)
	}
	return out
}

func (st Step) edges() []model.Edge {
	out := make([]model.Edge, 0, len(st.Edges))
	for _, e := range st.Edges {
		out = append(out, model.Edge{ID: e.ID, Name: e.Name})
	}
	return out
}
