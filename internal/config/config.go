// Package config loads and validates the map surface configuration.
//
// Configuration comes from a YAML file validated against an embedded CUE
// schema, with a handful of environment overrides for deployment knobs.
// Defaults match the behavior the sync engine ships with: 300ms guard
// retries, 50px cluster radius, 50px fit padding capped at zoom 8.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/stone-age-io/iot-ui-sub006/internal/cluster"
	"github.com/stone-age-io/iot-ui-sub006/internal/geo"
)

//go:embed schema.cue
var schemaCUE string

// Config is the full map surface configuration.
type Config struct {
	Map     MapConfig     `yaml:"map" json:"map"`
	Cluster ClusterConfig `yaml:"cluster" json:"cluster"`
	Fit     FitConfig     `yaml:"fit" json:"fit"`
	Guard   GuardConfig   `yaml:"guard" json:"guard"`
}

// MapConfig sets the default view applied on initialize.
type MapConfig struct {
	Center  Center `yaml:"center" json:"center"`
	Zoom    int    `yaml:"zoom" json:"zoom"`
	MaxZoom int    `yaml:"max_zoom" json:"max_zoom"`
}

// Center is the default map center.
type Center struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lng float64 `yaml:"lng" json:"lng"`
}

// ClusterConfig controls marker aggregation.
type ClusterConfig struct {
	RadiusPx float64 `yaml:"radius_px" json:"radius_px"`
	MaxZoom  int     `yaml:"max_zoom" json:"max_zoom"`
}

// FitConfig controls bounds fits.
type FitConfig struct {
	PaddingPx int `yaml:"padding_px" json:"padding_px"`
	MaxZoom   int `yaml:"max_zoom" json:"max_zoom"`
}

// GuardConfig controls zoom-guard retry scheduling.
type GuardConfig struct {
	RetryMs int `yaml:"retry_ms" json:"retry_ms"`
}

// Default returns the configuration the engine ships with.
func Default() Config {
	return Config{
		Map: MapConfig{
			Center:  Center{Lat: 39.8283, Lng: -98.5795},
			Zoom:    4,
			MaxZoom: 18,
		},
		Cluster: ClusterConfig{
			RadiusPx: cluster.DefaultRadiusPx,
			MaxZoom:  cluster.DefaultMaxZoom,
		},
		Fit: FitConfig{
			PaddingPx: geo.DefaultFitPaddingPx,
			MaxZoom:   geo.DefaultFitMaxZoom,
		},
		Guard: GuardConfig{RetryMs: 300},
	}
}

// Load reads a YAML file over the defaults and validates the result
// against the embedded CUE schema.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks a configuration against the CUE schema.
func Validate(cfg Config) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("lookup #Config: %w", err)
	}

	unified := def.Unify(ctx.Encode(cfg))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema violation:\n%s", cueerrors.Details(err, nil))
	}
	return nil
}

// RetryDelay converts the guard retry setting to a duration.
func (c Config) RetryDelay() time.Duration {
	return time.Duration(c.Guard.RetryMs) * time.Millisecond
}

// FitOptions builds the non-animated fit parameters.
func (c Config) FitOptions() geo.FitOptions {
	return geo.FitOptions{
		PaddingPx: c.Fit.PaddingPx,
		MaxZoom:   c.Fit.MaxZoom,
		Animate:   false,
	}
}

// ClusterOptions builds the aggregator configuration.
func (c Config) ClusterOptions() cluster.Config {
	return cluster.Config{
		RadiusPx: c.Cluster.RadiusPx,
		MaxZoom:  c.Cluster.MaxZoom,
	}
}

// DefaultCenter returns the configured center as a coordinate pair.
func (c Config) DefaultCenter() geo.LatLng {
	return geo.LatLng{Lat: c.Map.Center.Lat, Lng: c.Map.Center.Lng}
}

// Env holds deployment knobs read from the environment.
type Env struct {
	CatalogPath string `env:"LOCMAP_CATALOG" envDefault:"locmap.db"`
	ConfigPath  string `env:"LOCMAP_CONFIG"`
	LogLevel    string `env:"LOCMAP_LOG_LEVEL" envDefault:"info"`
}

// ReadEnv parses the LOCMAP_* environment variables.
func ReadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return e, fmt.Errorf("parse environment: %w", err)
	}
	return e, nil
}
