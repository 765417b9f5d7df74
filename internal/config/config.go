package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"inventory-twin/internal/scenario"
	"inventory-twin/internal/simulation"
	"inventory-twin/internal/trend"
)

var validate = validator.New()

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Engine    EngineConfig    `yaml:"engine"`
	Scenarios ScenariosConfig `yaml:"scenarios"`
	EIA       EIAConfig       `yaml:"eia"`
	Cache     CacheConfig     `yaml:"cache"`
	Server    ServerConfig    `yaml:"server"`
}

type EngineConfig struct {
	Window      int     `yaml:"window" validate:"gte=1"`
	CadenceDays int     `yaml:"cadence_days" validate:"gte=1"`
	Floor       float64 `yaml:"floor" validate:"gte=0"`
}

type EscalationConfig struct {
	Base   float64 `yaml:"base" json:"base"`
	Growth float64 `yaml:"growth" json:"growth"`
}

type ReleaseConfig struct {
	PerPeriod float64 `yaml:"per_period" json:"per_period" validate:"gte=0"`
}

type ScenariosConfig struct {
	SupplyCut      EscalationConfig `yaml:"supply_cut"`
	DemandSpike    EscalationConfig `yaml:"demand_spike"`
	ReserveRelease ReleaseConfig    `yaml:"reserve_release"`
}

type EIAConfig struct {
	BaseURL       string        `yaml:"base_url" validate:"omitempty,url"`
	APIKeyEnv     string        `yaml:"api_key_env"`
	Product       string        `yaml:"product" validate:"required"`
	LookbackYears int           `yaml:"lookback_years" validate:"gte=1"`
	Region        string        `yaml:"region"`
	Timeout       time.Duration `yaml:"timeout" validate:"gte=0"`
}

type CacheConfig struct {
	Enabled     bool          `yaml:"enabled"`
	TTL         time.Duration `yaml:"ttl" validate:"gte=0"`
	UpstreamTTL time.Duration `yaml:"upstream_ttl" validate:"gte=0"`
}

type ServerConfig struct {
	Port      string `yaml:"port" validate:"required,numeric"`
	Env       string `yaml:"env" validate:"oneof=development production test"`
	StaticDir string `yaml:"static_dir"`
}

// Default returns the reference configuration.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Window:      trend.DefaultWindow,
			CadenceDays: 7,
			Floor:       scenario.DefaultFloor,
		},
		Scenarios: ScenariosConfig{
			SupplyCut:      EscalationConfig{Base: scenario.DefaultSupplyCutBase, Growth: scenario.DefaultSupplyCutGrowth},
			DemandSpike:    EscalationConfig{Base: scenario.DefaultDemandSpikeBase, Growth: scenario.DefaultDemandSpikeGrowth},
			ReserveRelease: ReleaseConfig{PerPeriod: scenario.DefaultReleasePerPeriod},
		},
		EIA: EIAConfig{
			BaseURL:       "https://api.eia.gov",
			APIKeyEnv:     "EIA_API_KEY",
			Product:       "EPC0",
			LookbackYears: 2,
			Timeout:       30 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:     true,
			TTL:         time.Hour,
			UpstreamTTL: 24 * time.Hour,
		},
		Server: ServerConfig{
			Port: "8080",
			Env:  "development",
		},
	}
}

// Load reads, defaults and validates a config file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked decodes path over Default() but does not validate it.
// Sections missing from the file keep their defaults.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config invalid: %w", err)
	}
	if err := c.Effects().Validate(); err != nil {
		return fmt.Errorf("scenario constants invalid: %w", err)
	}
	return nil
}

// Effects converts the engine and scenario sections to projector constants.
func (c *Config) Effects() scenario.Effects {
	return scenario.Effects{
		SupplyCut:        scenario.Escalation{Base: c.Scenarios.SupplyCut.Base, Growth: c.Scenarios.SupplyCut.Growth},
		DemandSpike:      scenario.Escalation{Base: c.Scenarios.DemandSpike.Base, Growth: c.Scenarios.DemandSpike.Growth},
		ReleasePerPeriod: c.Scenarios.ReserveRelease.PerPeriod,
		Floor:            c.Engine.Floor,
		Cadence:          time.Duration(c.Engine.CadenceDays) * 24 * time.Hour,
	}
}

// NewEngine builds a simulation engine from the config.
func (c *Config) NewEngine(logger *slog.Logger) *simulation.Engine {
	return &simulation.Engine{
		Window:  c.Engine.Window,
		Effects: c.Effects(),
		Logger:  logger,
	}
}

// APIKey reads the EIA key from the configured environment variable.
func (c *Config) APIKey() string {
	if c.EIA.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.EIA.APIKeyEnv)
}

// Overrides carries per-request replacements for projector constants.
// Nil fields keep the base value.
type Overrides struct {
	SupplyCutBase     *float64 `json:"supply_cut_base,omitempty" yaml:"supply_cut_base" validate:"omitempty,gte=0"`
	SupplyCutGrowth   *float64 `json:"supply_cut_growth,omitempty" yaml:"supply_cut_growth" validate:"omitempty,gte=0"`
	DemandSpikeBase   *float64 `json:"demand_spike_base,omitempty" yaml:"demand_spike_base" validate:"omitempty,gte=0"`
	DemandSpikeGrowth *float64 `json:"demand_spike_growth,omitempty" yaml:"demand_spike_growth" validate:"omitempty,gte=0"`
	ReleasePerPeriod  *float64 `json:"release_per_period,omitempty" yaml:"release_per_period" validate:"omitempty,gte=0"`
	Floor             *float64 `json:"floor,omitempty" yaml:"floor" validate:"omitempty,gte=0"`
	Window            *int     `json:"window,omitempty" yaml:"window" validate:"omitempty,gte=1"`
}

// Validate checks override ranges.
func (o *Overrides) Validate() error {
	if o == nil {
		return nil
	}
	return validate.Struct(o)
}

// Empty reports whether no field is set.
func (o *Overrides) Empty() bool {
	return o == nil || *o == Overrides{}
}

// MergeEffects overlays the set fields of override onto base.
func MergeEffects(base scenario.Effects, override *Overrides) scenario.Effects {
	out := base
	if override == nil {
		return out
	}
	if override.SupplyCutBase != nil {
		out.SupplyCut.Base = *override.SupplyCutBase
	}
	if override.SupplyCutGrowth != nil {
		out.SupplyCut.Growth = *override.SupplyCutGrowth
	}
	if override.DemandSpikeBase != nil {
		out.DemandSpike.Base = *override.DemandSpikeBase
	}
	if override.DemandSpikeGrowth != nil {
		out.DemandSpike.Growth = *override.DemandSpikeGrowth
	}
	if override.ReleasePerPeriod != nil {
		out.ReleasePerPeriod = *override.ReleasePerPeriod
	}
	if override.Floor != nil {
		out.Floor = *override.Floor
	}
	return out
}

// WithOverrides returns a copy of engine with override applied.
func WithOverrides(engine *simulation.Engine, override *Overrides) *simulation.Engine {
	out := *engine
	out.Effects = MergeEffects(engine.Effects, override)
	if override != nil && override.Window != nil {
		out.Window = *override.Window
	}
	return &out
}
