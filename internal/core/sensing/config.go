package sensing

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid sensing config")

// Config holds every tunable of the engine. Distances are in world units,
// angles in degrees unless noted.
type Config struct {
	// Verticality
	CapHeight        float32 `json:"cap_height" yaml:"cap_height"`
	HeadOffset       float32 `json:"head_offset" yaml:"head_offset"`
	DropExtra        float32 `json:"drop_extra" yaml:"drop_extra"`
	FrontProbeOffset float32 `json:"front_probe_offset" yaml:"front_probe_offset"`
	SideProbeOffset  float32 `json:"side_probe_offset" yaml:"side_probe_offset"`
	PredictionTime   float32 `json:"prediction_time" yaml:"prediction_time"`
	SlantAngle       float32 `json:"slant_angle" yaml:"slant_angle"`

	// Obstacles and walls
	DetectWalk     float32 `json:"detect_walk" yaml:"detect_walk"`
	DetectSprint   float32 `json:"detect_sprint" yaml:"detect_sprint"`
	AngledExtra    float32 `json:"angled_extra" yaml:"angled_extra"`
	AngledLateral  float32 `json:"angled_lateral" yaml:"angled_lateral"`
	AngledPullback float32 `json:"angled_pullback" yaml:"angled_pullback"`
	KneeHeight     float32 `json:"knee_height" yaml:"knee_height"`
	ChestHeight    float32 `json:"chest_height" yaml:"chest_height"`
	SlopeNormalZ   float32 `json:"slope_normal_z" yaml:"slope_normal_z"`

	// Surface and object types
	TypeProbeHeight     float32 `json:"type_probe_height" yaml:"type_probe_height"`
	TypeProbeDistance   float32 `json:"type_probe_distance" yaml:"type_probe_distance"`
	SurfaceProbeUp      float32 `json:"surface_probe_up" yaml:"surface_probe_up"`
	SurfaceProbeDown    float32 `json:"surface_probe_down" yaml:"surface_probe_down"`
	SubmergedThreshold  float32 `json:"submerged_threshold" yaml:"submerged_threshold"`
	MovingPlatformSpeed float32 `json:"moving_platform_speed" yaml:"moving_platform_speed"`
	WaterBand           float32 `json:"water_band" yaml:"water_band"`

	// Scheduling. StationaryAngle is in radians.
	StationaryDistanceSq float32 `json:"stationary_distance_sq" yaml:"stationary_distance_sq"`
	StationaryAngle      float32 `json:"stationary_angle" yaml:"stationary_angle"`
	TeleportDistanceSq   float32 `json:"teleport_distance_sq" yaml:"teleport_distance_sq"`
	RefreshOnJump        bool    `json:"refresh_on_jump" yaml:"refresh_on_jump"`
	ParallelProbes       bool    `json:"parallel_probes" yaml:"parallel_probes"`

	// Jump
	JumpBonus float32 `json:"jump_bonus" yaml:"jump_bonus"`
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		CapHeight:        10000,
		HeadOffset:       100,
		DropExtra:        1000,
		FrontProbeOffset: 80,
		SideProbeOffset:  60,
		PredictionTime:   0.5,
		SlantAngle:       15,

		DetectWalk:     230,
		DetectSprint:   330,
		AngledExtra:    50,
		AngledLateral:  100,
		AngledPullback: 50,
		KneeHeight:     40,
		ChestHeight:    120,
		SlopeNormalZ:   0.5,

		TypeProbeHeight:     100,
		TypeProbeDistance:   250,
		SurfaceProbeUp:      20,
		SurfaceProbeDown:    40,
		SubmergedThreshold:  0.05,
		MovingPlatformSpeed: 0.1,
		WaterBand:           15,

		StationaryDistanceSq: 0.25,
		StationaryAngle:      0.05,
		TeleportDistanceSq:   250000,

		JumpBonus: 80,
	}
}

// Validate checks that the config can drive the engine.
func (c *Config) Validate() error {
	positive := []struct {
		name  string
		value float32
	}{
		{"cap_height", c.CapHeight},
		{"detect_walk", c.DetectWalk},
		{"detect_sprint", c.DetectSprint},
		{"type_probe_distance", c.TypeProbeDistance},
		{"teleport_distance_sq", c.TeleportDistanceSq},
	}
	for _, p := range positive {
		if !(p.value > 0) {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, p.name)
		}
	}

	nonNegative := []struct {
		name  string
		value float32
	}{
		{"head_offset", c.HeadOffset},
		{"drop_extra", c.DropExtra},
		{"prediction_time", c.PredictionTime},
		{"angled_extra", c.AngledExtra},
		{"angled_pullback", c.AngledPullback},
		{"surface_probe_up", c.SurfaceProbeUp},
		{"surface_probe_down", c.SurfaceProbeDown},
		{"water_band", c.WaterBand},
		{"stationary_distance_sq", c.StationaryDistanceSq},
		{"stationary_angle", c.StationaryAngle},
		{"jump_bonus", c.JumpBonus},
	}
	for _, p := range nonNegative {
		if !(p.value >= 0) {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, p.name)
		}
	}

	if !(c.SlantAngle >= 0 && c.SlantAngle < 90) {
		return fmt.Errorf("%w: slant_angle must be in [0, 90)", ErrInvalidConfig)
	}
	if !(c.ChestHeight > c.KneeHeight) {
		return fmt.Errorf("%w: chest_height must be above knee_height", ErrInvalidConfig)
	}
	if !(c.SlopeNormalZ >= 0 && c.SlopeNormalZ <= 1) {
		return fmt.Errorf("%w: slope_normal_z must be in [0, 1]", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig decodes YAML over DefaultConfig and validates the result.
// An empty document yields the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode sensing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
