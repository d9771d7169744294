package prefabs

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gunturrets/turret"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Vec3Spec is written as a [x, y, z] sequence.
type Vec3Spec [3]float64

func (v Vec3Spec) Vec3() mgl64.Vec3 {
	return mgl64.Vec3(v)
}

type TurretSpec struct {
	Name     string   `yaml:"name"`
	Position Vec3Spec `yaml:"position"`
	// Yaw turns the root, and with it the neutral facing, to the right.
	Yaw float64 `yaml:"yaw"`

	ElevationSpeed     *float64 `yaml:"elevation_speed"`
	MaxElevation       *float64 `yaml:"max_elevation"`
	MaxDepression      *float64 `yaml:"max_depression"`
	TraverseSpeed      *float64 `yaml:"traverse_speed"`
	HasLimitedTraverse *bool    `yaml:"has_limited_traverse"`
	LeftLimit          *float64 `yaml:"left_limit"`
	RightLimit         *float64 `yaml:"right_limit"`
	AimedThreshold     *float64 `yaml:"aimed_threshold"`

	// Barrels is the barrel pivot offset from the base. Omit it for a turret
	// that only traverses.
	Barrels *Vec3Spec `yaml:"barrels"`

	Idle      bool         `yaml:"idle"`
	DebugRay  bool         `yaml:"debug_ray"`
	DebugArcs bool         `yaml:"debug_arcs"`
	Rocking   *RockingSpec `yaml:"rocking"`
}

// Config fills the fields the prefab sets on top of turret.DefaultConfig.
func (s TurretSpec) Config() turret.Config {
	cfg := turret.DefaultConfig()
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&cfg.ElevationSpeed, s.ElevationSpeed)
	set(&cfg.MaxElevation, s.MaxElevation)
	set(&cfg.MaxDepression, s.MaxDepression)
	set(&cfg.TraverseSpeed, s.TraverseSpeed)
	set(&cfg.LeftLimit, s.LeftLimit)
	set(&cfg.RightLimit, s.RightLimit)
	set(&cfg.AimedThreshold, s.AimedThreshold)
	if s.HasLimitedTraverse != nil {
		cfg.HasLimitedTraverse = *s.HasLimitedTraverse
	}
	return cfg
}

type RockingSpec struct {
	Strength float64  `yaml:"strength"`
	Speed    float64  `yaml:"speed"`
	Offset   *float64 `yaml:"offset"`
}

type TargetSpec struct {
	Name     string   `yaml:"name"`
	Position Vec3Spec `yaml:"position"`
	// Present defaults to true.
	Present *bool     `yaml:"present"`
	Script  string    `yaml:"script"`
	Body    *BodySpec `yaml:"body"`
}

func (s TargetSpec) IsPresent() bool {
	return s.Present == nil || *s.Present
}

// BodySpec makes a target drift inside the arena. Velocity is (x, z).
type BodySpec struct {
	Velocity [2]float64 `yaml:"velocity"`
	Radius   float64    `yaml:"radius"`
}

type ArenaSpec struct {
	Min [2]float64 `yaml:"min"`
	Max [2]float64 `yaml:"max"`
}

type ControllerSpec struct {
	Turret string `yaml:"turret"`
	Target string `yaml:"target"`
}

// SceneSpec lists turret and target prefab files and how they pair up.
type SceneSpec struct {
	Name        string           `yaml:"name"`
	Arena       *ArenaSpec       `yaml:"arena"`
	Turrets     []string         `yaml:"turrets"`
	Targets     []string         `yaml:"targets"`
	Controllers []ControllerSpec `yaml:"controllers"`
}

func LoadTurretSpec(filename string) (TurretSpec, error) {
	return LoadSpec[TurretSpec](filename)
}

func LoadTargetSpec(filename string) (TargetSpec, error) {
	return LoadSpec[TargetSpec](filename)
}

func LoadSceneSpec(filename string) (SceneSpec, error) {
	return LoadSpec[SceneSpec](filename)
}
