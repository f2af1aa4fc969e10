package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// EntityBuildSpec is a prefab file: a name and a map of component specs
// keyed by component name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

// LoadSpec reads and decodes a YAML prefab.
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

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec re-decodes one raw component entry into T.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// RopeComponentSpec mirrors rope.Config plus an optional force script
// under scripts/.
type RopeComponentSpec struct {
	Length      float64 `yaml:"length"`
	Segments    int     `yaml:"segments"`
	Material    string  `yaml:"material"`
	ForceScript string  `yaml:"force_script"`
}

type ClimberComponentSpec struct {
	ClimbSpeed float64 `yaml:"climb_speed"`
	MoveSpeed  float64 `yaml:"move_speed"`
}

type ClimbEaseComponentSpec struct {
	Frequency float64 `yaml:"frequency"`
	Damping   float64 `yaml:"damping"`
	FPS       int     `yaml:"fps"`
}

type PhysicsBodyComponentSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Mass   float64 `yaml:"mass"`
}

type InputComponentSpec struct{}
