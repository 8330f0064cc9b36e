package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/renn8/worldshift/shift"
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

func LoadShiftConfig() (shift.Config, error) {
	return LoadSpec[shift.Config]("shift.yaml")
}

type PlayerSpec struct {
	Name      string     `yaml:"name"`
	MoveSpeed float64    `yaml:"move_speed"`
	JumpSpeed float64    `yaml:"jump_speed"`
	Width     float64    `yaml:"width"`
	Height    float64    `yaml:"height"`
	Mass      float64    `yaml:"mass"`
	Friction  float64    `yaml:"friction"`
	Color     *YAMLColor `yaml:"color"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type EnemySpec struct {
	Name         string     `yaml:"name"`
	WalkSpeed    float64    `yaml:"walk_speed"`
	PursuitSpeed float64    `yaml:"pursuit_speed"`
	PatrolRange  float64    `yaml:"patrol_range"`
	Width        float64    `yaml:"width"`
	Height       float64    `yaml:"height"`
	Mass         float64    `yaml:"mass"`
	Color        *YAMLColor `yaml:"color"`
}

func LoadEnemySpec() (*EnemySpec, error) {
	spec, err := LoadSpec[EnemySpec]("enemy.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CrumbleSpec struct {
	Delay float64 `yaml:"delay"`
}

type MoverSpec struct {
	Speed      float64 `yaml:"speed"`
	Range      float64 `yaml:"range"`
	Horizontal *bool   `yaml:"horizontal"`
}

type PickupSpec struct {
	BobAmplitude float64 `yaml:"bob_amplitude"`
	BobSpeed     float64 `yaml:"bob_speed"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
}

type LevelSpec struct {
	Name    string                `yaml:"name"`
	Rows    []string              `yaml:"rows"`
	Crumble CrumbleSpec           `yaml:"crumble"`
	Mover   MoverSpec             `yaml:"mover"`
	Pickup  PickupSpec            `yaml:"pickup"`
	Palette map[string]*YAMLColor `yaml:"palette"`
}

func LoadLevelSpec(filename string) (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// NRGBA returns the parsed color, or fallback when the YAML omitted one.
func (c *YAMLColor) NRGBA(fallback color.NRGBA) color.NRGBA {
	if c == nil || c.Color == nil {
		return fallback
	}
	if n, ok := c.Color.(color.NRGBA); ok {
		return n
	}
	r, g, b, a := c.Color.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
