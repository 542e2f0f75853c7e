package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/curve"
	"github.com/milk9111/featherfall/kinematic"
	"github.com/milk9111/featherfall/obj"
	"github.com/milk9111/featherfall/physics"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

const (
	PlayerFile  = "player.yaml"
	CrowFile    = "crow.yaml"
	FeatherFile = "feather.yaml"
	CameraFile  = "camera.yaml"
	CurvesFile  = "curves.yaml"
)

// LoadSpec decodes a prefab into a zero T.
func LoadSpec[T any](filename string) (T, error) {
	var spec T
	err := LoadSpecInto(filename, &spec)
	return spec, err
}

// LoadSpecInto decodes a prefab over the values already in dst, so fields the
// file leaves out keep their defaults.
func LoadSpecInto[T any](filename string, dst *T) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

type PlayerSpec struct {
	Name        string           `yaml:"name"`
	Movement    obj.PlayerConfig `yaml:"movement"`
	Body        kinematic.Config `yaml:"body"`
	Collider    ColliderSpec     `yaml:"collider"`
	Health      int              `yaml:"health"`
	Hurtbox     HurtboxSpec      `yaml:"hurtbox"`
	Color       YAMLColor        `yaml:"color"`
	RenderLayer RenderLayerSpec  `yaml:"render_layer"`
}

func DefaultPlayerSpec() PlayerSpec {
	return PlayerSpec{
		Name:        "player",
		Movement:    obj.DefaultPlayerConfig(),
		Body:        kinematic.DefaultConfig(),
		Collider:    ColliderSpec{Size: cp.Vector{X: 10, Y: 20}},
		Health:      5,
		Hurtbox:     HurtboxSpec{Size: cp.Vector{X: 10, Y: 20}, Tags: []string{"player"}},
		Color:       YAMLColor{Color: colornames.Crimson},
		RenderLayer: RenderLayerSpec{Index: 10},
	}
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec := DefaultPlayerSpec()
	if err := LoadSpecInto(PlayerFile, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

type CrowSpec struct {
	Name        string          `yaml:"name"`
	AI          obj.CrowConfig  `yaml:"ai"`
	Size        cp.Vector       `yaml:"size"`
	Health      int             `yaml:"health"`
	Hurtbox     HurtboxSpec     `yaml:"hurtbox"`
	Color       YAMLColor       `yaml:"color"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
}

func DefaultCrowSpec() CrowSpec {
	return CrowSpec{
		Name:        "crow",
		AI:          obj.DefaultCrowConfig(),
		Size:        cp.Vector{X: 14, Y: 10},
		Health:      2,
		Hurtbox:     HurtboxSpec{Size: cp.Vector{X: 14, Y: 10}, Tags: []string{"enemy"}},
		Color:       YAMLColor{Color: colornames.Darkslategray},
		RenderLayer: RenderLayerSpec{Index: 8},
	}
}

func LoadCrowSpec() (*CrowSpec, error) {
	spec := DefaultCrowSpec()
	if err := LoadSpecInto(CrowFile, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

type FeatherSpec struct {
	Name        string               `yaml:"name"`
	Projectile  obj.ProjectileConfig `yaml:"projectile"`
	Color       YAMLColor            `yaml:"color"`
	RenderLayer RenderLayerSpec      `yaml:"render_layer"`
}

func DefaultFeatherSpec() FeatherSpec {
	return FeatherSpec{
		Name:        "feather",
		Projectile:  obj.DefaultFeatherConfig(),
		Color:       YAMLColor{Color: colornames.Black},
		RenderLayer: RenderLayerSpec{Index: 9},
	}
}

func LoadFeatherSpec() (*FeatherSpec, error) {
	spec := DefaultFeatherSpec()
	if err := LoadSpecInto(FeatherFile, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

type CameraSpec struct {
	Name       string  `yaml:"name"`
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
	// Tracking is "fixed" or "frame".
	Tracking     string  `yaml:"tracking"`
	FadeDuration float64 `yaml:"fade_duration"`
}

func DefaultCameraSpec() CameraSpec {
	return CameraSpec{Name: "camera", Zoom: 2, Smoothness: 0.2, Tracking: "fixed", FadeDuration: 0.6}
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec := DefaultCameraSpec()
	if err := LoadSpecInto(CameraFile, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadCurves builds the curve library from curves.yaml and its scripts.
func LoadCurves() (*curve.Library, error) {
	data, err := Load(CurvesFile)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", CurvesFile, err)
	}
	lib, err := curve.LoadLibrary(data, FS())
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", CurvesFile, err)
	}
	return lib, nil
}

type RenderLayerSpec struct {
	Index int `yaml:"index"`
}

// ColliderSpec is a box centred on the entity position plus Offset.
type ColliderSpec struct {
	Size   cp.Vector `yaml:"size"`
	Offset cp.Vector `yaml:"offset"`
	// CollidesWith names the layers the body stops against.
	CollidesWith []string `yaml:"collides_with"`
}

// Mask resolves CollidesWith, or returns fallback when it is empty.
func (c ColliderSpec) Mask(fallback physics.Layer) (physics.Layer, error) {
	if len(c.CollidesWith) == 0 {
		return fallback, nil
	}
	return physics.ParseLayers(c.CollidesWith)
}

type HurtboxSpec struct {
	Size   cp.Vector `yaml:"size"`
	Offset cp.Vector `yaml:"offset"`
	Tags   []string  `yaml:"tags"`
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or a CSS colour name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color %s: %w", value.Value, err)
		}
		rgba[i] = v
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}

// Value returns the colour, white when none was set.
func (c YAMLColor) Value() color.Color {
	if c.Color == nil {
		return color.White
	}
	return c.Color
}
