package prefabs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/boxsim/common"
	"github.com/milk9111/boxsim/ecs"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScene = errors.New("prefabs: invalid scene")

const DefaultScene = "scene.yaml"

// SceneSpec is the top-level scene file: global settings plus the entities
// registered before load, in order.
type SceneSpec struct {
	Game     GameSpec     `yaml:"game"`
	Entities []EntitySpec `yaml:"entities"`
}

type GameSpec struct {
	Title        string  `yaml:"title"`
	ScreenWidth  int     `yaml:"screen_width"`
	ScreenHeight int     `yaml:"screen_height"`
	TickRate     int     `yaml:"tick_rate"`
	Gravity      *bool   `yaml:"gravity"`
	Background   string  `yaml:"background"`
	Cull         string  `yaml:"cull"`
	Resolve      string  `yaml:"resolve"`
	Follow       string  `yaml:"follow"`
	Script       string  `yaml:"script"`
	CameraSmooth float64 `yaml:"camera_smooth"`
	Interpolate  bool    `yaml:"interpolate"`
	// ViewportMargin overrides how far past the screen edges entities still
	// count as visible. nil keeps the camera default.
	ViewportMargin *float64 `yaml:"viewport_margin"`
}

// EntitySpec describes one prefab instance. Y is measured from the top of the
// screen unless Bottom is set, in which case the entity sits Bottom pixels
// above the bottom edge.
type EntitySpec struct {
	Prefab   string            `yaml:"prefab"`
	Name     string            `yaml:"name"`
	X        float64           `yaml:"x"`
	Y        float64           `yaml:"y"`
	Bottom   *float64          `yaml:"bottom"`
	Width    float64           `yaml:"width"`
	Height   float64           `yaml:"height"`
	Color    string            `yaml:"color"`
	Image    string            `yaml:"image"`
	Physics  *PhysicsSpec      `yaml:"physics"`
	Speed    float64           `yaml:"speed"`
	Jump     float64           `yaml:"jump"`
	Keybinds map[string]string `yaml:"keybinds"`
	Light    *LightSpec        `yaml:"light"`
	Audio    string            `yaml:"audio"`
}

type PhysicsSpec struct {
	Mass       *float64 `yaml:"mass"`
	Drag       *float64 `yaml:"drag"`
	Gravity    *float64 `yaml:"gravity"`
	Pushable   bool     `yaml:"pushable"`
	MoveFactor *float64 `yaml:"move_factor"`
}

type LightSpec struct {
	Radius    int     `yaml:"radius"`
	Intensity float64 `yaml:"intensity"`
	MaxLevel  float64 `yaml:"max_level"`
}

var knownPrefabs = map[string]bool{
	"player": true,
	"block":  true,
	"crate":  true,
	"light":  true,
	"audio":  true,
}

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

// LoadScene reads, defaults and validates a scene file.
func LoadScene(filename string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	spec.applyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

// ParseScene is LoadScene for in-memory data.
func ParseScene(data []byte) (*SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal scene: %w", err)
	}
	spec.applyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *SceneSpec) applyDefaults() {
	g := &s.Game
	if g.ScreenWidth <= 0 {
		g.ScreenWidth = common.BaseWidth
	}
	if g.ScreenHeight <= 0 {
		g.ScreenHeight = common.BaseHeight
	}
	if g.TickRate <= 0 {
		g.TickRate = common.DefaultTickRate
	}
	if g.Background == "" {
		g.Background = "#000000"
	}
	for i := range s.Entities {
		e := &s.Entities[i]
		e.Prefab = strings.ToLower(strings.TrimSpace(e.Prefab))
		if e.Prefab == "player" {
			if e.Width == 0 && e.Height == 0 {
				e.Width, e.Height = 50, 100
			}
			if e.Speed == 0 {
				e.Speed = 5
			}
			if e.Jump == 0 {
				e.Jump = 7
			}
		}
	}
}

// Validate checks settings and entity list consistency.
func (s *SceneSpec) Validate() error {
	if _, err := s.Game.CullMode(); err != nil {
		return err
	}
	if _, err := s.Game.ResolvePolicy(); err != nil {
		return err
	}
	if m := s.Game.ViewportMargin; m != nil && *m < 0 {
		return fmt.Errorf("%w: negative viewport margin", ErrInvalidScene)
	}

	names := make(map[string]bool, len(s.Entities))
	for i, e := range s.Entities {
		if e.Name == "" {
			return fmt.Errorf("%w: entity %d has no name", ErrInvalidScene, i)
		}
		if names[e.Name] {
			return fmt.Errorf("%w: duplicate entity name %q", ErrInvalidScene, e.Name)
		}
		names[e.Name] = true
		if !knownPrefabs[e.Prefab] {
			return fmt.Errorf("%w: entity %q: unknown prefab %q", ErrInvalidScene, e.Name, e.Prefab)
		}
		if e.Width < 0 || e.Height < 0 {
			return fmt.Errorf("%w: entity %q: negative size", ErrInvalidScene, e.Name)
		}
		if e.Prefab == "light" && (e.Light == nil || e.Light.Radius <= 0) {
			return fmt.Errorf("%w: entity %q: light needs a positive radius", ErrInvalidScene, e.Name)
		}
		if e.Prefab == "audio" && e.Audio == "" {
			return fmt.Errorf("%w: entity %q: audio needs a file", ErrInvalidScene, e.Name)
		}
	}
	if s.Game.Follow != "" && !names[s.Game.Follow] {
		return fmt.Errorf("%w: follow target %q not found", ErrInvalidScene, s.Game.Follow)
	}
	return nil
}

// CullMode maps the cull setting: "updates" (default) or "render".
func (g GameSpec) CullMode() (ecs.CullMode, error) {
	switch strings.ToLower(g.Cull) {
	case "", "updates":
		return ecs.CullUpdates, nil
	case "render", "render_only":
		return ecs.CullRenderOnly, nil
	}
	return 0, fmt.Errorf("%w: unknown cull mode %q", ErrInvalidScene, g.Cull)
}

// ResolvePolicy maps the resolve setting: "every_side" (default) or
// "nearest_side".
func (g GameSpec) ResolvePolicy() (ecs.ResolvePolicy, error) {
	switch strings.ToLower(g.Resolve) {
	case "", "every_side":
		return ecs.ResolveEveryWinningSide, nil
	case "nearest_side":
		return ecs.ResolveNearestSideOnly, nil
	}
	return 0, fmt.Errorf("%w: unknown resolve policy %q", ErrInvalidScene, g.Resolve)
}

func (g GameSpec) GravityEnabled() bool {
	return g.Gravity == nil || *g.Gravity
}

// PositionY resolves the bottom anchor against the screen height.
func (e EntitySpec) PositionY(screenH int) float64 {
	if e.Bottom != nil {
		return float64(screenH) - *e.Bottom
	}
	return e.Y
}
