package entity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/milk9111/boxsim/ecs"
	"github.com/milk9111/boxsim/ecs/component"
	"github.com/milk9111/boxsim/ecs/render"
	"github.com/milk9111/boxsim/prefabs"
)

var ErrUnknownPrefab = errors.New("entity: unknown prefab")

// BuildContext carries the host collaborators prefabs need.
type BuildContext struct {
	Images       render.ImageLoader
	Clips        component.ClipLoader
	ScreenHeight int
	Interpolate  bool
}

type prefabBuildFn func(w *ecs.World, e *ecs.Entity, spec prefabs.EntitySpec, ctx *BuildContext) error

var prefabRegistry = map[string]prefabBuildFn{
	"player": buildPlayer,
	"block":  buildBlock,
	"crate":  buildCrate,
	"light":  buildLight,
	"audio":  buildAudio,
}

// Prefabs lists the registered prefab names.
func Prefabs() []string {
	names := make([]string, 0, len(prefabRegistry))
	for name := range prefabRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildEntity creates one entity from spec and registers it with w.
func BuildEntity(w *ecs.World, spec prefabs.EntitySpec, ctx *BuildContext) (*ecs.Entity, error) {
	if w == nil {
		return nil, fmt.Errorf("entity: world is nil")
	}
	if ctx == nil {
		ctx = &BuildContext{}
	}
	build, ok := prefabRegistry[spec.Prefab]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrefab, spec.Prefab)
	}

	screenH := ctx.ScreenHeight
	if screenH <= 0 {
		screenH = 720
	}
	e := ecs.NewEntity(spec.Name, spec.X, spec.PositionY(screenH), spec.Width, spec.Height)
	if err := build(w, e, spec, ctx); err != nil {
		return nil, fmt.Errorf("entity: %s %q: %w", spec.Prefab, spec.Name, err)
	}
	if err := w.AddEntity(e); err != nil {
		return nil, fmt.Errorf("entity: %w", err)
	}
	return e, nil
}

// BuildScene registers every entity in the scene, in order. It stops at the
// first failure.
func BuildScene(w *ecs.World, scene *prefabs.SceneSpec, ctx *BuildContext) error {
	if scene == nil {
		return fmt.Errorf("entity: scene is nil")
	}
	if ctx == nil {
		ctx = &BuildContext{}
	}
	if ctx.ScreenHeight <= 0 {
		ctx.ScreenHeight = scene.Game.ScreenHeight
	}
	for _, spec := range scene.Entities {
		if _, err := BuildEntity(w, spec, ctx); err != nil {
			return err
		}
	}
	return nil
}

func physicsOptions(spec *prefabs.PhysicsSpec) []component.PhysicsOption {
	if spec == nil {
		return nil
	}
	opts := []component.PhysicsOption{component.WithPushable(spec.Pushable)}
	if spec.Mass != nil {
		opts = append(opts, component.WithMass(*spec.Mass))
	}
	if spec.Drag != nil {
		opts = append(opts, component.WithDrag(*spec.Drag))
	}
	if spec.Gravity != nil {
		opts = append(opts, component.WithGravity(*spec.Gravity))
	}
	if spec.MoveFactor != nil {
		opts = append(opts, component.WithMoveFactor(*spec.MoveFactor))
	}
	return opts
}

func rendererOptions(spec prefabs.EntitySpec, ctx *BuildContext, fallback string) ([]component.RendererOption, error) {
	opts := []component.RendererOption{component.WithInterpolation(ctx.Interpolate)}
	if spec.Image != "" {
		return append(opts, component.WithImage(spec.Image, ctx.Images)), nil
	}
	name := spec.Color
	if name == "" {
		name = fallback
	}
	c, err := render.ParseColor(name)
	if err != nil {
		return nil, err
	}
	return append(opts, component.WithColor(c)), nil
}

func addAll(e *ecs.Entity, comps ...ecs.Component) error {
	for _, c := range comps {
		if _, err := e.AddComponent(c); err != nil {
			return err
		}
	}
	return nil
}
