package entity

import (
	"github.com/milk9111/boxsim/ecs"
	"github.com/milk9111/boxsim/ecs/component"
	"github.com/milk9111/boxsim/ecs/render"
	"github.com/milk9111/boxsim/prefabs"
)

func buildLight(_ *ecs.World, e *ecs.Entity, spec prefabs.EntitySpec, ctx *BuildContext) error {
	name := spec.Color
	if name == "" {
		name = "white"
	}
	c, err := render.ParseColor(name)
	if err != nil {
		return err
	}
	l := spec.Light
	if l == nil {
		l = &prefabs.LightSpec{}
	}
	if e.Width == 0 && e.Height == 0 {
		e.Width, e.Height = 1, 1
	}
	return addAll(e,
		component.NewRenderer(e, component.WithInterpolation(ctx.Interpolate)),
		component.NewLight(e, l.Radius, l.Intensity, c, l.MaxLevel),
	)
}
