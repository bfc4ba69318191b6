package entity

import (
	"github.com/milk9111/boxsim/ecs"
	"github.com/milk9111/boxsim/ecs/component"
	"github.com/milk9111/boxsim/prefabs"
)

// buildBlock makes a static collidable box drawn as a colour or an image.
func buildBlock(w *ecs.World, e *ecs.Entity, spec prefabs.EntitySpec, ctx *BuildContext) error {
	ropts, err := rendererOptions(spec, ctx, "gray")
	if err != nil {
		return err
	}
	return addAll(e,
		component.NewRenderer(e, ropts...),
		component.NewCollider(e, w, spec.Width, spec.Height),
	)
}

// buildCrate is a block with physics. Crates are pushable unless the scene
// provides its own physics settings.
func buildCrate(w *ecs.World, e *ecs.Entity, spec prefabs.EntitySpec, ctx *BuildContext) error {
	ropts, err := rendererOptions(spec, ctx, "saddlebrown")
	if err != nil {
		return err
	}
	popts := []component.PhysicsOption{component.WithPushable(true)}
	if spec.Physics != nil {
		popts = physicsOptions(spec.Physics)
	}
	return addAll(e,
		component.NewRenderer(e, ropts...),
		component.NewPhysics(e, w, popts...),
		component.NewCollider(e, w, spec.Width, spec.Height),
	)
}
