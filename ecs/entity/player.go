package entity

import (
	"image/color"

	"github.com/milk9111/boxsim/ecs"
	"github.com/milk9111/boxsim/ecs/component"
	"github.com/milk9111/boxsim/prefabs"
)

// buildPlayer makes the keyboard-driven box: a white body with a face,
// physics, a collider and movement.
func buildPlayer(w *ecs.World, e *ecs.Entity, spec prefabs.EntitySpec, ctx *BuildContext) error {
	ropts, err := rendererOptions(spec, ctx, "white")
	if err != nil {
		return err
	}
	r := component.NewRenderer(e, ropts...)
	if spec.Image == "" {
		drawFace(r)
	}

	var mopts []component.MovementOption
	if len(spec.Keybinds) > 0 {
		kb, err := component.ParseKeybinds(spec.Keybinds)
		if err != nil {
			return err
		}
		mopts = append(mopts, component.WithKeybinds(kb))
	}

	return addAll(e,
		r,
		component.NewPhysics(e, w, physicsOptions(spec.Physics)...),
		component.NewCollider(e, w, spec.Width, spec.Height),
		component.NewMovement(e, w, spec.Speed, spec.Jump, mopts...),
	)
}

func drawFace(r *component.Renderer) {
	black := color.RGBA{A: 0xff}
	_ = r.SetPixels(black, 10, 10, 10, 10)
	_ = r.SetPixels(black, 30, 10, 10, 10)
	_ = r.SetPixels(black, 5, 30, 40, 5)
}
