package entity

import (
	"github.com/milk9111/boxsim/ecs"
	"github.com/milk9111/boxsim/ecs/component"
	"github.com/milk9111/boxsim/prefabs"
)

func buildAudio(_ *ecs.World, e *ecs.Entity, spec prefabs.EntitySpec, ctx *BuildContext) error {
	return addAll(e, component.NewAudioPlayer(e, spec.Audio, ctx.Clips))
}
