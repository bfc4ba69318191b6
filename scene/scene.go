package scene

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/milk9111/boxsim/ecs"
	"github.com/milk9111/boxsim/ecs/component"
	"github.com/milk9111/boxsim/ecs/entity"
	"github.com/milk9111/boxsim/ecs/render"
	"github.com/milk9111/boxsim/ecs/system"
	"github.com/milk9111/boxsim/obj"
	"github.com/milk9111/boxsim/prefabs"
)

type Options struct {
	Name string
	// TickRate overrides the scene tick rate when positive.
	TickRate    int
	MaxFrameLag time.Duration
	Images      render.ImageLoader
	Clips       component.ClipLoader
	// ViewWidth and ViewHeight size the camera when both are positive.
	// Otherwise the scene's screen size is used.
	ViewWidth  int
	ViewHeight int
	Now        time.Time
}

// Scene owns everything built from one scene file: the world, its scheduler
// and the camera and input the hosts drive.
type Scene struct {
	Spec       *prefabs.SceneSpec
	World      *ecs.World
	Scheduler  *ecs.Scheduler
	Camera     *obj.Camera
	Input      *obj.Input
	Script     *system.ScriptSystem
	Background color.RGBA
}

// Load reads the scene file, builds its entities and loads the scheduler at
// opts.Now.
func Load(opts Options) (*Scene, error) {
	if opts.Name == "" {
		opts.Name = prefabs.DefaultScene
	}
	spec, err := prefabs.LoadScene(opts.Name)
	if err != nil {
		return nil, err
	}
	if opts.TickRate > 0 {
		spec.Game.TickRate = opts.TickRate
	}
	cull, _ := spec.Game.CullMode()
	policy, _ := spec.Game.ResolvePolicy()
	background, err := render.ParseColor(spec.Game.Background)
	if err != nil {
		return nil, fmt.Errorf("scene background: %w", err)
	}

	viewW, viewH := spec.Game.ScreenWidth, spec.Game.ScreenHeight
	if opts.ViewWidth > 0 && opts.ViewHeight > 0 {
		viewW, viewH = opts.ViewWidth, opts.ViewHeight
	}
	camera := obj.NewCamera(viewW, viewH)
	camera.SetSmooth(spec.Game.CameraSmooth)
	if m := spec.Game.ViewportMargin; m != nil {
		camera.SetMargin(*m)
	}
	input := obj.NewInput(camera)

	world := ecs.NewWorld(
		ecs.WithGravity(spec.Game.GravityEnabled()),
		ecs.WithInput(input),
		ecs.WithResolvePolicy(policy),
	)
	ctx := &entity.BuildContext{
		Images:       opts.Images,
		Clips:        opts.Clips,
		ScreenHeight: spec.Game.ScreenHeight,
		Interpolate:  spec.Game.Interpolate,
	}
	if err := entity.BuildScene(world, spec, ctx); err != nil {
		return nil, err
	}
	if spec.Game.Follow != "" {
		if e, ok := world.GetEntity(spec.Game.Follow); ok {
			camera.Follow(e)
			c := e.Bounds().Center()
			camera.SnapTo(c.X, c.Y)
		}
	}

	s := &Scene{
		Spec:       spec,
		World:      world,
		Camera:     camera,
		Input:      input,
		Background: background,
	}

	var systems []ecs.System
	if spec.Game.Script != "" {
		s.Script, err = system.LoadScriptSystem(spec.Game.Script)
		if err != nil {
			return nil, err
		}
		systems = append(systems, s.Script)
	}

	s.Scheduler = ecs.NewScheduler(world, ecs.SchedulerConfig{
		TickRate:    spec.Game.TickRate,
		Cull:        cull,
		MaxFrameLag: opts.MaxFrameLag,
	},
		ecs.WithViewport(camera),
		ecs.WithSystems(systems...),
		ecs.WithHooks(ecs.Hooks{OnLoad: s.onLoad}),
	)
	if err := s.Scheduler.Load(opts.Now); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scene) onLoad() {
	if s.Script == nil {
		return
	}
	if err := s.Script.OnLoad(s.World); err != nil {
		log.Printf("script: %s: %v", s.Script.Name(), err)
	}
}

func (s *Scene) Title() string {
	if s.Spec.Game.Title != "" {
		return s.Spec.Game.Title
	}
	return "boxsim"
}
