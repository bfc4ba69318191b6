package ecs

import (
	"errors"
	"time"
)

var ErrAlreadyLoaded = errors.New("ecs: scheduler already loaded")

// System runs once per tick after the entity pass.
type System interface {
	Update(w *World)
}

// SystemFunc adapts a function to System.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) {
	f(w)
}

// CullMode selects what the viewport test skips for off-screen entities.
type CullMode uint8

const (
	// CullUpdates skips Update for entities outside the extended viewport.
	CullUpdates CullMode = iota
	// CullRenderOnly updates every entity and only skips drawing.
	CullRenderOnly
)

func (m CullMode) String() string {
	if m == CullRenderOnly {
		return "render"
	}
	return "updates"
}

type State uint8

const (
	StateLoading State = iota
	StateRunning
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "loading"
	}
}

// Hooks are the per-phase override points. Any of them may be nil.
type Hooks struct {
	OnLoad        func()
	OnEarlyUpdate func()
	OnUpdate      func()
	OnEarlyRender func()
	OnRender      func()
}

type SchedulerConfig struct {
	// TickRate is the number of simulation ticks per second.
	TickRate int
	Cull     CullMode
	// MaxFrameLag caps the elapsed time taken from a single frame sample.
	// Zero means no cap.
	MaxFrameLag time.Duration
}

type SchedulerOption func(*Scheduler)

func WithViewport(v Viewport) SchedulerOption {
	return func(s *Scheduler) { s.viewport = v }
}

func WithHooks(h Hooks) SchedulerOption {
	return func(s *Scheduler) { s.hooks = h }
}

func WithSystems(systems ...System) SchedulerOption {
	return func(s *Scheduler) {
		for _, sys := range systems {
			s.Add(sys)
		}
	}
}

// Scheduler is a fixed-timestep loop. The host calls Tick (or Frame) once per
// display frame with the current wall clock; the scheduler runs as many whole
// ticks as the accumulated lag allows and keeps the remainder for the render
// interpolation fraction.
type Scheduler struct {
	world    *World
	viewport Viewport
	hooks    Hooks
	systems  []System

	interval time.Duration
	maxLag   time.Duration
	cull     CullMode

	lag    time.Duration
	last   time.Time
	resync bool
	state  State
	paused bool
	ticks  uint64
}

func NewScheduler(w *World, cfg SchedulerConfig, opts ...SchedulerOption) *Scheduler {
	rate := cfg.TickRate
	if rate <= 0 {
		rate = 120
	}
	s := &Scheduler{
		world:    w,
		interval: time.Second / time.Duration(rate),
		maxLag:   cfg.MaxFrameLag,
		cull:     cfg.Cull,
	}
	if s.interval <= 0 {
		s.interval = time.Nanosecond
	}
	for _, opt := range opts {
		opt(s)
	}
	w.setTickInterval(s.interval)
	return s
}

// Add appends a system to the tick order.
func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

func (s *Scheduler) World() *World {
	return s.world
}

// Load starts every registered entity, runs OnLoad and seeds the clock.
func (s *Scheduler) Load(now time.Time) error {
	if s.state != StateLoading {
		return ErrAlreadyLoaded
	}
	s.world.StartAll()
	if s.hooks.OnLoad != nil {
		s.world.begin()
		s.hooks.OnLoad()
		s.world.end()
	}
	s.last = now
	s.state = StateRunning
	if s.paused {
		s.state = StatePaused
	}
	return nil
}

// Tick consumes the wall-clock time since the previous call and runs zero or
// more whole ticks. It returns the number of ticks run.
func (s *Scheduler) Tick(now time.Time) int {
	if s.state != StateRunning || s.resync {
		s.last = now
		s.resync = false
		return 0
	}

	elapsed := now.Sub(s.last)
	s.last = now
	if elapsed < 0 {
		elapsed = 0
	}
	if s.maxLag > 0 && elapsed > s.maxLag {
		elapsed = s.maxLag
	}
	s.lag += elapsed

	n := 0
	for s.lag >= s.interval {
		s.step()
		s.lag -= s.interval
		n++
	}
	return n
}

// Render runs the render hooks around draw with the interpolation fraction.
func (s *Scheduler) Render(draw func(lagOffset float64)) {
	if s.state != StateRunning {
		return
	}
	if s.hooks.OnEarlyRender != nil {
		s.hooks.OnEarlyRender()
	}
	if draw != nil {
		draw(s.LagOffset())
	}
	if s.hooks.OnRender != nil {
		s.hooks.OnRender()
	}
}

// Frame is Tick followed by a single Render.
func (s *Scheduler) Frame(now time.Time, draw func(lagOffset float64)) int {
	n := s.Tick(now)
	s.Render(draw)
	return n
}

func (s *Scheduler) step() {
	w := s.world
	w.begin()
	if s.hooks.OnEarlyUpdate != nil {
		s.hooks.OnEarlyUpdate()
	}
	for _, e := range w.entities {
		if s.cull == CullUpdates && s.viewport != nil && !s.viewport.Contains(e) {
			continue
		}
		e.Update()
	}
	for _, sys := range s.systems {
		sys.Update(w)
	}
	if s.viewport != nil {
		s.viewport.Update()
	}
	if s.hooks.OnUpdate != nil {
		s.hooks.OnUpdate()
	}
	w.end()
	w.events.flush()
	s.ticks++
}

// Visible reports whether the render pass should draw e.
func (s *Scheduler) Visible(e *Entity) bool {
	return s.viewport == nil || s.viewport.Contains(e)
}

func (s *Scheduler) Pause() {
	s.SetPaused(true)
}

// Resume unpauses. The next Tick only re-samples the clock so the time spent
// paused never turns into a backlog of ticks.
func (s *Scheduler) Resume() {
	s.SetPaused(false)
}

func (s *Scheduler) SetPaused(paused bool) {
	if s.paused == paused {
		return
	}
	s.paused = paused
	if s.state == StateLoading {
		return
	}
	if paused {
		s.state = StatePaused
		return
	}
	s.state = StateRunning
	s.resync = true
}

func (s *Scheduler) Paused() bool {
	return s.paused
}

func (s *Scheduler) State() State {
	return s.state
}

// Interval is the fixed tick duration.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Lag is the wall-clock time not yet consumed by a tick.
func (s *Scheduler) Lag() time.Duration {
	return s.lag
}

// LagOffset is Lag as a fraction of the tick interval, in [0, 1).
func (s *Scheduler) LagOffset() float64 {
	return float64(s.lag) / float64(s.interval)
}

// Ticks is the number of ticks run since Load.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}
