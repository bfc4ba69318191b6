package obj

import (
	"github.com/milk9111/boxsim/common"
	"github.com/milk9111/boxsim/ecs"
)

// Camera tracks a followed entity and answers viewport culling queries.
// PosX/PosY are the world coordinates shown at the centre of the screen.
type Camera struct {
	PosX float64
	PosY float64

	screenW int
	screenH int

	// smoothing factor (0..1). 0 snaps to the target every tick.
	smooth float64
	margin float64
	follow *ecs.Entity
}

// NewCamera creates a camera with the given logical screen size, looking at
// the screen-sized region starting at the world origin.
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		PosX:    float64(screenW) / 2.0,
		PosY:    float64(screenH) / 2.0,
		screenW: screenW,
		screenH: screenH,
		margin:  common.ViewportMargin,
	}
}

// SetScreenSize updates the logical screen size used by the camera.
func (c *Camera) SetScreenSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.screenW = w
	c.screenH = h
}

func (c *Camera) ScreenSize() (int, int) {
	return c.screenW, c.screenH
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = common.Clamp(f, 0, 1)
}

// SetMargin sets how far past each screen edge entities still count as
// visible.
func (c *Camera) SetMargin(m float64) {
	if m < 0 {
		m = 0
	}
	c.margin = m
}

// Follow makes the camera track e. nil stops following.
func (c *Camera) Follow(e *ecs.Entity) {
	c.follow = e
}

func (c *Camera) Following() *ecs.Entity {
	return c.follow
}

// Update moves the camera toward the followed entity's centre. The scheduler
// calls it once per tick after every entity has updated.
func (c *Camera) Update() {
	if c.follow == nil {
		return
	}
	target := c.follow.Bounds().Center()
	if c.smooth <= 0 || c.smooth >= 1 {
		c.PosX = target.X
		c.PosY = target.Y
		return
	}
	c.PosX = common.Lerp(c.PosX, target.X, c.smooth)
	c.PosY = common.Lerp(c.PosY, target.Y, c.smooth)
}

// SnapTo immediately centres the camera on x, y.
func (c *Camera) SnapTo(x, y float64) {
	c.PosX = x
	c.PosY = y
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	return c.PosX - float64(c.screenW)/2.0, c.PosY - float64(c.screenH)/2.0
}

// Position is the world-space top-left of the view.
func (c *Camera) Position() common.Vector2 {
	x, y := c.ViewTopLeft()
	return common.Vec(x, y)
}

// Offset is the translation that maps world space to screen space.
func (c *Camera) Offset() common.Vector2 {
	x, y := c.ViewTopLeft()
	return common.Vec(-x, -y)
}

// View is the visible world rectangle.
func (c *Camera) View() common.Rect {
	x, y := c.ViewTopLeft()
	return common.Rect{X: x, Y: y, Width: float64(c.screenW), Height: float64(c.screenH)}
}

// Contains reports whether e touches the view extended by the margin on
// every side.
func (c *Camera) Contains(e *ecs.Entity) bool {
	if e == nil {
		return false
	}
	return c.View().Expand(c.margin).BB().Intersects(e.Bounds().BB())
}

// ScreenToWorld converts a screen position to world coordinates.
func (c *Camera) ScreenToWorld(p common.Vector2) common.Vector2 {
	return p.Minus(c.Offset())
}

// WorldToScreen converts a world position to screen coordinates.
func (c *Camera) WorldToScreen(p common.Vector2) common.Vector2 {
	return p.Plus(c.Offset())
}
