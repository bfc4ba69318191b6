package ecs

import "github.com/milk9111/boxsim/common"

// InputSource is the polled input collaborator. Keys are lower-case names
// ("a", "space", "arrowleft"); buttons are mouse button codes (0 left,
// 1 middle, 2 right).
type InputSource interface {
	KeyDown(key string) bool
	KeyPressed(key string) bool
	ButtonDown(code int) bool
	ButtonPressed(code int) bool
	ScreenToWorld(p common.Vector2) common.Vector2
}

// Viewport is the camera collaborator the scheduler drives once per tick.
type Viewport interface {
	// Update moves the view after all entities have updated.
	Update()
	// Contains reports whether e is inside the extended visible region.
	Contains(e *Entity) bool
}
