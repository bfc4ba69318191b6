package obj

import (
	"strings"

	"github.com/milk9111/boxsim/common"
)

// Mouse button codes.
const (
	ButtonLeft   = 0
	ButtonMiddle = 1
	ButtonRight  = 2
)

// ButtonToCode converts a button name to its code.
func ButtonToCode(name string) (int, bool) {
	switch strings.ToLower(name) {
	case "left":
		return ButtonLeft, true
	case "middle":
		return ButtonMiddle, true
	case "right":
		return ButtonRight, true
	}
	return 0, false
}

// Input holds the polled key and button state for one frame. Hosts call
// BeginFrame, then report the current state with SetKey, SetButton and
// SetCursor. Key names are lower case.
type Input struct {
	camera *Camera

	keys        map[string]bool
	prevKeys    map[string]bool
	buttons     map[int]bool
	prevButtons map[int]bool
	cursor      common.Vector2
}

func NewInput(camera *Camera) *Input {
	return &Input{
		camera:      camera,
		keys:        map[string]bool{},
		prevKeys:    map[string]bool{},
		buttons:     map[int]bool{},
		prevButtons: map[int]bool{},
	}
}

// BeginFrame makes the current state the previous one for edge detection.
func (i *Input) BeginFrame() {
	clear(i.prevKeys)
	for k, down := range i.keys {
		i.prevKeys[k] = down
	}
	clear(i.prevButtons)
	for b, down := range i.buttons {
		i.prevButtons[b] = down
	}
}

func (i *Input) SetKey(key string, down bool) {
	i.keys[strings.ToLower(key)] = down
}

// ReleaseAll marks every key and button as up.
func (i *Input) ReleaseAll() {
	clear(i.keys)
	clear(i.buttons)
}

func (i *Input) SetButton(code int, down bool) {
	i.buttons[code] = down
}

// SetCursor records the cursor position in screen coordinates.
func (i *Input) SetCursor(x, y float64) {
	i.cursor = common.Vec(x, y)
}

func (i *Input) KeyDown(key string) bool {
	return i.keys[strings.ToLower(key)]
}

// KeyPressed is true on the frame key went down.
func (i *Input) KeyPressed(key string) bool {
	key = strings.ToLower(key)
	return i.keys[key] && !i.prevKeys[key]
}

func (i *Input) ButtonDown(code int) bool {
	return i.buttons[code]
}

// ButtonPressed is true on the frame the button went down.
func (i *Input) ButtonPressed(code int) bool {
	return i.buttons[code] && !i.prevButtons[code]
}

// Cursor is the cursor position in screen coordinates.
func (i *Input) Cursor() common.Vector2 {
	return i.cursor
}

// CursorWorld is the cursor position in world coordinates.
func (i *Input) CursorWorld() common.Vector2 {
	return i.ScreenToWorld(i.cursor)
}

func (i *Input) ScreenToWorld(p common.Vector2) common.Vector2 {
	if i.camera == nil {
		return p
	}
	return i.camera.ScreenToWorld(p)
}
