package main

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/boxsim/obj"
)

var mouseButtons = []struct {
	button ebiten.MouseButton
	code   int
}{
	{ebiten.MouseButtonLeft, obj.ButtonLeft},
	{ebiten.MouseButtonMiddle, obj.ButtonMiddle},
	{ebiten.MouseButtonRight, obj.ButtonRight},
}

// pollInput copies ebiten's keyboard and mouse state into in. Key names are
// ebiten's, lower-cased ("a", "space", "arrowleft").
func pollInput(in *obj.Input) {
	in.BeginFrame()
	in.ReleaseAll()
	pressedKeys = inpututil.AppendPressedKeys(pressedKeys[:0])
	for _, k := range pressedKeys {
		in.SetKey(strings.ToLower(k.String()), true)
	}
	for _, b := range mouseButtons {
		in.SetButton(b.code, ebiten.IsMouseButtonPressed(b.button))
	}
	x, y := ebiten.CursorPosition()
	in.SetCursor(float64(x), float64(y))
}

var pressedKeys []ebiten.Key
