package ecs

import (
	"errors"
	"fmt"
)

var (
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
	ErrDuplicateComponent   = errors.New("ecs: component kind already attached")
	ErrForeignComponent     = errors.New("ecs: component belongs to another entity")
)

// Kind identifies a component slot. The set is fixed at compile time and an
// entity holds at most one component per kind.
type Kind uint8

const (
	KindPhysics Kind = iota
	KindCollider
	KindMovement
	KindRenderer
	KindAudioPlayer
	KindLight

	kindCount
)

var kindNames = [kindCount]string{
	KindPhysics:     "physics",
	KindCollider:    "collider",
	KindMovement:    "movement",
	KindRenderer:    "renderer",
	KindAudioPlayer: "audio_player",
	KindLight:       "light",
}

func (k Kind) Valid() bool {
	return k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Component is the capability set every attachable behaviour implements.
type Component interface {
	Kind() Kind
	Holder() *Entity
	Enabled() bool
	SetEnabled(enabled bool)
	Start()
	Update()
}

// Base carries the holder back-reference and the enabled flag. Concrete
// components embed it.
type Base struct {
	holder   *Entity
	disabled bool
}

func NewBase(holder *Entity) Base {
	return Base{holder: holder}
}

func (b *Base) Holder() *Entity {
	return b.holder
}

func (b *Base) Enabled() bool {
	return !b.disabled
}

func (b *Base) SetEnabled(enabled bool) {
	b.disabled = !enabled
}
