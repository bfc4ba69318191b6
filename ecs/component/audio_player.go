package component

import (
	"errors"

	"github.com/milk9111/boxsim/ecs"
)

var ErrNoClipLoader = errors.New("component: no clip loader")

// Clip is a playable sound. *audio.Player from ebiten satisfies it.
type Clip interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
}

type ClipLoader interface {
	LoadClip(path string) (Clip, error)
}

// ClipLoaderFunc adapts a function to ClipLoader.
type ClipLoaderFunc func(path string) (Clip, error)

func (f ClipLoaderFunc) LoadClip(path string) (Clip, error) {
	return f(path)
}

// AudioPlayer loads one clip on Start and plays it on demand.
type AudioPlayer struct {
	ecs.Base

	path   string
	loader ClipLoader
	clip   Clip
	err    error
}

func NewAudioPlayer(holder *ecs.Entity, path string, loader ClipLoader) *AudioPlayer {
	return &AudioPlayer{
		Base:   ecs.NewBase(holder),
		path:   path,
		loader: loader,
	}
}

func (a *AudioPlayer) Kind() ecs.Kind {
	return ecs.KindAudioPlayer
}

func (a *AudioPlayer) Start() {
	if a.loader == nil {
		a.err = ErrNoClipLoader
		return
	}
	a.clip, a.err = a.loader.LoadClip(a.path)
}

func (a *AudioPlayer) Update() {}

// Play starts the clip from the beginning unless it is already playing. It
// reports whether playback started.
func (a *AudioPlayer) Play() bool {
	if a.clip == nil || a.clip.IsPlaying() {
		return false
	}
	if err := a.clip.Rewind(); err != nil {
		a.err = err
		return false
	}
	a.clip.Play()
	return true
}

func (a *AudioPlayer) Stop() {
	if a.clip == nil {
		return
	}
	a.clip.Pause()
	if err := a.clip.Rewind(); err != nil {
		a.err = err
	}
}

func (a *AudioPlayer) Playing() bool {
	return a.clip != nil && a.clip.IsPlaying()
}

func (a *AudioPlayer) Path() string {
	return a.path
}

// Err is the last load or playback error.
func (a *AudioPlayer) Err() error {
	return a.err
}
