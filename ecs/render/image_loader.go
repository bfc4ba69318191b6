package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
)

var ErrImageNotFound = errors.New("render: image not found")

// ImageLoader resolves an image path to decoded pixels.
type ImageLoader interface {
	LoadImage(path string) (image.Image, error)
}

// ImageLoaderFunc adapts a function to ImageLoader.
type ImageLoaderFunc func(path string) (image.Image, error)

func (f ImageLoaderFunc) LoadImage(path string) (image.Image, error) {
	return f(path)
}

// FSLoader loads images from the given filesystems in order, then from disk.
type FSLoader struct {
	Sources []fs.FS
}

// LoadImage loads an image from the sources or filesystem and caches it by key.
func (l FSLoader) LoadImage(key string) (image.Image, error) {
	return LoadImage(key, l.Sources...)
}

// LoadImage loads an image from the sources or filesystem and caches it by key.
func LoadImage(key string, sources ...fs.FS) (image.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("empty image key")
	}
	if img := GetImage(key); img != nil {
		return img, nil
	}
	img, err := loadImageFromSourcesOrFS(key, sources)
	if err != nil {
		return nil, err
	}
	RegisterImage(key, img)
	return img, nil
}

func loadImageFromSourcesOrFS(path string, sources []fs.FS) (image.Image, error) {
	clean := filepath.ToSlash(filepath.Clean(path))
	for _, src := range sources {
		if src == nil {
			continue
		}
		for _, p := range []string{clean, filepath.Base(clean)} {
			if b, err := fs.ReadFile(src, p); err == nil {
				return decodeImage(p, b)
			}
		}
	}
	tried := []string{path, filepath.Join("assets", path), filepath.Base(path)}
	for _, p := range tried {
		if b, err := os.ReadFile(p); err == nil {
			return decodeImage(p, b)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrImageNotFound, path)
}

func decodeImage(name string, b []byte) (image.Image, error) {
	im, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", name, err)
	}
	return im, nil
}
