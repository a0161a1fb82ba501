// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package imagesize reads the pixel dimensions of image files.
//
// Probers distinguish a missing image (ErrNotFound) from one that exists
// but cannot be read (ErrUnreadable) so callers can log the two cases
// separately.
package imagesize

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pdiddy/voc2yolo/pkg/types"
)

var (
	// ErrNotFound reports that no file exists at the image path.
	ErrNotFound = errors.New("image not found")
	// ErrUnreadable reports that the image exists but its size could not be read.
	ErrUnreadable = errors.New("image unreadable")
)

// Prober returns the dimensions of the image at path.
type Prober interface {
	Probe(path string) (types.ImageSize, error)
}

// New returns the prober for backend. An empty backend selects
// types.BackendConfig.
func New(backend types.ImageBackend) (Prober, error) {
	switch backend {
	case types.BackendConfig, "":
		return ConfigProber{}, nil
	case types.BackendOriented:
		return OrientedProber{}, nil
	case types.BackendOpenCV:
		return newOpenCVProber()
	default:
		return nil, fmt.Errorf("unknown image backend %q: use config, oriented, or opencv", backend)
	}
}

// Resolve returns the path of filename inside dir. Only the base name of
// filename is used, so annotations carrying absolute or foreign paths
// still resolve against dir.
func Resolve(dir, filename string) string {
	return filepath.Join(dir, filepath.Base(filepath.FromSlash(filename)))
}

// ConfigProber reads dimensions from the image header without decoding
// pixel data. JPEG, PNG, GIF, BMP, TIFF, and WebP are supported.
type ConfigProber struct{}

// Probe implements Prober.
func (ConfigProber) Probe(path string) (types.ImageSize, error) {
	f, err := open(path)
	if err != nil {
		return types.ImageSize{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil && isWebP(path) {
		// x/image/webp rejects some encoder variants; retry with libwebp.
		if _, serr := f.Seek(0, 0); serr == nil {
			cfg, err = webp.DecodeConfig(f)
		}
	}
	if err != nil {
		return types.ImageSize{}, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	return checked(path, cfg.Width, cfg.Height)
}

// OrientedProber decodes the full image and applies its EXIF orientation,
// so a portrait photo stored sideways reports its displayed dimensions.
type OrientedProber struct{}

// Probe implements Prober.
func (OrientedProber) Probe(path string) (types.ImageSize, error) {
	if err := exists(path); err != nil {
		return types.ImageSize{}, err
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return types.ImageSize{}, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	b := img.Bounds()
	return checked(path, b.Dx(), b.Dy())
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, classify(path, err)
	}
	return f, nil
}

func exists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return classify(path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrUnreadable, path)
	}
	return nil
}

func classify(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
}

func checked(path string, w, h int) (types.ImageSize, error) {
	if w <= 0 || h <= 0 {
		return types.ImageSize{}, fmt.Errorf("%w: %s has empty dimensions %dx%d", ErrUnreadable, path, w, h)
	}
	return types.ImageSize{Width: w, Height: h}, nil
}

func isWebP(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".webp")
}
