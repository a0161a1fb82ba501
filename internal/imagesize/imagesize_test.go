// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package imagesize

import (
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/pdiddy/voc2yolo/pkg/types"
)

func writeImage(t *testing.T, dir, name string, w, h int, enc func(io.Writer, image.Image) error) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, enc(f, img))
	return path
}

func TestConfigProber(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		enc  func(io.Writer, image.Image) error
	}{
		{"a.png", png.Encode},
		{"a.jpg", func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, nil) }},
		{"a.gif", func(w io.Writer, m image.Image) error { return gif.Encode(w, m, nil) }},
		{"a.bmp", bmp.Encode},
		{"a.tiff", func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeImage(t, dir, tt.name, 100, 200, tt.enc)

			size, err := ConfigProber{}.Probe(path)
			require.NoError(t, err)
			assert.Equal(t, types.ImageSize{Width: 100, Height: 200}, size)
		})
	}
}

func TestOrientedProber(t *testing.T) {
	dir := t.TempDir()
	path := writeImage(t, dir, "a.png", 64, 48, png.Encode)

	size, err := OrientedProber{}.Probe(path)
	require.NoError(t, err)
	assert.Equal(t, types.ImageSize{Width: 64, Height: 48}, size)
}

func TestProbe_Errors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.jpg")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	missing := filepath.Join(dir, "missing.jpg")

	probers := map[string]Prober{
		"config":   ConfigProber{},
		"oriented": OrientedProber{},
	}

	for name, p := range probers {
		t.Run(name+"/missing", func(t *testing.T) {
			_, err := p.Probe(missing)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.NotErrorIs(t, err, ErrUnreadable)
		})
		t.Run(name+"/garbage", func(t *testing.T) {
			_, err := p.Probe(garbage)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnreadable)
			assert.NotErrorIs(t, err, ErrNotFound)
		})
		t.Run(name+"/directory", func(t *testing.T) {
			_, err := p.Probe(dir)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnreadable)
		})
	}
}

func TestNew(t *testing.T) {
	p, err := New("")
	require.NoError(t, err)
	assert.IsType(t, ConfigProber{}, p)

	p, err = New(types.BackendOriented)
	require.NoError(t, err)
	assert.IsType(t, OrientedProber{}, p)

	_, err = New("magic")
	assert.ErrorContains(t, err, "unknown image backend")
}

func TestResolve(t *testing.T) {
	assert.Equal(t, filepath.Join("imgs", "a.jpg"), Resolve("imgs", "a.jpg"))
	assert.Equal(t, filepath.Join("imgs", "a.jpg"), Resolve("imgs", "/home/user/VOC/JPEGImages/a.jpg"))
}
