// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package yolo

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/voc2yolo/pkg/types"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		box  types.Box
		size types.ImageSize
		want string
	}{
		{
			name: "cat in 100x200",
			box:  types.Box{XMin: 10, YMin: 20, XMax: 50, YMax: 80},
			size: types.ImageSize{Width: 100, Height: 200},
			want: "0 0.300000 0.250000 0.400000 0.300000\n",
		},
		{
			name: "full frame",
			box:  types.Box{XMin: 0, YMin: 0, XMax: 640, YMax: 480},
			size: types.ImageSize{Width: 640, Height: 480},
			want: "0 0.500000 0.500000 1.000000 1.000000\n",
		},
		{
			name: "rounds to six decimals",
			box:  types.Box{XMin: 1, YMin: 1, XMax: 2, YMax: 2},
			size: types.ImageSize{Width: 3, Height: 7},
			want: "0 0.500000 0.214286 0.333333 0.142857\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatLine(Normalize(0, tt.box, tt.size))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_RoundTrip(t *testing.T) {
	sizes := []types.ImageSize{{Width: 100, Height: 200}, {Width: 1920, Height: 1080}, {Width: 333, Height: 77}}
	boxes := []types.Box{
		{XMin: 10, YMin: 20, XMax: 50, YMax: 80},
		{XMin: 0, YMin: 0, XMax: 1, YMax: 1},
		{XMin: 12.5, YMin: 3, XMax: 76, YMax: 70.25},
	}

	for _, size := range sizes {
		for _, box := range boxes {
			// Parse the formatted line to include the six-decimal rounding.
			line := FormatLine(Normalize(3, box, size))
			fields := strings.Fields(line)
			require.Len(t, fields, 5)

			id, err := strconv.Atoi(fields[0])
			require.NoError(t, err)
			assert.Equal(t, 3, id)

			var vals [4]float64
			for i := range vals {
				vals[i], err = strconv.ParseFloat(fields[i+1], 64)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, vals[i], 0.0)
				assert.LessOrEqual(t, vals[i], 1.0)
			}

			got := Denormalize(types.Label{XCenter: vals[0], YCenter: vals[1], Width: vals[2], Height: vals[3]}, size)
			tol := 1e-6 * float64(max(size.Width, size.Height))
			assert.InDelta(t, box.XMin, got.XMin, tol)
			assert.InDelta(t, box.YMin, got.YMin, tol)
			assert.InDelta(t, box.XMax, got.XMax, tol)
			assert.InDelta(t, box.YMax, got.YMax, tol)
		}
	}
}

func TestLabelPath(t *testing.T) {
	tests := []struct {
		image string
		want  string
	}{
		{"a.jpg", filepath.Join("out", "a.txt")},
		{"frame.0001.png", filepath.Join("out", "frame.0001.txt")},
		{"noext", filepath.Join("out", "noext.txt")},
		{"sub/b.jpeg", filepath.Join("out", "b.txt")},
	}
	for _, tt := range tests {
		t.Run(tt.image, func(t *testing.T) {
			assert.Equal(t, tt.want, LabelPath("out", tt.image))
		})
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "a.txt")
	labels := []types.Label{
		{ClassID: 0, XCenter: 0.3, YCenter: 0.25, Width: 0.4, Height: 0.3},
		{ClassID: 1, XCenter: 0.5, YCenter: 0.5, Width: 1, Height: 1},
	}
	require.NoError(t, WriteFile(path, labels))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0 0.300000 0.250000 0.400000 0.300000\n1 0.500000 0.500000 1.000000 1.000000\n", string(data))

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, WriteFile(empty, nil))
	info, err := os.Stat(empty)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}
