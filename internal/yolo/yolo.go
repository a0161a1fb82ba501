// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package yolo normalizes pixel bounding boxes into YOLO labels and writes
// YOLO label files.
package yolo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/voc2yolo/pkg/types"
)

// LabelExt is the extension of YOLO label files.
const LabelExt = ".txt"

// Normalize converts a pixel box into center-relative fractions of size.
// size must have a positive width and height.
func Normalize(classID int, box types.Box, size types.ImageSize) types.Label {
	w := float64(size.Width)
	h := float64(size.Height)
	return types.Label{
		ClassID: classID,
		XCenter: (box.XMin + box.XMax) / 2 / w,
		YCenter: (box.YMin + box.YMax) / 2 / h,
		Width:   (box.XMax - box.XMin) / w,
		Height:  (box.YMax - box.YMin) / h,
	}
}

// Denormalize is the inverse of Normalize.
func Denormalize(l types.Label, size types.ImageSize) types.Box {
	w := float64(size.Width)
	h := float64(size.Height)
	cx, cy := l.XCenter*w, l.YCenter*h
	bw, bh := l.Width*w, l.Height*h
	return types.Box{
		XMin: cx - bw/2,
		YMin: cy - bh/2,
		XMax: cx + bw/2,
		YMax: cy + bh/2,
	}
}

// FormatLine renders l as "<id> <x> <y> <w> <h>\n" with six decimals.
func FormatLine(l types.Label) string {
	return fmt.Sprintf("%d %.6f %.6f %.6f %.6f\n", l.ClassID, l.XCenter, l.YCenter, l.Width, l.Height)
}

// LabelPath returns the label file path in dir for the given image filename.
func LabelPath(dir, imageFilename string) string {
	base := filepath.Base(imageFilename)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+LabelExt)
}

// WriteFile writes labels to path in a single write. An empty slice
// produces an empty file.
func WriteFile(path string, labels []types.Label) error {
	var b strings.Builder
	for _, l := range labels {
		b.WriteString(FormatLine(l))
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing label file %s: %w", path, err)
	}
	return nil
}
