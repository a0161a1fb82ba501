// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build opencv

package imagesize

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/pdiddy/voc2yolo/pkg/types"
)

// OpenCVProber reads images through OpenCV's imread, which applies EXIF
// orientation and supports every format OpenCV was built with.
type OpenCVProber struct{}

func newOpenCVProber() (Prober, error) {
	return OpenCVProber{}, nil
}

// Probe implements Prober.
func (OpenCVProber) Probe(path string) (types.ImageSize, error) {
	if err := exists(path); err != nil {
		return types.ImageSize{}, err
	}
	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()
	if mat.Empty() {
		return types.ImageSize{}, fmt.Errorf("%w: %s: opencv could not decode image", ErrUnreadable, path)
	}
	return checked(path, mat.Cols(), mat.Rows())
}
