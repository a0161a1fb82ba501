// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !opencv

package imagesize

import "errors"

func newOpenCVProber() (Prober, error) {
	return nil, errors.New("opencv image backend not available: rebuild with -tags opencv")
}
