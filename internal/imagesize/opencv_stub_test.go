// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !opencv

package imagesize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/voc2yolo/pkg/types"
)

func TestNew_OpenCVUnavailable(t *testing.T) {
	_, err := New(types.BackendOpenCV)
	assert.ErrorContains(t, err, "-tags opencv")
}
