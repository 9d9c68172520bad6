//go:build gocv

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ironsheep/phone-usage-eval/internal/detection"
)

func TestNewDetector_OpenCV(t *testing.T) {
	assert.IsType(t, &detection.OpenCVDetector{}, newDetector())
	assert.Equal(t, "opencv", detectorName)
}
