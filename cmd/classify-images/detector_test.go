//go:build !gocv

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ironsheep/phone-usage-eval/internal/detection"
)

func TestNewDetector_Default(t *testing.T) {
	assert.IsType(t, &detection.ColorDetector{}, newDetector())
	assert.Equal(t, "color", detectorName)
}
