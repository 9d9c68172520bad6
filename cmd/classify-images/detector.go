//go:build !gocv

package main

import "github.com/ironsheep/phone-usage-eval/internal/detection"

const detectorName = "color"

// newDetector returns the pure-Go marker detector.
func newDetector() detection.RegionDetector {
	return detection.NewColorDetector()
}
