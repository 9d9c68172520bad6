//go:build gocv

package main

import "github.com/ironsheep/phone-usage-eval/internal/detection"

const detectorName = "opencv"

// newDetector returns the OpenCV-backed marker detector. Its color
// conversion matches OpenCV's own, which the pure-Go detector only
// approximates on JPEG noise.
func newDetector() detection.RegionDetector {
	return detection.NewOpenCVDetector()
}
