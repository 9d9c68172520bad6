// Package classify labels images as phone-in-use or not from marker
// detections, and runs that labelling over folders of images.
package classify

import (
	"image"

	"github.com/ironsheep/phone-usage-eval/internal/detection"
)

const (
	// ClassPhoneInUse is written when both a head and a phone were found.
	ClassPhoneInUse = 0

	// ClassNotInUse is written otherwise, including for unreadable images.
	ClassNotInUse = 1
)

// Decide applies the decision rule: an image is phone-in-use when at least
// one head region and at least one phone region were detected. Where the
// regions are relative to each other does not matter.
func Decide(d detection.Detections) int {
	if len(d.Heads) > 0 && len(d.Phones) > 0 {
		return ClassPhoneInUse
	}
	return ClassNotInUse
}

// ImageLoader opens an image file.
type ImageLoader interface {
	Load(path string) (image.Image, error)
}

// DetectFile loads path and runs the detector on it. A load failure yields
// empty detections alongside the error so callers may treat it as "nothing
// found".
func DetectFile(loader ImageLoader, detector detection.RegionDetector, path string) (detection.Detections, error) {
	img, err := loader.Load(path)
	if err != nil {
		return detection.Detections{}, err
	}
	return detector.Detect(img), nil
}
