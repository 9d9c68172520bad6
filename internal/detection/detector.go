package detection

import (
	"image"

	"github.com/ironsheep/phone-usage-eval/internal/imaging"
)

// Detections holds the regions found in one image, grouped by what they
// mark.
type Detections struct {
	// Heads are regions carrying the head marker color.
	Heads []Bounds `json:"heads"`

	// Phones are regions carrying the phone marker color.
	Phones []Bounds `json:"phones"`
}

// RegionDetector finds labelled regions of interest in an image.
// Implementations must not retain img.
type RegionDetector interface {
	Detect(img image.Image) Detections
}

// Marker color bands in 8-bit HSV. Pure red (#FF0000) marks heads and pure
// blue (#0000FF) marks phones; the one-step saturation/value tolerance
// absorbs rounding in the color conversion.
var (
	HeadRange = imaging.HSVRange{
		Lower: imaging.HSV{H: 0, S: 254, V: 254},
		Upper: imaging.HSV{H: 0, S: 255, V: 255},
	}
	PhoneRange = imaging.HSVRange{
		Lower: imaging.HSV{H: 120, S: 254, V: 254},
		Upper: imaging.HSV{H: 120, S: 255, V: 255},
	}
)

// ClosingSize is the side of the square element used to close each color
// mask before regions are extracted.
const ClosingSize = 5

// ColorDetector finds regions painted in the exact head and phone marker
// colors. It is meant for annotated test images, not photographs: any
// JPEG artefact that shifts a pixel off the marker color drops that pixel.
type ColorDetector struct {
	head  imaging.HSVRange
	phone imaging.HSVRange
	close int
}

// NewColorDetector returns a detector using HeadRange, PhoneRange and
// ClosingSize.
func NewColorDetector() *ColorDetector {
	return &ColorDetector{
		head:  HeadRange,
		phone: PhoneRange,
		close: ClosingSize,
	}
}

// Detect thresholds img for each marker color, closes the masks, and
// returns the bounding boxes of the outermost regions.
func (d *ColorDetector) Detect(img image.Image) Detections {
	return Detections{
		Heads:  d.regions(img, d.head),
		Phones: d.regions(img, d.phone),
	}
}

func (d *ColorDetector) regions(img image.Image, r imaging.HSVRange) []Bounds {
	mask := imaging.Close(imaging.InRange(img, r), d.close)
	return ExternalRegions(mask)
}
