//go:build gocv

package detection

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
	"gocv.io/x/gocv"

	"github.com/ironsheep/phone-usage-eval/internal/imaging"
)

// OpenCVDetector is a ColorDetector equivalent backed by OpenCV. It is only
// built with the gocv tag, which needs OpenCV installed.
type OpenCVDetector struct {
	head  imaging.HSVRange
	phone imaging.HSVRange
	close int
}

// NewOpenCVDetector returns a detector using HeadRange, PhoneRange and
// ClosingSize.
func NewOpenCVDetector() *OpenCVDetector {
	return &OpenCVDetector{
		head:  HeadRange,
		phone: PhoneRange,
		close: ClosingSize,
	}
}

// Detect converts img to an HSV matrix and extracts the marker regions with
// OpenCV's range threshold, closing and external contour search. An image
// that cannot be converted yields no detections.
func (d *OpenCVDetector) Detect(img image.Image) Detections {
	empty := Detections{Heads: []Bounds{}, Phones: []Bounds{}}

	rgba := clone.AsRGBA(img)
	bounds := rgba.Bounds()
	if bounds.Empty() {
		return empty
	}

	mat, err := gocv.NewMatFromBytes(bounds.Dy(), bounds.Dx(), gocv.MatTypeCV8UC4, rgba.Pix)
	if err != nil {
		return empty
	}
	defer mat.Close()

	bgr := gocv.NewMat()
	defer bgr.Close()
	gocv.CvtColor(mat, &bgr, gocv.ColorRGBAToBGR)

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(bgr, &hsv, gocv.ColorBGRToHSV)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: d.close, Y: d.close})
	defer kernel.Close()

	return Detections{
		Heads:  matRegions(hsv, d.head, kernel),
		Phones: matRegions(hsv, d.phone, kernel),
	}
}

func matRegions(hsv gocv.Mat, r imaging.HSVRange, kernel gocv.Mat) []Bounds {
	lower := gocv.NewScalar(float64(r.Lower.H), float64(r.Lower.S), float64(r.Lower.V), 0)
	upper := gocv.NewScalar(float64(r.Upper.H), float64(r.Upper.S), float64(r.Upper.V), 0)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.InRangeWithScalar(hsv, lower, upper, &mask)

	closed := gocv.NewMat()
	defer closed.Close()
	gocv.MorphologyEx(mask, &closed, gocv.MorphClose, kernel)

	contours := gocv.FindContours(closed, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	regions := make([]Bounds, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		rect := gocv.BoundingRect(contours.At(i))
		regions = append(regions, Bounds{X1: rect.Min.X, Y1: rect.Min.Y, X2: rect.Max.X, Y2: rect.Max.Y})
	}
	return regions
}
