// Package detection finds the colored marker regions the classifier relies
// on: pure red for a head, pure blue for a phone.
//
// # Pipeline
//
// For each marker kind the detector:
//
//  1. Thresholds the image in 8-bit HSV space (H 0..179, S and V 0..255)
//     against a fixed, inclusive band.
//  2. Closes the binary mask with a 5x5 rectangular kernel to bridge small
//     gaps and fill pinholes.
//  3. Extracts the outer boundary of every 8-connected region. Holes and
//     anything nested inside them are not reported separately.
//
// Only the number of regions matters to the classifier; the bounds are kept
// for logging and tests.
//
// # Coordinate System
//
// Bounds are relative to the image's top-left corner, whatever its
// Bounds().Min is. X1/Y1 are inclusive and X2/Y2 exclusive.
//
// # OpenCV
//
// Building with the gocv tag adds OpenCVDetector, which runs the same steps
// through OpenCV. It needs a local OpenCV install and is otherwise
// interchangeable with ColorDetector.
package detection
