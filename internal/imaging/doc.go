// Package imaging provides the pixel-level building blocks for color-marker
// detection: loading images, converting pixels to HSV, thresholding them into
// binary masks, and cleaning those masks with morphological operations.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based with the origin at the
// top-left corner, X increasing rightward and Y increasing downward. Masks
// are always anchored at (0,0) regardless of the source image bounds.
//
// # HSV Representation
//
// HSV values use the common 8-bit convention:
//   - H: hue in degrees divided by 2 (0-179; 0 = red, 60 = green, 120 = blue)
//   - S: saturation scaled to 0-255
//   - V: value (brightness) scaled to 0-255
//
// Pure red (#FF0000) is therefore (0,255,255) and pure blue (#0000FF) is
// (120,255,255).
//
// # Morphology
//
// Erosion and dilation use a square structuring element anchored at its
// center. Pixels outside the mask never switch a dilation on and never
// switch an erosion off, so a closing leaves regions touching the border
// intact.
//
// # Thread Safety
//
// All functions are stateless and may be called concurrently on different
// inputs.
package imaging
