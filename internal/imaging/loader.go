package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
)

// JPEGExtensions lists the file extensions treated as images when scanning
// folders. Matching is case-insensitive.
var JPEGExtensions = []string{".jpg", ".jpeg"}

// IsJPEGName reports whether name ends in one of JPEGExtensions, ignoring case.
func IsJPEGName(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range JPEGExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Open reads and decodes the image at path.
//
// The format is detected from the file contents, not the extension. JPEG
// EXIF orientation is applied so the pixels are in display order. The
// result is always copied into a fresh *image.RGBA.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the contents are not a supported image format
func Open(path string) (*image.RGBA, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return clone.AsRGBA(img), nil
}

// Loader opens image files. The zero value is ready to use.
type Loader struct{}

// Load implements the loader used by the batch classifier.
func (Loader) Load(path string) (image.Image, error) {
	return Open(path)
}
