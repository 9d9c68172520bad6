package detection

import (
	"github.com/ironsheep/phone-usage-eval/internal/imaging"
)

// Bounds represents a rectangular bounding box in pixel coordinates.
//
// The coordinate convention follows standard image bounds:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
//
// A single-pixel region at (5,7) therefore has Bounds{5, 7, 6, 8}.
type Bounds struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge (exclusive)
	Y2 int `json:"y2"` // Bottom edge (exclusive)
}

// Width is X2 - X1.
func (b Bounds) Width() int { return b.X2 - b.X1 }

// Height is Y2 - Y1.
func (b Bounds) Height() int { return b.Y2 - b.Y1 }

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// ExternalRegions returns the bounding box of every outermost region in a
// binary mask.
//
// A region is a group of set pixels joined by 8-connectivity (diagonals
// count). Regions that sit inside a hole of another region are not
// outermost and are skipped, so a ring with a dot in its middle yields one
// box. Boxes are ordered by each region's first pixel in raster order (top
// to bottom, then left to right).
//
// # Algorithm
//
//  1. Flood-fill the clear pixels reachable from the mask edge using
//     4-connectivity. These form the outside; clear pixels not reached are
//     holes.
//  2. Scan in raster order. The first pixel of each unvisited region is its
//     top-left-most pixel, so the pixel directly above it belongs to the
//     area that encloses the region. The region is outermost when that
//     pixel is off the mask or part of the outside.
//  3. Flood-fill the region with 8-connectivity and record its extent.
func ExternalRegions(m *imaging.Mask) []Bounds {
	width, height := m.Width, m.Height
	outside := markOutside(m)
	visited := make([]bool, width*height)

	regions := make([]Bounds, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if !m.Pix[i] || visited[i] {
				continue
			}

			b := floodFill(m, visited, x, y)
			if y == 0 || outside[i-width] {
				regions = append(regions, b)
			}
		}
	}

	return regions
}

// markOutside flags the clear pixels connected to the mask edge through
// clear 4-neighbors.
func markOutside(m *imaging.Mask) []bool {
	width, height := m.Width, m.Height
	outside := make([]bool, width*height)
	stack := make([]Point, 0)

	push := func(x, y int) {
		if x < 0 || x >= width || y < 0 || y >= height {
			return
		}
		i := y*width + x
		if m.Pix[i] || outside[i] {
			return
		}
		outside[i] = true
		stack = append(stack, Point{X: x, Y: y})
	}

	for x := 0; x < width; x++ {
		push(x, 0)
		push(x, height-1)
	}
	for y := 0; y < height; y++ {
		push(0, y)
		push(width-1, y)
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push(p.X+1, p.Y)
		push(p.X-1, p.Y)
		push(p.X, p.Y+1)
		push(p.X, p.Y-1)
	}

	return outside
}

// floodFill marks the 8-connected region containing (startX, startY) as
// visited and returns its bounding box.
//
// Uses a stack-based approach (not recursive) to avoid stack overflow
// on large regions.
func floodFill(m *imaging.Mask, visited []bool, startX, startY int) Bounds {
	width, height := m.Width, m.Height
	minX, minY := startX, startY
	maxX, maxY := startX, startY

	visited[startY*width+startX] = true
	stack := []Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)

		// 8-connected neighbors
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				i := ny*width + nx
				if visited[i] || !m.Pix[i] {
					continue
				}
				visited[i] = true
				stack = append(stack, Point{X: nx, Y: ny})
			}
		}
	}

	return Bounds{X1: minX, Y1: minY, X2: maxX + 1, Y2: maxY + 1}
}
