package detection

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/phone-usage-eval/internal/imaging"
)

var (
	red  = color.RGBA{255, 0, 0, 255}
	blue = color.RGBA{0, 0, 255, 255}
)

// createTestImage creates a solid color test image
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// fillRect paints [x1,x2) x [y1,y2)
func fillRect(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			img.Set(x, y, c)
		}
	}
}

// maskFromRows builds a mask from strings of '#' (set) and '.' (clear)
func maskFromRows(rows ...string) *imaging.Mask {
	m := imaging.NewMask(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, ch := range row {
			m.Set(x, y, ch == '#')
		}
	}
	return m
}

func TestExternalRegions_Separate(t *testing.T) {
	m := maskFromRows(
		"##......",
		"##......",
		"....###.",
		"....###.",
		"........",
	)

	got := ExternalRegions(m)
	assert.Equal(t, []Bounds{
		{X1: 0, Y1: 0, X2: 2, Y2: 2},
		{X1: 4, Y1: 2, X2: 7, Y2: 4},
	}, got)
}

func TestExternalRegions_DiagonalIsConnected(t *testing.T) {
	m := maskFromRows(
		"#...",
		".#..",
		"..#.",
		"....",
	)

	assert.Equal(t, []Bounds{{X1: 0, Y1: 0, X2: 3, Y2: 3}}, ExternalRegions(m))
}

func TestExternalRegions_NestedRegionSkipped(t *testing.T) {
	m := maskFromRows(
		".......",
		".#####.",
		".#...#.",
		".#.#.#.",
		".#...#.",
		".#####.",
		".......",
	)

	assert.Equal(t, []Bounds{{X1: 1, Y1: 1, X2: 6, Y2: 6}}, ExternalRegions(m))
}

func TestExternalRegions_TouchingBorder(t *testing.T) {
	m := maskFromRows(
		"...",
		"#..",
		"#.#",
	)

	assert.Equal(t, []Bounds{
		{X1: 0, Y1: 1, X2: 1, Y2: 3},
		{X1: 2, Y1: 2, X2: 3, Y2: 3},
	}, ExternalRegions(m))
}

func TestExternalRegions_Empty(t *testing.T) {
	assert.Empty(t, ExternalRegions(imaging.NewMask(10, 10)))
	assert.Empty(t, ExternalRegions(imaging.NewMask(0, 0)))
}

func TestBounds_Size(t *testing.T) {
	b := Bounds{X1: 5, Y1: 7, X2: 6, Y2: 10}
	assert.Equal(t, 1, b.Width())
	assert.Equal(t, 3, b.Height())
}

func TestColorDetector_HeadAndPhone(t *testing.T) {
	img := createTestImage(60, 40, color.White)
	fillRect(img, 5, 5, 15, 20, red)
	fillRect(img, 30, 10, 50, 18, blue)

	d := NewColorDetector().Detect(img)

	require.Len(t, d.Heads, 1)
	require.Len(t, d.Phones, 1)
	assert.Equal(t, Bounds{X1: 5, Y1: 5, X2: 15, Y2: 20}, d.Heads[0])
	assert.Equal(t, Bounds{X1: 30, Y1: 10, X2: 50, Y2: 18}, d.Phones[0])
}

func TestColorDetector_ClosingMergesNearbyBlobs(t *testing.T) {
	img := createTestImage(40, 20, color.Black)
	// two red blocks separated by a 2px gap close into one region
	fillRect(img, 5, 5, 10, 10, red)
	fillRect(img, 12, 5, 17, 10, red)
	// a block 10px away stays separate
	fillRect(img, 27, 5, 32, 10, red)

	d := NewColorDetector().Detect(img)

	assert.Equal(t, []Bounds{
		{X1: 5, Y1: 5, X2: 17, Y2: 10},
		{X1: 27, Y1: 5, X2: 32, Y2: 10},
	}, d.Heads)
	assert.Empty(t, d.Phones)
}

func TestColorDetector_ClosingFillsPinholes(t *testing.T) {
	img := createTestImage(30, 30, color.White)
	fillRect(img, 5, 5, 25, 25, blue)
	img.Set(15, 15, color.White)

	d := NewColorDetector().Detect(img)
	assert.Equal(t, []Bounds{{X1: 5, Y1: 5, X2: 25, Y2: 25}}, d.Phones)
}

func TestColorDetector_OnlyExactColors(t *testing.T) {
	tests := []struct {
		name       string
		color      color.Color
		wantHeads  int
		wantPhones int
	}{
		{"pure red", red, 1, 0},
		{"pure blue", blue, 0, 1},
		{"red with blue tint", color.RGBA{255, 0, 1, 255}, 1, 0},
		{"red with more blue tint", color.RGBA{255, 0, 3, 255}, 1, 0},
		{"dimmer red with blue tint", color.RGBA{254, 0, 2, 255}, 1, 0},
		{"dark red", color.RGBA{200, 0, 0, 255}, 0, 0},
		{"pinkish red", color.RGBA{255, 20, 20, 255}, 0, 0},
		{"orange", color.RGBA{255, 8, 0, 255}, 0, 0},
		{"navy", color.RGBA{0, 0, 128, 255}, 0, 0},
		{"cyan-ish blue", color.RGBA{0, 40, 255, 255}, 0, 0},
		{"green", color.RGBA{0, 255, 0, 255}, 0, 0},
		{"magenta", color.RGBA{255, 0, 255, 255}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createTestImage(20, 20, color.White)
			fillRect(img, 4, 4, 12, 12, tt.color)

			d := NewColorDetector().Detect(img)
			assert.Len(t, d.Heads, tt.wantHeads)
			assert.Len(t, d.Phones, tt.wantPhones)
		})
	}
}

func TestColorDetector_NonZeroOrigin(t *testing.T) {
	base := createTestImage(50, 50, color.White)
	fillRect(base, 20, 20, 30, 30, red)
	sub := base.SubImage(image.Rect(10, 10, 50, 50))

	d := NewColorDetector().Detect(sub)
	assert.Equal(t, []Bounds{{X1: 10, Y1: 10, X2: 20, Y2: 20}}, d.Heads)
}

func TestColorDetector_ImplementsRegionDetector(t *testing.T) {
	var _ RegionDetector = NewColorDetector()
}
