package imaging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// parseMask builds a mask from rows of '#' (set) and '.' (clear)
func parseMask(rows ...string) *Mask {
	m := NewMask(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, ch := range row {
			m.Set(x, y, ch == '#')
		}
	}
	return m
}

// formatMask is the inverse of parseMask, for readable failures
func formatMask(m *Mask) string {
	var sb strings.Builder
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.At(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestMask_SetAt(t *testing.T) {
	m := NewMask(3, 2)
	m.Set(2, 1, true)
	m.Set(-1, 0, true) // ignored
	m.Set(3, 0, true)  // ignored

	assert.True(t, m.At(2, 1))
	assert.False(t, m.At(0, 0))
	assert.False(t, m.At(-1, 0))
	assert.False(t, m.At(0, 5))
	assert.Equal(t, 1, m.Count())
}

func TestNewMask_NegativeSize(t *testing.T) {
	m := NewMask(-1, 5)
	assert.Equal(t, 0, m.Width)
	assert.Empty(t, m.Pix)
}

func TestDilate(t *testing.T) {
	m := parseMask(
		".......",
		".......",
		".......",
		"...#...",
		".......",
		".......",
		".......",
	)

	got := Dilate(m, 5)
	want := parseMask(
		".......",
		".#####.",
		".#####.",
		".#####.",
		".#####.",
		".#####.",
		".......",
	)
	assert.Equal(t, formatMask(want), formatMask(got))
}

func TestDilate_ClipsAtEdge(t *testing.T) {
	m := parseMask(
		"#....",
		".....",
		".....",
	)

	got := Dilate(m, 5)
	want := parseMask(
		"###..",
		"###..",
		"###..",
	)
	assert.Equal(t, formatMask(want), formatMask(got))
}

func TestErode(t *testing.T) {
	m := parseMask(
		".......",
		".#####.",
		".#####.",
		".#####.",
		".#####.",
		".#####.",
		".......",
	)

	got := Erode(m, 5)
	assert.Equal(t, 1, got.Count())
	assert.True(t, got.At(3, 3))
}

func TestErode_EdgeCountsAsSet(t *testing.T) {
	m := parseMask(
		"####",
		"####",
		"####",
	)

	got := Erode(m, 5)
	assert.Equal(t, formatMask(m), formatMask(got))
}

func TestClose_FillsGapAndHole(t *testing.T) {
	m := parseMask(
		"..............",
		"..............",
		"..............",
		"...###..###...",
		"...###..###...",
		"...###..###...",
		"..............",
		"..............",
		"..............",
		"..............",
		"..............",
		"...#######....",
		"...###.###....",
		"...#######....",
		"..............",
		"..............",
		"..............",
	)

	got := Close(m, 5)
	want := parseMask(
		"..............",
		"..............",
		"..............",
		"...########...",
		"...########...",
		"...########...",
		"..............",
		"..............",
		"..............",
		"..............",
		"..............",
		"...#######....",
		"...#######....",
		"...#######....",
		"..............",
		"..............",
		"..............",
	)
	assert.Equal(t, formatMask(want), formatMask(got))
}

func TestClose_KeepsBorderRegions(t *testing.T) {
	m := parseMask(
		"###.....",
		"###.....",
		"........",
		"........",
		"........",
		"........",
	)

	got := Close(m, 5)
	assert.Equal(t, formatMask(m), formatMask(got))
}

func TestClose_SizeOneIsIdentity(t *testing.T) {
	m := parseMask(
		"#.#",
		".#.",
	)

	got := Close(m, 1)
	assert.Equal(t, m, got)
	assert.NotSame(t, m, got)
}
