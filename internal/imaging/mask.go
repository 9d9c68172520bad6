package imaging

// Mask is a binary image. Pix holds one bool per pixel in row-major order.
type Mask struct {
	Width  int
	Height int
	Pix    []bool
}

// NewMask returns an all-clear mask of the given size.
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{
		Width:  width,
		Height: height,
		Pix:    make([]bool, width*height),
	}
}

// At reports whether (x, y) is set. Out-of-range coordinates are clear.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Pix[y*m.Width+x]
}

// Set sets or clears (x, y). Out-of-range coordinates are ignored.
func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.Pix[y*m.Width+x] = v
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v {
			n++
		}
	}
	return n
}

// Dilate sets every pixel whose size x size neighborhood contains a set
// pixel. Pixels beyond the mask edge count as clear.
func Dilate(m *Mask, size int) *Mask {
	return rectFilter(m, size, false)
}

// Erode keeps only pixels whose size x size neighborhood is entirely set.
// Pixels beyond the mask edge count as set.
func Erode(m *Mask, size int) *Mask {
	return rectFilter(m, size, true)
}

// Close performs a morphological closing (dilation followed by erosion)
// with a size x size square element. Gaps and holes narrower than the
// element are filled while region outlines keep their extent.
func Close(m *Mask, size int) *Mask {
	return Erode(Dilate(m, size), size)
}

// rectFilter applies a square min (all) or max (any) filter. The square
// element is separable, so it runs as a horizontal pass then a vertical
// pass, each using a running count over the clamped window.
func rectFilter(m *Mask, size int, all bool) *Mask {
	if size <= 1 || m.Width == 0 || m.Height == 0 {
		out := NewMask(m.Width, m.Height)
		copy(out.Pix, m.Pix)
		return out
	}

	// anchor at the element center; even sizes lean left/up
	before := size / 2
	after := size - 1 - before

	tmp := NewMask(m.Width, m.Height)
	for y := 0; y < m.Height; y++ {
		row := m.Pix[y*m.Width : (y+1)*m.Width]
		filterLine(row, tmp.Pix[y*m.Width:(y+1)*m.Width], before, after, all)
	}

	out := NewMask(m.Width, m.Height)
	col := make([]bool, m.Height)
	res := make([]bool, m.Height)
	for x := 0; x < m.Width; x++ {
		for y := 0; y < m.Height; y++ {
			col[y] = tmp.Pix[y*m.Width+x]
		}
		filterLine(col, res, before, after, all)
		for y := 0; y < m.Height; y++ {
			out.Pix[y*m.Width+x] = res[y]
		}
	}
	return out
}

// filterLine writes to dst, for each index i, whether any (or all, if all
// is true) of src[i-before : i+after] are set, with the window clamped to
// the line.
func filterLine(src, dst []bool, before, after int, all bool) {
	n := len(src)
	prefix := make([]int, n+1)
	for i, v := range src {
		prefix[i+1] = prefix[i]
		if v {
			prefix[i+1]++
		}
	}

	for i := 0; i < n; i++ {
		lo := max(i-before, 0)
		hi := min(i+after, n-1)
		set := prefix[hi+1] - prefix[lo]
		if all {
			dst[i] = set == hi-lo+1
		} else {
			dst[i] = set > 0
		}
	}
}
