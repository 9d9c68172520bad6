package imaging

import (
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSV is a pixel in 8-bit HSV form.
type HSV struct {
	H uint8 `json:"h"` // Hue: degrees / 2 (0-179)
	S uint8 `json:"s"` // Saturation: 0-255
	V uint8 `json:"v"` // Value: 0-255
}

// HSVRange is an inclusive per-channel band. A pixel matches when every
// channel lies within [Lower, Upper].
type HSVRange struct {
	Lower HSV `json:"lower"`
	Upper HSV `json:"upper"`
}

// Contains reports whether p lies inside the band.
func (r HSVRange) Contains(p HSV) bool {
	return p.H >= r.Lower.H && p.H <= r.Upper.H &&
		p.S >= r.Lower.S && p.S <= r.Upper.S &&
		p.V >= r.Lower.V && p.V <= r.Upper.V
}

// ToHSV converts a color to 8-bit HSV. Alpha is ignored: the color is
// un-premultiplied first and the result describes the opaque RGB value.
func ToHSV(c color.Color) HSV {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return rgbToHSV(n.R, n.G, n.B)
}

func rgbToHSV(r, g, b uint8) HSV {
	col := colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
	h, s, v := col.Hsv()

	// hues just below 360 degrees round up to 180, which is red again
	hh := math.Round(h / 2)
	if hh >= 180 {
		hh -= 180
	}

	return HSV{
		H: uint8(hh),
		S: uint8(math.Round(s * 255)),
		V: uint8(math.Round(v * 255)),
	}
}

// InRange builds a mask that is set wherever the pixel's HSV value falls
// inside r.
func InRange(img image.Image, r HSVRange) *Mask {
	bounds := img.Bounds()
	m := NewMask(bounds.Dx(), bounds.Dy())

	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < m.Height; y++ {
			off := rgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			for x := 0; x < m.Width; x++ {
				p := rgba.Pix[off : off+4 : off+4]
				c := color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
				if r.Contains(ToHSV(c)) {
					m.Set(x, y, true)
				}
				off += 4
			}
		}
		return m
	}

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if r.Contains(ToHSV(img.At(bounds.Min.X+x, bounds.Min.Y+y))) {
				m.Set(x, y, true)
			}
		}
	}
	return m
}
