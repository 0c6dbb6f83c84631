package stdimg

import (
	"math"
)

// ReduceColors quantizes each channel of every opaque pixel to levels
// evenly spaced values. levels == 2 gives a black and white image
// thresholded on luminance rather than per channel. levels < 2 or > 255
// returns a copy.
func ReduceColors(src *Image, levels int) *Image {
	if levels < 2 || levels > 255 {
		return src.Clone()
	}
	if levels == 2 {
		return mapOpaque(src, func(r, g, b uint8) (uint8, uint8, uint8) {
			if luma(r, g, b) >= 128 {
				return 255, 255, 255
			}
			return 0, 0, 0
		})
	}
	step := 255.0 / float64(levels-1)
	q := func(v uint8) uint8 {
		return uint8(clampFloatToUint8(math.Round(math.Round(float64(v)/step) * step)))
	}
	return mapOpaque(src, func(r, g, b uint8) (uint8, uint8, uint8) {
		return q(r), q(g), q(b)
	})
}
