package stdimg

import (
	"math"
)

// Emboss renders a grey relief of the luminance gradient. strength scales
// the gradient; 0 returns a copy. Transparent pixels stay transparent and
// count as mid grey.
func Emboss(src *Image, strength float64) *Image {
	if strength == 0 || src.IsNull() {
		return src.Clone()
	}
	w, h := src.Width(), src.Height()
	lum := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := samplePixelClamped(src.pix, x, y)
			if c.A == 0 {
				lum[y*w+x] = 128
				continue
			}
			lum[y*w+x] = luma(c.R, c.G, c.B)
		}
	}
	at := func(x, y int) float64 {
		return lum[clampInt(y, 0, h-1)*w+clampInt(x, 0, w-1)]
	}

	// light from the top left
	kern := [3][3]float64{{-1, -1, 0}, {-1, 0, 1}, {0, 1, 1}}

	out := src.Clone()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := out.pix.PixOffset(x, y)
			if out.pix.Pix[i+3] == 0 {
				continue
			}
			sum := 0.0
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					sum += at(x+kx, y+ky) * kern[ky+1][kx+1]
				}
			}
			v := uint8(clampFloatToUint8(math.Round(128 + sum*strength/4)))
			out.pix.Pix[i+0], out.pix.Pix[i+1], out.pix.Pix[i+2] = v, v, v
		}
	}
	return out
}
