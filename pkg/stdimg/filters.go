package stdimg

import (
	"math"
)

// Sharpen applies an unsharp mask: each opaque pixel moves away from its
// gaussian-blurred value by amount. sigma <= 0 or amount <= 0 returns a
// copy.
func Sharpen(src *Image, sigma, amount float64) *Image {
	if sigma <= 0 || amount <= 0 {
		return src.Clone()
	}
	blurred := Blur(src, sigma)
	out := src.Clone()
	p, bp := out.pix.Pix, blurred.pix.Pix
	for i := 0; i < len(p); i += 4 {
		if p[i+3] == 0 {
			continue
		}
		for c := 0; c < 3; c++ {
			s := float64(p[i+c])
			// mask = src - blurred
			v := s + amount*(s-float64(bp[i+c]))
			p[i+c] = uint8(clampFloatToUint8(math.Round(v)))
		}
	}
	return out
}
