package stdimg

import (
	"image"
	"math"
	"sync"
)

// gaussianKernel1D generates a 1D Gaussian kernel with given sigma. Returns kernel and half-width radius.
func gaussianKernel1D(sigma float64) ([]float64, int) {
	if sigma <= 0 {
		return []float64{1.0}, 0
	}
	// radius ~ ceil(3*sigma)
	radius := int(math.Ceil(3 * sigma))
	kern := make([]float64, radius*2+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-0.5 * float64(i*i) / (sigma * sigma))
		kern[i+radius] = v
		sum += v
	}
	for i := range kern {
		kern[i] /= sum
	}
	return kern, radius
}

// blurPass convolves src with kern along one axis. Only opaque pixels
// contribute and the output keeps src's alpha, so transparent holes neither
// bleed into their neighbours nor get filled. Rows (or columns) run in
// parallel.
func blurPass(src *image.NRGBA, kern []float64, radius int, horizontal bool) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewNRGBA(src.Rect)
	copy(dst.Pix, src.Pix)

	lines, length := h, w
	if !horizontal {
		lines, length = w, h
	}
	at := func(line, pos int) (int, int) {
		if horizontal {
			return pos, line
		}
		return line, pos
	}

	var wg sync.WaitGroup
	for line := 0; line < lines; line++ {
		wg.Add(1)
		go func(line int) {
			defer wg.Done()
			for pos := 0; pos < length; pos++ {
				x, y := at(line, pos)
				di := dst.PixOffset(x, y)
				if src.Pix[di+3] == 0 {
					continue
				}
				sr, sg, sb, wsum := 0.0, 0.0, 0.0, 0.0
				for k := -radius; k <= radius; k++ {
					sx, sy := at(line, clampInt(pos+k, 0, length-1))
					c := samplePixelClamped(src, sx, sy)
					if c.A == 0 {
						continue
					}
					wgt := kern[k+radius]
					sr += float64(c.R) * wgt
					sg += float64(c.G) * wgt
					sb += float64(c.B) * wgt
					wsum += wgt
				}
				dst.Pix[di+0] = uint8(clampFloatToUint8(math.Round(sr / wsum)))
				dst.Pix[di+1] = uint8(clampFloatToUint8(math.Round(sg / wsum)))
				dst.Pix[di+2] = uint8(clampFloatToUint8(math.Round(sb / wsum)))
			}
		}(line)
	}
	wg.Wait()
	return dst
}

// Blur applies a separable gaussian blur. sigma <= 0 returns a copy.
func Blur(src *Image, sigma float64) *Image {
	if sigma <= 0 || src.IsNull() {
		return src.Clone()
	}
	kern, radius := gaussianKernel1D(sigma)
	tmp := blurPass(src.pix, kern, radius, true)
	return &Image{pix: blurPass(tmp, kern, radius, false)}
}
