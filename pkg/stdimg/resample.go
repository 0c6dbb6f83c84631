package stdimg

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Scale resizes src to w x h. Without smoothing it samples the nearest
// neighbour, which is exact for integer factors: scaling up by k and back
// down by k reproduces src. Smoothing uses Lanczos (a=3), or Catmull-Rom
// for strong reductions. The result keeps binary alpha.
func Scale(src *Image, w, h int, smooth bool) *Image {
	if w <= 0 || h <= 0 {
		panic("stdimg: scale to empty size")
	}
	if src.Width() == w && src.Height() == h {
		return src.Clone()
	}
	if !smooth {
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		xdraw.NearestNeighbor.Scale(dst, dst.Rect, src.pix, src.Bounds(), xdraw.Src, nil)
		return &Image{pix: dst}
	}
	if w*2 < src.Width() || h*2 < src.Height() {
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Rect, src.pix, src.Bounds(), xdraw.Src, nil)
		return FromImage(dst)
	}
	return FromImage(resampleLanczos(src.pix, w, h, 3))
}

// sinc helper
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	x = math.Pi * x
	return math.Sin(x) / x
}

// lanczosKernel returns lanczos weight for distance x with parameter a.
func lanczosKernel(x, a float64) float64 {
	x = math.Abs(x)
	if x < 1e-12 {
		return 1
	}
	if x >= a {
		return 0
	}
	return sinc(x) * sinc(x/a)
}

// resampleLanczos resamples src to dstW x dstH using Lanczos with window a.
// Colour is weighted by alpha so transparent pixels do not bleed black.
func resampleLanczos(src *image.NRGBA, dstW, dstH int, a float64) *image.NRGBA {
	srcB := src.Bounds()
	srcW := srcB.Dx()
	srcH := srcB.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, dstW, dstH))
	if dstW == 0 || dstH == 0 {
		return dst
	}

	xScale := float64(srcW) / float64(dstW)
	yScale := float64(srcH) / float64(dstH)

	for y := 0; y < dstH; y++ {
		sy := (float64(y)+0.5)*yScale - 0.5
		for x := 0; x < dstW; x++ {
			sx := (float64(x)+0.5)*xScale - 0.5
			sumR, sumG, sumB, sumA := 0.0, 0.0, 0.0, 0.0
			weightSum := 0.0
			// kernel extent
			xMin := int(math.Floor(sx - a + 1))
			xMax := int(math.Ceil(sx + a - 1))
			yMin := int(math.Floor(sy - a + 1))
			yMax := int(math.Ceil(sy + a - 1))
			for yi := yMin; yi <= yMax; yi++ {
				wy := lanczosKernel(float64(yi)-sy, a)
				for xi := xMin; xi <= xMax; xi++ {
					w := lanczosKernel(float64(xi)-sx, a) * wy
					c := samplePixelClamped(src, xi, yi)
					ca := float64(c.A) / 255
					sumR += float64(c.R) * w * ca
					sumG += float64(c.G) * w * ca
					sumB += float64(c.B) * w * ca
					sumA += float64(c.A) * w
					weightSum += w
				}
			}
			if weightSum == 0 {
				weightSum = 1
			}
			i := dst.PixOffset(x, y)
			alpha := sumA / weightSum
			if alpha <= 0 {
				continue
			}
			norm := weightSum * alpha / 255
			dst.Pix[i+0] = uint8(clampFloatToUint8(sumR / norm))
			dst.Pix[i+1] = uint8(clampFloatToUint8(sumG / norm))
			dst.Pix[i+2] = uint8(clampFloatToUint8(sumB / norm))
			dst.Pix[i+3] = uint8(clampFloatToUint8(alpha))
		}
	}
	return dst
}
