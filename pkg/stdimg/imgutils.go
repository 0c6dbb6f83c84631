package stdimg

import (
	"image"
	"image/color"
	"image/draw"
)

// toNRGBA converts any image.Image to a fresh *image.NRGBA whose bounds
// start at the origin.
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if n, ok := src.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			i := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*out.Stride:y*out.Stride+b.Dx()*4], n.Pix[i:i+b.Dx()*4])
		}
		return out
	}
	draw.Draw(out, out.Rect, src, b.Min, draw.Src)
	return out
}

// clampInt clamps v to [lo,hi]
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// samplePixelClamped returns the color.NRGBA at integer coords clamped to image.
func samplePixelClamped(img *image.NRGBA, x, y int) color.NRGBA {
	b := img.Bounds()
	x = clampInt(x, b.Min.X, b.Max.X-1)
	y = clampInt(y, b.Min.Y, b.Max.Y-1)
	i := img.PixOffset(x, y)
	return color.NRGBA{img.Pix[i+0], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}
}

// clampFloatToUint8 ensures v in [0,255]
func clampFloatToUint8(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// mapOpaque returns a copy of src with fn applied to every opaque pixel.
// Transparent pixels stay transparent.
func mapOpaque(src *Image, fn func(r, g, b uint8) (uint8, uint8, uint8)) *Image {
	out := src.Clone()
	p := out.pix.Pix
	for i := 0; i < len(p); i += 4 {
		if p[i+3] == 0 {
			continue
		}
		p[i+0], p[i+1], p[i+2] = fn(p[i+0], p[i+1], p[i+2])
	}
	return out
}

// luma returns the Rec. 601 luminance of an RGB triple on 0..255.
func luma(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}
