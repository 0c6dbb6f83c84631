package stdimg

import "image"

// Flip mirrors src horizontally and/or vertically into a new image.
func Flip(src *Image, horiz, vert bool) *Image {
	w, h := src.Width(), src.Height()
	out := NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := x, y
			if horiz {
				dx = w - 1 - x
			}
			if vert {
				dy = h - 1 - y
			}
			copyPixel(out, dx, dy, src, x, y)
		}
	}
	return out
}

// Rotate90CW rotates by exactly 90 degrees clockwise.
func Rotate90CW(src *Image) *Image {
	w, h := src.Width(), src.Height()
	out := NewImage(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			copyPixel(out, h-1-y, x, src, x, y)
		}
	}
	return out
}

// Rotate90CCW rotates by exactly 90 degrees counter-clockwise.
func Rotate90CCW(src *Image) *Image {
	w, h := src.Width(), src.Height()
	out := NewImage(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			copyPixel(out, y, w-1-x, src, x, y)
		}
	}
	return out
}

// Rotate180 is Flip(src, true, true).
func Rotate180(src *Image) *Image {
	return Flip(src, true, true)
}

func copyPixel(dst *Image, dx, dy int, src *Image, sx, sy int) {
	si := src.pix.PixOffset(sx, sy)
	di := dst.pix.PixOffset(dx, dy)
	copy(dst.pix.Pix[di:di+4], src.pix.Pix[si:si+4])
}

// FlipPoints mirrors points within the inclusive bounding box r.
func FlipPoints(pts []image.Point, r image.Rectangle, horiz, vert bool) []image.Point {
	out := make([]image.Point, len(pts))
	for i, p := range pts {
		if horiz {
			p.X = r.Min.X + r.Max.X - 1 - p.X
		}
		if vert {
			p.Y = r.Min.Y + r.Max.Y - 1 - p.Y
		}
		out[i] = p
	}
	return out
}
