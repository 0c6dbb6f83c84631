package selection

import (
	"image"
	"math"

	"github.com/golang/freetype/raster"
	"golang.org/x/image/math/fixed"

	"github.com/Fepozopo/tpaint/pkg/stdimg"
)

// rasterizePolygon returns a w x h mask with the pixels inside the closed
// polygon pts (even-odd rule) and on its outline set. Vertices address
// pixel centres.
func rasterizePolygon(pts []image.Point, w, h int) *stdimg.Mask {
	m := stdimg.NewMask(w, h)
	if len(pts) == 0 {
		return m
	}
	if len(pts) >= 3 {
		r := raster.NewRasterizer(w, h)
		r.UseNonZeroWinding = false
		r.Start(pixelCentre(pts[0]))
		for _, p := range pts[1:] {
			r.Add1(pixelCentre(p))
		}
		r.Add1(pixelCentre(pts[0]))
		r.Rasterize(raster.PainterFunc(func(spans []raster.Span, done bool) {
			for _, s := range spans {
				if s.Alpha < 0x8000 {
					continue
				}
				for x := s.X0; x < s.X1; x++ {
					m.Set(x, s.Y, true)
				}
			}
		}))
	}
	for i := range pts {
		drawLine(m, pts[i], pts[(i+1)%len(pts)])
	}
	return m
}

func pixelCentre(p image.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(p.X*64 + 32), Y: fixed.Int26_6(p.Y*64 + 32)}
}

// drawLine sets every pixel on the Bresenham line from a to b.
func drawLine(m *stdimg.Mask, a, b image.Point) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	for {
		m.Set(a.X, a.Y, true)
		if a == b {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			a.X += sx
		}
		if e2 <= dx {
			err += dx
			a.Y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ellipsePoints approximates the ellipse inscribed in r with a closed
// polygon. A 1x1 rect gives one point and a 1-wide or 1-high rect a line.
func ellipsePoints(r image.Rectangle) []image.Point {
	w, h := r.Dx(), r.Dy()
	switch {
	case w <= 0 || h <= 0:
		return nil
	case w == 1 && h == 1:
		return []image.Point{r.Min}
	case w == 1 || h == 1:
		return []image.Point{r.Min, r.Max.Sub(image.Pt(1, 1))}
	}

	rx, ry := float64(w-1)/2, float64(h-1)/2
	cx, cy := float64(r.Min.X)+rx, float64(r.Min.Y)+ry
	// one vertex per couple of border pixels is plenty once rounded
	n := max(8, int(math.Pi*(rx+ry)))
	pts := make([]image.Point, 0, n)
	for i := 0; i < n; i++ {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		p := image.Pt(int(math.Round(cx+rx*c)), int(math.Round(cy+ry*s)))
		if len(pts) > 0 && pts[len(pts)-1] == p {
			continue
		}
		pts = append(pts, p)
	}
	if len(pts) > 1 && pts[len(pts)-1] == pts[0] {
		pts = pts[:len(pts)-1]
	}
	return pts
}
