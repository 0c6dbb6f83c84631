package stdimg

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// AngleEpsilon is the tolerance, in degrees, for treating an angle as zero
// or as a multiple of 90.
const AngleEpsilon = 0.001

var identity = f64.Aff3{1, 0, 0, 0, 1, 0}

func degreesToRadians(deg float64) float64 { return deg * math.Pi / 180 }

// mul returns a*b (apply b first, then a).
func mul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3], a[0]*b[1] + a[1]*b[4], a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3], a[3]*b[1] + a[4]*b[4], a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

func translate(dx, dy float64) f64.Aff3 { return f64.Aff3{1, 0, dx, 0, 1, dy} }

// MapPoint applies m to (x,y).
func MapPoint(m f64.Aff3, x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// TransformedRect maps the w x h rectangle at the origin through m and returns the
// integer bounding rectangle, rounding origin and size separately.
func TransformedRect(m f64.Aff3, w, h int) image.Rectangle {
	xmin, ymin := math.Inf(1), math.Inf(1)
	xmax, ymax := math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]float64{{0, 0}, {float64(w), 0}, {0, float64(h)}, {float64(w), float64(h)}} {
		x, y := MapPoint(m, c[0], c[1])
		xmin, xmax = math.Min(xmin, x), math.Max(xmax, x)
		ymin, ymax = math.Min(ymin, y), math.Max(ymax, y)
	}
	x0 := int(math.Round(xmin))
	y0 := int(math.Round(ymin))
	return image.Rect(x0, y0, x0+int(math.Round(xmax-xmin)), y0+int(math.Round(ymax-ymin)))
}

// MapPoints maps and rounds each point.
func MapPoints(m f64.Aff3, pts []image.Point) []image.Point {
	out := make([]image.Point, len(pts))
	for i, p := range pts {
		x, y := MapPoint(m, float64(p.X), float64(p.Y))
		out[i] = image.Pt(int(math.Round(x)), int(math.Round(y)))
	}
	return out
}

// PointsBounds returns the inclusive bounding rectangle of pts, so a single
// point has size 1x1.
func PointsBounds(pts []image.Point) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	r.Max = r.Max.Add(image.Pt(1, 1))
	return r
}

// TranslatePoints returns pts moved by d.
func TranslatePoints(pts []image.Point, d image.Point) []image.Point {
	out := make([]image.Point, len(pts))
	for i, p := range pts {
		out[i] = p.Add(d)
	}
	return out
}

// withZeroOrigin translates m so the image of a w x h rectangle starts at
// (0,0).
func withZeroOrigin(m f64.Aff3, w, h int) f64.Aff3 {
	r := TransformedRect(m, w, h)
	return mul(translate(float64(-r.Min.X), float64(-r.Min.Y)), m)
}

// SkewMatrix shears a w x h image: x' = x - tan(hangle)*y and
// y' = tan(vangle)*x + y, translated so the result starts at the origin.
// A positive horizontal angle leans the top edge to the right.
func SkewMatrix(w, h int, hangle, vangle float64) f64.Aff3 {
	if math.Abs(hangle) < AngleEpsilon && math.Abs(vangle) < AngleEpsilon {
		return identity
	}
	m := f64.Aff3{
		1, -math.Tan(degreesToRadians(hangle)), 0,
		math.Tan(degreesToRadians(vangle)), 1, 0,
	}
	return withZeroOrigin(m, w, h)
}

// RotateMatrix rotates a w x h image about its centre, clockwise on screen
// for positive angles, translated so the result starts at the origin.
func RotateMatrix(w, h int, angle float64) f64.Aff3 {
	if math.Abs(angle) < AngleEpsilon {
		return identity
	}
	s, c := math.Sincos(degreesToRadians(angle))
	cx, cy := float64(w)/2, float64(h)/2
	m := mul(translate(cx, cy), mul(f64.Aff3{c, -s, 0, s, c, 0}, translate(-cx, -cy)))
	return withZeroOrigin(m, w, h)
}

// IsLosslessRotation reports whether angle is a multiple of 90 degrees.
func IsLosslessRotation(angle float64) bool {
	a := math.Abs(angle)
	a -= float64(int(a)/90) * 90
	return a < AngleEpsilon || math.Abs(a-90) < AngleEpsilon
}

// transformImage draws src through m onto a background-filled canvas sized
// to the mapped rectangle.
func transformImage(src *Image, m f64.Aff3, bg Color) *Image {
	r := TransformedRect(m, src.Width(), src.Height())
	out := NewFilled(r.Dx(), r.Dy(), bg)
	xdraw.NearestNeighbor.Transform(out.pix, m, src.pix, src.Bounds(), xdraw.Over, nil)
	return out
}

// Skew shears src by the given angles in degrees, filling exposed area with
// bg. Both angles near zero returns a copy.
func Skew(src *Image, hangle, vangle float64, bg Color) *Image {
	if math.Abs(hangle) < AngleEpsilon && math.Abs(vangle) < AngleEpsilon {
		return src.Clone()
	}
	return transformImage(src, SkewMatrix(src.Width(), src.Height(), hangle, vangle), bg)
}

// Rotate turns src clockwise by angle degrees, filling exposed area with
// bg. Multiples of 90 take an exact pixel path.
func Rotate(src *Image, angle float64, bg Color) *Image {
	if IsLosslessRotation(angle) {
		quarter := int(math.Round(angle/90)) % 4
		if quarter < 0 {
			quarter += 4
		}
		switch quarter {
		case 0:
			return src.Clone()
		case 1:
			return Rotate90CW(src)
		case 2:
			return Rotate180(src)
		default:
			return Rotate90CCW(src)
		}
	}
	return transformImage(src, RotateMatrix(src.Width(), src.Height(), angle), bg)
}
