package stdimg

import (
	"image"
	"testing"
)

func patterned(w, h int) *Image {
	img := NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetPixel(x, y, RGB(uint8(x*17), uint8(y*29), uint8(x^y)))
		}
	}
	return img
}

func TestScaleIntegerRoundTrip(t *testing.T) {
	src := patterned(5, 3)
	src.SetPixel(2, 1, Transparent)
	up := Scale(src, 15, 6, false)
	if up.Size() != image.Pt(15, 6) {
		t.Fatalf("size %v", up.Size())
	}
	// each source pixel becomes a 3x2 block
	if up.Pixel(7, 3) != Transparent || up.Pixel(8, 2) != Transparent {
		t.Fatalf("transparent pixel not replicated")
	}
	if up.Pixel(14, 5) != src.Pixel(4, 2) {
		t.Fatalf("corner pixel not replicated")
	}
	back := Scale(up, 5, 3, false)
	if !back.Equal(src) {
		t.Fatalf("integer scale round trip is lossy")
	}
}

func TestScaleSmoothKeepsBinaryAlpha(t *testing.T) {
	src := patterned(8, 8)
	src.FillRect(image.Rect(0, 0, 4, 8), Transparent)
	out := Scale(src, 13, 5, true)
	saveTestOutput(t, "smooth.png", out)
	for i := 3; i < len(out.NRGBA().Pix); i += 4 {
		if a := out.NRGBA().Pix[i]; a != 0 && a != 0xff {
			t.Fatalf("partial alpha %d after smooth scale", a)
		}
	}
}

func TestIsLosslessRotation(t *testing.T) {
	for _, a := range []float64{0, 90, -90, 180, 270, 360, 450, -720} {
		if !IsLosslessRotation(a) {
			t.Errorf("%v should be lossless", a)
		}
	}
	for _, a := range []float64{1, 45, -30, 89.9, 181} {
		if IsLosslessRotation(a) {
			t.Errorf("%v should be lossy", a)
		}
	}
}

func TestRotateQuarterTurns(t *testing.T) {
	src := patterned(4, 2)
	cw := Rotate(src, 90, White)
	if cw.Size() != image.Pt(2, 4) {
		t.Fatalf("rotated size %v", cw.Size())
	}
	// the top-left pixel ends up top-right after a clockwise turn
	if cw.Pixel(1, 0) != src.Pixel(0, 0) {
		t.Fatalf("clockwise rotation went the wrong way")
	}
	if !Rotate(cw, 270, White).Equal(src) {
		t.Fatalf("90 then 270 is not identity")
	}
	if !Rotate(src, -90, White).Equal(Rotate90CCW(src)) {
		t.Fatalf("-90 should equal counter-clockwise")
	}
	if !Rotate(Rotate(src, 180, White), 180, White).Equal(src) {
		t.Fatalf("180 twice is not identity")
	}
}

func TestRotateArbitraryGrowsCanvas(t *testing.T) {
	src := makeSolid(10, 10, red)
	out := Rotate(src, 45, White)
	r := TransformedRect(RotateMatrix(10, 10, 45), 10, 10)
	if r.Min != (image.Point{}) {
		t.Fatalf("rotation matrix not zero-origin: %v", r)
	}
	if out.Size() != r.Size() {
		t.Fatalf("output size %v, want %v", out.Size(), r.Size())
	}
	if out.Width() != 14 {
		t.Fatalf("45 degree width = %d", out.Width())
	}
	c := out.Pixel(out.Width()/2, out.Height()/2)
	if c != red {
		t.Fatalf("centre = %v, want red", c)
	}
	if out.Pixel(0, 0) != White {
		t.Fatalf("corner should be background, got %v", out.Pixel(0, 0))
	}
}

func TestSkew(t *testing.T) {
	src := makeSolid(10, 10, red)
	if !Skew(src, 0, 0, White).Equal(src) {
		t.Fatalf("zero skew should be a copy")
	}
	out := Skew(src, 45, 0, Transparent)
	if out.Size() != image.Pt(20, 10) {
		t.Fatalf("45 degree horizontal skew size %v", out.Size())
	}
	// positive angle: top row shifted right, bottom row flush left
	if out.Pixel(0, 0) != Transparent || out.Pixel(1, 9) != red {
		t.Fatalf("skew direction wrong: top-left %v bottom-left %v", out.Pixel(0, 0), out.Pixel(1, 9))
	}
	if out.Pixel(18, 0) != red || out.Pixel(19, 9) != Transparent {
		t.Fatalf("skew right edge wrong")
	}
}

func TestMapPointsAndBounds(t *testing.T) {
	m := RotateMatrix(4, 2, 90)
	pts := MapPoints(m, []image.Point{{0, 0}, {4, 0}, {4, 2}, {0, 2}})
	r := PointsBounds(pts)
	if r != image.Rect(0, 0, 3, 5) {
		t.Fatalf("bounds of rotated corners = %v", r)
	}
	if got := PointsBounds([]image.Point{{3, 4}}); got != image.Rect(3, 4, 4, 5) {
		t.Fatalf("single point bounds = %v", got)
	}
}
