package stdimg

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	red   = RGB(255, 0, 0)
	green = RGB(0, 255, 0)
	blue  = RGB(0, 0, 255)
)

func makeSolid(w, h int, c Color) *Image {
	return NewFilled(w, h, c)
}

// saveTestOutput writes img to the test's temp dir when
// TPAINT_SAVE_TEST_OUTPUT=1, for eyeballing.
func saveTestOutput(t *testing.T, name string, img *Image) {
	t.Helper()
	if os.Getenv("TPAINT_SAVE_TEST_OUTPUT") != "1" {
		return
	}
	p := filepath.Join(t.TempDir(), name)
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("create %s: %v", p, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", p, err)
	}
	t.Logf("wrote %s", p)
}

func TestFloodFillWholeImage(t *testing.T) {
	img := makeSolid(10, 10, White)
	ff := NewFloodFill(img, 5, 5, red, 0)
	if got := ff.BoundingRect(); got != image.Rect(0, 0, 10, 10) {
		t.Fatalf("bounding rect = %v, want (0,0)-(10,10)", got)
	}
	ff.Fill()
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c := img.Pixel(x, y); c != red {
				t.Fatalf("pixel %d,%d = %v, want red", x, y, c)
			}
		}
	}
	if n := len(ff.FillLines()); n != 10 {
		t.Fatalf("expected one line per row, got %d", n)
	}
}

func TestFloodFillSameColorIsNoOp(t *testing.T) {
	img := makeSolid(10, 10, White)
	before := img.Clone()
	ff := NewFloodFill(img, 5, 5, White, 0)
	if r := ff.BoundingRect(); !r.Empty() {
		t.Fatalf("expected empty bounding rect, got %v", r)
	}
	if len(ff.FillLines()) != 0 {
		t.Fatalf("expected no fill lines")
	}
	ff.Fill()
	if !img.Equal(before) {
		t.Fatalf("no-op fill changed the image")
	}
}

func TestFloodFillStopsAtBorder(t *testing.T) {
	// 5x5 blue with a red 3x3 centre
	img := makeSolid(5, 5, blue)
	img.FillRect(image.Rect(1, 1, 4, 4), red)

	ff := NewFloodFill(img, 2, 2, green, 0)
	if got := ff.BoundingRect(); got != image.Rect(1, 1, 4, 4) {
		t.Fatalf("bounding rect = %v", got)
	}
	ff.Fill()
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			c := img.Pixel(x, y)
			inside := x >= 1 && x <= 3 && y >= 1 && y <= 3
			if inside && c != green {
				t.Fatalf("expected green at %d,%d got %v", x, y, c)
			}
			if !inside && c != blue {
				t.Fatalf("expected blue at %d,%d got %v", x, y, c)
			}
		}
	}
}

func TestFloodFillUShapeRevisitsRowAbove(t *testing.T) {
	// A U-shaped white region seeded in the right arm: the left arm is only
	// reachable through the bottom row and must be discovered going up.
	//
	//   W B W
	//   W B W
	//   W W W
	img := makeSolid(3, 3, White)
	img.SetPixel(1, 0, Black)
	img.SetPixel(1, 1, Black)

	ff := NewFloodFill(img, 2, 0, red, 0)
	ff.Fill()
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			want := red
			if x == 1 && y < 2 {
				want = Black
			}
			if c := img.Pixel(x, y); c != want {
				t.Fatalf("pixel %d,%d = %v, want %v", x, y, c, want)
			}
		}
	}
	want := []FillLine{
		{Y: 0, X1: 2, X2: 2},
		{Y: 1, X1: 2, X2: 2},
		{Y: 2, X1: 0, X2: 2},
		{Y: 1, X1: 0, X2: 0},
		{Y: 0, X1: 0, X2: 0},
	}
	if diff := cmp.Diff(want, ff.FillLines()); diff != "" {
		t.Fatalf("fill lines mismatch (-want +got):\n%s", diff)
	}
}

func TestFloodFillContainment(t *testing.T) {
	// checkerboard-ish pattern with a diagonal wall
	img := makeSolid(8, 8, White)
	for i := 0; i < 8; i++ {
		img.SetPixel(i, 7-i, Black)
	}
	ff := NewFloodFill(img, 0, 0, red, 0)
	ff.Fill()
	saveTestOutput(t, "containment.png", img)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := img.Pixel(x, y)
			switch {
			case x+y < 7:
				if c != red {
					t.Fatalf("pixel %d,%d above the wall = %v, want red", x, y, c)
				}
			case x+y == 7:
				if c != Black {
					t.Fatalf("wall pixel %d,%d = %v", x, y, c)
				}
			default:
				if c != White {
					t.Fatalf("pixel %d,%d below the wall = %v, want white", x, y, c)
				}
			}
		}
	}
}

func TestFloodFillSimilarity(t *testing.T) {
	img := makeSolid(4, 1, RGB(100, 100, 100))
	img.SetPixel(1, 0, RGB(110, 100, 100))
	img.SetPixel(2, 0, RGB(200, 200, 200))

	exact := NewFloodFill(img.Clone(), 0, 0, red, 0)
	if got := exact.BoundingRect(); got != image.Rect(0, 0, 1, 1) {
		t.Fatalf("exact fill rect = %v", got)
	}
	loose := NewFloodFill(img.Clone(), 0, 0, red, ProcessSimilarity(0.1))
	if got := loose.BoundingRect(); got != image.Rect(0, 0, 2, 1) {
		t.Fatalf("similar fill rect = %v", got)
	}
}

func TestFloodFillTransparentClears(t *testing.T) {
	img := makeSolid(3, 3, White)
	img.SetPixel(1, 1, Black)
	ff := NewFloodFill(img, 0, 0, Transparent, 0)
	ff.Fill()
	if c := img.Pixel(0, 0); c != Transparent {
		t.Fatalf("expected transparent, got %v", c)
	}
	if a := img.NRGBA().NRGBAAt(2, 2).A; a != 0 {
		t.Fatalf("expected alpha 0, got %d", a)
	}
	if c := img.Pixel(1, 1); c != Black {
		t.Fatalf("wall overwritten: %v", c)
	}
	// and back again from a transparent seed
	ff = NewFloodFill(img, 0, 0, blue, 0)
	ff.Fill()
	if c := img.Pixel(2, 2); c != blue {
		t.Fatalf("expected blue, got %v", c)
	}
}

func TestFloodFillDeterministic(t *testing.T) {
	img := makeSolid(6, 6, White)
	img.FillRect(image.Rect(2, 0, 3, 5), Black)
	a := NewFloodFill(img.Clone(), 0, 0, red, 0)
	b := NewFloodFill(img.Clone(), 0, 0, red, 0)
	if diff := cmp.Diff(a.FillLines(), b.FillLines()); diff != "" {
		t.Fatalf("fill lines differ:\n%s", diff)
	}
	if a.BoundingRect() != b.BoundingRect() {
		t.Fatalf("bounding rects differ")
	}
}

func TestFloodFillPrepareIdempotent(t *testing.T) {
	img := makeSolid(4, 4, White)
	ff := NewFloodFill(img, 1, 1, red, 0)
	ff.Prepare()
	first := ff.FillLines()
	ff.Prepare()
	if diff := cmp.Diff(first, ff.FillLines()); diff != "" {
		t.Fatalf("second Prepare changed lines:\n%s", diff)
	}
}

func TestFloodFillSinglePixel(t *testing.T) {
	img := makeSolid(1, 1, White)
	ff := NewFloodFill(img, 0, 0, red, 0)
	ff.Fill()
	if img.Pixel(0, 0) != red {
		t.Fatalf("single pixel not filled")
	}
}

func TestFloodFillPaintLinesWithOrigin(t *testing.T) {
	img := makeSolid(6, 6, White)
	img.FillRect(image.Rect(0, 0, 6, 2), Black)
	ff := NewFloodFill(img, 3, 4, red, 0)
	r := ff.BoundingRect()
	patch := img.SubImage(r)
	ff.PaintLines(patch, r.Min)
	if patch.Size() != image.Pt(6, 4) {
		t.Fatalf("patch size %v", patch.Size())
	}
	for y := 0; y < patch.Height(); y++ {
		for x := 0; x < patch.Width(); x++ {
			if patch.Pixel(x, y) != red {
				t.Fatalf("patch pixel %d,%d = %v", x, y, patch.Pixel(x, y))
			}
		}
	}
	if img.Pixel(3, 4) != White {
		t.Fatalf("PaintLines touched the source image")
	}
}

func TestFloodFillSeedOutsidePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for seed outside image")
		}
	}()
	NewFloodFill(makeSolid(2, 2, White), 2, 0, red, 0)
}

func BenchmarkFloodFill256(b *testing.B) {
	src := makeSolid(256, 256, White)
	for i := 0; i < 256; i += 8 {
		src.FillRect(image.Rect(i, 0, i+1, 250), Black)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ff := NewFloodFill(src.Clone(), 4, 4, red, 0)
		ff.Fill()
	}
}
