package stdimg

import (
	"fmt"
	"image"
	"sort"
)

// FillLine is one horizontal span claimed by a flood fill, x1..x2 inclusive.
type FillLine struct {
	Y, X1, X2 int
}

// FloodFill grows the 4-connected region of pixels similar to the seed's
// color. It is single shot: Prepare runs the scan once, after which
// BoundingRect, FillLines and Fill reuse the result.
type FloodFill struct {
	img                 *Image
	x, y                int
	color               Color
	processedSimilarity int

	colorToChange Color
	prepared      bool

	fillLines []FillLine
	// fillLinesCache holds, per row, the spans claimed so far sorted by X1.
	// Only alive during Prepare.
	fillLinesCache [][]FillLine
	boundingRect   image.Rectangle
}

// NewFloodFill sets up a fill of img from (x,y). processedSimilarity comes
// from ProcessSimilarity. The seed must lie inside img.
func NewFloodFill(img *Image, x, y int, c Color, processedSimilarity int) *FloodFill {
	if img == nil {
		panic("stdimg: flood fill of nil image")
	}
	if !(image.Point{x, y}).In(img.Bounds()) {
		panic(fmt.Sprintf("stdimg: flood fill seed (%d,%d) outside %v", x, y, img.Bounds()))
	}
	if !c.IsValid() {
		panic("stdimg: flood fill with invalid color")
	}
	return &FloodFill{img: img, x: x, y: y, color: c, processedSimilarity: processedSimilarity}
}

// ColorToChange is the seed pixel's color, sampled on first use.
func (f *FloodFill) ColorToChange() Color {
	if !f.colorToChange.IsValid() {
		f.colorToChange = f.img.Pixel(f.x, f.y)
	}
	return f.colorToChange
}

// Prepare computes the fill lines and bounding rectangle. It is idempotent.
func (f *FloodFill) Prepare() {
	if f.prepared {
		return
	}
	f.prepared = true

	target := f.ColorToChange()
	if f.processedSimilarity == 0 && f.color == target {
		Logger().Debug("flood fill is a no-op", "seed", image.Pt(f.x, f.y), "color", f.color)
		return
	}

	f.fillLinesCache = make([][]FillLine, f.img.Height())

	f.addLine(f.y, f.findMinX(f.y, f.x), f.findMaxX(f.y, f.x))

	// fillLines grows while we walk it
	for i := 0; i < len(f.fillLines); i++ {
		line := f.fillLines[i]
		f.findAndAddLines(line, -1)
		f.findAndAddLines(line, +1)
	}

	f.fillLinesCache = nil
	Logger().Debug("flood fill prepared", "lines", len(f.fillLines), "rect", f.boundingRect)
}

// BoundingRect is the union of all fill lines; empty for a no-op.
func (f *FloodFill) BoundingRect() image.Rectangle {
	f.Prepare()
	return f.boundingRect
}

// FillLines returns a copy of the discovered spans in discovery order.
func (f *FloodFill) FillLines() []FillLine {
	f.Prepare()
	out := make([]FillLine, len(f.fillLines))
	copy(out, f.fillLines)
	return out
}

// Fill paints every span into the image. A transparent fill color clears
// the pixels.
func (f *FloodFill) Fill() {
	f.PaintLines(f.img, image.Point{})
}

// PaintLines paints the spans into dst, whose top-left corresponds to origin
// in the filled image.
func (f *FloodFill) PaintLines(dst *Image, origin image.Point) {
	f.Prepare()
	for _, l := range f.fillLines {
		dst.FillRect(image.Rect(l.X1, l.Y, l.X2+1, l.Y+1).Sub(origin), f.color)
	}
}

func (f *FloodFill) addLine(y, x1, x2 int) {
	line := FillLine{Y: y, X1: x1, X2: x2}
	f.fillLines = append(f.fillLines, line)

	row := f.fillLinesCache[y]
	i := sort.Search(len(row), func(i int) bool { return row[i].X1 > x1 })
	row = append(row, FillLine{})
	copy(row[i+1:], row[i:])
	row[i] = line
	f.fillLinesCache[y] = row

	f.boundingRect = f.boundingRect.Union(image.Rect(x1, y, x2+1, y+1))
}

// claimed reports whether (x,y) already belongs to a recorded span.
func (f *FloodFill) claimed(x, y int) bool {
	row := f.fillLinesCache[y]
	// spans are disjoint, so X2 is sorted too
	i := sort.Search(len(row), func(i int) bool { return row[i].X2 >= x })
	return i < len(row) && row[i].X1 <= x
}

func (f *FloodFill) shouldGoTo(x, y int) bool {
	return !f.claimed(x, y) && f.img.Pixel(x, y).IsSimilarTo(f.colorToChange, f.processedSimilarity)
}

func (f *FloodFill) findMinX(y, x int) int {
	for {
		if x < 0 {
			return 0
		}
		if f.shouldGoTo(x, y) {
			x--
		} else {
			return x + 1
		}
	}
}

func (f *FloodFill) findMaxX(y, x int) int {
	for {
		if x >= f.img.Width() {
			return f.img.Width() - 1
		}
		if f.shouldGoTo(x, y) {
			x++
		} else {
			return x - 1
		}
	}
}

func (f *FloodFill) findAndAddLines(line FillLine, dy int) {
	y := line.Y + dy
	if y < 0 || y >= f.img.Height() {
		return
	}
	for x := line.X1; x <= line.X2; x++ {
		if f.shouldGoTo(x, y) {
			minX := f.findMinX(y, x)
			maxX := f.findMaxX(y, x)
			f.addLine(y, minX, maxX)
			x = maxX
		}
	}
}

// Size approximates the memory held by the computed spans.
func (f *FloodFill) Size() int64 {
	return int64(len(f.fillLines)) * 24
}
