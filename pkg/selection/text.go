package selection

import (
	"fmt"
	"image"
	"strings"

	"github.com/Fepozopo/tpaint/pkg/stdimg"
)

// TextStyle controls how a text selection renders.
type TextStyle struct {
	FontPath         string // empty selects the built-in face
	Size             float64
	Foreground       stdimg.Color
	Background       stdimg.Color
	OpaqueBackground bool
}

// DefaultTextStyle is black 13pt text without a background box.
func DefaultTextStyle() TextStyle {
	return TextStyle{Size: 13, Foreground: stdimg.Black, Background: stdimg.White}
}

// TextSelection is an always-rectangular box of text lines. It has content
// when it holds at least one line, and it never goes through shape or
// transparency masking.
type TextSelection struct {
	notifier

	rect  image.Rectangle
	lines []string
	style TextStyle
}

func NewTextSelection(rect image.Rectangle, lines []string, style TextStyle) *TextSelection {
	if rect.Empty() {
		panic(fmt.Sprintf("selection: empty text box %v", rect))
	}
	return &TextSelection{rect: rect, lines: append([]string(nil), lines...), style: style}
}

func (s *TextSelection) Kind() Kind                    { return Text }
func (s *TextSelection) BoundingRect() image.Rectangle { return s.rect }
func (s *TextSelection) Points() []image.Point         { return rectPoints(s.rect) }
func (s *TextSelection) HasContent() bool              { return len(s.lines) > 0 }
func (s *TextSelection) Lines() []string               { return append([]string(nil), s.lines...) }
func (s *TextSelection) Style() TextStyle              { return s.style }
func (s *TextSelection) Text() string                  { return strings.Join(s.lines, "\n") }

func (s *TextSelection) SetLines(lines []string) {
	s.lines = append([]string(nil), lines...)
	s.notify(s.rect)
}

func (s *TextSelection) SetStyle(style TextStyle) {
	s.style = style
	s.notify(s.rect)
}

func (s *TextSelection) DeleteContent() {
	if len(s.lines) == 0 {
		return
	}
	s.SetLines(nil)
}

// Resized returns a copy with the same top-left and text in a w x h box.
func (s *TextSelection) Resized(w, h int) *TextSelection {
	c := s.CloneTextSelection()
	c.rect = image.Rectangle{Min: s.rect.Min, Max: s.rect.Min.Add(image.Pt(w, h))}
	return c
}

func (s *TextSelection) MoveBy(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	old := s.rect
	s.rect = s.rect.Add(image.Pt(dx, dy))
	s.notify(old.Union(s.rect))
}

func (s *TextSelection) MoveTo(pt image.Point) {
	d := pt.Sub(s.rect.Min)
	s.MoveBy(d.X, d.Y)
}

func (s *TextSelection) Clone() Selection { return s.CloneTextSelection() }

func (s *TextSelection) CloneTextSelection() *TextSelection {
	return &TextSelection{rect: s.rect, lines: append([]string(nil), s.lines...), style: s.style}
}

// Paint draws the optional background box and the text, clipped to the
// bounding rect.
func (s *TextSelection) Paint(dst *stdimg.Image, docRect image.Rectangle) {
	r := s.rect.Sub(docRect.Min)
	if s.style.OpaqueBackground && s.style.Background.IsValid() {
		dst.FillRect(r, s.style.Background)
	}
	if len(s.lines) == 0 || !s.style.Foreground.IsOpaque() {
		return
	}
	face := stdimg.LoadFace(s.style.FontPath, s.style.Size)
	stdimg.DrawText(dst, r, s.lines, face, s.style.Foreground)
}

// ApproximateImage renders the selection on its own, transparent where
// nothing is drawn.
func (s *TextSelection) ApproximateImage() *stdimg.Image {
	img := stdimg.NewImage(s.rect.Dx(), s.rect.Dy())
	s.Paint(img, s.rect)
	return img
}

func (s *TextSelection) Size() int64 {
	n := int64(0)
	for _, l := range s.lines {
		n += int64(len(l))
	}
	return n
}

func (s *TextSelection) String() string {
	return fmt.Sprintf("text selection %v lines=%d", s.rect, len(s.lines))
}
