package selection

import (
	"fmt"
	"image"

	"github.com/Fepozopo/tpaint/pkg/stdimg"
)

// ImageSelection is a rectangular, elliptical or free-form selection with
// optional pixel content.
//
// The transparency mask is derived from the content and the transparency
// policy. A set bit marks a content pixel that is drawn as a hole. The mask
// is nil whenever it would mark nothing.
type ImageSelection struct {
	notifier

	kind   Kind
	rect   image.Rectangle
	points []image.Point // free-form only, document coordinates

	base             *stdimg.Image
	transparency     Transparency
	transparencyMask *stdimg.Mask
}

// NewRectangular returns a rectangular selection. base may be nil for a
// marked region; otherwise it must be rect-sized.
func NewRectangular(rect image.Rectangle, base *stdimg.Image, tr Transparency) *ImageSelection {
	return newImageSelection(Rectangular, rect, nil, base, tr)
}

// NewElliptical returns a selection of the ellipse inscribed in rect.
func NewElliptical(rect image.Rectangle, base *stdimg.Image, tr Transparency) *ImageSelection {
	return newImageSelection(Elliptical, rect, nil, base, tr)
}

// NewFreeForm returns a polygonal selection. The bounding rect is the
// inclusive bounds of points.
func NewFreeForm(points []image.Point, base *stdimg.Image, tr Transparency) *ImageSelection {
	if len(points) == 0 {
		panic("selection: free-form selection without points")
	}
	pts := append([]image.Point(nil), points...)
	return newImageSelection(FreeForm, stdimg.PointsBounds(pts), pts, base, tr)
}

func newImageSelection(k Kind, rect image.Rectangle, pts []image.Point, base *stdimg.Image, tr Transparency) *ImageSelection {
	if rect.Empty() {
		panic(fmt.Sprintf("selection: empty bounding rect %v", rect))
	}
	mustMatchRect(base, rect)
	s := &ImageSelection{kind: k, rect: rect, points: pts, base: base, transparency: tr}
	s.recalculateTransparencyMask()
	return s
}

func (s *ImageSelection) Kind() Kind                    { return s.kind }
func (s *ImageSelection) BoundingRect() image.Rectangle { return s.rect }
func (s *ImageSelection) Width() int                    { return s.rect.Dx() }
func (s *ImageSelection) Height() int                   { return s.rect.Dy() }
func (s *ImageSelection) HasContent() bool              { return s.base != nil }

// Points is the border polygon in document coordinates.
func (s *ImageSelection) Points() []image.Point {
	switch s.kind {
	case Rectangular:
		return rectPoints(s.rect)
	case Elliptical:
		return ellipsePoints(s.rect)
	case FreeForm:
		return append([]image.Point(nil), s.points...)
	default:
		panic(fmt.Sprintf("selection: unexpected image selection kind %v", s.kind))
	}
}

// BaseImage is the raw content, or nil for a marked region. The caller must
// not modify it; use SetBaseImage.
func (s *ImageSelection) BaseImage() *stdimg.Image { return s.base }

// SetBaseImage replaces the content. base must be nil or exactly the size of
// the bounding rect.
func (s *ImageSelection) SetBaseImage(base *stdimg.Image) {
	mustMatchRect(base, s.rect)
	s.base = base
	s.recalculateTransparencyMask()
	s.notify(s.rect)
}

func (s *ImageSelection) DeleteContent() {
	if s.base == nil {
		return
	}
	s.SetBaseImage(nil)
}

func (s *ImageSelection) Transparency() Transparency     { return s.transparency }
func (s *ImageSelection) TransparencyMask() *stdimg.Mask { return s.transparencyMask }

// SetTransparency installs a new policy. It returns whether the visible
// result changed: an equal policy never does, two absent masks of the same
// size mean nothing changed, and with checkActuallyChanged equal-sized masks
// are compared bit by bit. A size change always counts.
func (s *ImageSelection) SetTransparency(tr Transparency, checkActuallyChanged bool) bool {
	if s.transparency.Equal(tr) {
		return false
	}
	s.transparency = tr

	oldMask := s.transparencyMask
	s.recalculateTransparencyMask()
	newMask := s.transparencyMask

	changed := true
	if maskSize(oldMask) == maskSize(newMask) {
		switch {
		case newMask == nil:
			changed = false
		case checkActuallyChanged:
			changed = !oldMask.Equal(newMask)
		}
	}
	if changed {
		s.notify(s.rect)
	}
	return changed
}

func maskSize(m *stdimg.Mask) image.Point {
	if m == nil {
		return image.Point{}
	}
	return image.Pt(m.Width(), m.Height())
}

func (s *ImageSelection) recalculateTransparencyMask() {
	s.transparencyMask = nil
	if s.base == nil || s.transparency.IsOpaque() {
		return
	}
	key := s.transparency.Color()
	processed := s.transparency.ProcessedColorSimilarity()
	m := stdimg.NewMask(s.base.Width(), s.base.Height())
	marked := false
	for y := 0; y < s.base.Height(); y++ {
		for x := 0; x < s.base.Width(); x++ {
			c := s.base.Pixel(x, y)
			if c == stdimg.Transparent || c.IsSimilarTo(key, processed) {
				m.Set(x, y, true)
				marked = true
			}
		}
	}
	if marked {
		s.transparencyMask = m
	}
}

// ShapeMask rasterizes the border local to the bounding rect (set bit means
// inside). With nullForRectangular a rectangular selection returns nil.
func (s *ImageSelection) ShapeMask(nullForRectangular bool) *stdimg.Mask {
	switch s.kind {
	case Rectangular:
		if nullForRectangular {
			return nil
		}
		m := stdimg.NewMask(s.rect.Dx(), s.rect.Dy())
		m.Fill(true)
		return m
	case Elliptical, FreeForm:
		local := stdimg.TranslatePoints(s.Points(), s.rect.Min.Mul(-1))
		return rasterizePolygon(local, s.rect.Dx(), s.rect.Dy())
	default:
		panic(fmt.Sprintf("selection: unexpected image selection kind %v", s.kind))
	}
}

// Contains reports whether the document point pt lies inside the shape.
func (s *ImageSelection) Contains(pt image.Point) bool {
	if !pt.In(s.rect) {
		return false
	}
	m := s.ShapeMask(true)
	return m == nil || m.At(pt.X-s.rect.Min.X, pt.Y-s.rect.Min.Y)
}

// GivenImageMaskedByShape returns a copy of img, which must be
// bounding-rect sized, with every pixel outside the shape cleared.
func (s *ImageSelection) GivenImageMaskedByShape(img *stdimg.Image) *stdimg.Image {
	mustMatchRect(img, s.rect)
	out := img.Clone()
	out.SetMask(s.ShapeMask(true))
	return out
}

// TransparentImage is the content with the transparency mask punched out,
// as it is drawn. nil for a marked region.
func (s *ImageSelection) TransparentImage() *stdimg.Image {
	if s.base == nil {
		return nil
	}
	out := s.base.Clone()
	if s.transparencyMask != nil {
		opaque := s.transparencyMask.Clone()
		opaque.Invert()
		out.SetMask(opaque)
	}
	return out
}

// Fill replaces the content with c, clipped to the shape when c is opaque.
func (s *ImageSelection) Fill(c stdimg.Color) {
	img := stdimg.NewFilled(s.rect.Dx(), s.rect.Dy(), c)
	if c.IsOpaque() {
		img = s.GivenImageMaskedByShape(img)
	}
	s.SetBaseImage(img)
}

// Flip mirrors the content, the transparency mask and, for free-form
// selections, the border.
func (s *ImageSelection) Flip(horiz, vert bool) {
	if !horiz && !vert {
		return
	}
	if s.kind == FreeForm {
		s.points = stdimg.FlipPoints(s.points, s.rect, horiz, vert)
	}
	if s.base != nil {
		s.base = stdimg.Flip(s.base, horiz, vert)
	}
	if s.transparencyMask != nil {
		s.transparencyMask = s.transparencyMask.Flip(horiz, vert)
	}
	s.notify(s.rect)
}

// Paint composites the transparency-masked content.
func (s *ImageSelection) Paint(dst *stdimg.Image, docRect image.Rectangle) {
	if img := s.TransparentImage(); img != nil {
		dst.PaintImageAt(img, s.rect.Min.Sub(docRect.Min))
	}
}

// PaintWithBaseImage composites the raw content, ignoring the transparency
// policy.
func (s *ImageSelection) PaintWithBaseImage(dst *stdimg.Image, docRect image.Rectangle) {
	if s.base != nil {
		dst.PaintImageAt(s.base, s.rect.Min.Sub(docRect.Min))
	}
}

func (s *ImageSelection) MoveBy(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	old := s.rect
	d := image.Pt(dx, dy)
	s.rect = s.rect.Add(d)
	if s.kind == FreeForm {
		s.points = stdimg.TranslatePoints(s.points, d)
	}
	s.notify(old.Union(s.rect))
}

func (s *ImageSelection) MoveTo(pt image.Point) {
	d := pt.Sub(s.rect.Min)
	s.MoveBy(d.X, d.Y)
}

// Clone deep-copies the selection. The changed callback is not copied.
func (s *ImageSelection) Clone() Selection { return s.CloneImageSelection() }

func (s *ImageSelection) CloneImageSelection() *ImageSelection {
	return &ImageSelection{
		kind:             s.kind,
		rect:             s.rect,
		points:           append([]image.Point(nil), s.points...),
		base:             s.base.Clone(),
		transparency:     s.transparency,
		transparencyMask: s.transparencyMask.Clone(),
	}
}

func (s *ImageSelection) Size() int64 {
	return s.base.ByteSize() + s.transparencyMask.Size() + int64(len(s.points))*16
}

func (s *ImageSelection) String() string {
	return fmt.Sprintf("%v selection %v content=%t %v", s.kind, s.rect, s.HasContent(), s.transparency)
}
