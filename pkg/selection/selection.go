// Package selection models the region of a document the user is working
// on: a shape (rectangle, ellipse, free-form polygon or text box), optional
// floating content and, for image selections, a transparency policy.
package selection

import (
	"fmt"
	"image"

	"github.com/Fepozopo/tpaint/pkg/stdimg"
)

// Kind tags the concrete shape of a selection.
type Kind int

const (
	Rectangular Kind = iota
	Elliptical
	FreeForm
	Text
)

func (k Kind) String() string {
	switch k {
	case Rectangular:
		return "rectangular"
	case Elliptical:
		return "elliptical"
	case FreeForm:
		return "free-form"
	case Text:
		return "text"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Selection is the behaviour shared by image and text selections.
//
// A selection without content is a marked region: it only outlines part of
// the document. With content it floats above the document until it is
// pushed down or deleted.
type Selection interface {
	Kind() Kind
	// BoundingRect is in document coordinates. When content is present it
	// has exactly the content's size.
	BoundingRect() image.Rectangle
	// Points is the border polygon in document coordinates.
	Points() []image.Point
	HasContent() bool
	DeleteContent()
	MoveBy(dx, dy int)
	MoveTo(pt image.Point)
	Clone() Selection
	// Paint composites the content onto dst, whose top-left corner is at
	// docRect.Min in document coordinates.
	Paint(dst *stdimg.Image, docRect image.Rectangle)
	// Size approximates the memory held, for undo accounting.
	Size() int64
	// SetChangedFunc registers fn to receive the document area that needs
	// repainting after each change. nil disconnects.
	SetChangedFunc(fn func(image.Rectangle))
}

var (
	_ Selection = (*ImageSelection)(nil)
	_ Selection = (*TextSelection)(nil)
)

// notifier is embedded by both selection types.
type notifier struct {
	changed func(image.Rectangle)
}

func (n *notifier) SetChangedFunc(fn func(image.Rectangle)) { n.changed = fn }

func (n *notifier) notify(r image.Rectangle) {
	if n.changed != nil && !r.Empty() {
		n.changed(r)
	}
}

// rectPoints returns the four inclusive corners of r, clockwise from the
// top-left.
func rectPoints(r image.Rectangle) []image.Point {
	if r.Empty() {
		return nil
	}
	x1, y1 := r.Max.X-1, r.Max.Y-1
	return []image.Point{
		{r.Min.X, r.Min.Y},
		{x1, r.Min.Y},
		{x1, y1},
		{r.Min.X, y1},
	}
}

func mustMatchRect(base *stdimg.Image, r image.Rectangle) {
	if base != nil && base.Size() != r.Size() {
		panic(fmt.Sprintf("selection: content size %v does not match bounding rect %v", base.Size(), r.Size()))
	}
}
