// Package document owns the canonical image being edited and the active
// selection, and tells listeners which areas changed.
package document

import (
	"fmt"
	"image"

	"github.com/Fepozopo/tpaint/pkg/selection"
	"github.com/Fepozopo/tpaint/pkg/stdimg"
)

// Listener receives change notifications. The document only emits them.
type Listener interface {
	ContentsChanged(r image.Rectangle)
	SizeChanged(w, h int)
	SelectionChanged(enabled bool)
}

// Document is an image plus at most one selection. While a selection has
// content, the document pixels under it are conceptually hidden until it is
// pushed back down or deleted.
//
// A Document is not safe for concurrent use.
type Document struct {
	img       *stdimg.Image
	sel       selection.Selection
	listeners []Listener
	modified  bool
}

// New returns a w x h document filled with bg.
func New(w, h int, bg stdimg.Color) *Document {
	return &Document{img: stdimg.NewFilled(w, h, bg)}
}

// FromImage wraps img, which the document takes ownership of.
func FromImage(img *stdimg.Image) *Document {
	if img == nil {
		panic("document: nil image")
	}
	return &Document{img: img}
}

func (d *Document) AddListener(l Listener) { d.listeners = append(d.listeners, l) }

func (d *Document) RemoveListener(l Listener) {
	for i, x := range d.listeners {
		if x == l {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

func (d *Document) contentsChanged(r image.Rectangle) {
	if r.Empty() {
		return
	}
	for _, l := range d.listeners {
		l.ContentsChanged(r)
	}
}

func (d *Document) sizeChanged(w, h int) {
	for _, l := range d.listeners {
		l.SizeChanged(w, h)
	}
}

func (d *Document) selectionChanged(enabled bool) {
	for _, l := range d.listeners {
		l.SelectionChanged(enabled)
	}
}

func (d *Document) IsModified() bool      { return d.modified }
func (d *Document) SetModified(m bool)    { d.modified = m }
func (d *Document) Rect() image.Rectangle { return d.img.Bounds() }

// Width is the selection's width when ofSelection, else the image's.
func (d *Document) Width(ofSelection bool) int { return d.RectOf(ofSelection).Dx() }

func (d *Document) Height(ofSelection bool) int { return d.RectOf(ofSelection).Dy() }

// RectOf is the selection's bounding rect when ofSelection, else the image
// rect.
func (d *Document) RectOf(ofSelection bool) image.Rectangle {
	if ofSelection {
		return d.mustSelection().BoundingRect()
	}
	return d.img.Bounds()
}

func (d *Document) mustSelection() selection.Selection {
	if d.sel == nil {
		panic("document: no selection")
	}
	return d.sel
}

// Image returns a copy of the document image, or of the image selection's
// content when ofSelection.
func (d *Document) Image(ofSelection bool) *stdimg.Image {
	if ofSelection {
		is := d.ImageSelection()
		if is == nil {
			panic("document: no image selection")
		}
		return is.BaseImage().Clone()
	}
	return d.img.Clone()
}

// SetImage replaces the whole document image.
func (d *Document) SetImage(img *stdimg.Image) {
	if img == nil {
		panic("document: nil image")
	}
	old := d.img.Size()
	d.img = img
	d.modified = true
	if img.Size() != old {
		d.sizeChanged(img.Width(), img.Height())
	} else {
		d.contentsChanged(img.Bounds())
	}
}

// SetImageOf replaces the image selection's content when ofSelection, else
// the document image.
func (d *Document) SetImageOf(ofSelection bool, img *stdimg.Image) {
	if ofSelection {
		is := d.ImageSelection()
		if is == nil {
			panic("document: no image selection")
		}
		is.SetBaseImage(img)
		return
	}
	d.SetImage(img)
}

// GetImageAt copies the document pixels of r. Parts outside the image read
// as transparent.
func (d *Document) GetImageAt(r image.Rectangle) *stdimg.Image {
	return d.img.SubImage(r)
}

// SetImageAt copies img into the document with its top-left at pt.
func (d *Document) SetImageAt(img *stdimg.Image, pt image.Point) {
	d.img.SetImageAt(img, pt)
	d.modified = true
	d.contentsChanged(img.Bounds().Add(pt).Intersect(d.img.Bounds()))
}

// PaintImageAt composites img onto the document, skipping transparent
// pixels.
func (d *Document) PaintImageAt(img *stdimg.Image, pt image.Point) {
	d.img.PaintImageAt(img, pt)
	d.modified = true
	d.contentsChanged(img.Bounds().Add(pt).Intersect(d.img.Bounds()))
}

// Fill sets every document pixel to c.
func (d *Document) Fill(c stdimg.Color) {
	d.img.Fill(c)
	d.modified = true
	d.contentsChanged(d.img.Bounds())
}

// Resize crops or extends the image, keeping the top-left. New area is
// filled with bg.
func (d *Document) Resize(w, h int, bg stdimg.Color) {
	if w == d.img.Width() && h == d.img.Height() {
		return
	}
	d.img = d.img.Resize(w, h, bg)
	d.modified = true
	d.sizeChanged(w, h)
}

func (d *Document) String() string {
	return fmt.Sprintf("document %dx%d selection=%v", d.img.Width(), d.img.Height(), d.sel)
}
