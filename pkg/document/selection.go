package document

import (
	"fmt"
	"image"

	"github.com/Fepozopo/tpaint/pkg/selection"
	"github.com/Fepozopo/tpaint/pkg/stdimg"
)

// Selection returns the active selection, or nil. Changes made to it are
// reported to the document's listeners.
func (d *Document) Selection() selection.Selection { return d.sel }

// ImageSelection returns the active selection if it is an image selection.
func (d *Document) ImageSelection() *selection.ImageSelection {
	is, _ := d.sel.(*selection.ImageSelection)
	return is
}

// TextSelection returns the active selection if it is a text selection.
func (d *Document) TextSelection() *selection.TextSelection {
	ts, _ := d.sel.(*selection.TextSelection)
	return ts
}

// SetSelection installs a copy of sel, replacing any previous selection
// without pushing it down.
func (d *Document) SetSelection(sel selection.Selection) {
	if sel == nil {
		panic("document: SetSelection(nil), use SelectionDelete")
	}
	hadSelection := d.sel != nil
	if hadSelection {
		d.sel.SetChangedFunc(nil)
		d.contentsChanged(d.sel.BoundingRect())
	}

	d.sel = sel.Clone()
	d.sel.SetChangedFunc(d.selectionContentsChanged)
	if d.sel.HasContent() {
		d.modified = true
	}
	d.contentsChanged(d.sel.BoundingRect())

	if !hadSelection {
		d.selectionChanged(true)
	}
}

func (d *Document) selectionContentsChanged(r image.Rectangle) {
	if d.sel != nil && d.sel.HasContent() {
		d.modified = true
	}
	d.contentsChanged(r)
}

// SelectionDelete drops the selection and any content it carries.
func (d *Document) SelectionDelete() {
	if d.sel == nil {
		return
	}
	r := d.sel.BoundingRect()
	if d.sel.HasContent() {
		d.modified = true
	}
	d.sel.SetChangedFunc(nil)
	d.sel = nil
	d.contentsChanged(r)
	d.selectionChanged(false)
}

// SelectionCopyOntoDocument stamps the selection content onto the image.
// applyTransparency chooses between the transparency-masked and the raw
// content of an image selection.
func (d *Document) SelectionCopyOntoDocument(applyTransparency bool) {
	sel := d.mustSelection()
	if !sel.HasContent() {
		return
	}
	switch s := sel.(type) {
	case *selection.ImageSelection:
		if applyTransparency {
			s.Paint(d.img, d.img.Bounds())
		} else {
			s.PaintWithBaseImage(d.img, d.img.Bounds())
		}
	case *selection.TextSelection:
		s.Paint(d.img, d.img.Bounds())
	default:
		panic(fmt.Sprintf("document: unexpected selection type %T", sel))
	}
	d.modified = true
	d.contentsChanged(sel.BoundingRect().Intersect(d.img.Bounds()))
}

// SelectionPushOntoDocument copies the content down, if any, and deletes the
// selection.
func (d *Document) SelectionPushOntoDocument(applyTransparency bool) {
	if d.mustSelection().HasContent() {
		d.SelectionCopyOntoDocument(applyTransparency)
	}
	d.SelectionDelete()
}

// ImageWithSelection is a copy of the image with the selection content
// composited on top, which is what the user sees.
func (d *Document) ImageWithSelection() *stdimg.Image {
	out := d.img.Clone()
	if d.sel != nil && d.sel.HasContent() {
		d.sel.Paint(out, out.Bounds())
	}
	return out
}

// SelectedBaseImage returns the image selection's content, or for a marked
// region the document pixels inside its shape.
func (d *Document) SelectedBaseImage() *stdimg.Image {
	is := d.ImageSelection()
	if is == nil {
		panic("document: no image selection")
	}
	if is.HasContent() {
		return is.BaseImage().Clone()
	}
	return is.GivenImageMaskedByShape(d.GetImageAt(is.BoundingRect()))
}

// ImageSelectionPullFromDocument lifts the pixels under a marked region into
// the selection and erases them from the image with bg. Pixels the
// selection's transparency policy would show through are left in place.
func (d *Document) ImageSelectionPullFromDocument(bg stdimg.Color) {
	is := d.ImageSelection()
	if is == nil {
		panic("document: no image selection")
	}
	if is.HasContent() {
		panic("document: selection already has content")
	}
	is.SetBaseImage(d.SelectedBaseImage())

	r := is.BoundingRect()
	shape := is.ShapeMask(false)
	holes := is.TransparencyMask()
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			if !shape.At(x, y) || (holes != nil && holes.At(x, y)) {
				continue
			}
			d.img.SetPixel(r.Min.X+x, r.Min.Y+y, bg)
		}
	}
	d.modified = true
	d.contentsChanged(r.Intersect(d.img.Bounds()))
	stdimg.Logger().Debug("pulled selection from document", "rect", r, "kind", is.Kind())
}
