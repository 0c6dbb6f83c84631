package command

import (
	"fmt"
	"image"
	"math"

	"github.com/Fepozopo/tpaint/pkg/selection"
	"github.com/Fepozopo/tpaint/pkg/stdimg"
)

// ResizeScaleType selects what ResizeScaleCommand does to the pixels.
type ResizeScaleType int

const (
	// Resize crops or extends the canvas, keeping the top-left.
	Resize ResizeScaleType = iota
	// Scale resamples with nearest neighbour.
	Scale
	// SmoothScale resamples with a smoothing filter.
	SmoothScale
)

func (t ResizeScaleType) String() string {
	switch t {
	case Resize:
		return "Resize"
	case Scale:
		return "Scale"
	case SmoothScale:
		return "Smooth Scale"
	default:
		return fmt.Sprintf("ResizeScaleType(%d)", int(t))
	}
}

// ResizeScaleCommand changes the size of the document image or of the
// selection content.
//
// Integer upscales with Scale are undone by scaling back down, so they keep
// no copy of the old image. Resize only keeps the strips it cut off.
type ResizeScaleCommand struct {
	env            *Environment
	actOnSelection bool
	typ            ResizeScaleType

	oldW, oldH int
	newW, newH int

	actOnTextSelection      bool
	isLosslessScale         bool
	scaleSelectionWithImage bool

	oldImage                      *stdimg.Image
	oldRightImage, oldBottomImage *stdimg.Image
	oldTextSelection              *selection.TextSelection
	oldSelection                  *selection.ImageSelection
	oldRegion                     selection.Selection
}

// NewResizeScaleCommand captures the current size of the target. Resizing a
// non-text selection or scaling a text selection panics on Execute.
func NewResizeScaleCommand(env *Environment, actOnSelection bool, newW, newH int, typ ResizeScaleType) *ResizeScaleCommand {
	doc := env.document()
	c := &ResizeScaleCommand{
		env:            env,
		actOnSelection: actOnSelection,
		typ:            typ,
		oldW:           doc.Width(actOnSelection),
		oldH:           doc.Height(actOnSelection),
		newW:           newW,
		newH:           newH,
	}
	c.actOnTextSelection = actOnSelection && doc.TextSelection() != nil
	c.isLosslessScale = typ == Scale &&
		newW/c.oldW*c.oldW == newW &&
		newH/c.oldH*c.oldH == newH
	sel := doc.Selection()
	c.scaleSelectionWithImage = !actOnSelection &&
		(typ == Scale || typ == SmoothScale) &&
		sel != nil && !sel.HasContent()
	return c
}

func (c *ResizeScaleCommand) Name() string {
	if c.actOnTextSelection && c.typ == Resize {
		return "Text: Resize Box"
	}
	return selectionPrefix(c.actOnSelection, c.typ.String())
}

func (c *ResizeScaleCommand) IsNoOp() bool { return c.oldW == c.newW && c.oldH == c.newH }

// IsLosslessScale reports whether undo can be done by scaling back.
func (c *ResizeScaleCommand) IsLosslessScale() bool { return c.isLosslessScale }

func (c *ResizeScaleCommand) Size() int64 {
	n := c.oldImage.ByteSize() + c.oldRightImage.ByteSize() + c.oldBottomImage.ByteSize()
	if c.oldTextSelection != nil {
		n += c.oldTextSelection.Size()
	}
	if c.oldSelection != nil {
		n += c.oldSelection.Size()
	}
	if c.oldRegion != nil {
		n += c.oldRegion.Size()
	}
	return n
}

func (c *ResizeScaleCommand) Execute() {
	if c.IsNoOp() {
		return
	}
	if c.typ == Resize {
		c.executeResize()
		return
	}
	c.executeScale()
}

func (c *ResizeScaleCommand) executeResize() {
	doc := c.env.document()
	if c.actOnTextSelection {
		ts := doc.TextSelection()
		c.oldTextSelection = ts.CloneTextSelection()
		doc.SetSelection(ts.Resized(c.newW, c.newH))
		return
	}
	if c.actOnSelection {
		panic("command: only text selections can be resized")
	}
	if c.newW < c.oldW {
		c.oldRightImage = doc.GetImageAt(image.Rect(c.newW, 0, c.oldW, c.oldH))
	}
	if c.newH < c.oldH {
		c.oldBottomImage = doc.GetImageAt(image.Rect(0, c.newH, c.newW, c.oldH))
	}
	doc.Resize(c.newW, c.newH, c.env.BackgroundColor(false))
}

func (c *ResizeScaleCommand) executeScale() {
	if c.actOnTextSelection {
		panic("command: text selections cannot be scaled")
	}
	doc := c.env.document()
	if c.actOnSelection {
		c.env.imageSelectionWithContent()
	}

	oldImage := doc.Image(c.actOnSelection)
	if !c.isLosslessScale {
		c.oldImage = oldImage
	}
	newImage := stdimg.Scale(oldImage, c.newW, c.newH, c.typ == SmoothScale)

	if c.actOnSelection {
		is := doc.ImageSelection()
		if c.oldSelection == nil {
			c.oldSelection = is.CloneImageSelection()
			c.oldSelection.DeleteContent()
		}
		r := image.Rectangle{Min: is.BoundingRect().Min}
		r.Max = r.Min.Add(newImage.Size())
		doc.SetSelection(selection.NewRectangular(r, newImage, is.Transparency()))
		return
	}

	if c.scaleSelectionWithImage && c.oldRegion == nil {
		c.oldRegion = doc.Selection().Clone()
	}
	doc.SetImage(newImage)
	if c.scaleSelectionWithImage {
		c.scaleSelectionRegionWithDocument()
	}
}

// scaleSelectionRegionWithDocument maps the marked region's border by the
// same factors as the image so it still outlines the same pixels.
func (c *ResizeScaleCommand) scaleSelectionRegionWithDocument() {
	doc := c.env.document()
	sel := doc.Selection()
	if sel == nil || sel.HasContent() {
		panic("command: expected a marked region")
	}
	hs := float64(c.newW) / float64(c.oldW)
	vs := float64(c.newH) / float64(c.oldH)

	old := sel.BoundingRect().Min
	newOrigin := image.Pt(int(float64(old.X)*hs), int(float64(old.Y)*vs))

	pts := stdimg.TranslatePoints(sel.Points(), old.Mul(-1))
	for i, p := range pts {
		pts[i] = image.Pt(int(math.Round(float64(p.X)*hs)), int(math.Round(float64(p.Y)*vs)))
	}
	pts = stdimg.TranslatePoints(pts, newOrigin)

	switch s := sel.(type) {
	case *selection.ImageSelection:
		doc.SetSelection(selection.NewFreeForm(pts, nil, s.Transparency()))
	case *selection.TextSelection:
		r := stdimg.PointsBounds(pts)
		ts := s.Resized(r.Dx(), r.Dy())
		ts.MoveTo(r.Min)
		doc.SetSelection(ts)
	default:
		panic(fmt.Sprintf("command: unexpected selection type %T", sel))
	}
}

func (c *ResizeScaleCommand) Unexecute() {
	if c.IsNoOp() {
		return
	}
	if c.typ == Resize {
		c.unexecuteResize()
		return
	}
	c.unexecuteScale()
}

func (c *ResizeScaleCommand) unexecuteResize() {
	doc := c.env.document()
	if c.actOnTextSelection {
		doc.SetSelection(c.oldTextSelection)
		c.oldTextSelection = nil
		return
	}
	img := doc.Image(false).Resize(c.oldW, c.oldH, c.env.BackgroundColor(false))
	if c.oldRightImage != nil {
		img.SetImageAt(c.oldRightImage, image.Pt(c.newW, 0))
	}
	if c.oldBottomImage != nil {
		img.SetImageAt(c.oldBottomImage, image.Pt(0, c.newH))
	}
	doc.SetImage(img)
	c.oldRightImage, c.oldBottomImage = nil, nil
}

func (c *ResizeScaleCommand) unexecuteScale() {
	doc := c.env.document()

	var oldImage *stdimg.Image
	if c.isLosslessScale {
		oldImage = stdimg.Scale(doc.Image(c.actOnSelection), c.oldW, c.oldH, false)
	} else {
		oldImage = c.oldImage
		c.oldImage = nil
	}

	if c.actOnSelection {
		sel := c.oldSelection.CloneImageSelection()
		sel.SetBaseImage(oldImage)
		doc.SetSelection(sel)
		return
	}
	doc.SetImage(oldImage)
	if c.scaleSelectionWithImage {
		doc.SetSelection(c.oldRegion)
	}
}
