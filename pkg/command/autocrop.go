package command

import (
	"image"

	"github.com/Fepozopo/tpaint/pkg/selection"
	"github.com/Fepozopo/tpaint/pkg/stdimg"
)

// AutoCropCommand removes the uniform border around the document image or
// the selection content. The crop rectangle is found on the first Execute.
type AutoCropCommand struct {
	env                 *Environment
	actOnSelection      bool
	processedSimilarity int

	rect         image.Rectangle
	computed     bool
	noop         bool
	oldImage     *stdimg.Image
	oldSelection *selection.ImageSelection
}

func NewAutoCropCommand(env *Environment, actOnSelection bool, processedSimilarity int) *AutoCropCommand {
	return &AutoCropCommand{env: env, actOnSelection: actOnSelection, processedSimilarity: processedSimilarity}
}

func (c *AutoCropCommand) Name() string { return selectionPrefix(c.actOnSelection, "Autocrop") }

// IsNoOp is only meaningful after Execute.
func (c *AutoCropCommand) IsNoOp() bool { return c.computed && c.noop }

// Rect is the crop rectangle relative to the cropped image.
func (c *AutoCropCommand) Rect() image.Rectangle { return c.rect }

func (c *AutoCropCommand) Size() int64 {
	n := c.oldImage.ByteSize()
	if c.oldSelection != nil {
		n += c.oldSelection.Size()
	}
	return n
}

func (c *AutoCropCommand) Execute() {
	doc := c.env.document()
	if c.actOnSelection {
		c.env.imageSelectionWithContent()
	}
	img := doc.Image(c.actOnSelection)
	if !c.computed {
		c.rect = stdimg.AutoCropRect(img, c.processedSimilarity)
		c.noop = c.rect == img.Bounds()
		c.computed = true
	}
	if c.noop {
		stdimg.Logger().Debug("nothing to autocrop", "size", img.Size())
		return
	}
	c.oldImage = img
	cropped := img.SubImage(c.rect)

	if !c.actOnSelection {
		doc.SetImage(cropped)
		return
	}
	is := doc.ImageSelection()
	c.oldSelection = is.CloneImageSelection()
	c.oldSelection.DeleteContent()
	r := c.rect.Add(is.BoundingRect().Min)
	doc.SetSelection(selection.NewRectangular(r, cropped, is.Transparency()))
}

func (c *AutoCropCommand) Unexecute() {
	if c.noop {
		return
	}
	doc := c.env.document()
	if c.actOnSelection {
		sel := c.oldSelection.CloneImageSelection()
		sel.SetBaseImage(c.oldImage)
		doc.SetSelection(sel)
	} else {
		doc.SetImage(c.oldImage)
	}
	c.oldImage = nil
	c.oldSelection = nil
}
