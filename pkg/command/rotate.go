package command

import (
	"image"
	"math"

	"github.com/Fepozopo/tpaint/pkg/selection"
	"github.com/Fepozopo/tpaint/pkg/stdimg"
)

// RotateCommand turns the document image or the selection content clockwise.
// Multiples of 90 degrees are undone by rotating back; other angles keep the
// old image.
type RotateCommand struct {
	env            *Environment
	actOnSelection bool
	angle          float64
	lossless       bool

	oldImage     *stdimg.Image
	oldSelection *selection.ImageSelection
}

func NewRotateCommand(env *Environment, actOnSelection bool, angle float64) *RotateCommand {
	return &RotateCommand{
		env:            env,
		actOnSelection: actOnSelection,
		angle:          angle,
		lossless:       stdimg.IsLosslessRotation(angle),
	}
}

func (c *RotateCommand) Name() string { return selectionPrefix(c.actOnSelection, "Rotate") }

// IsNoOp reports whether the angle is a whole number of turns.
func (c *RotateCommand) IsNoOp() bool {
	a := math.Abs(math.Mod(c.angle, 360))
	return a < stdimg.AngleEpsilon || 360-a < stdimg.AngleEpsilon
}

func (c *RotateCommand) IsLossless() bool { return c.lossless }

func (c *RotateCommand) Size() int64 {
	n := c.oldImage.ByteSize()
	if c.oldSelection != nil {
		n += c.oldSelection.Size()
	}
	return n
}

func (c *RotateCommand) Execute() {
	if c.IsNoOp() {
		return
	}
	doc := c.env.document()
	if c.actOnSelection {
		c.env.imageSelectionWithContent()
	}

	oldImage := doc.Image(c.actOnSelection)
	if !c.lossless {
		c.oldImage = oldImage
	}
	newImage := stdimg.Rotate(oldImage, c.angle, c.env.BackgroundColor(c.actOnSelection))

	if !c.actOnSelection {
		doc.SetImage(newImage)
		return
	}

	is := doc.ImageSelection()
	c.oldSelection = is.CloneImageSelection()
	c.oldSelection.DeleteContent()

	// Keep the content centred on where it was.
	r := is.BoundingRect()
	dst := image.Pt(
		r.Min.X+(r.Dx()-newImage.Width())/2,
		r.Min.Y+(r.Dy()-newImage.Height())/2,
	)
	m := stdimg.RotateMatrix(r.Dx(), r.Dy(), c.angle)
	pts := transformedBorder(is.Points(), m, dst)
	doc.SetSelection(selectionForTransformedContent("rotate", pts, newImage, is.Transparency()))
}

func (c *RotateCommand) Unexecute() {
	if c.IsNoOp() {
		return
	}
	doc := c.env.document()

	var oldImage *stdimg.Image
	if c.lossless {
		oldImage = stdimg.Rotate(doc.Image(c.actOnSelection), 360-c.angle, c.env.BackgroundColor(c.actOnSelection))
	} else {
		oldImage = c.oldImage
	}

	if c.actOnSelection {
		sel := c.oldSelection.CloneImageSelection()
		sel.SetBaseImage(oldImage)
		doc.SetSelection(sel)
	} else {
		doc.SetImage(oldImage)
	}
	c.oldImage = nil
	c.oldSelection = nil
}
