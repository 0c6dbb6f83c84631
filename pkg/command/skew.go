package command

import (
	"math"

	"github.com/Fepozopo/tpaint/pkg/selection"
	"github.com/Fepozopo/tpaint/pkg/stdimg"
)

// SkewCommand shears the document image or the selection content. Skewing
// is never lossless, so the old image is always kept.
type SkewCommand struct {
	env            *Environment
	actOnSelection bool
	hangle, vangle float64

	oldImage     *stdimg.Image
	oldSelection *selection.ImageSelection
}

// NewSkewCommand takes angles in degrees; see ValidateSkewAngle.
func NewSkewCommand(env *Environment, actOnSelection bool, hangle, vangle float64) *SkewCommand {
	return &SkewCommand{env: env, actOnSelection: actOnSelection, hangle: hangle, vangle: vangle}
}

func (c *SkewCommand) Name() string { return selectionPrefix(c.actOnSelection, "Skew") }

func (c *SkewCommand) IsNoOp() bool {
	return math.Abs(c.hangle) < stdimg.AngleEpsilon && math.Abs(c.vangle) < stdimg.AngleEpsilon
}

func (c *SkewCommand) Size() int64 {
	n := c.oldImage.ByteSize()
	if c.oldSelection != nil {
		n += c.oldSelection.Size()
	}
	return n
}

func (c *SkewCommand) Execute() {
	if c.IsNoOp() {
		return
	}
	doc := c.env.document()
	if c.actOnSelection {
		c.env.imageSelectionWithContent()
	}

	c.oldImage = doc.Image(c.actOnSelection)
	newImage := stdimg.Skew(c.oldImage, c.hangle, c.vangle, c.env.BackgroundColor(c.actOnSelection))

	if !c.actOnSelection {
		doc.SetImage(newImage)
		return
	}

	is := doc.ImageSelection()
	c.oldSelection = is.CloneImageSelection()
	c.oldSelection.DeleteContent()

	m := stdimg.SkewMatrix(is.Width(), is.Height(), c.hangle, c.vangle)
	pts := transformedBorder(is.Points(), m, is.BoundingRect().Min)
	doc.SetSelection(selectionForTransformedContent("skew", pts, newImage, is.Transparency()))
}

func (c *SkewCommand) Unexecute() {
	if c.IsNoOp() {
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
