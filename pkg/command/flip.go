package command

import "github.com/Fepozopo/tpaint/pkg/stdimg"

// FlipCommand mirrors the document image or the image selection. Flipping
// twice is the identity, so nothing is cached.
type FlipCommand struct {
	env            *Environment
	actOnSelection bool
	horiz, vert    bool
}

func NewFlipCommand(env *Environment, actOnSelection, horiz, vert bool) *FlipCommand {
	return &FlipCommand{env: env, actOnSelection: actOnSelection, horiz: horiz, vert: vert}
}

func (c *FlipCommand) Name() string {
	switch {
	case c.horiz && c.vert:
		return selectionPrefix(c.actOnSelection, "Rotate 180")
	case c.horiz:
		return selectionPrefix(c.actOnSelection, "Flip Horizontally")
	default:
		return selectionPrefix(c.actOnSelection, "Flip Vertically")
	}
}

func (c *FlipCommand) IsNoOp() bool { return !c.horiz && !c.vert }
func (c *FlipCommand) Size() int64  { return 0 }
func (c *FlipCommand) Execute()     { c.flip() }
func (c *FlipCommand) Unexecute()   { c.flip() }

func (c *FlipCommand) flip() {
	if c.IsNoOp() {
		return
	}
	doc := c.env.document()
	if c.actOnSelection {
		is := doc.ImageSelection()
		if is == nil {
			panic("command: only image selections can be flipped")
		}
		is.Flip(c.horiz, c.vert)
		return
	}
	doc.SetImage(stdimg.Flip(doc.Image(false), c.horiz, c.vert))
}
