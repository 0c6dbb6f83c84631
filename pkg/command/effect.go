package command

import "github.com/Fepozopo/tpaint/pkg/stdimg"

// Effect computes a new image from the old one without modifying it.
type Effect func(*stdimg.Image) *stdimg.Image

// EffectCommand applies an Effect to the document image or the selection
// content. Invertible effects are undone by applying them again; others keep
// the old image.
type EffectCommand struct {
	env            *Environment
	name           string
	actOnSelection bool
	fn             Effect
	invertible     bool

	oldImage *stdimg.Image
}

func NewEffectCommand(env *Environment, name string, actOnSelection bool, fn Effect, invertible bool) *EffectCommand {
	return &EffectCommand{env: env, name: name, actOnSelection: actOnSelection, fn: fn, invertible: invertible}
}

func (c *EffectCommand) Name() string { return selectionPrefix(c.actOnSelection, c.name) }
func (c *EffectCommand) Size() int64  { return c.oldImage.ByteSize() }

func (c *EffectCommand) Execute() {
	doc := c.env.document()
	if c.actOnSelection {
		c.env.imageSelectionWithContent()
	}
	old := doc.Image(c.actOnSelection)
	if !c.invertible {
		c.oldImage = old
	}
	doc.SetImageOf(c.actOnSelection, c.fn(old))
}

func (c *EffectCommand) Unexecute() {
	doc := c.env.document()
	if c.invertible {
		doc.SetImageOf(c.actOnSelection, c.fn(doc.Image(c.actOnSelection)))
		return
	}
	doc.SetImageOf(c.actOnSelection, c.oldImage)
	c.oldImage = nil
}

// ClearCommand fills the document with the background color, or makes the
// selection content transparent.
type ClearCommand struct {
	env            *Environment
	actOnSelection bool

	oldImage *stdimg.Image
}

func NewClearCommand(env *Environment, actOnSelection bool) *ClearCommand {
	return &ClearCommand{env: env, actOnSelection: actOnSelection}
}

func (c *ClearCommand) Name() string { return selectionPrefix(c.actOnSelection, "Clear") }
func (c *ClearCommand) Size() int64  { return c.oldImage.ByteSize() }

func (c *ClearCommand) Execute() {
	doc := c.env.document()
	bg := c.env.BackgroundColor(c.actOnSelection)
	if c.actOnSelection {
		is := c.env.imageSelectionWithContent()
		c.oldImage = doc.Image(true)
		is.Fill(bg)
		return
	}
	c.oldImage = doc.Image(false)
	doc.Fill(bg)
}

func (c *ClearCommand) Unexecute() {
	c.env.document().SetImageOf(c.actOnSelection, c.oldImage)
	c.oldImage = nil
}
