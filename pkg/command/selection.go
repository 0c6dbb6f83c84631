package command

import (
	"fmt"
	"image"

	"github.com/Fepozopo/tpaint/pkg/selection"
	"github.com/Fepozopo/tpaint/pkg/stdimg"
)

// CreateSelectionCommand installs a new selection, replacing the current one
// without pushing it down.
type CreateSelectionCommand struct {
	env  *Environment
	name string
	sel  selection.Selection
	old  selection.Selection
}

func NewCreateSelectionCommand(env *Environment, name string, sel selection.Selection) *CreateSelectionCommand {
	return &CreateSelectionCommand{env: env, name: name, sel: sel.Clone()}
}

func (c *CreateSelectionCommand) Name() string { return c.name }

func (c *CreateSelectionCommand) Size() int64 {
	n := c.sel.Size()
	if c.old != nil {
		n += c.old.Size()
	}
	return n
}

func (c *CreateSelectionCommand) Execute() {
	doc := c.env.document()
	c.old = nil
	if cur := doc.Selection(); cur != nil {
		c.old = cur.Clone()
	}
	doc.SetSelection(c.sel)
}

func (c *CreateSelectionCommand) Unexecute() {
	doc := c.env.document()
	if c.old != nil {
		doc.SetSelection(c.old)
	} else {
		doc.SelectionDelete()
	}
	c.old = nil
}

// PullSelectionCommand lifts the pixels under a marked region into it.
type PullSelectionCommand struct {
	env *Environment

	rect     image.Rectangle
	oldImage *stdimg.Image
}

func NewPullSelectionCommand(env *Environment) *PullSelectionCommand {
	return &PullSelectionCommand{env: env}
}

func (c *PullSelectionCommand) Name() string { return "Selection: Pull" }
func (c *PullSelectionCommand) Size() int64  { return c.oldImage.ByteSize() }

func (c *PullSelectionCommand) Execute() {
	doc := c.env.document()
	is := doc.ImageSelection()
	if is == nil {
		panic("command: no image selection to pull")
	}
	c.rect = is.BoundingRect()
	c.oldImage = doc.GetImageAt(c.rect)
	doc.ImageSelectionPullFromDocument(c.env.BackgroundColor(false))
}

func (c *PullSelectionCommand) Unexecute() {
	doc := c.env.document()
	doc.SetImageAt(c.oldImage, c.rect.Min)
	doc.ImageSelection().DeleteContent()
	c.oldImage = nil
}

// MoveSelectionCommand moves the selection, with any content, by an offset.
type MoveSelectionCommand struct {
	env    *Environment
	dx, dy int
}

func NewMoveSelectionCommand(env *Environment, dx, dy int) *MoveSelectionCommand {
	return &MoveSelectionCommand{env: env, dx: dx, dy: dy}
}

func (c *MoveSelectionCommand) Name() string { return "Selection: Move" }
func (c *MoveSelectionCommand) IsNoOp() bool { return c.dx == 0 && c.dy == 0 }
func (c *MoveSelectionCommand) Size() int64  { return 0 }

func (c *MoveSelectionCommand) Execute() {
	c.env.document().Selection().MoveBy(c.dx, c.dy)
}

func (c *MoveSelectionCommand) Unexecute() {
	c.env.document().Selection().MoveBy(-c.dx, -c.dy)
}

// DestroySelectionCommand ends the selection, either pushing its content
// onto the document (deselect) or discarding it (delete).
type DestroySelectionCommand struct {
	env  *Environment
	push bool

	old      selection.Selection
	rect     image.Rectangle
	oldImage *stdimg.Image
}

func NewDeselectCommand(env *Environment) *DestroySelectionCommand {
	return &DestroySelectionCommand{env: env, push: true}
}

func NewDeleteSelectionCommand(env *Environment) *DestroySelectionCommand {
	return &DestroySelectionCommand{env: env}
}

func (c *DestroySelectionCommand) Name() string {
	if c.push {
		return "Deselect"
	}
	return "Selection: Delete"
}

func (c *DestroySelectionCommand) Size() int64 {
	n := c.oldImage.ByteSize()
	if c.old != nil {
		n += c.old.Size()
	}
	return n
}

func (c *DestroySelectionCommand) Execute() {
	doc := c.env.document()
	sel := doc.Selection()
	if sel == nil {
		panic("command: no selection to destroy")
	}
	c.old = sel.Clone()
	c.rect = sel.BoundingRect()
	if c.push && sel.HasContent() {
		c.oldImage = doc.GetImageAt(c.rect)
		doc.SelectionPushOntoDocument(true)
		return
	}
	doc.SelectionDelete()
}

func (c *DestroySelectionCommand) Unexecute() {
	doc := c.env.document()
	if c.oldImage != nil {
		doc.SetImageAt(c.oldImage, c.rect.Min)
	}
	doc.SetSelection(c.old)
	c.old = nil
	c.oldImage = nil
}

// SelectionTransparencyCommand switches the image selection's transparency
// policy.
type SelectionTransparencyCommand struct {
	env   *Environment
	newTr selection.Transparency
	oldTr selection.Transparency
}

func NewSelectionTransparencyCommand(env *Environment, newTr, oldTr selection.Transparency) *SelectionTransparencyCommand {
	return &SelectionTransparencyCommand{env: env, newTr: newTr, oldTr: oldTr}
}

func (c *SelectionTransparencyCommand) Name() string {
	if c.newTr.IsOpaque() {
		return "Selection: Opaque"
	}
	return fmt.Sprintf("Selection: Transparent %v", c.newTr.Color())
}

func (c *SelectionTransparencyCommand) IsNoOp() bool { return c.newTr.Equal(c.oldTr) }
func (c *SelectionTransparencyCommand) Size() int64  { return 0 }

func (c *SelectionTransparencyCommand) Execute() {
	c.env.document().ImageSelection().SetTransparency(c.newTr, false)
}

func (c *SelectionTransparencyCommand) Unexecute() {
	c.env.document().ImageSelection().SetTransparency(c.oldTr, false)
}

// TextCommand replaces the lines of the text selection.
type TextCommand struct {
	env      *Environment
	lines    []string
	oldLines []string
}

func NewTextCommand(env *Environment, lines []string) *TextCommand {
	return &TextCommand{env: env, lines: append([]string(nil), lines...)}
}

func (c *TextCommand) Name() string { return "Text: Write" }

func (c *TextCommand) Size() int64 {
	var n int64
	for _, l := range c.lines {
		n += int64(len(l))
	}
	for _, l := range c.oldLines {
		n += int64(len(l))
	}
	return n
}

func (c *TextCommand) Execute() {
	ts := c.env.document().TextSelection()
	if ts == nil {
		panic("command: no text selection")
	}
	c.oldLines = ts.Lines()
	ts.SetLines(c.lines)
}

func (c *TextCommand) Unexecute() {
	c.env.document().TextSelection().SetLines(c.oldLines)
	c.oldLines = nil
}
