package command

import (
	"fmt"
	"image"

	"github.com/Fepozopo/tpaint/pkg/stdimg"
)

// FloodFillCommand fills the region connected to a seed pixel. The fill is
// computed once, on the first Execute, and only the touched rectangle is
// saved for undo.
type FloodFillCommand struct {
	env                 *Environment
	x, y                int
	color               stdimg.Color
	processedSimilarity int

	ff       *stdimg.FloodFill
	rect     image.Rectangle
	oldImage *stdimg.Image
}

func NewFloodFillCommand(env *Environment, x, y int, c stdimg.Color, processedSimilarity int) *FloodFillCommand {
	return &FloodFillCommand{env: env, x: x, y: y, color: c, processedSimilarity: processedSimilarity}
}

func (c *FloodFillCommand) Name() string { return fmt.Sprintf("Flood Fill (%d,%d)", c.x, c.y) }

// IsNoOp is only meaningful after Execute.
func (c *FloodFillCommand) IsNoOp() bool { return c.ff != nil && c.rect.Empty() }

func (c *FloodFillCommand) Size() int64 {
	var n int64
	if c.ff != nil {
		n += c.ff.Size()
	}
	return n + c.oldImage.ByteSize()
}

func (c *FloodFillCommand) Execute() {
	doc := c.env.document()
	if c.ff == nil {
		c.ff = stdimg.NewFloodFill(doc.Image(false), c.x, c.y, c.color, c.processedSimilarity)
		c.rect = c.ff.BoundingRect()
	}
	if c.rect.Empty() {
		return
	}
	c.oldImage = doc.GetImageAt(c.rect)
	patch := c.oldImage.Clone()
	c.ff.PaintLines(patch, c.rect.Min)
	doc.SetImageAt(patch, c.rect.Min)
}

func (c *FloodFillCommand) Unexecute() {
	if c.oldImage == nil {
		return
	}
	c.env.document().SetImageAt(c.oldImage, c.rect.Min)
	c.oldImage = nil
}
