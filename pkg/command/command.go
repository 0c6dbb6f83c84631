// Package command implements undoable edits on a document. Each command
// captures what it needs on Execute so that Unexecute restores the document
// and its selection exactly.
package command

import (
	"errors"
	"fmt"
	"math"

	"github.com/Fepozopo/tpaint/pkg/document"
	"github.com/Fepozopo/tpaint/pkg/selection"
	"github.com/Fepozopo/tpaint/pkg/stdimg"
)

// Command is one undoable step. Execute and Unexecute alternate, starting
// with Execute.
type Command interface {
	Name() string
	Execute()
	Unexecute()
	// Size approximates the memory the command holds, for history limits.
	Size() int64
}

// NoOpper is implemented by commands that can tell they would not change
// anything. History drops them.
type NoOpper interface {
	IsNoOp() bool
}

// Environment is what commands act on.
type Environment struct {
	Document   *document.Document
	Background stdimg.Color
}

// BackgroundColor is the color exposed areas are filled with: the
// configured background for the document, transparent inside a selection.
func (e *Environment) BackgroundColor(ofSelection bool) stdimg.Color {
	if ofSelection {
		return stdimg.Transparent
	}
	return e.Background
}

func (e *Environment) document() *document.Document {
	if e == nil || e.Document == nil {
		panic("command: no document")
	}
	return e.Document
}

// imageSelectionWithContent returns the document's image selection and
// panics unless it carries content.
func (e *Environment) imageSelectionWithContent() *selection.ImageSelection {
	is := e.document().ImageSelection()
	if is == nil {
		panic("command: no image selection")
	}
	if !is.HasContent() {
		panic("command: image selection has no content")
	}
	return is
}

func selectionPrefix(actOnSelection bool, name string) string {
	if actOnSelection {
		return "Selection: " + name
	}
	return name
}

var (
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrInvalidAngle      = errors.New("invalid angle")
)

// MaxDimension bounds new image sizes.
const MaxDimension = 1 << 15

// ValidateDimensions rejects sizes that cannot be allocated.
func ValidateDimensions(w, h int) error {
	if w <= 0 || h <= 0 || w > MaxDimension || h > MaxDimension {
		return fmt.Errorf("%w: %dx%d (each side must be 1..%d)", ErrInvalidDimensions, w, h, MaxDimension)
	}
	return nil
}

// ValidateSkewAngle accepts angles strictly between -90 and 90 degrees.
func ValidateSkewAngle(deg float64) error {
	if math.IsNaN(deg) || deg <= -90 || deg >= 90 {
		return fmt.Errorf("%w: skew %v must be between -90 and 90 degrees", ErrInvalidAngle, deg)
	}
	return nil
}

// ValidateRotateAngle accepts any finite angle.
func ValidateRotateAngle(deg float64) error {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return fmt.Errorf("%w: rotate %v", ErrInvalidAngle, deg)
	}
	return nil
}

// MacroCommand runs several commands as one history step.
type MacroCommand struct {
	name string
	cmds []Command
}

func NewMacroCommand(name string, cmds ...Command) *MacroCommand {
	return &MacroCommand{name: name, cmds: cmds}
}

func (m *MacroCommand) Add(cmd Command) { m.cmds = append(m.cmds, cmd) }

func (m *MacroCommand) Name() string { return m.name }

func (m *MacroCommand) Execute() {
	for _, c := range m.cmds {
		c.Execute()
	}
}

func (m *MacroCommand) Unexecute() {
	for i := len(m.cmds) - 1; i >= 0; i-- {
		m.cmds[i].Unexecute()
	}
}

func (m *MacroCommand) Size() int64 {
	var n int64
	for _, c := range m.cmds {
		n += c.Size()
	}
	return n
}

// IsNoOp reports whether every child is a no-op.
func (m *MacroCommand) IsNoOp() bool {
	for _, c := range m.cmds {
		if n, ok := c.(NoOpper); !ok || !n.IsNoOp() {
			return false
		}
	}
	return true
}
