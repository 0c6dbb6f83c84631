package command

import "github.com/Fepozopo/tpaint/pkg/stdimg"

const (
	DefaultMinCommands = 10
	DefaultMaxCommands = 500
	DefaultMaxSize     = 16 << 20
)

// Limits bound the undo and redo stacks. The newest MinCommands entries are
// always kept; beyond that, entries are dropped once MaxCommands is reached
// or the accumulated Size exceeds MaxSize.
type Limits struct {
	MinCommands int
	MaxCommands int
	MaxSize     int64
}

func DefaultLimits() Limits {
	return Limits{MinCommands: DefaultMinCommands, MaxCommands: DefaultMaxCommands, MaxSize: DefaultMaxSize}
}

// History is an undo/redo stack of commands. The last element of each slice
// is the next to undo or redo.
type History struct {
	limits Limits
	undo   []Command
	redo   []Command
}

func NewHistory(l Limits) *History {
	return &History{limits: l}
}

func (h *History) Limits() Limits { return h.limits }

// SetLimits changes the limits and trims both stacks to them.
func (h *History) SetLimits(l Limits) {
	h.limits = l
	h.undo = h.trim(h.undo)
	h.redo = h.trim(h.redo)
}

// Add records cmd, executing it first if execute is set. Commands that
// report themselves as no-ops after that are discarded. Adding clears the
// redo stack.
func (h *History) Add(cmd Command, execute bool) {
	if execute {
		cmd.Execute()
	}
	if n, ok := cmd.(NoOpper); ok && n.IsNoOp() {
		stdimg.Logger().Debug("dropping no-op command", "name", cmd.Name())
		return
	}
	h.redo = nil
	h.undo = h.trim(append(h.undo, cmd))
}

// Undo reverts the newest command. It reports false if there is none.
func (h *History) Undo() bool {
	if len(h.undo) == 0 {
		return false
	}
	cmd := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	cmd.Unexecute()
	h.redo = h.trim(append(h.redo, cmd))
	stdimg.Logger().Debug("undo", "name", cmd.Name())
	return true
}

// Redo re-applies the most recently undone command.
func (h *History) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	cmd := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	cmd.Execute()
	h.undo = h.trim(append(h.undo, cmd))
	stdimg.Logger().Debug("redo", "name", cmd.Name())
	return true
}

func (h *History) CanUndo() bool  { return len(h.undo) > 0 }
func (h *History) CanRedo() bool  { return len(h.redo) > 0 }
func (h *History) UndoCount() int { return len(h.undo) }
func (h *History) RedoCount() int { return len(h.redo) }

// UndoName is the name of the command Undo would revert, or "".
func (h *History) UndoName() string {
	if len(h.undo) == 0 {
		return ""
	}
	return h.undo[len(h.undo)-1].Name()
}

func (h *History) RedoName() string {
	if len(h.redo) == 0 {
		return ""
	}
	return h.redo[len(h.redo)-1].Name()
}

// Clear forgets every command.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

// trim walks the stack from newest to oldest and drops entries past the
// limits. The size total stops growing once it passes MaxSize, so every
// later entry beyond MinCommands is dropped.
func (h *History) trim(stack []Command) []Command {
	var (
		kept      []Command
		sizeSoFar int64
	)
	for upto, i := 0, len(stack)-1; i >= 0; upto, i = upto+1, i-1 {
		cmd := stack[i]
		if sizeSoFar <= h.limits.MaxSize {
			sizeSoFar += cmd.Size()
		}
		if upto >= h.limits.MinCommands && (upto >= h.limits.MaxCommands || sizeSoFar > h.limits.MaxSize) {
			stdimg.Logger().Debug("trimming command from history", "name", cmd.Name(), "size", cmd.Size())
			continue
		}
		kept = append(kept, cmd)
	}
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return kept
}
