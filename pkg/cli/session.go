package cli

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/Fepozopo/tpaint/pkg/command"
	"github.com/Fepozopo/tpaint/pkg/document"
	"github.com/Fepozopo/tpaint/pkg/selection"
	"github.com/Fepozopo/tpaint/pkg/stdimg"
)

var (
	ErrNoDocument    = errors.New("no image loaded")
	ErrNoSelection   = errors.New("no selection")
	ErrTextSelection = errors.New("not available on a text box")
)

// Session is one open document with its undo history.
type Session struct {
	Config  Config
	Doc     *document.Document
	History *command.History
	Env     *command.Environment
	Path    string // file the document was opened from or last saved to
	Format  string

	store *StdMetaStore
}

func NewSession(cfg Config) *Session {
	return &Session{
		Config:  cfg,
		History: command.NewHistory(cfg.Undo),
		Env:     &command.Environment{Background: cfg.Background},
		store:   NewMetaStore(Commands),
	}
}

func (s *Session) setDocument(doc *document.Document, path, format string) {
	s.Doc = doc
	s.Env.Document = doc
	s.History.Clear()
	s.Path = path
	s.Format = format
}

// Open replaces the session document with the image at path.
func (s *Session) Open(path string) error {
	img, format, err := LoadImage(path)
	if err != nil {
		return err
	}
	s.setDocument(document.FromImage(img), path, format)
	return nil
}

// Save writes what the user sees, selection included, to path, or to the
// current path when path is empty.
func (s *Session) Save(path string) error {
	if s.Doc == nil {
		return ErrNoDocument
	}
	if path == "" {
		path = s.Path
	}
	if path == "" {
		return errors.New("no filename")
	}
	if err := SaveImage(path, s.Doc.ImageWithSelection()); err != nil {
		return err
	}
	s.Doc.SetModified(false)
	s.Path = path
	s.Format = formatFromPath(path)
	return nil
}

// Undo reverts the last command and returns its name.
func (s *Session) Undo() (string, bool) {
	name := s.History.UndoName()
	return name, s.History.Undo()
}

// Redo re-applies the last undone command and returns its name.
func (s *Session) Redo() (string, bool) {
	name := s.History.RedoName()
	return name, s.History.Redo()
}

// Info describes the document.
func (s *Session) Info() string {
	if s.Doc == nil {
		return "no image"
	}
	info := GetImageInfo(s.Doc, s.Format)
	if s.History.CanUndo() {
		info += fmt.Sprintf(", Undo: %s", s.History.UndoName())
	}
	return info
}

// args gives typed access to normalized arguments.
type args []string

func (a args) strAt(i int) string { return a[i] }

func (a args) intAt(i int) int {
	n, _ := strconv.Atoi(a[i])
	return n
}

func (a args) floatAt(i int) float64 {
	f, _ := strconv.ParseFloat(a[i], 64)
	return f
}

func (a args) boolAt(i int) bool { return a[i] == "true" }

// color returns def when the argument was left empty.
func (a args) color(i int, def stdimg.Color) stdimg.Color {
	if a[i] == "" {
		return def
	}
	c, err := stdimg.ParseColor(a[i])
	if err != nil {
		return def
	}
	return c
}

// similarity converts a percent argument, returning def when empty.
func (a args) similarity(i int, def float64) float64 {
	if a[i] == "" {
		return def
	}
	return a.floatAt(i) / 100
}

// Apply validates and runs the named command from Commands, recording it in
// the history.
func (s *Session) Apply(name string, raw []string) error {
	norm, err := NormalizeArgs(s.store, name, raw)
	if err != nil {
		return err
	}
	a := args(norm)
	if name == "new" {
		w, h := a.intAt(0), a.intAt(1)
		if err := command.ValidateDimensions(w, h); err != nil {
			return err
		}
		s.setDocument(document.New(w, h, a.color(2, s.Config.Background)), "", "")
		return nil
	}
	if s.Doc == nil {
		return ErrNoDocument
	}
	if name == "transparency" {
		return s.applyTransparency(a)
	}
	cmd, err := s.build(name, a)
	if err != nil {
		return err
	}
	s.History.Add(cmd, true)
	stdimg.Logger().Info("applied command", "command", cmd.Name())
	return nil
}

// selectionTarget decides whether an operation acts on the selection. It
// also returns the commands that must run first: a marked region is pulled
// so there is content to act on, and floating content is deselected when
// the image is targeted.
func (s *Session) selectionTarget(target string) (bool, []command.Command, error) {
	sel := s.Doc.Selection()
	if sel == nil {
		if target == "selection" {
			return false, nil, ErrNoSelection
		}
		return false, nil, nil
	}
	if target == "image" {
		return false, s.pushFloating(), nil
	}
	if sel.Kind() == selection.Text {
		return false, nil, ErrTextSelection
	}
	if !sel.HasContent() {
		return true, []command.Command{command.NewPullSelectionCommand(s.Env)}, nil
	}
	return true, nil, nil
}

// pushFloating returns a deselect command when the selection holds content.
func (s *Session) pushFloating() []command.Command {
	if sel := s.Doc.Selection(); sel != nil && sel.HasContent() {
		return []command.Command{command.NewDeselectCommand(s.Env)}
	}
	return nil
}

func macro(pre []command.Command, cmd command.Command) command.Command {
	if len(pre) == 0 {
		return cmd
	}
	return command.NewMacroCommand(cmd.Name(), append(pre, cmd)...)
}

func (s *Session) build(name string, a args) (command.Command, error) {
	env := s.Env
	switch name {
	case "resize":
		w, h := a.intAt(0), a.intAt(1)
		if err := command.ValidateDimensions(w, h); err != nil {
			return nil, err
		}
		if s.Doc.TextSelection() != nil {
			return command.NewResizeScaleCommand(env, true, w, h, command.Resize), nil
		}
		pre := s.pushFloating()
		return macro(pre, command.NewResizeScaleCommand(env, false, w, h, command.Resize)), nil

	case "scale":
		w, h := a.intAt(0), a.intAt(1)
		if err := command.ValidateDimensions(w, h); err != nil {
			return nil, err
		}
		act, pre, err := s.selectionTarget(a.strAt(3))
		if err != nil {
			return nil, err
		}
		typ := command.Scale
		if a.boolAt(2) {
			typ = command.SmoothScale
		}
		return macro(pre, command.NewResizeScaleCommand(env, act, w, h, typ)), nil

	case "skew":
		hAngle, vAngle := a.floatAt(0), a.floatAt(1)
		if err := command.ValidateSkewAngle(hAngle); err != nil {
			return nil, err
		}
		if err := command.ValidateSkewAngle(vAngle); err != nil {
			return nil, err
		}
		act, pre, err := s.selectionTarget(a.strAt(2))
		if err != nil {
			return nil, err
		}
		return macro(pre, command.NewSkewCommand(env, act, hAngle, vAngle)), nil

	case "rotate":
		angle := a.floatAt(0)
		if err := command.ValidateRotateAngle(angle); err != nil {
			return nil, err
		}
		act, pre, err := s.selectionTarget(a.strAt(1))
		if err != nil {
			return nil, err
		}
		return macro(pre, command.NewRotateCommand(env, act, angle)), nil

	case "flip":
		dir := a.strAt(0)
		act, pre, err := s.selectionTarget(a.strAt(1))
		if err != nil {
			return nil, err
		}
		horiz := dir == "horizontal" || dir == "both"
		vert := dir == "vertical" || dir == "both"
		return macro(pre, command.NewFlipCommand(env, act, horiz, vert)), nil

	case "fill":
		x, y := a.intAt(0), a.intAt(1)
		if !image.Pt(x, y).In(s.Doc.Rect()) {
			return nil, fmt.Errorf("fill: (%d,%d) is outside the %dx%d image", x, y, s.Doc.Width(false), s.Doc.Height(false))
		}
		c := a.color(2, s.Config.Foreground)
		sim := stdimg.ProcessSimilarity(a.similarity(3, s.Config.Similarity))
		return macro(s.pushFloating(), command.NewFloodFillCommand(env, x, y, c, sim)), nil

	case "clear":
		act, pre, err := s.selectionTarget(a.strAt(0))
		if err != nil {
			return nil, err
		}
		return macro(pre, command.NewClearCommand(env, act)), nil

	case "autocrop":
		act, pre, err := s.selectionTarget(a.strAt(1))
		if err != nil {
			return nil, err
		}
		sim := stdimg.ProcessSimilarity(a.similarity(0, s.Config.Similarity))
		return macro(pre, command.NewAutoCropCommand(env, act, sim)), nil

	case "invert", "grayscale", "blur", "sharpen", "balance", "hsv", "emboss", "reduceColors", "flatten":
		fn, label, invertible := effectFor(name, a)
		act, pre, err := s.selectionTarget(a[len(a)-1])
		if err != nil {
			return nil, err
		}
		return macro(pre, command.NewEffectCommand(env, label, act, fn, invertible)), nil

	case "select":
		w, h := a.intAt(3), a.intAt(4)
		if err := command.ValidateDimensions(w, h); err != nil {
			return nil, err
		}
		r := image.Rect(a.intAt(1), a.intAt(2), a.intAt(1)+w, a.intAt(2)+h)
		var sel selection.Selection
		label := "Selection: Create Rectangle"
		if a.strAt(0) == "ellipse" {
			sel = selection.NewElliptical(r, nil, selection.Opaque())
			label = "Selection: Create Ellipse"
		} else {
			sel = selection.NewRectangular(r, nil, selection.Opaque())
		}
		return macro(s.pushFloating(), command.NewCreateSelectionCommand(env, label, sel)), nil

	case "selectPolygon":
		pts, err := parsePoints(a.strAt(0))
		if err != nil {
			return nil, err
		}
		sel := selection.NewFreeForm(pts, nil, selection.Opaque())
		return macro(s.pushFloating(), command.NewCreateSelectionCommand(env, "Selection: Create Free-Form", sel)), nil

	case "selectAll":
		sel := selection.NewRectangular(s.Doc.Rect(), nil, selection.Opaque())
		return macro(s.pushFloating(), command.NewCreateSelectionCommand(env, "Select All", sel)), nil

	case "text":
		w, h := a.intAt(2), a.intAt(3)
		if err := command.ValidateDimensions(w, h); err != nil {
			return nil, err
		}
		r := image.Rect(a.intAt(0), a.intAt(1), a.intAt(0)+w, a.intAt(1)+h)
		style := selection.DefaultTextStyle()
		style.FontPath = s.Config.FontPath
		style.Size = s.Config.FontSize
		style.Foreground = s.Config.Foreground
		sel := selection.NewTextSelection(r, splitLines(a.strAt(4)), style)
		return macro(s.pushFloating(), command.NewCreateSelectionCommand(env, "Text: Create Box", sel)), nil

	case "write":
		if s.Doc.TextSelection() == nil {
			return nil, fmt.Errorf("write: %w", ErrNoSelection)
		}
		return command.NewTextCommand(env, splitLines(a.strAt(0))), nil

	case "moveSelection":
		if s.Doc.Selection() == nil {
			return nil, ErrNoSelection
		}
		return command.NewMoveSelectionCommand(env, a.intAt(0), a.intAt(1)), nil

	case "deselect":
		if s.Doc.Selection() == nil {
			return nil, ErrNoSelection
		}
		return command.NewDeselectCommand(env), nil

	case "deleteSelection":
		if s.Doc.Selection() == nil {
			return nil, ErrNoSelection
		}
		return command.NewDeleteSelectionCommand(env), nil
	}
	return nil, fmt.Errorf("unknown command: %s", name)
}

// applyTransparency changes the image selection's transparency directly and
// records the change without executing it again.
func (s *Session) applyTransparency(a args) error {
	is := s.Doc.ImageSelection()
	if is == nil {
		return fmt.Errorf("transparency: %w", ErrNoSelection)
	}
	tr := selection.Opaque()
	if a.strAt(0) != "opaque" {
		c := a.color(0, stdimg.Invalid)
		if !c.IsOpaque() {
			return fmt.Errorf("transparency: key color must be opaque, got %v", c)
		}
		tr = selection.NewTransparency(c, a.similarity(1, s.Config.Similarity))
	}
	old := is.Transparency()
	if old.Equal(tr) {
		return nil
	}
	changed := is.SetTransparency(tr, true)
	s.History.Add(command.NewSelectionTransparencyCommand(s.Env, tr, old), false)
	stdimg.Logger().Info("selection transparency", "transparency", tr, "visible_change", changed)
	return nil
}

// effectFor maps an effect command to its image function. The target
// argument is always last and is ignored here.
func effectFor(name string, a args) (command.Effect, string, bool) {
	switch name {
	case "invert":
		ch := parseChannels(a.strAt(0))
		return func(im *stdimg.Image) *stdimg.Image { return stdimg.Invert(im, ch) }, "Invert", true
	case "grayscale":
		return stdimg.Grayscale, "Grayscale", false
	case "blur":
		sigma := a.floatAt(0)
		return func(im *stdimg.Image) *stdimg.Image { return stdimg.Blur(im, sigma) }, "Blur", false
	case "sharpen":
		sigma, amount := a.floatAt(0), a.floatAt(1)
		return func(im *stdimg.Image) *stdimg.Image { return stdimg.Sharpen(im, sigma, amount) }, "Sharpen", false
	case "balance":
		b, c, g := a.intAt(0), a.intAt(1), a.intAt(2)
		return func(im *stdimg.Image) *stdimg.Image { return stdimg.Balance(im, b, c, g) }, "Balance", false
	case "hsv":
		h, sat, v := a.floatAt(0), a.floatAt(1), a.floatAt(2)
		return func(im *stdimg.Image) *stdimg.Image { return stdimg.HSV(im, h, sat, v) }, "Hue/Saturation/Value", false
	case "emboss":
		strength := a.floatAt(0)
		return func(im *stdimg.Image) *stdimg.Image { return stdimg.Emboss(im, strength) }, "Emboss", false
	case "reduceColors":
		levels := a.intAt(0)
		label := "Reduce Colors"
		if levels == 2 {
			label = "Reduce to Monochrome"
		}
		return func(im *stdimg.Image) *stdimg.Image { return stdimg.ReduceColors(im, levels) }, label, false
	default: // flatten
		c1, c2 := a.color(0, stdimg.Black), a.color(1, stdimg.White)
		return func(im *stdimg.Image) *stdimg.Image { return stdimg.Flatten(im, c1, c2) }, "Flatten", false
	}
}

func parseChannels(s string) stdimg.Channels {
	var ch stdimg.Channels
	for _, r := range s {
		switch r {
		case 'r':
			ch |= stdimg.ChannelRed
		case 'g':
			ch |= stdimg.ChannelGreen
		case 'b':
			ch |= stdimg.ChannelBlue
		}
	}
	if ch == 0 {
		return stdimg.ChannelsAll
	}
	return ch
}

// parsePoints reads "x,y x,y ..." into at least three points.
func parsePoints(s string) ([]image.Point, error) {
	fields := strings.Fields(s)
	if len(fields) < 3 {
		return nil, fmt.Errorf("points: need at least 3, got %d", len(fields))
	}
	pts := make([]image.Point, 0, len(fields))
	for _, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return nil, fmt.Errorf("points: %q is not x,y", f)
		}
		x, err := strconv.Atoi(xs)
		if err != nil {
			return nil, fmt.Errorf("points: %q: %w", f, err)
		}
		y, err := strconv.Atoi(ys)
		if err != nil {
			return nil, fmt.Errorf("points: %q: %w", f, err)
		}
		pts = append(pts, image.Pt(x, y))
	}
	return pts, nil
}

// splitLines turns the escaped "\n" used on the prompt into lines.
func splitLines(s string) []string {
	return strings.Split(s, `\n`)
}

// Frame is the image shown to the user: the document with the selection
// content composited and the selection border drawn as a dashed line.
func (s *Session) Frame() *stdimg.Image {
	out := s.Doc.ImageWithSelection()
	sel := s.Doc.Selection()
	if sel == nil {
		return out
	}
	r := sel.BoundingRect()
	var shape *stdimg.Mask
	if is, ok := sel.(*selection.ImageSelection); ok {
		shape = is.ShapeMask(false)
	}
	inside := func(x, y int) bool {
		if x < 0 || y < 0 || x >= r.Dx() || y >= r.Dy() {
			return false
		}
		return shape == nil || shape.At(x, y)
	}
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			if !inside(x, y) {
				continue
			}
			if inside(x-1, y) && inside(x+1, y) && inside(x, y-1) && inside(x, y+1) {
				continue
			}
			p := image.Pt(r.Min.X+x, r.Min.Y+y)
			if !p.In(out.Bounds()) {
				continue
			}
			c := stdimg.Black
			if (p.X+p.Y)/4%2 == 1 {
				c = stdimg.White
			}
			out.SetPixel(p.X, p.Y, c)
		}
	}
	return out
}
