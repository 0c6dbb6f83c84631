package command

import (
	"errors"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Fepozopo/tpaint/pkg/document"
	"github.com/Fepozopo/tpaint/pkg/selection"
	"github.com/Fepozopo/tpaint/pkg/stdimg"
)

var red = stdimg.RGB(255, 0, 0)

func patterned(w, h int) *stdimg.Image {
	img := stdimg.NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetPixel(x, y, stdimg.RGB(uint8(x*17), uint8(y*29), uint8(x^y)))
		}
	}
	return img
}

func newEnv(img *stdimg.Image) *Environment {
	return &Environment{Document: document.FromImage(img), Background: stdimg.White}
}

// assertImage fails unless the document image equals want.
func assertImage(t *testing.T, env *Environment, want *stdimg.Image) {
	t.Helper()
	got := env.Document.Image(false)
	if got.Size() != want.Size() {
		t.Fatalf("size = %v, want %v", got.Size(), want.Size())
	}
	if !got.Equal(want) {
		t.Fatalf("image differs from expected")
	}
}

func TestResizeShrinkRoundTrip(t *testing.T) {
	orig := patterned(100, 80)
	env := newEnv(orig.Clone())

	cmd := NewResizeScaleCommand(env, false, 60, 80, Resize)
	cmd.Execute()
	if got := env.Document.Rect(); got != image.Rect(0, 0, 60, 80) {
		t.Fatalf("rect after resize = %v", got)
	}
	if env.Document.Image(false).Pixel(59, 79) != orig.Pixel(59, 79) {
		t.Fatalf("kept area changed")
	}
	if cmd.Size() != int64(40*80*4) {
		t.Fatalf("Size = %d, want only the cut strip", cmd.Size())
	}
	cmd.Unexecute()
	assertImage(t, env, orig)
}

func TestResizeBothAxes(t *testing.T) {
	orig := patterned(10, 10)
	env := newEnv(orig.Clone())
	cmd := NewResizeScaleCommand(env, false, 6, 7, Resize)
	cmd.Execute()
	cmd.Unexecute()
	assertImage(t, env, orig)

	// redo then undo again
	cmd.Execute()
	cmd.Unexecute()
	assertImage(t, env, orig)
}

func TestResizeExtendFillsBackground(t *testing.T) {
	env := newEnv(stdimg.NewFilled(4, 4, red))
	cmd := NewResizeScaleCommand(env, false, 6, 5, Resize)
	cmd.Execute()
	img := env.Document.Image(false)
	if img.Pixel(5, 4) != stdimg.White || img.Pixel(3, 3) != red {
		t.Fatalf("extended area not background")
	}
	if cmd.Size() != 0 {
		t.Fatalf("growing should not cache anything, Size = %d", cmd.Size())
	}
	cmd.Unexecute()
	assertImage(t, env, stdimg.NewFilled(4, 4, red))
}

func TestLosslessScaleKeepsNoCopy(t *testing.T) {
	orig := patterned(50, 40)
	env := newEnv(orig.Clone())

	cmd := NewResizeScaleCommand(env, false, 100, 80, Scale)
	if !cmd.IsLosslessScale() {
		t.Fatalf("2x scale should be lossless")
	}
	cmd.Execute()
	if cmd.Size() != 0 {
		t.Fatalf("lossless scale cached %d bytes", cmd.Size())
	}
	img := env.Document.Image(false)
	for y := 0; y < 40; y++ {
		for x := 0; x < 50; x++ {
			if img.Pixel(2*x+1, 2*y+1) != orig.Pixel(x, y) {
				t.Fatalf("scaled pixel (%d,%d) wrong", x, y)
			}
		}
	}
	cmd.Unexecute()
	assertImage(t, env, orig)
}

func TestLossyScaleRestoresExactly(t *testing.T) {
	orig := patterned(100, 80)
	env := newEnv(orig.Clone())
	for _, typ := range []ResizeScaleType{Scale, SmoothScale} {
		cmd := NewResizeScaleCommand(env, false, 60, 80, typ)
		if cmd.IsLosslessScale() {
			t.Fatalf("%v to 60x80 reported lossless", typ)
		}
		cmd.Execute()
		if cmd.Size() != int64(100*80*4) {
			t.Fatalf("%v: Size = %d", typ, cmd.Size())
		}
		cmd.Unexecute()
		assertImage(t, env, orig)
	}
}

func TestResizeScaleNoOp(t *testing.T) {
	env := newEnv(patterned(8, 8))
	h := NewHistory(DefaultLimits())
	for _, typ := range []ResizeScaleType{Resize, Scale, SmoothScale} {
		h.Add(NewResizeScaleCommand(env, false, 8, 8, typ), true)
	}
	if h.CanUndo() {
		t.Fatalf("no-op commands recorded")
	}
	if env.Document.IsModified() {
		t.Fatalf("no-op modified the document")
	}
}

func TestScaleSelectionContent(t *testing.T) {
	env := newEnv(stdimg.NewFilled(10, 10, stdimg.White))
	content := patterned(2, 2)
	tr := selection.NewTransparency(stdimg.White, 0)
	env.Document.SetSelection(selection.NewElliptical(image.Rect(1, 1, 3, 3), content, tr))

	cmd := NewResizeScaleCommand(env, true, 4, 4, Scale)
	cmd.Execute()
	is := env.Document.ImageSelection()
	if is.Kind() != selection.Rectangular || is.BoundingRect() != image.Rect(1, 1, 5, 5) {
		t.Fatalf("scaled selection = %v", is)
	}
	if !is.Transparency().Equal(tr) {
		t.Fatalf("transparency lost")
	}
	if cmd.Name() != "Selection: Scale" {
		t.Fatalf("Name = %q", cmd.Name())
	}

	cmd.Unexecute()
	is = env.Document.ImageSelection()
	if is.Kind() != selection.Elliptical || is.BoundingRect() != image.Rect(1, 1, 3, 3) {
		t.Fatalf("restored selection = %v", is)
	}
	if !is.BaseImage().Equal(content) {
		t.Fatalf("restored content differs")
	}
}

func TestScaleCarriesMarkedRegion(t *testing.T) {
	env := newEnv(patterned(10, 10))
	env.Document.SetSelection(selection.NewRectangular(image.Rect(2, 2, 4, 4), nil, selection.Opaque()))

	cmd := NewResizeScaleCommand(env, false, 20, 20, Scale)
	cmd.Execute()
	sel := env.Document.Selection()
	if sel.Kind() != selection.FreeForm {
		t.Fatalf("kind = %v, want free-form", sel.Kind())
	}
	want := []image.Point{{4, 4}, {6, 4}, {6, 6}, {4, 6}}
	if diff := cmp.Diff(want, sel.Points()); diff != "" {
		t.Fatalf("points (-want +got):\n%s", diff)
	}
	if sel.BoundingRect() != image.Rect(4, 4, 7, 7) {
		t.Fatalf("bounding rect = %v", sel.BoundingRect())
	}

	cmd.Unexecute()
	sel = env.Document.Selection()
	if sel.Kind() != selection.Rectangular || sel.BoundingRect() != image.Rect(2, 2, 4, 4) {
		t.Fatalf("marked region not restored: %v", sel)
	}
}

func TestResizeTextBox(t *testing.T) {
	env := newEnv(stdimg.NewFilled(50, 50, stdimg.White))
	env.Document.SetSelection(selection.NewTextSelection(image.Rect(5, 5, 25, 15), []string{"hi"}, selection.DefaultTextStyle()))
	cmd := NewResizeScaleCommand(env, true, 30, 20, Resize)
	cmd.Execute()
	if got := env.Document.Selection().BoundingRect(); got != image.Rect(5, 5, 35, 25) {
		t.Fatalf("text box = %v", got)
	}
	cmd.Unexecute()
	if got := env.Document.Selection().BoundingRect(); got != image.Rect(5, 5, 25, 15) {
		t.Fatalf("text box after undo = %v", got)
	}
}

func TestResizeImageSelectionPanics(t *testing.T) {
	env := newEnv(stdimg.NewFilled(10, 10, stdimg.White))
	env.Document.SetSelection(selection.NewRectangular(image.Rect(0, 0, 2, 2), stdimg.NewFilled(2, 2, red), selection.Opaque()))
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	NewResizeScaleCommand(env, true, 4, 4, Resize).Execute()
}

func TestSkewDocumentRoundTrip(t *testing.T) {
	orig := patterned(20, 10)
	env := newEnv(orig.Clone())
	cmd := NewSkewCommand(env, false, 30, 0)
	cmd.Execute()
	if env.Document.Width(false) <= 20 {
		t.Fatalf("skew did not widen the image")
	}
	if cmd.Size() == 0 {
		t.Fatalf("skew must keep the old image")
	}
	cmd.Unexecute()
	assertImage(t, env, orig)
}

func TestSkewSelectionFallsBackToRectangle(t *testing.T) {
	env := newEnv(stdimg.NewFilled(40, 40, stdimg.White))
	content := stdimg.NewFilled(10, 10, red)
	env.Document.SetSelection(selection.NewRectangular(image.Rect(0, 0, 10, 10), content, selection.Opaque()))

	cmd := NewSkewCommand(env, true, 45, 0)
	cmd.Execute()
	is := env.Document.ImageSelection()
	if is.Kind() != selection.Rectangular || is.BoundingRect() != image.Rect(0, 0, 20, 10) {
		t.Fatalf("skewed selection = %v", is)
	}
	// exposed corners of a selection are transparent
	if is.BaseImage().Pixel(0, 0) != stdimg.Transparent {
		t.Fatalf("exposed area not transparent")
	}
	if is.BaseImage().Pixel(10, 0) != red {
		t.Fatalf("content missing from skewed image")
	}

	cmd.Unexecute()
	is = env.Document.ImageSelection()
	if is.BoundingRect() != image.Rect(0, 0, 10, 10) || !is.BaseImage().Equal(content) {
		t.Fatalf("selection not restored: %v", is)
	}
}

func TestSkewZeroIsNoOp(t *testing.T) {
	if !NewSkewCommand(nil, false, 0, 0.0001).IsNoOp() {
		t.Fatalf("tiny skew should be a no-op")
	}
}

func TestRotateLosslessDocument(t *testing.T) {
	orig := patterned(4, 2)
	env := newEnv(orig.Clone())
	cmd := NewRotateCommand(env, false, 90)
	cmd.Execute()
	if cmd.Size() != 0 {
		t.Fatalf("quarter turn cached %d bytes", cmd.Size())
	}
	img := env.Document.Image(false)
	if img.Size() != image.Pt(2, 4) {
		t.Fatalf("size = %v", img.Size())
	}
	// clockwise: the old bottom-left lands top-left
	if img.Pixel(0, 0) != orig.Pixel(0, 1) {
		t.Fatalf("rotation not clockwise")
	}
	cmd.Unexecute()
	assertImage(t, env, orig)
}

func TestRotateLossyDocument(t *testing.T) {
	orig := patterned(12, 7)
	env := newEnv(orig.Clone())
	cmd := NewRotateCommand(env, false, 30)
	if cmd.IsLossless() {
		t.Fatalf("30 degrees reported lossless")
	}
	cmd.Execute()
	if cmd.Size() != orig.ByteSize() {
		t.Fatalf("Size = %d, want %d", cmd.Size(), orig.ByteSize())
	}
	cmd.Unexecute()
	assertImage(t, env, orig)
}

func TestRotateSelectionStaysCentred(t *testing.T) {
	env := newEnv(stdimg.NewFilled(30, 30, stdimg.White))
	content := patterned(4, 2)
	env.Document.SetSelection(selection.NewRectangular(image.Rect(10, 10, 14, 12), content, selection.Opaque()))

	cmd := NewRotateCommand(env, true, 90)
	cmd.Execute()
	is := env.Document.ImageSelection()
	if is.BoundingRect() != image.Rect(11, 9, 13, 13) {
		t.Fatalf("rotated rect = %v", is.BoundingRect())
	}
	if is.Kind() != selection.FreeForm {
		t.Fatalf("kind = %v", is.Kind())
	}
	if !is.BaseImage().Equal(stdimg.Rotate90CW(content)) {
		t.Fatalf("content not rotated")
	}

	cmd.Unexecute()
	is = env.Document.ImageSelection()
	if is.Kind() != selection.Rectangular || is.BoundingRect() != image.Rect(10, 10, 14, 12) {
		t.Fatalf("selection not restored: %v", is)
	}
	if !is.BaseImage().Equal(content) {
		t.Fatalf("content not restored")
	}
}

func TestRotateFullTurnIsNoOp(t *testing.T) {
	for _, a := range []float64{0, 360, -720} {
		if !NewRotateCommand(nil, false, a).IsNoOp() {
			t.Fatalf("rotate %v should be a no-op", a)
		}
	}
	if NewRotateCommand(nil, false, 180).IsNoOp() {
		t.Fatalf("rotate 180 is not a no-op")
	}
}

func TestFlipIsInvolution(t *testing.T) {
	orig := patterned(5, 3)
	env := newEnv(orig.Clone())
	cmd := NewFlipCommand(env, false, true, false)
	cmd.Execute()
	if env.Document.Image(false).Pixel(0, 0) != orig.Pixel(4, 0) {
		t.Fatalf("not flipped horizontally")
	}
	cmd.Unexecute()
	assertImage(t, env, orig)

	both := NewFlipCommand(env, false, true, true)
	both.Execute()
	both.Execute()
	assertImage(t, env, orig)
	if both.Name() != "Rotate 180" {
		t.Fatalf("Name = %q", both.Name())
	}
}

func TestFlipSelection(t *testing.T) {
	env := newEnv(stdimg.NewFilled(10, 10, stdimg.White))
	content := patterned(3, 2)
	env.Document.SetSelection(selection.NewRectangular(image.Rect(1, 1, 4, 3), content, selection.Opaque()))
	cmd := NewFlipCommand(env, true, false, true)
	cmd.Execute()
	if env.Document.ImageSelection().BaseImage().Pixel(0, 0) != content.Pixel(0, 1) {
		t.Fatalf("selection not flipped vertically")
	}
	cmd.Unexecute()
	if !env.Document.ImageSelection().BaseImage().Equal(content) {
		t.Fatalf("flip not undone")
	}
}

func TestFloodFillCommand(t *testing.T) {
	img := stdimg.NewFilled(5, 5, stdimg.White)
	for y := 0; y < 5; y++ {
		img.SetPixel(2, y, stdimg.Black)
	}
	orig := img.Clone()
	env := newEnv(img)

	cmd := NewFloodFillCommand(env, 0, 0, red, 0)
	cmd.Execute()
	got := env.Document.Image(false)
	if got.Pixel(1, 4) != red || got.Pixel(2, 2) != stdimg.Black || got.Pixel(3, 0) != stdimg.White {
		t.Fatalf("fill escaped or missed")
	}
	if cmd.Size() < int64(2*5*4) {
		t.Fatalf("Size = %d too small", cmd.Size())
	}
	cmd.Unexecute()
	assertImage(t, env, orig)

	cmd.Execute()
	if env.Document.Image(false).Pixel(0, 0) != red {
		t.Fatalf("redo did not refill")
	}
}

func TestFloodFillSameColorDropped(t *testing.T) {
	env := newEnv(stdimg.NewFilled(3, 3, red))
	h := NewHistory(DefaultLimits())
	h.Add(NewFloodFillCommand(env, 1, 1, red, 0), true)
	if h.CanUndo() {
		t.Fatalf("no-op fill recorded")
	}
}

func TestEffectCommands(t *testing.T) {
	orig := patterned(6, 4)
	env := newEnv(orig.Clone())

	inv := NewEffectCommand(env, "Invert", false, func(img *stdimg.Image) *stdimg.Image {
		return stdimg.Invert(img, stdimg.ChannelsAll)
	}, true)
	inv.Execute()
	r, _, _ := env.Document.Image(false).Pixel(1, 0).Components()
	if r != 255-17 {
		t.Fatalf("red after invert = %d", r)
	}
	if inv.Size() != 0 {
		t.Fatalf("invertible effect cached data")
	}
	inv.Unexecute()
	assertImage(t, env, orig)

	gray := NewEffectCommand(env, "Grayscale", false, stdimg.Grayscale, false)
	gray.Execute()
	if gray.Size() != orig.ByteSize() {
		t.Fatalf("Size = %d", gray.Size())
	}
	gray.Unexecute()
	assertImage(t, env, orig)
}

func TestClearCommand(t *testing.T) {
	orig := patterned(4, 4)
	env := newEnv(orig.Clone())
	cmd := NewClearCommand(env, false)
	cmd.Execute()
	assertImage(t, env, stdimg.NewFilled(4, 4, stdimg.White))
	cmd.Unexecute()
	assertImage(t, env, orig)

	content := stdimg.NewFilled(2, 2, red)
	env.Document.SetSelection(selection.NewRectangular(image.Rect(0, 0, 2, 2), content, selection.Opaque()))
	sc := NewClearCommand(env, true)
	sc.Execute()
	if env.Document.ImageSelection().BaseImage().Pixel(1, 1) != stdimg.Transparent {
		t.Fatalf("selection clear should be transparent")
	}
	sc.Unexecute()
	if !env.Document.ImageSelection().BaseImage().Equal(content) {
		t.Fatalf("selection clear not undone")
	}
}

func TestAutoCropCommand(t *testing.T) {
	img := stdimg.NewFilled(6, 6, stdimg.White)
	img.FillRect(image.Rect(2, 3, 4, 5), red)
	orig := img.Clone()
	env := newEnv(img)

	cmd := NewAutoCropCommand(env, false, 0)
	cmd.Execute()
	if cmd.Rect() != image.Rect(2, 3, 4, 5) {
		t.Fatalf("crop rect = %v", cmd.Rect())
	}
	assertImage(t, env, stdimg.NewFilled(2, 2, red))
	cmd.Unexecute()
	assertImage(t, env, orig)

	h := NewHistory(DefaultLimits())
	h.Add(NewAutoCropCommand(newEnv(stdimg.NewFilled(3, 3, red)), false, 0), true)
	if h.CanUndo() {
		t.Fatalf("uniform image autocrop recorded")
	}
}

func TestSelectionWorkflowUndo(t *testing.T) {
	orig := patterned(8, 8)
	env := newEnv(orig.Clone())
	h := NewHistory(DefaultLimits())

	h.Add(NewCreateSelectionCommand(env, "Selection: Create", selection.NewRectangular(image.Rect(1, 1, 3, 3), nil, selection.Opaque())), true)
	h.Add(NewPullSelectionCommand(env), true)
	h.Add(NewMoveSelectionCommand(env, 4, 4), true)
	h.Add(NewDeselectCommand(env), true)

	img := env.Document.Image(false)
	if img.Pixel(5, 5) != orig.Pixel(1, 1) || img.Pixel(1, 1) != stdimg.White {
		t.Fatalf("content not moved")
	}
	if env.Document.Selection() != nil {
		t.Fatalf("selection survived deselect")
	}

	for h.CanUndo() {
		h.Undo()
	}
	assertImage(t, env, orig)
	if env.Document.Selection() != nil {
		t.Fatalf("selection not removed by undo")
	}

	for h.CanRedo() {
		h.Redo()
	}
	if env.Document.Image(false).Pixel(5, 5) != orig.Pixel(1, 1) {
		t.Fatalf("redo did not replay the workflow")
	}
}

func TestDeleteSelectionUndo(t *testing.T) {
	env := newEnv(stdimg.NewFilled(5, 5, stdimg.White))
	content := stdimg.NewFilled(2, 2, red)
	env.Document.SetSelection(selection.NewRectangular(image.Rect(1, 1, 3, 3), content, selection.Opaque()))
	cmd := NewDeleteSelectionCommand(env)
	cmd.Execute()
	if env.Document.Selection() != nil || env.Document.Image(false).Pixel(1, 1) != stdimg.White {
		t.Fatalf("delete pushed content or kept the selection")
	}
	cmd.Unexecute()
	if !env.Document.ImageSelection().BaseImage().Equal(content) {
		t.Fatalf("deleted selection not restored")
	}
}

func TestSelectionTransparencyCommand(t *testing.T) {
	env := newEnv(stdimg.NewFilled(5, 5, stdimg.White))
	env.Document.SetSelection(selection.NewRectangular(image.Rect(0, 0, 2, 1), stdimg.NewFilled(2, 1, stdimg.White), selection.Opaque()))
	is := env.Document.ImageSelection()
	newTr := selection.NewTransparency(stdimg.White, 0)
	if !is.SetTransparency(newTr, true) {
		t.Fatalf("transparency change not detected")
	}
	cmd := NewSelectionTransparencyCommand(env, newTr, selection.Opaque())
	h := NewHistory(DefaultLimits())
	h.Add(cmd, false)
	h.Undo()
	if !env.Document.ImageSelection().Transparency().IsOpaque() {
		t.Fatalf("undo did not restore opaque")
	}
	h.Redo()
	if env.Document.ImageSelection().TransparencyMask() == nil {
		t.Fatalf("redo did not recompute the mask")
	}
}

func TestTextCommand(t *testing.T) {
	env := newEnv(stdimg.NewFilled(40, 20, stdimg.White))
	env.Document.SetSelection(selection.NewTextSelection(image.Rect(0, 0, 40, 20), []string{"a"}, selection.DefaultTextStyle()))
	cmd := NewTextCommand(env, []string{"b", "c"})
	cmd.Execute()
	if diff := cmp.Diff([]string{"b", "c"}, env.Document.TextSelection().Lines()); diff != "" {
		t.Fatalf("lines (-want +got):\n%s", diff)
	}
	cmd.Unexecute()
	if diff := cmp.Diff([]string{"a"}, env.Document.TextSelection().Lines()); diff != "" {
		t.Fatalf("lines after undo (-want +got):\n%s", diff)
	}
}

func TestMacroPullAndRotate(t *testing.T) {
	orig := patterned(10, 10)
	env := newEnv(orig.Clone())
	env.Document.SetSelection(selection.NewRectangular(image.Rect(2, 2, 6, 4), nil, selection.Opaque()))

	m := NewMacroCommand("Selection: Rotate", NewPullSelectionCommand(env))
	m.Add(NewRotateCommand(env, true, 180))
	m.Execute()
	if !env.Document.Selection().HasContent() {
		t.Fatalf("macro did not pull")
	}
	m.Unexecute()
	assertImage(t, env, orig)
	if sel := env.Document.Selection(); sel == nil || sel.HasContent() {
		t.Fatalf("marked region not restored")
	}
	if m.IsNoOp() {
		t.Fatalf("macro with real commands reported no-op")
	}
}

func TestValidation(t *testing.T) {
	if err := ValidateDimensions(0, 5); !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("ValidateDimensions(0,5) = %v", err)
	}
	if err := ValidateDimensions(10, 10); err != nil {
		t.Fatalf("ValidateDimensions(10,10) = %v", err)
	}
	for _, a := range []float64{-90, 90, 120} {
		if err := ValidateSkewAngle(a); !errors.Is(err, ErrInvalidAngle) {
			t.Fatalf("ValidateSkewAngle(%v) = %v", a, err)
		}
	}
	if err := ValidateSkewAngle(89.9); err != nil {
		t.Fatalf("ValidateSkewAngle(89.9) = %v", err)
	}
}
