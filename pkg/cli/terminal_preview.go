package cli

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"os/exec"
	"strings"
)

// Terminal preview of the document.
//
// Backends are tried in order: the iTerm2 inline-image OSC 1337 sequence
// (iTerm2, WezTerm, Warp, VSCode and others), the kitty graphics protocol,
// an external sixel renderer, and finally chafa block graphics.
// PREVIEW_BACKEND names a backend to try before the detected ones.

// previewDebug enables debugf output; RunCLI sets it from the config.
var previewDebug bool

func debugf(format string, args ...any) {
	if previewDebug {
		fmt.Fprintf(os.Stderr, "tpaint-preview: "+format+"\n", args...)
	}
}

func isKitty() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	// ghostty implements the kitty protocol
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "kitty") || strings.Contains(term, "ghost") {
		return true
	}
	return os.Getenv("KONSOLE_VERSION") != ""
}

func isInlineImageCapable() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "VSCode", "Tabby", "Bobcat":
		return true
	}
	if os.Getenv("ITERM_SESSION_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	for _, t := range []string{"wez", "warp", "tabby", "vscode"} {
		if strings.Contains(term, t) {
			return true
		}
	}
	return false
}

// isSixelCapable is a heuristic; SIXEL_PREVIEW=1 forces it.
func isSixelCapable() bool {
	if os.Getenv("SIXEL_PREVIEW") == "1" || os.Getenv("WT_SESSION") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "foot") || strings.Contains(term, "st") || strings.Contains(term, "linux")
}

func hasChafa() bool {
	if os.Getenv("NO_CHAFA") == "1" {
		return false
	}
	_, err := exec.LookPath("chafa")
	return err == nil
}

// postImageNewlines is how many lines to print after an image so the prompt
// lands below it.
func postImageNewlines(rows int) int {
	switch {
	case rows <= 0:
		return 1
	case rows <= 2:
		return 1
	case rows <= 6:
		return 2
	case rows <= 20:
		return 3
	default:
		return 4
	}
}

type previewBackend struct {
	name   string
	detect func() bool
	send   func(w io.Writer, data []byte, format string, size PreviewSize) error
}

var previewBackends = []previewBackend{
	{"inline", isInlineImageCapable, sendInlineImage},
	{"kitty", isKitty, sendKittyImage},
	{"sixel", isSixelCapable, sendSixelImage},
	{"chafa", hasChafa, sendChafaImage},
}

// PreviewSupported reports whether any backend is detected.
func PreviewSupported() bool {
	for _, b := range previewBackends {
		if b.detect() {
			return true
		}
	}
	return false
}

// PreviewImage encodes img as PNG, or JPEG when format says so, and shows it
// on stdout. Kitty always gets PNG.
func PreviewImage(img image.Image, format string) error {
	return previewTo(os.Stdout, img, format)
}

func previewTo(w io.Writer, img image.Image, format string) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	backend := strings.ToLower(os.Getenv("PREVIEW_BACKEND"))
	f := strings.ToLower(format)
	if backend == "kitty" || (backend == "" && isKitty() && !isInlineImageCapable()) {
		f = "png"
	}
	var buf bytes.Buffer
	if f == "jpeg" || f == "jpg" {
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 92}); err != nil {
			return fmt.Errorf("jpeg encode failed: %w", err)
		}
	} else {
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("png encode failed: %w", err)
		}
		f = "png"
	}
	return previewBytes(w, buf.Bytes(), f, computePreviewSize(img))
}

// PreviewSize is the terminal area an image is placed into.
type PreviewSize struct {
	Cols        int // terminal character columns
	Rows        int // terminal character rows
	PixelWidth  int // Cols * cell width
	PixelHeight int // Rows * cell height
}

// computePreviewSize fits the image into at most 80x40 cells of 8x16 pixels,
// keeping the aspect ratio and never scaling up.
func computePreviewSize(img image.Image) PreviewSize {
	const (
		charW, charH     = 8, 16
		minCols, minRows = 6, 3
		maxCols, maxRows = 80, 40
	)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w <= 0 || h <= 0 {
		return PreviewSize{Cols: minCols, Rows: minRows, PixelWidth: minCols * charW, PixelHeight: minRows * charH}
	}
	scale := math.Min(1, math.Min(float64(maxCols*charW)/float64(w), float64(maxRows*charH)/float64(h)))
	cols := int(math.Round(float64(w) * scale / charW))
	rows := int(math.Round(float64(h) * scale / charH))
	cols = min(max(cols, minCols), maxCols)
	rows = min(max(rows, minRows), maxRows)
	return PreviewSize{Cols: cols, Rows: rows, PixelWidth: cols * charW, PixelHeight: rows * charH}
}

// previewBytes tries the PREVIEW_BACKEND override, then every detected
// backend, until one succeeds.
func previewBytes(w io.Writer, blob []byte, format string, size PreviewSize) error {
	if len(blob) == 0 {
		return fmt.Errorf("empty image blob")
	}
	var errs []error
	tried := map[string]bool{}
	try := func(b previewBackend) bool {
		tried[b.name] = true
		debugf("trying %s backend with %d bytes of %s", b.name, len(blob), format)
		if err := b.send(w, blob, format, size); err != nil {
			debugf("%s backend failed: %v", b.name, err)
			errs = append(errs, fmt.Errorf("%s: %w", b.name, err))
			return false
		}
		return true
	}

	if v := strings.ToLower(os.Getenv("PREVIEW_BACKEND")); v != "" {
		switch v {
		case "iterm", "wezterm":
			v = "inline"
		}
		found := false
		for _, b := range previewBackends {
			if b.name == v {
				found = true
				if try(b) {
					return nil
				}
			}
		}
		if !found {
			debugf("unknown PREVIEW_BACKEND value: %s", v)
		}
	}
	for _, b := range previewBackends {
		if tried[b.name] || !b.detect() {
			continue
		}
		if try(b) {
			return nil
		}
	}
	if len(errs) == 0 {
		return fmt.Errorf("no preview protocol matched")
	}
	return errors.Join(errs...)
}

func newlines(w io.Writer, n int) {
	for i := 0; i < n; i++ {
		fmt.Fprintln(w)
	}
}

// sendKittyImage transmits PNG data with the kitty graphics protocol in
// base64 chunks of at most 4096 bytes. The first chunk carries the
// placement: a=T transmit and display, q=2 suppress replies, c/r cells.
func sendKittyImage(w io.Writer, data []byte, format string, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	if format != "png" {
		return fmt.Errorf("kitty needs png, got %s", format)
	}
	enc := base64.StdEncoding.EncodeToString(data)
	const chunkSize = 4096
	for pos := 0; pos < len(enc); pos += chunkSize {
		end := min(pos+chunkSize, len(enc))
		more := 0
		if end < len(enc) {
			more = 1
		}
		var seq string
		if pos == 0 {
			seq = fmt.Sprintf("\x1b_Ga=T,f=100,t=d,q=2,c=%d,r=%d,m=%d;%s\x1b\\", size.Cols, size.Rows, more, enc[pos:end])
		} else {
			seq = fmt.Sprintf("\x1b_Gm=%d;%s\x1b\\", more, enc[pos:end])
		}
		if _, err := io.WriteString(w, seq); err != nil {
			return err
		}
	}
	newlines(w, postImageNewlines(size.Rows))
	return nil
}

func inlineSequence(data []byte, format string, size PreviewSize) string {
	name := "preview.png"
	if strings.HasPrefix(format, "j") {
		name = "preview.jpg"
	}
	meta := fmt.Sprintf("size=%d;", len(data))
	if size.PixelWidth > 0 && size.PixelHeight > 0 {
		meta += fmt.Sprintf("width=%dpx;height=%dpx;", size.PixelWidth, size.PixelHeight)
	}
	return "\x1b]1337;File=name=" + name + ";inline=1;" + meta + ":" + base64.StdEncoding.EncodeToString(data) + "\a"
}

// sendInlineImage emits the iTerm2 OSC 1337 inline file sequence.
func sendInlineImage(w io.Writer, data []byte, format string, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	if _, err := io.WriteString(w, inlineSequence(data, format, size)); err != nil {
		return err
	}
	newlines(w, postImageNewlines(0))
	return nil
}

// sendSixelImage pipes the image through img2sixel.
func sendSixelImage(w io.Writer, data []byte, format string, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	cmd := exec.Command("img2sixel", "-")
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = w
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("img2sixel: %w", err)
	}
	newlines(w, postImageNewlines(0))
	return nil
}

// sendChafaImage renders block graphics with chafa. CHAFA_FILL and
// CHAFA_SYMBOLS override the defaults.
func sendChafaImage(w io.Writer, data []byte, format string, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	if !hasChafa() {
		return fmt.Errorf("chafa not available")
	}
	fill, symbols := "block", "block"
	if f := os.Getenv("CHAFA_FILL"); f != "" {
		fill = f
	}
	if s := os.Getenv("CHAFA_SYMBOLS"); s != "" {
		symbols = s
	}
	cmd := exec.Command("chafa", "--fill="+fill, "--symbols="+symbols, "-s", fmt.Sprintf("%dx%d", size.Cols, size.Rows), "-")
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = w
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("chafa failed: %w", err)
	}
	newlines(w, postImageNewlines(size.Rows))
	return nil
}
