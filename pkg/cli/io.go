package cli

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Fepozopo/tpaint/pkg/document"
	"github.com/Fepozopo/tpaint/pkg/stdimg"
)

// ErrUnsupportedFormat is returned when saving to a format that can only be
// read.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// LoadImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP file. The returned
// format is the decoder name, e.g. "png".
func LoadImage(path string) (*stdimg.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	img, format, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	stdimg.Logger().Info("opened image", "path", path, "format", format, "size", img.Bounds().Size())
	return stdimg.FromImage(img), format, nil
}

// formatFromPath picks the output format from the file extension; unknown
// extensions are written as PNG.
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	case ".webp":
		return "webp"
	default:
		return "png"
	}
}

// SaveImage encodes img by the extension of path.
func SaveImage(path string, img *stdimg.Image) (err error) {
	if img.IsNull() {
		return fmt.Errorf("save %s: empty image", path)
	}
	format := formatFromPath(path)
	if format == "webp" {
		return fmt.Errorf("save %s: %w: webp", path, ErrUnsupportedFormat)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)
	src := img.NRGBA()
	switch format {
	case "jpeg":
		err = jpeg.Encode(w, src, &jpeg.Options{Quality: 92})
	case "gif":
		err = gif.Encode(w, src, nil)
	case "bmp":
		err = bmp.Encode(w, src)
	case "tiff":
		err = tiff.Encode(w, src, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		err = png.Encode(w, src)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	stdimg.Logger().Info("saved image", "path", path, "format", format, "size", img.Size())
	return nil
}

// GetImageInfo returns a short info line for the document.
func GetImageInfo(doc *document.Document, format string) string {
	if format == "" {
		format = "unknown"
	}
	info := fmt.Sprintf("Format: %s, Width: %d, Height: %d", strings.ToUpper(format), doc.Width(false), doc.Height(false))
	if doc.IsModified() {
		info += ", Modified"
	}
	if sel := doc.Selection(); sel != nil {
		r := sel.BoundingRect()
		state := "marked"
		if sel.HasContent() {
			state = "floating"
		}
		info += fmt.Sprintf(", Selection: %s %s %dx%d+%d+%d", sel.Kind(), state, r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
	}
	return info
}
