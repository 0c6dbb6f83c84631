package stdimg

import (
	"image"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// LoadFace opens a TTF/OTF face at size points. An empty path, or any
// failure to read or parse the file, yields the built-in 7x13 face; failures
// are logged at Warn.
func LoadFace(fontPath string, size float64) font.Face {
	if fontPath == "" {
		return basicfont.Face7x13
	}
	data, err := os.ReadFile(fontPath)
	if err != nil {
		Logger().Warn("failed to read font file, falling back to basic font", "path", fontPath, "err", err)
		return basicfont.Face7x13
	}
	tt, err := opentype.Parse(data)
	if err != nil {
		Logger().Warn("failed to parse font, falling back to basic font", "path", fontPath, "err", err)
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		Logger().Warn("failed to create font face, falling back to basic font", "path", fontPath, "err", err)
		return basicfont.Face7x13
	}
	return face
}

// DrawText draws lines top-down inside r using face and c, clipped to r.
// Antialiased glyph edges are collapsed to binary alpha. Returns the number
// of lines that fit.
func DrawText(dst *Image, r image.Rectangle, lines []string, face font.Face, c Color) int {
	r = r.Intersect(dst.Bounds())
	if r.Empty() || len(lines) == 0 || !c.IsOpaque() {
		return 0
	}
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	if lineHeight <= 0 {
		lineHeight = 13
	}

	// draw onto a scratch buffer so the glyph coverage can be thresholded
	scratch := image.NewAlpha(r)
	d := &font.Drawer{
		Dst:  scratch,
		Src:  image.Opaque,
		Face: face,
	}
	n := 0
	for i, line := range lines {
		baseline := r.Min.Y + i*lineHeight + metrics.Ascent.Ceil()
		if baseline-metrics.Ascent.Ceil() >= r.Max.Y {
			break
		}
		d.Dot = fixed.Point26_6{X: fixed.I(r.Min.X), Y: fixed.I(baseline)}
		d.DrawString(line)
		n++
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if scratch.AlphaAt(x, y).A >= 0x80 {
				dst.SetPixel(x, y, c)
			}
		}
	}
	return n
}
