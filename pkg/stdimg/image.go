package stdimg

import (
	"image"
	"image/color"
)

// Image is the pixel buffer every editing operation works on. Storage is an
// *image.NRGBA anchored at the origin whose alpha is always 0 or 255: a
// pixel is either opaque RGB or fully transparent, which is the collapsed
// form of "RGB plus an optional 1-bit mask". Transparent pixels are stored
// as all zero bytes.
//
// Image implements image.Image so it can be handed to encoders and to
// golang.org/x/image/draw directly.
type Image struct {
	pix *image.NRGBA
}

// NewImage returns a fully transparent w x h image.
func NewImage(w, h int) *Image {
	if w < 0 || h < 0 {
		panic("stdimg: negative image size")
	}
	return &Image{pix: image.NewNRGBA(image.Rect(0, 0, w, h))}
}

// NewFilled returns a w x h image filled with c.
func NewFilled(w, h int, c Color) *Image {
	img := NewImage(w, h)
	img.Fill(c)
	return img
}

// FromImage copies src into a new Image, collapsing any alpha channel: alpha
// below half becomes transparent, anything else opaque.
func FromImage(src image.Image) *Image {
	if src == nil {
		return nil
	}
	if im, ok := src.(*Image); ok {
		return im.Clone()
	}
	n := toNRGBA(src)
	for i := 0; i < len(n.Pix); i += 4 {
		if n.Pix[i+3] < 0x80 {
			n.Pix[i+0], n.Pix[i+1], n.Pix[i+2], n.Pix[i+3] = 0, 0, 0, 0
		} else {
			n.Pix[i+3] = 0xff
		}
	}
	return &Image{pix: n}
}

func (im *Image) Width() int  { return im.pix.Rect.Dx() }
func (im *Image) Height() int { return im.pix.Rect.Dy() }

// Size returns the dimensions as a point.
func (im *Image) Size() image.Point { return im.pix.Rect.Size() }

// IsNull reports whether the image has no pixels.
func (im *Image) IsNull() bool { return im == nil || im.Width() == 0 || im.Height() == 0 }

// Bounds implements image.Image.
func (im *Image) Bounds() image.Rectangle { return im.pix.Rect }

// ColorModel implements image.Image.
func (im *Image) ColorModel() color.Model { return color.NRGBAModel }

// At implements image.Image.
func (im *Image) At(x, y int) color.Color { return im.pix.NRGBAAt(x, y) }

// NRGBA exposes the backing buffer. Callers must keep alpha binary.
func (im *Image) NRGBA() *image.NRGBA { return im.pix }

// Pixel returns the color at (x,y); out of range reads as Transparent.
func (im *Image) Pixel(x, y int) Color {
	if !(image.Point{x, y}).In(im.pix.Rect) {
		return Transparent
	}
	i := im.pix.PixOffset(x, y)
	if im.pix.Pix[i+3] == 0 {
		return Transparent
	}
	return RGB(im.pix.Pix[i+0], im.pix.Pix[i+1], im.pix.Pix[i+2])
}

// SetPixel writes c at (x,y). Out of range writes are ignored.
func (im *Image) SetPixel(x, y int, c Color) {
	if !(image.Point{x, y}).In(im.pix.Rect) {
		return
	}
	if !c.IsValid() {
		panic("stdimg: SetPixel with invalid color")
	}
	n := c.NRGBA()
	i := im.pix.PixOffset(x, y)
	im.pix.Pix[i+0] = n.R
	im.pix.Pix[i+1] = n.G
	im.pix.Pix[i+2] = n.B
	im.pix.Pix[i+3] = n.A
}

func (im *Image) Clone() *Image {
	if im == nil {
		return nil
	}
	out := image.NewNRGBA(im.pix.Rect)
	copy(out.Pix, im.pix.Pix)
	return &Image{pix: out}
}

// Equal reports pixel identity.
func (im *Image) Equal(o *Image) bool {
	if im == nil || o == nil {
		return im == nil && o == nil
	}
	if im.Size() != o.Size() {
		return false
	}
	for y := 0; y < im.Height(); y++ {
		for x := 0; x < im.Width(); x++ {
			if im.Pixel(x, y) != o.Pixel(x, y) {
				return false
			}
		}
	}
	return true
}

// Fill sets every pixel to c. Transparent clears.
func (im *Image) Fill(c Color) {
	im.FillRect(im.Bounds(), c)
}

// FillRect sets every pixel of r (clipped) to c.
func (im *Image) FillRect(r image.Rectangle, c Color) {
	r = r.Intersect(im.Bounds())
	if r.Empty() {
		return
	}
	n := c.NRGBA()
	row := make([]byte, r.Dx()*4)
	for i := 0; i < len(row); i += 4 {
		row[i+0], row[i+1], row[i+2], row[i+3] = n.R, n.G, n.B, n.A
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := im.pix.PixOffset(r.Min.X, y)
		copy(im.pix.Pix[i:i+len(row)], row)
	}
}

// HasTransparentPixels reports whether any pixel is transparent.
func (im *Image) HasTransparentPixels() bool {
	for i := 3; i < len(im.pix.Pix); i += 4 {
		if im.pix.Pix[i] == 0 {
			return true
		}
	}
	return false
}

// Mask returns the opaque-pixel mask (bit set = opaque), or nil when every
// pixel is opaque.
func (im *Image) Mask() *Mask {
	if !im.HasTransparentPixels() {
		return nil
	}
	m := NewMask(im.Width(), im.Height())
	for y := 0; y < im.Height(); y++ {
		for x := 0; x < im.Width(); x++ {
			if im.pix.Pix[im.pix.PixOffset(x, y)+3] != 0 {
				m.Set(x, y, true)
			}
		}
	}
	return m
}

// SetMask clears every pixel whose bit in m is unset. A nil mask leaves
// the image alone.
func (im *Image) SetMask(m *Mask) {
	if m == nil {
		return
	}
	if m.Width() != im.Width() || m.Height() != im.Height() {
		panic("stdimg: mask size does not match image")
	}
	for y := 0; y < im.Height(); y++ {
		for x := 0; x < im.Width(); x++ {
			if !m.At(x, y) {
				im.SetPixel(x, y, Transparent)
			}
		}
	}
}

// SubImage copies the pixels of r into a new r.Dx() x r.Dy() image. Parts of
// r outside the image read as transparent.
func (im *Image) SubImage(r image.Rectangle) *Image {
	out := NewImage(r.Dx(), r.Dy())
	out.SetImageAt(im, r.Min.Mul(-1))
	return out
}

// SetImageAt copies src with its top-left at pt, transparent pixels
// included. The copy is clipped to im.
func (im *Image) SetImageAt(src *Image, pt image.Point) {
	dr := src.Bounds().Add(pt).Intersect(im.Bounds())
	if dr.Empty() {
		return
	}
	n := dr.Dx() * 4
	for y := dr.Min.Y; y < dr.Max.Y; y++ {
		di := im.pix.PixOffset(dr.Min.X, y)
		si := src.pix.PixOffset(dr.Min.X-pt.X, y-pt.Y)
		copy(im.pix.Pix[di:di+n], src.pix.Pix[si:si+n])
	}
}

// PaintImageAt composites src with its top-left at pt: opaque source pixels
// replace the destination, transparent ones leave it untouched.
func (im *Image) PaintImageAt(src *Image, pt image.Point) {
	dr := src.Bounds().Add(pt).Intersect(im.Bounds())
	for y := dr.Min.Y; y < dr.Max.Y; y++ {
		for x := dr.Min.X; x < dr.Max.X; x++ {
			si := src.pix.PixOffset(x-pt.X, y-pt.Y)
			if src.pix.Pix[si+3] == 0 {
				continue
			}
			di := im.pix.PixOffset(x, y)
			copy(im.pix.Pix[di:di+4], src.pix.Pix[si:si+4])
		}
	}
}

// Resize crops or extends to w x h keeping the top-left anchored. New area
// is filled with bg.
func (im *Image) Resize(w, h int, bg Color) *Image {
	out := NewFilled(w, h, bg)
	out.SetImageAt(im, image.Point{})
	return out
}

// ByteSize approximates the memory held by the pixel buffer.
func (im *Image) ByteSize() int64 {
	if im == nil {
		return 0
	}
	return int64(len(im.pix.Pix))
}
