package stdimg

import (
	"bytes"
	"image"
	"math/bits"
)

// Mask is a 1-bit-per-pixel bitmap. The meaning of a set bit belongs to the
// producer: opaque for Image.Mask, inside for selection shape masks,
// transparent for selection transparency masks.
type Mask struct {
	w, h int
	bits []byte
}

// NewMask returns a cleared w x h mask.
func NewMask(w, h int) *Mask {
	if w < 0 || h < 0 {
		panic("stdimg: negative mask size")
	}
	return &Mask{w: w, h: h, bits: make([]byte, (w*h+7)/8)}
}

func (m *Mask) Width() int              { return m.w }
func (m *Mask) Height() int             { return m.h }
func (m *Mask) Bounds() image.Rectangle { return image.Rect(0, 0, m.w, m.h) }

// At reports the bit at (x,y). Out of range reads as clear.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	i := y*m.w + x
	return (m.bits[i>>3]>>(uint(i)&7))&1 == 1
}

// Set writes the bit at (x,y). Out of range writes are ignored.
func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return
	}
	i := y*m.w + x
	if v {
		m.bits[i>>3] |= 1 << (uint(i) & 7)
	} else {
		m.bits[i>>3] &^= 1 << (uint(i) & 7)
	}
}

// Fill sets every bit to v.
func (m *Mask) Fill(v bool) {
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			m.Set(x, y, v)
		}
	}
}

// Invert flips every bit.
func (m *Mask) Invert() {
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			m.Set(x, y, !m.At(x, y))
		}
	}
}

func (m *Mask) Clone() *Mask {
	if m == nil {
		return nil
	}
	out := &Mask{w: m.w, h: m.h, bits: make([]byte, len(m.bits))}
	copy(out.bits, m.bits)
	return out
}

// Count returns the number of set bits.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		n += bits.OnesCount8(b)
	}
	return n
}

func (m *Mask) IsEmpty() bool { return m.Count() == 0 }

// Equal compares size and every bit. Two nil masks are equal.
func (m *Mask) Equal(o *Mask) bool {
	if m == nil || o == nil {
		return m == nil && o == nil
	}
	return m.w == o.w && m.h == o.h && bytes.Equal(m.bits, o.bits)
}

// Flip returns a mirrored copy.
func (m *Mask) Flip(horiz, vert bool) *Mask {
	out := NewMask(m.w, m.h)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			dx, dy := x, y
			if horiz {
				dx = m.w - 1 - x
			}
			if vert {
				dy = m.h - 1 - y
			}
			out.Set(dx, dy, m.At(x, y))
		}
	}
	return out
}

// Size returns the mask size in bytes.
func (m *Mask) Size() int64 {
	if m == nil {
		return 0
	}
	return int64(len(m.bits))
}
