package selection

import (
	"fmt"

	"github.com/Fepozopo/tpaint/pkg/stdimg"
)

// Transparency is the policy deciding which content pixels show the
// document beneath. The zero value is opaque.
type Transparency struct {
	transparent bool
	color       stdimg.Color
	similarity  float64
}

// Opaque returns the policy under which every content pixel is drawn.
func Opaque() Transparency { return Transparency{} }

// NewTransparency returns a color-keyed policy: content pixels similar to c
// within similarity (0..stdimg.MaxSimilarity) are treated as holes.
func NewTransparency(c stdimg.Color, similarity float64) Transparency {
	if !c.IsValid() {
		panic("selection: transparency key color is invalid")
	}
	return Transparency{transparent: true, color: c, similarity: similarity}
}

func (t Transparency) IsOpaque() bool { return !t.transparent }

// Color is the key color; Invalid when opaque.
func (t Transparency) Color() stdimg.Color {
	if !t.transparent {
		return stdimg.Invalid
	}
	return t.color
}

func (t Transparency) ColorSimilarity() float64 { return t.similarity }

// ProcessedColorSimilarity is the threshold form of ColorSimilarity.
func (t Transparency) ProcessedColorSimilarity() int {
	return stdimg.ProcessSimilarity(t.similarity)
}

// Equal reports whether two policies mask the same pixels. All opaque
// policies are equal.
func (t Transparency) Equal(o Transparency) bool {
	if t.IsOpaque() && o.IsOpaque() {
		return true
	}
	return t.transparent == o.transparent &&
		t.color == o.color &&
		t.similarity == o.similarity
}

func (t Transparency) String() string {
	if t.IsOpaque() {
		return "opaque"
	}
	return fmt.Sprintf("transparent(%v, %.2f)", t.color, t.similarity)
}
