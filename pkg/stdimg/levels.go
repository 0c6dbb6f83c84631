package stdimg

import (
	"math"
)

// Channels selects RGB channels for Invert.
type Channels uint8

const (
	ChannelRed Channels = 1 << iota
	ChannelGreen
	ChannelBlue

	ChannelsAll = ChannelRed | ChannelGreen | ChannelBlue
)

// Invert negates the selected channels of every opaque pixel. It is its own
// inverse.
func Invert(src *Image, ch Channels) *Image {
	return mapOpaque(src, func(r, g, b uint8) (uint8, uint8, uint8) {
		if ch&ChannelRed != 0 {
			r = 255 - r
		}
		if ch&ChannelGreen != 0 {
			g = 255 - g
		}
		if ch&ChannelBlue != 0 {
			b = 255 - b
		}
		return r, g, b
	})
}

// Grayscale replaces every opaque pixel by its luminance.
func Grayscale(src *Image) *Image {
	return mapOpaque(src, func(r, g, b uint8) (uint8, uint8, uint8) {
		l := uint8(clampFloatToUint8(math.Round(luma(r, g, b))))
		return l, l, l
	})
}

// Balance adjusts brightness, contrast and gamma. Each strength runs from
// -50 to 50 with 0 meaning unchanged. Gamma is applied first, then
// brightness, then contrast.
func Balance(src *Image, brightness, contrast, gamma int) *Image {
	brightness = clampInt(brightness, -50, 50)
	contrast = clampInt(contrast, -50, 50)
	gamma = clampInt(gamma, -50, 50)
	if brightness == 0 && contrast == 0 && gamma == 0 {
		return src.Clone()
	}

	var lut [256]uint8
	invGamma := 1 / math.Pow(10, float64(gamma)/50)
	for v := 0; v < 256; v++ {
		c := math.Round(255 * math.Pow(float64(v)/255, invGamma))
		c += float64(brightness * 255 / 50)
		c = (c-127)*float64(contrast+50)/50 + 127
		lut[v] = uint8(clampFloatToUint8(c))
	}
	return mapOpaque(src, func(r, g, b uint8) (uint8, uint8, uint8) {
		return lut[r], lut[g], lut[b]
	})
}

// Flatten maps each opaque pixel onto the gradient between c1 (dark) and
// c2 (light) by its luminance. Both colors must be opaque.
func Flatten(src *Image, c1, c2 Color) *Image {
	if !c1.IsOpaque() || !c2.IsOpaque() {
		panic("stdimg: flatten needs opaque colors")
	}
	r1, g1, b1 := c1.Components()
	r2, g2, b2 := c2.Components()
	mix := func(a, b uint8, t float64) uint8 {
		return uint8(clampFloatToUint8(math.Round(float64(a) + (float64(b)-float64(a))*t)))
	}
	return mapOpaque(src, func(r, g, b uint8) (uint8, uint8, uint8) {
		t := luma(r, g, b) / 255
		return mix(r1, r2, t), mix(g1, g2, t), mix(b1, b2, t)
	})
}

// HSV shifts hue by hue degrees and scales saturation and value by
// (1+sat) and (1+value). sat and value run from -1 to 1.
func HSV(src *Image, hue, sat, value float64) *Image {
	if hue == 0 && sat == 0 && value == 0 {
		return src.Clone()
	}
	return mapOpaque(src, func(r, g, b uint8) (uint8, uint8, uint8) {
		h, s, v := rgbToHsv(float64(r)/255, float64(g)/255, float64(b)/255)
		h = math.Mod(h+hue/360, 1)
		if h < 0 {
			h++
		}
		s = clamp01(s * (1 + sat))
		v = clamp01(v * (1 + value))
		rf, gf, bf := hsvToRgb(h, s, v)
		return uint8(math.Round(rf * 255)), uint8(math.Round(gf * 255)), uint8(math.Round(bf * 255))
	})
}

func rgbToHsv(r, g, b float64) (h, s, v float64) {
	mx := math.Max(r, math.Max(g, b))
	mn := math.Min(r, math.Min(g, b))
	v = mx
	d := mx - mn
	if mx == 0 || d == 0 {
		return 0, 0, v
	}
	s = d / mx
	switch mx {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h / 6, s, v
}

func hsvToRgb(h, s, v float64) (r, g, b float64) {
	if s == 0 {
		return v, v, v
	}
	h *= 6
	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	switch int(i) % 6 {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}
