package stdimg

import (
	"image"
	"testing"
)

func TestInvertIsInvolution(t *testing.T) {
	src := patterned(6, 4)
	src.SetPixel(3, 3, Transparent)
	once := Invert(src, ChannelsAll)
	if once.Pixel(1, 1) != RGB(255-17, 255-29, 255) {
		t.Fatalf("inverted pixel = %v", once.Pixel(1, 1))
	}
	if once.Pixel(3, 3) != Transparent {
		t.Fatalf("transparent pixel changed")
	}
	if !Invert(once, ChannelsAll).Equal(src) {
		t.Fatalf("double invert is not identity")
	}
	redOnly := Invert(makeSolid(1, 1, Black), ChannelRed)
	if redOnly.Pixel(0, 0) != RGB(255, 0, 0) {
		t.Fatalf("channel mask ignored: %v", redOnly.Pixel(0, 0))
	}
}

func TestGrayscale(t *testing.T) {
	out := Grayscale(makeSolid(2, 2, RGB(255, 0, 0)))
	r, g, b := out.Pixel(0, 0).Components()
	if r != g || g != b || r != 76 {
		t.Fatalf("gray of red = %d,%d,%d", r, g, b)
	}
}

func TestBalance(t *testing.T) {
	src := patterned(4, 4)
	if !Balance(src, 0, 0, 0).Equal(src) {
		t.Fatalf("zero balance changed the image")
	}
	bright := Balance(makeSolid(1, 1, RGB(100, 100, 100)), 10, 0, 0)
	if c := bright.Pixel(0, 0); c != RGB(151, 151, 151) {
		t.Fatalf("brightness +10 = %v", c)
	}
	flat := Balance(makeSolid(1, 1, RGB(200, 50, 127)), 0, -50, 0)
	if c := flat.Pixel(0, 0); c != RGB(127, 127, 127) {
		t.Fatalf("contrast -50 = %v", c)
	}
}

func TestReduceColorsMonochrome(t *testing.T) {
	src := NewImage(3, 1)
	src.SetPixel(0, 0, RGB(10, 10, 10))
	src.SetPixel(1, 0, RGB(240, 240, 200))
	out := ReduceColors(src, 2)
	if out.Pixel(0, 0) != Black || out.Pixel(1, 0) != White || out.Pixel(2, 0) != Transparent {
		t.Fatalf("monochrome = %v %v %v", out.Pixel(0, 0), out.Pixel(1, 0), out.Pixel(2, 0))
	}
	q := ReduceColors(makeSolid(1, 1, RGB(100, 200, 30)), 3)
	if q.Pixel(0, 0) != RGB(128, 255, 0) {
		t.Fatalf("3 levels = %v", q.Pixel(0, 0))
	}
}

func TestHSVHueRotation(t *testing.T) {
	out := HSV(makeSolid(1, 1, RGB(255, 0, 0)), 120, 0, 0)
	if c := out.Pixel(0, 0); c != RGB(0, 255, 0) {
		t.Fatalf("red + 120 degrees = %v", c)
	}
	desat := HSV(makeSolid(1, 1, RGB(255, 0, 0)), 0, -1, 0)
	if c := desat.Pixel(0, 0); c != RGB(255, 255, 255) {
		t.Fatalf("fully desaturated red = %v", c)
	}
}

func TestFlatten(t *testing.T) {
	src := NewImage(2, 1)
	src.SetPixel(0, 0, Black)
	src.SetPixel(1, 0, White)
	out := Flatten(src, red, blue)
	if out.Pixel(0, 0) != red || out.Pixel(1, 0) != blue {
		t.Fatalf("flatten = %v %v", out.Pixel(0, 0), out.Pixel(1, 0))
	}
}

func TestBlurAndSharpenKeepTransparency(t *testing.T) {
	src := makeSolid(9, 9, White)
	src.FillRect(image.Rect(4, 0, 5, 9), Black)
	src.SetPixel(0, 0, Transparent)

	blurred := Blur(src, 1.5)
	if blurred.Pixel(0, 0) != Transparent {
		t.Fatalf("blur filled a transparent pixel")
	}
	r, _, _ := blurred.Pixel(3, 4).Components()
	if r == 255 || r == 0 {
		t.Fatalf("blur did not mix neighbours: %d", r)
	}

	uniform := makeSolid(5, 5, RGB(90, 90, 90))
	if !Blur(uniform, 2).Equal(uniform) {
		t.Fatalf("blurring a flat image changed it")
	}
	if !Sharpen(uniform, 1, 1).Equal(uniform) {
		t.Fatalf("sharpening a flat image changed it")
	}
	sharp := Sharpen(src, 1, 2)
	if sharp.Pixel(0, 0) != Transparent {
		t.Fatalf("sharpen filled a transparent pixel")
	}
}

func TestEmbossFlatIsGrey(t *testing.T) {
	out := Emboss(makeSolid(4, 4, RGB(10, 200, 30)), 1)
	if c := out.Pixel(2, 2); c != RGB(128, 128, 128) {
		t.Fatalf("emboss of flat image = %v", c)
	}
}

func TestAutoCropRect(t *testing.T) {
	img := makeSolid(10, 8, White)
	img.FillRect(image.Rect(2, 3, 5, 6), red)
	if got := AutoCropRect(img, 0); got != image.Rect(2, 3, 5, 6) {
		t.Fatalf("auto crop rect = %v", got)
	}
	if got := AutoCropRect(makeSolid(3, 3, White), 0); got != image.Rect(0, 0, 3, 3) {
		t.Fatalf("uniform image crop = %v", got)
	}
}
