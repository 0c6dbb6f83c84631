package stdimg

import (
	"image"
)

// AutoCropRect returns the smallest rectangle outside of which every pixel
// is similar to the top-left pixel. processedSimilarity comes from
// ProcessSimilarity. When the whole image is uniform, or there is nothing to
// crop, the result equals img.Bounds().
func AutoCropRect(img *Image, processedSimilarity int) image.Rectangle {
	b := img.Bounds()
	if b.Empty() {
		return b
	}
	ref := img.Pixel(0, 0)

	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.Pixel(x, y).IsSimilarTo(ref, processedSimilarity) {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}

	// nothing differs
	if maxX < minX || maxY < minY {
		return b
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}
