package command

import (
	"image"

	"golang.org/x/image/math/f64"

	"github.com/Fepozopo/tpaint/pkg/selection"
	"github.com/Fepozopo/tpaint/pkg/stdimg"
)

// transformedBorder maps a selection border through m, which must take the
// selection's w x h box to a box starting at the origin, and places the
// result's bounding box at dst.
func transformedBorder(pts []image.Point, m f64.Aff3, dst image.Point) []image.Point {
	origin := stdimg.PointsBounds(pts).Min
	pts = stdimg.MapPoints(m, stdimg.TranslatePoints(pts, origin.Mul(-1)))
	return stdimg.TranslatePoints(pts, dst.Sub(stdimg.PointsBounds(pts).Min))
}

// selectionForTransformedContent builds the selection holding a transformed
// image. The mapped border is kept when its bounds agree with the image;
// otherwise a rectangle of the image's size is used at the border's origin.
func selectionForTransformedContent(op string, pts []image.Point, img *stdimg.Image, tr selection.Transparency) *selection.ImageSelection {
	bounds := stdimg.PointsBounds(pts)
	if bounds.Size() == img.Size() {
		return selection.NewFreeForm(pts, img, tr)
	}
	stdimg.Logger().Warn("transformed border does not match content, using a rectangle",
		"op", op, "border", bounds, "content", img.Size())
	return selection.NewRectangular(image.Rectangle{Min: bounds.Min, Max: bounds.Min.Add(img.Size())}, img, tr)
}
