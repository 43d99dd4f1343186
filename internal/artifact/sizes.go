package artifact

import "math"

// standardSizeTolerance is the per-axis slack, in points, allowed when
// matching a standard print size.
const standardSizeTolerance = 10.0

// standardSize is one accepted trim size in points.
type standardSize struct {
	name   string
	width  float64
	height float64
}

// Portrait orientations only; the landscape variants are checked by
// swapping axes in StandardSize.
var standardSizes = []standardSize{
	{name: "letter", width: 612, height: 792},
	{name: "legal", width: 612, height: 1008},
	{name: "tabloid", width: 792, height: 1224},
	{name: "folio", width: 612, height: 936},
}

// StandardSize reports whether the given point dimensions match one of the
// accepted print sizes (portrait or landscape) within tolerance, and the
// matched size name.
func StandardSize(widthPt, heightPt float64) (string, bool) {
	for _, size := range standardSizes {
		if within(widthPt, size.width) && within(heightPt, size.height) {
			return size.name, true
		}
		if within(widthPt, size.height) && within(heightPt, size.width) {
			return size.name + " landscape", true
		}
	}
	return "", false
}

func within(value, target float64) bool {
	return math.Abs(value-target) <= standardSizeTolerance
}
