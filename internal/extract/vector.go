package extract

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"prepress/internal/artifact"
)

type svgRoot struct {
	Width   string `xml:"width,attr"`
	Height  string `xml:"height,attr"`
	ViewBox string `xml:"viewBox,attr"`
}

var (
	svgOpacityRe     = regexp.MustCompile(`(?:fill-|stroke-)?opacity\s*[:=]\s*"?([0-9.]+)`)
	svgStrokeWidthRe = regexp.MustCompile(`stroke-width\s*[:=]\s*"?([0-9.]+)`)
	epsBoundingBoxRe = regexp.MustCompile(`%%BoundingBox:\s*(-?\d+)\s+(-?\d+)\s+(-?\d+)\s+(-?\d+)`)
)

// extractSVG parses the root element for dimensions and scans attributes
// for transparency and stroke-width signals. SVG dimensions normalize to
// points; unitless values are treated as CSS pixels at 96 per inch.
func extractSVG(data []byte) (artifact.Metadata, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	var root svgRoot
	found := false
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "svg" {
			break
		}
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "width":
				root.Width = attr.Value
			case "height":
				root.Height = attr.Value
			case "viewBox":
				root.ViewBox = attr.Value
			}
		}
		found = true
		break
	}
	if !found {
		return artifact.Metadata{}, fmt.Errorf("%w: no svg root element", ErrUnsupportedFormat)
	}

	width := svgLengthToPoints(root.Width)
	height := svgLengthToPoints(root.Height)
	if (width <= 0 || height <= 0) && root.ViewBox != "" {
		if fields := strings.Fields(root.ViewBox); len(fields) == 4 {
			vw, _ := strconv.ParseFloat(fields[2], 64)
			vh, _ := strconv.ParseFloat(fields[3], 64)
			width = vw * 72 / 96
			height = vh * 72 / 96
		}
	}
	if width <= 0 || height <= 0 {
		return artifact.Metadata{}, fmt.Errorf("%w: svg has no usable dimensions", ErrUnsupportedFormat)
	}

	md := artifact.Metadata{
		Format:     artifact.FormatSVG,
		Width:      width,
		Height:     height,
		ColorSpace: artifact.ColorRGB,
		DPI:        vectorDPIBand(width * height),
		DPISource:  artifact.DPIEstimated,
		PageCount:  1,
	}

	for _, match := range svgOpacityRe.FindAllSubmatch(data, -1) {
		if value, err := strconv.ParseFloat(string(match[1]), 64); err == nil && value < 1 {
			md.HasTransparency = true
			break
		}
	}
	for _, match := range svgStrokeWidthRe.FindAllSubmatch(data, -1) {
		if value, err := strconv.ParseFloat(string(match[1]), 64); err == nil && value < thinLineWidthPt {
			md.HasThinLines = true
			break
		}
	}

	return md, nil
}

// svgLengthToPoints converts an SVG length attribute to points. Unitless
// and px values assume the CSS 96-per-inch pixel.
func svgLengthToPoints(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	unit := ""
	numeric := value
	for _, suffix := range []string{"px", "pt", "mm", "cm", "in", "pc"} {
		if strings.HasSuffix(value, suffix) {
			unit = suffix
			numeric = strings.TrimSuffix(value, suffix)
			break
		}
	}
	number, err := strconv.ParseFloat(strings.TrimSpace(numeric), 64)
	if err != nil || number <= 0 {
		return 0
	}
	switch unit {
	case "pt":
		return number
	case "in":
		return number * 72
	case "mm":
		return number * 72 / 25.4
	case "cm":
		return number * 72 / 2.54
	case "pc":
		return number * 12
	default: // px or unitless
		return number * 72 / 96
	}
}

// extractEPS reads the %%BoundingBox comment for point dimensions.
func extractEPS(data []byte) (artifact.Metadata, error) {
	match := epsBoundingBoxRe.FindSubmatch(data)
	if match == nil {
		return artifact.Metadata{}, fmt.Errorf("%w: eps missing BoundingBox", ErrUnsupportedFormat)
	}
	llx, _ := strconv.ParseFloat(string(match[1]), 64)
	lly, _ := strconv.ParseFloat(string(match[2]), 64)
	urx, _ := strconv.ParseFloat(string(match[3]), 64)
	ury, _ := strconv.ParseFloat(string(match[4]), 64)
	width := urx - llx
	height := ury - lly
	if width <= 0 || height <= 0 {
		return artifact.Metadata{}, fmt.Errorf("%w: eps BoundingBox is degenerate", ErrUnsupportedFormat)
	}

	colorSpace := artifact.ColorUnknown
	if bytes.Contains(data, []byte("setcmykcolor")) {
		colorSpace = artifact.ColorCMYK
	} else if bytes.Contains(data, []byte("setrgbcolor")) {
		colorSpace = artifact.ColorRGB
	}

	return artifact.Metadata{
		Format:     artifact.FormatEPS,
		Width:      width,
		Height:     height,
		ColorSpace: colorSpace,
		DPI:        vectorDPIBand(width * height),
		DPISource:  artifact.DPIEstimated,
		PageCount:  1,
	}, nil
}
