package artifact

import (
	"sort"
	"strings"
)

// Format identifies the file format of an uploaded design artifact.
type Format string

const (
	FormatPDF     Format = "pdf"
	FormatPNG     Format = "png"
	FormatSVG     Format = "svg"
	FormatJPEG    Format = "jpeg"
	FormatTIFF    Format = "tiff"
	FormatEPS     Format = "eps"
	FormatAI      Format = "ai"
	FormatUnknown Format = "unknown"
)

var allFormats = []Format{
	FormatPDF,
	FormatPNG,
	FormatSVG,
	FormatJPEG,
	FormatTIFF,
	FormatEPS,
	FormatAI,
	FormatUnknown,
}

// AllFormats returns every known format value.
func AllFormats() []Format {
	out := make([]Format, len(allFormats))
	copy(out, allFormats)
	return out
}

// ParseFormat maps a file extension or format name to a Format.
// The leading dot is optional and matching is case-insensitive.
func ParseFormat(value string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(value), ".")) {
	case "pdf":
		return FormatPDF, true
	case "png":
		return FormatPNG, true
	case "svg":
		return FormatSVG, true
	case "jpg", "jpeg":
		return FormatJPEG, true
	case "tif", "tiff":
		return FormatTIFF, true
	case "eps":
		return FormatEPS, true
	case "ai":
		return FormatAI, true
	default:
		return FormatUnknown, false
	}
}

// Vector reports whether the format's native dimensions are in points
// rather than pixels.
func (f Format) Vector() bool {
	switch f {
	case FormatPDF, FormatSVG, FormatEPS, FormatAI:
		return true
	default:
		return false
	}
}

// ColorSpace identifies the color model an artifact is authored in.
type ColorSpace string

const (
	ColorCMYK    ColorSpace = "cmyk"
	ColorRGB     ColorSpace = "rgb"
	ColorUnknown ColorSpace = "unknown"
)

// DPISource records how the metadata DPI value was obtained.
type DPISource string

const (
	// DPIEstimated means the value was derived from page or pixel area bands.
	DPIEstimated DPISource = "estimated"
	// DPIExtracted means the value came from an embedded resolution tag.
	DPIExtracted DPISource = "extracted"
)

// Metadata is the normalized technical snapshot of one design artifact.
// Width and Height are in the unit native to the format: points for vector
// formats, pixels for raster formats.
type Metadata struct {
	Format          Format
	ByteSize        uint64
	Width           float64
	Height          float64
	DPI             uint32
	DPISource       DPISource
	ColorSpace      ColorSpace
	HasTransparency bool
	HasThinLines    bool
	UnembeddedFonts []string
	PageCount       uint32
	ContentNearTrim bool
}

// Unknown returns the degraded metadata used when extraction fails:
// only the byte size is known, everything else is unset. DPI is absent
// only in this case.
func Unknown(byteSize uint64) Metadata {
	return Metadata{
		Format:     FormatUnknown,
		ByteSize:   byteSize,
		ColorSpace: ColorUnknown,
		PageCount:  1,
	}
}

// NormalizeFonts sorts and deduplicates the unembedded font list so the
// set is deterministic regardless of extraction order.
func NormalizeFonts(fonts []string) []string {
	if len(fonts) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(fonts))
	out := make([]string, 0, len(fonts))
	for _, font := range fonts {
		font = strings.TrimSpace(font)
		if font == "" {
			continue
		}
		if _, ok := seen[font]; ok {
			continue
		}
		seen[font] = struct{}{}
		out = append(out, font)
	}
	sort.Strings(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

// PointDimensions converts the native dimensions to 72-dpi points for
// standard-size checks. Vector formats are already in points; raster
// dimensions are scaled by the artifact DPI.
func (m Metadata) PointDimensions() (width, height float64) {
	if m.Format.Vector() || m.DPI == 0 {
		return m.Width, m.Height
	}
	scale := 72.0 / float64(m.DPI)
	return m.Width * scale, m.Height * scale
}
