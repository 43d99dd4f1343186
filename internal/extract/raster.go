package extract

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"math"

	"prepress/internal/artifact"

	// Register raster codecs for image.DecodeConfig.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
)

// extractRaster reads intrinsic pixel dimensions via the registered image
// codecs. DPI is estimated from pixel area unless the file carries a real
// resolution tag (PNG pHYs), in which case the tag wins.
func extractRaster(data []byte, format artifact.Format) (artifact.Metadata, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return artifact.Metadata{}, fmt.Errorf("%w: decode %s header: %v", ErrUnsupportedFormat, format, err)
	}

	md := artifact.Metadata{
		Format:     format,
		Width:      float64(cfg.Width),
		Height:     float64(cfg.Height),
		ColorSpace: rasterColorSpace(cfg),
		DPI:        rasterDPIBand(float64(cfg.Width) * float64(cfg.Height)),
		DPISource:  artifact.DPIEstimated,
		PageCount:  1,
	}

	if format == artifact.FormatPNG {
		if dpi, ok := pngResolution(data); ok {
			md.DPI = dpi
			md.DPISource = artifact.DPIExtracted
		}
	}

	return md, nil
}

// rasterDPIBand estimates effective print resolution from pixel area.
func rasterDPIBand(areaPx float64) uint32 {
	switch {
	case areaPx > 8_000_000:
		return 300
	case areaPx > 3_000_000:
		return 200
	case areaPx > 1_000_000:
		return 150
	default:
		return 72
	}
}

// rasterColorSpace maps the decoded color model. PNG has no CMYK mode;
// JPEG and TIFF report CMYK only when the header says so.
func rasterColorSpace(cfg image.Config) artifact.ColorSpace {
	if cfg.ColorModel == color.CMYKModel {
		return artifact.ColorCMYK
	}
	return artifact.ColorRGB
}

// pngResolution reads the pHYs chunk when it specifies pixels per meter.
func pngResolution(data []byte) (uint32, bool) {
	// Skip the 8-byte signature, then walk chunks: length, type, data, CRC.
	offset := 8
	for offset+12 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[offset:]))
		chunkType := string(data[offset+4 : offset+8])
		body := offset + 8
		if body+length > len(data) {
			return 0, false
		}
		switch chunkType {
		case "pHYs":
			if length < 9 || data[body+8] != 1 {
				return 0, false
			}
			ppmX := binary.BigEndian.Uint32(data[body:])
			dpi := math.Round(float64(ppmX) * 0.0254)
			if dpi <= 0 {
				return 0, false
			}
			return uint32(dpi), true
		case "IDAT", "IEND":
			// pHYs must precede image data.
			return 0, false
		}
		offset = body + length + 4
	}
	return 0, false
}
