package extract

import (
	"bytes"
	"compress/zlib"
	"io"
	"regexp"
	"strconv"
	"strings"

	"prepress/internal/artifact"
)

// thinLineWidthPt is the stroke width, in points, below which a line is
// considered too thin to print reliably.
const thinLineWidthPt = 0.25

var (
	pdfPageRe      = regexp.MustCompile(`/Type\s*/Page[^s]`)
	pdfMediaBoxRe  = regexp.MustCompile(`/MediaBox\s*\[\s*(-?[\d.]+)\s+(-?[\d.]+)\s+(-?[\d.]+)\s+(-?[\d.]+)\s*\]`)
	pdfFontNameRe  = regexp.MustCompile(`/FontName\s*/([^\s/<>\[\]()]+)`)
	pdfBaseFontRe  = regexp.MustCompile(`/BaseFont\s*/([^\s/<>\[\]()]+)`)
	pdfAlphaRe     = regexp.MustCompile(`/(?:CA|ca)\s+([\d.]+)`)
	pdfObjectRe    = regexp.MustCompile(`\d+\s+\d+\s+obj`)
	pdfSubsetTagRe = regexp.MustCompile(`^[A-Z]{6}\+`)
)

// extractPDF scans a PDF (or PDF-compatible Illustrator) document without a
// full object-graph parse: page geometry and font embedding are read from
// object dictionaries, stroke widths and alpha state from the first few
// pages' content streams.
func (e *Extractor) extractPDF(data []byte, format artifact.Format) (artifact.Metadata, error) {
	md := artifact.Metadata{
		Format:     format,
		ColorSpace: pdfColorSpace(data),
		DPISource:  artifact.DPIEstimated,
	}

	md.PageCount = uint32(len(pdfPageRe.FindAll(data, -1)))
	if md.PageCount == 0 {
		md.PageCount = 1
	}

	md.Width, md.Height = pdfPageSize(data)
	md.DPI = vectorDPIBand(md.Width * md.Height)

	md.HasTransparency = pdfHasTransparency(data)
	md.UnembeddedFonts = artifact.NormalizeFonts(pdfUnembeddedFonts(data))

	for _, stream := range pdfContentStreams(data, e.maxPDFPages) {
		if contentHasThinLines(stream) {
			md.HasThinLines = true
			break
		}
	}

	return md, nil
}

// pdfPageSize returns the dimensions, in points, of the first MediaBox.
// Documents without one fall back to US Letter.
func pdfPageSize(data []byte) (width, height float64) {
	match := pdfMediaBoxRe.FindSubmatch(data)
	if match == nil {
		return 612, 792
	}
	llx, _ := strconv.ParseFloat(string(match[1]), 64)
	lly, _ := strconv.ParseFloat(string(match[2]), 64)
	urx, _ := strconv.ParseFloat(string(match[3]), 64)
	ury, _ := strconv.ParseFloat(string(match[4]), 64)
	width = urx - llx
	height = ury - lly
	if width <= 0 || height <= 0 {
		return 612, 792
	}
	return width, height
}

// vectorDPIBand estimates effective print resolution from page area in pt².
func vectorDPIBand(areaPt2 float64) uint32 {
	switch {
	case areaPt2 > 1_000_000:
		return 300
	case areaPt2 > 500_000:
		return 200
	default:
		return 150
	}
}

func pdfColorSpace(data []byte) artifact.ColorSpace {
	switch {
	case bytes.Contains(data, []byte("/DeviceCMYK")), bytes.Contains(data, []byte("/Separation")):
		return artifact.ColorCMYK
	case bytes.Contains(data, []byte("/DeviceRGB")), bytes.Contains(data, []byte("/CalRGB")):
		return artifact.ColorRGB
	default:
		return artifact.ColorUnknown
	}
}

// pdfHasTransparency reports whether the document uses alpha compositing:
// a soft mask other than /None, or an ExtGState alpha below 1.
func pdfHasTransparency(data []byte) bool {
	for _, idx := range indexAll(data, []byte("/SMask")) {
		rest := data[idx+len("/SMask"):]
		rest = bytes.TrimLeft(rest, " \t\r\n")
		if !bytes.HasPrefix(rest, []byte("/None")) {
			return true
		}
	}
	for _, match := range pdfAlphaRe.FindAllSubmatch(data, -1) {
		if alpha, err := strconv.ParseFloat(string(match[1]), 64); err == nil && alpha < 1 {
			return true
		}
	}
	return false
}

// pdfUnembeddedFonts collects font names whose descriptor carries no
// embedded font program, plus base fonts that have no descriptor at all.
func pdfUnembeddedFonts(data []byte) []string {
	var fonts []string
	for _, body := range pdfObjectBodies(data) {
		switch {
		case bytes.Contains(body, []byte("/FontName")):
			// Font descriptor: embedded when any /FontFile variant is present.
			if bytes.Contains(body, []byte("/FontFile")) {
				continue
			}
			if match := pdfFontNameRe.FindSubmatch(body); match != nil {
				fonts = append(fonts, stripSubsetTag(string(match[1])))
			}
		case bytes.Contains(body, []byte("/BaseFont")) && !bytes.Contains(body, []byte("/FontDescriptor")):
			// Fonts without a descriptor (the base-14 set) are never embedded.
			if match := pdfBaseFontRe.FindSubmatch(body); match != nil {
				fonts = append(fonts, stripSubsetTag(string(match[1])))
			}
		}
	}
	return fonts
}

func stripSubsetTag(name string) string {
	return pdfSubsetTagRe.ReplaceAllString(name, "")
}

// pdfObjectBodies yields the byte span of each "N G obj ... endobj" block.
func pdfObjectBodies(data []byte) [][]byte {
	var bodies [][]byte
	locs := pdfObjectRe.FindAllIndex(data, -1)
	for _, loc := range locs {
		rest := data[loc[1]:]
		end := bytes.Index(rest, []byte("endobj"))
		if end < 0 {
			end = len(rest)
		}
		bodies = append(bodies, rest[:end])
	}
	return bodies
}

// pdfContentStreams returns up to limit decoded stream bodies in document
// order. FlateDecode streams are inflated; other filters and corrupt
// streams fall back to the raw bytes.
func pdfContentStreams(data []byte, limit int) [][]byte {
	var streams [][]byte
	rest := data
	for len(streams) < limit {
		idx := bytes.Index(rest, []byte("stream"))
		if idx < 0 {
			break
		}
		dict := rest[:idx]
		if dictStart := bytes.LastIndex(dict, []byte("<<")); dictStart >= 0 {
			dict = dict[dictStart:]
		}
		body := rest[idx+len("stream"):]
		body = bytes.TrimPrefix(body, []byte("\r\n"))
		body = bytes.TrimPrefix(body, []byte("\n"))
		end := bytes.Index(body, []byte("endstream"))
		if end < 0 {
			break
		}
		stream := body[:end]
		if bytes.Contains(dict, []byte("/FlateDecode")) {
			if inflated, err := inflate(stream); err == nil {
				stream = inflated
			}
		}
		streams = append(streams, stream)
		rest = body[end+len("endstream"):]
	}
	return streams
}

func inflate(data []byte) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

// contentHasThinLines tokenizes a content stream and reports whether any
// explicit line-width operator sets a width below thinLineWidthPt.
func contentHasThinLines(stream []byte) bool {
	fields := strings.Fields(string(stream))
	for i, field := range fields {
		if field != "w" || i == 0 {
			continue
		}
		width, err := strconv.ParseFloat(fields[i-1], 64)
		if err != nil {
			continue
		}
		if width < thinLineWidthPt {
			return true
		}
	}
	return false
}

func indexAll(data, sep []byte) []int {
	var out []int
	offset := 0
	for {
		idx := bytes.Index(data[offset:], sep)
		if idx < 0 {
			return out
		}
		out = append(out, offset+idx)
		offset += idx + len(sep)
	}
}
