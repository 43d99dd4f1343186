// Package testsupport provides shared fixtures for prepress tests:
// synthetic PDF and PNG artifacts and prebuilt metadata snapshots.
package testsupport

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"prepress/internal/artifact"
)

// PDFOption customizes a synthetic PDF document.
type PDFOption func(*pdfBuilder)

type pdfBuilder struct {
	pages      int
	mediaBox   [4]float64
	content    string
	colorSpace string
	fonts      []pdfFont
	softMask   bool
}

type pdfFont struct {
	name     string
	embedded bool
}

// WithPages sets the page count.
func WithPages(n int) PDFOption {
	return func(b *pdfBuilder) { b.pages = n }
}

// WithMediaBox sets the page MediaBox in points.
func WithMediaBox(llx, lly, urx, ury float64) PDFOption {
	return func(b *pdfBuilder) { b.mediaBox = [4]float64{llx, lly, urx, ury} }
}

// WithContent sets the page content stream body.
func WithContent(content string) PDFOption {
	return func(b *pdfBuilder) { b.content = content }
}

// WithDeviceCMYK marks the document as CMYK.
func WithDeviceCMYK() PDFOption {
	return func(b *pdfBuilder) { b.colorSpace = "/DeviceCMYK" }
}

// WithDeviceRGB marks the document as RGB.
func WithDeviceRGB() PDFOption {
	return func(b *pdfBuilder) { b.colorSpace = "/DeviceRGB" }
}

// WithFont adds a font descriptor, embedded or not.
func WithFont(name string, embedded bool) PDFOption {
	return func(b *pdfBuilder) { b.fonts = append(b.fonts, pdfFont{name: name, embedded: embedded}) }
}

// WithSoftMask adds an ExtGState soft mask, signalling transparency.
func WithSoftMask() PDFOption {
	return func(b *pdfBuilder) { b.softMask = true }
}

// PDF builds a minimal synthetic PDF exercising the metadata scanner. The
// output is not a spec-complete document, but it carries real object
// syntax: page objects, a MediaBox, uncompressed content streams, font
// descriptors, and optional graphics state dictionaries.
func PDF(t testing.TB, opts ...PDFOption) []byte {
	t.Helper()

	builder := &pdfBuilder{
		pages:    1,
		mediaBox: [4]float64{0, 0, 612, 792},
		content:  "1 w 0 0 m 100 100 l S",
	}
	for _, opt := range opts {
		opt(builder)
	}
	if builder.pages < 1 {
		builder.pages = 1
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n")
	buf.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	buf.WriteString(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Count %d >>\nendobj\n", builder.pages))

	object := 3
	for page := 0; page < builder.pages; page++ {
		buf.WriteString(fmt.Sprintf(
			"%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [%g %g %g %g] /Contents %d 0 R >>\nendobj\n",
			object, builder.mediaBox[0], builder.mediaBox[1], builder.mediaBox[2], builder.mediaBox[3], object+1))
		object++

		content := builder.content
		if builder.colorSpace != "" {
			content = builder.colorSpace + " cs " + content
		}
		buf.WriteString(fmt.Sprintf(
			"%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
			object, len(content), content))
		object++
	}

	for _, font := range builder.fonts {
		embed := ""
		if font.embedded {
			embed = fmt.Sprintf(" /FontFile2 %d 0 R", object+1)
		}
		buf.WriteString(fmt.Sprintf(
			"%d 0 obj\n<< /Type /FontDescriptor /FontName /%s%s >>\nendobj\n",
			object, font.name, embed))
		object += 2
	}

	if builder.softMask {
		buf.WriteString(fmt.Sprintf(
			"%d 0 obj\n<< /Type /ExtGState /SMask << /S /Luminosity >> >>\nendobj\n", object))
		object++
	}

	buf.WriteString("trailer\n<< /Root 1 0 R >>\n%%EOF\n")
	return buf.Bytes()
}

// PNG encodes a white image of the given pixel dimensions.
func PNG(t testing.TB, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// SVG builds a minimal SVG document with the given width/height attributes
// and extra body markup.
func SVG(t testing.TB, width, height, body string) []byte {
	t.Helper()

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sb.WriteString("\n<svg xmlns=\"http://www.w3.org/2000/svg\"")
	if width != "" {
		sb.WriteString(fmt.Sprintf(" width=%q", width))
	}
	if height != "" {
		sb.WriteString(fmt.Sprintf(" height=%q", height))
	}
	sb.WriteString(">")
	sb.WriteString(body)
	sb.WriteString("</svg>\n")
	return []byte(sb.String())
}

// CleanMetadata returns print-ready PDF metadata that triggers no
// detection rules: CMYK, 300 DPI, letter size, everything embedded.
func CleanMetadata() artifact.Metadata {
	return artifact.Metadata{
		Format:     artifact.FormatPDF,
		ByteSize:   1 << 20,
		Width:      612,
		Height:     792,
		DPI:        300,
		DPISource:  artifact.DPIEstimated,
		ColorSpace: artifact.ColorCMYK,
		PageCount:  1,
	}
}
