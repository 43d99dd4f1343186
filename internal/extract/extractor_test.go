package extract

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"prepress/internal/artifact"
	"prepress/internal/testsupport"
)

func newTestExtractor() *Extractor {
	return New(Options{})
}

func TestExtractEmptyInput(t *testing.T) {
	_, err := newTestExtractor().Extract(nil, "", "")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestExtractUnrecognizedContent(t *testing.T) {
	_, err := newTestExtractor().Extract([]byte("just some text"), "", "notes.txt")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestExtractPDFBasics(t *testing.T) {
	data := testsupport.PDF(t, testsupport.WithPages(3), testsupport.WithDeviceCMYK())
	md, err := newTestExtractor().Extract(data, "application/pdf", "brochure.pdf")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if md.Format != artifact.FormatPDF {
		t.Errorf("format = %v", md.Format)
	}
	if md.PageCount != 3 {
		t.Errorf("page count = %d, want 3", md.PageCount)
	}
	if md.Width != 612 || md.Height != 792 {
		t.Errorf("dimensions = %g × %g, want 612 × 792", md.Width, md.Height)
	}
	if md.ColorSpace != artifact.ColorCMYK {
		t.Errorf("color space = %v, want cmyk", md.ColorSpace)
	}
	if md.DPI != 150 {
		t.Errorf("DPI = %d, want 150 for letter-size area", md.DPI)
	}
	if md.DPISource != artifact.DPIEstimated {
		t.Errorf("DPI source = %v, want estimated", md.DPISource)
	}
	if md.ByteSize != uint64(len(data)) {
		t.Errorf("byte size = %d, want %d", md.ByteSize, len(data))
	}
	if md.HasTransparency || md.HasThinLines || len(md.UnembeddedFonts) != 0 {
		t.Errorf("clean document reported defects: %+v", md)
	}
}

func TestExtractPDFDefects(t *testing.T) {
	data := testsupport.PDF(t,
		testsupport.WithDeviceRGB(),
		testsupport.WithContent("0.1 w 0 0 m 100 100 l S"),
		testsupport.WithFont("Helvetica", false),
		testsupport.WithFont("CustomSans", true),
		testsupport.WithSoftMask(),
	)
	md, err := newTestExtractor().Extract(data, "application/pdf", "flyer.pdf")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if md.ColorSpace != artifact.ColorRGB {
		t.Errorf("color space = %v, want rgb", md.ColorSpace)
	}
	if !md.HasThinLines {
		t.Error("0.1 pt stroke not reported as thin line")
	}
	if !md.HasTransparency {
		t.Error("soft mask not reported as transparency")
	}
	want := []string{"Helvetica"}
	if len(md.UnembeddedFonts) != 1 || md.UnembeddedFonts[0] != want[0] {
		t.Errorf("unembedded fonts = %v, want %v", md.UnembeddedFonts, want)
	}
}

func TestExtractPDFSubsetTagStripped(t *testing.T) {
	data := testsupport.PDF(t, testsupport.WithFont("ABCDEF+Garamond", false))
	md, err := newTestExtractor().Extract(data, "", "a.pdf")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(md.UnembeddedFonts) != 1 || md.UnembeddedFonts[0] != "Garamond" {
		t.Errorf("unembedded fonts = %v, want [Garamond]", md.UnembeddedFonts)
	}
}

func TestExtractIllustratorByExtension(t *testing.T) {
	data := testsupport.PDF(t)
	md, err := newTestExtractor().Extract(data, "", "logo.ai")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if md.Format != artifact.FormatAI {
		t.Errorf("format = %v, want ai", md.Format)
	}
}

func TestExtractPNG(t *testing.T) {
	data := testsupport.PNG(t, 100, 100)
	md, err := newTestExtractor().Extract(data, "image/png", "art.png")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if md.Format != artifact.FormatPNG {
		t.Errorf("format = %v", md.Format)
	}
	if md.Width != 100 || md.Height != 100 {
		t.Errorf("dimensions = %g × %g", md.Width, md.Height)
	}
	if md.DPI != 72 {
		t.Errorf("DPI = %d, want 72 for small pixel area", md.DPI)
	}
	if md.ColorSpace != artifact.ColorRGB {
		t.Errorf("color space = %v, want rgb", md.ColorSpace)
	}
}

func TestExtractPNGResolutionTag(t *testing.T) {
	// 11811 pixels/meter is 300 DPI.
	data := withPhysChunk(testsupport.PNG(t, 50, 50), 11811, 1)
	md, err := newTestExtractor().Extract(data, "image/png", "tagged.png")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if md.DPI != 300 {
		t.Errorf("DPI = %d, want 300 from pHYs", md.DPI)
	}
	if md.DPISource != artifact.DPIExtracted {
		t.Errorf("DPI source = %v, want extracted", md.DPISource)
	}
}

func TestPNGResolutionIgnoresAspectRatioUnit(t *testing.T) {
	data := withPhysChunk(testsupport.PNG(t, 50, 50), 11811, 0)
	if _, ok := pngResolution(data); ok {
		t.Error("pHYs with unit 0 has no physical meaning, should be ignored")
	}
}

func TestExtractSVG(t *testing.T) {
	data := testsupport.SVG(t, "8.5in", "11in",
		`<rect width="10" height="10" fill-opacity="0.5" stroke-width="0.1"/>`)
	md, err := newTestExtractor().Extract(data, "image/svg+xml", "shape.svg")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if md.Format != artifact.FormatSVG {
		t.Errorf("format = %v", md.Format)
	}
	if md.Width != 612 || md.Height != 792 {
		t.Errorf("dimensions = %g × %g, want 612 × 792", md.Width, md.Height)
	}
	if !md.HasTransparency {
		t.Error("opacity below 1 not reported")
	}
	if !md.HasThinLines {
		t.Error("hairline stroke not reported")
	}
	if md.ColorSpace != artifact.ColorRGB {
		t.Errorf("color space = %v, SVG is always RGB", md.ColorSpace)
	}
}

func TestExtractSVGViewBoxFallback(t *testing.T) {
	data := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 960 960"></svg>`)
	md, err := newTestExtractor().Extract(data, "", "square.svg")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if md.Width != 720 || md.Height != 720 {
		t.Errorf("dimensions = %g × %g, want 720 × 720 (96px per inch)", md.Width, md.Height)
	}
}

func TestExtractEPS(t *testing.T) {
	data := []byte("%!PS-Adobe-3.0 EPSF-3.0\n%%BoundingBox: 0 0 612 792\n0 0 0 1 setcmykcolor\n")
	md, err := newTestExtractor().Extract(data, "", "press.eps")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if md.Format != artifact.FormatEPS {
		t.Errorf("format = %v", md.Format)
	}
	if md.Width != 612 || md.Height != 792 {
		t.Errorf("dimensions = %g × %g", md.Width, md.Height)
	}
	if md.ColorSpace != artifact.ColorCMYK {
		t.Errorf("color space = %v, want cmyk", md.ColorSpace)
	}
}

func TestExtractEPSMissingBoundingBox(t *testing.T) {
	_, err := newTestExtractor().Extract([]byte("%!PS-Adobe-3.0\nshowpage\n"), "", "bad.eps")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestResolveFormatSniffingWins(t *testing.T) {
	pdf := testsupport.PDF(t)
	// Declared MIME and extension both lie; the magic bytes win.
	if got := resolveFormat(pdf, "image/png", "mislabelled.png"); got != artifact.FormatPDF {
		t.Errorf("resolveFormat = %v, want pdf", got)
	}
}

func TestResolveFormatMIMEFallback(t *testing.T) {
	cases := []struct {
		mime string
		want artifact.Format
	}{
		{"application/pdf", artifact.FormatPDF},
		{"image/svg+xml; charset=utf-8", artifact.FormatSVG},
		{"application/postscript", artifact.FormatEPS},
		{"application/illustrator", artifact.FormatAI},
	}
	unsniffable := []byte("no magic bytes here")
	for _, tc := range cases {
		if got := resolveFormat(unsniffable, tc.mime, ""); got != tc.want {
			t.Errorf("resolveFormat(%q) = %v, want %v", tc.mime, got, tc.want)
		}
	}
}

func TestResolveFormatExtensionFallback(t *testing.T) {
	unsniffable := []byte("no magic bytes here")
	if got := resolveFormat(unsniffable, "", "design.TIFF"); got != artifact.FormatTIFF {
		t.Errorf("resolveFormat = %v, want tiff", got)
	}
	if got := resolveFormat(unsniffable, "", "design.xyz"); got != artifact.FormatUnknown {
		t.Errorf("resolveFormat = %v, want unknown", got)
	}
}

func TestVectorDPIBand(t *testing.T) {
	cases := []struct {
		area float64
		want uint32
	}{
		{1_000_001, 300},
		{1_000_000, 200},
		{500_001, 200},
		{500_000, 150},
		{100, 150},
	}
	for _, tc := range cases {
		if got := vectorDPIBand(tc.area); got != tc.want {
			t.Errorf("vectorDPIBand(%g) = %d, want %d", tc.area, got, tc.want)
		}
	}
}

func TestRasterDPIBand(t *testing.T) {
	cases := []struct {
		area float64
		want uint32
	}{
		{8_000_001, 300},
		{8_000_000, 200},
		{3_000_001, 200},
		{3_000_000, 150},
		{1_000_001, 150},
		{1_000_000, 72},
	}
	for _, tc := range cases {
		if got := rasterDPIBand(tc.area); got != tc.want {
			t.Errorf("rasterDPIBand(%g) = %d, want %d", tc.area, got, tc.want)
		}
	}
}

func TestSVGLengthToPoints(t *testing.T) {
	cases := []struct {
		value string
		want  float64
	}{
		{"72pt", 72},
		{"1in", 72},
		{"96px", 72},
		{"96", 72},
		{"25.4mm", 72},
		{"2.54cm", 72},
		{"6pc", 72},
		{"", 0},
		{"abc", 0},
		{"-5", 0},
	}
	for _, tc := range cases {
		got := svgLengthToPoints(tc.value)
		if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("svgLengthToPoints(%q) = %g, want %g", tc.value, got, tc.want)
		}
	}
}

func TestContentHasThinLines(t *testing.T) {
	cases := []struct {
		name   string
		stream string
		want   bool
	}{
		{"thin stroke", "0.1 w 0 0 m 10 10 l S", true},
		{"exact threshold", "0.25 w 0 0 m 10 10 l S", false},
		{"normal stroke", "1 w 0 0 m 10 10 l S", false},
		{"no width operator", "0 0 m 10 10 l S", false},
		{"w without operand", "w 0 0 m", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := contentHasThinLines([]byte(tc.stream)); got != tc.want {
				t.Fatalf("contentHasThinLines = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPDFContentStreamsFlateDecode(t *testing.T) {
	var compressed bytes.Buffer
	writer := zlib.NewWriter(&compressed)
	if _, err := writer.Write([]byte("0.1 w 0 0 m 10 10 l S")); err != nil {
		t.Fatalf("compress: %v", err)
	}
	writer.Close()

	var doc bytes.Buffer
	doc.WriteString("%PDF-1.7\n1 0 obj\n<< /Type /Page >>\nendobj\n")
	fmt.Fprintf(&doc, "2 0 obj\n<< /Length %d /Filter /FlateDecode >>\nstream\n", compressed.Len())
	doc.Write(compressed.Bytes())
	doc.WriteString("\nendstream\nendobj\n%%EOF\n")

	streams := pdfContentStreams(doc.Bytes(), 5)
	if len(streams) != 1 {
		t.Fatalf("stream count = %d, want 1", len(streams))
	}
	if !contentHasThinLines(streams[0]) {
		t.Error("inflated stream lost its thin-line operator")
	}
}

func TestPDFTransparencyNoneSoftMask(t *testing.T) {
	data := []byte("%PDF-1.7\n1 0 obj\n<< /Type /ExtGState /SMask /None >>\nendobj\n")
	if pdfHasTransparency(data) {
		t.Error("/SMask /None is opaque, should not report transparency")
	}
	data = []byte("%PDF-1.7\n1 0 obj\n<< /Type /ExtGState /ca 0.5 >>\nendobj\n")
	if !pdfHasTransparency(data) {
		t.Error("constant alpha below 1 should report transparency")
	}
}

func TestPDFPageSizeFallback(t *testing.T) {
	width, height := pdfPageSize([]byte("%PDF-1.7\nno mediabox here\n"))
	if width != 612 || height != 792 {
		t.Errorf("fallback size = %g × %g, want US Letter", width, height)
	}
}

// withPhysChunk splices a pHYs chunk right after IHDR. The chunk CRC is left
// zeroed; the resolution reader does not verify it.
func withPhysChunk(data []byte, ppm uint32, unit byte) []byte {
	const ihdrEnd = 8 + 4 + 4 + 13 + 4
	chunk := make([]byte, 12+9)
	binary.BigEndian.PutUint32(chunk[0:], 9)
	copy(chunk[4:], "pHYs")
	binary.BigEndian.PutUint32(chunk[8:], ppm)
	binary.BigEndian.PutUint32(chunk[12:], ppm)
	chunk[16] = unit

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, data[:ihdrEnd]...)
	out = append(out, chunk...)
	out = append(out, data[ihdrEnd:]...)
	return out
}
