package artifact

import (
	"reflect"
	"testing"
)

func TestParseFormat(t *testing.T) {
	cases := []struct {
		input  string
		want   Format
		wantOK bool
	}{
		{"pdf", FormatPDF, true},
		{".pdf", FormatPDF, true},
		{"PDF", FormatPDF, true},
		{".JPG", FormatJPEG, true},
		{"jpeg", FormatJPEG, true},
		{"tif", FormatTIFF, true},
		{".tiff", FormatTIFF, true},
		{"ai", FormatAI, true},
		{"eps", FormatEPS, true},
		{"svg", FormatSVG, true},
		{"png", FormatPNG, true},
		{"docx", FormatUnknown, false},
		{"", FormatUnknown, false},
	}
	for _, tc := range cases {
		got, ok := ParseFormat(tc.input)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("ParseFormat(%q) = (%v, %v), want (%v, %v)", tc.input, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestFormatVector(t *testing.T) {
	for _, format := range []Format{FormatPDF, FormatSVG, FormatEPS, FormatAI} {
		if !format.Vector() {
			t.Errorf("%v should be vector", format)
		}
	}
	for _, format := range []Format{FormatPNG, FormatJPEG, FormatTIFF, FormatUnknown} {
		if format.Vector() {
			t.Errorf("%v should not be vector", format)
		}
	}
}

func TestNormalizeFonts(t *testing.T) {
	got := NormalizeFonts([]string{"Helvetica", "  ", "Arial", "Helvetica", "Arial-Bold"})
	want := []string{"Arial", "Arial-Bold", "Helvetica"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeFonts = %v, want %v", got, want)
	}

	if NormalizeFonts(nil) != nil {
		t.Error("expected nil for empty input")
	}
	if NormalizeFonts([]string{"", "  "}) != nil {
		t.Error("expected nil when all entries are blank")
	}
}

func TestPointDimensions(t *testing.T) {
	vector := Metadata{Format: FormatPDF, Width: 612, Height: 792, DPI: 300}
	if w, h := vector.PointDimensions(); w != 612 || h != 792 {
		t.Errorf("vector dimensions changed: %g × %g", w, h)
	}

	raster := Metadata{Format: FormatPNG, Width: 1275, Height: 1650, DPI: 150}
	w, h := raster.PointDimensions()
	if w != 612 || h != 792 {
		t.Errorf("raster at 150 DPI: got %g × %g, want 612 × 792", w, h)
	}
}

func TestStandardSize(t *testing.T) {
	cases := []struct {
		name    string
		width   float64
		height  float64
		matched string
		ok      bool
	}{
		{"letter exact", 612, 792, "letter", true},
		{"letter within tolerance", 620, 800, "letter", true},
		{"letter outside tolerance", 623, 792, "", false},
		{"letter landscape", 792, 612, "letter landscape", true},
		{"legal", 612, 1008, "legal", true},
		{"tabloid", 792, 1224, "tabloid", true},
		{"folio", 612, 936, "folio", true},
		{"square", 500, 500, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			matched, ok := StandardSize(tc.width, tc.height)
			if matched != tc.matched || ok != tc.ok {
				t.Fatalf("StandardSize(%g, %g) = (%q, %v), want (%q, %v)",
					tc.width, tc.height, matched, ok, tc.matched, tc.ok)
			}
		})
	}
}

func TestUnknownMetadata(t *testing.T) {
	md := Unknown(512)
	if md.Format != FormatUnknown {
		t.Errorf("format = %v", md.Format)
	}
	if md.ByteSize != 512 {
		t.Errorf("byte size = %d", md.ByteSize)
	}
	if md.DPI != 0 {
		t.Errorf("degraded metadata should carry no DPI, got %d", md.DPI)
	}
	if md.PageCount != 1 {
		t.Errorf("page count = %d", md.PageCount)
	}
}
