package extract

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"prepress/internal/artifact"
	"prepress/internal/logging"
)

// ErrUnsupportedFormat marks bytes that cannot be parsed as any supported
// design format. Low-quality but parseable input never produces this error.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Options configures an Extractor.
type Options struct {
	// MaxPDFPages caps how many page content streams the PDF scanner
	// inspects. Zero means the default of 5.
	MaxPDFPages int
	Logger      *slog.Logger
}

// Extractor produces artifact.Metadata from raw uploaded bytes.
type Extractor struct {
	maxPDFPages int
	logger      *slog.Logger
}

// New constructs an Extractor.
func New(opts Options) *Extractor {
	pages := opts.MaxPDFPages
	if pages <= 0 {
		pages = 5
	}
	return &Extractor{
		maxPDFPages: pages,
		logger:      logging.NewComponentLogger(opts.Logger, "extract"),
	}
}

// Extract parses the artifact bytes and returns the normalized metadata
// snapshot. The declared MIME type and filename guide format resolution but
// the byte content has the final say.
func (e *Extractor) Extract(data []byte, declaredMIME, filename string) (artifact.Metadata, error) {
	if len(data) == 0 {
		return artifact.Metadata{}, fmt.Errorf("%w: empty input", ErrUnsupportedFormat)
	}

	format := resolveFormat(data, declaredMIME, filename)

	var (
		md  artifact.Metadata
		err error
	)
	switch format {
	case artifact.FormatPDF, artifact.FormatAI:
		md, err = e.extractPDF(data, format)
	case artifact.FormatPNG, artifact.FormatJPEG, artifact.FormatTIFF:
		md, err = extractRaster(data, format)
	case artifact.FormatSVG:
		md, err = extractSVG(data)
	case artifact.FormatEPS:
		md, err = extractEPS(data)
	default:
		err = fmt.Errorf("%w: unrecognized content", ErrUnsupportedFormat)
	}
	if err != nil {
		return artifact.Metadata{}, err
	}

	md.ByteSize = uint64(len(data))
	if md.PageCount == 0 {
		md.PageCount = 1
	}

	e.logger.Debug("extracted metadata",
		logging.String(logging.FieldFilename, filename),
		logging.String(logging.FieldFormat, string(md.Format)),
		logging.Float64("width", md.Width),
		logging.Float64("height", md.Height),
		logging.Int("dpi", int(md.DPI)),
		logging.String("color_space", string(md.ColorSpace)),
	)
	return md, nil
}

// resolveFormat picks the format from content sniffing first, then the
// declared MIME type, then the filename extension. Sniffing wins so a
// mislabelled upload is still parsed with the right scanner.
func resolveFormat(data []byte, declaredMIME, filename string) artifact.Format {
	if format, ok := sniffFormat(data); ok {
		// Illustrator files are PDF-compatible; let the extension
		// distinguish them from plain PDFs.
		if format == artifact.FormatPDF && strings.EqualFold(filepath.Ext(filename), ".ai") {
			return artifact.FormatAI
		}
		return format
	}
	if format, ok := formatFromMIME(declaredMIME); ok {
		return format
	}
	if format, ok := artifact.ParseFormat(filepath.Ext(filename)); ok {
		return format
	}
	return artifact.FormatUnknown
}

func formatFromMIME(declared string) (artifact.Format, bool) {
	mediaType := declared
	if parsed, _, err := mime.ParseMediaType(declared); err == nil {
		mediaType = parsed
	}
	switch strings.ToLower(strings.TrimSpace(mediaType)) {
	case "application/pdf", "application/x-pdf":
		return artifact.FormatPDF, true
	case "image/png":
		return artifact.FormatPNG, true
	case "image/jpeg", "image/jpg":
		return artifact.FormatJPEG, true
	case "image/tiff", "image/tif":
		return artifact.FormatTIFF, true
	case "image/svg+xml":
		return artifact.FormatSVG, true
	case "application/postscript":
		return artifact.FormatEPS, true
	case "application/illustrator", "application/vnd.adobe.illustrator":
		return artifact.FormatAI, true
	default:
		return artifact.FormatUnknown, false
	}
}

var (
	magicPDF  = []byte("%PDF-")
	magicPNG  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	magicJPEG = []byte{0xFF, 0xD8, 0xFF}
	magicTIFF = [][]byte{{'I', 'I', 0x2A, 0x00}, {'M', 'M', 0x00, 0x2A}}
	magicEPS  = []byte("%!PS")
)

func sniffFormat(data []byte) (artifact.Format, bool) {
	switch {
	case bytes.HasPrefix(data, magicPDF):
		return artifact.FormatPDF, true
	case bytes.HasPrefix(data, magicPNG):
		return artifact.FormatPNG, true
	case bytes.HasPrefix(data, magicJPEG):
		return artifact.FormatJPEG, true
	case bytes.HasPrefix(data, magicTIFF[0]), bytes.HasPrefix(data, magicTIFF[1]):
		return artifact.FormatTIFF, true
	case bytes.HasPrefix(data, magicEPS):
		return artifact.FormatEPS, true
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	if bytes.Contains(head, []byte("<svg")) {
		return artifact.FormatSVG, true
	}
	return artifact.FormatUnknown, false
}
