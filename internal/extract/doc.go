// Package extract turns raw artifact bytes plus a declared type into the
// normalized artifact.Metadata record the rest of the pipeline consumes.
//
// PDF and PDF-compatible Illustrator files are scanned with a lightweight
// object walker that inspects the first few pages' content streams for
// line-width and transparency signals and checks font descriptors for
// embedded font programs. Raster formats rely on image.DecodeConfig for
// intrinsic dimensions. Extraction is best-effort: low-quality input is
// reported through metadata flags, and only bytes that cannot be parsed at
// all yield ErrUnsupportedFormat.
package extract
