// Package pipeline implements the per-document stages of a documentation
// build.
//
// This package handles:
//   - Markdown preprocessing (BOM and line-ending normalization)
//   - Parsing via goldmark with GFM, footnotes and the lightbox directive
//   - Rendering a parsed document as HTML, LaTeX or plain text
//   - Heading extraction and numbered tables of contents
//   - Page and LaTeX document templating
//
// Discovery, image publishing and writing output trees are handled by the
// site package. This separation keeps the pipeline focused on one
// document at a time.
package pipeline
