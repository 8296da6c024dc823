// Package site builds a documentation tree from a directory of Markdown
// sources.
//
// A build runs in two phases. The read phase discovers documents, parses
// them in parallel with one lightbox.Environment each, and records every
// local image they reference. The write phase assigns published image names
// in sorted order and writes each requested format:
//
//	html/        one page per document, _static/ and _images/
//	singlehtml/  index.html with every document merged
//	latex/       <project>.tex with images beside it
//	text/        one .txt per document
//
// Static files (lightbox.css, lightbox.js, the page style and the code
// highlighting stylesheet) are published to every HTML build.
package site
