// Package lightbox adds a click-to-enlarge image directive to goldmark.
//
// # Quick Start
//
// Register the extension and parse each document with its own Environment:
//
//	md := goldmark.New(goldmark.WithExtensions(
//	    lightbox.New(lightbox.WithFormat(lightbox.FormatHTML)),
//	))
//
//	env := lightbox.NewEnvironment("guide/install", "/path/to/docs")
//	doc := md.Parser().Parse(text.NewReader(src), parser.WithContext(lightbox.NewContext(env)))
//	err := md.Renderer().Render(w, src, doc)
//
// The stylesheet and script the HTML output depends on are available from
// StaticAssets and must be published next to the rendered pages.
//
// # Directive
//
// A fenced block whose info string starts with "{lightbox}" is a directive.
// The rest of the info string is the image path; the body holds options:
//
//	```{lightbox} images/diagram.png
//	:alt: Server diagram
//	:caption: Figure 1
//	:percentage: 50 90
//	:class: with-border
//	```
//
// The first percentage sizes the thumbnail relative to its container, the
// second sizes the enlarged image relative to the viewport (and the LaTeX
// figure relative to \linewidth). Defaults are 100 and 95.
//
// # Processing
//
// The AST transformer runs the directive during parsing:
//
//  1. Remote http(s) paths become a plain image node.
//  2. Local paths are resolved against the document's directory (or the
//     source root for a leading "/") and must name an existing file inside
//     the source root.
//  3. The image header is probed for its aspect ratio.
//  4. A Container holding a Trigger, an Overlay and a Collector replaces
//     the fenced block, and the image is recorded on the Environment.
//
// Problems are reported as Diagnostics of type "lightbox" and never stop
// the parse. A directive that fails validation is removed from the tree.
//
// # Output Formats
//
// NewNodeRenderer returns the renderer for one Format. HTML renders a
// checkbox-toggle overlay, LaTeX a static figure, and every other format
// nothing at all.
package lightbox
