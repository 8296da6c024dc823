package lightbox

import (
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
)

// ImageReference is an image path before and after resolution.
type ImageReference struct {
	RawPath string
	// ResolvedPath is source-relative and slash separated.
	ResolvedPath string
	AltText      string
}

// CheckboxID returns the id shared by a lightbox's checkbox and labels.
// Document names that do not map losslessly onto "/"-to-"-" replacement get
// a "_<fnv32a>" suffix so ids stay unique when documents are merged into one
// page. Plain slugs never contain "_", so a suffixed id cannot equal one.
func CheckboxID(docName string, serial int) string {
	slug := strings.ReplaceAll(docName, "/", "-")
	if !plainDocName(docName) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(docName))
		slug = fmt.Sprintf("%s_%08x", slug, h.Sum32())
	}
	return "lightbox-" + slug + "-" + strconv.Itoa(serial)
}

func plainDocName(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '/':
		default:
			return false
		}
	}
	return true
}

// Build assembles the composite for a resolved image and records the image
// as a dependency of the environment's document.
func Build(env *Environment, ref ImageReference, opts Options, layout Layout, line int) *Container {
	env.addFile(ref.ResolvedPath)
	id := CheckboxID(env.DocName, env.NewSerial(SerialCategory))

	container := &Container{
		URI:        ref.ResolvedPath,
		Caption:    opts.Caption,
		LaTeXWidth: layout.LaTeXWidth(),
		DocName:    env.DocName,
		Line:       line,
	}
	container.AppendChild(container, &Trigger{
		URI:            ref.ResolvedPath,
		Alt:            ref.AltText,
		ThumbnailWidth: layout.ThumbnailWidth(),
		Class:          opts.Class,
		CheckboxID:     id,
	})
	container.AppendChild(container, &Overlay{
		URI:        ref.ResolvedPath,
		Alt:        ref.AltText,
		Caption:    opts.Caption,
		SizeStyle:  layout.OverlaySizeStyle(),
		Class:      opts.Class,
		CheckboxID: id,
	})

	collector := &Collector{}
	collector.AppendChild(collector, newImage("/"+ref.ResolvedPath, ref.AltText))
	container.AppendChild(container, collector)

	return container
}

// Run executes a parsed directive against env. It returns the node that
// replaces the directive, or nil when the directive produces nothing.
// Problems are reported through env and never returned.
func Run(env *Environment, d Directive, prober Prober) ast.Node {
	raw := strings.TrimSpace(d.Argument)
	alt := d.Options.Alt

	if IsRemote(raw) {
		return newImage(raw, alt)
	}

	resolved, err := ResolveImagePath(raw, env.DocName, env.SourceDir)
	if err != nil {
		diag := Diagnostic{Line: d.Line, Err: err, Severity: SeverityWarning}
		switch {
		case errors.Is(err, ErrPathTraversal):
			diag.Subtype = SubtypePathTraversal
			diag.Message = "image path traverses outside source directory: " + raw
		default:
			diag.Subtype = SubtypeImageNotFound
			diag.Message = "image not found: " + raw
		}
		env.report(diag)
		return nil
	}

	ratio := DefaultAspectRatio
	if prober != nil {
		size, err := prober.Size(env.SourcePath(resolved))
		if err == nil {
			ratio, err = size.AspectRatio()
		}
		if err != nil {
			ratio = DefaultAspectRatio
			env.report(Diagnostic{
				Subtype:  SubtypeImageDimensions,
				Severity: SeverityWarning,
				Line:     d.Line,
				Err:      err,
				Message: fmt.Sprintf("could not calculate image dimensions for %q: %v; falling back to 1:1 aspect ratio",
					raw, err),
			})
		}
	}

	ref := ImageReference{RawPath: raw, ResolvedPath: resolved, AltText: alt}
	return Build(env, ref, d.Options, NewLayout(d.Options.Percentage, ratio), d.Line)
}

func newImage(destination, alt string) *ast.Image {
	link := ast.NewLink()
	link.Destination = []byte(destination)
	img := ast.NewImage(link)
	if alt != "" {
		img.AppendChild(img, ast.NewString([]byte(alt)))
	}
	return img
}
