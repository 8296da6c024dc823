package site

import (
	"context"
	"fmt"
	htmltemplate "html/template"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"

	lightbox "github.com/alnah/go-lightbox"
	"github.com/alnah/go-lightbox/internal/assets"
	"github.com/alnah/go-lightbox/internal/fileutil"
	"github.com/alnah/go-lightbox/internal/pipeline"
)

// Output layout names.
const (
	StaticDir     = "_static"
	ImagesDir     = "_images"
	PageStyleName = "page.css"
	SingleName    = "index.html"
	tocTitle      = "On this page"
)

// relPrefix returns the path from a document's page back to the build root.
func relPrefix(docName string) string {
	return strings.Repeat("../", strings.Count(docName, "/"))
}

func (b *Builder) stylesheets(prefix string) []string {
	return []string{
		prefix + StaticDir + "/" + PageStyleName,
		prefix + StaticDir + "/" + pipeline.HighlightStylesheetName,
		prefix + StaticDir + "/" + lightbox.StylesheetName,
	}
}

func (b *Builder) scripts(prefix string) []string {
	return []string{prefix + StaticDir + "/" + lightbox.ScriptName}
}

// publishStatic writes the page style, the highlighting stylesheet and the
// lightbox files into dir. Each static file may be overridden by a file of
// the same name in the asset path.
func (b *Builder) publishStatic(dir string) error {
	style, err := assets.ResolveStyle(b.assets, b.cfg.HTML.Style)
	if err != nil {
		return fmt.Errorf("html.style: %w", err)
	}
	files := map[string][]byte{PageStyleName: []byte(style)}

	highlight, err := b.assets.LoadStatic(pipeline.HighlightStylesheetName)
	if err != nil {
		if highlight, err = pipeline.HighlightCSS(pipeline.DefaultHighlightStyle); err != nil {
			return err
		}
	}
	files[pipeline.HighlightStylesheetName] = highlight

	for _, name := range lightbox.StaticNames() {
		content, err := b.assets.LoadStatic(name)
		if err != nil {
			return fmt.Errorf("loading %s: %w", name, err)
		}
		files[name] = content
	}

	for name, content := range files {
		if err := fileutil.WriteFileAtomic(filepath.Join(dir, name), content); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWriteOutput, name, err)
		}
	}
	return nil
}

func (b *Builder) pageRenderer() (*pipeline.PageRenderer, error) {
	tmpl, err := b.assets.LoadTemplate(assets.PageTemplateName)
	if err != nil {
		return nil, err
	}
	return pipeline.NewPageRenderer(tmpl)
}

func (b *Builder) writeHTML(ctx context.Context, dir string, docs []*pipeline.Document, registry *ImageRegistry) error {
	page, err := b.pageRenderer()
	if err != nil {
		return err
	}
	if err := b.publishStatic(filepath.Join(dir, StaticDir)); err != nil {
		return err
	}
	if err := registry.CopyTo(b.cfg.Source.Dir, filepath.Join(dir, ImagesDir)); err != nil {
		return err
	}

	// Titles come from rendered bodies, and every page's nav needs all of them.
	bodies := make([]string, len(docs))
	titles := make([]string, len(docs))
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		body, err := pipeline.RenderHTML(ctx, doc, pipeline.HTMLOptions{
			Locator:   registry,
			ImagePath: relPrefix(doc.Name) + ImagesDir,
		})
		if err != nil {
			return err
		}
		bodies[i] = body
		titles[i] = pipeline.Title(body, doc.Name)
	}

	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		prefix := relPrefix(doc.Name)
		entries := make([]pipeline.NavEntry, len(docs))
		for j, d := range docs {
			entries[j] = pipeline.NavEntry{Name: d.Name, Title: titles[j], Href: prefix + d.Name + ".html"}
		}
		nav := pipeline.NavList(entries, doc.Name) +
			pipeline.NumberedTOC(pipeline.ExtractHeadings(bodies[i], 2, 3), tocTitle, "")

		out, err := page.Render(ctx, &pipeline.PageData{
			Project:     b.cfg.HTML.Title,
			Title:       titles[i],
			Stylesheets: b.stylesheets(prefix),
			Scripts:     b.scripts(prefix),
			Nav:         htmltemplate.HTML(nav),
			Body:        htmltemplate.HTML(bodies[i]),
		})
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(doc.Name)+".html")
		if err := fileutil.WriteFileAtomic(target, out); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWriteOutput, doc.Name, err)
		}
		b.logger.Debug("wrote page", zap.String("doc", doc.Name), zap.String("path", target))
	}
	return nil
}

// sectionIDs returns one anchor per document for the merged page. Names
// that collapse to the same slug get a numeric suffix.
func sectionIDs(docs []*pipeline.Document) []string {
	ids := make([]string, len(docs))
	seen := make(map[string]bool, len(docs))
	for i, doc := range docs {
		id := "doc-" + strings.ReplaceAll(doc.Name, "/", "-")
		for n := 2; seen[id]; n++ {
			id = "doc-" + strings.ReplaceAll(doc.Name, "/", "-") + "-" + strconv.Itoa(n)
		}
		seen[id] = true
		ids[i] = id
	}
	return ids
}

func (b *Builder) writeSingleHTML(ctx context.Context, dir string, docs []*pipeline.Document, registry *ImageRegistry) error {
	page, err := b.pageRenderer()
	if err != nil {
		return err
	}
	if err := b.publishStatic(filepath.Join(dir, StaticDir)); err != nil {
		return err
	}
	if err := registry.CopyTo(b.cfg.Source.Dir, filepath.Join(dir, ImagesDir)); err != nil {
		return err
	}

	ids := sectionIDs(docs)
	entries := make([]pipeline.NavEntry, len(docs))
	var body strings.Builder
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		// Heading ids may repeat across documents; footnote ids must not.
		fragment, err := pipeline.RenderHTML(ctx, doc, pipeline.HTMLOptions{
			Locator:   registry,
			ImagePath: ImagesDir,
			IDPrefix:  ids[i] + "-",
		})
		if err != nil {
			return err
		}
		entries[i] = pipeline.NavEntry{Name: doc.Name, Title: pipeline.Title(fragment, doc.Name), Href: "#" + ids[i]}

		body.WriteString(`<section class="document" id="` + ids[i] + `">` + "\n")
		body.WriteString(fragment)
		body.WriteString("</section>\n")
	}

	out, err := page.Render(ctx, &pipeline.PageData{
		Project:     b.cfg.HTML.Title,
		Stylesheets: b.stylesheets(""),
		Scripts:     b.scripts(""),
		Nav:         htmltemplate.HTML(pipeline.NavList(entries, "")),
		Body:        htmltemplate.HTML(body.String()),
	})
	if err != nil {
		return err
	}
	target := filepath.Join(dir, SingleName)
	if err := fileutil.WriteFileAtomic(target, out); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// LaTeXFileName returns the .tex file name for a project, e.g.
// "My Docs" -> "mydocs.tex".
func LaTeXFileName(project string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(project) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "document.tex"
	}
	return b.String() + ".tex"
}

func (b *Builder) writeLaTeX(ctx context.Context, dir string, docs []*pipeline.Document, registry *ImageRegistry) error {
	tmpl, err := b.assets.LoadTemplate(assets.LaTeXTemplateName)
	if err != nil {
		return err
	}
	document, err := pipeline.NewLaTeXDocument(tmpl)
	if err != nil {
		return err
	}
	if err := registry.CopyTo(b.cfg.Source.Dir, dir); err != nil {
		return err
	}

	var body strings.Builder
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		fragment, err := pipeline.RenderLaTeX(ctx, doc, pipeline.LaTeXOptions{
			Locator:     registry,
			LabelPrefix: doc.Name + ":",
		})
		if err != nil {
			return err
		}
		body.WriteString("% " + doc.Name + "\n")
		body.WriteString(fragment)
		body.WriteString("\n")
	}

	out, err := document.Render(ctx, &pipeline.LaTeXData{
		Title:         b.cfg.Project.Name,
		Author:        b.cfg.Project.Author,
		PaperSize:     b.cfg.LaTeX.PaperSize,
		PointSize:     b.cfg.LaTeX.PointSize,
		DocumentClass: b.cfg.LaTeX.DocumentClass,
		Body:          body.String(),
	})
	if err != nil {
		return err
	}
	target := filepath.Join(dir, LaTeXFileName(b.cfg.Project.Name))
	if err := fileutil.WriteFileAtomic(target, out); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

func (b *Builder) writeText(ctx context.Context, dir string, docs []*pipeline.Document) error {
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		out, err := pipeline.RenderText(ctx, doc)
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(doc.Name)+".txt")
		if err := fileutil.WriteFileAtomic(target, []byte(out)); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWriteOutput, doc.Name, err)
		}
	}
	return nil
}
