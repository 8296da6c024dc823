package lightbox

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func sampleComposite(alt, caption, class string) *Container {
	env := NewEnvironment("guide/install", ".")
	ref := ImageReference{RawPath: "diagram.png", ResolvedPath: "guide/diagram.png", AltText: alt}
	return Build(env, ref, Options{Caption: caption, Class: class}, NewLayout([]int{50, 90}, 1), 1)
}

// renderNode renders a standalone node tree with only the lightbox renderer
// registered.
func renderNode(t *testing.T, n ast.Node, format Format, opts ...RenderOption) string {
	t.Helper()
	doc := ast.NewDocument()
	doc.AppendChild(doc, n)
	r := renderer.NewRenderer(renderer.WithNodeRenderers(
		util.Prioritized(NewNodeRenderer(format, opts...), priority),
		util.Prioritized(documentRenderer{}, 1000),
	))
	var buf bytes.Buffer
	if err := r.Render(&buf, nil, doc); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

// documentRenderer renders the document node and any image as nothing, so
// output comes only from lightbox visitors.
type documentRenderer struct{}

func (documentRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	nothing := func(util.BufWriter, []byte, ast.Node, bool) (ast.WalkStatus, error) {
		return ast.WalkContinue, nil
	}
	reg.Register(ast.KindDocument, nothing)
	reg.Register(ast.KindImage, func(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			_, _ = w.WriteString("IMAGE")
		}
		return ast.WalkSkipChildren, nil
	})
	reg.Register(ast.KindString, nothing)
}

// assertBalanced fails when the HTML fragment has unclosed or stray tags.
func assertBalanced(t *testing.T, fragment string) {
	t.Helper()
	voids := map[string]bool{"img": true, "input": true, "br": true}
	var stack []string
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				t.Fatalf("tokenize: %v", z.Err())
			}
			if len(stack) != 0 {
				t.Fatalf("unclosed tags: %v", stack)
			}
			return
		case html.StartTagToken:
			name, _ := z.TagName()
			if !voids[string(name)] {
				stack = append(stack, string(name))
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if len(stack) == 0 || stack[len(stack)-1] != string(name) {
				t.Fatalf("unexpected </%s>, open: %v", name, stack)
			}
			stack = stack[:len(stack)-1]
		}
	}
}

// ---------------------------------------------------------------------------
// HTML
// ---------------------------------------------------------------------------

func TestRenderHTML_Markup(t *testing.T) {
	t.Parallel()

	got := renderNode(t, sampleComposite("Diagram", "Figure 1", "with-border"), FormatHTML)

	want := `<div class="lightbox-container">
<label for="lightbox-guide-install-1" class="lightbox-trigger-label" tabindex="0" role="button" aria-label="Enlarge image: Diagram">
  <img src="guide/diagram.png" alt="Diagram" class="lightbox-trigger with-border" style="width: 50%;">
</label>
<input type="checkbox" id="lightbox-guide-install-1" class="lightbox-toggle" aria-hidden="true" tabindex="-1">
<div class="lightbox-overlay" role="dialog" aria-modal="true" aria-label="Diagram">
  <label for="lightbox-guide-install-1" class="lightbox-close" tabindex="0" role="button" aria-label="Close lightbox">&times;</label>
  <div class="lightbox-content">
    <img src="guide/diagram.png" alt="Diagram" class="with-border" style="width: min(90vw, calc(90vh * 1.0000));height: min(90vh, calc(90vw / 1.0000));">
    <p class="lightbox-caption">Figure 1</p>
  </div>
  <label for="lightbox-guide-install-1" class="lightbox-backdrop-close" aria-hidden="true"></label>
</div>
</div>
`
	if got != want {
		t.Errorf("HTML mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
	assertBalanced(t, got)
}

func TestRenderHTML_OptionalParts(t *testing.T) {
	t.Parallel()

	got := renderNode(t, sampleComposite("", "", ""), FormatHTML)

	if strings.Contains(got, "lightbox-caption") {
		t.Error("empty caption must not render a caption paragraph")
	}
	if !strings.Contains(got, `class="lightbox-trigger" style=`) {
		t.Errorf("trigger class should be bare without custom class:\n%s", got)
	}
	if !strings.Contains(got, `<img src="guide/diagram.png" alt="" style="width: min(`) {
		t.Errorf("overlay img should carry no class attribute:\n%s", got)
	}
	if strings.Contains(got, "IMAGE") {
		t.Error("collector image must not render")
	}
	assertBalanced(t, got)
}

func TestRenderHTML_Escaping(t *testing.T) {
	t.Parallel()

	hostile := `<script>"x" & 'y'</script>`
	c := sampleComposite(hostile, hostile, hostile)
	t1 := c.FirstChild().(*Trigger)
	t1.URI = `a"b<c>.png`
	c.FirstChild().NextSibling().(*Overlay).URI = `a"b<c>.png`
	got := renderNode(t, c, FormatHTML)

	if strings.Contains(got, "<script>") {
		t.Errorf("unescaped markup in output:\n%s", got)
	}
	for _, want := range []string{
		"&lt;script&gt;&#34;x&#34; &amp; &#39;y&#39;&lt;/script&gt;",
		`src="a&#34;b&lt;c&gt;.png"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	assertBalanced(t, got)
}

func TestRenderHTML_ImageLocator(t *testing.T) {
	t.Parallel()

	locator := ImageMap{"guide/diagram.png": "diagram1.png"}

	tests := []struct {
		name    string
		opts    []RenderOption
		wantSrc string
	}{
		{name: "no locator passes through", wantSrc: `src="guide/diagram.png"`},
		{name: "default image path", opts: []RenderOption{WithImageLocator(locator)}, wantSrc: `src="_images/diagram1.png"`},
		{
			name:    "relative image path",
			opts:    []RenderOption{WithImageLocator(locator), WithImagePath("../_images/")},
			wantSrc: `src="../_images/diagram1.png"`,
		},
		{
			name:    "unregistered path",
			opts:    []RenderOption{WithImageLocator(ImageMap{})},
			wantSrc: `src="guide/diagram.png"`,
		},
		{
			name: "locator func",
			opts: []RenderOption{WithImageLocator(ImageLocatorFunc(func(uri string) (string, bool) {
				return "from-func.png", uri == "guide/diagram.png"
			}))},
			wantSrc: `src="_images/from-func.png"`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := renderNode(t, sampleComposite("a", "", ""), FormatHTML, tt.opts...)
			if n := strings.Count(got, tt.wantSrc); n != 2 {
				t.Errorf("want %s on trigger and overlay, found %d:\n%s", tt.wantSrc, n, got)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// LaTeX
// ---------------------------------------------------------------------------

func TestRenderLaTeX_Figure(t *testing.T) {
	t.Parallel()

	got := renderNode(t, sampleComposite("Diagram", "Figure 1", "x"), FormatLaTeX)
	want := "\n\\begin{figure}[htbp]\n\\centering\n" +
		"\\adjustbox{max width=0.90\\linewidth}{\\includegraphics{diagram.png}}\n" +
		"\\caption{Figure 1}\n" +
		"\\end{figure}\n"
	if got != want {
		t.Errorf("LaTeX mismatch\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestRenderLaTeX_NoCaptionAndLocator(t *testing.T) {
	t.Parallel()

	got := renderNode(t, sampleComposite("", "", ""), FormatLaTeX,
		WithImageLocator(ImageMap{"guide/diagram.png": "diagram2.png"}))

	if strings.Contains(got, `\caption`) {
		t.Error("empty caption must not emit \\caption")
	}
	if !strings.Contains(got, `\includegraphics{diagram2.png}`) {
		t.Errorf("published name not used:\n%s", got)
	}
	if strings.Contains(got, "IMAGE") || strings.Contains(got, "lightbox-") {
		t.Errorf("children rendered inside figure:\n%s", got)
	}
}

func TestRenderLaTeX_UnsafeFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []RenderOption
		uri  string
		want string
	}{
		{
			name: "published name",
			opts: []RenderOption{WithImageLocator(ImageLocatorFunc(func(string) (string, bool) {
				return "50% {a}#1.png", true
			}))},
			uri:  "img/x.png",
			want: `\includegraphics{50___a__1.png}`,
		},
		{name: "base name fallback", uri: "img/r&d~1.png", want: `\includegraphics{r_d_1.png}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := NewEnvironment("index", ".")
			ref := ImageReference{RawPath: tt.uri, ResolvedPath: tt.uri}
			c := Build(env, ref, Options{}, NewLayout(nil, 1), 1)
			got := renderNode(t, c, FormatLaTeX, tt.opts...)
			if !strings.Contains(got, tt.want) {
				t.Errorf("got:\n%s\nwant substring %q", got, tt.want)
			}
		})
	}
}

func TestSafeFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"diagram-1_v2.PNG", "diagram-1_v2.PNG"},
		{"50%.png", "50_.png"},
		{"a}b{c#.png", "a_b_c_.png"},
		{"caf\u00e9.png", "caf__.png"},
		{"with space.png", "with_space.png"},
	}
	for _, tt := range tests {
		if got := SafeFileName(tt.in); got != tt.want {
			t.Errorf("SafeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeLaTeX(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"100% & $5", `100\% \& \$5`},
		{"a_b #1", `a\_b \#1`},
		{"{x}", `\{x\}`},
		{`back\slash`, `back\textbackslash{}slash`},
		{"~^", `\textasciitilde{}\textasciicircum{}`},
		{"[a]", "{[}a{]}"},
		{"<a|b>", `\textless{}a\textbar{}b\textgreater{}`},
	}
	for _, tt := range tests {
		if got := EscapeLaTeX(tt.input); got != tt.want {
			t.Errorf("EscapeLaTeX(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRenderLaTeX_CaptionEscaped(t *testing.T) {
	t.Parallel()

	got := renderNode(t, sampleComposite("", "50% of {x} & $y_1 #2", ""), FormatLaTeX)
	if !strings.Contains(got, `\caption{50\% of \{x\} \& \$y\_1 \#2}`) {
		t.Errorf("caption not escaped:\n%s", got)
	}
}

// ---------------------------------------------------------------------------
// No-op formats
// ---------------------------------------------------------------------------

func TestRender_NoopFormats(t *testing.T) {
	t.Parallel()

	for _, f := range []Format{FormatEPUB, FormatText, FormatMan, FormatTexinfo, Format("docx")} {
		f := f
		t.Run(string(f), func(t *testing.T) {
			t.Parallel()
			if got := renderNode(t, sampleComposite("a", "b", "c"), f); got != "" {
				t.Errorf("%s rendered %q, want nothing", f, got)
			}
		})
	}
}

func TestNewNodeRenderer_Format(t *testing.T) {
	t.Parallel()

	if got := NewNodeRenderer(FormatLaTeX).Format(); got != FormatLaTeX {
		t.Errorf("Format() = %q", got)
	}
}
