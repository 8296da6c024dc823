package pipeline

import (
	"context"
	"strings"
	"testing"
)

func TestRenderText(t *testing.T) {
	t.Parallel()

	md := "# Guide\n\n" +
		"Hello *world*.\n\n" +
		"## Part\n\n" +
		"```{lightbox} a.png\n:alt: Lightboxed\n```\n\n" +
		"![pic](/b.png)\n\n" +
		"1. one\n2. two\n\n" +
		"- x\n  - y\n"
	doc, _ := parseDoc(t, "index", md, "a.png")

	got, err := RenderText(context.Background(), doc)
	if err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}

	want := "Guide\n=====\n\n" +
		"Hello world.\n\n" +
		"Part\n----\n\n" +
		"[image: pic]\n\n" +
		"1. one\n2. two\n\n" +
		"- x\n  - y\n"
	if got != want {
		t.Errorf("RenderText() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderText_Inline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		md   string
		want string
	}{
		{name: "link", md: "See [docs](https://example.com).\n", want: "See docs <https://example.com>."},
		{name: "autolink", md: "<https://example.com>\n", want: "https://example.com"},
		{name: "image without alt", md: "![](/x.png)\n", want: "[image]"},
		{name: "code block", md: "```\nline\n```\n", want: "    line"},
		{name: "ordered start", md: "7. seven\n8. eight\n", want: "7. seven\n8. eight"},
		{name: "task", md: "- [x] done\n", want: "- [x] done"},
		{name: "table", md: "| a | b |\n|---|---|\n| 1 | 2 |\n", want: "a | b\n1 | 2"},
		{name: "footnote", md: "Note[^1].\n\n[^1]: Text.\n", want: "Note[1]."},
		{name: "raw html dropped", md: "<div>x</div>\n\nText.\n", want: "Text."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, _ := parseDoc(t, "index", tt.md)
			got, err := RenderText(context.Background(), doc)
			if err != nil {
				t.Fatalf("RenderText() error: %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("RenderText() = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestRenderText_LightboxProducesNothing(t *testing.T) {
	t.Parallel()

	doc, _ := parseDoc(t, "index", "```{lightbox} a.png\n:alt: Hidden\n:caption: Also hidden\n```\n", "a.png")
	got, err := RenderText(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(got) != "" {
		t.Errorf("RenderText() = %q, want empty", got)
	}
}
