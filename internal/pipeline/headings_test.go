package pipeline

import (
	"reflect"
	"testing"
)

func TestExtractHeadings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fragment string
		min, max int
		want     []Heading
	}{
		{
			name:     "levels and ids",
			fragment: `<h1 id="a">A</h1><p>x</p><h2 id="b">B</h2><h3>C</h3>`,
			min:      1, max: 6,
			want: []Heading{{Level: 1, ID: "a", Text: "A"}, {Level: 2, ID: "b", Text: "B"}, {Level: 3, Text: "C"}},
		},
		{
			name:     "depth range",
			fragment: `<h1 id="a">A</h1><h2 id="b">B</h2><h4 id="d">D</h4>`,
			min:      2, max: 3,
			want: []Heading{{Level: 2, ID: "b", Text: "B"}},
		},
		{
			name:     "entities and inline markup",
			fragment: `<h2 id="x">Fish &amp; <em>Chips</em> <code>&lt;go&gt;</code></h2>`,
			min:      1, max: 6,
			want: []Heading{{Level: 2, ID: "x", Text: "Fish & Chips <go>"}},
		},
		{
			name:     "whitespace collapsed",
			fragment: "<h1 id=\"w\">\n  Wide\n   title </h1>",
			min:      1, max: 6,
			want: []Heading{{Level: 1, ID: "w", Text: "Wide title"}},
		},
		{
			name:     "no headings",
			fragment: `<p>just text</p>`,
			min:      1, max: 6,
			want: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ExtractHeadings(tt.fragment, tt.min, tt.max)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractHeadings() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{name: "first h1", fragment: `<h2>Sub</h2><h1>Main</h1><h1>Other</h1>`, want: "Main"},
		{name: "empty h1 skipped", fragment: `<h1></h1><h1>Real</h1>`, want: "Real"},
		{name: "fallback", fragment: `<h2>Only sub</h2>`, want: "guide/intro"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Title(tt.fragment, "guide/intro"); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}
