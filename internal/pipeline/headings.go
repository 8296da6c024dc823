package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Heading is an extracted heading from rendered HTML.
type Heading struct {
	Level int    // 1-6
	ID    string // anchor ID, may be empty
	Text  string // heading text content
}

var headingLevels = map[atom.Atom]int{
	atom.H1: 1, atom.H2: 2, atom.H3: 3,
	atom.H4: 4, atom.H5: 5, atom.H6: 6,
}

// ExtractHeadings tokenizes an HTML fragment and returns the headings
// between minDepth and maxDepth in document order. Entities are decoded and
// inline markup is dropped from the text.
func ExtractHeadings(fragment string, minDepth, maxDepth int) []Heading {
	z := html.NewTokenizer(strings.NewReader(fragment))

	var out []Heading
	var cur *Heading
	var text strings.Builder

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return out
		case html.StartTagToken:
			tok := z.Token()
			level, ok := headingLevels[tok.DataAtom]
			if !ok || cur != nil {
				continue
			}
			cur = &Heading{Level: level}
			for _, a := range tok.Attr {
				if a.Key == "id" {
					cur.ID = a.Val
				}
			}
			text.Reset()
		case html.TextToken:
			if cur != nil {
				text.Write(z.Text())
			}
		case html.EndTagToken:
			tok := z.Token()
			level, ok := headingLevels[tok.DataAtom]
			if !ok || cur == nil || level != cur.Level {
				continue
			}
			cur.Text = strings.Join(strings.Fields(text.String()), " ")
			if cur.Level >= minDepth && cur.Level <= maxDepth {
				out = append(out, *cur)
			}
			cur = nil
		}
	}
}

// Title returns the text of the first level-1 heading in fragment, or
// fallback when there is none.
func Title(fragment, fallback string) string {
	for _, h := range ExtractHeadings(fragment, 1, 1) {
		if h.Text != "" {
			return h.Text
		}
	}
	return fallback
}
