package pipeline

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// numberingState tracks hierarchical numbering for TOC entries.
// Supports normalization (first heading becomes level 1) and gap skipping.
type numberingState struct {
	counters     [6]int // counters[0] = level 1 count, etc.
	minLevelSeen int    // for normalization (0 = not set)
	lastLevel    int    // for tracking parent relationships
}

// next returns the next number string and effective depth for the given heading level.
// The effective depth is used for nesting decisions in TOC generation.
func (n *numberingState) next(level int) (numStr string, effectiveDepth int) {
	if n.minLevelSeen == 0 {
		n.minLevelSeen = level
	}

	effectiveDepth = level - n.minLevelSeen + 1
	if effectiveDepth < 1 {
		effectiveDepth = 1
	}

	// A jump of several levels nests one level deeper, e.g. H1 -> H3 is depth 2.
	if n.lastLevel > 0 && effectiveDepth > n.lastLevel+1 {
		effectiveDepth = n.lastLevel + 1
	}

	for i := effectiveDepth; i < 6; i++ {
		n.counters[i] = 0
	}

	n.counters[effectiveDepth-1]++
	n.lastLevel = effectiveDepth

	parts := make([]string, 0, effectiveDepth)
	for i := 0; i < effectiveDepth; i++ {
		parts = append(parts, strconv.Itoa(n.counters[i]))
	}
	return strings.Join(parts, ".") + ".", effectiveDepth
}

// NumberedTOC creates HTML for a numbered table of contents. Each heading
// links to hrefPrefix + "#" + ID; headings without IDs are skipped.
// Uses <div> elements instead of <ul>/<li> to avoid CSS list-style conflicts.
func NumberedTOC(headings []Heading, title, hrefPrefix string) string {
	var buf strings.Builder
	numbering := &numberingState{}
	items := 0

	for _, h := range headings {
		if h.ID == "" {
			continue
		}
		if items == 0 {
			buf.WriteString(`<div class="toc">`)
			if title != "" {
				buf.WriteString(`<p class="toc-title">`)
				buf.WriteString(html.EscapeString(title))
				buf.WriteString(`</p>`)
			}
			buf.WriteString(`<div class="toc-list">`)
		}
		items++

		num, effectiveDepth := numbering.next(h.Level)
		indent := float64(effectiveDepth-1) * 1.5

		buf.WriteString(`<div class="toc-item"`)
		if indent > 0 {
			buf.WriteString(fmt.Sprintf(` style="padding-left:%.1fem"`, indent))
		}
		buf.WriteString(`><a href="`)
		buf.WriteString(html.EscapeString(hrefPrefix + "#" + h.ID))
		buf.WriteString(`">`)
		buf.WriteString(num)
		buf.WriteString(` `)
		buf.WriteString(html.EscapeString(h.Text))
		buf.WriteString(`</a></div>`)
	}

	if items == 0 {
		return ""
	}
	buf.WriteString(`</div></div>`)
	return buf.String()
}

// NavEntry is one document in the site navigation.
type NavEntry struct {
	Name  string // document name
	Title string
	Href  string // relative to the current page
}

// NavList renders the site navigation, marking the entry named current.
func NavList(entries []NavEntry, current string) string {
	if len(entries) == 0 {
		return ""
	}
	var buf strings.Builder
	buf.WriteString("<ul>")
	for _, e := range entries {
		if e.Name == current {
			buf.WriteString(`<li class="current">`)
		} else {
			buf.WriteString("<li>")
		}
		buf.WriteString(`<a href="`)
		buf.WriteString(html.EscapeString(e.Href))
		buf.WriteString(`">`)
		buf.WriteString(html.EscapeString(e.Title))
		buf.WriteString("</a></li>")
	}
	buf.WriteString("</ul>")
	return buf.String()
}
