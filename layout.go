package lightbox

import (
	"fmt"
	"math"
)

// Layout defaults.
const (
	DefaultThumbnailPercent = 100
	DefaultOverlayPercent   = 95
	DefaultAspectRatio      = 1.0
)

// Layout holds the sizing of one lightbox. ThumbnailPercent only drives the
// trigger width; OverlayPercent drives the overlay size and the LaTeX width.
type Layout struct {
	ThumbnailPercent int
	OverlayPercent   int
	AspectRatio      float64
}

// NewLayout builds a Layout from the directive's percentage values and the
// probed width/height ratio. The first value sizes the thumbnail, the second
// the overlay. Missing values take the defaults and extra values are ignored.
func NewLayout(percentages []int, ratio float64) Layout {
	l := Layout{
		ThumbnailPercent: DefaultThumbnailPercent,
		OverlayPercent:   DefaultOverlayPercent,
		AspectRatio:      ratio,
	}
	if len(percentages) > 0 {
		l.ThumbnailPercent = percentages[0]
	}
	if len(percentages) > 1 {
		l.OverlayPercent = percentages[1]
	}
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		l.AspectRatio = DefaultAspectRatio
	}
	return l
}

// ThumbnailWidth returns the CSS width of the trigger image, e.g. "50%".
func (l Layout) ThumbnailWidth() string {
	return fmt.Sprintf("%d%%", l.ThumbnailPercent)
}

// OverlaySizeStyle returns the inline style that fits the enlarged image into
// OverlayPercent of the viewport on both axes while keeping its ratio.
func (l Layout) OverlaySizeStyle() string {
	p, r := l.OverlayPercent, l.AspectRatio
	return fmt.Sprintf("width: min(%dvw, calc(%dvh * %.4f));height: min(%dvh, calc(%dvw / %.4f));",
		p, p, r, p, p, r)
}

// LaTeXWidth returns the overlay percentage as a \linewidth factor, e.g. "0.95".
func (l Layout) LaTeXWidth() string {
	return fmt.Sprintf("%.2f", float64(l.OverlayPercent)/100)
}
