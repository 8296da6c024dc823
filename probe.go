package lightbox

import (
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	// Registered decoders for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// maxSVGHeader bounds how much of an SVG file is scanned for its root element.
const maxSVGHeader = 1 << 20

// Size is an image's intrinsic size in pixels (or SVG user units).
type Size struct {
	Width  float64
	Height float64
}

// AspectRatio returns Width/Height. Zero or negative dimensions are an error.
func (s Size) AspectRatio() (float64, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return 0, fmt.Errorf("%w: %gx%g", ErrImageDimensions, s.Width, s.Height)
	}
	return s.Width / s.Height, nil
}

// Prober reads the intrinsic size of an image file.
type Prober interface {
	Size(path string) (Size, error)
}

// ProberFunc adapts a function to Prober.
type ProberFunc func(path string) (Size, error)

// Size calls f(path).
func (f ProberFunc) Size(path string) (Size, error) { return f(path) }

// ImageProber decodes only image headers. Raster formats go through
// image.DecodeConfig; .svg files are read for their width/height or viewBox.
type ImageProber struct{}

// Size returns the dimensions of the image at path.
func (ImageProber) Size(path string) (Size, error) {
	f, err := os.Open(path) // #nosec G304 -- path validated by ResolveImagePath
	if err != nil {
		return Size{}, fmt.Errorf("%w: %v", ErrImageDimensions, err)
	}
	defer func() { _ = f.Close() }()

	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return svgSize(io.LimitReader(f, maxSVGHeader))
	}

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return Size{}, fmt.Errorf("%w: %s", ErrUnsupportedImage, filepath.Ext(path))
		}
		return Size{}, fmt.Errorf("%w: %v", ErrImageDimensions, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Size{}, fmt.Errorf("%w: %s reports %dx%d", ErrImageDimensions, format, cfg.Width, cfg.Height)
	}
	return Size{Width: float64(cfg.Width), Height: float64(cfg.Height)}, nil
}

// svgSize reads the root <svg> element. Explicit width and height win;
// otherwise the viewBox extent is used.
func svgSize(r io.Reader) (Size, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if err != nil {
			return Size{}, fmt.Errorf("%w: no svg root element: %v", ErrImageDimensions, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "svg" {
			return Size{}, fmt.Errorf("%w: root element is <%s>", ErrImageDimensions, start.Name.Local)
		}

		var width, height, viewBox string
		for _, a := range start.Attr {
			switch a.Name.Local {
			case "width":
				width = a.Value
			case "height":
				height = a.Value
			case "viewBox":
				viewBox = a.Value
			}
		}

		w, wok := svgLength(width)
		h, hok := svgLength(height)
		if wok && hok {
			return Size{Width: w, Height: h}, nil
		}
		if s, ok := parseViewBox(viewBox); ok {
			return s, nil
		}
		return Size{}, fmt.Errorf("%w: svg has no usable width/height or viewBox", ErrImageDimensions)
	}
}

// svgLength parses an absolute SVG length ("120", "120px", "3.5in").
// Percentages are relative to an unknown viewport and are rejected.
func svgLength(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" || strings.HasSuffix(v, "%") {
		return 0, false
	}
	units := map[string]float64{
		"px": 1, "pt": 4.0 / 3.0, "pc": 16, "mm": 96 / 25.4,
		"cm": 96 / 2.54, "in": 96, "em": 16, "ex": 8,
	}
	scale := 1.0
	for suffix, factor := range units {
		if strings.HasSuffix(v, suffix) {
			v = strings.TrimSuffix(v, suffix)
			scale = factor
			break
		}
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n * scale, true
}

func parseViewBox(v string) (Size, bool) {
	fields := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\n' })
	if len(fields) != 4 {
		return Size{}, false
	}
	w, err1 := strconv.ParseFloat(fields[2], 64)
	h, err2 := strconv.ParseFloat(fields[3], 64)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return Size{}, false
	}
	return Size{Width: w, Height: h}, true
}

// Compile-time interface check.
var _ Prober = ImageProber{}
