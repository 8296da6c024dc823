package lightbox

import (
	"bytes"
	"strconv"

	"github.com/yuin/goldmark/ast"
)

// Node kinds of the lightbox composite.
var (
	KindContainer = ast.NewNodeKind("LightboxContainer")
	KindTrigger   = ast.NewNodeKind("LightboxTrigger")
	KindOverlay   = ast.NewNodeKind("LightboxOverlay")
	KindCollector = ast.NewNodeKind("LightboxCollector")
)

// Container is the root of a lightbox composite. Its children are, in
// order, a Trigger, an Overlay and a Collector.
type Container struct {
	ast.BaseBlock

	// URI is the source-relative image path.
	URI        string
	Caption    string
	LaTeXWidth string

	DocName string
	Line    int
}

// Kind implements ast.Node.
func (n *Container) Kind() ast.NodeKind { return KindContainer }

// Dump implements ast.Node.
func (n *Container) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"URI":        n.URI,
		"Caption":    n.Caption,
		"LaTeXWidth": n.LaTeXWidth,
		"DocName":    n.DocName,
		"Line":       strconv.Itoa(n.Line),
	}, nil)
}

// Trigger is the clickable thumbnail.
type Trigger struct {
	ast.BaseBlock

	URI            string
	Alt            string
	ThumbnailWidth string
	Class          string
	CheckboxID     string
}

// Kind implements ast.Node.
func (n *Trigger) Kind() ast.NodeKind { return KindTrigger }

// Dump implements ast.Node.
func (n *Trigger) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"URI":            n.URI,
		"Alt":            n.Alt,
		"ThumbnailWidth": n.ThumbnailWidth,
		"Class":          n.Class,
		"CheckboxID":     n.CheckboxID,
	}, nil)
}

// Overlay is the enlarged view toggled by the hidden checkbox.
type Overlay struct {
	ast.BaseBlock

	URI        string
	Alt        string
	Caption    string
	SizeStyle  string
	Class      string
	CheckboxID string
}

// Kind implements ast.Node.
func (n *Overlay) Kind() ast.NodeKind { return KindOverlay }

// Dump implements ast.Node.
func (n *Overlay) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"URI":        n.URI,
		"Alt":        n.Alt,
		"Caption":    n.Caption,
		"SizeStyle":  n.SizeStyle,
		"Class":      n.Class,
		"CheckboxID": n.CheckboxID,
	}, nil)
}

// Collector wraps a hidden image node so the host's image collection
// sees the file. It never renders output itself.
type Collector struct {
	ast.BaseBlock
}

// Kind implements ast.Node.
func (n *Collector) Kind() ast.NodeKind { return KindCollector }

// Dump implements ast.Node.
func (n *Collector) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// Image returns the wrapped image, or nil.
func (n *Collector) Image() *ast.Image {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if img, ok := c.(*ast.Image); ok {
			return img
		}
	}
	return nil
}

// ImageAlt returns the plain-text alt content of img.
func ImageAlt(img *ast.Image, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(img, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
