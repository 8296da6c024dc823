package lightbox

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// WarningType is the stable category attached to every diagnostic raised by
// the directive. Suppression entries match it as "lightbox" or
// "lightbox.<subtype>".
const WarningType = "lightbox"

// Subtype tags a diagnostic with a machine-filterable reason.
type Subtype string

// Diagnostic subtypes.
const (
	SubtypePathTraversal   Subtype = "path_traversal"
	SubtypeImageNotFound   Subtype = "image_not_found"
	SubtypeImageDimensions Subtype = "image_dimensions"
	SubtypeDirective       Subtype = "directive"
)

// Severity orders diagnostics. Directive syntax errors are SeverityError,
// everything else is SeverityWarning. Neither aborts a build.
type Severity int

// Severity levels.
const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns the upper-case label used in rendered messages.
func (s Severity) String() string {
	if s == SeverityError {
		return "ERROR"
	}
	return "WARNING"
}

// Diagnostic is one author-visible problem found while processing a document.
type Diagnostic struct {
	Type     string
	Subtype  Subtype
	Severity Severity
	DocName  string
	Line     int
	Message  string
	Err      error
}

// Category returns "type.subtype", or just the type when there is no subtype.
func (d Diagnostic) Category() string {
	if d.Subtype == "" {
		return d.Type
	}
	return d.Type + "." + string(d.Subtype)
}

// Location returns "doc:line", omitting unknown parts.
func (d Diagnostic) Location() string {
	switch {
	case d.DocName == "":
		return ""
	case d.Line > 0:
		return fmt.Sprintf("%s:%d", d.DocName, d.Line)
	default:
		return d.DocName
	}
}

// String formats the diagnostic the way build output shows it.
func (d Diagnostic) String() string {
	var b strings.Builder
	if loc := d.Location(); loc != "" {
		b.WriteString(loc)
		b.WriteString(": ")
	}
	b.WriteString(d.Severity.String())
	b.WriteString(": ")
	b.WriteString(d.Message)
	if c := d.Category(); c != "" {
		b.WriteString(" [")
		b.WriteString(c)
		b.WriteString("]")
	}
	return b.String()
}

// Reporter receives diagnostics. Implementations must be safe for concurrent
// use because a host may read documents in parallel.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(d Diagnostic)

// Report calls f(d).
func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Reporter = ReporterFunc(func(Diagnostic) {})

// DiagnosticCollector keeps diagnostics in memory.
type DiagnosticCollector struct {
	mu    sync.Mutex
	items []Diagnostic
}

// Report appends d.
func (c *DiagnosticCollector) Report(d Diagnostic) {
	c.mu.Lock()
	c.items = append(c.items, d)
	c.mu.Unlock()
}

// Diagnostics returns a copy of everything reported so far.
func (c *DiagnosticCollector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of collected diagnostics.
func (c *DiagnosticCollector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Count returns how many collected diagnostics carry subtype s.
func (c *DiagnosticCollector) Count(s Subtype) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.items {
		if d.Subtype == s {
			n++
		}
	}
	return n
}

// Tee fans a diagnostic out to every non-nil reporter.
func Tee(reporters ...Reporter) Reporter {
	var rs []Reporter
	for _, r := range reporters {
		if r != nil {
			rs = append(rs, r)
		}
	}
	return ReporterFunc(func(d Diagnostic) {
		for _, r := range rs {
			r.Report(d)
		}
	})
}

// Filter drops diagnostics matching any suppression entry before they reach r.
// Entries are "type" (all subtypes) or "type.subtype".
func Filter(r Reporter, suppress []string) Reporter {
	if len(suppress) == 0 {
		return r
	}
	patterns := append([]string(nil), suppress...)
	return ReporterFunc(func(d Diagnostic) {
		if !Suppressed(d, patterns) {
			r.Report(d)
		}
	})
}

// Suppressed reports whether d matches one of the suppression entries.
func Suppressed(d Diagnostic, suppress []string) bool {
	for _, p := range suppress {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if p == d.Type || p == d.Category() {
			return true
		}
	}
	return false
}

// NewLogReporter writes diagnostics to logger. Warnings log at warn level
// and errors at error level, with type, subtype and location as fields.
func NewLogReporter(logger *zap.Logger) Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return ReporterFunc(func(d Diagnostic) {
		fields := []zap.Field{
			zap.String("type", d.Type),
			zap.String("subtype", string(d.Subtype)),
		}
		if d.DocName != "" {
			fields = append(fields, zap.String("doc", d.DocName))
		}
		if d.Line > 0 {
			fields = append(fields, zap.Int("line", d.Line))
		}
		if d.Err != nil {
			fields = append(fields, zap.Error(d.Err))
		}
		if d.Severity == SeverityError {
			logger.Error(d.Message, fields...)
			return
		}
		logger.Warn(d.Message, fields...)
	})
}
