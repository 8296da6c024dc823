package lightbox

import (
	"path/filepath"

	"github.com/yuin/goldmark/parser"
)

// SerialCategory is the counter category used for checkbox ids.
const SerialCategory = "lightbox"

// AssetTracker records that a document depends on a source-relative file so
// the host can copy and version it.
type AssetTracker interface {
	AddFile(docName, path string)
}

// AssetTrackerFunc adapts a function to AssetTracker.
type AssetTrackerFunc func(docName, path string)

// AddFile calls f(docName, path).
func (f AssetTrackerFunc) AddFile(docName, path string) { f(docName, path) }

// Environment is the per-document state a directive runs against.
// One Environment belongs to exactly one document; it is not safe for
// concurrent use, and it must not be shared between documents.
type Environment struct {
	// DocName is the slash-separated, source-relative document path without
	// extension, e.g. "guide/install".
	DocName string

	// SourceDir is the trusted root every local image must resolve within.
	SourceDir string

	// Assets receives resolved image paths. Nil means no tracking.
	Assets AssetTracker

	// Reporter receives diagnostics. Nil falls back to the extension's
	// reporter, then to Discard.
	Reporter Reporter

	serials map[string]int
}

// NewEnvironment creates an Environment for one document.
func NewEnvironment(docName, sourceDir string) *Environment {
	return &Environment{DocName: docName, SourceDir: sourceDir}
}

// NewSerial returns the next number in category, starting at 1.
// Counters are scoped to this document.
func (e *Environment) NewSerial(category string) int {
	if e.serials == nil {
		e.serials = make(map[string]int)
	}
	e.serials[category]++
	return e.serials[category]
}

// SourcePath converts a source-relative path to a filesystem path under
// SourceDir.
func (e *Environment) SourcePath(rel string) string {
	return filepath.Join(e.SourceDir, filepath.FromSlash(rel))
}

func (e *Environment) report(d Diagnostic) {
	if d.Type == "" {
		d.Type = WarningType
	}
	if d.DocName == "" {
		d.DocName = e.DocName
	}
	if e.Reporter == nil {
		return
	}
	e.Reporter.Report(d)
}

func (e *Environment) addFile(path string) {
	if e.Assets != nil {
		e.Assets.AddFile(e.DocName, path)
	}
}

var environmentKey = parser.NewContextKey()

// NewContext returns a goldmark parser context carrying env.
func NewContext(env *Environment) parser.Context {
	pc := parser.NewContext()
	pc.Set(environmentKey, env)
	return pc
}

// WithEnvironment stores env in an existing parser context.
func WithEnvironment(pc parser.Context, env *Environment) {
	pc.Set(environmentKey, env)
}

// EnvironmentFrom returns the Environment stored in pc, or nil.
func EnvironmentFrom(pc parser.Context) *Environment {
	if pc == nil {
		return nil
	}
	env, _ := pc.Get(environmentKey).(*Environment)
	return env
}
