package assets

// DefaultStyleName is the name of the built-in page style.
const DefaultStyleName = "default"

// Built-in template names.
const (
	PageTemplateName  = "page"
	LaTeXTemplateName = "latex"
)
