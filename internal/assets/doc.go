// Package assets provides page styles, page templates and the lightbox
// static files used by the documentation build.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in page styles (default, minimal), the
// page and LaTeX templates, and the lightbox stylesheet and script shipped
// by the lightbox package.
//
// FilesystemLoader allows users to provide custom assets from a directory,
// with path traversal protection and symlink resolution.
//
// AssetResolver is the loader used by the build. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the asset is not
// found. This enables overriding specific assets while keeping defaults.
//
// # Directory Structure
//
// Assets are organized by type:
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # Page styles (e.g., default.css)
//	├── templates/
//	│   ├── page.tmpl            # HTML page template (html/template)
//	│   └── latex.tmpl           # LaTeX document template (text/template)
//	└── static/
//	    ├── lightbox.css         # Overrides the embedded lightbox stylesheet
//	    └── lightbox.js          # Overrides the embedded lightbox script
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
