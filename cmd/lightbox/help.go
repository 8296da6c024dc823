package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lightbox <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Build documentation with lightbox images")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'lightbox help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lightbox build [flags] [SOURCEDIR]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build every Markdown document under SOURCEDIR.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  SOURCEDIR    Source directory (default: source.dir from config, or .)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
	fmt.Fprintln(w, "  -o, --output <dir>         Output directory (default: _build)")
	fmt.Fprintln(w, "  -b, --builder <list>       Formats: html, singlehtml, latex, text")
	fmt.Fprintln(w, "                             Repeat the flag or use a comma list")
	fmt.Fprintln(w, "  -w, --workers <n>          Parallel readers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Warnings:")
	fmt.Fprintln(w, "  -W, --fail-on-warning      Exit with code 5 when warnings occur")
	fmt.Fprintln(w, "      --suppress <list>      Suppress by type or type.subtype")
	fmt.Fprintln(w, "                             e.g. lightbox, lightbox.image_not_found")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "HTML:")
	fmt.Fprintln(w, "      --style <name>         Page style name or CSS file path")
	fmt.Fprintln(w, "      --asset-path <dir>     Override embedded styles, templates and static files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logging:")
	fmt.Fprintln(w, "  -q, --quiet                Only show warnings and errors")
	fmt.Fprintln(w, "  -v, --verbose              Show debug output")
	fmt.Fprintln(w, "      --log-format <s>       Console format: console, json")
	fmt.Fprintln(w, "      --log-file <path>      Also write JSON logs to a rotated file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  LIGHTBOX_CONFIG, LIGHTBOX_OUTPUT_DIR, LIGHTBOX_BUILDERS, LIGHTBOX_WORKERS,")
	fmt.Fprintln(w, "  LIGHTBOX_STYLE, LIGHTBOX_ASSET_PATH, LIGHTBOX_SUPPRESS_WARNINGS,")
	fmt.Fprintln(w, "  LIGHTBOX_LOG_LEVEL, LIGHTBOX_LOG_FORMAT, LIGHTBOX_LOG_FILE")
	fmt.Fprintln(w, "  Flags override environment, environment overrides the config file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 general error, 2 usage or config, 3 I/O, 5 warnings as errors")
}

// runHelp prints help for a command and returns the exit code.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: lightbox version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: lightbox help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
