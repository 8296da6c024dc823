package lightbox

import (
	"fmt"
	"strconv"
	"strings"
)

// DirectiveName is the fenced-block marker, written as "{lightbox}".
const DirectiveName = "lightbox"

const directiveMarker = "{" + DirectiveName + "}"

// Options holds the validated directive options.
type Options struct {
	Alt        string
	Caption    string
	Class      string
	Percentage []int
}

// Directive is one parsed {lightbox} block.
type Directive struct {
	// Argument is the image path, outer whitespace trimmed.
	Argument string
	Options  Options
	// Line is the 1-based source line of the opening fence.
	Line int
}

// IsDirectiveInfo reports whether a fenced block's info string opens a
// lightbox directive.
func IsDirectiveInfo(info string) bool {
	info = strings.TrimSpace(info)
	if !strings.HasPrefix(info, directiveMarker) {
		return false
	}
	rest := info[len(directiveMarker):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// ParseDirective parses the fence info string and body lines of a directive.
//
// The body holds ":name: value" option lines. A more-indented line continues
// the previous option's value. A blank line ends the options and anything
// after it, or any line that is not an option, is rejected because the
// directive takes no content.
func ParseDirective(info string, lines []string) (Directive, error) {
	var d Directive

	info = strings.TrimSpace(info)
	if !IsDirectiveInfo(info) {
		return d, fmt.Errorf("%w: info string %q is not %s", ErrMissingArgument, info, directiveMarker)
	}
	d.Argument = strings.TrimSpace(info[len(directiveMarker):])
	if d.Argument == "" {
		return d, fmt.Errorf("%w: no image path given", ErrMissingArgument)
	}

	raw, err := splitOptions(lines)
	if err != nil {
		return d, err
	}
	seen := make(map[string]bool, len(raw))
	for _, o := range raw {
		if seen[o.name] {
			return d, fmt.Errorf("%w: %q", ErrDuplicateOption, o.name)
		}
		seen[o.name] = true

		switch o.name {
		case "alt":
			d.Options.Alt = o.value
		case "caption":
			d.Options.Caption = o.value
		case "class":
			d.Options.Class = o.value
		case "percentage":
			p, err := ParsePercentages(o.value)
			if err != nil {
				return d, err
			}
			d.Options.Percentage = p
		default:
			return d, fmt.Errorf("%w: %q", ErrUnknownOption, o.name)
		}
	}
	return d, nil
}

type rawOption struct {
	name  string
	value string
}

func splitOptions(lines []string) ([]rawOption, error) {
	var opts []rawOption
	ended := false
	base := -1
	for _, line := range lines {
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			ended = true
			continue
		}
		// The first line sets the block's indentation.
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if base < 0 {
			base = indent
		}
		if indent >= base {
			line = line[base:]
		}
		if ended {
			return nil, fmt.Errorf("%w: %q", ErrUnexpectedContent, strings.TrimSpace(line))
		}

		if line[0] == ' ' || line[0] == '\t' {
			if len(opts) == 0 {
				return nil, fmt.Errorf("%w: %q", ErrUnexpectedContent, strings.TrimSpace(line))
			}
			last := &opts[len(opts)-1]
			cont := strings.TrimSpace(line)
			if last.value == "" {
				last.value = cont
			} else {
				last.value += "\n" + cont
			}
			continue
		}

		name, value, ok := optionLine(line)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnexpectedContent, strings.TrimSpace(line))
		}
		opts = append(opts, rawOption{name: name, value: value})
	}
	return opts, nil
}

// optionLine splits ":name: value". Names are case-insensitive.
func optionLine(line string) (string, string, bool) {
	if !strings.HasPrefix(line, ":") {
		return "", "", false
	}
	end := strings.Index(line[1:], ":")
	if end <= 0 {
		return "", "", false
	}
	name := line[1 : end+1]
	if strings.ContainsAny(name, " \t") {
		return "", "", false
	}
	rest := line[end+2:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return "", "", false
	}
	return strings.ToLower(name), strings.TrimSpace(rest), true
}

// ParsePercentages parses a list of positive integers separated by commas,
// or by whitespace when no comma is present.
func ParsePercentages(value string) ([]int, error) {
	var parts []string
	if strings.Contains(value, ",") {
		parts = strings.Split(value, ",")
	} else {
		parts = strings.Fields(value)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: percentage requires at least one value", ErrInvalidOption)
	}

	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: percentage %q is not a positive integer", ErrInvalidOption, p)
		}
		out = append(out, n)
	}
	return out, nil
}
