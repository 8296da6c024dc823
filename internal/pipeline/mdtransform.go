package pipeline

import (
	"bytes"
	"regexp"
)

// crlfOrCR matches Windows and classic Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Normalize strips a UTF-8 byte order mark and converts \r\n and \r to \n.
// Line numbers are preserved so diagnostics point at the source.
func Normalize(src []byte) []byte {
	src = bytes.TrimPrefix(src, utf8BOM)
	if bytes.IndexByte(src, '\r') < 0 {
		return src
	}
	return crlfOrCR.ReplaceAll(src, []byte("\n"))
}
