// Package textutil holds the small text transforms shared by prose, pseudo code
// and captured code blocks.
package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SplitLines splits raw text into lines, accepting both LF and CRLF endings.
func SplitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	return strings.Split(raw, "\n")
}

// Dedent removes the whitespace prefix common to all non-blank lines, turns
// whitespace-only lines into empty lines and drops leading and trailing blank lines.
// Interior indentation beyond the common prefix is kept verbatim.
func Dedent(lines []string) []string {
	out := make([]string, len(lines))
	prefix := ""
	first := true
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		out[i] = line
		if line == "" {
			continue
		}
		lead := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix = lead
			first = false
			continue
		}
		prefix = commonPrefix(prefix, lead)
	}
	for i, line := range out {
		out[i] = strings.TrimPrefix(line, prefix)
	}
	return trimBlankEdges(out)
}

// DedentString is Dedent over raw multi-line text.
func DedentString(raw string) []string {
	return Dedent(SplitLines(raw))
}

// NFC returns s in Unicode normalization form C.
func NFC(s string) string {
	return norm.NFC.String(s)
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

func trimBlankEdges(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && lines[start] == "" {
		start++
	}
	for end > start && lines[end-1] == "" {
		end--
	}
	return lines[start:end]
}
