// Package scan implements the heuristic source scanner: comment stripping,
// brace balancing, the three symbol matchers, visibility resolution, file
// discovery, and the per-file extraction pipeline.
package scan

import "strings"

// StripComments removes // comments up to (but not including) the newline
// and /* */ comments entirely, newlines included. An unterminated block
// comment removes the rest of the text. Comment markers inside string or
// character literals are not recognized; a known limitation of the
// heuristic.
//
// Line numbers for symbols are always counted against the stripped text;
// snippets are sliced from the original by those numbers. Block comments
// spanning lines therefore shift reported line numbers for everything
// below them.
func StripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))

	i, n := 0, len(src)
	for i < n {
		if src[i] == '/' && i+1 < n && src[i+1] == '/' {
			i += 2
			for i < n && src[i] != '\n' {
				i++
			}
		} else if src[i] == '/' && i+1 < n && src[i+1] == '*' {
			i += 2
			for i+1 < n && !(src[i] == '*' && src[i+1] == '/') {
				i++
			}
			if i+1 < n {
				i += 2
			} else {
				i = n
			}
		} else {
			b.WriteByte(src[i])
			i++
		}
	}
	return b.String()
}
