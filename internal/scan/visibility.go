package scan

import (
	"strings"

	"github.com/mvp-joe/apidef/internal/symbols"
)

// annotationWindow is how many lines above a symbol an @api marker applies.
const annotationWindow = 6

// DefaultVisibility derives a file's default visibility from its
// root-relative slash path: anything under an include/ or public/ segment is
// public, everything else private.
func DefaultVisibility(rel string) symbols.Visibility {
	if strings.Contains(rel, "/include/") || strings.Contains(rel, "/public/") ||
		strings.HasPrefix(rel, "include/") || strings.HasPrefix(rel, "public/") {
		return symbols.Public
	}
	return symbols.Private
}

// AnnotationVisibility looks for an "@api public" or "@api private" marker
// in the annotationWindow lines immediately above lineStart of the original
// (comment-bearing) text. The marker closest to the symbol wins; a marker on
// the symbol's own line never counts. found is false when the window holds
// no marker.
func AnnotationVisibility(raw string, lineStart int) (vis symbols.Visibility, found bool) {
	// Sliding window of the last annotationWindow lines, oldest first.
	recent := make([]string, 0, annotationWindow)

	pos := 0
	for line := 1; line < lineStart && pos < len(raw); line++ {
		var ln string
		if nl := strings.IndexByte(raw[pos:], '\n'); nl >= 0 {
			ln = raw[pos : pos+nl]
			pos += nl + 1
		} else {
			ln = raw[pos:]
			pos = len(raw)
		}

		if len(recent) == annotationWindow {
			copy(recent, recent[1:])
			recent[annotationWindow-1] = ln
		} else {
			recent = append(recent, ln)
		}
	}

	for i := len(recent) - 1; i >= 0; i-- {
		if strings.Contains(recent[i], "@api public") {
			return symbols.Public, true
		}
		if strings.Contains(recent[i], "@api private") {
			return symbols.Private, true
		}
	}
	return symbols.Private, false
}

// effectiveVisibility applies the annotation override to the path default.
func effectiveVisibility(raw string, lineStart int, pathDefault symbols.Visibility) symbols.Visibility {
	if vis, found := AnnotationVisibility(raw, lineStart); found {
		return vis
	}
	return pathDefault
}
