package scan

import (
	"regexp"
	"strings"

	"github.com/mvp-joe/apidef/internal/symbols"
)

// The three symbol patterns, compiled at package init.
//
// The function pattern is matched against one physical line at a time: a
// candidate must start and end on a single line up to its terminal ; or {.
// Multi-line prototypes are deliberately not extracted; their identifiers
// remain visible to plain tokenization. The struct patterns run over the
// whole stripped text and may span lines between the keyword and the brace.
var (
	reFn = regexp.MustCompile(
		`^[ \t]*[A-Za-z_][A-Za-z0-9_ \t*]*[ \t]+([A-Za-z_][A-Za-z0-9_]*)[ \t]*\([^;{}]*\)[ \t]*([;{])[ \t]*$`)

	reTypedefStruct = regexp.MustCompile(
		`(?m)^[ \t]*typedef\s+struct(\s+[A-Za-z_][A-Za-z0-9_]*)?\s*\{`)

	reStruct = regexp.MustCompile(
		`(?m)^[ \t]*struct\s+([A-Za-z_][A-Za-z0-9_]*)\s*\{`)
)

// matchTypedefStructs finds typedef struct { ... } Name; declarations.
// The name is the last identifier before the ; that follows the brace
// block; without one the anonymous placeholder is recorded.
func matchTypedefStructs(stripped, raw, file string, pathDefault symbols.Visibility) []symbols.Symbol {
	var out []symbols.Symbol

	pos := 0
	for pos < len(stripped) {
		loc := reTypedefStruct.FindStringIndex(stripped[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[0]

		_, blockEnd, ok := BraceBlock(stripped, start)
		if !ok {
			pos = start + 1
			continue
		}

		name := symbols.AnonTypedefName
		spanEnd := blockEnd
		if semi := strings.IndexByte(stripped[blockEnd:], ';'); semi >= 0 {
			if id := lastIdent(stripped[blockEnd : blockEnd+semi]); id != "" {
				name = id
			}
			spanEnd = blockEnd + semi + 1
		}

		ls := lineAt(stripped, start)
		le := lineAt(stripped, spanEnd)

		out = append(out, symbols.Symbol{
			Kind:       symbols.KindTypedefStruct,
			Visibility: effectiveVisibility(raw, ls, pathDefault),
			Name:       name,
			File:       file,
			LineStart:  ls,
			LineEnd:    le,
			Snippet:    sliceLines(raw, ls, le),
		})

		pos = spanEnd
	}
	return out
}

// matchStructs finds struct Tag { ... } declarations. A ; separated from
// the closing brace by nothing but whitespace is included in the span so
// inline variable declarations stay intact. Anonymous plain structs never
// match the pattern and are not recorded.
func matchStructs(stripped, raw, file string, pathDefault symbols.Visibility) []symbols.Symbol {
	var out []symbols.Symbol

	pos := 0
	for pos < len(stripped) {
		loc := reStruct.FindStringSubmatchIndex(stripped[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[0]
		tag := stripped[pos+loc[2] : pos+loc[3]]

		_, blockEnd, ok := BraceBlock(stripped, start)
		if !ok {
			pos = start + 1
			continue
		}

		spanEnd := blockEnd
		k := blockEnd
		for k < len(stripped) && isSpace(stripped[k]) {
			k++
		}
		if k < len(stripped) && stripped[k] == ';' {
			spanEnd = k + 1
		}

		ls := lineAt(stripped, start)
		le := lineAt(stripped, spanEnd)

		out = append(out, symbols.Symbol{
			Kind:       symbols.KindStruct,
			Visibility: effectiveVisibility(raw, ls, pathDefault),
			Name:       tag,
			File:       file,
			LineStart:  ls,
			LineEnd:    le,
			Snippet:    sliceLines(raw, ls, le),
		})

		pos = spanEnd
	}
	return out
}

// matchFunctions walks the stripped text line by line. A line matching the
// function pattern yields a prototype (terminal ;) spanning that one line,
// or a definition (terminal {) whose end is found by brace balancing from
// the line's start. Candidates whose braces never balance are skipped. The
// walk does not skip function bodies, so body lines are examined too.
func matchFunctions(stripped, raw, file string, pathDefault symbols.Visibility) []symbols.Symbol {
	var out []symbols.Symbol

	line := 1
	pos := 0
	for pos <= len(stripped) {
		next := len(stripped) + 1
		ln := ""
		if nl := strings.IndexByte(stripped[pos:], '\n'); nl >= 0 {
			ln = stripped[pos : pos+nl]
			next = pos + nl + 1
		} else {
			ln = stripped[pos:]
		}
		ln = strings.TrimSuffix(ln, "\r")

		if m := reFn.FindStringSubmatch(ln); m != nil {
			name, terminator := m[1], m[2]
			ls := line
			vis := effectiveVisibility(raw, ls, pathDefault)

			if terminator == ";" {
				snippet := sliceLines(raw, ls, ls)
				out = append(out, symbols.Symbol{
					Kind:       symbols.KindFnProto,
					Visibility: vis,
					Name:       name,
					File:       file,
					LineStart:  ls,
					LineEnd:    ls,
					Snippet:    snippet,
					Signature:  normalizeSignature(snippet),
				})
			} else if _, blockEnd, ok := BraceBlock(stripped, pos); ok {
				le := lineAt(stripped, blockEnd)
				snippet := sliceLines(raw, ls, le)
				out = append(out, symbols.Symbol{
					Kind:       symbols.KindFnDef,
					Visibility: vis,
					Name:       name,
					File:       file,
					LineStart:  ls,
					LineEnd:    le,
					Snippet:    snippet,
					Signature:  normalizeSignature(snippet),
				})
			}
		}

		pos = next
		line++
	}
	return out
}

// lineAt returns the 1-based line number of offset off in text.
func lineAt(text string, off int) int {
	return 1 + strings.Count(text[:off], "\n")
}

// sliceLines copies lines [ls, le] (1-based, inclusive) out of the original
// text and trims the trailing newline and any carriage returns with it.
func sliceLines(raw string, ls, le int) string {
	line := 1
	i := 0
	for ; i < len(raw) && line < ls; i++ {
		if raw[i] == '\n' {
			line++
		}
	}
	start := i
	for ; i < len(raw) && line <= le; i++ {
		if raw[i] == '\n' {
			line++
		}
	}
	return strings.TrimRight(raw[start:i], "\r\n")
}

// lastIdent returns the trailing identifier run nearest the end of s, or ""
// when s ends without one.
func lastIdent(s string) string {
	i := len(s)
	for i > 0 && !symbols.IsIdentChar(s[i-1]) {
		i--
	}
	end := i
	for i > 0 && symbols.IsIdentChar(s[i-1]) {
		i--
	}
	return s[i:end]
}

// normalizeSignature collapses whitespace runs in the first snippet line to
// single spaces and drops the trailing ; or { terminator.
func normalizeSignature(snippet string) string {
	first := snippet
	if nl := strings.IndexByte(first, '\n'); nl >= 0 {
		first = first[:nl]
	}

	var b strings.Builder
	b.Grow(len(first))
	inSpace := false
	for i := 0; i < len(first); i++ {
		if isSpace(first[i]) {
			if !inSpace {
				b.WriteByte(' ')
			}
			inSpace = true
		} else {
			inSpace = false
			b.WriteByte(first[i])
		}
	}

	s := strings.Trim(b.String(), " ")
	s = strings.TrimRight(s, ";{")
	return strings.TrimRight(s, " ")
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
