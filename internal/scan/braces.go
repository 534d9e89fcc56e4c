package scan

// BraceBlock locates the first balanced { ... } block at or after start.
// open is the offset of the opening brace, end is one past the matching
// closing brace. ok is false when no { exists at or after start, or when
// the braces never return to depth zero before the end of the text; callers
// skip the candidate and resume scanning past its start. Braces inside
// string or character literals are counted like any others.
func BraceBlock(text string, start int) (open, end int, ok bool) {
	i := start
	for i < len(text) && text[i] != '{' {
		i++
	}
	if i >= len(text) {
		return 0, 0, false
	}

	depth := 0
	for j := i; j < len(text); j++ {
		switch text[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, j + 1, true
			}
		}
	}
	return 0, 0, false
}
