// Package emit renders a scan's symbol list into the generated artifacts:
// the api.def definition file, the JSON symbol index, and the selective
// auto-import header.
package emit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/apidef/internal/symbols"
)

// WriteAPIDef renders the definition file: an API_TYPE entry per struct-like
// symbol and an API_FN entry per function prototype whose name starts with
// fnPrefix ("" matches all). Function definitions never appear; the
// prototype is the declaration of record.
func WriteAPIDef(w io.Writer, syms []symbols.Symbol, fnPrefix string) error {
	if _, err := fmt.Fprint(w, "/* AUTO-GENERATED: do not edit by hand */\n/* Generated by apidef */\n\n"); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, "/* TYPES */\n"); err != nil {
		return err
	}
	for i := range syms {
		s := &syms[i]
		if !s.Kind.IsType() {
			continue
		}
		if err := writeTypeEntry(w, s); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprint(w, "/* FUNCTIONS (prototypes) */\n"); err != nil {
		return err
	}
	for i := range syms {
		s := &syms[i]
		if s.Kind != symbols.KindFnProto {
			continue
		}
		if fnPrefix != "" && !strings.HasPrefix(s.Name, fnPrefix) {
			continue
		}
		if err := writeFnEntry(w, s); err != nil {
			return err
		}
	}
	return nil
}

// writeTypeEntry emits API_TYPE(VIS, name, <body lines>) where the body is
// everything between the snippet's first { and last }, each line
// right-trimmed and indented two spaces. Snippets without a brace pair are
// skipped.
func writeTypeEntry(w io.Writer, s *symbols.Symbol) error {
	lb := strings.IndexByte(s.Snippet, '{')
	rb := strings.LastIndexByte(s.Snippet, '}')
	if lb < 0 || rb <= lb {
		return nil
	}

	if _, err := fmt.Fprintf(w, "API_TYPE(%s, %s,\n", s.Visibility, s.Name); err != nil {
		return err
	}
	body := s.Snippet[lb+1 : rb]
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, ")\n\n")
	return err
}

// writeFnEntry splits the prototype signature into return type (everything
// before the last identifier preceding the paren) and argument text (from
// the paren on): API_FN(VIS, ret, name, (args)). Signatures without a paren
// are skipped.
func writeFnEntry(w io.Writer, s *symbols.Symbol) error {
	sig := s.Signature
	lp := strings.IndexByte(sig, '(')
	if lp < 0 {
		return nil
	}

	q := lp
	for q > 0 && (sig[q-1] == ' ' || sig[q-1] == '\t') {
		q--
	}
	for q > 0 && symbols.IsIdentChar(sig[q-1]) {
		q--
	}
	ret := strings.TrimRight(sig[:q], " \t")

	_, err := fmt.Fprintf(w, "API_FN(%s, %s, %s, %s)\n", s.Visibility, ret, s.Name, sig[lp:])
	return err
}

// WriteAPIDefFile writes the definition file to path, creating parent
// directories as needed.
func WriteAPIDefFile(path string, syms []symbols.Symbol, fnPrefix string) error {
	f, err := createWithParents(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteAPIDef(f, syms, fnPrefix); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// createWithParents opens path for writing, creating its directory first.
func createWithParents(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open output %s: %w", path, err)
	}
	return f, nil
}
