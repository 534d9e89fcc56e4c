package emit

import (
	"fmt"
	"io"

	"github.com/mvp-joe/apidef/internal/symbols"
)

// DefaultAPIHeader is the header included at the end of the generated
// auto-import file unless the config overrides it.
const DefaultAPIHeader = "framework/api.h"

// WriteAutoImport renders the selective import header for a closure result.
// selected is the final selection set; includePrivate mirrors the needs
// visibility mode. Symbols failing the mode are filtered here even when the
// closure selected them (private types reachable from public seeds). A name
// shared by several symbols (a prototype and its definition) emits one
// IMPORT_ line per symbol; the duplicate is harmless to the preprocessor.
func WriteAutoImport(w io.Writer, syms []symbols.Symbol, selected symbols.Set, includePrivate bool, apiHeader string) error {
	if apiHeader == "" {
		apiHeader = DefaultAPIHeader
	}

	privateToo := 0
	if includePrivate {
		privateToo = 1
	}
	if _, err := fmt.Fprintf(w, "#pragma once\n#define API_SELECTIVE 1\n#define API_VIS_PRIVATE_TOO %d\n\n", privateToo); err != nil {
		return err
	}

	for i := range syms {
		s := &syms[i]
		if !selected.Has(s.Name) {
			continue
		}
		if !includePrivate && s.Visibility != symbols.Public {
			continue
		}
		if _, err := fmt.Fprintf(w, "#define IMPORT_%s 1\n", s.Name); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\n#include %q\n", apiHeader)
	return err
}

// WriteAutoImportFile writes the auto-import header to path, creating
// parent directories as needed.
func WriteAutoImportFile(path string, syms []symbols.Symbol, selected symbols.Set, includePrivate bool, apiHeader string) error {
	f, err := createWithParents(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteAutoImport(f, syms, selected, includePrivate, apiHeader); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
