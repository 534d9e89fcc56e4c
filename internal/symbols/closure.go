package symbols

// ExpandClosure grows selected to its fixed point: for every symbol whose
// name is selected, identifiers found in its signature and snippet that name
// a known type are selected too, until a full pass adds nothing. The set
// only ever grows, so termination is bounded by the catalog's type count.
// Must run after all extraction has completed.
func ExpandClosure(cat *Catalog, selected Set) {
	changed := true
	for changed {
		changed = false
		for i := range cat.Symbols {
			s := &cat.Symbols[i]
			if !selected.Has(s.Name) {
				continue
			}

			ids := NewSet()
			if s.Signature != "" {
				CollectIdents(s.Signature, ids)
			}
			CollectIdents(s.Snippet, ids)

			for id := range ids {
				if cat.TypeNames.Has(id) && !selected.Has(id) {
					selected.Add(id)
					changed = true
				}
			}
		}
	}
}

// SelectNeeds computes the symbol names a piece of source text depends on.
// The identifiers used in text are intersected with known symbol names to
// form the seed (public symbols only unless includePrivate), which is then
// expanded to its type closure. Private types reached through the closure
// stay in the result; emitters apply the visibility mode again.
func SelectNeeds(cat *Catalog, text string, includePrivate bool) Set {
	used := NewSet()
	CollectIdents(text, used)

	selected := NewSet()
	for i := range cat.Symbols {
		s := &cat.Symbols[i]
		if !includePrivate && s.Visibility != Public {
			continue
		}
		if used.Has(s.Name) {
			selected.Add(s.Name)
		}
	}

	ExpandClosure(cat, selected)
	return selected
}
