package symbols

// Catalog holds one scan's ordered symbol list together with the name
// partitions the closure resolver and the needs workflow rely on.
type Catalog struct {
	Symbols []Symbol

	// AllNames contains every symbol name; TypeNames the struct-like
	// subset; FnNames the function subset. A name appears in a partition
	// once no matter how many symbols share it.
	AllNames  Set
	TypeNames Set
	FnNames   Set
}

// NewCatalog builds the name partitions for syms. The slice is referenced,
// not copied; callers must not mutate it afterwards.
func NewCatalog(syms []Symbol) *Catalog {
	c := &Catalog{
		Symbols:   syms,
		AllNames:  NewSet(),
		TypeNames: NewSet(),
		FnNames:   NewSet(),
	}
	for i := range syms {
		s := &syms[i]
		c.AllNames.Add(s.Name)
		if s.Kind.IsFunction() {
			c.FnNames.Add(s.Name)
		}
		if s.Kind.IsType() {
			c.TypeNames.Add(s.Name)
		}
	}
	return c
}

// ByName returns every symbol named name, in scan order. A name can map to
// several symbols (a prototype and a definition commonly share one).
func (c *Catalog) ByName(name string) []Symbol {
	var out []Symbol
	for i := range c.Symbols {
		if c.Symbols[i].Name == name {
			out = append(out, c.Symbols[i])
		}
	}
	return out
}
