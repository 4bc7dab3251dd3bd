package op

// Overrides is a list of explicit precedence relations. They are applied in
// order after the structural derivation of a precedence matrix, and replace
// structurally derived relations.
//
// Overrides name terminals by string. Entries naming a terminal which is not
// part of a grammar are skipped for that grammar.
type Overrides struct {
	entries []override
}

type override struct {
	a, b string
	rel  Relation
}

// NewOverrides creates an empty list of overrides.
func NewOverrides() *Overrides {
	return &Overrides{}
}

// Set adds the override a r b.
func (ov *Overrides) Set(a, b string, r Relation) *Overrides {
	ov.entries = append(ov.entries, override{a: a, b: b, rel: r})
	return ov
}

// Group makes all operators of a group equal to each other, including each
// operator to itself.
func (ov *Overrides) Group(ops ...string) *Overrides {
	for _, a := range ops {
		for _, b := range ops {
			ov.Set(a, b, Equal)
		}
	}
	return ov
}

// Tighter lets every operator in high bind tighter than every operator
// in low: h > l and l < h.
func (ov *Overrides) Tighter(high []string, low []string) *Overrides {
	for _, h := range high {
		for _, l := range low {
			ov.Set(h, l, Takes)
			ov.Set(l, h, Yields)
		}
	}
	return ov
}

// Len returns the number of override entries.
func (ov *Overrides) Len() int {
	return len(ov.entries)
}

func (ov *Overrides) apply(m *PrecedenceMatrix, g *Grammar) {
	applied := 0
	for _, e := range ov.entries {
		a, b := g.SymbolByName(e.a), g.SymbolByName(e.b)
		if a == nil || b == nil || !a.IsTerminal() || !b.IsTerminal() {
			tracer().Debugf("override (%s,%s) skipped for grammar %s", e.a, e.b, g.Name)
			continue
		}
		m.write(a, b, e.rel, true)
		applied++
	}
	tracer().Debugf("%d of %d overrides applied", applied, len(ov.entries))
}

// BoundaryOverrides returns the relations of the boundary marker '#' to the
// block markers '!' and parentheses:
//
//    # (      <
//    ) #      >
//    # !      =
//    ! #      =
//
func BoundaryOverrides() *Overrides {
	ov := NewOverrides()
	ov.Set(BoundaryName, "(", Yields)
	ov.Set(")", BoundaryName, Takes)
	ov.Set(BoundaryName, "!", Equal)
	ov.Set("!", BoundaryName, Equal)
	return ov
}

// ArithmeticOverrides returns the overrides for the four arithmetic operators,
// followed by the boundary overrides:
//
//    + - among each other    =
//    * / among each other    =
//    * / against + -         >   (and + - against * /  <)
//
func ArithmeticOverrides() *Overrides {
	ov := NewOverrides()
	ov.Group("+", "-")
	ov.Group("*", "/")
	ov.Tighter([]string{"*", "/"}, []string{"+", "-"})
	ov.entries = append(ov.entries, BoundaryOverrides().entries...)
	return ov
}
