package runtime

import (
	"fmt"
	"sort"
)

// Symbol table for variables. Symbol tables are attached to scopes.
// Scopes link to their parent scope, so bindings of an outer scope are
// visible in inner scopes unless shadowed.
//

// --- Tags -------------------------------------------------------

// Tag is the symbols type to be stored into symbol tables. It may be a
// little surprising this type is not called 'Symbol', but I prefer the
// name 'Tag' because it is less confusing when dealing with grammars:
// grammars consist of symbols (within rules), too.
// Thus, symbols are used in the scope of the grammar, tags are used during
// evaluation of postfix streams.
//
type Tag struct {
	name  string
	Typ   int8
	Value float64
}

// Tag types.
const (
	Undefined int8 = iota
	NumberType
)

// NewTag creates a new tag of type Undefined.
func NewTag(nm string) *Tag {
	return &Tag{name: nm}
}

// Set binds a number to a tag and makes it a NumberType.
// Returns the tag (for chaining).
//
//    tag := NewTag("x").Set(3)
//
func (s *Tag) Set(value float64) *Tag {
	s.Typ = NumberType
	s.Value = value
	return s
}

// IsDefined is true if a value has been bound to the tag.
func (s *Tag) IsDefined() bool {
	return s.Typ != Undefined
}

// String is a debug Stringer for symbols.
func (s *Tag) String() string {
	if !s.IsDefined() {
		return fmt.Sprintf("<tag '%s' undefined>", s.Name())
	}
	return fmt.Sprintf("<tag '%s'=%g>", s.Name(), s.Value)
}

// Name gets the tag's name.
func (s *Tag) Name() string {
	return s.name
}

// === Symbol Tables =========================================================

// SymbolTable is a symbol table to store tags (map-like semantics).
type SymbolTable struct {
	Table map[string]*Tag
}

// NewSymbolTable creates an empty symbol table.
//
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{Table: make(map[string]*Tag)}
}

// ResolveTag checks for a tag in the symbol table.
// Returns a tag or nil.
//
func (t *SymbolTable) ResolveTag(tagname string) *Tag {
	return t.Table[tagname]
}

// ResolveOrDefineTag finds
// a tag in the table, inserts a new one if not found.
// Returns the tag and a flag, signalling wether the tag
// has already been present.
//
func (t *SymbolTable) ResolveOrDefineTag(tagname string) (*Tag, bool) {
	if len(tagname) == 0 {
		return nil, false
	}
	found := true
	tag := t.ResolveTag(tagname)
	if tag == nil {
		tag, _ = t.DefineTag(tagname)
		found = false
	}
	return tag, found
}

// DefineTag creates a new tag to store into the symbol table.
// The tag's name may not be empty.
// Overwrites existing tag with this name, if any.
// Returns the new tag and the previously stored tag (or nil).
//
func (t *SymbolTable) DefineTag(tagname string) (*Tag, *Tag) {
	if len(tagname) == 0 {
		return nil, nil
	}
	tag := NewTag(tagname)
	old := t.InsertTag(tag)
	return tag, old
}

// InsertTag inserts a pre-created symbol.
func (t *SymbolTable) InsertTag(tag *Tag) *Tag {
	old := t.ResolveTag(tag.name)
	t.Table[tag.name] = tag
	return old
}

// Size counts the tags in a symbol table.
func (t *SymbolTable) Size() int {
	return len(t.Table)
}

// Each iterates over each tag in the table, executing a mapper function.
func (t *SymbolTable) Each(mapper func(string, *Tag)) {
	for k, v := range t.Table {
		mapper(k, v)
	}
}

// === Scopes ================================================================

// Scope is a named scope, which may contain variable bindings. Scopes link
// back to a parent scope, forming a chain.
type Scope struct {
	Name   string
	Parent *Scope
	symtab *SymbolTable
}

// NewScope creates a new scope.
func NewScope(nm string, parent *Scope) *Scope {
	return &Scope{
		Name:   nm,
		Parent: parent,
		symtab: NewSymbolTable(),
	}
}

// Prettyfied Stringer.
func (s *Scope) String() string {
	return fmt.Sprintf("<scope %s>", s.Name)
}

// Tags returns the symbol table of a scope.
func (s *Scope) Tags() *SymbolTable {
	return s.symtab
}

// Bind binds a value to a tag of the scope, defining the tag if it is not
// present. Returns the tag and a flag, signalling wether the tag has already
// been present.
//
func (s *Scope) Bind(tagname string, value float64) (*Tag, bool) {
	tag, found := s.symtab.ResolveOrDefineTag(tagname)
	if tag != nil {
		tag.Set(value)
		tracer().P("scope", s.Name).Debugf("%s", tag)
	}
	return tag, found
}

// Bindings lists the defined tags of the scope, sorted by name.
func (s *Scope) Bindings() []*Tag {
	tags := make([]*Tag, 0, s.symtab.Size())
	s.symtab.Each(func(_ string, tag *Tag) {
		if tag.IsDefined() {
			tags = append(tags, tag)
		}
	})
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name() < tags[j].Name() })
	return tags
}

// ResolveTag finds a tag. Returns the tag (or nil) and a scope. The scope is
// the scope (of a scope chain) the tag was found in.
//
func (s *Scope) ResolveTag(tagname string) (*Tag, *Scope) {
	for ; s != nil; s = s.Parent {
		if tag := s.symtab.ResolveTag(tagname); tag != nil {
			return tag, s
		}
	}
	return nil, nil
}
