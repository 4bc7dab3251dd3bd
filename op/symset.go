package op

import (
	"bytes"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// SymbolSet is an ordered set of grammar symbols. Terminals sort before
// non-terminals, and symbols of the same kind sort by value. Iteration is
// therefore deterministic.
type SymbolSet struct {
	set *treeset.Set
}

func symbolComparator(s1, s2 interface{}) int {
	A := s1.(*Symbol)
	B := s2.(*Symbol)
	if A.kind != B.kind {
		return utils.IntComparator(int(A.kind), int(B.kind))
	}
	return utils.IntComparator(A.Value, B.Value)
}

// NewSymbolSet creates a set, optionally initialized with symbols.
func NewSymbolSet(syms ...*Symbol) *SymbolSet {
	S := &SymbolSet{set: treeset.NewWith(symbolComparator)}
	for _, A := range syms {
		S.set.Add(A)
	}
	return S
}

// Add inserts a symbol. It returns true if the symbol has not been present before.
func (S *SymbolSet) Add(A *Symbol) bool {
	if S.set.Contains(A) {
		return false
	}
	S.set.Add(A)
	return true
}

// Contains is a predicate: is A a member of S?
func (S *SymbolSet) Contains(A *Symbol) bool {
	return S.set.Contains(A)
}

// Union adds all symbols of other to S. It returns true if S changed.
func (S *SymbolSet) Union(other *SymbolSet) bool {
	if other == nil {
		return false
	}
	changed := false
	for _, x := range other.set.Values() {
		if S.Add(x.(*Symbol)) {
			changed = true
		}
	}
	return changed
}

// Size returns the number of symbols in S.
func (S *SymbolSet) Size() int {
	return S.set.Size()
}

// Empty is a predicate.
func (S *SymbolSet) Empty() bool {
	return S.set.Empty()
}

// Values returns the members of S in order.
func (S *SymbolSet) Values() []*Symbol {
	vals := S.set.Values()
	syms := make([]*Symbol, len(vals))
	for i, x := range vals {
		syms[i] = x.(*Symbol)
	}
	return syms
}

// Terminals returns the subset of terminals in S.
func (S *SymbolSet) Terminals() *SymbolSet {
	T := NewSymbolSet()
	for _, A := range S.Values() {
		if A.IsTerminal() {
			T.set.Add(A)
		}
	}
	return T
}

// NonTerminals returns the subset of non-terminals in S.
func (S *SymbolSet) NonTerminals() []*Symbol {
	var N []*Symbol
	for _, A := range S.Values() {
		if !A.IsTerminal() {
			N = append(N, A)
		}
	}
	return N
}

// Copy returns a shallow copy of S.
func (S *SymbolSet) Copy() *SymbolSet {
	return NewSymbolSet(S.Values()...)
}

// Equals is true if S and other contain the same symbols.
func (S *SymbolSet) Equals(other *SymbolSet) bool {
	if other == nil || S.Size() != other.Size() {
		return false
	}
	for _, A := range S.Values() {
		if !other.Contains(A) {
			return false
		}
	}
	return true
}

// IsSubsetOf is true if every member of S is a member of other.
func (S *SymbolSet) IsSubsetOf(other *SymbolSet) bool {
	for _, A := range S.Values() {
		if !other.Contains(A) {
			return false
		}
	}
	return true
}

func (S *SymbolSet) String() string {
	var b bytes.Buffer
	b.WriteString("{")
	for _, A := range S.Values() {
		b.WriteString(" ")
		b.WriteString(A.Name)
	}
	b.WriteString(" }")
	return b.String()
}
