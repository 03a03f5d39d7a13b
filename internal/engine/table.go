package engine

import (
	"sort"

	"dmca/internal/model"
)

// symbolTable is an insertion-ordered definition map. Iteration order must
// be deterministic for every pass, so the table tracks key order explicitly
// instead of relying on Go map iteration.
type symbolTable struct {
	byName map[string]*model.Definition
	order  []string
}

func newSymbolTable() *symbolTable {
	return &symbolTable{byName: make(map[string]*model.Definition)}
}

// Get returns the definition for a symbol, or nil.
func (t *symbolTable) Get(symbol string) *model.Definition {
	return t.byName[symbol]
}

// GetOrCreate returns the definition for a symbol, creating it at the end of
// the insertion order when absent.
func (t *symbolTable) GetOrCreate(symbol string) *model.Definition {
	if def, ok := t.byName[symbol]; ok {
		return def
	}
	def := &model.Definition{Symbol: symbol}
	t.byName[symbol] = def
	t.order = append(t.order, symbol)
	return def
}

// Delete removes a symbol from the table.
func (t *symbolTable) Delete(symbol string) {
	if _, ok := t.byName[symbol]; !ok {
		return
	}
	delete(t.byName, symbol)
	for i, name := range t.order {
		if name == symbol {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Rekey renames a symbol in place, keeping its insertion position.
func (t *symbolTable) Rekey(oldSymbol, newSymbol string) {
	def, ok := t.byName[oldSymbol]
	if !ok || oldSymbol == newSymbol {
		return
	}
	delete(t.byName, oldSymbol)
	def.Symbol = newSymbol
	t.byName[newSymbol] = def
	for i, name := range t.order {
		if name == oldSymbol {
			t.order[i] = newSymbol
			break
		}
	}
}

// Len returns the number of definitions in the table.
func (t *symbolTable) Len() int { return len(t.byName) }

// InsertionOrder returns the definitions oldest-first. The slice is a
// snapshot; deleting from the table while ranging over it is safe.
func (t *symbolTable) InsertionOrder() []*model.Definition {
	defs := make([]*model.Definition, 0, len(t.order))
	for _, name := range t.order {
		defs = append(defs, t.byName[name])
	}
	return defs
}

// SortedByName returns the definitions sorted by symbol name. Statistics and
// similarity passes iterate this snapshot so results are reproducible.
func (t *symbolTable) SortedByName() []*model.Definition {
	defs := t.InsertionOrder()
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Symbol < defs[j].Symbol
	})
	return defs
}

// Clear drops every definition.
func (t *symbolTable) Clear() {
	t.byName = make(map[string]*model.Definition)
	t.order = nil
}
