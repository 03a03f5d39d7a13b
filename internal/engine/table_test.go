package engine

import "testing"

func TestSymbolTableInsertionOrder(t *testing.T) {
	table := newSymbolTable()
	for _, s := range []string{"zeta", "alpha", "mid"} {
		table.GetOrCreate(s)
	}

	order := table.InsertionOrder()
	want := []string{"zeta", "alpha", "mid"}
	for i, def := range order {
		if def.Symbol != want[i] {
			t.Errorf("InsertionOrder()[%d] = %q, want %q", i, def.Symbol, want[i])
		}
	}

	sorted := table.SortedByName()
	wantSorted := []string{"alpha", "mid", "zeta"}
	for i, def := range sorted {
		if def.Symbol != wantSorted[i] {
			t.Errorf("SortedByName()[%d] = %q, want %q", i, def.Symbol, wantSorted[i])
		}
	}
}

func TestSymbolTableGetOrCreateIdempotent(t *testing.T) {
	table := newSymbolTable()
	first := table.GetOrCreate("sym")
	second := table.GetOrCreate("sym")
	if first != second {
		t.Error("GetOrCreate created a duplicate definition")
	}
	if table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", table.Len())
	}
}

func TestSymbolTableDelete(t *testing.T) {
	table := newSymbolTable()
	table.GetOrCreate("a")
	table.GetOrCreate("b")
	table.GetOrCreate("c")

	table.Delete("b")
	table.Delete("missing")

	if table.Get("b") != nil {
		t.Error("deleted symbol still retrievable")
	}
	order := table.InsertionOrder()
	if len(order) != 2 || order[0].Symbol != "a" || order[1].Symbol != "c" {
		t.Errorf("order after delete = %v, want [a c]", symbolNames(order))
	}
}

func TestSymbolTableRekey(t *testing.T) {
	table := newSymbolTable()
	table.GetOrCreate("first")
	def := table.GetOrCreate("app::Server")
	table.GetOrCreate("last")

	table.Rekey("app::Server", "Server")

	if table.Get("app::Server") != nil {
		t.Error("old key still present after rekey")
	}
	if got := table.Get("Server"); got != def {
		t.Error("new key does not resolve to the original definition")
	}
	if def.Symbol != "Server" {
		t.Errorf("definition symbol = %q, want Server", def.Symbol)
	}

	order := table.InsertionOrder()
	if order[1] != def {
		t.Error("rekey moved the definition out of its insertion position")
	}
}

func TestSymbolTableClear(t *testing.T) {
	table := newSymbolTable()
	table.GetOrCreate("a")
	table.Clear()

	if table.Len() != 0 || len(table.InsertionOrder()) != 0 {
		t.Error("Clear left definitions behind")
	}
}
