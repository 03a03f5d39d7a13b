package engine

import (
	"reflect"
	"testing"

	"dmca/internal/model"
)

func TestSplitScoped(t *testing.T) {
	tests := []struct {
		symbol string
		want   []string
	}{
		{"app::net::Server", []string{"app", "net", "Server"}},
		{"pkg/sub/Thing", []string{"pkg", "sub", "Thing"}},
		{"mixed::a/b", []string{"mixed", "a", "b"}},
		{"plain", []string{"plain"}},
		{"::leading", []string{"leading"}},
		{"double::::colon", []string{"double", "colon"}},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			if got := splitScoped(tt.symbol); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitScoped(%q) = %v, want %v", tt.symbol, got, tt.want)
			}
		})
	}
}

func TestNamespaceDecomposition(t *testing.T) {
	e := newTestEngine(t, [][]string{
		{"app::net::Server"},
	})
	e.Cluster()

	app := e.Context("app")
	if app == nil {
		t.Fatal("root context app not found")
	}
	if app.Type != model.ClusterContext {
		t.Errorf("app type = %v, want CONTEXT", app.Type)
	}

	net := app.ChildContext("net")
	if net == nil {
		t.Fatal("child context net not found under app")
	}

	var server *model.Definition
	for _, def := range net.Definitions() {
		if def.Symbol == "Server" {
			server = def
		}
	}
	if server == nil {
		t.Fatal("definition Server not found inside app::net context")
	}
	if e.Definition("Server") != server {
		t.Error("table lookup by tail segment does not resolve the decomposed definition")
	}
	if e.Definition("app::net::Server") != nil {
		t.Error("scoped spelling still present in the table after decomposition")
	}
}

func TestNamespaceRootAppearsTopLevel(t *testing.T) {
	e := newTestEngine(t, [][]string{
		{"app::net::Server"},
	})
	e.Cluster()

	var found bool
	for _, c := range e.TopLevelClusters() {
		if c.Type == model.ClusterContext && c.Symbol == "app" {
			found = true
		}
	}
	if !found {
		t.Error("root context app missing from top-level clusters")
	}
}

func TestNamespaceTailCollision(t *testing.T) {
	e := newTestEngine(t, [][]string{
		{"Server"},
		{"app::Server"},
	})
	e.Cluster()

	def := e.Definition("Server")
	if def == nil {
		t.Fatal("definition Server not found")
	}
	if got := len(e.Definitions()); got != 1 {
		t.Fatalf("got %d definitions, want the collision folded into 1", got)
	}

	var scoped bool
	for _, h := range def.History {
		if h == "app::Server" {
			scoped = true
		}
	}
	if !scoped {
		t.Errorf("history %v does not record the scoped spelling", def.History)
	}

	indices := make(map[int]bool)
	for _, conn := range def.Connections {
		indices[conn.Index] = true
	}
	if !indices[0] || !indices[1] {
		t.Errorf("folded definition connections %v, want indices 0 and 1", def.Connections)
	}
}
