package engine

import (
	"strings"

	"dmca/internal/model"
)

// scopeTail returns the last segment of a scoped symbol, or the symbol
// itself when it carries no scope delimiters.
func scopeTail(symbol string) string {
	parts := splitScoped(symbol)
	if len(parts) == 0 {
		return symbol
	}
	return parts[len(parts)-1]
}

// splitScoped breaks a symbol on "::" and "/" delimiters, dropping empty
// segments so leading or doubled delimiters do not create phantom scopes.
func splitScoped(symbol string) []string {
	flattened := strings.ReplaceAll(symbol, "::", "/")
	raw := strings.Split(flattened, "/")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// decomposeNamespaces splits every scoped symbol into a nested context
// tree. The head segment establishes a root context, intermediates nest
// beneath it, and the definition survives re-keyed under its tail segment
// as a member of the deepest context.
func (e *Engine) decomposeNamespaces() {
	for _, def := range e.defs.InsertionOrder() {
		if !strings.Contains(def.Symbol, "::") && !strings.Contains(def.Symbol, "/") {
			continue
		}
		parts := splitScoped(def.Symbol)
		if len(parts) < 2 {
			continue
		}

		ctx := e.rootContext(parts[0])
		for _, part := range parts[1 : len(parts)-1] {
			ctx = childContext(ctx, part)
		}

		tail := parts[len(parts)-1]
		if existing := e.defs.Get(tail); existing != nil && existing != def {
			// The tail name is already taken: fold this definition into the
			// existing one, keeping the scoped spelling as history.
			existing.History = append(existing.History, def.Symbol)
			existing.AppendConnections(def.Connections)
			for _, ref := range def.Referenced {
				existing.AddReference(ref)
			}
			e.defs.Delete(def.Symbol)
			ctx.Add(existing)
			continue
		}

		e.defs.Rekey(def.Symbol, tail)
		ctx.Add(def)
	}
}

// rootContext finds or creates a top-level context by normalized name. New
// roots join the global cluster list so they appear in the output graph.
func (e *Engine) rootContext(name string) *model.Cluster {
	normalized := model.NormalizeSymbol(name)
	for _, ctx := range e.contexts {
		if model.NormalizeSymbol(ctx.Symbol) == normalized {
			return ctx
		}
	}
	ctx := model.NewContext(name)
	e.contexts = append(e.contexts, ctx)
	e.clusters = append(e.clusters, ctx)
	return ctx
}

// childContext finds or creates a direct child context by normalized name.
func childContext(parent *model.Cluster, name string) *model.Cluster {
	if child := parent.ChildContext(model.NormalizeSymbol(name)); child != nil {
		return child
	}
	child := model.NewContext(name)
	parent.Add(child)
	return child
}

// Context returns the first context, searching each root context and then
// its nested contexts, whose normalized name matches, or nil.
func (e *Engine) Context(name string) *model.Cluster {
	normalized := model.NormalizeSymbol(name)
	for _, ctx := range e.contexts {
		if found := ctx.FindContext(normalized); found != nil {
			return found
		}
	}
	return nil
}
