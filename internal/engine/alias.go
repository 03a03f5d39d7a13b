package engine

import "dmca/internal/model"

// unifyAliases merges definitions that are the same symbol under different
// naming conventions. Symbols are grouped by normalized name; in every
// group the last-added definition inherits the rest, on the grounds that
// later naming conventions supersede earlier ones. Dominated definitions
// leave their original spelling in the survivor's history and their
// connections as distinct list entries, then vanish from the table.
func (e *Engine) unifyAliases() {
	order := e.defs.InsertionOrder()

	groups := make(map[string][]*model.Definition)
	var groupOrder []string
	for _, def := range order {
		normalized := model.NormalizeSymbol(def.Symbol)
		if _, ok := groups[normalized]; !ok {
			groupOrder = append(groupOrder, normalized)
		}
		groups[normalized] = append(groups[normalized], def)
	}

	merged := 0
	for _, normalized := range groupOrder {
		group := groups[normalized]
		if len(group) < 2 {
			continue
		}

		inheritor := group[len(group)-1]
		for _, dominated := range group[:len(group)-1] {
			inheritor.History = append(inheritor.History, dominated.Symbol)
			inheritor.AppendConnections(dominated.Connections)
			for _, ref := range dominated.Referenced {
				inheritor.AddReference(ref)
			}
			e.defs.Delete(dominated.Symbol)
			merged++
		}
	}

	if merged > 0 {
		// Merged connection lists can carry several entries per summary
		// index, which pushes raw weight sums past the single-mention
		// ceiling. Re-run the stat calculator so every feature lands back
		// in [0, 1].
		e.computeStatistics()
		e.computeFileVectors()
		e.logger.Debug("unified aliases", map[string]interface{}{
			"merged":    merged,
			"survivors": e.defs.Len(),
		})
	}
}
