package output

import (
	"encoding/json"

	"dmca/internal/model"
)

// DefaultDisplayScale multiplies radii so small numeric spreads stay visible.
const DefaultDisplayScale = 1000

// ClusterNode is one cluster in the visualizer graph. Definitions holds the
// members in build order: nested ClusterNode values or DefinitionNode leaves.
type ClusterNode struct {
	Type        string        `json:"type"`
	Radius      float64       `json:"radius"`
	Vector      [4]float64    `json:"vector"`
	Definitions []interface{} `json:"definitions"`
}

// DefinitionNode is a definition leaf in the visualizer graph.
type DefinitionNode struct {
	Symbol      string     `json:"symbol"`
	Vector      [4]float64 `json:"vector"`
	Connections int        `json:"connections"`
}

// BuildGraph converts top-level clusters into the visualizer node tree.
// Radii are emitted pre-multiplied by displayScale; a non-positive scale
// falls back to DefaultDisplayScale.
func BuildGraph(clusters []*model.Cluster, displayScale float64) []*ClusterNode {
	if displayScale <= 0 {
		displayScale = DefaultDisplayScale
	}

	nodes := make([]*ClusterNode, 0, len(clusters))
	for _, c := range clusters {
		nodes = append(nodes, clusterNode(c, displayScale))
	}
	return nodes
}

func clusterNode(c *model.Cluster, displayScale float64) *ClusterNode {
	node := &ClusterNode{
		Type:        string(c.Type),
		Radius:      RoundFloat(c.Radius * displayScale),
		Vector:      roundVector(c.FeatureVector()),
		Definitions: make([]interface{}, 0, len(c.Members)),
	}

	for _, m := range c.Members {
		switch member := m.(type) {
		case *model.Cluster:
			node.Definitions = append(node.Definitions, clusterNode(member, displayScale))
		case *model.Definition:
			node.Definitions = append(node.Definitions, definitionNode(member))
		}
	}
	return node
}

func definitionNode(d *model.Definition) DefinitionNode {
	return DefinitionNode{
		Symbol:      d.Symbol,
		Vector:      roundVector(d.FeatureVector()),
		Connections: len(d.Connections),
	}
}

// EncodeGraph marshals the node tree as indented JSON with a trailing
// newline.
func EncodeGraph(nodes []*ClusterNode) ([]byte, error) {
	data, err := json.MarshalIndent(nodes, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
