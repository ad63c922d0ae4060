package ids

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Generator hands out unique, roughly time-ordered string ids.
type Generator struct {
	node *snowflake.Node
}

func NewGenerator(nodeID int64) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", nodeID, err)
	}
	return &Generator{node: node}, nil
}

func (g *Generator) New() string {
	return g.node.Generate().String()
}

// NewWithPrefix returns "<prefix>-<id>".
func (g *Generator) NewWithPrefix(prefix string) string {
	return prefix + "-" + g.New()
}
