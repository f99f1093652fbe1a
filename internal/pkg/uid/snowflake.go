package uid

import (
	"github.com/bwmarrin/snowflake"
)

// NumberID generates int64 identifiers.
type NumberID interface {
	// Generate returns a new int64 identifier.
	Generate() int64
}

// Snowflake generates time-ordered int64 IDs using the snowflake scheme.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a Snowflake generator for the given node number.
//
// nodeID must be unique per running instance (0-1023).
func NewSnowflake(nodeID int64) (*Snowflake, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new snowflake ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
