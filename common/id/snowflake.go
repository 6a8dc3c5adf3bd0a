package id

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

// Init initializes the snowflake generator for this process. Must be called
// once before New.
func Init(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return fmt.Errorf("creating snowflake node: %w", err)
	}
	node = n
	return nil
}

// New returns a new process-unique, time-ordered id.
func New() int64 {
	return node.Generate().Int64()
}
