// Package id issues the int64 identifiers for feedback requests. Snowflake
// ids are time-ordered, so listing by id roughly matches submission order and
// two portal replicas never hand out the same id.
package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init configures the process-wide generator. Call once at startup before the
// first request is created; nodeID distinguishes replicas.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New returns an id for a new feedback request. Panics if Init was not called.
func New() int64 {
	return node.Generate().Int64()
}
