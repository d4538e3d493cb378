// Package memory provides map-backed implementations of the persistence
// ports. They back the unit tests and the local development mode; the
// production backend is the mysql package.
package memory

import (
	"context"
	"sync/atomic"
)

// IDGenerator hands out strictly increasing identifiers from an in-process
// counter.
type IDGenerator struct {
	last atomic.Int64
}

func NewIDGenerator() *IDGenerator { return &IDGenerator{} }

func (g *IDGenerator) NextID(_ context.Context) (int64, error) {
	return g.last.Add(1), nil
}
