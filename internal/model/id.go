package model

import (
	"strconv"
	"time"
)

// IDGenerator issues time-based identifiers: the millisecond unix timestamp
// rendered in decimal, matching the persisted id format. Ids are monotonic
// even when the clock reads the same millisecond twice.
type IDGenerator struct {
	now  func() time.Time
	last int64
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// NewIDGeneratorAt pins the generator's clock, for tests.
func NewIDGeneratorAt(now func() time.Time) *IDGenerator {
	return &IDGenerator{now: now}
}

func (g *IDGenerator) Next() string {
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}
