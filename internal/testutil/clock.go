package testutil

import (
	"strconv"
	"time"

	"vcr-go/internal/renamer"
)

// StubClock is a renamer.Clock that only moves when told to.
type StubClock struct {
	now time.Time
}

// FixedClock returns a StubClock set to 2024-01-15 10:30:00 UTC.
func FixedClock() *StubClock {
	return &StubClock{now: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)}
}

func (c *StubClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *StubClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// StubIDGenerator numbers runs "run-1", "run-2", ... in creation order.
type StubIDGenerator struct {
	issued int
}

func NewStubIDGenerator() *StubIDGenerator { return &StubIDGenerator{} }

func (g *StubIDGenerator) New() string {
	g.issued++
	return "run-" + strconv.Itoa(g.issued)
}

var (
	_ renamer.Clock       = (*StubClock)(nil)
	_ renamer.IDGenerator = (*StubIDGenerator)(nil)
)
