// Package collision maps signal names to column positions by 64-bit hash while
// staying correct when two names share a hash.
package collision

import (
	"github.com/arloliu/hspice/errs"
	"github.com/arloliu/hspice/internal/hash"
)

// Tracker indexes signal names by their xxHash64 ID.
//
// Lookups go through the ID map. When two distinct names hash to the same ID the
// tracker records the collision and resolves that ID by exact name comparison.
type Tracker struct {
	byID         map[uint64]int   // ID → position of the first name with that ID
	collided     map[uint64][]int // ID → positions of every name sharing that ID
	names        []string         // position → name, in tracking order
	hasCollision bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		byID:  make(map[uint64]int),
		names: make([]string, 0),
	}
}

// NewTrackerFromNames creates a tracker holding names at their slice positions.
// Duplicate names keep the first position.
func NewTrackerFromNames(names []string) *Tracker {
	t := NewTracker()
	for i, name := range names {
		if name == "" {
			t.names = append(t.names, name)
			continue
		}
		if err := t.track(name, hash.ID(name), i); err != nil {
			t.names = append(t.names, name)
		}
	}

	return t
}

// Track adds name with its ID at the next position.
//
// Returns ErrInvalidSignalName for an empty name and ErrDuplicateSignal when the
// same name was already tracked. A different name with the same ID is not an
// error; it only sets the collision flag.
func (t *Tracker) Track(name string, id uint64) error {
	if name == "" {
		return errs.ErrInvalidSignalName
	}

	return t.track(name, id, len(t.names))
}

func (t *Tracker) track(name string, id uint64, pos int) error {
	if first, exists := t.byID[id]; exists {
		if t.positionOf(id, name) >= 0 {
			return errs.ErrDuplicateSignal
		}

		t.hasCollision = true
		if t.collided == nil {
			t.collided = make(map[uint64][]int)
		}
		if _, ok := t.collided[id]; !ok {
			t.collided[id] = []int{first}
		}
		t.collided[id] = append(t.collided[id], pos)
	} else {
		t.byID[id] = pos
	}

	t.names = append(t.names, name)

	return nil
}

func (t *Tracker) positionOf(id uint64, name string) int {
	if positions, ok := t.collided[id]; ok {
		for _, pos := range positions {
			if t.names[pos] == name {
				return pos
			}
		}

		return -1
	}

	pos, ok := t.byID[id]
	if !ok || t.names[pos] != name {
		return -1
	}

	return pos
}

// Lookup returns the position of name, or false if it was never tracked.
func (t *Tracker) Lookup(name string) (int, bool) {
	pos := t.positionOf(hash.ID(name), name)
	return pos, pos >= 0
}

// Contains reports whether name was tracked.
func (t *Tracker) Contains(name string) bool {
	_, ok := t.Lookup(name)
	return ok
}

// HasCollision returns true if two tracked names share an ID.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Names returns the tracked names in position order.
func (t *Tracker) Names() []string {
	return t.names
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.names)
}

// Reset clears all tracked names and collision state, keeping capacity.
func (t *Tracker) Reset() {
	clear(t.byID)
	clear(t.collided)
	t.names = t.names[:0]
	t.hasCollision = false
}
