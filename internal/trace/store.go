// Package trace holds the append-only pen trace together with the
// simulation state that produced it.
package trace

import (
	"sync"

	"github.com/san-kum/spirograph/internal/geom"
	"github.com/san-kum/spirograph/internal/kinematics"
)

// Snapshot is an immutable view of the store. Points must not be written
// to.
type Snapshot struct {
	Points []geom.Vec
	State  kinematics.State
	Bounds geom.Bounds
}

func (s Snapshot) Len() int { return len(s.Points) }

// Last returns the most recent point, if any.
func (s Snapshot) Last() (geom.Vec, bool) {
	if len(s.Points) == 0 {
		return geom.Vec{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// Store keeps points and state under one lock so that Clear is observed as
// a single transition.
//
// Existing elements of points are never overwritten: Append only writes past
// the current length and Clear drops the slice instead of truncating it.
// Snapshots can therefore share the backing array without copying.
type Store struct {
	mu     sync.RWMutex
	points []geom.Vec
	state  kinematics.State
	bounds geom.Bounds
}

func New() *Store {
	return &Store{}
}

// Append commits the state reached by a sub-step together with the pen
// position it produced.
func (s *Store) Append(st kinematics.State, p geom.Vec) {
	s.mu.Lock()
	s.points = append(s.points, p)
	s.state = st
	s.bounds = s.bounds.Extend(p)
	s.mu.Unlock()
}

// AppendBatch is Append for a run of sub-steps under a single lock.
func (s *Store) AppendBatch(st kinematics.State, ps []geom.Vec) {
	if len(ps) == 0 {
		return
	}
	s.mu.Lock()
	s.points = append(s.points, ps...)
	s.state = st
	for _, p := range ps {
		s.bounds = s.bounds.Extend(p)
	}
	s.mu.Unlock()
}

// Clear empties the trace and resets the state to the origin.
func (s *Store) Clear() {
	s.mu.Lock()
	s.points = nil
	s.state = kinematics.State{}
	s.bounds = geom.Bounds{}
	s.mu.Unlock()
}

func (s *Store) State() kinematics.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.points)
	return Snapshot{
		Points: s.points[:n:n],
		State:  s.state,
		Bounds: s.bounds,
	}
}
