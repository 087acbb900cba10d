// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package ipam

import (
	"slices"
)

// poolTable holds the pools of one family in insertion order
type poolTable struct {
	ids   []string
	pools map[string]*Pool
}

func newPoolTable() *poolTable {
	return &poolTable{pools: map[string]*Pool{}}
}

func (t *poolTable) insert(id string, pool *Pool) {
	t.ids = append(t.ids, id)
	t.pools[id] = pool
}

func (t *poolTable) remove(id string) bool {
	if _, ok := t.pools[id]; !ok {
		return false
	}
	delete(t.pools, id)
	if i := slices.Index(t.ids, id); i >= 0 {
		t.ids = slices.Delete(t.ids, i, i+1)
	}
	return true
}

func (t *poolTable) ordered() []*Pool {
	result := make([]*Pool, 0, len(t.ids))
	for _, id := range t.ids {
		result = append(result, t.pools[id])
	}
	return result
}

// Space is a named address space. It guarantees that no two pools of the same
// family within it overlap. Space is not safe for concurrent use.
type Space struct {
	name   string
	pools4 *poolTable
	pools6 *poolTable
}

// NewSpace returns an empty address space
func NewSpace(name string) *Space {
	return &Space{
		name:   name,
		pools4: newPoolTable(),
		pools6: newPoolTable(),
	}
}

// Name returns the name of the address space
func (s *Space) Name() string {
	return s.name
}

func (s *Space) table(family Family) *poolTable {
	if family == FamilyIPv6 {
		return s.pools6
	}
	return s.pools4
}

// AddPool registers pool and returns its ID. If an equal pool is already
// registered, the ID of the existing pool is returned and pool is discarded.
// Pools are checked in insertion order, so an earlier overlapping pool wins
// over a later equal one.
func (s *Space) AddPool(pool *Pool) (string, error) {
	table := s.table(pool.Family())
	for _, id := range table.ids {
		existing := table.pools[id]
		if existing.Equal(pool) {
			return id, nil
		}
		overlaps, err := existing.Overlaps(pool)
		if err != nil {
			return "", err
		}
		if overlaps {
			return "", ErrInvalidRequest("pool %s overlaps pool %s", pool, id)
		}
	}

	id := pool.String()
	table.insert(id, pool)
	return id, nil
}

// GetPool returns the pool registered under id
func (s *Space) GetPool(id string) (*Pool, error) {
	if pool, ok := s.pools4.pools[id]; ok {
		return pool, nil
	}
	if pool, ok := s.pools6.pools[id]; ok {
		return pool, nil
	}
	return nil, ErrNotFound("unknown pool %s", id)
}

// RemovePool unregisters the pool with the given id together with all of
// its allocations
func (s *Space) RemovePool(id string) error {
	if s.pools4.remove(id) || s.pools6.remove(id) {
		return nil
	}
	return ErrNotFound("unknown pool %s", id)
}

// Pools returns the pools of the given family in insertion order
func (s *Space) Pools(family Family) []*Pool {
	return s.table(family).ordered()
}
