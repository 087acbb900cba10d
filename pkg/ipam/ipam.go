// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package ipam

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/cilium/docker-ipam/pkg/defaults"
	"github.com/cilium/docker-ipam/pkg/ipam/types"
	"github.com/cilium/docker-ipam/pkg/lock"
	"github.com/cilium/docker-ipam/pkg/logging"
	"github.com/cilium/docker-ipam/pkg/logging/logfields"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "ipam")

// PoolRequest describes a pool to be created
type PoolRequest struct {
	// Pool is the CIDR of the pool. If empty, a random private range of
	// Family is used.
	Pool string

	// SubPool is the CIDR addresses are allocated from. It must be
	// contained in Pool and defaults to it.
	SubPool string

	// Family is only consulted if Pool is empty
	Family Family

	// Options are the driver options passed along with the request
	Options map[string]string
}

// IPAM is the registry of address spaces. All spaces, pools and allocations
// are guarded by a single lock.
type IPAM struct {
	mutex   lock.RWMutex
	spaces  map[string]*Space
	metrics MetricsAPI
}

// NewIPAM returns an IPAM with the default local and global address spaces.
// If metrics is nil, no metrics are maintained.
func NewIPAM(metrics MetricsAPI) *IPAM {
	if metrics == nil {
		metrics = NewNoOpMetrics()
	}
	return &IPAM{
		spaces: map[string]*Space{
			defaults.LocalAddressSpace:  NewSpace(defaults.LocalAddressSpace),
			defaults.GlobalAddressSpace: NewSpace(defaults.GlobalAddressSpace),
		},
		metrics: metrics,
	}
}

// DefaultAddressSpaces returns the names of the local and global address
// spaces
func (i *IPAM) DefaultAddressSpaces() (local, global string) {
	return defaults.LocalAddressSpace, defaults.GlobalAddressSpace
}

// RequestPool creates a pool in the given address space, or returns the
// existing pool if an equal one has been requested before. It returns the
// pool id inside the space and the CIDR of the pool.
func (i *IPAM) RequestPool(space string, req PoolRequest) (id, cidr string, err error) {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	defer func() { i.metrics.IncPoolOp(OpRequest, Outcome(err)) }()

	s, ok := i.spaces[space]
	if !ok {
		return "", "", ErrInvalidRequest("unknown address space %q", space)
	}

	pool, err := NewPool(req.Pool, req.SubPool, req.Family)
	if err != nil {
		return "", "", err
	}

	id, err = s.AddPool(pool)
	if err != nil {
		return "", "", err
	}
	i.updateGaugesLocked(s)

	log.WithFields(logrus.Fields{
		logfields.AddressSpace: space,
		logfields.PoolID:       id,
		logfields.CIDR:         pool.Range(),
		logfields.SubCIDR:      pool.SubRange(),
		logfields.Options:      req.Options,
	}).Debug("Pool requested")

	return id, pool.String(), nil
}

// ReleasePool removes the pool id from the given address space. All
// addresses allocated from it are released with it.
func (i *IPAM) ReleasePool(space, id string) (err error) {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	defer func() { i.metrics.IncPoolOp(OpRelease, Outcome(err)) }()

	s, err := i.getSpaceLocked(space)
	if err != nil {
		return err
	}
	if err = s.RemovePool(id); err != nil {
		return err
	}
	i.updateGaugesLocked(s)

	log.WithFields(logrus.Fields{
		logfields.AddressSpace: space,
		logfields.PoolID:       id,
	}).Debug("Pool released")

	return nil
}

// RequestAddress allocates address from the pool id. An empty address
// allocates the next free address of the pool. The address is returned with
// the prefix length of the pool.
func (i *IPAM) RequestAddress(space, id, address string) (result string, err error) {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	defer func() { i.metrics.IncAddressOp(OpRequest, Outcome(err)) }()

	s, pool, err := i.getPoolLocked(space, id)
	if err != nil {
		return "", err
	}
	result, err = pool.Allocate(address)
	if err != nil {
		return "", err
	}
	i.updateGaugesLocked(s)

	log.WithFields(logrus.Fields{
		logfields.AddressSpace: space,
		logfields.PoolID:       id,
		logfields.IPAddr:       result,
	}).Debug("Address allocated")

	return result, nil
}

// ReleaseAddress releases address in the pool id. Releasing an address which
// is not allocated succeeds.
func (i *IPAM) ReleaseAddress(space, id, address string) (err error) {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	defer func() { i.metrics.IncAddressOp(OpRelease, Outcome(err)) }()

	s, pool, err := i.getPoolLocked(space, id)
	if err != nil {
		return err
	}
	if err = pool.Deallocate(address); err != nil {
		return err
	}
	i.updateGaugesLocked(s)

	log.WithFields(logrus.Fields{
		logfields.AddressSpace: space,
		logfields.PoolID:       id,
		logfields.IPAddr:       address,
	}).Debug("Address released")

	return nil
}

// Dump returns a snapshot of all address spaces
func (i *IPAM) Dump() *types.Status {
	i.mutex.RLock()
	defer i.mutex.RUnlock()

	names := make([]string, 0, len(i.spaces))
	for name := range i.spaces {
		names = append(names, name)
	}
	sort.Strings(names)

	status := &types.Status{Spaces: make([]types.SpaceStatus, 0, len(names))}
	for _, name := range names {
		s := i.spaces[name]
		spaceStatus := types.SpaceStatus{Name: name}
		for _, family := range []Family{FamilyIPv4, FamilyIPv6} {
			for _, pool := range s.Pools(family) {
				spaceStatus.Pools = append(spaceStatus.Pools, types.PoolStatus{
					ID:        JoinPoolID(name, pool.String()),
					Pool:      pool.Range().String(),
					SubPool:   pool.SubRange().String(),
					Family:    family.String(),
					Size:      pool.Size().String(),
					Allocated: pool.AllocatedAddresses(),
				})
			}
		}
		status.Spaces = append(status.Spaces, spaceStatus)
	}
	return status
}

func (i *IPAM) getSpaceLocked(space string) (*Space, error) {
	s, ok := i.spaces[space]
	if !ok {
		return nil, ErrNotFound("unknown address space %q", space)
	}
	return s, nil
}

func (i *IPAM) getPoolLocked(space, id string) (*Space, *Pool, error) {
	s, err := i.getSpaceLocked(space)
	if err != nil {
		return nil, nil, err
	}
	pool, err := s.GetPool(id)
	if err != nil {
		return nil, nil, err
	}
	return s, pool, nil
}

func (i *IPAM) updateGaugesLocked(s *Space) {
	for _, family := range []Family{FamilyIPv4, FamilyIPv6} {
		pools := s.Pools(family)
		allocated := 0
		for _, pool := range pools {
			allocated += pool.Allocated()
		}
		i.metrics.SetPools(s.Name(), family.String(), len(pools))
		i.metrics.SetAllocatedIPs(s.Name(), family.String(), allocated)
	}
}
