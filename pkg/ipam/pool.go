// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package ipam

import (
	"math/big"
	"net/netip"
	"sort"

	"github.com/cilium/docker-ipam/pkg/ip"
)

// Pool is a contiguous range of addresses of a single family. Addresses are
// handed out from the sub-range, which defaults to the whole range. Pool is
// not safe for concurrent use; the IPAM serializes access to it.
type Pool struct {
	family    Family
	rng       netip.Prefix
	subRange  netip.Prefix
	allocated map[netip.Addr]struct{}
	cursor    *hostCursor
}

// NewPool creates a pool for the CIDR rng, allocating from subRange. Empty
// strings stand for absent values. Without rng a random private range of the
// given family is picked. With rng the family is taken from the range and the
// family argument is ignored.
func NewPool(rng, subRange string, family Family) (*Pool, error) {
	var (
		pool netip.Prefix
		err  error
	)

	switch {
	case rng == "" && subRange != "":
		return nil, ErrInvalidRequest("sub-pool %s requested without a pool", subRange)
	case rng == "" && family == FamilyUnspec:
		return nil, ErrInvalidRequest("IP version must be specified for a random pool")
	case rng == "":
		pool = randomPrefix(family)
	default:
		pool, err = ip.ParsePrefix(rng)
		if err != nil {
			return nil, ErrInvalidRequest("invalid pool %q: %s", rng, err)
		}
	}

	sub := pool
	if subRange != "" {
		sub, err = ip.ParsePrefix(subRange)
		if err != nil {
			return nil, ErrInvalidRequest("invalid sub-pool %q: %s", subRange, err)
		}
		if !subnetOf(sub, pool) {
			return nil, ErrInvalidRequest("sub-pool %s is not a subnet of pool %s", sub, pool)
		}
	}

	return &Pool{
		family:    FamilyOf(pool.Addr()),
		rng:       pool,
		subRange:  sub,
		allocated: map[netip.Addr]struct{}{},
		cursor:    newHostCursor(sub),
	}, nil
}

// subnetOf returns true if sub is contained in prefix. Both must be masked.
func subnetOf(sub, prefix netip.Prefix) bool {
	return sub.Addr().BitLen() == prefix.Addr().BitLen() &&
		sub.Bits() >= prefix.Bits() &&
		prefix.Contains(sub.Addr())
}

// Equal returns true if both pools cover the same range and sub-range.
func (p *Pool) Equal(other *Pool) bool {
	return p.family == other.family &&
		p.rng == other.rng &&
		p.subRange == other.subRange
}

// Overlaps returns true if the ranges of both pools share at least one
// address. Pools of different families cannot be compared.
func (p *Pool) Overlaps(other *Pool) (bool, error) {
	if p.family != other.family {
		return false, ErrInvalidRequest("cannot compare %s pool %s with %s pool %s",
			p.family, p.rng, other.family, other.rng)
	}
	return p.rng.Overlaps(other.rng), nil
}

// Allocate reserves address in the pool and returns it in CIDR notation with
// the prefix length of the pool. An empty address picks the next free one.
func (p *Pool) Allocate(address string) (string, error) {
	var (
		addr netip.Addr
		err  error
	)

	if address == "" {
		addr, err = p.nextFree()
		if err != nil {
			return "", err
		}
	} else {
		addr, err = ip.ParseAddr(address)
		if err != nil {
			return "", ErrInvalidRequest("invalid address %q: %s", address, err)
		}
	}

	switch {
	case addr == ip.NetworkAddr(p.rng):
		return "", ErrInvalidRequest("cannot allocate network address %s of pool %s", addr, p.rng)
	case p.family == FamilyIPv4 && addr == ip.BroadcastAddr(p.rng):
		return "", ErrInvalidRequest("cannot allocate broadcast address %s of pool %s", addr, p.rng)
	case !p.rng.Contains(addr):
		return "", ErrInvalidRequest("address %s does not belong to pool %s", addr, p.rng)
	case p.isAllocated(addr):
		return "", ErrInvalidRequest("address %s is already in use", addr)
	}

	p.allocated[addr] = struct{}{}
	return netip.PrefixFrom(addr, p.rng.Bits()).String(), nil
}

// nextFree continues the scan where the previous one stopped. When the end of
// the sub-range is reached the scan starts over once from the beginning.
// Addresses behind the cursor that are released in the meantime are not
// picked up before that wrap.
func (p *Pool) nextFree() (netip.Addr, error) {
	for pass := 0; pass < 2; pass++ {
		if pass > 0 {
			p.cursor.rewind()
		}
		for addr, ok := p.cursor.next(); ok; addr, ok = p.cursor.next() {
			if !p.isAllocated(addr) {
				return addr, nil
			}
		}
	}
	return netip.Addr{}, ErrResourceExhausted("no free addresses in pool %s", p.subRange)
}

// Deallocate releases address. Releasing an address which is not in use is
// not an error.
func (p *Pool) Deallocate(address string) error {
	addr, err := ip.ParseAddr(address)
	if err != nil {
		return ErrInvalidRequest("invalid address %q: %s", address, err)
	}
	delete(p.allocated, addr)
	return nil
}

func (p *Pool) isAllocated(addr netip.Addr) bool {
	_, ok := p.allocated[addr]
	return ok
}

// String returns the canonical CIDR of the range. It is also the pool ID
// inside its address space.
func (p *Pool) String() string {
	return p.rng.String()
}

// Range returns the range of the pool
func (p *Pool) Range() netip.Prefix {
	return p.rng
}

// SubRange returns the range addresses are allocated from
func (p *Pool) SubRange() netip.Prefix {
	return p.subRange
}

// Family returns the IP version of the pool
func (p *Pool) Family() Family {
	return p.family
}

// Allocated returns the number of addresses in use
func (p *Pool) Allocated() int {
	return len(p.allocated)
}

// AllocatedAddresses returns the addresses in use in ascending order
func (p *Pool) AllocatedAddresses() []string {
	addrs := make([]netip.Addr, 0, len(p.allocated))
	for addr := range p.allocated {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool {
		return addrs[i].Less(addrs[j])
	})

	var result []string
	for _, addr := range addrs {
		result = append(result, addr.String())
	}
	return result
}

// Size returns the number of host addresses of the sub-range
func (p *Pool) Size() *big.Int {
	return ip.CountHosts(p.subRange)
}
