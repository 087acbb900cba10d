// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package types

// Status is a snapshot of the IPAM state across all address spaces
type Status struct {
	// Spaces is the list of address spaces, sorted by name
	Spaces []SpaceStatus `json:"spaces"`
}

// SpaceStatus is the state of a single address space
type SpaceStatus struct {
	// Name is the name of the address space, e.g. "local"
	Name string `json:"name"`

	// Pools lists the pools of the address space, IPv4 pools first, each
	// family in the order the pools were requested
	//
	// +optional
	Pools []PoolStatus `json:"pools,omitempty"`
}

// PoolStatus is the state of a single pool
type PoolStatus struct {
	// ID is the pool ID as handed out to Docker, i.e. prefixed with the
	// address space
	ID string `json:"id"`

	// Pool is the CIDR of the pool
	Pool string `json:"pool"`

	// SubPool is the CIDR addresses are allocated from
	SubPool string `json:"sub-pool"`

	// Family is "ipv4" or "ipv6"
	Family string `json:"family"`

	// Size is the number of host addresses in the sub pool. It is a decimal
	// string as IPv6 pools easily exceed 64 bits.
	Size string `json:"size"`

	// Allocated is the list of addresses in use, in ascending order
	//
	// +optional
	Allocated []string `json:"allocated,omitempty"`
}

// Allocations returns the total number of addresses in use in the space
func (s *SpaceStatus) Allocations() int {
	n := 0
	for _, p := range s.Pools {
		n += len(p.Allocated)
	}
	return n
}
