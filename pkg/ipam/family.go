// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package ipam

import "net/netip"

// Family is the IP version of a pool
type Family int

const (
	// FamilyUnspec leaves the IP version open. A pool without a range
	// cannot be created with it.
	FamilyUnspec Family = iota
	// FamilyIPv4 is an IPv4 pool
	FamilyIPv4
	// FamilyIPv6 is an IPv6 pool
	FamilyIPv6
)

func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "ipv4"
	case FamilyIPv6:
		return "ipv6"
	}
	return ""
}

// FamilyOf returns the family of addr. IPv4-mapped IPv6 addresses are IPv6.
func FamilyOf(addr netip.Addr) Family {
	switch {
	case addr.Is4():
		return FamilyIPv4
	case addr.Is6():
		return FamilyIPv6
	}
	return FamilyUnspec
}

// FamilyFromV6 maps the V6 flag of a pool request to a family
func FamilyFromV6(v6 bool) Family {
	if v6 {
		return FamilyIPv6
	}
	return FamilyIPv4
}
