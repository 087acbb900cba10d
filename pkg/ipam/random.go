// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package ipam

import (
	"math/rand"
	"net/netip"

	"github.com/cilium/docker-ipam/pkg/defaults"
)

var (
	randomPoolIPv4Base = netip.MustParsePrefix(defaults.RandomPoolIPv4Base)
	randomPoolIPv6Base = netip.MustParsePrefix(defaults.RandomPoolIPv6Base)
)

// randomPrefix returns a pool range for the given family picked at random
// from the private ranges used for ad-hoc pools: a /24 out of 172.16.0.0/12
// for IPv4 and a /64 out of fd00::/16 for IPv6.
func randomPrefix(family Family) netip.Prefix {
	if family == FamilyIPv6 {
		return randomSubnet(randomPoolIPv6Base, defaults.RandomPoolIPv6Bits)
	}
	return randomSubnet(randomPoolIPv4Base, defaults.RandomPoolIPv4Bits)
}

// randomSubnet fills the bits between the prefix length of base and bits
// with random values.
func randomSubnet(base netip.Prefix, bits int) netip.Prefix {
	b := base.Masked().Addr().AsSlice()
	for i := base.Bits(); i < bits; i++ {
		if rand.Intn(2) == 1 {
			b[i/8] |= 0x80 >> (i % 8)
		}
	}
	addr, _ := netip.AddrFromSlice(b)
	return netip.PrefixFrom(addr, bits)
}
