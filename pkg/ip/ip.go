// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package ip

import (
	"fmt"
	"math/big"
	"net/netip"
	"strings"

	"go4.org/netipx"
)

// ParsePrefix parses a CIDR and masks off any host bits, so "10.0.0.5/24"
// yields 10.0.0.0/24. A CIDR specified in host format (no prefix length) is
// interpreted as a prefix covering only that address.
func ParsePrefix(s string) (netip.Prefix, error) {
	if !strings.Contains(s, "/") {
		addr, err := ParseAddr(s)
		if err != nil {
			return netip.Prefix{}, err
		}
		return netip.PrefixFrom(addr, addr.BitLen()), nil
	}

	prefix, err := netip.ParsePrefix(s)
	if err != nil {
		return netip.Prefix{}, err
	}
	return prefix.Masked(), nil
}

// ParseAddr parses an IPv4 or IPv6 address. Addresses carrying an IPv6 zone
// are rejected as they cannot be part of any prefix.
func ParseAddr(s string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, err
	}
	if addr.Zone() != "" {
		return netip.Addr{}, fmt.Errorf("ParseAddr(%q): zone not allowed", s)
	}
	return addr, nil
}

// NetworkAddr returns the first address of the prefix.
func NetworkAddr(prefix netip.Prefix) netip.Addr {
	return prefix.Masked().Addr()
}

// BroadcastAddr returns the last address of the prefix. Only IPv4 treats it
// as a broadcast address, for IPv6 it is an ordinary host.
func BroadcastAddr(prefix netip.Prefix) netip.Addr {
	return netipx.PrefixLastIP(prefix.Masked())
}

// HostRange returns the inclusive range of usable host addresses of the
// prefix. The network address is never a host, neither is the IPv4 broadcast
// address. Point-to-point (/31, /127) and single address (/32, /128) prefixes
// use all of their addresses.
func HostRange(prefix netip.Prefix) netipx.IPRange {
	r := netipx.RangeOfPrefix(prefix.Masked())
	if hostBits(prefix) <= 1 {
		return r
	}

	from, to := r.From().Next(), r.To()
	if prefix.Addr().Is4() {
		to = to.Prev()
	}
	return netipx.IPRangeFrom(from, to)
}

// CountHosts returns the number of addresses in HostRange(prefix).
func CountHosts(prefix netip.Prefix) *big.Int {
	switch bits := hostBits(prefix); bits {
	case 0:
		return big.NewInt(1)
	case 1:
		return big.NewInt(2)
	default:
		count := new(big.Int).Lsh(big.NewInt(1), uint(bits))
		excluded := int64(1)
		if prefix.Addr().Is4() {
			excluded = 2
		}
		return count.Sub(count, big.NewInt(excluded))
	}
}

func hostBits(prefix netip.Prefix) int {
	return prefix.Addr().BitLen() - prefix.Bits()
}
