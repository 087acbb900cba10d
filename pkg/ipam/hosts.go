// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package ipam

import (
	"net/netip"

	"go4.org/netipx"

	"github.com/cilium/docker-ipam/pkg/ip"
)

// hostCursor walks the usable host addresses of a prefix in ascending order.
// The position survives across calls; once the end of the range has been
// handed out the cursor stays exhausted until it is rewound.
type hostCursor struct {
	hosts netipx.IPRange
	// last is the address handed out most recently, invalid if the cursor
	// has not moved since it was created or rewound.
	last      netip.Addr
	exhausted bool
}

func newHostCursor(prefix netip.Prefix) *hostCursor {
	return &hostCursor{hosts: ip.HostRange(prefix)}
}

// next returns the next host address and false once the range is used up.
func (c *hostCursor) next() (netip.Addr, bool) {
	if c.exhausted || !c.hosts.IsValid() {
		return netip.Addr{}, false
	}
	if !c.last.IsValid() {
		c.last = c.hosts.From()
	} else {
		c.last = c.last.Next()
	}
	if c.last == c.hosts.To() {
		c.exhausted = true
	}
	return c.last, true
}

// rewind moves the cursor back to the first host address.
func (c *hostCursor) rewind() {
	c.last = netip.Addr{}
	c.exhausted = false
}
