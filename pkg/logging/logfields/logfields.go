// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

// Package logfields defines common logging fields which are used across packages
package logfields

import (
	"fmt"
)

const (
	// LogSubsys is the field denoting the subsystem when logging
	LogSubsys = "subsys"

	// Signal is the field to print os signals on exit etc.
	Signal = "signal"

	// Error is the field holding an error
	Error = "error"

	// Path is a filesystem path. It can be a file or directory.
	Path = "file-path"

	// Group is the name of a unix group owning a file
	Group = "group"

	// Address is a network address used by a listener (host:port)
	Address = "address"

	// AddressSpace is the name of an IPAM address space (local, global)
	AddressSpace = "addressSpace"

	// PoolID is the identifier of an IPAM pool within an address space
	PoolID = "poolID"

	// CIDR is a IPv4/IPv4 subnet/CIDR
	CIDR = "cidr"

	// SubCIDR is the sub-range of a pool used for automatic allocation
	SubCIDR = "subCIDR"

	// IPAddr is an IPV4 or IPv6 address
	IPAddr = "ipAddr"

	// Family is the address family (ipv4, ipv6)
	Family = "family"

	// Options are the driver options of an IPAM request
	Options = "options"

	// Method is the name of a plugin API method
	Method = "method"

	// Request is a request object received by a plugin API handler
	Request = "request"

	// Response is a response object sent by a plugin API handler
	Response = "response"

	// StatusCode is an HTTP status code
	StatusCode = "statusCode"
)

// Repr formats an object with the Stringer interface representation if
// available, otherwise it falls back to the %+v representation
func Repr(s interface{}) string {
	if v, ok := s.(fmt.Stringer); ok {
		return v.String()
	}
	return fmt.Sprintf("%+v", s)
}
