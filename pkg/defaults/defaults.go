// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package defaults

import (
	"path/filepath"
	"time"
)

const (
	// PluginName is the name under which the plugin registers with Docker.
	// It is used as the name of the socket in PluginDir.
	PluginName = "cilium-ipam"

	// PluginDir is the directory Docker scans for plugin sockets
	PluginDir = "/run/docker/plugins"

	// PluginDirRights are the default access rights of PluginDir
	PluginDirRights = 0755

	// SocketGroup is the group owning the plugin socket if it exists
	SocketGroup = "cilium"

	// SocketFileMode is the default access mode of the plugin socket
	SocketFileMode = 0660

	// ClientTimeout specifies timeout to be used by clients of the plugin
	ClientTimeout = 90 * time.Second

	// LocalAddressSpace is the address space Docker uses for locally scoped
	// networks
	LocalAddressSpace = "local"

	// GlobalAddressSpace is the address space Docker uses for globally
	// scoped (swarm) networks
	GlobalAddressSpace = "global"

	// RandomPoolIPv4Base is the block random IPv4 pools are drawn from
	RandomPoolIPv4Base = "172.16.0.0/12"

	// RandomPoolIPv4Bits is the prefix length of a random IPv4 pool
	RandomPoolIPv4Bits = 24

	// RandomPoolIPv6Base is the unique local block random IPv6 pools are
	// drawn from
	RandomPoolIPv6Base = "fd00::/16"

	// RandomPoolIPv6Bits is the prefix length of a random IPv6 pool
	RandomPoolIPv6Bits = 64

	// GopsPortIPAM is the default value for option.GopsPort in the plugin
	GopsPortIPAM = 9894

	// PrometheusServeAddr is the default address of the metrics server.
	// Empty disables it.
	PrometheusServeAddr = ""

	// MetricsNamespace is the namespace all plugin metrics are scoped in
	MetricsNamespace = "cilium_docker"

	// ShutdownTimeout is how long the plugin waits for in-flight requests
	// when it is asked to terminate
	ShutdownTimeout = 10 * time.Second
)

// SocketPath returns the path of the socket Docker discovers the plugin by
func SocketPath() string {
	return filepath.Join(PluginDir, PluginName+".sock")
}
