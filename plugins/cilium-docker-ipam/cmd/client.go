// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package cmd

import (
	clientPkg "github.com/cilium/docker-ipam/pkg/client"
)

// newClient returns a client for the plugin selected with --host
func newClient() *clientPkg.Client {
	c, err := clientPkg.NewClient(vp.GetString(HostArg))
	if err != nil {
		Fatalf("Error while creating client: %s", err)
	}
	return c
}
