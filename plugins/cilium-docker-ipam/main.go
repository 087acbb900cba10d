// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package main

import (
	"github.com/cilium/docker-ipam/plugins/cilium-docker-ipam/cmd"
)

func main() {
	cmd.Execute()
}
