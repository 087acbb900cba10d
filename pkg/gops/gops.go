// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

// Package gops runs the gops agent, a tool to list and diagnose Go processes.
// See https://github.com/google/gops.
package gops

import (
	"fmt"

	gopsAgent "github.com/google/gops/agent"
	"github.com/sirupsen/logrus"

	"github.com/cilium/docker-ipam/pkg/logging"
	"github.com/cilium/docker-ipam/pkg/logging/logfields"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "gops")

// Start starts the gops agent on 127.0.0.1 at the given port. The returned
// function stops the agent again.
func Start(port uint16) (stop func(), err error) {
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	scopedLog := log.WithFields(logrus.Fields{logfields.Address: addr})

	if err := gopsAgent.Listen(gopsAgent.Options{Addr: addr}); err != nil {
		return nil, fmt.Errorf("unable to start gops server on %s: %w", addr, err)
	}
	scopedLog.Info("Started gops server")

	return func() {
		gopsAgent.Close()
		scopedLog.Info("Stopped gops server")
	}, nil
}
