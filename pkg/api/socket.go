// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package api

import (
	"fmt"
	"net"
	"os"
	"os/user"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/cilium/docker-ipam/pkg/defaults"
	"github.com/cilium/docker-ipam/pkg/logging"
	"github.com/cilium/docker-ipam/pkg/logging/logfields"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "api")

// getGroupIDByName returns the group ID for the given grpName.
func getGroupIDByName(grpName string) (int, error) {
	group, err := user.LookupGroup(grpName)
	if err != nil {
		return -1, err
	}
	return strconv.Atoi(group.Gid)
}

// SetDefaultPermissions sets the given socket's group to groupName and mode
// to defaults.SocketFileMode. A missing group is not an error, the socket
// then keeps the group of the process.
func SetDefaultPermissions(socketPath, groupName string) error {
	gid, err := getGroupIDByName(groupName)
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			logfields.Path: socketPath,
			"group":        groupName,
		}).Debug("Group not found")
	} else {
		if err := os.Chown(socketPath, 0, gid); err != nil {
			return fmt.Errorf("failed while setting up %s's group ID"+
				" in %q: %s", groupName, socketPath, err)
		}
	}
	if err := os.Chmod(socketPath, defaults.SocketFileMode); err != nil {
		return fmt.Errorf("failed while setting up file permissions in %q: %w",
			socketPath, err)
	}
	return nil
}

// ListenUnix creates the directory of socketPath, removes a stale socket
// left behind by a previous run and listens on socketPath.
func ListenUnix(socketPath string) (net.Listener, error) {
	dir := filepath.Dir(socketPath)
	if err := os.MkdirAll(dir, defaults.PluginDirRights); err != nil {
		return nil, fmt.Errorf("unable to create directory %s: %w", dir, err)
	}
	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("unable to remove stale socket %s: %w", socketPath, err)
	}

	l, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("unable to listen on %s: %w", socketPath, err)
	}
	return l, nil
}
