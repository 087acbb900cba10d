// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package api

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListenUnix(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "plugins", "test.sock")

	l, err := ListenUnix(socketPath)
	require.NoError(t, err)
	l.Close()

	// A stale file in place of the socket is replaced
	require.NoError(t, os.WriteFile(socketPath, []byte("stale"), 0600))
	l, err = ListenUnix(socketPath)
	require.NoError(t, err)
	defer l.Close()

	fi, err := os.Stat(socketPath)
	require.NoError(t, err)
	require.Equal(t, os.ModeSocket, fi.Mode()&os.ModeSocket)
}

func TestSetDefaultPermissions(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "test.sock")
	l, err := ListenUnix(socketPath)
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, SetDefaultPermissions(socketPath, "group-that-does-not-exist"))
	fi, err := os.Stat(socketPath)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0660), fi.Mode().Perm())

	require.Error(t, SetDefaultPermissions(filepath.Join(t.TempDir(), "missing.sock"), "group-that-does-not-exist"))
}
