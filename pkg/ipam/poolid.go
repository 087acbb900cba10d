// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package ipam

import "strings"

const poolIDSeparator = "-"

// JoinPoolID returns the pool ID handed out to Docker for the pool id of the
// given address space, e.g. "local-10.0.0.0/24".
func JoinPoolID(space, id string) string {
	return space + poolIDSeparator + id
}

// SplitPoolID splits a pool ID returned by JoinPoolID into the address space
// and the pool id inside that space. Neither space names nor CIDRs contain
// the separator, so the split happens on its first occurrence.
func SplitPoolID(poolID string) (space, id string, err error) {
	space, id, found := strings.Cut(poolID, poolIDSeparator)
	if !found || space == "" || id == "" {
		return "", "", ErrNotFound("malformed pool ID %q", poolID)
	}
	return space, id, nil
}
