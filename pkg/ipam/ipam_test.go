// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package ipam

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/cilium/docker-ipam/pkg/ipam/metrics/mock"
	"github.com/cilium/docker-ipam/pkg/ipam/types"
)

func TestIPAMDefaultSpaces(t *testing.T) {
	i := NewIPAM(nil)
	local, global := i.DefaultAddressSpaces()
	require.Equal(t, "local", local)
	require.Equal(t, "global", global)

	status := i.Dump()
	require.Len(t, status.Spaces, 2)
	require.Equal(t, "global", status.Spaces[0].Name)
	require.Equal(t, "local", status.Spaces[1].Name)
}

func TestIPAMRequestPool(t *testing.T) {
	i := NewIPAM(nil)

	id, cidr, err := i.RequestPool("local", PoolRequest{Pool: "10.1.2.3/24"})
	require.NoError(t, err)
	require.Equal(t, "10.1.2.0/24", id)
	require.Equal(t, "10.1.2.0/24", cidr)

	again, _, err := i.RequestPool("local", PoolRequest{Pool: "10.1.2.0/24"})
	require.NoError(t, err)
	require.Equal(t, id, again)

	_, _, err = i.RequestPool("local", PoolRequest{Pool: "10.1.0.0/16"})
	require.True(t, IsErrInvalidRequest(err))

	// The global space is a separate overlap domain
	_, _, err = i.RequestPool("global", PoolRequest{Pool: "10.1.0.0/16"})
	require.NoError(t, err)

	_, _, err = i.RequestPool("local", PoolRequest{})
	require.True(t, IsErrInvalidRequest(err))

	_, _, err = i.RequestPool("local", PoolRequest{SubPool: "10.1.2.0/28"})
	require.True(t, IsErrInvalidRequest(err))

	_, _, err = i.RequestPool("nonexistent", PoolRequest{Pool: "10.1.2.0/24"})
	require.True(t, IsErrInvalidRequest(err))

	id, cidr, err = i.RequestPool("local", PoolRequest{Family: FamilyIPv6})
	require.NoError(t, err)
	require.Equal(t, id, cidr)
	pool, err := i.spaces["local"].GetPool(id)
	require.NoError(t, err)
	require.Equal(t, FamilyIPv6, pool.Family())
}

func TestIPAMAddresses(t *testing.T) {
	i := NewIPAM(nil)
	id, _, err := i.RequestPool("global", PoolRequest{Pool: "fd00::/126"})
	require.NoError(t, err)

	for _, expected := range []string{"fd00::1/126", "fd00::2/126", "fd00::3/126"} {
		addr, err := i.RequestAddress("global", id, "")
		require.NoError(t, err)
		require.Equal(t, expected, addr)
	}
	_, err = i.RequestAddress("global", id, "")
	require.True(t, IsErrResourceExhausted(err))

	require.NoError(t, i.ReleaseAddress("global", id, "fd00::2"))
	require.NoError(t, i.ReleaseAddress("global", id, "fd00::2"))
	addr, err := i.RequestAddress("global", id, "fd00::2")
	require.NoError(t, err)
	require.Equal(t, "fd00::2/126", addr)

	_, err = i.RequestAddress("global", id, "fd00::2")
	require.True(t, IsErrInvalidRequest(err))

	err = i.ReleaseAddress("global", id, "garbage")
	require.True(t, IsErrInvalidRequest(err))

	_, err = i.RequestAddress("local", id, "")
	require.True(t, IsErrNotFound(err))
	err = i.ReleaseAddress("local", id, "fd00::1")
	require.True(t, IsErrNotFound(err))
	_, err = i.RequestAddress("nonexistent", id, "")
	require.True(t, IsErrNotFound(err))
	err = i.ReleaseAddress("nonexistent", id, "fd00::1")
	require.True(t, IsErrNotFound(err))
}

func TestIPAMReleasePool(t *testing.T) {
	i := NewIPAM(nil)
	id, _, err := i.RequestPool("local", PoolRequest{Pool: "192.168.0.0/30"})
	require.NoError(t, err)
	_, err = i.RequestAddress("local", id, "")
	require.NoError(t, err)

	require.True(t, IsErrNotFound(i.ReleasePool("global", id)))
	require.True(t, IsErrNotFound(i.ReleasePool("nonexistent", id)))
	require.NoError(t, i.ReleasePool("local", id))
	require.True(t, IsErrNotFound(i.ReleasePool("local", id)))

	_, err = i.RequestAddress("local", id, "")
	require.True(t, IsErrNotFound(err))

	// A pool requested again starts over
	id, _, err = i.RequestPool("local", PoolRequest{Pool: "192.168.0.0/30"})
	require.NoError(t, err)
	addr, err := i.RequestAddress("local", id, "")
	require.NoError(t, err)
	require.Equal(t, "192.168.0.1/30", addr)
}

func TestIPAMDump(t *testing.T) {
	i := NewIPAM(nil)
	id4, _, err := i.RequestPool("local", PoolRequest{Pool: "10.0.0.0/16", SubPool: "10.0.1.0/24"})
	require.NoError(t, err)
	id6, _, err := i.RequestPool("local", PoolRequest{Pool: "fd00::/120"})
	require.NoError(t, err)
	_, _, err = i.RequestPool("global", PoolRequest{Pool: "10.0.0.0/30"})
	require.NoError(t, err)

	for _, address := range []string{"10.0.9.9", "", ""} {
		_, err = i.RequestAddress("local", id4, address)
		require.NoError(t, err)
	}
	_, err = i.RequestAddress("local", id6, "")
	require.NoError(t, err)

	expected := &types.Status{
		Spaces: []types.SpaceStatus{
			{
				Name: "global",
				Pools: []types.PoolStatus{
					{
						ID:      "global-10.0.0.0/30",
						Pool:    "10.0.0.0/30",
						SubPool: "10.0.0.0/30",
						Family:  "ipv4",
						Size:    "2",
					},
				},
			},
			{
				Name: "local",
				Pools: []types.PoolStatus{
					{
						ID:        "local-10.0.0.0/16",
						Pool:      "10.0.0.0/16",
						SubPool:   "10.0.1.0/24",
						Family:    "ipv4",
						Size:      "254",
						Allocated: []string{"10.0.1.1", "10.0.1.2", "10.0.9.9"},
					},
					{
						ID:        "local-fd00::/120",
						Pool:      "fd00::/120",
						SubPool:   "fd00::/120",
						Family:    "ipv6",
						Size:      "255",
						Allocated: []string{"fd00::1"},
					},
				},
			},
		},
	}

	status := i.Dump()
	if diff := cmp.Diff(expected, status); diff != "" {
		t.Errorf("unexpected status (-want +got):\n%s", diff)
	}
	require.Equal(t, 4, status.Spaces[1].Allocations())
}

func TestIPAMMetrics(t *testing.T) {
	m := mock.NewMockMetrics()
	i := NewIPAM(m)

	id, _, err := i.RequestPool("local", PoolRequest{Pool: "10.0.0.0/30"})
	require.NoError(t, err)
	_, _, err = i.RequestPool("local", PoolRequest{Pool: "10.0.0.0/8"})
	require.Error(t, err)
	_, _, err = i.RequestPool("local", PoolRequest{Pool: "fd00::/64"})
	require.NoError(t, err)

	require.Equal(t, int64(2), m.PoolOps(OpRequest, OutcomeSuccess))
	require.Equal(t, int64(1), m.PoolOps(OpRequest, OutcomeInvalidRequest))
	require.Equal(t, 1, m.Pools("local", "ipv4"))
	require.Equal(t, 1, m.Pools("local", "ipv6"))

	for n := 0; n < 3; n++ {
		i.RequestAddress("local", id, "")
	}
	require.Equal(t, int64(2), m.AddressOps(OpRequest, OutcomeSuccess))
	require.Equal(t, int64(1), m.AddressOps(OpRequest, OutcomeResourceExhausted))
	require.Equal(t, 2, m.AllocatedIPs("local", "ipv4"))

	require.NoError(t, i.ReleaseAddress("local", id, "10.0.0.1"))
	require.Equal(t, int64(1), m.AddressOps(OpRelease, OutcomeSuccess))
	require.Equal(t, 1, m.AllocatedIPs("local", "ipv4"))

	require.NoError(t, i.ReleasePool("local", id))
	require.Error(t, i.ReleasePool("local", id))
	require.Equal(t, int64(1), m.PoolOps(OpRelease, OutcomeSuccess))
	require.Equal(t, int64(1), m.PoolOps(OpRelease, OutcomeNotFound))
	require.Equal(t, 0, m.Pools("local", "ipv4"))
	require.Equal(t, 0, m.AllocatedIPs("local", "ipv4"))
}

func TestIPAMConcurrentRequests(t *testing.T) {
	i := NewIPAM(nil)
	id, _, err := i.RequestPool("local", PoolRequest{Pool: "10.20.0.0/24"})
	require.NoError(t, err)

	const workers = 8
	results := make(chan string, 254)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				addr, err := i.RequestAddress("local", id, "")
				if err != nil {
					return
				}
				results <- addr
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := map[string]struct{}{}
	for addr := range results {
		_, dup := seen[addr]
		require.False(t, dup, "address %s handed out twice", addr)
		seen[addr] = struct{}{}
	}
	require.Len(t, seen, 254)
	for n := 1; n <= 254; n++ {
		require.Contains(t, seen, fmt.Sprintf("10.20.0.%d/24", n))
	}
}
