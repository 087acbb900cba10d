// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package mock

import (
	"fmt"

	"github.com/cilium/docker-ipam/pkg/lock"
)

type mockMetrics struct {
	mutex      lock.RWMutex
	poolOps    map[string]int64
	addressOps map[string]int64
	pools      map[string]int
	allocated  map[string]int
}

// NewMockMetrics returns a new metrics implementation with a mocked backend
func NewMockMetrics() *mockMetrics {
	return &mockMetrics{
		poolOps:    map[string]int64{},
		addressOps: map[string]int64{},
		pools:      map[string]int{},
		allocated:  map[string]int{},
	}
}

func key(a, b string) string {
	return fmt.Sprintf("%s=%s", a, b)
}

func (m *mockMetrics) PoolOps(operation, outcome string) int64 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.poolOps[key(operation, outcome)]
}

func (m *mockMetrics) IncPoolOp(operation, outcome string) {
	m.mutex.Lock()
	m.poolOps[key(operation, outcome)]++
	m.mutex.Unlock()
}

func (m *mockMetrics) AddressOps(operation, outcome string) int64 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.addressOps[key(operation, outcome)]
}

func (m *mockMetrics) IncAddressOp(operation, outcome string) {
	m.mutex.Lock()
	m.addressOps[key(operation, outcome)]++
	m.mutex.Unlock()
}

func (m *mockMetrics) Pools(space, family string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.pools[key(space, family)]
}

func (m *mockMetrics) SetPools(space, family string, pools int) {
	m.mutex.Lock()
	m.pools[key(space, family)] = pools
	m.mutex.Unlock()
}

func (m *mockMetrics) AllocatedIPs(space, family string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.allocated[key(space, family)]
}

func (m *mockMetrics) SetAllocatedIPs(space, family string, allocated int) {
	m.mutex.Lock()
	m.allocated[key(space, family)] = allocated
	m.mutex.Unlock()
}
