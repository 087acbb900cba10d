// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package lock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLock(t *testing.T) {
	var lock1 RWMutex
	lock1.Lock()
	lock1.Unlock()

	lock1.RLock()
	lock1.RLock()
	lock1.RUnlock()
	lock1.RUnlock()

	var lock2 Mutex
	lock2.Lock()
	lock2.Unlock()
}

func TestMutexSerializes(t *testing.T) {
	var (
		mu      Mutex
		wg      sync.WaitGroup
		counter int
	)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				mu.Lock()
				counter++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 5000, counter)
}
