// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/cilium/docker-ipam/pkg/ipam"
	"github.com/cilium/docker-ipam/pkg/metrics"
)

func TestPrometheusMetrics(t *testing.T) {
	registry := prometheus.NewPedanticRegistry()
	m := NewPrometheusMetrics("test", registry)

	m.IncPoolOp(ipam.OpRequest, ipam.OutcomeSuccess)
	m.IncPoolOp(ipam.OpRequest, ipam.OutcomeSuccess)
	m.IncAddressOp(ipam.OpRequest, ipam.OutcomeResourceExhausted)
	m.SetPools("local", "ipv4", 2)
	m.SetAllocatedIPs("local", "ipv4", 5)

	require.Equal(t, float64(2), metrics.GetCounterValue(m.PoolOps.WithLabelValues(ipam.OpRequest, ipam.OutcomeSuccess)))
	require.Equal(t, float64(0), metrics.GetCounterValue(m.PoolOps.WithLabelValues(ipam.OpRelease, ipam.OutcomeSuccess)))
	require.Equal(t, float64(1), metrics.GetCounterValue(m.AddressOps.WithLabelValues(ipam.OpRequest, ipam.OutcomeResourceExhausted)))
	require.Equal(t, float64(2), metrics.GetGaugeValue(m.Pools.WithLabelValues("local", "ipv4")))
	require.Equal(t, float64(5), metrics.GetGaugeValue(m.IPsAllocated.WithLabelValues("local", "ipv4")))

	families, err := registry.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	require.True(t, names["test_ipam_pool_ops_total"])
	require.True(t, names["test_ipam_address_ops_total"])
	require.True(t, names["test_ipam_pools"])
	require.True(t, names["test_ipam_ips"])
}

func TestPrometheusMetricsWithIPAM(t *testing.T) {
	m := NewPrometheusMetrics("test", prometheus.NewPedanticRegistry())
	i := ipam.NewIPAM(m)

	id, _, err := i.RequestPool("local", ipam.PoolRequest{Pool: "10.0.0.0/30"})
	require.NoError(t, err)
	_, err = i.RequestAddress("local", id, "")
	require.NoError(t, err)
	_, err = i.RequestAddress("local", id, "")
	require.NoError(t, err)
	_, err = i.RequestAddress("local", id, "")
	require.Error(t, err)

	require.Equal(t, float64(1), metrics.GetCounterValue(m.PoolOps.WithLabelValues(ipam.OpRequest, ipam.OutcomeSuccess)))
	require.Equal(t, float64(2), metrics.GetCounterValue(m.AddressOps.WithLabelValues(ipam.OpRequest, ipam.OutcomeSuccess)))
	require.Equal(t, float64(1), metrics.GetCounterValue(m.AddressOps.WithLabelValues(ipam.OpRequest, ipam.OutcomeResourceExhausted)))
	require.Equal(t, float64(1), metrics.GetGaugeValue(m.Pools.WithLabelValues("local", "ipv4")))
	require.Equal(t, float64(0), metrics.GetGaugeValue(m.Pools.WithLabelValues("local", "ipv6")))
	require.Equal(t, float64(2), metrics.GetGaugeValue(m.IPsAllocated.WithLabelValues("local", "ipv4")))
}
