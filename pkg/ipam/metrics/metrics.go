// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const ipamSubsystem = "ipam"

type prometheusMetrics struct {
	registry     prometheus.Registerer
	PoolOps      *prometheus.CounterVec
	AddressOps   *prometheus.CounterVec
	Pools        *prometheus.GaugeVec
	IPsAllocated *prometheus.GaugeVec
}

// NewPrometheusMetrics returns a new IPAM metrics implementation backed by
// Prometheus metrics.
func NewPrometheusMetrics(namespace string, registry prometheus.Registerer) *prometheusMetrics {
	m := &prometheusMetrics{
		registry: registry,
	}

	m.PoolOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: ipamSubsystem,
		Name:      "pool_ops_total",
		Help:      "Number of pool request and release operations",
	}, []string{"operation", "outcome"})

	m.AddressOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: ipamSubsystem,
		Name:      "address_ops_total",
		Help:      "Number of address request and release operations",
	}, []string{"operation", "outcome"})

	m.Pools = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: ipamSubsystem,
		Name:      "pools",
		Help:      "Number of pools per address space and family",
	}, []string{"space", "family"})

	m.IPsAllocated = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: ipamSubsystem,
		Name:      "ips",
		Help:      "Number of IPs allocated per address space and family",
	}, []string{"space", "family"})

	registry.MustRegister(m.PoolOps)
	registry.MustRegister(m.AddressOps)
	registry.MustRegister(m.Pools)
	registry.MustRegister(m.IPsAllocated)

	return m
}

func (p *prometheusMetrics) IncPoolOp(operation, outcome string) {
	p.PoolOps.WithLabelValues(operation, outcome).Inc()
}

func (p *prometheusMetrics) IncAddressOp(operation, outcome string) {
	p.AddressOps.WithLabelValues(operation, outcome).Inc()
}

func (p *prometheusMetrics) SetPools(space, family string, pools int) {
	p.Pools.WithLabelValues(space, family).Set(float64(pools))
}

func (p *prometheusMetrics) SetAllocatedIPs(space, family string, allocated int) {
	p.IPsAllocated.WithLabelValues(space, family).Set(float64(allocated))
}
