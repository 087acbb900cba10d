// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package ipam

// Operation labels passed to MetricsAPI
const (
	OpRequest = "request"
	OpRelease = "release"
)

// Outcome labels passed to MetricsAPI
const (
	OutcomeSuccess           = "success"
	OutcomeInvalidRequest    = "invalid_request"
	OutcomeNotFound          = "not_found"
	OutcomeResourceExhausted = "resource_exhausted"
	OutcomeFailure           = "failure"
)

// MetricsAPI represents the metrics maintained by the IPAM
type MetricsAPI interface {
	IncPoolOp(operation, outcome string)
	IncAddressOp(operation, outcome string)
	SetPools(space, family string, pools int)
	SetAllocatedIPs(space, family string, allocated int)
}

// Outcome classifies err for metrics labels
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case IsErrInvalidRequest(err):
		return OutcomeInvalidRequest
	case IsErrNotFound(err):
		return OutcomeNotFound
	case IsErrResourceExhausted(err):
		return OutcomeResourceExhausted
	}
	return OutcomeFailure
}

// NoOpMetrics is a no-operation implementation of the metrics
type NoOpMetrics struct{}

// NewNoOpMetrics returns metrics which discard all updates
func NewNoOpMetrics() *NoOpMetrics {
	return &NoOpMetrics{}
}

func (m *NoOpMetrics) IncPoolOp(operation, outcome string)                 {}
func (m *NoOpMetrics) IncAddressOp(operation, outcome string)              {}
func (m *NoOpMetrics) SetPools(space, family string, pools int)            {}
func (m *NoOpMetrics) SetAllocatedIPs(space, family string, allocated int) {}
