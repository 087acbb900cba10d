// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/cilium/docker-ipam/pkg/logging/logfields"
)

func TestLoggingHook(t *testing.T) {
	registry := prometheus.NewPedanticRegistry()
	hook := NewLoggingHook(registry)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(hook)

	log := logger.WithField(logfields.LogSubsys, "test")
	log.Warn("first")
	log.Warn("second")
	log.Error("third")
	log.Info("ignored")

	require.Equal(t, float64(2), GetCounterValue(hook.metric.WithLabelValues("warning", "test")))
	require.Equal(t, float64(1), GetCounterValue(hook.metric.WithLabelValues("error", "test")))
	require.Equal(t, float64(0), GetCounterValue(hook.metric.WithLabelValues("info", "test")))
}

func TestLoggingHookWithoutSubsystem(t *testing.T) {
	hook := NewLoggingHook(prometheus.NewPedanticRegistry())
	entry := logrus.NewEntry(logrus.New())
	entry.Level = logrus.WarnLevel
	require.Error(t, hook.Fire(entry))

	entry = entry.WithField(logfields.LogSubsys, 42)
	entry.Level = logrus.WarnLevel
	require.Error(t, hook.Fire(entry))
}

func TestServer(t *testing.T) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "server_test_total",
		Help:      "Counter used by TestServer",
	})
	MustRegister(counter)
	defer registry.Unregister(counter)
	counter.Add(3)

	srv := httptest.NewServer(NewServer("").Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), Namespace+"_server_test_total 3")
}
