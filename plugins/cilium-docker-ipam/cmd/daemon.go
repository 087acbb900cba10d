// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package cmd

import (
	"context"
	"net/http"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"

	"github.com/cilium/docker-ipam/pkg/api"
	"github.com/cilium/docker-ipam/pkg/gops"
	"github.com/cilium/docker-ipam/pkg/ipam"
	ipamMetrics "github.com/cilium/docker-ipam/pkg/ipam/metrics"
	"github.com/cilium/docker-ipam/pkg/logging"
	"github.com/cilium/docker-ipam/pkg/logging/logfields"
	"github.com/cilium/docker-ipam/pkg/metrics"
	"github.com/cilium/docker-ipam/pkg/option"
	"github.com/cilium/docker-ipam/plugins/cilium-docker-ipam/driver"
)

// runPlugin serves the plugin API until SIGINT or SIGTERM is received
func runPlugin() error {
	ctx, cancel := signal.NotifyContext(context.Background(), unix.SIGINT, unix.SIGTERM)
	defer cancel()

	return serve(ctx, option.Config, metrics.Registry())
}

// serve runs the plugin with the given configuration until ctx is cancelled
// or one of its servers fails. Plugin metrics are registered with registry.
func serve(ctx context.Context, cfg *option.DaemonConfig, registry prometheus.Registerer) error {
	logging.AddHooks(metrics.NewLoggingHook(registry))

	if cfg.EnableGops {
		stop, err := gops.Start(cfg.GopsPort)
		if err != nil {
			return err
		}
		defer stop()
	}

	l, err := api.ListenUnix(cfg.SocketPath)
	if err != nil {
		return err
	}
	if err := api.SetDefaultPermissions(cfg.SocketPath, cfg.SocketGroup); err != nil {
		l.Close()
		return err
	}

	d := driver.NewDriver(ipam.NewIPAM(ipamMetrics.NewPrometheusMetrics(metrics.Namespace, registry)))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return d.Serve(ctx, l, cfg.ShutdownTimeout)
	})

	if cfg.PrometheusServeAddr != "" {
		srv := metrics.NewServer(cfg.PrometheusServeAddr)
		g.Go(func() error {
			log.WithField(logfields.Address, cfg.PrometheusServeAddr).Info("Serving prometheus metrics")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return errors.Wrap(err, "unable to serve prometheus metrics")
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			return srv.Close()
		})
	}

	log.WithFields(logrus.Fields{
		logfields.Path:  cfg.SocketPath,
		logfields.Group: cfg.SocketGroup,
	}).Info("Listening for IPAM requests from Docker")

	return g.Wait()
}
