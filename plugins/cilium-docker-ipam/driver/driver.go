// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cilium/docker-ipam/pkg/ipam"
	"github.com/cilium/docker-ipam/pkg/logging"
	"github.com/cilium/docker-ipam/pkg/logging/logfields"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "ipam-driver")

const (
	// ContentType is the media type of every plugin response
	ContentType = "application/vnd.docker.plugins.v1+json"

	// Implements is the plugin subsystem announced on activation
	Implements = "IpamDriver"
)

// Driver translates libnetwork remote IPAM requests into IPAM operations
type Driver struct {
	ipam   *ipam.IPAM
	router *mux.Router
}

// NewDriver returns a driver serving the address spaces of i
func NewDriver(i *ipam.IPAM) *Driver {
	d := &Driver{ipam: i}

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFound)

	handleMethod := func(method string, h http.HandlerFunc) {
		router.Methods("POST").Path(fmt.Sprintf("/%s", method)).HandlerFunc(h)
	}

	handleMethod("Plugin.Activate", d.handshake)
	handleMethod("IpamDriver.GetCapabilities", d.capabilities)
	handleMethod("IpamDriver.GetDefaultAddressSpaces", d.getDefaultAddressSpaces)
	handleMethod("IpamDriver.RequestPool", d.requestPool)
	handleMethod("IpamDriver.ReleasePool", d.releasePool)
	handleMethod("IpamDriver.RequestAddress", d.requestAddress)
	handleMethod("IpamDriver.ReleaseAddress", d.releaseAddress)
	handleMethod("Ipam.Status", d.status)

	d.router = router
	return d
}

// Handler returns the HTTP handler of the plugin API
func (d *Driver) Handler() http.Handler {
	return d.router
}

// Serve accepts plugin requests on l until ctx is cancelled. In-flight
// requests are given shutdownTimeout to complete.
func (d *Driver) Serve(ctx context.Context, l net.Listener, shutdownTimeout time.Duration) error {
	srv := &http.Server{Handler: d.router}

	errs := make(chan error, 1)
	go func() {
		errs <- srv.Serve(l)
	}()

	select {
	case err := <-errs:
		return errors.Wrap(err, "unable to serve plugin API")
	case <-ctx.Done():
	}

	log.Info("Shutting down plugin API")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "unable to shut down plugin API")
	}
	<-errs
	return nil
}

func notFound(w http.ResponseWriter, r *http.Request) {
	log.WithFields(logrus.Fields{
		logfields.Method:  r.Method,
		logfields.Request: r.URL.Path,
	}).Warning("Plugin method not found")
	http.NotFound(w, r)
}

// errorResponse is the body of every failed request. The plugin client of
// Docker reports the Err field to the user.
type errorResponse struct {
	Err string
}

func sendError(w http.ResponseWriter, msg string, code int) {
	scopedLog := log.WithField(logfields.StatusCode, code)
	if code >= http.StatusInternalServerError {
		scopedLog.Error(msg)
	} else {
		scopedLog.Warning(msg)
	}

	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(&errorResponse{Err: msg})
}

// sendIPAMError reports err with the status code matching its kind
func sendIPAMError(w http.ResponseWriter, err error) {
	sendError(w, err.Error(), errorStatusCode(err))
}

func errorStatusCode(err error) int {
	switch {
	case ipam.IsErrInvalidRequest(err):
		return http.StatusBadRequest
	case ipam.IsErrNotFound(err):
		return http.StatusNotFound
	case ipam.IsErrResourceExhausted(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func objectResponse(w http.ResponseWriter, obj interface{}) {
	b, err := json.Marshal(obj)
	if err != nil {
		sendError(w, "Could not JSON encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", ContentType)
	w.Write(b)
}

func emptyResponse(w http.ResponseWriter) {
	objectResponse(w, map[string]string{})
}

// decode reads the JSON payload of r into req. If the payload is malformed
// an error is sent and false is returned.
func decode(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		sendError(w, fmt.Sprintf("Could not decode JSON encoded payload: %s", err), http.StatusBadRequest)
		return false
	}
	return true
}

type handshakeResp struct {
	Implements []string
}

func (d *Driver) handshake(w http.ResponseWriter, r *http.Request) {
	objectResponse(w, &handshakeResp{
		Implements: []string{Implements},
	})
	log.Debug("Handshake completed")
}
