// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package driver

import (
	"net/http"

	"github.com/docker/libnetwork/ipams/remote/api"
	"github.com/sirupsen/logrus"

	"github.com/cilium/docker-ipam/pkg/ipam"
	"github.com/cilium/docker-ipam/pkg/logging"
	"github.com/cilium/docker-ipam/pkg/logging/logfields"
)

// requestPoolRequest tells an absent V6 apart from an explicit false. Docker
// always sends the field, other clients may not.
type requestPoolRequest struct {
	api.RequestPoolRequest
	V6 *bool
}

func (r *requestPoolRequest) family() ipam.Family {
	if r.V6 == nil {
		return ipam.FamilyUnspec
	}
	return ipam.FamilyFromV6(*r.V6)
}

// debugObject logs a request or response object under key. The object is
// only formatted when the message would be logged.
func debugObject(scopedLog *logrus.Entry, key string, obj interface{}, msg string) {
	if !logging.CanLogAt(scopedLog.Logger, logrus.DebugLevel) {
		return
	}
	scopedLog.WithField(key, logfields.Repr(obj)).Debug(msg)
}

func (d *Driver) capabilities(w http.ResponseWriter, r *http.Request) {
	objectResponse(w, &api.GetCapabilityResponse{
		RequiresMACAddress:    true,
		RequiresRequestReplay: true,
	})
	log.Debug("IPAM capabilities exchange complete")
}

func (d *Driver) getDefaultAddressSpaces(w http.ResponseWriter, r *http.Request) {
	local, global := d.ipam.DefaultAddressSpaces()
	objectResponse(w, &api.GetAddressSpacesResponse{
		LocalDefaultAddressSpace:  local,
		GlobalDefaultAddressSpace: global,
	})
}

func (d *Driver) requestPool(w http.ResponseWriter, r *http.Request) {
	var req requestPoolRequest
	if !decode(w, r, &req) {
		return
	}

	debugObject(log, logfields.Request, req, "Request Pool request")

	id, cidr, err := d.ipam.RequestPool(req.AddressSpace, ipam.PoolRequest{
		Pool:    req.Pool,
		SubPool: req.SubPool,
		Family:  req.family(),
		Options: req.Options,
	})
	if err != nil {
		sendIPAMError(w, err)
		return
	}

	resp := &api.RequestPoolResponse{
		PoolID: ipam.JoinPoolID(req.AddressSpace, id),
		Pool:   cidr,
		Data:   map[string]string{},
	}
	debugObject(log, logfields.Response, resp, "Request Pool response")
	objectResponse(w, resp)
}

func (d *Driver) releasePool(w http.ResponseWriter, r *http.Request) {
	var req api.ReleasePoolRequest
	if !decode(w, r, &req) {
		return
	}

	debugObject(log, logfields.Request, req, "Release Pool request")

	space, id, err := ipam.SplitPoolID(req.PoolID)
	if err == nil {
		err = d.ipam.ReleasePool(space, id)
	}
	if err != nil {
		sendIPAMError(w, err)
		return
	}
	emptyResponse(w)
}

func (d *Driver) requestAddress(w http.ResponseWriter, r *http.Request) {
	var req api.RequestAddressRequest
	if !decode(w, r, &req) {
		return
	}

	debugObject(log, logfields.Request, req, "Request Address request")

	space, id, err := ipam.SplitPoolID(req.PoolID)
	if err != nil {
		sendIPAMError(w, err)
		return
	}

	address, err := d.ipam.RequestAddress(space, id, req.Address)
	if err != nil {
		sendIPAMError(w, err)
		return
	}

	resp := &api.RequestAddressResponse{
		Address: address,
		Data:    map[string]string{},
	}
	debugObject(log.WithField(logfields.PoolID, req.PoolID), logfields.Response, resp, "Request Address response")
	objectResponse(w, resp)
}

func (d *Driver) releaseAddress(w http.ResponseWriter, r *http.Request) {
	var req api.ReleaseAddressRequest
	if !decode(w, r, &req) {
		return
	}

	debugObject(log, logfields.Request, req, "Release Address request")

	space, id, err := ipam.SplitPoolID(req.PoolID)
	if err == nil {
		err = d.ipam.ReleaseAddress(space, id, req.Address)
	}
	if err != nil {
		sendIPAMError(w, err)
		return
	}
	emptyResponse(w)
}

func (d *Driver) status(w http.ResponseWriter, r *http.Request) {
	objectResponse(w, d.ipam.Dump())
}
