// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package client

import (
	"github.com/docker/libnetwork/ipamapi"
	"github.com/docker/libnetwork/ipams/remote/api"
	"github.com/pkg/errors"

	"github.com/cilium/docker-ipam/pkg/ipam/types"
)

// response is implemented by every libnetwork IPAM response
type response interface {
	IsSuccess() bool
	GetError() string
}

func (c *Client) callIPAM(method string, args interface{}, ret response) error {
	if err := c.call(method, args, ret); err != nil {
		return err
	}
	if !ret.IsSuccess() {
		return errors.New(ret.GetError())
	}
	return nil
}

// Capabilities returns the capabilities announced by the plugin
func (c *Client) Capabilities() (*ipamapi.Capability, error) {
	var resp api.GetCapabilityResponse
	if err := c.callIPAM("IpamDriver.GetCapabilities", nil, &resp); err != nil {
		return nil, err
	}
	return resp.ToCapability(), nil
}

// DefaultAddressSpaces returns the local and global default address spaces
func (c *Client) DefaultAddressSpaces() (local, global string, err error) {
	var resp api.GetAddressSpacesResponse
	if err := c.callIPAM("IpamDriver.GetDefaultAddressSpaces", nil, &resp); err != nil {
		return "", "", err
	}
	return resp.LocalDefaultAddressSpace, resp.GlobalDefaultAddressSpace, nil
}

// RequestPool requests a pool in addressSpace. An empty pool selects a random
// range of the family given by v6. It returns the pool ID and the CIDR of
// the pool.
func (c *Client) RequestPool(addressSpace, pool, subPool string, v6 bool, options map[string]string) (poolID, cidr string, err error) {
	req := &api.RequestPoolRequest{
		AddressSpace: addressSpace,
		Pool:         pool,
		SubPool:      subPool,
		Options:      options,
		V6:           v6,
	}
	var resp api.RequestPoolResponse
	if err := c.callIPAM("IpamDriver.RequestPool", req, &resp); err != nil {
		return "", "", err
	}
	return resp.PoolID, resp.Pool, nil
}

// ReleasePool releases the pool poolID and all of its addresses
func (c *Client) ReleasePool(poolID string) error {
	var resp api.ReleasePoolResponse
	return c.callIPAM("IpamDriver.ReleasePool", &api.ReleasePoolRequest{PoolID: poolID}, &resp)
}

// RequestAddress allocates address from the pool poolID. An empty address
// selects the next free address. The address is returned in CIDR notation.
func (c *Client) RequestAddress(poolID, address string, options map[string]string) (string, error) {
	req := &api.RequestAddressRequest{
		PoolID:  poolID,
		Address: address,
		Options: options,
	}
	var resp api.RequestAddressResponse
	if err := c.callIPAM("IpamDriver.RequestAddress", req, &resp); err != nil {
		return "", err
	}
	return resp.Address, nil
}

// ReleaseAddress releases address in the pool poolID
func (c *Client) ReleaseAddress(poolID, address string) error {
	req := &api.ReleaseAddressRequest{
		PoolID:  poolID,
		Address: address,
	}
	var resp api.ReleaseAddressResponse
	return c.callIPAM("IpamDriver.ReleaseAddress", req, &resp)
}

// Status returns a snapshot of all address spaces of the plugin
func (c *Client) Status() (*types.Status, error) {
	var status types.Status
	if err := c.call("Ipam.Status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
