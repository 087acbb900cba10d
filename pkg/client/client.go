// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package client

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/docker/docker/pkg/plugins"
	"github.com/pkg/errors"

	"github.com/cilium/docker-ipam/pkg/defaults"
)

// Client talks to the IPAM plugin over the transport Docker uses for remote
// plugins
type Client struct {
	plugin *plugins.Client
}

// DefaultSockPath returns the address of the plugin socket. The
// CILIUM_IPAM_SOCK environment variable takes precedence over the default.
func DefaultSockPath() string {
	e := os.Getenv("CILIUM_IPAM_SOCK")
	if e == "" {
		e = defaults.SocketPath()
	}
	return "unix://" + e
}

// NewDefaultClient creates a client for the default plugin socket
func NewDefaultClient() (*Client, error) {
	return NewClient("")
}

// NewClient creates a client for the plugin at host. host is either
// unix:///path/to/sock or tcp://host:port. An empty host selects the
// default socket.
func NewClient(host string) (*Client, error) {
	if host == "" {
		host = DefaultSockPath()
	} else if !strings.Contains(host, "://") {
		host = "unix://" + host
	}

	c, err := plugins.NewClientWithTimeout(host, nil, defaults.ClientTimeout)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to create plugin client for %s", host)
	}
	return &Client{plugin: c}, nil
}

// Hint tries to improve the error message displayed to the user
func Hint(err error) error {
	if err == nil {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("IPAM plugin timeout exceeded (check if the plugin is running): %w", err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Errorf("unable to reach IPAM plugin (is the plugin running?): %w", err)
	}
	return err
}

// call invokes method and decodes the response into ret
func (c *Client) call(method string, args, ret interface{}) error {
	return Hint(c.plugin.Call(method, args, ret))
}
