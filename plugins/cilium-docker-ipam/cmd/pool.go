// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cilium/docker-ipam/pkg/command"
	"github.com/cilium/docker-ipam/pkg/defaults"
)

// PoolResult is the result of a pool request
type PoolResult struct {
	PoolID string `json:"pool-id"`
	Pool   string `json:"pool"`
}

var (
	poolAddressSpace string
	poolSubPool      string
	poolIPv6         bool
	poolOptions      map[string]string
)

// poolCmd represents the pool command
var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Manage address pools of a running plugin",
}

// poolRequestCmd represents the pool_request command
var poolRequestCmd = &cobra.Command{
	Use:   "request [<pool CIDR>]",
	Short: "Request an address pool",
	Long: `Request an address pool in an address space.

Without a CIDR a random private pool of the selected IP version is
allocated. Requesting a pool equal to an existing one returns the existing
pool.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pool := ""
		if len(args) > 0 {
			pool = args[0]
		}

		poolID, cidr, err := newClient().RequestPool(poolAddressSpace, pool, poolSubPool, poolIPv6, poolOptions)
		if err != nil {
			Fatalf("Unable to request pool: %s", err)
		}

		result := PoolResult{PoolID: poolID, Pool: cidr}
		if command.OutputOption() {
			if err := command.PrintOutput(result); err != nil {
				os.Exit(1)
			}
			return
		}
		fmt.Printf("%s\t%s\n", result.PoolID, result.Pool)
	},
}

// poolReleaseCmd represents the pool_release command
var poolReleaseCmd = &cobra.Command{
	Use:    "release <pool ID>",
	Short:  "Release an address pool and all of its addresses",
	PreRun: requirePoolID,
	Run: func(cmd *cobra.Command, args []string) {
		if err := newClient().ReleasePool(args[0]); err != nil {
			Fatalf("Unable to release pool %s: %s", args[0], err)
		}
		fmt.Printf("Released pool %s\n", args[0])
	},
}

func init() {
	flags := poolRequestCmd.Flags()
	flags.StringVarP(&poolAddressSpace, "address-space", "s", defaults.LocalAddressSpace, "Address space to request the pool in")
	flags.StringVar(&poolSubPool, "sub-pool", "", "CIDR within the pool addresses are allocated from")
	flags.BoolVarP(&poolIPv6, "ipv6", "6", false, "Request a random IPv6 pool instead of IPv4")
	flags.StringToStringVar(&poolOptions, "opt", nil, "Driver options passed along with the request")
	command.AddOutputOption(poolRequestCmd)

	poolCmd.AddCommand(poolRequestCmd, poolReleaseCmd)
	RootCmd.AddCommand(poolCmd)
}
