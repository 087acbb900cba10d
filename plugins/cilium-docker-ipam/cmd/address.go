// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cilium/docker-ipam/pkg/command"
)

// AddressResult is the result of an address request
type AddressResult struct {
	PoolID  string `json:"pool-id"`
	Address string `json:"address"`
}

var addressOptions map[string]string

// addressCmd represents the address command
var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Manage addresses of a running plugin",
}

// addressRequestCmd represents the address_request command
var addressRequestCmd = &cobra.Command{
	Use:    "request <pool ID> [<address>]",
	Short:  "Allocate an address from a pool",
	Long:   `Allocate an address from a pool. Without an address the next free address of the pool is allocated.`,
	Args:   cobra.RangeArgs(1, 2),
	PreRun: requirePoolID,
	Run: func(cmd *cobra.Command, args []string) {
		address := ""
		if len(args) > 1 {
			address = args[1]
		}

		allocated, err := newClient().RequestAddress(args[0], address, addressOptions)
		if err != nil {
			Fatalf("Unable to allocate address: %s", err)
		}

		result := AddressResult{PoolID: args[0], Address: allocated}
		if command.OutputOption() {
			if err := command.PrintOutput(result); err != nil {
				os.Exit(1)
			}
			return
		}
		fmt.Println(result.Address)
	},
}

// addressReleaseCmd represents the address_release command
var addressReleaseCmd = &cobra.Command{
	Use:    "release <pool ID> <address>",
	Short:  "Release an address of a pool",
	Args:   cobra.ExactArgs(2),
	PreRun: requirePoolIDAndAddress,
	Run: func(cmd *cobra.Command, args []string) {
		if err := newClient().ReleaseAddress(args[0], args[1]); err != nil {
			Fatalf("Unable to release address %s: %s", args[1], err)
		}
		fmt.Printf("Released address %s\n", args[1])
	},
}

func init() {
	addressRequestCmd.Flags().StringToStringVar(&addressOptions, "opt", nil, "Driver options passed along with the request")
	command.AddOutputOption(addressRequestCmd)

	addressCmd.AddCommand(addressRequestCmd, addressReleaseCmd)
	RootCmd.AddCommand(addressCmd)
}
