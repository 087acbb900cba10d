// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package cmd

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cilium/docker-ipam/pkg/command"
	"github.com/cilium/docker-ipam/pkg/ipam/types"
)

var statusVerbose bool

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display the pools and allocations of a running plugin",
	Run: func(cmd *cobra.Command, args []string) {
		status, err := newClient().Status()
		if err != nil {
			Fatalf("Unable to retrieve status: %s", err)
		}

		if command.OutputOption() {
			if err := command.PrintOutput(status); err != nil {
				os.Exit(1)
			}
			return
		}
		printStatus(os.Stdout, status, statusVerbose)
	},
}

func init() {
	statusCmd.Flags().BoolVarP(&statusVerbose, "verbose", "v", false, "List allocated addresses")
	command.AddOutputOption(statusCmd)
	RootCmd.AddCommand(statusCmd)
}

// printStatus writes a table of all pools in status to w
func printStatus(out io.Writer, status *types.Status, verbose bool) {
	w := tabwriter.NewWriter(out, 5, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SPACE\tPOOL ID\tSUB-POOL\tFAMILY\tALLOCATED")
	for _, space := range status.Spaces {
		for _, pool := range space.Pools {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				space.Name, pool.ID, pool.SubPool, pool.Family, allocationSummary(pool))
			if verbose && len(pool.Allocated) > 0 {
				fmt.Fprintf(w, "\t\t\t\t%s\n", strings.Join(pool.Allocated, ", "))
			}
		}
	}
	w.Flush()
}

// allocationSummary returns "allocated/size" of pool, in red once the
// allocations reach the number of hosts in the sub-pool
func allocationSummary(pool types.PoolStatus) string {
	summary := fmt.Sprintf("%d/%s", len(pool.Allocated), pool.Size)
	size, ok := new(big.Int).SetString(pool.Size, 10)
	if ok && big.NewInt(int64(len(pool.Allocated))).Cmp(size) >= 0 {
		return Red(summary)
	}
	return Green(summary)
}
