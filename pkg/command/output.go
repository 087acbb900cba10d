// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package command

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var (
	outputOpt string

	// Out is where PrintOutput writes to
	Out io.Writer = os.Stdout
)

// OutputOption returns true if an output option was specified.
func OutputOption() bool {
	return len(outputOpt) > 0
}

// AddOutputOption adds the -o|--output option to any cmd to export to json or yaml.
func AddOutputOption(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputOpt, "output", "o", "", "json| yaml")
}

// ForceJSON sets output mode to JSON (for unit tests)
func ForceJSON() {
	outputOpt = "json"
}

// PrintOutput receives an interface and dump the data using the --output flag.
// ATM only json or yaml are supported.
func PrintOutput(data interface{}) error {
	return PrintOutputWithType(data, outputOpt)
}

// PrintOutputWithType receives an interface and dump the data using the
// given output type.
func PrintOutputWithType(data interface{}, outputType string) error {
	switch outputType {
	case "json":
		return dumpJSON(Out, data)
	case "yaml":
		return dumpYAML(Out, data)
	}
	return fmt.Errorf("couldn't find output printer %q", outputType)
}

// dumpJSON dumps the data variable to w as indented JSON
func dumpJSON(w io.Writer, data interface{}) error {
	result, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("couldn't marshal to json: '%s'", err)
	}
	_, err = fmt.Fprintln(w, string(result))
	return err
}

// dumpYAML dumps the data variable to w as YAML
func dumpYAML(w io.Writer, data interface{}) error {
	result, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("couldn't marshal to yaml: '%s'", err)
	}
	_, err = fmt.Fprint(w, string(result))
	return err
}
