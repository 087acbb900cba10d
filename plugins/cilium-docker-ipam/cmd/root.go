// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	clientPkg "github.com/cilium/docker-ipam/pkg/client"
	"github.com/cilium/docker-ipam/pkg/defaults"
	"github.com/cilium/docker-ipam/pkg/logging"
	"github.com/cilium/docker-ipam/pkg/logging/logfields"
	"github.com/cilium/docker-ipam/pkg/option"
)

const (
	// HostArg is the address of the plugin used by the client commands
	HostArg = "host"

	binaryName = "cilium-docker-ipam"
)

var (
	log = logging.DefaultLogger.WithField(logfields.LogSubsys, binaryName)
	vp  = viper.New()

	cfgFile string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   binaryName,
	Short: "Cilium IPAM plugin for Docker (libnetwork)",
	Long: `Cilium IPAM plugin for Docker (libnetwork)

Docker plugin implementing the remote IPAM API.

The plugin hands out address pools and the addresses within them to the
local Docker runtime. Pools never overlap within an address space. Without
a subcommand the plugin is started, the subcommands talk to a running
plugin.`,
	Example: `  docker network create my_network --ipam-driver ` + defaults.PluginName + `
  docker network create my_network --ipam-driver ` + defaults.PluginName + ` \
    --subnet 10.1.0.0/16 --ip-range 10.1.4.0/24
  docker run --net my_network hello-world
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := option.Config.Validate(); err != nil {
			log.WithError(err).Fatal("Invalid configuration")
		}
		if err := runPlugin(); err != nil {
			log.WithError(err).Fatal("IPAM plugin failed")
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen once
// to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pflags := RootCmd.PersistentFlags()
	pflags.StringVar(&cfgFile, option.ConfigFile, "", `Configuration file (default "$HOME/.`+binaryName+`.yaml")`)
	pflags.String(option.ConfigDir, "", "Configuration directory that contains a file for each option")
	pflags.BoolP(option.DebugArg, "D", false, "Enable debugging mode")
	pflags.StringSlice(option.LogDriver, []string{}, "Logging endpoints to use for example file")
	pflags.StringToString(option.LogOpt, nil, `Log driver options for the plugin, e.g. level=debug,format=json,file.name=/var/log/ipam.log`)
	pflags.StringP(HostArg, "H", "", "URI of the plugin used by the client commands (default "+clientPkg.DefaultSockPath()+")")

	flags := RootCmd.Flags()
	flags.String(option.SocketPath, defaults.SocketPath(), "Path of the plugin socket Docker discovers the plugin by")
	flags.String(option.SocketGroup, defaults.SocketGroup, "Group owning the plugin socket")
	flags.Bool(option.EnableGops, false, "Enable the gops agent")
	flags.Uint16(option.GopsPort, defaults.GopsPortIPAM, "Port for the gops server to listen on")
	flags.String(option.PrometheusServeAddr, defaults.PrometheusServeAddr, "IP:Port on which to serve prometheus metrics (pass \":Port\" to bind on all interfaces, \"\" is off)")
	flags.Duration(option.ShutdownTimeout, defaults.ShutdownTimeout, "Time to wait for in-flight requests on shutdown")

	RootCmd.SetOutput(os.Stderr)

	bindFlags(RootCmd)
}

// bindFlags binds the flags of cmd to viper and to their environment
// variables
func bindFlags(cmd *cobra.Command) {
	for _, flags := range []*pflag.FlagSet{cmd.PersistentFlags(), cmd.Flags()} {
		flags.VisitAll(func(f *pflag.Flag) {
			option.BindEnv(vp, f.Name)
		})
		if err := vp.BindPFlags(flags); err != nil {
			log.WithError(err).Fatal("Unable to bind flags")
		}
	}
}

// initConfig reads in config file, config directory and environment
// variables if set.
func initConfig() {
	if err := loadConfig(vp, cfgFile); err != nil {
		Fatalf("%s", err)
	}

	if err := option.Config.Populate(vp); err != nil {
		Fatalf("Unable to parse configuration: %s", err)
	}

	if err := logging.SetupLogging(option.Config.LogDriver, logging.LogOptions(option.Config.LogOpt), option.Config.Debug); err != nil {
		Fatalf("Unable to set up logging: %s", err)
	}
}

// loadConfig merges the configuration file and the configuration directory
// into vp. Without an explicit file a missing default file is not an error.
func loadConfig(vp *viper.Viper, file string) error {
	if file != "" {
		vp.SetConfigFile(file)
	} else {
		vp.SetConfigName("." + binaryName)
		vp.AddConfigPath("$HOME")
	}

	if err := vp.ReadInConfig(); err == nil {
		log.WithField(logfields.Path, vp.ConfigFileUsed()).Debug("Using config file")
	} else if file != "" {
		return fmt.Errorf("unable to read config file %s: %w", file, err)
	}

	if dir := vp.GetString(option.ConfigDir); dir != "" {
		m, err := option.ReadDirConfig(dir)
		if err != nil {
			return err
		}
		if err := option.MergeConfig(vp, m); err != nil {
			return err
		}
		log.WithField(logfields.Path, dir).Debug("Merged config directory")
	}
	return nil
}
