// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package option

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cilium/docker-ipam/pkg/command"
	"github.com/cilium/docker-ipam/pkg/defaults"
	"github.com/cilium/docker-ipam/pkg/logging"
	"github.com/cilium/docker-ipam/pkg/logging/logfields"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "config")

const (
	// ConfigFile is the configuration file path
	ConfigFile = "config"

	// ConfigDir is the directory that contains a file for each option where
	// the filename represents the option name and the content of that file
	// represents the value of that option.
	ConfigDir = "config-dir"

	// DebugArg is the argument enables debugging mode
	DebugArg = "debug"

	// LogDriver sets logging endpoints to use for example file
	LogDriver = "log-driver"

	// LogOpt sets log driver options for the plugin
	LogOpt = "log-opt"

	// SocketPath is the path of the unix socket Docker talks to
	SocketPath = "socket"

	// SocketGroup is the group owning the plugin socket
	SocketGroup = "socket-group"

	// GopsPort is the TCP port for the gops server.
	GopsPort = "gops-port"

	// EnableGops enables the gops agent
	EnableGops = "enable-gops"

	// PrometheusServeAddr IP:Port on which to serve prometheus metrics
	// (pass ":Port" to bind on all interfaces, "" is off)
	PrometheusServeAddr = "prometheus-serve-addr"

	// ShutdownTimeout is the time the plugin waits for in-flight requests on
	// shutdown
	ShutdownTimeout = "shutdown-timeout"
)

// EnvPrefix is the prefix of all environment variables overriding options
const EnvPrefix = "CILIUM_IPAM_"

// DaemonConfig is the configuration of the IPAM plugin
type DaemonConfig struct {
	Debug               bool
	LogDriver           []string
	LogOpt              map[string]string
	SocketPath          string
	SocketGroup         string
	EnableGops          bool
	GopsPort            uint16
	PrometheusServeAddr string
	ShutdownTimeout     time.Duration
}

var (
	// Config represents the plugin configuration
	Config = &DaemonConfig{
		LogOpt:              make(map[string]string),
		SocketPath:          defaults.SocketPath(),
		SocketGroup:         defaults.SocketGroup,
		GopsPort:            defaults.GopsPortIPAM,
		PrometheusServeAddr: defaults.PrometheusServeAddr,
		ShutdownTimeout:     defaults.ShutdownTimeout,
	}
)

// Populate sets all options with the values from viper
func (c *DaemonConfig) Populate(vp *viper.Viper) error {
	c.Debug = vp.GetBool(DebugArg)
	c.LogDriver = vp.GetStringSlice(LogDriver)
	c.SocketPath = vp.GetString(SocketPath)
	c.SocketGroup = vp.GetString(SocketGroup)
	c.EnableGops = vp.GetBool(EnableGops)
	c.GopsPort = uint16(vp.GetUint(GopsPort))
	c.PrometheusServeAddr = vp.GetString(PrometheusServeAddr)
	c.ShutdownTimeout = vp.GetDuration(ShutdownTimeout)

	logOpt, err := command.GetStringMapStringE(vp, LogOpt)
	if err != nil {
		return fmt.Errorf("unable to parse %s: %w", LogOpt, err)
	}
	c.LogOpt = logOpt

	return nil
}

// Validate validates the plugin configuration
func (c *DaemonConfig) Validate() error {
	if c.SocketPath == "" {
		return fmt.Errorf("%s must be set", SocketPath)
	}
	if !filepath.IsAbs(c.SocketPath) {
		return fmt.Errorf("%s must be an absolute path, got %q", SocketPath, c.SocketPath)
	}
	if c.EnableGops && c.GopsPort == 0 {
		return fmt.Errorf("%s must be set when %s is enabled", GopsPort, EnableGops)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%s must be positive, got %s", ShutdownTimeout, c.ShutdownTimeout)
	}
	return nil
}

// getEnvName returns the environment variable to be used for the given option name.
func getEnvName(option string) string {
	under := strings.Replace(option, "-", "_", -1)
	upper := strings.ToUpper(under)
	return EnvPrefix + upper
}

// BindEnv binds the option name with an deterministic generated environment
// variable which s based on the given optName. If the same optName is bound
// more than 1 time, this function panics.
func BindEnv(vp *viper.Viper, optName string) {
	if err := vp.BindEnv(optName, getEnvName(optName)); err != nil {
		panic(err)
	}
}

// ReadDirConfig reads the given directory and returns a map that maps the
// filename to the contents of that file.
func ReadDirConfig(dirName string) (map[string]interface{}, error) {
	m := map[string]interface{}{}
	files, err := os.ReadDir(dirName)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("unable to read configuration directory: %s", err)
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		fName := filepath.Join(dirName, f.Name())

		// the file can still be a symlink to a directory
		if f.Type()&os.ModeSymlink != 0 {
			absFileName, err := filepath.EvalSymlinks(fName)
			if err != nil {
				log.WithError(err).Warnf("Unable to read configuration file %q", absFileName)
				continue
			}
			fName = absFileName
		}

		fi, err := os.Stat(fName)
		if err != nil {
			log.WithError(err).Warnf("Unable to read configuration file %q", fName)
			continue
		}
		if fi.Mode().IsDir() {
			continue
		}

		b, err := os.ReadFile(fName)
		if err != nil {
			log.WithError(err).Warnf("Unable to read configuration file %q", fName)
			continue
		}
		m[f.Name()] = string(bytes.TrimSpace(b))
	}
	return m, nil
}

// MergeConfig merges the given configuration map with viper's configuration.
func MergeConfig(vp *viper.Viper, m map[string]interface{}) error {
	err := vp.MergeConfigMap(m)
	if err != nil {
		return fmt.Errorf("unable to read merge directory configuration: %s", err)
	}
	return nil
}
