// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package option

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	. "gopkg.in/check.v1"
)

func Test(t *testing.T) {
	TestingT(t)
}

type OptionSuite struct{}

var _ = Suite(&OptionSuite{})

func TestGetEnvName(t *testing.T) {
	type args struct {
		option string
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{
			name: "Normal option",
			args: args{
				option: "foo",
			},
			want: "CILIUM_IPAM_FOO",
		},
		{
			name: "Capital option",
			args: args{
				option: "FOO",
			},
			want: "CILIUM_IPAM_FOO",
		},
		{
			name: "mix numbers small letters and dashes",
			args: args{
				option: "22ada2------2",
			},
			want: "CILIUM_IPAM_22ADA2______2",
		},
		{
			name: "normal option",
			args: args{
				option: "prometheus-serve-addr",
			},
			want: "CILIUM_IPAM_PROMETHEUS_SERVE_ADDR",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getEnvName(tt.args.option); got != tt.want {
				t.Errorf("getEnvName() = %v, want %v", got, tt.want)
			}
		})
	}
}

func (s *OptionSuite) TestReadDirConfig(c *C) {
	vp := viper.New()
	var dirName string
	type args struct {
		dirName string
	}
	type want struct {
		allSettings        map[string]interface{}
		allSettingsChecker Checker
		err                error
		errChecker         Checker
	}
	tests := []struct {
		name        string
		setupArgs   func() args
		setupWant   func() want
		preTestRun  func()
		postTestRun func()
	}{
		{
			name: "empty configuration",
			preTestRun: func() {
				dirName = c.MkDir()

				fs := flag.NewFlagSet("empty configuration", flag.ContinueOnError)
				vp.BindPFlags(fs)
			},
			setupArgs: func() args {
				return args{
					dirName: dirName,
				}
			},
			setupWant: func() want {
				return want{
					allSettings:        map[string]interface{}{},
					allSettingsChecker: DeepEquals,
					err:                nil,
					errChecker:         Equals,
				}
			},
			postTestRun: func() {
				os.RemoveAll(dirName)
			},
		},
		{
			name: "single file configuration",
			preTestRun: func() {
				dirName = c.MkDir()

				fullPath := filepath.Join(dirName, "test")
				err := os.WriteFile(fullPath, []byte(`"1"
`), os.FileMode(0644))
				c.Assert(err, IsNil)
				err = os.Mkdir(filepath.Join(dirName, "subdir"), 0755)
				c.Assert(err, IsNil)
				fs := flag.NewFlagSet("single file configuration", flag.ContinueOnError)
				fs.String("test", "", "")
				BindEnv(vp, "test")
				vp.BindPFlags(fs)
			},
			setupArgs: func() args {
				return args{
					dirName: dirName,
				}
			},
			setupWant: func() want {
				return want{
					allSettings:        map[string]interface{}{"test": `"1"`},
					allSettingsChecker: DeepEquals,
					err:                nil,
					errChecker:         Equals,
				}
			},
			postTestRun: func() {
				os.RemoveAll(dirName)
			},
		},
	}
	for _, tt := range tests {
		tt.preTestRun()
		args := tt.setupArgs()
		want := tt.setupWant()
		m, err := ReadDirConfig(args.dirName)
		c.Assert(err, want.errChecker, want.err, Commentf("Test Name: %s", tt.name))
		err = MergeConfig(vp, m)
		c.Assert(err, IsNil)
		c.Assert(vp.AllSettings(), want.allSettingsChecker, want.allSettings, Commentf("Test Name: %s", tt.name))
		tt.postTestRun()
	}
}

func (s *OptionSuite) TestReadDirConfigMissing(c *C) {
	m, err := ReadDirConfig(filepath.Join(c.MkDir(), "missing"))
	c.Assert(err, IsNil)
	c.Assert(m, DeepEquals, map[string]interface{}{})
}

func (s *OptionSuite) TestBindEnv(c *C) {
	vp := viper.New()
	optName := "socket-group"
	os.Setenv(getEnvName(optName), "docker")
	defer os.Unsetenv(getEnvName(optName))
	BindEnv(vp, optName)
	c.Assert(vp.GetString(optName), Equals, "docker")
}

func (s *OptionSuite) TestPopulate(c *C) {
	vp := viper.New()
	vp.Set(DebugArg, true)
	vp.Set(LogDriver, []string{"file"})
	vp.Set(LogOpt, "file.name=/var/log/ipam.log,format=json")
	vp.Set(SocketPath, "/run/docker/plugins/test.sock")
	vp.Set(SocketGroup, "docker")
	vp.Set(EnableGops, true)
	vp.Set(GopsPort, 9999)
	vp.Set(PrometheusServeAddr, ":9962")
	vp.Set(ShutdownTimeout, "3s")

	cfg := &DaemonConfig{}
	c.Assert(cfg.Populate(vp), IsNil)
	c.Assert(cfg, DeepEquals, &DaemonConfig{
		Debug:     true,
		LogDriver: []string{"file"},
		LogOpt: map[string]string{
			"file.name": "/var/log/ipam.log",
			"format":    "json",
		},
		SocketPath:          "/run/docker/plugins/test.sock",
		SocketGroup:         "docker",
		EnableGops:          true,
		GopsPort:            9999,
		PrometheusServeAddr: ":9962",
		ShutdownTimeout:     3 * time.Second,
	})
	c.Assert(cfg.Validate(), IsNil)

	vp.Set(LogOpt, "broken")
	c.Assert(cfg.Populate(vp), Not(IsNil))
}

func (s *OptionSuite) TestValidate(c *C) {
	valid := DaemonConfig{
		SocketPath:      "/run/docker/plugins/cilium-ipam.sock",
		ShutdownTimeout: time.Second,
	}
	c.Assert(valid.Validate(), IsNil)

	cfg := valid
	cfg.SocketPath = ""
	c.Assert(cfg.Validate(), Not(IsNil))

	cfg = valid
	cfg.SocketPath = "relative.sock"
	c.Assert(cfg.Validate(), Not(IsNil))

	cfg = valid
	cfg.EnableGops = true
	c.Assert(cfg.Validate(), Not(IsNil))
	cfg.GopsPort = 9894
	c.Assert(cfg.Validate(), IsNil)

	cfg = valid
	cfg.ShutdownTimeout = 0
	c.Assert(cfg.Validate(), Not(IsNil))
}

func (s *OptionSuite) TestDefaultConfig(c *C) {
	c.Assert(Config.Validate(), IsNil)
	c.Assert(Config.SocketPath, Equals, "/run/docker/plugins/cilium-ipam.sock")
}
