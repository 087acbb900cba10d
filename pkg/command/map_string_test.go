// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package command

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestToStringMapStringE(t *testing.T) {
	tests := []struct {
		name    string
		data    interface{}
		want    map[string]string
		wantErr bool
	}{
		{
			name: "nil",
			data: nil,
			want: map[string]string{},
		},
		{
			name: "empty string",
			data: "",
			want: map[string]string{},
		},
		{
			name: "map",
			data: map[string]interface{}{"file.name": "/var/log/ipam.log"},
			want: map[string]string{"file.name": "/var/log/ipam.log"},
		},
		{
			name: "json",
			data: `{"format":"json","level":"debug"}`,
			want: map[string]string{"format": "json", "level": "debug"},
		},
		{
			name: "key value pairs",
			data: "format=json,level=debug",
			want: map[string]string{"format": "json", "level": "debug"},
		},
		{
			name: "pflag format",
			data: "[file.name=/tmp/ipam.log,file.max-size=10]",
			want: map[string]string{"file.name": "/tmp/ipam.log", "file.max-size": "10"},
		},
		{
			name: "value with comma",
			data: "k1=v1,v2,k2=v3",
			want: map[string]string{"k1": "v1,v2", "k2": "v3"},
		},
		{
			name:    "malformed",
			data:    "foo,k1=v1",
			want:    map[string]string{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToStringMapStringE(tt.data)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetStringMapStringE(t *testing.T) {
	vp := viper.New()
	vp.Set("log-opt", "format=json")
	got, err := GetStringMapStringE(vp, "log-opt")
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"format": "json"}, got)

	vp.Set("log-opt", "garbage")
	got, err = GetStringMapStringE(vp, "log-opt")
	assert.Error(t, err)
	assert.Equal(t, map[string]string{}, got)

	got, err = GetStringMapStringE(vp, "unset")
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{}, got)
}
