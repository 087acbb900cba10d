// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package command

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// GetStringMapStringE is viper's GetStringMapString with added support for
// k1=v1,k2=v2 values. Malformed values are returned as an error.
func GetStringMapStringE(vp *viper.Viper, key string) (map[string]string, error) {
	return ToStringMapStringE(vp.Get(key))
}

// ToStringMapStringE casts an interface to a map[string]string type. The
// underlying value can be a map, a JSON object or a comma separated list of
// k=v pairs, optionally wrapped in brackets as printed by pflag.
func ToStringMapStringE(data interface{}) (map[string]string, error) {
	if data == nil {
		return map[string]string{}, nil
	}

	v, err := cast.ToStringMapStringE(data)
	if err == nil {
		return v, nil
	}

	s, ok := data.(string)
	if !ok {
		return map[string]string{}, err
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	if s == "" {
		return map[string]string{}, nil
	}

	if strings.HasPrefix(s, "{") {
		m := map[string]string{}
		if err := json.Unmarshal([]byte(s), &m); err != nil {
			return map[string]string{}, err
		}
		return m, nil
	}

	return parseKeyValues(s)
}

// parseKeyValues parses k1=v1,k2=v2. A value may contain commas as long as
// the part after the comma does not look like a new key, e.g.
// "k1=v1,v2,k2=v3" yields k1="v1,v2" and k2="v3".
func parseKeyValues(s string) (map[string]string, error) {
	result := map[string]string{}
	lastKey := ""
	for _, part := range strings.Split(s, ",") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && kv[0] != "" {
			lastKey = strings.TrimSpace(kv[0])
			result[lastKey] = strings.TrimSpace(kv[1])
			continue
		}
		if lastKey == "" {
			return map[string]string{}, fmt.Errorf("'%s' is not formatted as key=value,key1=value1", s)
		}
		result[lastKey] += "," + part
	}
	return result, nil
}
