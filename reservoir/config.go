// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reservoir

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// tomlShape is the list structure of an instance definition,
// decoded first so that list elements can be given their defaults
type tomlShape struct {
	Pools []struct {
		Groups []struct{}
	}
	PoolConns  []struct{}
	InputConns []struct{}
}

// OpenInstanceTOML reads an instance definition from a TOML file.
// Every pool, group and connection starts from its defaults, so the file
// only needs to list the parameters that differ.
func OpenInstanceTOML(filename string) (*InstanceParams, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	ip, err := DecodeInstanceTOML(string(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return ip, nil
}

// DecodeInstanceTOML decodes an instance definition from TOML text,
// see OpenInstanceTOML
func DecodeInstanceTOML(data string) (*InstanceParams, error) {
	var shp tomlShape
	if _, err := toml.Decode(data, &shp); err != nil {
		return nil, err
	}
	ip := &InstanceParams{}
	ip.Defaults()
	for _, ps := range shp.Pools {
		pp := &PoolParams{}
		pp.Defaults()
		for range ps.Groups {
			gp := &NeuronGroupParams{}
			gp.Defaults()
			pp.Groups = append(pp.Groups, gp)
		}
		ip.Pools = append(ip.Pools, pp)
	}
	for range shp.PoolConns {
		pc := &PoolConnParams{}
		pc.Defaults()
		ip.PoolConns = append(ip.PoolConns, pc)
	}
	for range shp.InputConns {
		ic := &InputConnParams{}
		ic.Defaults()
		ip.InputConns = append(ip.InputConns, ic)
	}
	md, err := toml.Decode(data, ip)
	if err != nil {
		return nil, err
	}
	if und := md.Undecoded(); len(und) > 0 {
		Log.WithField("keys", und).Warn("unknown keys in instance definition")
	}
	ip.Update()
	return ip, nil
}
