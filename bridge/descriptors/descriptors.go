/*
Copyright (c) the cosim-bridge authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package descriptors loads the compiled-model path's signal tables from an
// INI file, standing in for the linked myhdl_inputs[]/myhdl_outputs[] C
// descriptor arrays (spec.md §4.3, §4.7) that a Go binary has no way to link
// against directly.
package descriptors

import (
	"fmt"

	"github.com/go-ini/ini"
)

// Spec is one descriptor table row: a signal name and its bit width.
type Spec struct {
	Name  string
	Width int
}

// LoadINI reads sections [outputs] and [inputs] from path, each holding
// "name = width" entries, in file order.
func LoadINI(path string) (outputs, inputs []Spec, err error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading descriptor file %s: %w", path, err)
	}
	if outputs, err = loadSection(f, "outputs"); err != nil {
		return nil, nil, err
	}
	if inputs, err = loadSection(f, "inputs"); err != nil {
		return nil, nil, err
	}
	return outputs, inputs, nil
}

func loadSection(f *ini.File, name string) ([]Spec, error) {
	sec, err := f.GetSection(name)
	if err != nil {
		return nil, fmt.Errorf("section [%s]: %w", name, err)
	}
	keys := sec.Keys()
	specs := make([]Spec, 0, len(keys))
	for _, k := range keys {
		width, err := k.Int()
		if err != nil {
			return nil, fmt.Errorf("section [%s] key %q: %w", name, k.Name(), err)
		}
		specs = append(specs, Spec{Name: k.Name(), Width: width})
	}
	return specs, nil
}
