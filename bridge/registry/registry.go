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

// Package registry holds the tables of monitored output signals and driven
// input signals that the bridge exchanges with the peer, along with the
// per-output "changed since last push" tracking (spec C3 + C5).
package registry

import (
	"fmt"
	"math/big"

	"golang.org/x/exp/slices"

	"github.com/myhdl/cosim-bridge/bridge/errs"
)

// MaxOutputs is the maximum number of $to_myhdl arguments (MAXARGS).
const MaxOutputs = 1024

// MaxWidth is the largest bit width a single signal may declare.
const MaxWidth = 1 << 20

// OutputSignal is one monitored, kernel-sampled signal.
type OutputSignal struct {
	Name     string
	Width    int
	Index    int
	Current  *big.Int
	Previous *big.Int
	Changed  bool
}

// InputSignal is one peer-driven register.
type InputSignal struct {
	Name    string
	Width   int
	Pending *big.Int
}

// Registry is the table of outputs and inputs registered by $to_myhdl /
// $from_myhdl (or, for the compiled-model path, loaded from a descriptor
// file). It is not safe for concurrent use; the bridge runs single-threaded.
type Registry struct {
	outputs      []*OutputSignal
	inputs       []*InputSignal
	outputByName map[string]struct{}
	inputByName  map[string]struct{}
	firstPush    bool
}

// New returns an empty Registry ready to accept AddOutput/AddInput calls.
func New() *Registry {
	return &Registry{
		outputByName: map[string]struct{}{},
		inputByName:  map[string]struct{}{},
		firstPush:    true,
	}
}

func validateWidth(width int) error {
	if width < 1 || width > MaxWidth {
		return fmt.Errorf("width %d out of range [1, %d]", width, MaxWidth)
	}
	return nil
}

// AddOutput registers a monitored signal and returns its stable index, the
// identity passed to the kernel's value-change callback.
func (r *Registry) AddOutput(name string, width int) (int, error) {
	if err := validateWidth(width); err != nil {
		return 0, err
	}
	if _, ok := r.outputByName[name]; ok {
		return 0, fmt.Errorf("%w: %q", errs.ErrDuplicateSignalName, name)
	}
	if len(r.outputs) >= MaxOutputs {
		return 0, fmt.Errorf("%w: limit is %d", errs.ErrTooManyOutputs, MaxOutputs)
	}
	idx := len(r.outputs)
	r.outputs = append(r.outputs, &OutputSignal{
		Name:  name,
		Width: width,
		Index: idx,
	})
	r.outputByName[name] = struct{}{}
	return idx, nil
}

// AddInput registers a driven register.
func (r *Registry) AddInput(name string, width int) error {
	if err := validateWidth(width); err != nil {
		return err
	}
	if _, ok := r.inputByName[name]; ok {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateSignalName, name)
	}
	r.inputs = append(r.inputs, &InputSignal{Name: name, Width: width})
	r.inputByName[name] = struct{}{}
	return nil
}

// Outputs returns the monitored signals in registration order.
func (r *Registry) Outputs() []*OutputSignal { return r.outputs }

// Inputs returns the driven signals in registration order.
func (r *Registry) Inputs() []*InputSignal { return r.inputs }

// SetCurrent records the kernel-sampled value for output i (C3's "current").
func (r *Registry) SetCurrent(index int, value *big.Int) error {
	if index < 0 || index >= len(r.outputs) {
		return fmt.Errorf("output index %d out of range", index)
	}
	r.outputs[index].Current = value
	return nil
}

// MarkChanged is the kernel-invoked change callback (C5): idempotent within
// a kernel event, cleared again the next time outputs are pushed.
func (r *Registry) MarkChanged(index int) error {
	if index < 0 || index >= len(r.outputs) {
		return fmt.Errorf("output index %d out of range", index)
	}
	r.outputs[index].Changed = true
	return nil
}

// Changed reports which outputs the next sample frame must include: every
// output on the first push, only the ones flagged changed afterwards.
// Flags are cleared as a side effect, as required by invariant 3 in the
// data model (a change callback must never fire between the clear and the
// next kernel event).
func (r *Registry) Changed() []*OutputSignal {
	first := r.firstPush
	r.firstPush = false
	var changed []*OutputSignal
	for _, o := range r.outputs {
		if first || o.Changed {
			changed = append(changed, o)
		}
		if o.Current != nil {
			o.Previous = new(big.Int).Set(o.Current)
		}
		o.Changed = false
	}
	return changed
}

// ApplyDrive applies the positional values from a drive frame's value
// tokens to the registered inputs, in registration order. Extra tokens
// beyond the registered inputs are ignored per spec.md 4.6; fewer tokens
// than registered inputs is a peer protocol error.
func (r *Registry) ApplyDrive(values []string) error {
	if len(values) < len(r.inputs) {
		return fmt.Errorf("%w: got %d, want %d", errs.ErrShortDriveFrame, len(values), len(r.inputs))
	}
	for i, in := range r.inputs {
		v, ok := new(big.Int).SetString(values[i], 16)
		if !ok {
			return fmt.Errorf("input %q: invalid hex value %q", in.Name, values[i])
		}
		in.Pending = v
	}
	return nil
}

// WidthBucket classifies a bit width into the typed read/write/compare
// bucket the compiled-model binding uses (spec.md 4.3): <=8, <=16, <=32,
// <=64, or "wide" (multi-word).
func WidthBucket(width int) string {
	switch {
	case width <= 8:
		return "u8"
	case width <= 16:
		return "u16"
	case width <= 32:
		return "u32"
	case width <= 64:
		return "u64"
	default:
		return "wide"
	}
}

// SortedOutputNames returns output names in sorted order, independent of
// registration order. Wire frames do not use it: they stay in registration
// order.
func SortedOutputNames(outputs []*OutputSignal) []string {
	names := make([]string, len(outputs))
	for i, o := range outputs {
		names[i] = o.Name
	}
	slices.Sort(names)
	return names
}
