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

package kernel

import (
	"fmt"
	"math/big"
)

// Scheduled records one pending callback, named by the phase that will
// invoke it, for tests to inspect and fire deterministically.
type Scheduled struct {
	Reason string // "RO", "Delay", "Delta"
	Units  uint64 // only meaningful for "Delay"
	Due    uint64 // kernel time the callback is due at, fixed when scheduled
	Fn     func()
}

// Fake is an in-memory Callbacks for tests: it never invokes a scheduled
// callback itself. Tests call FireNext to drive the machine forward
// one phase at a time, matching the kernel's own single-threaded, one-tick-
// at-a-time re-entrancy.
type Fake struct {
	Now     uint64
	Outputs map[int]*big.Int
	Inputs  map[string]*big.Int

	Pending  []Scheduled
	Aborted  error
	Finished bool
}

// NewFake returns a Fake kernel with an initial time of 0.
func NewFake() *Fake {
	return &Fake{
		Outputs: map[int]*big.Int{},
		Inputs:  map[string]*big.Int{},
	}
}

func (f *Fake) CurrentTime() uint64 { return f.Now }

func (f *Fake) ReadOutput(index int) (*big.Int, error) {
	v, ok := f.Outputs[index]
	if !ok {
		return nil, fmt.Errorf("fake kernel: no value set for output index %d", index)
	}
	return v, nil
}

func (f *Fake) WriteInput(name string, value *big.Int) error {
	f.Inputs[name] = value
	return nil
}

func (f *Fake) ScheduleReadOnly(fn func()) {
	f.Pending = append(f.Pending, Scheduled{Reason: "RO", Due: f.Now, Fn: fn})
}

func (f *Fake) ScheduleDelay(units uint64, fn func()) {
	f.Pending = append(f.Pending, Scheduled{Reason: "Delay", Units: units, Due: f.Now + units, Fn: fn})
}

func (f *Fake) ScheduleDelta(fn func()) {
	f.Pending = append(f.Pending, Scheduled{Reason: "Delta", Due: f.Now + 1, Fn: fn})
}

func (f *Fake) Abort(err error) { f.Aborted = err }

func (f *Fake) Finish() { f.Finished = true }

// FireNext runs the oldest pending callback matching reason, removing it
// from Pending. Before running it, Now moves forward to the callback's due
// time (scheduling time +units for a Delay, +1 for a Delta, +0 for RO);
// Now never moves backwards, so a stale callback fired late leaves it as is.
func (f *Fake) FireNext(reason string) bool {
	for i, s := range f.Pending {
		if s.Reason != reason {
			continue
		}
		f.Pending = append(f.Pending[:i], f.Pending[i+1:]...)
		if s.Due > f.Now {
			f.Now = s.Due
		}
		s.Fn()
		return true
	}
	return false
}
