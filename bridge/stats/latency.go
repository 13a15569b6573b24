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

package stats

import "github.com/eclesh/welford"

// RoundTrip is a running mean/variance of round-trip latency (handshake
// acks and sample/drive exchanges), the same Welford estimator the
// teacher uses for clock-quality measurements.
type RoundTrip struct {
	w *welford.Stats
}

// Add feeds one latency sample, in seconds.
func (r *RoundTrip) Add(seconds float64) {
	if r.w == nil {
		r.w = welford.New()
	}
	r.w.Add(seconds)
}

// Snapshot returns the current mean, variance, and sample count.
func (r *RoundTrip) Snapshot() (mean, variance float64, count int64) {
	if r.w == nil {
		return 0, 0, 0
	}
	return r.w.Mean(), r.w.Variance(), r.w.Count()
}
