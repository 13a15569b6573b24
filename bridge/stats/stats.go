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

// Package stats holds the bridge's counters and their JSON/Prometheus
// exposition (SPEC_FULL A3), a gopsutil self-observation collector
// (A4), and a Welford running mean/variance of round-trip latency (A8).
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// Stats is the bridge's counter set, safe for concurrent use (the stats
// HTTP handler runs on its own goroutine while the main loop updates
// counters inline).
type Stats struct {
	framesSent         int64
	framesReceived     int64
	deltaResets        int64
	timeAdvances       int64
	backoffEngagements int64
	peerEOFCount       int64

	latency RoundTrip

	gaugesMu sync.Mutex
	gauges   map[string]uint64
}

// New returns an empty Stats.
func New() *Stats { return &Stats{} }

// IncFramesSent records one outbound frame.
func (s *Stats) IncFramesSent() { atomic.AddInt64(&s.framesSent, 1) }

// IncFramesReceived records one inbound frame.
func (s *Stats) IncFramesReceived() { atomic.AddInt64(&s.framesReceived, 1) }

// IncDeltaResets records one S_RO→S_DELAY transition (delta counter reset
// to zero by a real time advance).
func (s *Stats) IncDeltaResets() { atomic.AddInt64(&s.deltaResets, 1) }

// IncTimeAdvances records one peer-requested advance past the current
// pli_time, regardless of whether it reset delta.
func (s *Stats) IncTimeAdvances() { atomic.AddInt64(&s.timeAdvances, 1) }

// IncBackoffEngagements records one backoff-policy engagement (reserved for
// a future retry policy; the bridge does not currently retry the peer).
func (s *Stats) IncBackoffEngagements() { atomic.AddInt64(&s.backoffEngagements, 1) }

// IncPeerEOF records one clean peer-closed shutdown.
func (s *Stats) IncPeerEOF() { atomic.AddInt64(&s.peerEOFCount, 1) }

// RecordRoundTrip feeds one sample/drive or handshake round-trip latency
// into the running Welford estimator.
func (s *Stats) RecordRoundTrip(seconds float64) { s.latency.Add(seconds) }

// SetCounter publishes a named gauge value, keyed as given, into the same
// counters map Snapshot exposes (SPEC_FULL A4: sysstats are fed into the
// same counters map consumed by A3), mirroring the teacher's
// client.StatsServer.SetCounter.
func (s *Stats) SetCounter(name string, value uint64) {
	s.gaugesMu.Lock()
	defer s.gaugesMu.Unlock()
	if s.gauges == nil {
		s.gauges = map[string]uint64{}
	}
	s.gauges[name] = value
}

// Snapshot copies all counters into a plain map, the shape the JSON
// handler and the Prometheus exporter both consume.
func (s *Stats) Snapshot() map[string]float64 {
	m := map[string]float64{
		"frames_sent":         float64(atomic.LoadInt64(&s.framesSent)),
		"frames_received":     float64(atomic.LoadInt64(&s.framesReceived)),
		"delta_resets":        float64(atomic.LoadInt64(&s.deltaResets)),
		"time_advances":       float64(atomic.LoadInt64(&s.timeAdvances)),
		"backoff_engagements": float64(atomic.LoadInt64(&s.backoffEngagements)),
		"peer_eof_count":      float64(atomic.LoadInt64(&s.peerEOFCount)),
	}
	mean, variance, count := s.latency.Snapshot()
	m["round_trip_latency_seconds_mean"] = mean
	m["round_trip_latency_seconds_variance"] = variance
	m["round_trip_latency_sample_count"] = float64(count)

	s.gaugesMu.Lock()
	for k, v := range s.gauges {
		m[k] = float64(v)
	}
	s.gaugesMu.Unlock()

	return m
}

// ServeHTTP renders Snapshot as JSON, the handler registered at "/" for
// the JSON stats endpoint the Prometheus exporter scrapes.
func (s *Stats) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	js, err := json.Marshal(s.Snapshot())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(js); err != nil {
		log.Errorf("stats: failed to write response: %v", err)
	}
}

// Start runs the JSON stats HTTP server on addr until ctx is canceled. It
// blocks; callers run it as one leg of an errgroup.
func (s *Stats) Start(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.ServeHTTP)
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("stats: starting JSON endpoint on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
