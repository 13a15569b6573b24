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

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// PrometheusExporter scrapes the bridge's own JSON stats endpoint and
// republishes the counters as Prometheus gauges, the same
// scrape-a-JSON-endpoint-and-republish shape as the teacher's exporter.
type PrometheusExporter struct {
	registry   *prometheus.Registry
	listenPort int
	jsonURL    string
	interval   time.Duration
}

// NewPrometheusExporter creates an exporter that listens on listenPort and
// scrapes jsonURL (the bridge's own Stats.Start endpoint) every interval.
func NewPrometheusExporter(listenPort int, jsonURL string, interval time.Duration) *PrometheusExporter {
	return &PrometheusExporter{
		registry:   prometheus.NewRegistry(),
		listenPort: listenPort,
		jsonURL:    jsonURL,
		interval:   interval,
	}
}

// Start scrapes once per interval in the background and serves /metrics.
// It blocks; callers run it in its own goroutine.
func (e *PrometheusExporter) Start() error {
	go func() {
		for {
			e.scrapeOnce()
			time.Sleep(e.interval)
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{EnableOpenMetrics: true}))
	return http.ListenAndServe(fmt.Sprintf(":%d", e.listenPort), mux)
}

func (e *PrometheusExporter) scrapeOnce() {
	counters, err := FetchCounters(e.jsonURL)
	if err != nil {
		log.Errorf("prometheus exporter: failed to scrape %s: %v", e.jsonURL, err)
		return
	}
	for key, val := range counters {
		g := prometheus.NewGauge(prometheus.GaugeOpts{Name: flattenKey(key), Help: key})
		if err := e.registry.Register(g); err != nil {
			are := &prometheus.AlreadyRegisteredError{}
			if errors.As(err, are) {
				g = are.ExistingCollector.(prometheus.Gauge)
			} else {
				log.Errorf("prometheus exporter: failed to register %s: %v", key, err)
				continue
			}
		}
		g.Set(val)
	}
}

// FetchCounters fetches and decodes the JSON counters map from url.
func FetchCounters(url string) (map[string]float64, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var counters map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&counters); err != nil {
		return nil, fmt.Errorf("decoding stats response: %w", err)
	}
	return counters, nil
}

func flattenKey(key string) string {
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, ".", "_")
	key = strings.ReplaceAll(key, "-", "_")
	return key
}
