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
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/process"
)

var procStartTime = time.Now()

// SysStats collects the bridge process's own resource usage (A4), the way
// the teacher's client self-observes CPU/RSS/FD counts between cycles.
type SysStats struct {
	memstats *runtime.MemStats
}

// Collect gathers process and Go runtime metrics once. The interval
// argument is accepted but not used: no key depends on it, and it does not
// throttle anything.
func (s *SysStats) Collect(interval time.Duration) (map[string]uint64, error) {
	stats := make(map[string]uint64)
	m := &runtime.MemStats{}
	runtime.ReadMemStats(m)

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	stats["process.uptime"] = uint64(time.Since(procStartTime).Seconds())

	if val, err := proc.Percent(0); err == nil {
		stats["process.cpu_pct"] = uint64(val * 100)
	}
	if val, err := proc.MemoryInfo(); err == nil {
		stats["process.rss"] = val.RSS
		stats["process.vms"] = val.VMS
	}
	if val, err := proc.NumFDs(); err == nil {
		stats["process.num_fds"] = uint64(val)
	}
	if val, err := proc.NumThreads(); err == nil {
		stats["process.num_threads"] = uint64(val)
	}

	stats["runtime.goroutines"] = uint64(runtime.NumGoroutine())
	stats["runtime.mem.heap_alloc"] = m.HeapAlloc
	stats["runtime.mem.heap_inuse"] = m.HeapInuse
	stats["runtime.mem.gc_count"] = uint64(m.NumGC)

	s.memstats = m
	return stats, nil
}
