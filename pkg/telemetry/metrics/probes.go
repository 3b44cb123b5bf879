package metrics

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"mercator-hq/callisto/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Probe names recognized in the probes blacklist.
const (
	ProbeGo             = "go"
	ProbeProcess        = "process"
	ProbeBuildInfo      = "build_info"
	ProbeRuntimeSampler = "runtime_sampler"
)

// ProbeSet holds the default process probes: the standard Go runtime,
// process, and build-info collectors, plus a periodic runtime sampler that
// actively samples gauges at a fixed interval. Individual probes can be
// disabled by name through the blacklist.
type ProbeSet struct {
	interval time.Duration

	goroutines  prometheus.Gauge
	heapInuse   prometheus.Gauge
	gcPauseLast prometheus.Gauge

	done      chan struct{}
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// StartDefaultProbes registers the default probes with reg and starts the
// runtime sampler. The blacklist disables probes by name ("go", "process",
// "build_info", "runtime_sampler"); unrecognized names are rejected at
// configuration-validation time, not here. The sampler interval comes from
// cfg.Interval and is validated (>= 1s) by pkg/config.
//
// The returned ProbeSet must be stopped with Stop to release the sampler
// goroutine. When cfg.Enabled is false, nothing is registered and a no-op
// ProbeSet is returned.
func StartDefaultProbes(reg prometheus.Registerer, cfg config.ProbesConfig) (*ProbeSet, error) {
	p := &ProbeSet{
		interval: cfg.Interval,
		done:     make(chan struct{}),
	}

	if !cfg.Enabled {
		return p, nil
	}

	blacklisted := make(map[string]bool, len(cfg.Blacklist))
	for _, name := range cfg.Blacklist {
		blacklisted[name] = true
	}

	if !blacklisted[ProbeGo] {
		if err := reg.Register(collectors.NewGoCollector()); err != nil {
			return nil, fmt.Errorf("failed to register go collector: %w", err)
		}
	}
	if !blacklisted[ProbeProcess] {
		if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
			return nil, fmt.Errorf("failed to register process collector: %w", err)
		}
	}
	if !blacklisted[ProbeBuildInfo] {
		if err := reg.Register(collectors.NewBuildInfoCollector()); err != nil {
			return nil, fmt.Errorf("failed to register build info collector: %w", err)
		}
	}

	if !blacklisted[ProbeRuntimeSampler] {
		p.goroutines = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "callisto_runtime_goroutines",
			Help: "Number of goroutines, sampled at the configured probe interval",
		})
		p.heapInuse = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "callisto_runtime_heap_inuse_bytes",
			Help: "Bytes of in-use heap memory, sampled at the configured probe interval",
		})
		p.gcPauseLast = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "callisto_runtime_gc_pause_last_seconds",
			Help: "Duration of the most recent GC stop-the-world pause, sampled at the configured probe interval",
		})

		for _, g := range []prometheus.Gauge{p.goroutines, p.heapInuse, p.gcPauseLast} {
			if err := reg.Register(g); err != nil {
				return nil, fmt.Errorf("failed to register runtime sampler gauge: %w", err)
			}
		}

		p.startOnce.Do(func() {
			p.wg.Add(1)
			go p.sampleLoop()
		})
	}

	return p, nil
}

// Stop stops the runtime sampler goroutine, if one was started.
func (p *ProbeSet) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
	})
	p.wg.Wait()
}

// sampleLoop updates the sampler gauges once per interval until stopped.
func (p *ProbeSet) sampleLoop() {
	defer p.wg.Done()

	p.sample()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.sample()
		case <-p.done:
			return
		}
	}
}

// sample takes one reading of the runtime gauges.
func (p *ProbeSet) sample() {
	p.goroutines.Set(float64(runtime.NumGoroutine()))

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	p.heapInuse.Set(float64(ms.HeapInuse))
	p.gcPauseLast.Set(float64(ms.PauseNs[(ms.NumGC+255)%256]) / 1e9)
}
