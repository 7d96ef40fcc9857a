package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/kilianp07/jobshop/core/metrics"
)

// PromSink records solver runs in Prometheus metrics.
type PromSink struct {
	solves   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	makespan *prometheus.GaugeVec
}

// NewPromSink registers solver metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	solves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jobshop_solves_total",
		Help: "Total number of solver runs",
	}, []string{"solver", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jobshop_solve_duration_seconds",
		Help:    "Wall-clock duration of solver runs",
		Buckets: prometheus.DefBuckets,
	}, []string{"solver"})
	makespan := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "jobshop_last_makespan",
		Help: "Makespan of the most recent successful solve",
	}, []string{"solver"})

	if err := reg.Register(solves); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			solves = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(makespan); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			makespan = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{solves: solves, duration: duration, makespan: makespan}, nil
}

// RecordSolveResult increments the run counter and observes duration
// and makespan.
func (s *PromSink) RecordSolveResult(res coremetrics.SolveResult) error {
	s.solves.WithLabelValues(res.Solver, res.Outcome).Inc()
	s.duration.WithLabelValues(res.Solver).Observe(res.Duration.Seconds())
	if res.Outcome == "ok" {
		s.makespan.WithLabelValues(res.Solver).Set(float64(res.Makespan))
	}
	return nil
}

// StartPromServer serves the /metrics endpoint on the given port until
// the context is cancelled.
func StartPromServer(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: ":" + port, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
