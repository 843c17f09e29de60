// Package metrics exports Prometheus counters for ledger calls, alias
// lookups and narrations.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mDuo13/txsplain/internal/alias"
	"github.com/mDuo13/txsplain/internal/explain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Metrics satisfies the rpc, alias and explain observer interfaces.
type Metrics struct {
	registry *prometheus.Registry

	rpcCalls        *prometheus.CounterVec
	rpcDuration     *prometheus.HistogramVec
	aliasLookups    *prometheus.CounterVec
	narrations      *prometheus.CounterVec
	narrationLength *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		rpcCalls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "txsplain_rpc_calls_total",
			Help: "Ledger data requests by method and result.",
		}, []string{"method", "result"}),
		rpcDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "txsplain_rpc_duration_seconds",
			Help:    "Ledger data request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		aliasLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "txsplain_alias_lookups_total",
			Help: "Alias lookups by outcome.",
		}, []string{"outcome"}),
		narrations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "txsplain_narrations_total",
			Help: "Narratives produced by record kind and result.",
		}, []string{"kind", "result"}),
		narrationLength: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "txsplain_narration_duration_seconds",
			Help:    "Time to produce a narrative, including ledger and alias lookups.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
	}
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return "error"
}

func (m *Metrics) ObserveCall(method string, duration time.Duration, err error) {
	m.rpcCalls.WithLabelValues(method, result(err)).Inc()
	m.rpcDuration.WithLabelValues(method).Observe(duration.Seconds())
}

func (m *Metrics) ObserveAliasLookup(outcome alias.Outcome) {
	m.aliasLookups.WithLabelValues(string(outcome)).Inc()
}

func (m *Metrics) ObserveNarration(kind explain.Kind, duration time.Duration, err error) {
	m.narrations.WithLabelValues(string(kind), result(err)).Inc()
	m.narrationLength.WithLabelValues(string(kind)).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve listens on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
