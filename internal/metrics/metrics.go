// Package metrics exposes Prometheus instrumentation for long-running
// scans. Nothing is registered or served unless Init and StartServer
// are called, so short interactive runs pay no cost.
package metrics

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dendrascience/dupecull/internal/logging"
)

var (
	// FilesHashedTotal counts files fingerprinted successfully.
	FilesHashedTotal prometheus.Counter

	// BytesHashedTotal counts bytes of file content fingerprinted.
	BytesHashedTotal prometheus.Counter

	// FilesSkippedTotal counts files that could not be read.
	FilesSkippedTotal prometheus.Counter

	// DuplicateGroups records the group count of the most recent scan.
	DuplicateGroups prometheus.Gauge

	// FilesDeletedTotal counts files removed by the deletion pass.
	FilesDeletedTotal prometheus.Counter

	// BytesFreedTotal counts bytes reclaimed by the deletion pass.
	BytesFreedTotal prometheus.Counter
)

var (
	initOnce    sync.Once
	serverMutex sync.Mutex
	currentSrv  *http.Server
)

// Init creates and registers all scan metrics. Safe to call more than
// once; only the first call takes effect.
func Init() {
	initOnce.Do(func() {
		FilesHashedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dupecull_files_hashed_total",
			Help: "Total number of files fingerprinted.",
		})
		BytesHashedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dupecull_bytes_hashed_total",
			Help: "Total bytes of file content fingerprinted.",
		})
		FilesSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dupecull_files_skipped_total",
			Help: "Total number of files skipped as unreadable.",
		})
		DuplicateGroups = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dupecull_duplicate_groups",
			Help: "Duplicate groups found by the most recent scan.",
		})
		FilesDeletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dupecull_files_deleted_total",
			Help: "Total number of duplicate files deleted.",
		})
		BytesFreedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dupecull_bytes_freed_total",
			Help: "Total bytes reclaimed by deleting duplicates.",
		})

		prometheus.MustRegister(
			FilesHashedTotal,
			BytesHashedTotal,
			FilesSkippedTotal,
			DuplicateGroups,
			FilesDeletedTotal,
			BytesFreedTotal,
		)
	})
}

// StartServer binds addr and serves /metrics and /health for the rest
// of the run. The bind happens synchronously so a bad address fails
// fast; serving continues in the background.
func StartServer(addr string) error {
	serverMutex.Lock()
	defer serverMutex.Unlock()

	if currentSrv != nil {
		logging.Warn("metrics server already running", zap.String("addr", currentSrv.Addr))
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	currentSrv = srv

	go func() {
		logging.Info("metrics server listening", zap.String("addr", addr))
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logging.Error("metrics server failed", zap.Error(err))
		}
	}()

	return nil
}

// Shutdown stops the metrics server if one is running.
func Shutdown(ctx context.Context) error {
	serverMutex.Lock()
	defer serverMutex.Unlock()

	if currentSrv == nil {
		return nil
	}
	err := currentSrv.Shutdown(ctx)
	currentSrv = nil
	return err
}
