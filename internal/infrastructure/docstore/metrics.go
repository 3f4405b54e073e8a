package docstore

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	opsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "docstore_operations_total",
		Help: "Total number of document store operations by result.",
	}, []string{"op", "status"})

	opDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "docstore_operation_duration_seconds",
		Help:    "Duration of document store operations.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"op"})
)

// MustRegisterMetrics registers the docstore collectors.
func MustRegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(opsTotal, opDurationSeconds)
}

// Instrument wraps a store so every operation is counted and timed.
func Instrument(next Store) Store {
	return &instrumentedStore{next: next}
}

type instrumentedStore struct {
	next Store
}

func observe(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	opsTotal.WithLabelValues(op, status).Inc()
	opDurationSeconds.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (s *instrumentedStore) Get(ctx context.Context, path string) (doc map[string]any, err error) {
	start := time.Now()
	defer func() { observe("get", start, err) }()
	return s.next.Get(ctx, path)
}

func (s *instrumentedStore) GetAll(ctx context.Context, collection string) (docs []Doc, err error) {
	start := time.Now()
	defer func() { observe("get_all", start, err) }()
	return s.next.GetAll(ctx, collection)
}

func (s *instrumentedStore) Query(ctx context.Context, collection string, filters ...Filter) (docs []Doc, err error) {
	start := time.Now()
	defer func() { observe("query", start, err) }()
	return s.next.Query(ctx, collection, filters...)
}

func (s *instrumentedStore) Add(ctx context.Context, collection string, data map[string]any) (id string, err error) {
	start := time.Now()
	defer func() { observe("add", start, err) }()
	return s.next.Add(ctx, collection, data)
}

func (s *instrumentedStore) Set(ctx context.Context, path string, data map[string]any) (err error) {
	start := time.Now()
	defer func() { observe("set", start, err) }()
	return s.next.Set(ctx, path, data)
}

func (s *instrumentedStore) Update(ctx context.Context, path string, fields map[string]any) (err error) {
	start := time.Now()
	defer func() { observe("update", start, err) }()
	return s.next.Update(ctx, path, fields)
}

func (s *instrumentedStore) Delete(ctx context.Context, path string) (err error) {
	start := time.Now()
	defer func() { observe("delete", start, err) }()
	return s.next.Delete(ctx, path)
}

func (s *instrumentedStore) Batch() WriteBatch {
	return &instrumentedBatch{next: s.next.Batch()}
}

func (s *instrumentedStore) Close() error { return s.next.Close() }

type instrumentedBatch struct {
	next WriteBatch
}

func (b *instrumentedBatch) Set(path string, data map[string]any) { b.next.Set(path, data) }

func (b *instrumentedBatch) Update(path string, fields map[string]any) { b.next.Update(path, fields) }

func (b *instrumentedBatch) Delete(path string) { b.next.Delete(path) }

func (b *instrumentedBatch) Commit(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { observe("batch_commit", start, err) }()
	return b.next.Commit(ctx)
}
