package benchmark

import (
	"crypto/rand"
	"fmt"
	"io"
	"runtime"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/keywire-go/internal/store"
	"github.com/yndnr/keywire-go/internal/telemetry/logger"
)

// KeyCounts defines the key counts for benchmarking.
var KeyCounts = []int{5000, 10000, 50000, 100000, 500000}

// SmallKeyCounts for quick benchmarks.
var SmallKeyCounts = []int{1000, 10000, 100000}

// benchKey returns the deterministic key for index i so lookups can
// address prefilled entries.
func benchKey(i int) string {
	return fmt.Sprintf("key-%08d", i)
}

// newBenchValue generates a random value payload.
func newBenchValue() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, _ := ulid.New(ulid.Timestamp(time.Now()), entropy)
	return id.String()
}

// prefillStore fills a store with count keys.
func prefillStore(st *store.Store, count int) {
	for i := 0; i < count; i++ {
		st.Set(benchKey(i), newBenchValue())
	}
}

// quietLogger returns a logger that drops everything below error.
func quietLogger(b *testing.B) logger.Logger {
	b.Helper()

	log, err := logger.New(logger.Config{
		Level:  "error",
		Format: "json",
		Output: io.Discard,
	})
	if err != nil {
		b.Fatalf("logger.New() error = %v", err)
	}
	return log
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithKeyCounts runs a benchmark function with various key counts.
func runWithKeyCounts(b *testing.B, counts []int, benchFn func(b *testing.B, count int)) {
	for _, count := range counts {
		b.Run(fmt.Sprintf("keys_%d", count), func(b *testing.B) {
			benchFn(b, count)
		})
	}
}
