package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInitIsIdempotent(t *testing.T) {
	Init()
	Init()
}

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(RecordsWritten.WithLabelValues("budget", "created"))
	RecordsWritten.WithLabelValues("budget", "created").Inc()
	if got := testutil.ToFloat64(RecordsWritten.WithLabelValues("budget", "created")); got != before+1 {
		t.Fatalf("counter = %v, want %v", got, before+1)
	}
}
