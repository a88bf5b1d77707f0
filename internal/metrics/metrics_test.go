package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordChat(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordChat("success", 5*time.Millisecond)
	m.RecordChat("success", 10*time.Millisecond)
	m.RecordChat("rate_limited", time.Millisecond)

	if got := testutil.ToFloat64(m.ChatRequestsTotal.WithLabelValues("success")); got != 2 {
		t.Errorf("success count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ChatRequestsTotal.WithLabelValues("rate_limited")); got != 1 {
		t.Errorf("rate_limited count = %v, want 1", got)
	}
}

func TestRecordResolution(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordResolution("courses", "override")
	m.RecordResolution("courses", "fuzzy")
	m.RecordResolution("", "none")

	if got := testutil.ToFloat64(m.IntentResolvedTotal.WithLabelValues("courses")); got != 2 {
		t.Errorf("courses count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ResolverStageTotal.WithLabelValues("none")); got != 1 {
		t.Errorf("none stage count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.FallbackTotal); got != 1 {
		t.Errorf("fallback count = %v, want 1", got)
	}
}

func TestActiveSessions(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.SetActiveSessions(3)
	if got := testutil.ToFloat64(m.ActiveSessions); got != 3 {
		t.Errorf("active sessions = %v, want 3", got)
	}
	m.SetActiveSessions(0)
	if got := testutil.ToFloat64(m.ActiveSessions); got != 0 {
		t.Errorf("active sessions = %v, want 0", got)
	}
}
