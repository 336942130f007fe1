package datadog

import (
	"net"
	"reflect"
	"strings"
	"testing"
	"time"

	"campaign/internal/metrics"
)

func TestNewBackend_RequiresAddr(t *testing.T) {
	t.Parallel()

	b, err := NewBackend(Config{})
	if err == nil || b != nil {
		t.Fatalf("NewBackend(empty) = %v, %v; want nil, error", b, err)
	}
}

func TestLabelsToTags(t *testing.T) {
	t.Parallel()

	if got := labelsToTags(nil); got != nil {
		t.Fatalf("labelsToTags(nil) = %v, want nil", got)
	}
	got := labelsToTags(metrics.Labels{"step": "write", "job": "campaign", "status": "success"})
	want := []string{"job:campaign", "status:success", "step:write"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("labelsToTags = %v, want %v", got, want)
	}
}

/*
TestBackend_EmitsToAgent starts a UDP listener standing in for the DogStatsD
agent and checks that counters and histograms arrive with the namespace and
tags applied once the backend is flushed.
*/
func TestBackend_EmitsToAgent(t *testing.T) {
	t.Parallel()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("udp listener unavailable: %v", err)
	}
	defer pc.Close()

	b, err := NewBackend(Config{
		Addr:       pc.LocalAddr().String(),
		Namespace:  "bank.",
		GlobalTags: []string{"env:test"},
	})
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}

	b.IncCounter(metrics.RowsTotal, 5, metrics.Labels{"job": "campaign", "kind": "read"})
	b.ObserveHistogram(metrics.StepDurationSeconds, 0.25, metrics.Labels{"step": "read", "status": "success"})
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := []string{
		"bank." + metrics.RowsTotal + ":5|c",
		"bank." + metrics.StepDurationSeconds + ":0.25|h",
	}
	var got strings.Builder
	buf := make([]byte, 64*1024)
	deadline := time.Now().Add(2 * time.Second)
	for !containsAll(got.String(), want) && time.Now().Before(deadline) {
		_ = pc.SetReadDeadline(deadline)
		n, _, err := pc.ReadFrom(buf)
		if err != nil {
			break
		}
		got.Write(buf[:n])
		got.WriteByte('\n')
	}
	if !containsAll(got.String(), want) {
		t.Fatalf("agent payload missing %v:\n%s", want, got.String())
	}
	if !strings.Contains(got.String(), "env:test") || !strings.Contains(got.String(), "kind:read") {
		t.Fatalf("agent payload missing tags:\n%s", got.String())
	}
}

func TestBackend_ZeroValueIsSafe(t *testing.T) {
	t.Parallel()

	b := &Backend{}
	b.IncCounter(metrics.StepTotal, 1, nil)
	b.ObserveHistogram(metrics.StepDurationSeconds, 1, nil)
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush on zero backend: %v", err)
	}
}

func containsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
