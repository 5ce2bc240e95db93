package poller

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestRefresherFiresOnSchedule(t *testing.T) {
	var fires atomic.Int32
	r, err := New("@every 1s", func() { fires.Add(1) })
	if err != nil {
		t.Fatalf("new refresher: %v", err)
	}
	r.Start()
	defer r.Stop()

	deadline := time.After(3 * time.Second)
	for fires.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 2 fires, got %d", fires.Load())
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func TestRefresherRejectsBadSchedule(t *testing.T) {
	if _, err := New("not a schedule", func() {}); err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestStopHaltsSchedule(t *testing.T) {
	var fires atomic.Int32
	r, err := New("@every 1s", func() { fires.Add(1) })
	if err != nil {
		t.Fatalf("new refresher: %v", err)
	}
	r.Start()
	r.Stop()
	before := fires.Load()
	time.Sleep(1500 * time.Millisecond)
	if fires.Load() != before {
		t.Fatal("refresher fired after Stop")
	}
}
