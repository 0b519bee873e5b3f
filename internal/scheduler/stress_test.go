package scheduler

import (
	"sync"
	"testing"
	"time"
)

func TestEngineStressConcurrentReplace(t *testing.T) {
	engine := NewEngine(4096)
	engine.Start()
	defer engine.Stop()

	const workers = 8
	const rounds = 200

	far := time.Now().UTC().Add(time.Hour)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		w := w
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				evs := make([]DueEvent, 0, w+1)
				for id := 0; id <= w; id++ {
					evs = append(evs, DueEvent{TodoID: int64(id + 1), DueAt: far.Add(time.Duration(i) * time.Millisecond)})
				}
				if err := engine.Replace(evs); err != nil {
					t.Errorf("replace failed: %v", err)
					return
				}
				if n := engine.Pending(); n < 1 || n > workers {
					t.Errorf("pending out of range: %d", n)
					return
				}
			}
		}()
	}
	wg.Wait()

	final := []DueEvent{{TodoID: 42, DueAt: far}}
	if err := engine.Replace(final); err != nil {
		t.Fatalf("final replace: %v", err)
	}
	if got := engine.Pending(); got != 1 {
		t.Fatalf("expected the last replace to win, pending=%d", got)
	}
}

func TestEngineStressLargeBatch(t *testing.T) {
	engine := NewEngine(4096)
	engine.Start()
	defer engine.Stop()

	const total = 1600
	now := time.Now().UTC()
	evs := make([]DueEvent, 0, total)
	for i := 0; i < total; i++ {
		evs = append(evs, DueEvent{
			TodoID: int64(i + 1),
			DueAt:  now.Add(time.Duration(i%50+10) * time.Millisecond),
		})
	}
	if err := engine.Replace(evs); err != nil {
		t.Fatalf("replace: %v", err)
	}

	deadline := time.After(5 * time.Second)
	var last time.Time
	for received := 0; received < total; received++ {
		select {
		case <-deadline:
			t.Fatalf("timeout waiting events: received=%d total=%d dropped=%d", received, total, engine.Dropped())
		case ev := <-engine.C():
			if ev.DueAt.Before(last) {
				t.Fatalf("event %d out of due order", ev.TodoID)
			}
			last = ev.DueAt
		}
	}
	if engine.Dropped() != 0 {
		t.Fatalf("expected zero drops with active consumer, got=%d", engine.Dropped())
	}
}
