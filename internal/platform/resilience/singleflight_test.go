package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var executions atomic.Int32
	release := make(chan struct{})

	const callers = 8
	results := make([]any, callers)
	shared := make([]bool, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			val, err, wasShared := g.Do("season:2025", func() (any, error) {
				executions.Add(1)
				<-release
				return "lookup", nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results[i] = val
			shared[i] = wasShared
		}()
	}

	close(release)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("unexpected execution count: got=%d want=1", got)
	}
	sharedCount := 0
	for i := 0; i < callers; i++ {
		if results[i] != "lookup" {
			t.Fatalf("caller %d got unexpected value %v", i, results[i])
		}
		if shared[i] {
			sharedCount++
		}
	}
	if sharedCount != callers-1 {
		t.Fatalf("unexpected shared count: got=%d want=%d", sharedCount, callers-1)
	}
}

func TestSingleFlight_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var executions atomic.Int32

	fn := func() (any, error) {
		executions.Add(1)
		return nil, nil
	}

	if _, err, _ := g.Do("season:2024", fn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err, _ := g.Do("season:2025", fn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := executions.Load(); got != 2 {
		t.Fatalf("unexpected execution count: got=%d want=2", got)
	}
}
