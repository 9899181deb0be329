package workerpool_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shashiranjanraj/supplyco/pkg/workerpool"
)

func TestRunsEverySubmittedTask(t *testing.T) {
	pool := workerpool.New(8)
	defer pool.Shutdown()

	const tasks = 200
	var done atomic.Int64
	var wg sync.WaitGroup
	wg.Add(tasks)

	for i := 0; i < tasks; i++ {
		if err := pool.SubmitWait(func() {
			done.Add(1)
			wg.Done()
		}); err != nil {
			t.Fatalf("SubmitWait: %v", err)
		}
	}
	wg.Wait()

	if got := done.Load(); got != tasks {
		t.Errorf("ran %d of %d tasks", got, tasks)
	}
}

func TestSubmitRejectsWhenSaturated(t *testing.T) {
	pool := workerpool.New(1)
	defer pool.Shutdown()

	release := make(chan struct{})
	busy := make(chan struct{})
	_ = pool.SubmitWait(func() {
		close(busy)
		<-release
	})
	<-busy

	// The buffer holds twice the worker count.
	for i := 0; i < 2; i++ {
		if err := pool.Submit(func() {}); err != nil {
			t.Fatalf("buffered submit %d: %v", i, err)
		}
	}

	if err := pool.Submit(func() {}); !errors.Is(err, workerpool.ErrPoolFull) {
		t.Errorf("saturated Submit = %v, want ErrPoolFull", err)
	}
	close(release)
}

func TestSubmitAfterShutdown(t *testing.T) {
	pool := workerpool.New(3)
	pool.Shutdown()
	pool.Shutdown() // idempotent

	if err := pool.Submit(func() {}); !errors.Is(err, workerpool.ErrPoolClosed) {
		t.Errorf("Submit after Shutdown = %v, want ErrPoolClosed", err)
	}
	if err := pool.SubmitWait(func() {}); !errors.Is(err, workerpool.ErrPoolClosed) {
		t.Errorf("SubmitWait after Shutdown = %v, want ErrPoolClosed", err)
	}
}

func TestWorkerSurvivesPanic(t *testing.T) {
	pool := workerpool.New(1)
	defer pool.Shutdown()

	var wg sync.WaitGroup
	wg.Add(1)
	_ = pool.SubmitWait(func() {
		defer wg.Done()
		panic("boom")
	})
	wg.Wait()

	ran := make(chan struct{})
	_ = pool.SubmitWait(func() { close(ran) })

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("worker died after a panicking task")
	}
}

func TestShutdownDrainsInFlightWork(t *testing.T) {
	pool := workerpool.New(4)

	var done atomic.Int64
	for i := 0; i < 20; i++ {
		_ = pool.SubmitWait(func() {
			time.Sleep(time.Millisecond)
			done.Add(1)
		})
	}

	pool.Shutdown()

	if got := done.Load(); got != 20 {
		t.Errorf("Shutdown returned with %d of 20 tasks finished", got)
	}
}
