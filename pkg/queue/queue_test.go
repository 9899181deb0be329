package queue_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shashiranjanraj/supplyco/pkg/queue"
)

var (
	processed atomic.Int64
	failures  atomic.Int64
)

type countJob struct {
	N int `json:"n"`
}

func (j *countJob) Handle() error {
	processed.Add(int64(j.N))
	return nil
}

type brokenJob struct{}

func (j *brokenJob) Handle() error {
	failures.Add(1)
	return errors.New("cannot deliver")
}

func init() {
	queue.Register("*queue_test.countJob", func() queue.Job { return &countJob{} })
	queue.Register("*queue_test.brokenJob", func() queue.Job { return &brokenJob{} })

	ctx := context.Background()
	queue.StartWorkers(ctx, 2)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestDispatchRoundTrip(t *testing.T) {
	before := processed.Load()

	if err := queue.Dispatch(&countJob{N: 5}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	waitFor(t, 3*time.Second, func() bool {
		return processed.Load() == before+5
	})
}

func TestDispatchAfterDelays(t *testing.T) {
	before := processed.Load()

	queue.DispatchAfter(&countJob{N: 1}, 50*time.Millisecond)
	if processed.Load() != before {
		t.Error("delayed job ran immediately")
	}

	waitFor(t, 3*time.Second, func() bool {
		return processed.Load() == before+1
	})
}

func TestExhaustedRetriesAreRecorded(t *testing.T) {
	queue.SetMaxRetry(1)
	defer queue.SetMaxRetry(3)

	beforeFailed := len(queue.FailedJobs())
	beforeAttempts := failures.Load()

	if err := queue.Dispatch(&brokenJob{}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	waitFor(t, 5*time.Second, func() bool {
		return len(queue.FailedJobs()) > beforeFailed
	})

	if got := failures.Load() - beforeAttempts; got != 1 {
		t.Errorf("job ran %d times, want 1 with maxRetry=1", got)
	}

	last := queue.FailedJobs()[len(queue.FailedJobs())-1]
	if last.Err == nil || last.Attempts != 1 {
		t.Errorf("failed record = %+v, want 1 attempt with an error", last)
	}
}
