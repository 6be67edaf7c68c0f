package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingJob struct {
	mu    sync.Mutex
	count int
	done  chan struct{}
}

func (j *countingJob) Process(_ context.Context) error {
	j.mu.Lock()
	j.count++
	j.mu.Unlock()
	j.done <- struct{}{}
	return nil
}

type failingJob struct {
	done chan struct{}
}

func (j *failingJob) Process(_ context.Context) error {
	defer close(j.done)
	return errors.New("boom")
}

func TestPoolProcessesJobs(t *testing.T) {
	pool := NewPool(2, 10)
	pool.Start()
	defer pool.Stop()

	job := &countingJob{done: make(chan struct{}, 2)}
	pool.Enqueue(job)
	pool.Enqueue(job)

	for i := 0; i < 2; i++ {
		select {
		case <-job.done:
		case <-time.After(time.Second):
			t.Fatal("job did not run in time")
		}
	}

	job.mu.Lock()
	defer job.mu.Unlock()
	assert.Equal(t, 2, job.count)
}

func TestPoolSurvivesJobError(t *testing.T) {
	pool := NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	failing := &failingJob{done: make(chan struct{})}
	pool.Enqueue(failing)

	select {
	case <-failing.done:
	case <-time.After(time.Second):
		t.Fatal("failing job did not run")
	}

	// The worker keeps running after an error.
	ok := &countingJob{done: make(chan struct{}, 1)}
	pool.Enqueue(ok)

	select {
	case <-ok.done:
	case <-time.After(time.Second):
		t.Fatal("worker stopped after job error")
	}
}

func TestTryEnqueueReportsFullQueue(t *testing.T) {
	pool := NewPool(1, 1)
	// Not started: nothing drains the queue.

	job := &countingJob{done: make(chan struct{}, 1)}
	assert.True(t, pool.TryEnqueue(job))
	assert.False(t, pool.TryEnqueue(job))
}
