package concurrent

import (
	"sync"
)

type TaskFunc[J any, R any] func(job J) R

/*
WorkerPool. bounded fan-out for independent per-item work, used to spread
auto-connect row scans over a few goroutines.

usage order matters: queue every job with AddJob, Close the queue, Start the
workers, Wait for them, then drain CollectResults. jobs carry no ordering
guarantee across workers, callers needing stable output sort the drained
results themselves.
*/
type WorkerPool[J any, R any] struct {
	numWorkers int
	jobs       chan J
	results    chan R
	wg         sync.WaitGroup
}

func NewWorkerPool[J any, R any](numWorkers, queueSize int) *WorkerPool[J, R] {
	return &WorkerPool[J, R]{
		numWorkers: numWorkers,
		jobs:       make(chan J, queueSize),
		results:    make(chan R, queueSize),
	}
}

func (wp *WorkerPool[J, R]) AddJob(job J) {
	wp.jobs <- job
}

// Close. no more jobs; workers exit once the queue drains.
func (wp *WorkerPool[J, R]) Close() {
	close(wp.jobs)
}

func (wp *WorkerPool[J, R]) Start(task TaskFunc[J, R]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.work(task)
	}
}

func (wp *WorkerPool[J, R]) work(task TaskFunc[J, R]) {
	defer wp.wg.Done()
	for job := range wp.jobs {
		wp.results <- task(job)
	}
}

func (wp *WorkerPool[J, R]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[J, R]) CollectResults() chan R {
	return wp.results
}
