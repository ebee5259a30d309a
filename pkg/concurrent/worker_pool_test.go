package concurrent

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPoolProcessesEveryJob(t *testing.T) {
	pool := NewWorkerPool[int, int](4, 100)

	for i := 0; i < 100; i++ {
		pool.AddJob(i)
	}
	pool.Close()

	pool.Start(func(job int) int {
		return job * 2
	})
	pool.Wait()

	results := make([]int, 0, 100)
	for r := range pool.CollectResults() {
		results = append(results, r)
	}

	sort.Ints(results)
	assert.Len(t, results, 100)
	for i, r := range results {
		assert.Equal(t, i*2, r)
	}
}

func TestWorkerPoolNoJobs(t *testing.T) {
	pool := NewWorkerPool[int, int](2, 1)
	pool.Close()
	pool.Start(func(job int) int { return job })
	pool.Wait()

	count := 0
	for range pool.CollectResults() {
		count++
	}
	assert.Equal(t, 0, count)
}
