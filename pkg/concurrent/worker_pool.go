package concurrent

import "sync"

// WorkerPool fixed number of workers draining a buffered job channel. results arrive in
// completion order, not submission order.
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan Job[T]
	results    chan G
	wg         sync.WaitGroup
	nextID     int
}

func NewWorkerPool[T any, G any](numWorkers, numJobs int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan Job[T], numJobs),
		results:    make(chan G, numJobs),
	}
}

// AddJob queue a job. the pool is sized by numJobs, adding more before Start blocks.
func (wp *WorkerPool[T, G]) AddJob(jobItem T) {
	wp.jobQueue <- Job[T]{ID: wp.nextID, JobItem: jobItem}
	wp.nextID++
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

func (wp *WorkerPool[T, G]) Start(jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(jobFunc)
	}
}

func (wp *WorkerPool[T, G]) worker(jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- jobFunc(job.JobItem)
	}
}

// Wait blocks until every worker is done, then closes the result channel.
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) CollectResults() <-chan G {
	return wp.results
}

type indexedItem[T any] struct {
	index int
	item  T
}

// RunOrdered runs jobFunc over items on numWorkers goroutines and returns the results in
// the order of items.
func RunOrdered[T any, G any](numWorkers int, items []T, jobFunc JobFunc[T, G]) []G {
	wp := NewWorkerPool[indexedItem[T], IndexedResult[G]](numWorkers, len(items))
	for i, item := range items {
		wp.AddJob(indexedItem[T]{index: i, item: item})
	}
	wp.Close()
	wp.Start(func(job indexedItem[T]) IndexedResult[G] {
		return IndexedResult[G]{Index: job.index, Result: jobFunc(job.item)}
	})
	wp.Wait()

	out := make([]G, len(items))
	for res := range wp.CollectResults() {
		out[res.Index] = res.Result
	}
	return out
}
