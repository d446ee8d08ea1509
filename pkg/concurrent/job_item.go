package concurrent

type Job[T any] struct {
	ID      int
	JobItem T
}

type JobFunc[T any, G any] func(job T) G

// IndexedResult result of the job submitted at position Index.
type IndexedResult[G any] struct {
	Index  int
	Result G
}
