package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// Pool runs batches of jobs on a fixed number of workers
type Pool struct {
	workers    int
	ctx        context.Context
	cancelFunc context.CancelFunc
}

// NewPool creates a pool bound to parent. Cancelling parent or calling Shutdown stops pending jobs.
func NewPool(parent context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(parent)

	return &Pool{
		workers:    workers,
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

type indexedJob struct {
	index int
	job   Job
}

type indexedResult struct {
	index  int
	result Result
}

// Run executes jobs and returns their results in submission order.
// Jobs never started because the pool was cancelled have a nil result.
func (p *Pool) Run(jobs []Job) []Result {
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	queue := make(chan indexedJob)
	out := make(chan indexedResult, p.workers)

	var wg sync.WaitGroup
	for i := 0; i < p.workers && i < len(jobs); i++ {
		wg.Add(1)
		go p.worker(queue, out, &wg)
	}

	// Submit from a goroutine so collection never blocks behind a full queue
	go func() {
		defer close(queue)
		for i, job := range jobs {
			select {
			case <-p.ctx.Done():
				return
			case queue <- indexedJob{index: i, job: job}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	for r := range out {
		results[r.index] = r.result
	}

	return results
}

// worker is the worker goroutine that processes jobs
func (p *Pool) worker(queue <-chan indexedJob, out chan<- indexedResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for item := range queue {
		out <- indexedResult{index: item.index, result: item.job.Execute(p.ctx)}
	}
}

// Shutdown cancels any job that has not started yet
func (p *Pool) Shutdown() {
	p.cancelFunc()
}

// Errors returns the non-nil errors of results, skipping jobs that never ran
func Errors(results []Result) []error {
	var errs []error
	for _, r := range results {
		if r == nil {
			continue
		}
		if err := r.GetError(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
