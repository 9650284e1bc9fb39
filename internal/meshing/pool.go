package meshing

import (
	"context"
	"errors"
	"sync"

	"tileworld/internal/world"
)

// ErrNilWorld is returned for jobs and builds without a world.
var ErrNilWorld = errors.New("meshing: nil world")

// MeshJob represents a batch build request
type MeshJob struct {
	World *world.World
	Key   BatchKey
	// Result channel - will be sent the result when done
	ResultChan chan MeshResult
}

// MeshResult contains the result of a batch build
type MeshResult struct {
	Key   BatchKey
	Batch Batch
	Error error
}

// WorkerPool manages goroutines for batch generation
type WorkerPool struct {
	jobQueue chan MeshJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	once     sync.Once
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool(workers int, queueSize int) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	workers = max(workers, 1)

	pool := &WorkerPool{
		jobQueue: make(chan MeshJob, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}

	for i := range workers {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	return pool
}

// SubmitJobBlocking submits a job and blocks until it's queued or ctx ends
func (p *WorkerPool) SubmitJobBlocking(ctx context.Context, job MeshJob) error {
	select {
	case p.jobQueue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return context.Canceled
	}
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			result := MeshResult{Key: job.Key}
			if job.World == nil {
				result.Error = ErrNilWorld
			} else {
				result.Batch = BuildBatch(job.World, job.Key)
			}

			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

// BuildAll builds every batch of w in parallel and returns them in AllKeys
// order.
func (p *WorkerPool) BuildAll(ctx context.Context, w *world.World) ([]Batch, error) {
	if w == nil {
		return nil, ErrNilWorld
	}
	keys := AllKeys()
	results := make(chan MeshResult, len(keys))
	for _, key := range keys {
		if err := p.SubmitJobBlocking(ctx, MeshJob{World: w, Key: key, ResultChan: results}); err != nil {
			return nil, err
		}
	}

	byKey := make(map[BatchKey]Batch, len(keys))
	for range keys {
		select {
		case r := <-results:
			if r.Error != nil {
				return nil, r.Error
			}
			byKey[r.Key] = r.Batch
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	out := make([]Batch, len(keys))
	for i, key := range keys {
		out[i] = byKey[key]
	}
	return out, nil
}

// Shutdown stops the workers. Pending jobs are dropped.
func (p *WorkerPool) Shutdown() {
	p.once.Do(func() {
		p.cancel()
		p.wg.Wait()
	})
}

// GetQueueLength returns the current number of jobs in the queue
func (p *WorkerPool) GetQueueLength() int {
	return len(p.jobQueue)
}
