package workerpool

import (
	"context"
	"runtime"
	"sync"
)

type Task func(ctx context.Context) error

type Result struct {
	ID  int
	Err error
}

type job struct {
	id   int
	task Task
}

type Pool struct {
	workers int
	tasks   chan job
	wg      sync.WaitGroup
	mu      sync.Mutex
	nextID  int
}

func New(workers, buffer int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan job, buffer),
	}
}

// Submit queues t and returns its id. It blocks while the buffer is full.
func (p *Pool) Submit(t Task) int {
	if p == nil || t == nil {
		return -1
	}
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.mu.Unlock()

	p.tasks <- job{id: id, task: t}
	return id
}

func (p *Pool) Close() {
	if p == nil {
		return
	}
	close(p.tasks)
}

func (p *Pool) Run(ctx context.Context) <-chan Result {
	if p == nil {
		out := make(chan Result)
		close(out)
		return out
	}

	out := make(chan Result, cap(p.tasks)+p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-p.tasks:
					if !ok {
						return
					}
					err := j.task(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{ID: j.id, Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}

// Each runs fn(ctx, i) for every i in [0, n) on the given number of workers and waits for all
// of them. The returned error is the one from the lowest failing index, or ctx.Err() if the
// context ended before every task reported.
func Each(ctx context.Context, workers, n int, fn func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}

	p := New(workers, n)
	results := p.Run(ctx)
	for i := 0; i < n; i++ {
		p.Submit(func(ctx context.Context) error { return fn(ctx, i) })
	}
	p.Close()

	errs := make([]error, n)
	done := 0
	for r := range results {
		errs[r.ID] = r.Err
		done++
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	if done < n {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}
