package ocr

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/rootuip/docintel/internal/core/domain"
)

type jobResult struct {
	text string
	err  error
}

type job struct {
	ctx  context.Context
	img  image.Image
	opts RecognizeOptions
	resp chan jobResult
}

// Pool is a fixed set of long-lived recognition workers consuming a bounded
// job queue. Submission blocks until a worker accepts the job or the per-job
// timeout expires; there is no unbounded queuing. A worker that panics
// surfaces the failure to its caller and is respawned.
type Pool struct {
	engine  Engine
	jobs    chan job
	timeout time.Duration
	logger  *slog.Logger

	mu       sync.RWMutex
	stopping bool
	wg       sync.WaitGroup
}

// NewPool starts workers goroutines over a queue of depth queueDepth.
func NewPool(engine Engine, workers, queueDepth int, timeout time.Duration, logger *slog.Logger) *Pool {
	if workers <= 0 {
		workers = 4
	}
	if queueDepth <= 0 {
		queueDepth = workers * 4
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pool{
		engine:  engine,
		jobs:    make(chan job, queueDepth),
		timeout: timeout,
		logger:  logger,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	return p
}

// Submit hands an image to the pool and blocks for the result. Timeouts and
// worker errors surface as ErrOCRFailure; they never fail the caller's
// document on their own.
func (p *Pool) Submit(ctx context.Context, img image.Image, opts RecognizeOptions) (string, error) {
	jctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	j := job{ctx: jctx, img: img, opts: opts, resp: make(chan jobResult, 1)}

	p.mu.RLock()
	if p.stopping {
		p.mu.RUnlock()
		return "", domain.WrapError(domain.ErrOCRFailure, "ocr submit", fmt.Errorf("pool is shut down"))
	}
	select {
	case p.jobs <- j:
		p.mu.RUnlock()
	case <-jctx.Done():
		p.mu.RUnlock()
		return "", domain.WrapError(domain.ErrOCRFailure, "ocr submit", jctx.Err())
	}

	select {
	case r := <-j.resp:
		if r.err != nil {
			return "", domain.WrapError(domain.ErrOCRFailure, "ocr recognize", r.err)
		}
		return r.text, nil
	case <-jctx.Done():
		return "", domain.WrapError(domain.ErrOCRFailure, "ocr wait", jctx.Err())
	}
}

// QueueDepth reports the number of jobs waiting for a worker.
func (p *Pool) QueueDepth() int { return len(p.jobs) }

// Shutdown stops intake, drains in-flight jobs, and terminates the workers.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.stopping {
		p.mu.Unlock()
		return
	}
	p.stopping = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for j := range p.jobs {
		text, err, panicked := p.recognize(j)
		j.resp <- jobResult{text: text, err: err}
		if panicked {
			p.logger.Error("ocr worker panicked, respawning", "worker", id, "error", err)
			p.respawn(id)
			return
		}
	}
}

func (p *Pool) recognize(j job) (text string, err error, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker panic: %v", r)
			panicked = true
		}
	}()
	if cerr := j.ctx.Err(); cerr != nil {
		return "", cerr, false
	}
	text, err = p.engine.Recognize(j.ctx, j.img, j.opts)
	return text, err, false
}

func (p *Pool) respawn(id int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopping {
		return
	}
	p.wg.Add(1)
	go p.worker(id)
}
