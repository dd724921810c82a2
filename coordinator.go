package imageredux

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

var (
	// ErrNothingToDo means every image in the list is already converted.
	ErrNothingToDo = errors.New("no pending images to convert")
	// ErrBatchRunning rejects a second Convert while a batch is active.
	ErrBatchRunning = errors.New("a batch is already running")
)

// BatchHooks receive worker events on the coordinator's forwarding goroutine.
// The GUI wraps them with fyne.Do so all widget mutation stays on the UI
// thread; tests consume them directly.
type BatchHooks struct {
	OnItem func(job *Job, success bool)
	OnDone func(result BatchFinished)
}

// Coordinator is the UI-facing side of a batch: it guards against concurrent
// starts, launches the worker goroutine, and turns the worker's events into
// hook callbacks. Start and Cancel are meant to be called from the UI thread;
// the busy flag is atomic because the forwarding goroutine clears it.
type Coordinator struct {
	busy   atomic.Bool
	state  atomic.Int32
	cancel context.CancelFunc

	newWorker func(jobs []*Job, req Request) *Worker
}

func NewCoordinator() *Coordinator {
	return &Coordinator{newWorker: NewWorker}
}

// State reports Idle until the first batch, then Running or the terminal
// state of the most recent batch.
func (c *Coordinator) State() BatchState {
	return BatchState(c.state.Load())
}

// Start captures the job list and request and runs a batch in the background.
// It returns ErrNothingToDo when no job is pending and ErrBatchRunning when a
// batch is already active; otherwise it returns immediately and the hooks
// report progress.
func (c *Coordinator) Start(jobs []*Job, req Request, hooks BatchHooks) error {
	pending := 0
	for _, job := range jobs {
		if !job.Processed {
			pending++
		}
	}
	if pending == 0 {
		return ErrNothingToDo
	}

	if !c.busy.CompareAndSwap(false, true) {
		return ErrBatchRunning
	}
	c.state.Store(int32(Running))

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	log.Info().
		Int("pending", pending).
		Float64("size_factor", req.SizeFactor).
		Int("quality", req.Quality).
		Str("output_folder", req.OutputFolder).
		Msg("starting batch")

	worker := c.newWorker(jobs, req)
	go worker.Run(ctx)
	go c.forward(worker, hooks, cancel)

	return nil
}

// Cancel requests a cooperative stop: the worker finishes the image it is on
// and stops at the next item boundary. Safe to call when no batch is running.
func (c *Coordinator) Cancel() {
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *Coordinator) forward(worker *Worker, hooks BatchHooks, cancel context.CancelFunc) {
	defer cancel()

	for event := range worker.Events() {
		switch e := event.(type) {
		case ItemConverted:
			if hooks.OnItem != nil {
				hooks.OnItem(e.Job, e.Success)
			}
		case BatchFinished:
			if e.Cancelled {
				c.state.Store(int32(Cancelled))
			} else {
				c.state.Store(int32(Completed))
			}
			c.busy.Store(false)
			if hooks.OnDone != nil {
				hooks.OnDone(e)
			}
		}
	}
}
