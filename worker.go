package imageredux

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
)

// Worker runs one batch: it owns the captured job list for the duration of
// the run and reports back only through its events channel. The channel is
// unbuffered on purpose: delivery of each ItemConverted is the item boundary
// at which cancellation is checked, so a consumer that cancels after
// receiving the k-th event is guaranteed no further conversions happen.
type Worker struct {
	jobs   []*Job
	req    Request
	events chan Event

	convert func(job *Job, req Request) bool
}

func NewWorker(jobs []*Job, req Request) *Worker {
	return &Worker{
		jobs:    jobs,
		req:     req,
		events:  make(chan Event),
		convert: convertJob,
	}
}

func (w *Worker) Events() <-chan Event {
	return w.events
}

// Run iterates the captured jobs in order, skipping already processed ones,
// and emits one ItemConverted per attempt followed by a single BatchFinished.
// Cancellation is cooperative: ctx is checked between items, never during a
// conversion. Run closes the events channel when it returns.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.events)

	attempted := 0
	converted := 0

	for _, job := range w.jobs {
		if ctx.Err() != nil {
			log.Info().Int("converted", converted).Msg("batch cancelled")
			w.events <- BatchFinished{Attempted: attempted, Converted: converted, Cancelled: true}
			return
		}
		if job.Processed {
			continue
		}

		job.OutputFolder = w.req.OutputFolder
		ok := w.convert(job, w.req)
		if ok {
			job.Processed = true
			converted++
		}
		attempted++

		w.events <- ItemConverted{Job: job, Success: ok}
	}

	log.Info().Int("attempted", attempted).Int("converted", converted).Msg("batch finished")
	w.events <- BatchFinished{Attempted: attempted, Converted: converted, Cancelled: false}
}

// convertJob reduces a single image and records the outcome on the job.
// Failures stay on the job as Err; the batch only ever sees the boolean.
func convertJob(job *Job, req Request) bool {
	log.Info().Str("source", job.SourcePath).Msg("reducing")

	err := reduce(job.SourcePath, job.OutputFolder, req.SizeFactor, req.Quality)
	if err != nil {
		job.Err = err
		log.Error().Err(err).Str("source", job.SourcePath).Msg("reduce failed")
		return false
	}

	if _, err := os.Stat(ReducedPath(job.SourcePath, job.OutputFolder)); err != nil {
		job.Err = err
		log.Error().Err(err).Str("source", job.SourcePath).Msg("could not confirm output file written")
		return false
	}

	job.Err = nil
	return true
}
