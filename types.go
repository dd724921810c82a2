package imageredux

import (
	"github.com/google/uuid"
)

// Job is one image in the list. The worker owns the Processed flag while a
// batch is running; the UI only learns about it through ItemConverted events.
type Job struct {
	ID           uuid.UUID
	SourcePath   string
	OutputFolder string

	Processed bool
	Err       error // last failure, kept for logging and the status line
}

func NewJob(sourcePath string) *Job {
	return &Job{
		ID:         uuid.New(),
		SourcePath: sourcePath,
	}
}

// Request holds the reduction parameters captured when a batch starts.
// Immutable for the duration of that batch.
type Request struct {
	SizeFactor   float64 // (0,1], multiplier on both dimensions
	Quality      int     // JPEG quality, 1..100
	OutputFolder string
}

type BatchState int

const (
	Idle BatchState = iota
	Running
	Completed
	Cancelled
)

func (s BatchState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	}
	return "!unhandled-state!"
}

// Event is what the worker emits on its events channel: one ItemConverted
// per attempted job, then exactly one BatchFinished before the channel closes.
type Event interface {
	batchEvent()
}

type ItemConverted struct {
	Job     *Job
	Success bool
}

type BatchFinished struct {
	Attempted int
	Converted int
	Cancelled bool
}

func (ItemConverted) batchEvent() {}
func (BatchFinished) batchEvent() {}
