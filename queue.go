package imageredux

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".bmp": true, ".tiff": true, ".webp": true,
}

// IsImagePath reports whether the filename has a recognized image extension.
func IsImagePath(filename string) bool {
	return imageExts[strings.ToLower(filepath.Ext(filename))]
}

// ListImages walks root and returns every image file under it, sorted.
func ListImages(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsImagePath(path) {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

// Queue is the ordered list of images the user dropped on the window. It is
// owned by the UI thread; the worker only ever sees the snapshot handed to
// Coordinator.Start.
type Queue struct {
	jobs []*Job
}

func NewQueue() *Queue {
	return &Queue{}
}

// Add appends a job for sourcePath unless the path is already listed.
// Returns the new job, or nil for a duplicate.
func (q *Queue) Add(sourcePath string) *Job {
	for _, job := range q.jobs {
		if job.SourcePath == sourcePath {
			return nil
		}
	}
	job := NewJob(sourcePath)
	q.jobs = append(q.jobs, job)
	return job
}

// Jobs returns the backing list in insertion order.
func (q *Queue) Jobs() []*Job {
	return q.jobs
}

func (q *Queue) Len() int {
	return len(q.jobs)
}

func (q *Queue) At(index int) *Job {
	return q.jobs[index]
}

// RemoveAt drops the job at index. Out-of-range indexes are ignored.
func (q *Queue) RemoveAt(index int) {
	if index < 0 || index >= len(q.jobs) {
		return
	}
	q.jobs = append(q.jobs[:index], q.jobs[index+1:]...)
}

func (q *Queue) Clear() {
	q.jobs = nil
}

// Pending returns the not-yet-processed jobs in list order.
func (q *Queue) Pending() []*Job {
	pending := make([]*Job, 0, len(q.jobs))
	for _, job := range q.jobs {
		if !job.Processed {
			pending = append(pending, job)
		}
	}
	return pending
}
