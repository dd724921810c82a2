package imageredux

import (
	"fmt"
	"os"
)

const KB = 1 << 10
const MB = 1 << 20
const GB = 1 << 30

func BytesSize(size int64) string {
	if size > GB {
		return fmt.Sprintf("%.2f GB", float64(size)/GB)
	}
	if size > MB {
		return fmt.Sprintf("%.2f MB", float64(size)/MB)
	}
	if size > KB {
		return fmt.Sprintf("%.2f KB", float64(size)/KB)
	}
	return fmt.Sprintf("%.2f B", float64(size))
}

// ReductionStats sums the on-disk sizes of converted images for the status
// line at the end of a batch.
type ReductionStats struct {
	Count      int
	SizeBefore int64
	SizeAfter  int64
}

func (stats *ReductionStats) accumulate(job *Job) {
	if !job.Processed {
		return
	}
	srcInfo, err := os.Stat(job.SourcePath)
	if err != nil {
		return
	}
	outInfo, err := os.Stat(ReducedPath(job.SourcePath, job.OutputFolder))
	if err != nil {
		return
	}
	stats.Count++
	stats.SizeBefore += srcInfo.Size()
	stats.SizeAfter += outInfo.Size()
}

func AccumulateStats(jobs []*Job) (stats ReductionStats) {
	for _, job := range jobs {
		stats.accumulate(job)
	}
	return
}

func (stats ReductionStats) String() string {
	if stats.Count == 0 || stats.SizeBefore == 0 {
		return "Reduced 0 files"
	}
	percentage := float64(stats.SizeAfter) / float64(stats.SizeBefore) * 100
	return fmt.Sprintf("Reduced %d files [%s] -> [%s] (%.2f%%)",
		stats.Count, BytesSize(stats.SizeBefore), BytesSize(stats.SizeAfter), percentage)
}
