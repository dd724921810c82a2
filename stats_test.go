package imageredux

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesSize(t *testing.T) {
	assert.Equal(t, "100.00 B", BytesSize(100))
	assert.Equal(t, "2.00 KB", BytesSize(2*KB))
	assert.Equal(t, "1.50 MB", BytesSize(3*MB/2))
	assert.Equal(t, "2.00 GB", BytesSize(2*GB))
}

func TestAccumulateStats(t *testing.T) {
	dir := t.TempDir()
	jobs := makeJobs(t, dir, 2)

	// convert only the first job
	w := NewWorker(jobs[:1], testRequest())
	go w.Run(t.Context())
	drain(t, w)

	stats := AccumulateStats(jobs)
	assert.Equal(t, 1, stats.Count)

	srcInfo, err := os.Stat(jobs[0].SourcePath)
	require.NoError(t, err)
	outInfo, err := os.Stat(filepath.Join(dir, "reduced", filepath.Base(jobs[0].SourcePath)))
	require.NoError(t, err)
	assert.Equal(t, srcInfo.Size(), stats.SizeBefore)
	assert.Equal(t, outInfo.Size(), stats.SizeAfter)

	assert.Contains(t, stats.String(), "Reduced 1 files")
}

func TestAccumulateStatsEmpty(t *testing.T) {
	stats := AccumulateStats(nil)
	assert.Equal(t, 0, stats.Count)
	assert.Equal(t, "Reduced 0 files", stats.String())
}
