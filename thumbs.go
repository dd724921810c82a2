package imageredux

import (
	"bytes"
	"image/jpeg"
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
)

// ThumbSize is the pixel box list thumbnails are fitted into.
const ThumbSize = 64

// ThumbnailCache builds small previews for the file list off the UI thread
// and caches them by source path.
type ThumbnailCache struct {
	mu       sync.RWMutex
	cache    map[string]fyne.Resource
	inflight map[string]bool
}

func NewThumbnailCache() *ThumbnailCache {
	return &ThumbnailCache{
		cache:    make(map[string]fyne.Resource),
		inflight: make(map[string]bool),
	}
}

// Get returns the cached thumbnail for path, or nil while one is being
// generated. onReady is called once with the finished resource; the caller is
// responsible for re-entering the UI thread before touching widgets.
func (tc *ThumbnailCache) Get(path string, onReady func(fyne.Resource)) fyne.Resource {
	tc.mu.RLock()
	res, ok := tc.cache[path]
	busy := tc.inflight[path]
	tc.mu.RUnlock()
	if ok {
		return res
	}
	if busy {
		return nil
	}

	tc.mu.Lock()
	tc.inflight[path] = true
	tc.mu.Unlock()

	go func() {
		res, err := buildThumbnail(path)

		tc.mu.Lock()
		delete(tc.inflight, path)
		if err == nil {
			tc.cache[path] = res
		}
		tc.mu.Unlock()

		if err != nil {
			log.Debug().Err(err).Str("source", path).Msg("thumbnail failed")
			return
		}
		if onReady != nil {
			onReady(res)
		}
	}()

	return nil
}

func buildThumbnail(path string) (fyne.Resource, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	thumb := imaging.Fit(img, ThumbSize, ThumbSize, imaging.Lanczos)

	var buf bytes.Buffer
	options := jpeg.Options{
		Quality: 85,
	}
	if err := jpeg.Encode(&buf, thumb, &options); err != nil {
		return nil, err
	}
	return fyne.NewStaticResource(filepath.Base(path), buf.Bytes()), nil
}
