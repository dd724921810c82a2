package imageredux

import "fmt"
import "image"
import "image/jpeg"
import "math"
import "os"
import "path/filepath"

import "github.com/disintegration/imageorient"
import "github.com/nfnt/resize"
import "github.com/rs/zerolog/log"

// register extra decoders for formats people actually drop on the window
import _ "image/gif"
import _ "image/png"
import _ "golang.org/x/image/bmp"
import _ "golang.org/x/image/tiff"
import _ "golang.org/x/image/webp"

// ReducedPath is where the reduced version of src goes: a folder named
// outputFolder next to the source file, same filename. The extension is kept
// as-is even though the content is always JPEG.
func ReducedPath(src, outputFolder string) string {
	return filepath.Join(filepath.Dir(src), outputFolder, filepath.Base(src))
}

// reducedSize scales both dimensions by factor, rounding to nearest and
// clamping to 1px so a tiny factor never produces an empty image.
func reducedSize(size image.Point, factor float64) (width, height int) {
	width = int(math.Round(float64(size.X) * factor))
	height = int(math.Round(float64(size.Y) * factor))
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

// Reduce converts the image at src into a resized JPEG under outputFolder,
// creating the folder if needed. It returns true iff the output file exists
// afterwards; every failure collapses into a false result and a log line.
func Reduce(src, outputFolder string, factor float64, quality int) bool {
	err := reduce(src, outputFolder, factor, quality)
	if err != nil {
		log.Error().Err(err).Str("source", src).Msg("reduce failed")
		return false
	}
	if _, err := os.Stat(ReducedPath(src, outputFolder)); err != nil {
		log.Error().Err(err).Str("source", src).Msg("could not confirm output file written")
		return false
	}
	return true
}

func reduce(src, outputFolder string, factor float64, quality int) error {
	if factor <= 0 || factor > 1 {
		return fmt.Errorf("size factor %v out of range (0,1]", factor)
	}
	if quality < 1 || quality > 100 {
		return fmt.Errorf("quality %d out of range [1,100]", quality)
	}

	file, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("could not open file %s: %w", src, err)
	}
	defer file.Close()

	img, _, err := imageorient.Decode(file)
	if err != nil {
		return fmt.Errorf("could not decode file %s: %w", src, err)
	}

	width, height := reducedSize(img.Bounds().Size(), factor)
	reduced := resize.Resize(uint(width), uint(height), img, resize.Lanczos3)

	outPath := ReducedPath(src, outputFolder)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("could not create output directory for %s: %w", outPath, err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("could not create output file %s: %w", outPath, err)
	}
	defer out.Close()

	options := jpeg.Options{
		Quality: quality,
	}
	if err := jpeg.Encode(out, reduced, &options); err != nil {
		return fmt.Errorf("could not encode %s: %w", outPath, err)
	}
	return nil
}
