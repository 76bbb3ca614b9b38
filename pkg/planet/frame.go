package planet

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
)

// A Frame is one input photo: the decoded pixels, where it came from,
// and (once located) where the target sits in it.
type Frame struct {
	LoadFilename string
	LoadedImage  image.Image // Immutable once loaded
	CapturedAt   time.Time   // From EXIF DateTimeOriginal, if the file has one

	Centroid     *Centroid   // nil until Locate succeeds
}

func (f Frame)Filename() string {
	return filepath.Base(f.LoadFilename)
}

func (f Frame)String() string {
	str := fmt.Sprintf("%s: %v", f.Filename(), f.LoadedImage.Bounds().Size())
	if f.Centroid != nil {
		str += fmt.Sprintf(", %s", f.Centroid)
	}
	return str
}

// LoadFrame decodes a single image file. EXIF is best-effort; plenty
// of inputs (PNGs, stripped JPEGs) carry none.
func LoadFrame(filename string) (Frame, error) {
	f := Frame{LoadFilename: filename}

	if reader, err := os.Open(filename); err == nil {
		if ex, err := exif.Decode(reader); err == nil {
			if when, err := ex.DateTime(); err == nil {
				f.CapturedAt = when
			}
		}
		reader.Close()
	}

	reader, err := os.Open(filename)
	if err != nil {
		return f, fmt.Errorf("open+r img '%s': %v: %w", filename, err, ErrUnreadableImage)
	}
	defer reader.Close()

	img, _, err := image.Decode(reader)
	if err != nil {
		return f, fmt.Errorf("decoding '%s': %v: %w", filename, err, ErrUnreadableImage)
	}
	f.LoadedImage = img

	return f, nil
}
