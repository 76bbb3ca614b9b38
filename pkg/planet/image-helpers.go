package planet

// A few helper routines for golang's image libraries

import(
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"
)

func RectCenter(b image.Rectangle) image.Point {
	return image.Point{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2}
}

func GrowRectangle(r image.Rectangle, p image.Point) image.Rectangle {
	if p.X < r.Min.X {
		r.Min.X = p.X
	} else if p.X > r.Max.X {
		r.Max.X = p.X
	}

	if p.Y < r.Min.Y {
		r.Min.Y = p.Y
	} else if p.Y > r.Max.Y {
		r.Max.Y = p.Y
	}

	return r
}

// WriteImage encodes by filename extension; anything unrecognized
// gets PNG.
func WriteImage(img image.Image, filename string) error {
	writer, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	}
	defer writer.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(writer, img, &jpeg.Options{Quality: 95})
	case ".tif", ".tiff":
		return tiff.Encode(writer, img, nil)
	default:
		return png.Encode(writer, img)
	}
}
