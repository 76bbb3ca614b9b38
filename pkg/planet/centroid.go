package planet

import(
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/skypies/util/histogram"
	"gonum.org/v1/gonum/stat"
)

// A Centroid is where we think the target is in one frame: the mean
// position of every lit pixel, plus a box around the lit region. The
// mean is sub-pixel; rounding to whole pixels happens once, when the
// aligner computes a crop origin.
type Centroid struct {
	X, Y   float64
	Bounds image.Rectangle
}

func (c Centroid)SizeX() int { return c.Bounds.Dx() }
func (c Centroid)SizeY() int { return c.Bounds.Dy() }

func (c Centroid)String() string {
	return fmt.Sprintf("centroid(%.1f,%.1f) %dx%dpx", c.X, c.Y, c.SizeX(), c.SizeY())
}

// Locate runs the locator over the frame and stores the result.
func (f *Frame)Locate(cfg Config) error {
	cent, err := FindCentroid(cfg, f.LoadedImage)
	if err != nil {
		return err
	}
	f.Centroid = &cent
	return nil
}

// FindCentroid locates the single bright target in an image. It
// probes a coarse lattice for any lit pixel, then gathers every lit
// pixel within a radius of that hit and averages their positions.
// Deterministic, and the same cutoff is applied to every frame in a
// run, so centroids are comparable across frames.
func FindCentroid(cfg Config, img image.Image) (Centroid, error) {
	cutoff := cfg.CutoffGray()

	seed, ok := probeForLitPixel(img, cfg.StrideSequence, cutoff)
	if !ok {
		return Centroid{}, fmt.Errorf("probe strides %v found nothing: %w", cfg.StrideSequence, ErrTargetNotFound)
	}

	xs, ys, bounds := gatherLitPixels(img, seed, cfg.SearchRadius, cutoff)
	if len(xs) == 0 {
		return Centroid{}, fmt.Errorf("nothing lit around (%d,%d): %w", seed.X, seed.Y, ErrTargetNotFound)
	}

	if cfg.Verbosity > 0 {
		logLuminance(img, bounds)
	}

	return Centroid{
		X:      stat.Mean(xs, nil),
		Y:      stat.Mean(ys, nil),
		Bounds: bounds,
	}, nil
}

// probeForLitPixel samples the image along a lattice, trying each
// stride in turn until some pixel clears the cutoff. A stride of 32
// means one sample per 32x32 block; small targets need the later,
// finer strides.
func probeForLitPixel(img image.Image, strides []int, cutoff uint16) (image.Point, bool) {
	b := img.Bounds()
	for _, stride := range strides {
		if stride < 1 {
			continue
		}
		for x := b.Min.X; x < b.Max.X; x += stride {
			for y := b.Min.Y; y < b.Max.Y; y += stride {
				if ColToGrayU16(img.At(x, y)) >= cutoff {
					return image.Point{x, y}, true
				}
			}
		}
	}
	return image.Point{}, false
}

// gatherLitPixels collects every lit pixel within `radius` of the
// seed, clamped to the image. Returns the coordinate lists and their
// bounding box.
func gatherLitPixels(img image.Image, seed image.Point, radius int, cutoff uint16) ([]float64, []float64, image.Rectangle) {
	b := img.Bounds()
	window := image.Rect(seed.X-radius, seed.Y-radius, seed.X+radius, seed.Y+radius).Intersect(b)

	xs, ys := []float64{}, []float64{}
	bounds := image.Rectangle{}
	for x := window.Min.X; x < window.Max.X; x++ {
		for y := window.Min.Y; y < window.Max.Y; y++ {
			if ColToGrayU16(img.At(x, y)) < cutoff {
				continue
			}
			xs = append(xs, float64(x))
			ys = append(ys, float64(y))
			if len(xs) == 1 {
				bounds = image.Rectangle{Min: image.Point{x, y}, Max: image.Point{x, y}}
			} else {
				bounds = GrowRectangle(bounds, image.Point{x, y})
			}
		}
	}

	return xs, ys, bounds
}

// logLuminance dumps a histogram of the gray values inside the lit
// region's box, to help pick a threshold for awkward sets.
func logLuminance(img image.Image, bounds image.Rectangle) {
	h := histogram.Histogram{NumBuckets: 256, ValMin: 0, ValMax: 256}
	for x := bounds.Min.X; x <= bounds.Max.X; x++ {
		for y := bounds.Min.Y; y <= bounds.Max.Y; y++ {
			h.Add(histogram.ScalarVal(int(ColToGrayU16(img.At(x, y)) >> 8)))
		}
	}
	log.Printf("target luminance over %v: %s\n", bounds, h)
}

// ColToGrayU16 maps a color into a gray value in the range [0, 0xFFFF].
// Plain Rec.601 luma; good enough for thresholding a bright planet
// against sky.
func ColToGrayU16(c color.Color) uint16 {
	r, g, b, _ := c.RGBA() // channel values in range [0, 0xFFFF]
	gray := float64(r)*0.2989 + float64(g)*0.5870 + float64(b)*0.1140
	if gray > 0xFFFF {
		gray = 0xFFFF
	}

	return uint16(gray)
}
