package planet

import(
	"fmt"
	"image"
	"math"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// OutputSize picks the canvas size shared by every output frame:
// either the configured fixed size, or CropRatio times the biggest
// target extent seen across the located frames.
func (b *Batch)OutputSize() image.Point {
	if b.Config.OutputWidth > 0 && b.Config.OutputHeight > 0 {
		return image.Point{b.Config.OutputWidth, b.Config.OutputHeight}
	}

	maxX, maxY := 0, 0
	for _, f := range b.Frames {
		if f.Centroid == nil {
			continue
		}
		if f.Centroid.SizeX() > maxX {
			maxX = f.Centroid.SizeX()
		}
		if f.Centroid.SizeY() > maxY {
			maxY = f.Centroid.SizeY()
		}
	}

	return image.Point{
		X: int(math.Round(float64(maxX) * b.Config.CropRatio)),
		Y: int(math.Round(float64(maxY) * b.Config.CropRatio)),
	}
}

// ReferencePoint is where, in canvas coordinates, the target lands in
// every output frame. "center" puts it mid-canvas; "first" keeps the
// first located frame's framing (clamped onto the canvas, so weird
// first frames can't push the target off it).
func (b *Batch)ReferencePoint(size image.Point) image.Point {
	center := RectCenter(image.Rectangle{Max: size})

	switch b.Config.ReferencePolicy {
	case "", "center":
		return center

	case "first":
		for _, f := range b.Frames {
			if f.Centroid == nil {
				continue
			}
			ref := roundPt(f.Centroid.X, f.Centroid.Y)
			return clampPt(ref, image.Rectangle{Max: size})
		}
		return center

	default:
		return center
	}
}

// Recenter produces the aligned output canvas for one frame: the
// source translated so its centroid sits at `ref`, cropped to `size`.
// Canvas regions the source never covers get Config.FillValue.
func (b *Batch)Recenter(f Frame, ref image.Point, size image.Point) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(dst, dst.Bounds(), &image.Uniform{b.Config.FillValue}, image.Point{}, draw.Src)

	// The source pixel that maps to canvas (0,0). Centroids are
	// sub-pixel; round once here, the same way for every frame.
	cent := roundPt(f.Centroid.X, f.Centroid.Y)
	origin := cent.Sub(ref)

	window := image.Rectangle{Min: origin, Max: origin.Add(size)}
	valid := window.Intersect(f.LoadedImage.Bounds())
	if valid.Empty() {
		return dst
	}

	draw.Draw(dst, valid.Sub(origin), f.LoadedImage, valid.Min, draw.Src)
	return dst
}

// AlignedFilename maps an input name to its output name, e.g.
// "jupiter03.jpg" -> "jupiter03_aligned.jpg".
func AlignedFilename(filename string) string {
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s_aligned%s", strings.TrimSuffix(base, ext), ext)
}

// WriteAligned recenters one located frame and writes it under outDir.
func (b *Batch)WriteAligned(f Frame, ref image.Point, size image.Point, outDir string) error {
	out := b.Recenter(f, ref, size)
	dest := filepath.Join(outDir, AlignedFilename(f.LoadFilename))
	if err := WriteImage(out, dest); err != nil {
		return fmt.Errorf("%s: %v: %w", dest, err, ErrWrite)
	}
	return nil
}

func roundPt(x, y float64) image.Point {
	return image.Point{int(math.Round(x)), int(math.Round(y))}
}

func clampPt(p image.Point, r image.Rectangle) image.Point {
	if p.X < r.Min.X {
		p.X = r.Min.X
	} else if p.X >= r.Max.X {
		p.X = r.Max.X - 1
	}
	if p.Y < r.Min.Y {
		p.Y = r.Min.Y
	} else if p.Y >= r.Max.Y {
		p.Y = r.Max.Y - 1
	}
	return p
}
