package planet

import(
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
)

// WriteOverlay draws every located frame's target box and centroid
// onto one composite PNG, a different color per frame. Handy for
// eyeballing how far the mount drifted, and for spotting a frame
// where the threshold latched onto the wrong thing.
func (b *Batch)WriteOverlay(filename string) error {
	var base *Frame
	for i := range b.Frames {
		if b.Frames[i].Centroid != nil {
			base = &b.Frames[i]
			break
		}
	}
	if base == nil {
		return fmt.Errorf("no located frames to overlay")
	}

	bounds := base.LoadedImage.Bounds()
	dc := gg.NewContext(bounds.Dx(), bounds.Dy())
	dc.SetRGB(0, 0, 0)
	dc.Clear()

	n := 0
	for _, f := range b.Frames {
		if f.Centroid == nil {
			continue
		}

		col := overlayColor(n)
		n++
		dc.SetRGB(col.R, col.G, col.B)
		dc.SetLineWidth(1)

		box := f.Centroid.Bounds
		dc.DrawRectangle(float64(box.Min.X), float64(box.Min.Y), float64(box.Dx()), float64(box.Dy()))
		dc.Stroke()

		// Crosshair on the centroid
		dc.DrawLine(f.Centroid.X-6, f.Centroid.Y, f.Centroid.X+6, f.Centroid.Y)
		dc.DrawLine(f.Centroid.X, f.Centroid.Y-6, f.Centroid.X, f.Centroid.Y+6)
		dc.Stroke()

		dc.DrawString(f.Filename(), float64(box.Min.X), float64(box.Min.Y)-4)
	}

	return dc.SavePNG(filename)
}

// overlayColor hands out visually distinct colors by stepping the hue
// around the golden angle.
func overlayColor(i int) colorful.Color {
	hue := math.Mod(float64(i)*137.5, 360.0)
	return colorful.Hsv(hue, 0.85, 0.95)
}
