package planet

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func locatedBatch(t *testing.T, cfg Config, imgs ...*image.RGBA) Batch {
	t.Helper()
	b := NewBatch()
	b.Config = cfg
	for i, img := range imgs {
		f := Frame{LoadFilename: fakeName(i), LoadedImage: img}
		require.NoError(t, f.Locate(cfg))
		b.Frames = append(b.Frames, f)
	}
	return b
}

func fakeName(i int) string {
	return string(rune('a'+i)) + ".png"
}

func TestOutputSize(t *testing.T) {
	t.Run("fixed size wins", func(t *testing.T) {
		cfg := testConfig()
		cfg.OutputWidth, cfg.OutputHeight = 640, 480
		b := locatedBatch(t, cfg, synthFrame(100, 100, image.Rect(20, 20, 30, 30)))

		assert.Equal(t, image.Point{640, 480}, b.OutputSize())
	})

	t.Run("auto size is cropratio times the biggest target", func(t *testing.T) {
		b := locatedBatch(t, testConfig(),
			synthFrame(100, 100, image.Rect(20, 20, 30, 30)), // 9px extent
			synthFrame(100, 100, image.Rect(40, 40, 45, 45))) // 4px extent

		// 9 * 3.5 = 31.5, rounds to 32
		assert.Equal(t, image.Point{32, 32}, b.OutputSize())
	})
}

func TestReferencePoint(t *testing.T) {
	t.Run("center policy", func(t *testing.T) {
		b := locatedBatch(t, testConfig(), synthFrame(100, 100, image.Rect(20, 20, 30, 30)))

		assert.Equal(t, image.Point{50, 40}, b.ReferencePoint(image.Point{100, 80}))
	})

	t.Run("first policy pins the first frame's centroid", func(t *testing.T) {
		cfg := testConfig()
		cfg.ReferencePolicy = "first"
		b := locatedBatch(t, cfg, synthFrame(100, 100, image.Rect(20, 20, 30, 30)))

		// centroid (24.5, 24.5) rounds to (25, 25)
		assert.Equal(t, image.Point{25, 25}, b.ReferencePoint(image.Point{100, 100}))
	})

	t.Run("first policy clamps onto the canvas", func(t *testing.T) {
		cfg := testConfig()
		cfg.ReferencePolicy = "first"
		b := locatedBatch(t, cfg, synthFrame(200, 200, image.Rect(150, 150, 160, 160)))

		ref := b.ReferencePoint(image.Point{50, 50})
		assert.Equal(t, image.Point{49, 49}, ref)
	})

	t.Run("unknown policy falls back to center", func(t *testing.T) {
		cfg := testConfig()
		cfg.ReferencePolicy = "bogus"
		b := locatedBatch(t, cfg, synthFrame(100, 100, image.Rect(20, 20, 30, 30)))

		assert.Equal(t, image.Point{25, 25}, b.ReferencePoint(image.Point{50, 50}))
	})
}

func TestRecenter(t *testing.T) {
	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	black := color.RGBA{0, 0, 0, 0xff}

	t.Run("target lands on the reference point", func(t *testing.T) {
		b := locatedBatch(t, testConfig(), synthFrame(100, 100, image.Rect(60, 70, 70, 80)))
		f := b.Frames[0]

		size := image.Point{50, 50}
		out := b.Recenter(f, image.Point{25, 25}, size)

		require.Equal(t, image.Rectangle{Max: size}, out.Bounds())
		// Centroid (64.5, 74.5) rounds to (65, 75); the blob's top-left
		// (60, 70) maps to canvas (20, 20).
		assert.Equal(t, white, out.RGBAAt(25, 25))
		assert.Equal(t, white, out.RGBAAt(20, 20))
		assert.Equal(t, white, out.RGBAAt(29, 29))
		assert.Equal(t, black, out.RGBAAt(30, 30))
		assert.Equal(t, black, out.RGBAAt(10, 10))
	})

	t.Run("shift past the frame edge fills with the fill value", func(t *testing.T) {
		// Blob in the top-left corner: recentering pulls in area that
		// doesn't exist in the source.
		b := locatedBatch(t, testConfig(), synthFrame(100, 100, image.Rect(0, 0, 10, 10)))
		f := b.Frames[0]

		out := b.Recenter(f, image.Point{25, 25}, image.Point{50, 50})

		// Canvas (0..19, 0..19) was never covered by source pixels
		assert.Equal(t, black, out.RGBAAt(0, 0))
		assert.Equal(t, black, out.RGBAAt(19, 5))
		// The blob itself sits centered
		assert.Equal(t, white, out.RGBAAt(25, 25))
		assert.Equal(t, white, out.RGBAAt(21, 21))
	})

	t.Run("fill value is configurable", func(t *testing.T) {
		cfg := testConfig()
		cfg.FillValue = color.RGBA{0xff, 0, 0, 0xff}
		b := locatedBatch(t, cfg, synthFrame(100, 100, image.Rect(0, 0, 10, 10)))

		out := b.Recenter(b.Frames[0], image.Point{25, 25}, image.Point{50, 50})
		assert.Equal(t, cfg.FillValue, out.RGBAAt(0, 0))
	})

	t.Run("offset between two shifted frames matches the shift", func(t *testing.T) {
		b := locatedBatch(t, testConfig(),
			synthFrame(200, 200, image.Rect(20, 20, 30, 30)),
			synthFrame(200, 200, image.Rect(52, 35, 62, 45)))

		size := image.Point{64, 64}
		ref := b.ReferencePoint(size)
		outA := b.Recenter(b.Frames[0], ref, size)
		outB := b.Recenter(b.Frames[1], ref, size)

		// Both recentered outputs put the blob in the same place
		assert.Equal(t, outA.Pix, outB.Pix)
	})
}

func TestAlignedFilename(t *testing.T) {
	assert.Equal(t, "jupiter03_aligned.jpg", AlignedFilename("/tmp/shoot/jupiter03.jpg"))
	assert.Equal(t, "frame_aligned.png", AlignedFilename("frame.png"))
	assert.Equal(t, "raw_aligned", AlignedFilename("raw"))
}
