package planet

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("yaml overrides keep unrelated defaults", func(t *testing.T) {
		cfg, err := newConfigFromYaml([]byte("thresholdfrac: 0.5\ncropratio: 2\n"))
		require.NoError(t, err)

		assert.InDelta(t, 0.5, cfg.ThresholdFrac, 1e-9)
		assert.InDelta(t, 2.0, cfg.CropRatio, 1e-9)
		assert.Equal(t, []int{64, 32, 16, 8, 4, 2, 1}, cfg.StrideSequence)
		assert.Equal(t, 150, cfg.SearchRadius)
	})

	t.Run("AsYaml round-trips", func(t *testing.T) {
		orig := NewConfig()
		orig.ThresholdFrac = 0.07
		orig.ReferencePolicy = "first"

		cfg, err := newConfigFromYaml([]byte(orig.AsYaml()))
		require.NoError(t, err)
		assert.InDelta(t, 0.07, cfg.ThresholdFrac, 1e-9)
		assert.Equal(t, "first", cfg.ReferencePolicy)
	})

	t.Run("cutoff scales and clamps", func(t *testing.T) {
		cfg := NewConfig()

		cfg.ThresholdFrac = 0.5
		assert.Equal(t, uint16(0x7fff), cfg.CutoffGray())

		cfg.ThresholdFrac = 2.0
		assert.Equal(t, uint16(0xffff), cfg.CutoffGray())

		cfg.ThresholdFrac = -1.0
		assert.Equal(t, uint16(0), cfg.CutoffGray())
	})
}

func TestWriteOverlay(t *testing.T) {
	t.Run("writes a composite of located frames", func(t *testing.T) {
		b := locatedBatch(t, testConfig(),
			synthFrame(100, 100, image.Rect(20, 20, 30, 30)),
			synthFrame(100, 100, image.Rect(40, 20, 50, 30)))

		dest := filepath.Join(t.TempDir(), "composite.png")
		require.NoError(t, b.WriteOverlay(dest))
		assert.FileExists(t, dest)

		f, err := LoadFrame(dest)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 100, 100), f.LoadedImage.Bounds())
	})

	t.Run("nothing located is an error", func(t *testing.T) {
		b := NewBatch()
		b.Frames = append(b.Frames, Frame{LoadFilename: "x.png", LoadedImage: synthFrame(10, 10)})

		err := b.WriteOverlay(filepath.Join(t.TempDir(), "composite.png"))
		assert.Error(t, err)
	})
}
