package planet

import(
	"image/color"
	"log"

	"gopkg.in/yaml.v2"
)

// Config holds every knob for the alignment pipeline. The zero value
// is not useful; start from NewConfig() and override.
type Config struct {
	Verbosity         int

	// ThresholdFrac is the brightness cutoff for the target mask, as a
	// fraction of full intensity. Suggested values are [0.01, 0.10];
	// lower works better on dimmer frames.
	ThresholdFrac     float64

	// StrideSequence is the list of lattice spacings used to probe for
	// the first lit pixel. We try each in turn until one hits. Lower
	// values are slower but can find smaller targets.
	StrideSequence    []int

	// SearchRadius bounds the gather pass: once a lit pixel is found,
	// every lit pixel within this many pixels of it joins the mask.
	SearchRadius      int

	// CropRatio sizes the output canvas relative to the largest target
	// found in the run. E.g. frames whose biggest target is 100x100
	// are cropped to 350x350 at the default ratio.
	CropRatio         float64

	// OutputWidth/OutputHeight force a fixed canvas size. Both zero
	// means size from CropRatio.
	OutputWidth       int
	OutputHeight      int

	// ReferencePolicy says where the target lands on the output
	// canvas: "center", or "first" to pin it wherever it sat in the
	// first frame.
	ReferencePolicy   string

	Overlay           bool
	OverlayFilename   string

	// FillValue paints canvas regions the shifted source never covers.
	FillValue         color.RGBA `yaml:"-"`
}

func NewConfig() Config {
	return Config{
		ThresholdFrac:   0.02,
		StrideSequence:  []int{64, 32, 16, 8, 4, 2, 1},
		SearchRadius:    150,
		CropRatio:       3.5,
		ReferencePolicy: "center",
		OverlayFilename: "centroid-composite.png",
		FillValue:       color.RGBA{0, 0, 0, 0xff},
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	return c, err
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

// CutoffGray is the mask threshold on the [0, 0xFFFF] gray scale.
func (c Config)CutoffGray() uint16 {
	f := c.ThresholdFrac * 0xFFFF
	if f < 0 {
		f = 0
	} else if f > 0xFFFF {
		f = 0xFFFF
	}
	return uint16(f)
}
