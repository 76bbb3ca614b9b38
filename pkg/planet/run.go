package planet

import(
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/codahale/hdrhistogram"
	"github.com/schollz/progressbar/v3"
)

// Batch holds the frames for one run of the pipeline, plus its
// config. One Batch per invocation; nothing persists between runs.
type Batch struct {
	Frames       []Frame
	LoadFailures []FrameFailure // Files that didn't decode; reported, never fatal
	Config
}

func NewBatch() Batch {
	return Batch{
		Frames: []Frame{},
		Config: NewConfig(),
	}
}

func (b Batch)String() string {
	str := fmt.Sprintf("Batch of %d [\n", len(b.Frames))
	for _, f := range b.Frames {
		str += fmt.Sprintf("  %s\n", f)
	}
	return str + "]\n"
}

// A FrameFailure records one frame dropped from the run, and why.
type FrameFailure struct {
	Filename string
	Err      error
}

// RunSummary says how a run went. Any skip in here was already
// logged; nothing is dropped silently.
type RunSummary struct {
	Aligned int
	Skipped []FrameFailure
}

func (s RunSummary)AllAligned() bool { return len(s.Skipped) == 0 }

// EnsureOutputDir creates dir if missing. A path that exists but
// isn't a directory is a setup error, not something to overwrite.
func EnsureOutputDir(dir string) error {
	if item, err := os.Stat(dir); err == nil {
		if !item.IsDir() {
			return fmt.Errorf("'%s' exists and is not a directory: %w", dir, ErrOutputDir)
		}
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("mkdir '%s': %v: %w", dir, err, ErrOutputDir)
	}
	log.Printf("Created output directory: %s\n", dir)
	return nil
}

// Align runs the whole pipeline: locate the target in every frame,
// pick the shared canvas size and reference point, then write one
// recentered output per located frame. Frames whose locate step fails
// are logged and dropped; the rest of the batch carries on. Write
// failures abort, since a half-usable output dir is worse than none.
func (b *Batch)Align(outDir string) (RunSummary, error) {
	if err := EnsureOutputDir(outDir); err != nil {
		return RunSummary{}, err
	}

	summary := RunSummary{Skipped: append([]FrameFailure{}, b.LoadFailures...)}
	locateMs := hdrhistogram.New(1, 10*60*1000, 3)

	bar := progressbar.NewOptions(len(b.Frames),
		progressbar.OptionSetDescription("locating"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)

	for i := range b.Frames {
		start := time.Now()
		err := b.Frames[i].Locate(b.Config)
		ms := time.Since(start).Milliseconds()
		if ms < 1 {
			ms = 1
		}
		locateMs.RecordValue(ms)
		bar.Add(1)

		if err != nil {
			log.Printf("skipped %s: %v\n", b.Frames[i].Filename(), err)
			summary.Skipped = append(summary.Skipped, FrameFailure{b.Frames[i].Filename(), err})
			continue
		}
		if b.Verbosity > 0 {
			log.Printf("%s: found %s (%dms)\n", b.Frames[i].Filename(), b.Frames[i].Centroid, ms)
		}
	}

	located := 0
	for _, f := range b.Frames {
		if f.Centroid != nil {
			located++
		}
	}
	if located == 0 {
		log.Printf("no frame contained a target above threshold %.3f\n", b.ThresholdFrac)
		return summary, nil
	}

	size := b.OutputSize()
	ref := b.ReferencePoint(size)
	log.Printf("Output frames will be %dx%d, target at (%d,%d)\n", size.X, size.Y, ref.X, ref.Y)

	for _, f := range b.Frames {
		if f.Centroid == nil {
			continue
		}
		if err := b.WriteAligned(f, ref, size, outDir); err != nil {
			return summary, err
		}
		summary.Aligned++
	}

	if b.Overlay {
		dest := filepath.Join(outDir, b.OverlayFilename)
		if err := b.WriteOverlay(dest); err != nil {
			log.Printf("overlay not written: %v\n", err)
		}
	}

	log.Printf("Aligned %d/%d frames (locate ms: p50=%d p99=%d max=%d)\n",
		summary.Aligned, len(b.Frames),
		locateMs.ValueAtQuantile(50), locateMs.ValueAtQuantile(99), locateMs.Max())

	return summary, nil
}
