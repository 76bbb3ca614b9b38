package main

import(
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/wrocket/align-planet/pkg/planet"
)

var(
	fThreshold    float64
	fCropRatio    float64
	fOutputWidth  int
	fOutputHeight int
	fReference    string
	fOverlay      bool
	fVerbosity    int

	exitCode int
)

var rootCmd = &cobra.Command{
	Use:   "align-planet <output-dir> <input>...",
	Short: "Recenter frames of a planet so a stacking tool can use them",
	Long: `align-planet finds the one bright object in each input photo and
rewrites every frame so the object sits at the same pixel position,
ready for RegiStax or any other stacker. Inputs may be image files,
directories of them, or a .yaml config file.`,
	Args:         cobra.MinimumNArgs(2),
	RunE:         runAlign,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().Float64VarP(&fThreshold, "threshold", "t", 0.02, "brightness cutoff as a fraction of full intensity; lower for dim frames")
	rootCmd.Flags().Float64Var(&fCropRatio, "cropratio", 3.5, "output canvas size as a multiple of the largest target found")
	rootCmd.Flags().IntVar(&fOutputWidth, "width", 0, "fixed output width in px (0 = size from cropratio)")
	rootCmd.Flags().IntVar(&fOutputHeight, "height", 0, "fixed output height in px (0 = size from cropratio)")
	rootCmd.Flags().StringVar(&fReference, "reference", "center", "where the target lands on the canvas: center, or first")
	rootCmd.Flags().BoolVar(&fOverlay, "overlay", false, "also write a composite PNG of every frame's detected target")
	rootCmd.Flags().IntVarP(&fVerbosity, "verbosity", "v", 0, "how verbose to get")

	log.SetOutput(os.Stderr)
}

func runAlign(cmd *cobra.Command, args []string) error {
	outDir, inputs := args[0], args[1:]

	b := planet.NewBatch()
	if err := b.LoadFilesAndDirs(inputs...); err != nil {
		return err
	}

	// Command line args beat anything from a config .yaml
	if cmd.Flags().Changed("threshold") || b.ThresholdFrac == 0 {
		b.ThresholdFrac = fThreshold
	}
	if cmd.Flags().Changed("cropratio") {
		b.CropRatio = fCropRatio
	}
	if cmd.Flags().Changed("width") {
		b.OutputWidth = fOutputWidth
	}
	if cmd.Flags().Changed("height") {
		b.OutputHeight = fOutputHeight
	}
	if cmd.Flags().Changed("reference") {
		b.ReferencePolicy = fReference
	}
	if fOverlay {
		b.Overlay = true
	}
	b.Verbosity = fVerbosity

	if b.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", b.Config.AsYaml())
	}

	summary, err := b.Align(outDir)
	if err != nil {
		return err
	}

	if !summary.AllAligned() {
		for _, skip := range summary.Skipped {
			fmt.Fprintf(os.Stderr, "WARNING: %s was discarded: %v\n", skip.Filename, skip.Err)
		}
		exitCode = 2
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}
