package planet

import "errors"

var (
	// ErrUnreadableImage is returned when a path does not decode as a supported raster image.
	ErrUnreadableImage = errors.New("unreadable image")

	// ErrTargetNotFound is returned when no pixel clears the brightness threshold.
	ErrTargetNotFound = errors.New("no target above threshold")

	// ErrWrite is returned when an aligned output file cannot be created or encoded.
	ErrWrite = errors.New("cannot write output frame")

	// ErrOutputDir is returned when the output directory cannot be used.
	ErrOutputDir = errors.New("unusable output directory")
)
