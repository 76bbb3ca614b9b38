package planet

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoadFilesAndDirs pulls frames (and optionally a config file) into
// the batch. Directory arguments are recursed into.
func (b *Batch)LoadFilesAndDirs(args ...string) error {
	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return fmt.Errorf("load %s: %v", arg, err)

		case item.IsDir():
			// Is a dir, recurse into contents
			contents, err := os.ReadDir(arg)
			if err != nil {
				return fmt.Errorf("readdir %s: %v", arg, err)
			}
			for _, content := range contents {
				if err := b.LoadFilesAndDirs(filepath.Join(arg, content.Name())); err != nil {
					return fmt.Errorf("load %s: %w", arg, err)
				}
			}

		default: // is a file, load it
			if err := b.loadFile(arg); err != nil {
				return fmt.Errorf("loadfile %s: %w", arg, err)
			}
		}
	}

	b.sortFrames()

	return nil
}

func (b *Batch)loadFile(filename string) error {
	ext := filepath.Ext(filename)

	switch strings.ToLower(ext) {

	case ".jpg", ".jpeg", ".png", ".tif", ".tiff":
		f, err := LoadFrame(filename)
		if err != nil {
			// A bad frame shouldn't sink the batch; report it and move on
			log.Printf("skipped %s: %v\n", filepath.Base(filename), err)
			b.LoadFailures = append(b.LoadFailures, FrameFailure{filepath.Base(filename), err})
			return nil
		}
		b.Frames = append(b.Frames, f)

	case ".yaml":
		cfg, err := loadConfig(filename)
		if err != nil {
			return fmt.Errorf("Loading %s as config YAML failed: %v", filename, err)
		}
		b.Config = cfg
		log.Printf("Loaded base configuration from %s\n", filename)
	}

	return nil
}

func loadConfig(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %v", filename, err)
	}

	return newConfigFromYaml(contents)
}

// sortFrames orders the batch chronologically when every frame has an
// EXIF timestamp; otherwise load order stands.
func (b *Batch)sortFrames() {
	for _, f := range b.Frames {
		if f.CapturedAt.IsZero() {
			return
		}
	}
	sort.SliceStable(b.Frames, func(i, j int) bool {
		return b.Frames[i].CapturedAt.Before(b.Frames[j].CapturedAt)
	})
}
