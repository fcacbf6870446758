// Package bassfix retunes bass arrangements that sit too far below standard
// tuning for the game to handle: every string is raised one octave and the
// reference pitch is dropped to 220 Hz, so the sounding pitch is unchanged.
package bassfix

import (
	"log"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/QEStudios/CDLCArrangementBuilder/parser/songxml"
	"github.com/QEStudios/CDLCArrangementBuilder/tuning"
)

// Note is written into the version marker comment of fixed documents.
const Note = "Low Bass Tuning Fixed"

const octave = 12

// Fixer applies the low bass correction to arrangement files. It keeps no
// state between calls.
type Fixer struct {
	logger *log.Logger

	// Raised offsets must stay within [MinOffset, MaxOffset].
	MinOffset int
	MaxOffset int
}

// New creates a Fixer with the default offset bounds.
func New(logger *log.Logger) *Fixer {
	if logger == nil {
		logger = log.Default()
	}
	return &Fixer{logger: logger, MinOffset: -octave, MaxOffset: octave}
}

// Apply rewrites the arrangement at xmlPath one octave up with a -1200 cent
// offset. It reports whether the document now carries the fix; a document that
// already has a -1200 cent offset counts as fixed and is left untouched. On
// any failure the file is not modified.
func (f *Fixer) Apply(xmlPath string) bool {
	song, err := songxml.Load(xmlPath)
	if err != nil {
		f.logger.Printf("low bass fix skipped: %v", err)
		return false
	}
	if song.CentOffset != nil && *song.CentOffset == tuning.LowBassCents {
		f.logger.Printf("low bass fix already present in %v", xmlPath)
		return true
	}
	if song.Tuning == nil {
		f.logger.Printf("low bass fix skipped: %v has no tuning", xmlPath)
		return false
	}

	raised := song.Tuning.Transpose(octave)
	for i, v := range raised.Array() {
		if v < f.MinOffset || v > f.MaxOffset {
			f.logger.Printf("low bass fix skipped: string %d would be tuned to %+d", i, v)
			return false
		}
	}

	comments, err := songxml.ReadComments(xmlPath)
	if err != nil {
		f.logger.Printf("low bass fix skipped: %v", err)
		return false
	}
	cents := tuning.LowBassCents
	song.Tuning = &raised
	song.CentOffset = &cents
	if err := song.SaveWithComments(xmlPath, comments, true, Note); err != nil {
		f.logger.Printf("low bass fix failed: %v", err)
		return false
	}

	if info, err := os.Stat(xmlPath); err == nil {
		f.logger.Printf("Low bass fix applied to %v (%s), tuning now %v", xmlPath, humanize.Bytes(uint64(info.Size())), raised)
	}
	return true
}
