package arrangement

import (
	"github.com/QEStudios/CDLCArrangementBuilder/parser/songxml"
	"github.com/QEStudios/CDLCArrangementBuilder/tuning"
)

// TuningDetector names a set of string offsets. It must be safe for
// concurrent use; *tuning.Catalog is.
type TuningDetector interface {
	Detect(s tuning.Strings, version tuning.GameVersion, isGuitar bool) tuning.Definition
}

// LowBassFixer retunes an arrangement file one octave up. Apply reports
// whether the file now carries the fix and must leave it untouched otherwise.
type LowBassFixer interface {
	Apply(xmlPath string) bool
}

// Format version of arrangement files made for the 2014 game.
const lowBassFormatVersion = "7"

// Bass tunings with a lowest string further down than this are out of the
// game's range.
const lowBassThreshold = -4

// resolveTuning names the tuning of doc. Documents without a tuning are
// treated as standard tuning.
func resolveTuning(doc *songxml.Song, detector TuningDetector, version tuning.GameVersion, isGuitar bool) (string, tuning.Strings) {
	s := tuning.Standard
	if doc.Tuning != nil {
		s = *doc.Tuning
	}
	def := detector.Detect(s, version, isGuitar)
	return def.UIName, def.Strings
}

// needsLowBassFix reports whether the low bass correction applies. The lowest
// string is read from the manifest, or from the document when the manifest has
// no tuning. A document that was already raised an octave is measured at its
// sounding pitch.
func (b *build) needsLowBassFix(doc *songxml.Song) bool {
	if !b.opts.FixLowBass || b.arr.Kind != Bass || doc.Version != lowBassFormatVersion {
		return false
	}
	if b.attr.CentOffset != nil && *b.attr.CentOffset == tuning.LowBassCents {
		return false
	}

	var lowest int
	switch {
	case b.attr.Tuning != nil:
		lowest = b.attr.Tuning.String0
	case doc.Tuning != nil:
		lowest = doc.Tuning.String0
		if doc.CentOffset != nil && *doc.CentOffset == tuning.LowBassCents {
			lowest -= 12
		}
	default:
		return false
	}
	return lowest < lowBassThreshold
}

// fixLowBass runs the low bass correction. On success the cent offset is
// pinned to -1200 and the document is reloaded so its new tuning is used.
// A failed correction only leaves a warning.
func (b *build) fixLowBass(doc *songxml.Song) (*songxml.Song, *float64, error) {
	if b.fixer == nil || !b.fixer.Apply(b.path) {
		b.addWarning("low bass tuning could not be fixed")
		return doc, b.attr.CentOffset, nil
	}
	fixed, err := songxml.Load(b.path)
	if err != nil {
		return nil, nil, ioError(b.path, err)
	}
	cents := tuning.LowBassCents
	b.addWarning("low bass tuning fixed, reference pitch set to %v Hz", tuning.CentsToFrequency(cents))
	return fixed, &cents, nil
}
