// Package arrangement builds arrangement records from manifest attributes and
// the arrangement files they describe. Building repairs the files in place:
// tone names and ids are reconciled with the manifest and, on request, low bass
// tunings are moved into the game's range.
package arrangement

import (
	"fmt"
	"log"

	"github.com/QEStudios/CDLCArrangementBuilder/parser/songxml"
	"github.com/QEStudios/CDLCArrangementBuilder/tuning"
)

// Options enables the optional repairs of a build.
type Options struct {
	// FixMultiTone turns a multitone arrangement without tone changes into a
	// single tone arrangement instead of failing.
	FixMultiTone bool

	// FixLowBass retunes bass arrangements below the game's range.
	FixLowBass bool
}

// Builder builds arrangements. A Builder holds no per-build state and can be
// used from several goroutines at once.
type Builder struct {
	detector TuningDetector
	fixer    LowBassFixer
	logger   *log.Logger

	// GameVersion selects the tuning table used for detection.
	GameVersion tuning.GameVersion
}

// NewBuilder creates a Builder. fixer may be nil, in which case low bass
// corrections always fail.
func NewBuilder(detector TuningDetector, fixer LowBassFixer, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{
		detector:    detector,
		fixer:       fixer,
		logger:      logger,
		GameVersion: tuning.RS2014,
	}
}

// build holds the state of a single Build call.
type build struct {
	*Builder
	attr *Attributes
	path string
	opts Options
	arr  *Arrangement

	warnings []Warning
}

// addWarning records a repair made to the arrangement.
func (b *build) addWarning(format string, args ...any) {
	b.warnings = append(b.warnings, Warning{
		Path:    b.path,
		Message: fmt.Sprintf(format, args...),
	})
}

// Build creates the arrangement described by attr. For guitar and bass
// arrangements the file at xmlPath is loaded, repaired and written back with
// its comments; vocals and show lights never touch the file.
//
// Errors are *BuildError values wrapping one of the Err* sentinels.
func (b *Builder) Build(attr *Attributes, xmlPath string, opts Options) (*Arrangement, error) {
	arr, err := mapAttributes(attr)
	if err != nil {
		if be, ok := err.(*BuildError); ok {
			be.Path = xmlPath
		}
		return nil, err
	}
	arr.XMLPath = xmlPath
	if !arr.Kind.Playable() {
		return arr, nil
	}

	bld := &build{Builder: b, attr: attr, path: xmlPath, opts: opts, arr: arr}
	if err := bld.run(); err != nil {
		return nil, err
	}
	for _, w := range bld.warnings {
		b.logger.Printf("warning: %v", w)
	}
	arr.Warnings = bld.warnings
	return arr, nil
}

func (b *build) run() error {
	arr := b.arr

	// Comments are lost by a typed save, so read them first.
	comments, err := songxml.ReadComments(b.path)
	if err != nil {
		return ioError(b.path, err)
	}
	doc, err := songxml.Load(b.path)
	if err != nil {
		return ioError(b.path, err)
	}
	b.logger.Printf("Building %v arrangement of %q from %v", arr.Name, doc.Title(), b.path)
	if name := doc.Arrangement(); name != "" && KindOf(ArrangementName(name)) != arr.Kind {
		b.addWarning("file holds a %s arrangement but the manifest describes %v", name, arr.Kind)
	}

	tones, err := b.reconcileTones(doc)
	if err != nil {
		return err
	}
	arr.Tones = tones
	if err := doc.SaveWithComments(b.path, comments, false, ""); err != nil {
		return ioError(b.path, err)
	}

	centOffset := b.attr.CentOffset
	if b.needsLowBassFix(doc) {
		doc, centOffset, err = b.fixLowBass(doc)
		if err != nil {
			return err
		}
	}

	name, offsets := resolveTuning(doc, b.detector, b.GameVersion, arr.Kind == Guitar)
	arr.TuningName = name
	arr.TuningStrings = &offsets
	arr.CapoFret = b.attr.CapoFret
	if centOffset != nil {
		arr.CentOffset = *centOffset
		arr.TuningPitch = tuning.CentsToFrequency(*centOffset)
	}
	return nil
}
