package arrangement

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/QEStudios/CDLCArrangementBuilder/tuning"
)

// Kind is the broad type of an arrangement.
type Kind int

const (
	Guitar Kind = iota
	Bass
	Vocal
	ShowLight
)

// String returns the kind name used in arrangement lists.
func (k Kind) String() string {
	switch k {
	case Guitar:
		return "Guitar"
	case Bass:
		return "Bass"
	case Vocal:
		return "Vocal"
	case ShowLight:
		return "ShowLight"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Playable reports whether the kind has tones and a tuning.
func (k Kind) Playable() bool {
	return k == Guitar || k == Bass
}

// ArrangementName is the name of an arrangement as written in the manifest.
// Names outside the constants below are kept as they are.
type ArrangementName string

const (
	NameVocals     ArrangementName = "Vocals"
	NameLead       ArrangementName = "Lead"
	NameRhythm     ArrangementName = "Rhythm"
	NameCombo      ArrangementName = "Combo"
	NameBass       ArrangementName = "Bass"
	NameShowLights ArrangementName = "ShowLights"
	NameJVocals    ArrangementName = "JVocals"
)

// KindOf maps an arrangement name to its kind. Every name that is not bass,
// vocals or show lights is treated as a guitar arrangement, including names
// this package does not know about.
func KindOf(name ArrangementName) Kind {
	switch name {
	case NameBass:
		return Bass
	case NameJVocals, NameVocals:
		return Vocal
	case NameShowLights:
		return ShowLight
	default:
		return Guitar
	}
}

// RouteMask selects the gameplay path of an arrangement.
type RouteMask int

const (
	RouteNone   RouteMask = 0 // Lessons, or display only in the song list.
	RouteLead   RouteMask = 1
	RouteRhythm RouteMask = 2
	RouteAny    RouteMask = 3
	RouteBass   RouteMask = 4
)

// PluckedType tells whether a bass arrangement is played with a pick.
type PluckedType int

const (
	NotPicked PluckedType = iota
	Picked
)

// Metronome selects whether the game adds a metronome track.
type Metronome int

const (
	MetronomeNone Metronome = iota
	MetronomeGenerate
)

// ToneSlots assigns tone names to the tone selector slots of an arrangement.
// Only Base is required for playable arrangements.
type ToneSlots struct {
	Base        string
	Multiplayer string
	A           string
	B           string
	C           string
	D           string
}

// A single playable or non-playable track of a song package.
type Arrangement struct {
	ID       uuid.UUID
	MasterID int

	Kind       Kind
	Name       ArrangementName
	Sort       int
	Properties ArrangementProperties

	TuningName    string
	TuningStrings *tuning.Strings // nil for vocals and show lights.
	CentOffset    float64
	TuningPitch   float64 // Reference pitch in Hz, zero when the manifest has no cent offset.
	CapoFret      float64

	ScrollSpeed int
	PluckedType PluckedType
	RouteMask   RouteMask
	BonusArr    bool
	Metronome   Metronome

	Tones ToneSlots

	// XMLPath is where the arrangement document lives. The document itself is
	// not kept once the build has finished.
	XMLPath string

	// Track caches the binary track data produced by the packaging stage. It
	// is never a source of truth and may be cleared at any time.
	Track Lazy[[]byte]

	// Warnings lists the repairs made while building.
	Warnings []Warning
}

// NewArrangement creates an arrangement of the given kind with a fresh
// identity. Vocals and show lights always use master id 1.
func NewArrangement(kind Kind) *Arrangement {
	masterID := 1
	if kind.Playable() {
		masterID = int(rand.Int31())
	}
	return &Arrangement{
		ID:       uuid.New(),
		MasterID: masterID,
		Kind:     kind,
	}
}

// ClearCache drops the cached track data. Calling it on an empty cache is a
// no-op.
func (a *Arrangement) ClearCache() {
	a.Track.Clear()
}

// toneDescription lists the tone names, skipping tone A when it only repeats
// the base tone.
func (a *Arrangement) toneDescription() string {
	var names []string
	if a.Tones.Base != "" {
		names = append(names, a.Tones.Base)
	}
	if a.Tones.A != "" && a.Tones.A != a.Tones.Base {
		names = append(names, a.Tones.A)
	}
	for _, t := range []string{a.Tones.B, a.Tones.C, a.Tones.D} {
		if t != "" {
			names = append(names, t)
		}
	}
	return strings.Join(names, ", ")
}

// String describes the arrangement in one line, the way arrangement lists
// show it.
func (a *Arrangement) String() string {
	var capo, pitch, metronome string
	if a.CapoFret > 0 {
		capo = fmt.Sprintf(", Capo Fret %v", a.CapoFret)
	}
	if a.TuningPitch > 0 && a.TuningPitch != tuning.StandardPitch {
		pitch = fmt.Sprintf(": A%v", a.TuningPitch)
	}
	if a.Metronome == MetronomeGenerate {
		metronome = " +Metronome"
	}

	switch a.Kind {
	case Bass:
		return fmt.Sprintf("%v [%s%s%s] (%s)%s", a.Kind, a.TuningName, pitch, capo, a.toneDescription(), metronome)
	case Vocal, ShowLight:
		return string(a.Name)
	default:
		return fmt.Sprintf("%v - %s [%s%s%s] (%s)%s", a.Kind, a.Name, a.TuningName, pitch, capo, a.toneDescription(), metronome)
	}
}
