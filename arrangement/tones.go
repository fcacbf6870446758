package arrangement

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/QEStudios/CDLCArrangementBuilder/parser/songxml"
	"github.com/QEStudios/CDLCArrangementBuilder/tuning"
)

// Tone slot ids written to tone change entries.
const (
	toneIDBase = iota
	toneIDA
	toneIDB
	toneIDC
	toneIDD
)

// Placeholder tone names written by old versions of the authoring tools,
// keyed to the slot whose real name should replace them.
var legacyToneNames = []string{"ToneA", "ToneB", "ToneC", "ToneD"}

type toneSlot struct {
	id   int
	name string  // Name assigned by the manifest.
	doc  *string // Slot in the arrangement document.
	arr  *string // Slot in the result.
}

// reconcileTones checks the manifest tone assignment against the tone data of
// the document, repairs the document in place and returns the tone slots of
// the arrangement. A document without a tuning gets standard tuning.
func (b *build) reconcileTones(doc *songxml.Song) (ToneSlots, error) {
	attr := b.attr
	if doc.Tuning == nil {
		standard := tuning.Standard
		doc.Tuning = &standard
	}
	slots := ToneSlots{Multiplayer: attr.ToneMultiplayer}

	// Legacy content only has a base tone.
	if attr.Tones == nil {
		if attr.ToneA != "" || attr.ToneB != "" || attr.ToneC != "" || attr.ToneD != "" {
			return ToneSlots{}, &BuildError{Kind: ErrExtraneousToneData, Path: b.path}
		}
		slots.Base = attr.ToneBase
		return slots, nil
	}

	// Base comes first so a tone that is both base and A keeps id 0.
	manifestSlots := []toneSlot{
		{toneIDBase, attr.ToneBase, &doc.ToneBase, &slots.Base},
		{toneIDA, attr.ToneA, &doc.ToneA, &slots.A},
		{toneIDB, attr.ToneB, &doc.ToneB, &slots.B},
		{toneIDC, attr.ToneC, &doc.ToneC, &slots.C},
		{toneIDD, attr.ToneD, &doc.ToneD, &slots.D},
	}

	for i := range doc.Tones {
		for j, legacy := range legacyToneNames {
			name := manifestSlots[j+1].name
			if doc.Tones[i].Name == legacy && name != "" {
				b.addWarning("tone change %d renamed from %s to %s", i, legacy, name)
				doc.Tones[i].Name = name
			}
		}
	}

	fold := cases.Fold()
	for _, manifestTone := range attr.Tones {
		if manifestTone == nil || manifestTone.Name == "" {
			continue
		}
		key := fold.String(manifestTone.Name)

		id := -1
		for _, slot := range manifestSlots {
			if slot.name == "" || fold.String(slot.name) != key {
				continue
			}
			*slot.arr = slot.name
			*slot.doc = slot.name
			if id < 0 {
				id = slot.id
			}
		}
		if id < 0 {
			id = toneIDBase
		}

		for i := range doc.Tones {
			tone := &doc.Tones[i]
			if tone.Name == "" {
				continue
			}
			docKey := fold.String(tone.Name)
			if docKey == key || strings.HasSuffix(key, docKey) {
				tone.Name = manifestTone.Name
				tone.ID = id
			}
		}

		// An empty tone list is a single tone arrangement, only a missing one
		// is corrupt.
		if doc.Tones == nil && id > toneIDBase {
			if !b.opts.FixMultiTone {
				return ToneSlots{}, &BuildError{Kind: ErrMultitoneDataMissing, Path: b.path}
			}
			b.addWarning("tone changes missing for multitone %s, converted to a single tone", manifestTone.Name)
			doc.Tones = []songxml.Tone{}
		}
	}

	// Without tone changes only the base tone can ever play.
	if len(doc.Tones) == 0 && slots.hasChangeTones(doc) {
		b.addWarning("no tone changes, tone slots A to D cleared")
		doc.ToneA, doc.ToneB, doc.ToneC, doc.ToneD = "", "", "", ""
		doc.ToneBase = attr.ToneBase
		slots.A, slots.B, slots.C, slots.D = "", "", "", ""
		slots.Base = attr.ToneBase
	}
	return slots, nil
}

func (s ToneSlots) hasChangeTones(doc *songxml.Song) bool {
	for _, name := range []string{s.A, s.B, s.C, s.D, doc.ToneA, doc.ToneB, doc.ToneC, doc.ToneD} {
		if name != "" {
			return true
		}
	}
	return false
}
