package arrangement

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/QEStudios/CDLCArrangementBuilder/tuning"
)

// ArrangementProperties is the properties block of an arrangement manifest.
// Only the fields the builder maps are listed; flags are 0 or 1.
type ArrangementProperties struct {
	Represent      int `json:"represent" yaml:"represent"`
	BonusArr       int `json:"bonusArr" yaml:"bonusArr"`
	StandardTuning int `json:"standardTuning" yaml:"standardTuning"`
	BassPick       int `json:"bassPick" yaml:"bassPick"`
	PathLead       int `json:"pathLead" yaml:"pathLead"`
	PathRhythm     int `json:"pathRhythm" yaml:"pathRhythm"`
	PathBass       int `json:"pathBass" yaml:"pathBass"`
	RouteMask      int `json:"routeMask" yaml:"routeMask"`
	Metronome      int `json:"metronome" yaml:"metronome"`
}

// A tone listed in the manifest.
type ManifestTone struct {
	Name string `json:"Name" yaml:"Name"`
	Key  string `json:"Key,omitempty" yaml:"Key,omitempty"`
}

// Attributes is the manifest record describing one arrangement.
type Attributes struct {
	SongName              string                 `json:"SongName,omitempty" yaml:"SongName,omitempty"`
	ArrangementName       string                 `json:"ArrangementName" yaml:"ArrangementName"`
	ArrangementProperties *ArrangementProperties `json:"ArrangementProperties" yaml:"ArrangementProperties"`
	ArrangementSort       int                    `json:"ArrangementSort" yaml:"ArrangementSort"`
	DynamicVisualDensity  []float64              `json:"DynamicVisualDensity" yaml:"DynamicVisualDensity"`
	PersistentID          string                 `json:"PersistentID" yaml:"PersistentID"`
	MasterID              int                    `json:"MasterID_RDV" yaml:"MasterID_RDV"`

	// Tones is nil for legacy content that only has a base tone.
	Tones           []*ManifestTone `json:"Tones" yaml:"Tones"`
	ToneBase        string          `json:"Tone_Base" yaml:"Tone_Base"`
	ToneA           string          `json:"Tone_A,omitempty" yaml:"Tone_A,omitempty"`
	ToneB           string          `json:"Tone_B,omitempty" yaml:"Tone_B,omitempty"`
	ToneC           string          `json:"Tone_C,omitempty" yaml:"Tone_C,omitempty"`
	ToneD           string          `json:"Tone_D,omitempty" yaml:"Tone_D,omitempty"`
	ToneMultiplayer string          `json:"Tone_Multiplayer,omitempty" yaml:"Tone_Multiplayer,omitempty"`

	Tuning     *tuning.Strings `json:"Tuning" yaml:"Tuning"`
	CapoFret   float64         `json:"CapoFret" yaml:"CapoFret"`
	CentOffset *float64        `json:"CentOffset" yaml:"CentOffset"`
}

type manifestEntry struct {
	Attributes *Attributes `json:"Attributes" yaml:"Attributes"`
}

// manifest accepts both the game's envelope and a bare attributes object.
type manifest struct {
	Entries    map[string]manifestEntry `json:"Entries" yaml:"Entries"`
	Attributes `yaml:",inline"`
}

// LoadManifest reads the attributes records of a manifest file.
func LoadManifest(path string) ([]*Attributes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read manifest %v: %w", path, err)
	}
	attrs, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %v: %w", path, err)
	}
	return attrs, nil
}

// ParseManifest decodes a manifest as JSON, falling back to YAML. Entries of
// an envelope are returned in key order.
func ParseManifest(data []byte) ([]*Attributes, error) {
	var m manifest
	if errJSON := json.Unmarshal(data, &m); errJSON != nil {
		m = manifest{}
		if errYaml := yaml.Unmarshal(data, &m); errYaml != nil {
			return nil, fmt.Errorf("could not be unmarshaled as .json (%v) or .yml (%v)", errJSON, errYaml)
		}
	}
	if len(m.Entries) == 0 {
		return []*Attributes{&m.Attributes}, nil
	}

	keys := make([]string, 0, len(m.Entries))
	for k := range m.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]*Attributes, 0, len(keys))
	for _, k := range keys {
		a := m.Entries[k].Attributes
		if a == nil {
			return nil, fmt.Errorf("entry %s has no attributes", k)
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}

// mapAttributes creates an arrangement from the scalar fields of a manifest
// record. Tones and tuning are filled in later from the arrangement file.
func mapAttributes(attr *Attributes) (*Arrangement, error) {
	if attr == nil || attr.ArrangementName == "" {
		return nil, missingField("ArrangementType")
	}
	if attr.ArrangementProperties == nil {
		return nil, missingField("ArrangementProperties")
	}
	if len(attr.DynamicVisualDensity) == 0 {
		return nil, missingField("DynamicVisualDensity")
	}

	name := ArrangementName(attr.ArrangementName)
	a := NewArrangement(KindOf(name))
	if attr.PersistentID != "" {
		id, err := uuid.Parse(attr.PersistentID)
		if err != nil {
			return nil, invalidField("PersistentID", err)
		}
		a.ID = id
	}
	if attr.MasterID != 0 {
		a.MasterID = attr.MasterID
	}

	props := *attr.ArrangementProperties
	a.Name = name
	a.Sort = attr.ArrangementSort
	a.Properties = props
	density := attr.DynamicVisualDensity[len(attr.DynamicVisualDensity)-1]
	a.ScrollSpeed = int(math.RoundToEven(density * 10))
	a.PluckedType = PluckedType(props.BassPick)
	a.RouteMask = RouteMask(props.RouteMask)
	a.BonusArr = props.BonusArr == 1
	a.Metronome = Metronome(props.Metronome)
	a.Tones.Multiplayer = attr.ToneMultiplayer
	return a, nil
}
