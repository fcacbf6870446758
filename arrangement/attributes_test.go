package arrangement

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QEStudios/CDLCArrangementBuilder/tuning"
)

const envelopeJSON = `{
  "Entries": {
    "b-second": {
      "Attributes": {
        "ArrangementName": "Bass",
        "ArrangementProperties": {"pathBass": 1, "bassPick": 1, "routeMask": 4},
        "DynamicVisualDensity": [2, 2, 3.5],
        "PersistentID": "7c9e6679-7425-40de-944b-e07fc1f90ae7",
        "MasterID_RDV": 99,
        "Tone_Base": "Bass",
        "Tones": null,
        "Tuning": {"string0": -2, "string1": 0, "string2": 0, "string3": 0, "string4": 0, "string5": 0},
        "CentOffset": -1200
      }
    },
    "a-first": {
      "Attributes": {
        "ArrangementName": "Lead",
        "ArrangementProperties": {"pathLead": 1, "routeMask": 1, "metronome": 1},
        "DynamicVisualDensity": [4.5],
        "Tone_Base": "Clean",
        "Tone_A": "Lead",
        "Tones": [{"Name": "Clean", "Key": "clean"}, {"Name": "Lead"}],
        "CapoFret": 2
      }
    }
  }
}`

const bareYAML = `
ArrangementName: Rhythm
ArrangementProperties:
  pathRhythm: 1
  routeMask: 2
DynamicVisualDensity: [3]
Tone_Base: Crunch
Tones:
  - Name: Crunch
Tuning: {string0: -2, string1: -2, string2: -2, string3: -2, string4: -2, string5: -2}
`

func TestParseManifest_Envelope(t *testing.T) {
	attrs, err := ParseManifest([]byte(envelopeJSON))
	require.NoError(t, err)
	require.Len(t, attrs, 2)

	lead, bass := attrs[0], attrs[1]
	assert.Equal(t, "Lead", lead.ArrangementName)
	assert.Equal(t, "Lead", lead.ToneA)
	require.Len(t, lead.Tones, 2)
	assert.Equal(t, "clean", lead.Tones[0].Key)
	assert.Equal(t, 2.0, lead.CapoFret)
	assert.Nil(t, lead.CentOffset)

	assert.Equal(t, "Bass", bass.ArrangementName)
	assert.Nil(t, bass.Tones)
	assert.Equal(t, 99, bass.MasterID)
	require.NotNil(t, bass.CentOffset)
	assert.Equal(t, -1200.0, *bass.CentOffset)
	require.NotNil(t, bass.Tuning)
	assert.Equal(t, tuning.Strings{String0: -2}, *bass.Tuning)
}

func TestParseManifest_BareYAML(t *testing.T) {
	attrs, err := ParseManifest([]byte(bareYAML))
	require.NoError(t, err)
	require.Len(t, attrs, 1)

	a := attrs[0]
	assert.Equal(t, "Rhythm", a.ArrangementName)
	assert.Equal(t, 2, a.ArrangementProperties.RouteMask)
	assert.Equal(t, []float64{3}, a.DynamicVisualDensity)
	require.Len(t, a.Tones, 1)
	assert.Equal(t, "Crunch", a.Tones[0].Name)
	assert.Equal(t, tuning.Standard.Transpose(-2), *a.Tuning)
}

func TestParseManifest_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "garbage", data: "{not: [valid"},
		{name: "entry without attributes", data: `{"Entries": {"x": {}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song_lead.json")
	require.NoError(t, os.WriteFile(path, []byte(envelopeJSON), 0o644))

	attrs, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Len(t, attrs, 2)

	_, err = LoadManifest(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestMapAttributes(t *testing.T) {
	attrs, err := ParseManifest([]byte(envelopeJSON))
	require.NoError(t, err)

	lead, err := mapAttributes(attrs[0])
	require.NoError(t, err)
	assert.Equal(t, Guitar, lead.Kind)
	assert.Equal(t, 45, lead.ScrollSpeed)
	assert.Equal(t, MetronomeGenerate, lead.Metronome)
	assert.Equal(t, RouteLead, lead.RouteMask)
	assert.NotZero(t, lead.MasterID)

	bass, err := mapAttributes(attrs[1])
	require.NoError(t, err)
	assert.Equal(t, Bass, bass.Kind)
	assert.Equal(t, 35, bass.ScrollSpeed, "last density is used")
	assert.Equal(t, Picked, bass.PluckedType)
	assert.Equal(t, RouteBass, bass.RouteMask)
	assert.Equal(t, 99, bass.MasterID)
	assert.Equal(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", bass.ID.String())
}

func TestMapAttributes_ScrollSpeedRoundsHalfToEven(t *testing.T) {
	tests := []struct {
		density float64
		want    int
	}{
		{density: 2.25, want: 22},
		{density: 2.75, want: 28},
		{density: 0.25, want: 2},
		{density: 1.0, want: 10},
	}
	for _, tt := range tests {
		attr := leadAttributes()
		attr.DynamicVisualDensity = []float64{9, tt.density}
		arr, err := mapAttributes(attr)
		require.NoError(t, err)
		assert.Equal(t, tt.want, arr.ScrollSpeed, "density %v", tt.density)
	}
}
