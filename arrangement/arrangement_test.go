package arrangement

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name ArrangementName
		want Kind
	}{
		{NameBass, Bass},
		{NameVocals, Vocal},
		{NameJVocals, Vocal},
		{NameShowLights, ShowLight},
		{NameLead, Guitar},
		{NameRhythm, Guitar},
		{NameCombo, Guitar},
		{"Banjo", Guitar},
	}
	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.name))
		})
	}
}

func TestNewArrangement(t *testing.T) {
	vocal := NewArrangement(Vocal)
	assert.Equal(t, 1, vocal.MasterID)

	a, b := NewArrangement(Guitar), NewArrangement(Guitar)
	assert.NotEqual(t, a.ID, b.ID)
	assert.GreaterOrEqual(t, a.MasterID, 0)
}

func TestArrangementString(t *testing.T) {
	tests := []struct {
		name string
		arr  Arrangement
		want string
	}{
		{
			name: "lead",
			arr: Arrangement{
				Kind: Guitar, Name: NameLead, TuningName: "Drop D", TuningPitch: 440,
				Tones: ToneSlots{Base: "Clean", A: "Clean", B: "Dist"},
			},
			want: "Guitar - Lead [Drop D] (Clean, Dist)",
		},
		{
			name: "bass with pitch and capo",
			arr: Arrangement{
				Kind: Bass, Name: NameBass, TuningName: "Custom Tuning", TuningPitch: 220, CapoFret: 2,
				Tones: ToneSlots{Base: "Bass"}, Metronome: MetronomeGenerate,
			},
			want: "Bass [Custom Tuning: A220, Capo Fret 2] (Bass) +Metronome",
		},
		{
			name: "vocals",
			arr:  Arrangement{Kind: Vocal, Name: NameJVocals},
			want: "JVocals",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.arr.String())
		})
	}
}

func TestClearCache(t *testing.T) {
	a := NewArrangement(Bass)
	loads := 0
	load := func() ([]byte, error) {
		loads++
		return []byte{1, 2, 3}, nil
	}

	data, err := a.Track.Get(load)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
	_, err = a.Track.Get(load)
	require.NoError(t, err)
	assert.Equal(t, 1, loads)

	a.ClearCache()
	a.ClearCache()
	_, ok := a.Track.Peek()
	assert.False(t, ok)

	_, err = a.Track.Get(load)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}

func TestLazy_FailedLoadStaysEmpty(t *testing.T) {
	var l Lazy[int]
	_, err := l.Get(func() (int, error) { return 0, errors.New("boom") })
	assert.Error(t, err)
	_, ok := l.Peek()
	assert.False(t, ok)

	l.Set(7)
	v, ok := l.Peek()
	assert.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestBuildError(t *testing.T) {
	err := error(&BuildError{Kind: ErrMissingField, Field: "ArrangementType", Path: "a.xml"})
	assert.Equal(t, "a.xml: missing information from manifest (ArrangementType)", err.Error())
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.False(t, errors.Is(err, ErrIO))
}
