package tuning

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Detect(t *testing.T) {
	catalog, err := LoadDefault()
	require.NoError(t, err)

	tests := []struct {
		name     string
		strings  Strings
		version  GameVersion
		isGuitar bool
		expected string
		custom   bool
	}{
		{
			name:     "guitar standard",
			strings:  Standard,
			version:  RS2014,
			isGuitar: true,
			expected: "E Standard",
		},
		{
			name:     "guitar drop d",
			strings:  Strings{String0: -2},
			version:  RS2014,
			isGuitar: true,
			expected: "Drop D",
		},
		{
			name:     "bass ignores upper strings",
			strings:  Strings{-2, -2, -2, -2, -2, -2},
			version:  RS2014,
			isGuitar: false,
			expected: "D Standard",
		},
		{
			name:     "unknown guitar tuning",
			strings:  Strings{1, 2, 3, 4, 5, 6},
			version:  RS2014,
			isGuitar: true,
			expected: CustomUIName,
			custom:   true,
		},
		{
			name:     "unknown game version",
			strings:  Standard,
			version:  GameVersion("RS2099"),
			isGuitar: true,
			expected: CustomUIName,
			custom:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := catalog.Detect(tt.strings, tt.version, tt.isGuitar)
			assert.Equal(t, tt.expected, d.UIName)
			assert.Equal(t, tt.custom, d.Custom)
		})
	}
}

func TestCatalog_DetectReturnsCanonicalStrings(t *testing.T) {
	catalog, err := LoadDefault()
	require.NoError(t, err)

	d := catalog.Detect(Strings{-2, -2, -2, -2, 7, 7}, RS2014, false)
	assert.Equal(t, "DStandard", d.Name)
	assert.Equal(t, Strings{-2, -2, -2, -2, 0, 0}, d.Strings)
}

func TestCatalog_Len(t *testing.T) {
	catalog, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, 28, catalog.Len(RS2014))
	assert.Zero(t, catalog.Len("RS2077"))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{name: "unknown key", yml: "RS2014:\n  guitar:\n    - {name: X, tuning: [0,0,0,0,0,0]}\n"},
		{name: "missing name", yml: "RS2014:\n  bass:\n    - {strings: [0,0,0,0,0,0]}\n"},
		{name: "short offsets", yml: "RS2014:\n  bass:\n    - {name: X, strings: [0,0]}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yml))
			assert.Error(t, err)
		})
	}
}

func TestLoad_UserTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunings.yml")
	yml := "RS2014:\n  guitar:\n    - {name: AllUp, strings: [1,1,1,1,1,1]}\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	catalog, err := Load(path)
	require.NoError(t, err)
	d := catalog.Detect(Standard.Transpose(1), RS2014, true)
	assert.Equal(t, "AllUp", d.UIName)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestCentsToFrequency(t *testing.T) {
	assert.Equal(t, 440.0, CentsToFrequency(0))
	assert.Equal(t, 220.0, CentsToFrequency(LowBassCents))
	assert.Equal(t, 880.0, CentsToFrequency(1200))
	assert.InDelta(t, 432.0, CentsToFrequency(-31.77), 0.01)
}
