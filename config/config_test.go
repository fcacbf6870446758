package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QEStudios/CDLCArrangementBuilder/arrangement"
	"github.com/QEStudios/CDLCArrangementBuilder/tuning"
)

func writeUserConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, AppDir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, AppDir, "config.yml"), []byte(content), 0o644))
	return dir
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, tuning.RS2014, c.GameVersion)
	assert.False(t, c.FixLowBass)
	assert.False(t, c.FixMultiTone)
	assert.Zero(t, c.Workers)
	assert.Empty(t, c.TuningsFile)
}

func TestLoadFrom(t *testing.T) {
	tests := []struct {
		name      string
		content   *string
		want      Config
		wantError bool
	}{
		{name: "no user file", want: Default()},
		{
			name:    "partial override",
			content: ptr("fixLowBass: true\nworkers: 3\n"),
			want:    Config{FixLowBass: true, Workers: 3, GameVersion: tuning.RS2014},
		},
		{name: "empty file", content: ptr(""), want: Default()},
		{name: "unknown key", content: ptr("fixLowbass: true\n"), wantError: true},
		{name: "bad game version", content: ptr("gameVersion: RS2077\n"), wantError: true},
		{name: "negative workers", content: ptr("workers: -1\n"), wantError: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.content != nil {
				dir = writeUserConfig(t, *tt.content)
			}
			c := LoadFrom(dir)
			if tt.wantError {
				assert.Error(t, c.YmlError)
				c.YmlError = nil
				assert.Equal(t, Default(), c, "defaults are kept on error")
				return
			}
			assert.NoError(t, c.YmlError)
			assert.Equal(t, tt.want, c)
		})
	}
}

func TestOptions(t *testing.T) {
	c := Config{FixMultiTone: true}
	assert.Equal(t, arrangement.Options{FixMultiTone: true}, c.Options())
}

func TestCatalog(t *testing.T) {
	c, err := Default().Catalog()
	require.NoError(t, err)
	assert.Positive(t, c.Len(tuning.RS2014))

	_, err = Config{TuningsFile: filepath.Join(t.TempDir(), "missing.yml")}.Catalog()
	assert.Error(t, err)
}

func ptr(s string) *string { return &s }
