package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.Grid.XCount)
	assert.Equal(t, 25, cfg.Grid.YCount)
	assert.Equal(t, 15, cfg.Grid.ZCount)
	assert.Equal(t, "perlin", cfg.Noise.Basis)
	assert.Equal(t, [3]float64{1, 0.843, 0}, cfg.Params.Color1)
	assert.InDelta(t, 0.1, cfg.Params.TimeMul, 1e-12)
	assert.InDelta(t, 0.2, cfg.Params.TexScale, 1e-12)
	assert.False(t, cfg.Influence.ScaleByWeight)

	assert.Equal(t, 5625, cfg.Derived.InstanceCount)
	assert.InDelta(t, 0.3075, cfg.Derived.Spacing, 1e-12)
	assert.InDelta(t, 0.15, cfg.Derived.HalfSize, 1e-12)
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	overlay := []byte("grid:\n  x_count: 3\nparams:\n  tex_scale: 0.4\n")
	require.NoError(t, os.WriteFile(path, overlay, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Grid.XCount)
	assert.Equal(t, 25, cfg.Grid.YCount, "fields absent from the overlay keep their defaults")
	assert.InDelta(t, 0.4, cfg.Params.TexScale, 1e-12)
	assert.Equal(t, 3*25*15, cfg.Derived.InstanceCount)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateJoinsViolations(t *testing.T) {
	cfg := Defaults()
	cfg.Grid.XCount = 0
	cfg.Noise.Basis = "value"
	cfg.Influence.MaxDistance = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Contains(t, err.Error(), "grid counts")
	assert.Contains(t, err.Error(), "noise.basis")
	assert.Contains(t, err.Error(), "influence.max_distance")
}

func TestPanelXFollowsScreenWidth(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, 260, cfg.Screen.PanelWidth)
	assert.Equal(t, 10, cfg.Screen.PanelMargin)

	assert.Equal(t, int32(1280-270), cfg.Screen.PanelX(cfg.Screen.Width))
	assert.Equal(t, int32(1920-270), cfg.Screen.PanelX(1920), "resized window keeps the panel flush right")

	cfg.Screen.PanelWidth = 300
	assert.Equal(t, int32(1920-310), cfg.Screen.PanelX(1920))

	cfg.Screen.PanelWidth = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}

func TestLoadRejectsInvalidOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid:\n  cube_size: 0\n"), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.Noise.Seed = 99
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(99), loaded.Noise.Seed)
	assert.Equal(t, cfg.Params, loaded.Params)
}
