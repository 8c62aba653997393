package democonfig_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/vflow"
	"github.com/go-theft-auto/vflow/internal/democonfig"
)

func TestDecodeOverridesDefaults(t *testing.T) {
	cfg, err := democonfig.Decode(strings.NewReader(`
view = "table"
items = 500
theme = "light"

[window]
width = 1024
`))
	require.NoError(t, err)

	assert.Equal(t, "table", cfg.View)
	assert.Equal(t, 500, cfg.Items)
	assert.Equal(t, "word", cfg.Wrap, "default kept")
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height, "default kept")

	style, err := cfg.Style()
	require.NoError(t, err)
	assert.Equal(t, vflow.LightStyle(), style)
	assert.Len(t, cfg.Options(), 3)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"unknown key", `colour = "red"`},
		{"bad view", `view = "grid"`},
		{"bad wrap", `wrap = "hyphen"`},
		{"bad theme", `theme = "neon"`},
		{"negative items", `items = -1`},
		{"zero wheel step", `wheel_step = 0.0`},
		{"empty window", "[window]\nwidth = 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := democonfig.Decode(strings.NewReader(tt.toml))
			require.ErrorIs(t, err, democonfig.ErrInvalid)
		})
	}
}

func TestDecodeSyntaxError(t *testing.T) {
	_, err := democonfig.Decode(strings.NewReader(`view = `))
	require.Error(t, err)
	assert.NotErrorIs(t, err, democonfig.ErrInvalid)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.toml")
	require.NoError(t, os.WriteFile(path, []byte("wrap = \"char\"\n"), 0o600))

	cfg, err := democonfig.Load(path)
	require.NoError(t, err)
	mode, err := cfg.WrapMode()
	require.NoError(t, err)
	assert.Equal(t, vflow.WrapModeChar, mode)

	_, err = democonfig.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSampleData(t *testing.T) {
	lines := democonfig.SampleLines(50)
	require.Len(t, lines, 50)
	assert.True(t, strings.HasPrefix(lines[7], "000007 "))
	assert.Equal(t, lines, democonfig.SampleLines(50), "deterministic")

	root := democonfig.SampleTree(13, 3)
	assert.Len(t, root.Children(), 3)
	assert.Len(t, root.Children()[0].Children(), 3)
	assert.True(t, root.Expanded())

	rows := democonfig.SampleRows(5)
	assert.Equal(t, 4, rows[4].ID)
	assert.Positive(t, rows[4].Words)
}
