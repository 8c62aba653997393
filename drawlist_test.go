package vflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/vflow"
)

func TestDrawListPool(t *testing.T) {
	dl := vflow.AcquireDrawList()
	require.NotNil(t, dl)
	dl.AddRect(0, 0, 100, 100, vflow.ColorWhite)
	dl.FontTexture = 3
	vflow.ReleaseDrawList(dl)

	reused := vflow.AcquireDrawList()
	defer vflow.ReleaseDrawList(reused)
	assert.Empty(t, reused.VtxBuffer)
	assert.Zero(t, reused.FontTexture)
}

func TestDrawListBatchesGlyphsByTexture(t *testing.T) {
	dl := vflow.AcquireDrawList()
	defer vflow.ReleaseDrawList(dl)

	dl.AddRect(0, 0, 10, 10, vflow.ColorWhite)
	dl.FontTexture = 7
	dl.AddText(0, 0, "ab", vflow.ColorWhite, 1, 8, 8)
	dl.AddRect(0, 10, 10, 10, vflow.ColorWhite)
	dl.Finalize()

	require.Len(t, dl.CmdBuffer, 3)
	assert.Equal(t, []uint32{0, 7, 0}, []uint32{
		dl.CmdBuffer[0].TextureID, dl.CmdBuffer[1].TextureID, dl.CmdBuffer[2].TextureID,
	})
	assert.Equal(t, uint32(12), dl.CmdBuffer[1].ElemCount)
}

func TestDrawListSkipsTransparent(t *testing.T) {
	dl := vflow.AcquireDrawList()
	defer vflow.ReleaseDrawList(dl)

	dl.AddRect(0, 0, 10, 10, vflow.RGBA(255, 255, 255, 0))
	dl.AddText(0, 0, "hidden", 0, 1, 8, 8)
	assert.Empty(t, dl.VtxBuffer)
}

func TestDrawListWideRunesAdvanceTwoColumns(t *testing.T) {
	dl := vflow.AcquireDrawList()
	defer vflow.ReleaseDrawList(dl)

	dl.AddText(0, 0, "日a", vflow.ColorWhite, 1, 8, 8)
	require.Len(t, dl.VtxBuffer, 8)
	// the second glyph starts after two columns
	assert.Equal(t, float32(16), dl.VtxBuffer[4].Pos[0])
}

func BenchmarkDrawListAddText(b *testing.B) {
	dl := vflow.AcquireDrawList()
	defer vflow.ReleaseDrawList(dl)

	for i := 0; i < b.N; i++ {
		dl.Clear()
		for y := range 40 {
			dl.AddText(0, float32(y*10), "Hello World", vflow.ColorWhite, 1, 8, 8)
		}
	}
}
