package assets

import (
	"encoding/binary"
	"image/color"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/nibolas/internal/anim"
	"github.com/vovakirdan/nibolas/internal/config"
	"github.com/vovakirdan/nibolas/internal/core"
)

const testManifest = `
sheets:
  s:
    file: sheet.txt
    transparent: "."
palette:
  hot: { term: red, rgba: "#ff0000" }
sprites:
  blink: { sheet: s, x: 1, y: 0, w: 2, h: 2, frames: 2, frame_duration: 0.5, mode: loop, color: hot }
  dot: { sheet: s, x: 0, y: 2, w: 1, h: 1 }
sounds:
  beep: { wave: square, freq: 440, duration: 0.01 }
`

func testFS(manifest string) fstest.MapFS {
	return fstest.MapFS{
		"a/manifest.yaml": {Data: []byte(manifest)},
		"a/sheet.txt":     {Data: []byte("xAB.D\nxC..E\n*\n")},
	}
}

func TestLoadSlicesFrames(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Load(testFS(testManifest), "a/manifest.yaml"))

	a, ok := r.Animation("blink")
	require.True(t, ok)
	require.Equal(t, 2, a.Len())
	assert.Equal(t, anim.PlayLoop, a.Mode())

	first := a.KeyFrame(0)
	assert.Equal(t, [][]rune{{'A', 'B'}, {'C', 0}}, first.Cells)
	second := a.KeyFrame(0.5)
	assert.Equal(t, [][]rune{{0, 'D'}, {0, 'E'}}, second.Cells)
	assert.Equal(t, core.ColorRed, first.Color)
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, first.RGBA)

	dot, ok := r.Sprite("dot")
	require.True(t, ok)
	assert.Equal(t, 1, dot.Width())
	assert.Equal(t, 1, dot.Height())
	assert.Equal(t, '*', dot.At(5, -3), "At wraps to tile")

	assert.Equal(t, []string{"blink", "dot"}, r.SpriteNames())
	assert.Equal(t, core.ColorRed, r.Color("hot"))
	assert.Equal(t, core.ColorDefault, r.Color("missing"))
}

func TestLoadErrorsKeepPreviousAssets(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
	}{
		{"broken yaml", "sprites: [oops"},
		{"unknown sheet", "sprites:\n  x: { sheet: nope, w: 1, h: 1 }\n"},
		{"frames past edge", "sheets:\n  s: { file: sheet.txt }\nsprites:\n  x: { sheet: s, w: 3, h: 1, frames: 2 }\n"},
		{"rows past edge", "sheets:\n  s: { file: sheet.txt }\nsprites:\n  x: { sheet: s, y: 2, w: 1, h: 2 }\n"},
		{"unknown color", "sheets:\n  s: { file: sheet.txt }\nsprites:\n  x: { sheet: s, w: 1, h: 1, color: nope }\n"},
		{"bad hex", "palette:\n  c: { rgba: \"#12\" }\n"},
		{"bad wave", "sounds:\n  s: { wave: organ, freq: 1, duration: 1 }\n"},
		{"missing sheet file", "sheets:\n  s: { file: gone.txt }\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRegistry()
			require.NoError(t, r.Load(testFS(testManifest), "a/manifest.yaml"))

			err := r.Load(testFS(tc.manifest), "a/manifest.yaml")
			require.Error(t, err)
			_, ok := r.Sprite("blink")
			assert.True(t, ok, "failed load must not drop loaded assets")
		})
	}
}

func TestUnload(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Load(testFS(testManifest), "a/manifest.yaml"))

	r.Unload()

	_, ok := r.Sprite("blink")
	assert.False(t, ok)
	_, ok = r.Sound("beep")
	assert.False(t, ok)
	assert.Empty(t, r.SoundNames())
}

func TestSynthesize(t *testing.T) {
	pcm, err := Synthesize(ToneSpec{Wave: "sine", Freq: 440, Duration: 0.1, Volume: 1})
	require.NoError(t, err)
	assert.Len(t, pcm, 4410*4)

	// The attack ramp starts from silence and both channels carry the same sample.
	assert.Zero(t, int16(binary.LittleEndian.Uint16(pcm[0:])))
	mid := 2000 * 4
	assert.Equal(t, pcm[mid:mid+2], pcm[mid+2:mid+4])

	again, err := Synthesize(ToneSpec{Wave: "noise", Duration: 0.05})
	require.NoError(t, err)
	noise, _ := Synthesize(ToneSpec{Wave: "noise", Duration: 0.05})
	assert.Equal(t, noise, again, "noise is deterministic")

	_, err = Synthesize(ToneSpec{Wave: "sine", Freq: 440})
	assert.Error(t, err)
}

func TestDefaultCoversLevelSprites(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	for _, id := range config.DefaultLevelIDs() {
		cfg, err := config.ParseLevel(config.GetDefaultYAML(id))
		require.NoError(t, err)

		_, ok := r.Sprite(cfg.Player.Sprite)
		assert.True(t, ok, "%s: player sprite %q", id, cfg.Player.Sprite)
		for _, lane := range cfg.Lanes {
			_, ok := r.Sprite(lane.Sprite)
			assert.True(t, ok, "%s: lane %s sprite %q", id, lane.Name, lane.Sprite)
		}
	}

	for _, kind := range []core.EventKind{core.EventJump, core.EventPickup, core.EventExtreme, core.EventCrash, core.EventNewBest} {
		_, ok := r.Sound(kind.String())
		assert.True(t, ok, "sound for %s", kind)
	}
}
