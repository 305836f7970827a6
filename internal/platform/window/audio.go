package window

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/vovakirdan/nibolas/internal/assets"
	"github.com/vovakirdan/nibolas/internal/core"
)

// mixer plays one synthesized effect per event kind.
type mixer struct {
	ctx     *audio.Context
	players map[string]*audio.Player
	muted   bool
}

// newMixer builds players for every sound in the registry. Sounds are named
// after the event kind that triggers them.
func newMixer(r *assets.Registry, logger *log.Logger) *mixer {
	m := &mixer{
		ctx:     audio.NewContext(assets.SampleRate),
		players: make(map[string]*audio.Player),
	}
	for _, name := range r.SoundNames() {
		pcm, ok := r.Sound(name)
		if !ok {
			continue
		}
		m.players[name] = m.ctx.NewPlayerFromBytes(pcm)
	}
	logger.Debug("audio ready", "sounds", len(m.players))
	return m
}

func (m *mixer) play(kind core.EventKind) {
	if m == nil || m.muted {
		return
	}
	p, ok := m.players[kind.String()]
	if !ok {
		return
	}
	_ = p.Rewind()
	p.Play()
}
