package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/nibolas/internal/core"
)

// keyBindings mirrors the terminal key map.
var keyBindings = map[ebiten.Key]core.Action{
	ebiten.KeySpace:     core.ActionJump,
	ebiten.KeyW:         core.ActionJump,
	ebiten.KeyArrowUp:   core.ActionJump,
	ebiten.KeyS:         core.ActionDive,
	ebiten.KeyArrowDown: core.ActionDive,
	ebiten.KeyEnter:     core.ActionConfirm,
	ebiten.KeyB:         core.ActionBack,
	ebiten.KeyP:         core.ActionPause,
	ebiten.KeyEscape:    core.ActionPause,
	ebiten.KeyR:         core.ActionRestart,
	ebiten.KeyQ:         core.ActionQuit,
}

// readInput collects the actions whose keys went down this tick.
func readInput(frame *core.InputFrame) {
	for k, action := range keyBindings {
		if inpututil.IsKeyJustPressed(k) {
			frame.Set(action)
		}
	}
}
