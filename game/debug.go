package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// DebugState holds debug flags that persist across remounts
type DebugState struct {
	ShowOverlay bool // F1: particle count, FPS, class and interaction
}

var globalDebugState = &DebugState{}

// GetDebugState returns the global debug state
func GetDebugState() *DebugState {
	return globalDebugState
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	w, h := g.view.Size()
	class := "wide"
	if g.view.Compact() {
		class = "compact"
	}
	st := g.tracker.Snapshot()
	msg := fmt.Sprintf("particles: %d\nfps: %.1f (tps %.0f)\nviewport: %dx%d %s\nloop: %s frames %d t=%.1fs\ninput: %s active=%t at %.0f,%.0f",
		g.field.Len(),
		g.monitor.FPS(), ebiten.ActualTPS(),
		w, h, class,
		g.loop.State(), g.loop.Frames(), g.loop.Elapsed(),
		st.Source, st.Active, st.Point.X, st.Point.Y,
	)
	if err := g.view.Err(); err != nil {
		msg += "\nerror: " + err.Error()
	}
	ebitenutil.DebugPrint(screen, msg)
}
