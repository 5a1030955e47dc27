package platform

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/dkarella/i8080-space-invaders/internal/ports"
	"github.com/dkarella/i8080-space-invaders/internal/scheduler"
)

// PollInput drains the SDL event queue, applying key-down/key-up edges to
// the cabinet's input latches and toggling pause on "0". Returns true if
// the host requested a quit (window close or Escape).
func PollInput(sched *scheduler.Scheduler, pts *ports.Ports) bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return true
		case *sdl.KeyboardEvent:
			down := e.Type == sdl.KEYDOWN
			if applyKey(e.Keysym.Sym, down, sched, pts) {
				return true
			}
		}
	}
	return false
}

func applyKey(sym sdl.Keycode, down bool, sched *scheduler.Scheduler, pts *ports.Ports) (quit bool) {
	switch sym {
	case sdl.K_ESCAPE:
		return down
	case sdl.K_0:
		if down {
			sched.TogglePause()
		}
	case sdl.K_RETURN:
		ports.SetBit(&pts.INP1, ports.INP1Credit, down)
	case sdl.K_1:
		ports.SetBit(&pts.INP1, ports.INP1P1Start, down)
	case sdl.K_2:
		ports.SetBit(&pts.INP1, ports.INP1P2Start, down)
	case sdl.K_p, sdl.K_SPACE:
		ports.SetBit(&pts.INP1, ports.INP1P1Shot, down)
		ports.SetBit(&pts.INP2, ports.INP2P2Shot, down)
	case sdl.K_a, sdl.K_LEFT:
		ports.SetBit(&pts.INP1, ports.INP1P1Left, down)
		ports.SetBit(&pts.INP2, ports.INP2P2Left, down)
	case sdl.K_d, sdl.K_RIGHT:
		ports.SetBit(&pts.INP1, ports.INP1P1Right, down)
		ports.SetBit(&pts.INP2, ports.INP2P2Right, down)
	case sdl.K_TAB:
		ports.SetBit(&pts.INP2, ports.INP2Tilt, down)
	case sdl.K_3:
		ports.SetBit(&pts.INP2, ports.INP2DIP3, down)
	case sdl.K_5:
		ports.SetBit(&pts.INP2, ports.INP2DIP5, down)
	case sdl.K_6:
		ports.SetBit(&pts.INP2, ports.INP2DIP6, down)
	case sdl.K_7:
		ports.SetBit(&pts.INP2, ports.INP2DIP7, down)
	}
	return false
}
