package platform

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

var pausedColor = sdl.Color{R: 0xff, G: 0xff, B: 0x00, A: 0xff}

// HUD renders an optional status overlay (currently just a "PAUSED"
// banner) on top of the emulated video signal. It is never on the game's
// critical path: construction or render failures are reported to the
// caller to log and swallow, exactly like the sound subsystem's
// must-remain-playable disposition.
type HUD struct {
	font *ttf.Font
}

// NewHUD loads a TrueType font for the overlay. Callers that fail to
// construct a HUD should simply run without one.
func NewHUD(fontPath string, ptSize int) (*HUD, error) {
	if err := ttf.Init(); err != nil {
		return nil, fmt.Errorf("ttf init: %w", err)
	}
	font, err := ttf.OpenFont(fontPath, ptSize)
	if err != nil {
		ttf.Quit()
		return nil, fmt.Errorf("open font %q: %w", fontPath, err)
	}
	return &HUD{font: font}, nil
}

// Close frees the font and tears down the ttf subsystem.
func (h *HUD) Close() {
	h.font.Close()
	ttf.Quit()
}

// RenderPaused draws "PAUSED" centered near the top of the renderer's
// target, on top of whatever Display.Render already drew this frame.
func (h *HUD) RenderPaused(renderer *sdl.Renderer, windowW int32) error {
	surface, err := h.font.RenderUTF8Blended("PAUSED", pausedColor)
	if err != nil {
		return fmt.Errorf("render paused text: %w", err)
	}
	defer surface.Free()

	texture, err := renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return fmt.Errorf("create paused texture: %w", err)
	}
	defer texture.Destroy()

	dst := sdl.Rect{
		X: (windowW - surface.W) / 2,
		Y: 8,
		W: surface.W,
		H: surface.H,
	}
	return renderer.Copy(texture, nil, &dst)
}
