// Package platform hosts the SDL2 collaborators the core never imports
// directly: the windowed renderer, the keyboard-to-port bridge, the
// mixer-backed Sounder, and ROM loading from disk.
package platform

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/dkarella/i8080-space-invaders/internal/memory"
)

const (
	screenWidth  = 224
	screenHeight = 256
	screenPad    = 40

	bandHeight = screenHeight / 8
)

var bandColors = [8]sdl.Color{
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, // white
	{R: 0x00, G: 0xff, B: 0x00, A: 0xff}, // green
	{R: 0xbb, G: 0xbb, B: 0xbb, A: 0xff}, // grey
	{R: 0xbb, G: 0xbb, B: 0xbb, A: 0xff}, // grey
	{R: 0xbb, G: 0xbb, B: 0xbb, A: 0xff}, // grey
	{R: 0xff, G: 0x00, B: 0x00, A: 0xff}, // red
	{R: 0x00, G: 0xff, B: 0xff, A: 0xff}, // cyan
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, // white
}

// Display owns the SDL window and renderer. Scale multiplies the cabinet's
// native 224x256 resolution.
type Display struct {
	Scale int32

	window   *sdl.Window
	renderer *sdl.Renderer
	winW     int32
	winH     int32
}

// NewDisplay creates an SDL window and accelerated, vsync'd renderer sized
// for scale times the cabinet's native resolution plus a fixed border.
func NewDisplay(scale int32) (*Display, error) {
	if scale <= 0 {
		scale = 2
	}

	winW := screenWidth*scale + screenPad*2
	winH := screenHeight*scale + screenPad*2

	window, err := sdl.CreateWindow("Space Invaders", sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED, winW, winH, sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1,
		sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		return nil, err
	}

	return &Display{Scale: scale, window: window, renderer: renderer, winW: winW, winH: winH}, nil
}

// Close destroys the renderer and window.
func (d *Display) Close() {
	d.renderer.Destroy()
	d.window.Destroy()
}

// Renderer exposes the underlying SDL renderer so a HUD overlay can draw
// on top of the frame Render just produced, before Present is called again.
func (d *Display) Renderer() *sdl.Renderer { return d.renderer }

// WindowWidth returns the full window width in pixels, including padding.
func (d *Display) WindowWidth() int32 { return d.winW }

// Present flips the renderer's back buffer. Render does not call this;
// it is separate so a HUD overlay can draw between the raster pass and
// the final flip.
func (d *Display) Present() { d.renderer.Present() }

// Render rasterizes a video RAM snapshot: column-major, rotated 90° CCW,
// with the cabinet's 8-band color overlay. The iteration order (x high to
// low, then bit high to low, then y low to high) mirrors the original
// renderer exactly so the rotation lands the right way up. Does not flip
// the back buffer; call Present afterward (after an optional HUD draw).
func (d *Display) Render(vram [memory.Size - memory.VideoStart]byte) {
	d.renderer.SetDrawColor(0, 0, 0, 255)
	d.renderer.Clear()

	var i int32
	prevSection := int32(-1)
	var color sdl.Color

	for x := 31; x >= 0; x-- {
		for b := 7; b >= 0; b-- {
			section := (i / screenWidth) / bandHeight
			if section != prevSection {
				color = bandColors[section%8]
				prevSection = section
			}

			for y := 0; y < screenWidth; y++ {
				byteVal := vram[32*y+x]
				if byteVal&(1<<uint(b)) != 0 {
					rect := sdl.Rect{
						X: (int32(i) % screenWidth) * d.Scale + screenPad,
						Y: (int32(i) / screenWidth) * d.Scale + screenPad,
						W: d.Scale,
						H: d.Scale,
					}
					d.renderer.SetDrawColor(color.R, color.G, color.B, 255)
					d.renderer.FillRect(&rect)
				}
				i++
			}
		}
	}
}
