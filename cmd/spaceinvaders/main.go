// Command spaceinvaders runs the Intel 8080 Space Invaders cabinet
// emulator against a ROM image, opening an SDL window, servicing the
// cabinet's custom I/O ports, and honoring the two video-synchronized
// interrupts per frame.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/dkarella/i8080-space-invaders/internal/cpu"
	"github.com/dkarella/i8080-space-invaders/internal/memory"
	"github.com/dkarella/i8080-space-invaders/internal/platform"
	"github.com/dkarella/i8080-space-invaders/internal/ports"
	"github.com/dkarella/i8080-space-invaders/internal/scheduler"
)

const renderInterval = time.Second / 60

var (
	debug   bool
	speed   float64
	scale   int
	mute    bool
	cpudiag bool
)

func main() {
	root := &cobra.Command{
		Use:   "spaceinvaders [rom]",
		Short: "Intel 8080 Space Invaders cabinet emulator",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}

	root.Flags().BoolVar(&debug, "debug", false, "log each dispatched opcode and PC")
	root.Flags().Float64Var(&speed, "speed", 1.0, "scheduler cycle-budget speed multiplier")
	root.Flags().IntVar(&scale, "scale", 2, "integer pixel scale factor for the window")
	root.Flags().BoolVar(&mute, "mute", false, "run with a no-op sound collaborator")
	root.Flags().BoolVar(&cpudiag, "cpudiag", false, "allow writes to ROM, for running 8080 self-test images")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	romPath := args[0]

	data, err := platform.LoadROM(romPath)
	if err != nil {
		return fmt.Errorf("load rom: %w", err)
	}

	mem := memory.New()
	mem.AllowROMWrites = cpudiag
	if err := mem.LoadROM(data); err != nil {
		return fmt.Errorf("install rom: %w", err)
	}

	c := cpu.New()
	c.Debug = debug

	pts := ports.New()

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	defer sdl.Quit()

	display, err := platform.NewDisplay(int32(scale))
	if err != nil {
		return fmt.Errorf("create display: %w", err)
	}
	defer display.Close()

	if !mute {
		mixer, err := platform.NewMixer("assets/sounds")
		if err != nil {
			log.Printf("spaceinvaders: audio disabled: %v", err)
		} else {
			defer mixer.Close()
			pts.SetSounder(mixer)
		}
	}

	hud, err := platform.NewHUD("assets/fonts/hud.ttf", 16)
	if err != nil {
		log.Printf("spaceinvaders: HUD disabled: %v", err)
		hud = nil
	} else {
		defer hud.Close()
	}

	sched := scheduler.New(c, mem, pts)
	sched.PlaySpeed = speed

	lastRender := time.Now()
	for {
		if platform.PollInput(sched, pts) {
			break
		}

		sched.Tick()
		if sched.Halted {
			break
		}

		if time.Since(lastRender) >= renderInterval {
			display.Render(mem.VideoRAM())
			if hud != nil && sched.Paused {
				if err := hud.RenderPaused(display.Renderer(), display.WindowWidth()); err != nil {
					log.Printf("spaceinvaders: hud render: %v", err)
				}
			}
			display.Present()
			lastRender = time.Now()
		}
	}

	return nil
}
