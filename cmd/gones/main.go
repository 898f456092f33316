// Command gones is the reference frontend: a pixelgl window polling
// keyboard state into the two controller latches, and an audio sink
// pulling mixed samples from the APU, grounded on the teacher's
// main.go/screen.go/lib/ui/screen.go run loop.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"

	"github.com/nesgo/core/controller"
	"github.com/nesgo/core/frontend"
	"github.com/nesgo/core/nes"
)

const (
	frameWidth  = 256
	frameHeight = 240
	windowScale = 3
)

func main() {
	romPath := flag.String("rom", "", "path to the iNes Rom file to run")
	verbose := flag.Bool("verbose", false, "log every CPU step in nestest format")
	spriteLimit := flag.Bool("sprite-limit", true, "enforce the 8-sprites-per-scanline hardware limit")
	audioBackend := flag.String("audio", "beep", "audio backend: beep or portaudio")
	flag.Parse()

	if *romPath == "" {
		fmt.Println("usage: gones -rom <path to .nes file>")
		os.Exit(1)
	}

	machine, err := nes.New(nes.WithVerbose(*verbose), nes.WithSpriteLimit(*spriteLimit))
	if err != nil {
		fmt.Printf("failed to start gones: %v\n", err)
		os.Exit(1)
	}
	if err := machine.LoadROM(*romPath); err != nil {
		fmt.Printf("failed to load %q: %v\n", *romPath, err)
		os.Exit(1)
	}

	sink, err := openAudioSink(*audioBackend)
	if err != nil {
		fmt.Printf("failed to start audio (%s): %v\n", *audioBackend, err)
		os.Exit(1)
	}
	defer sink.Close()

	pixelgl.Run(func() { run(machine, sink) })
}

func openAudioSink(backend string) (frontend.AudioSink, error) {
	switch backend {
	case "portaudio":
		return frontend.NewPortaudioSink()
	default:
		return frontend.NewBeepSink(44100)
	}
}

func run(machine *nes.NES, sink frontend.AudioSink) {
	cfg := pixelgl.WindowConfig{
		Title:  "gones",
		Bounds: pixel.R(0, 0, frameWidth*windowScale, frameHeight*windowScale),
		VSync:  true,
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		panic(err)
	}

	pic := &pixel.PictureData{
		Pix:    make([]color.RGBA, frameWidth*frameHeight),
		Stride: frameWidth,
		Rect:   pixel.R(0, 0, frameWidth, frameHeight),
	}

	fpsTick := time.Tick(time.Second)
	frames := 0

	for !win.Closed() {
		machine.RunFrame()
		pullAudio(machine, sink)

		copyFrame(pic, machine.PPU().FrameBuffer())
		sprite := pixel.NewSprite(pic, pic.Rect)

		win.Clear(colornames.Black)
		sprite.Draw(win, pixel.IM.Moved(win.Bounds().Center()).ScaledXY(win.Bounds().Center(), pixel.V(windowScale, windowScale)))

		updateControllers(win, machine.Controllers())
		win.Update()

		frames++
		select {
		case <-fpsTick:
			win.SetTitle(fmt.Sprintf("gones | FPS: %d", frames))
			frames = 0
		default:
		}
	}
}

// pullAudio drains one frame's worth of samples at the sink's rate
// right after RunFrame, rather than from a separate goroutine racing
// the emulation loop — simple, and good enough since a video frame's
// worth of audio is a small, bounded amount of work.
func pullAudio(machine *nes.NES, sink frontend.AudioSink) {
	samplesPerFrame := int(sink.SampleRate() / 60)
	for i := 0; i < samplesPerFrame; i++ {
		sink.Push(machine.APU().PullSample(sink.SampleRate()))
	}
}

func copyFrame(pic *pixel.PictureData, frame *[frameWidth * frameHeight]uint32) {
	for i, argb := range frame {
		// pixel.PictureData is bottom-to-top; the PPU's framebuffer is
		// top-to-bottom, so flip rows on the way in.
		row := i / frameWidth
		col := i % frameWidth
		flipped := (frameHeight-1-row)*frameWidth + col
		pic.Pix[flipped] = color.RGBA{
			R: uint8(argb >> 16),
			G: uint8(argb >> 8),
			B: uint8(argb),
			A: 0xFF,
		}
	}
}

var keymap = [8]struct {
	bit uint8
	key pixelgl.Button
}{
	{controller.A, pixelgl.KeyS},
	{controller.B, pixelgl.KeyA},
	{controller.Select, pixelgl.KeyLeftShift},
	{controller.Start, pixelgl.KeyEnter},
	{controller.Up, pixelgl.KeyUp},
	{controller.Down, pixelgl.KeyDown},
	{controller.Left, pixelgl.KeyLeft},
	{controller.Right, pixelgl.KeyRight},
}

func updateControllers(win *pixelgl.Window, pad *controller.Pair) {
	var state uint8
	for _, k := range keymap {
		if win.Pressed(k.key) {
			state |= k.bit
		}
	}
	pad.SetState(0, state)
}
