// Package input handles SDL2 input events and maps held keys to thrust.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a discrete event the loop reacts to.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventScreenshot
	EventOpenHeightmap
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Width  int
	Height int
}

// Controls is the set of thrust keys currently held.
type Controls struct {
	Forward, Back bool // W, S
	Right, Left   bool // D, A
	RotateCW      bool // E
	RotateCCW     bool // Q
	Up, Down      bool // Space, LShift
}

// Input handles all input processing.
type Input struct {
	events   []Event
	controls Controls
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 8),
	}
}

// Update polls SDL events and converts them to game events.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			switch e.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE:
				i.events = append(i.events, Event{Type: EventQuit})
				quit = true
			case sdl.SCANCODE_F12:
				i.events = append(i.events, Event{Type: EventScreenshot})
			case sdl.SCANCODE_O:
				i.events = append(i.events, Event{Type: EventOpenHeightmap})
			}
		}
	}

	keys := sdl.GetKeyboardState()
	i.controls = Controls{
		Forward:   keys[sdl.SCANCODE_W] != 0,
		Back:      keys[sdl.SCANCODE_S] != 0,
		Right:     keys[sdl.SCANCODE_D] != 0,
		Left:      keys[sdl.SCANCODE_A] != 0,
		RotateCW:  keys[sdl.SCANCODE_E] != 0,
		RotateCCW: keys[sdl.SCANCODE_Q] != 0,
		Up:        keys[sdl.SCANCODE_SPACE] != 0,
		Down:      keys[sdl.SCANCODE_LSHIFT] != 0,
	}

	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Controls returns the keys held at the last Update.
func (i *Input) Controls() Controls {
	return i.controls
}
