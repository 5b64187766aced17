// This file is part of Speccy48.
//
// Speccy48 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Speccy48 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Speccy48.  If not, see <https://www.gnu.org/licenses/>.

package sdl

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/hardknott/speccy48/hardware/keyboard"
)

// Control is a host-level request raised by the function keys.
type Control int

// List of controls.
const (
	CtrlQuit Control = iota
	CtrlTapePlayPause
	CtrlTapeRewind
	CtrlRecord
	CtrlRecordAppend
)

// scancode to matrix key translation. modifier keys map onto the two
// Spectrum shifts: left shift is CAPS SHIFT, right control is SYMBOL
// SHIFT, which is roughly where they sit on the original keyboard.
var keyMap = map[sdl.Scancode]keyboard.Key{
	sdl.SCANCODE_1: keyboard.Key1,
	sdl.SCANCODE_2: keyboard.Key2,
	sdl.SCANCODE_3: keyboard.Key3,
	sdl.SCANCODE_4: keyboard.Key4,
	sdl.SCANCODE_5: keyboard.Key5,
	sdl.SCANCODE_6: keyboard.Key6,
	sdl.SCANCODE_7: keyboard.Key7,
	sdl.SCANCODE_8: keyboard.Key8,
	sdl.SCANCODE_9: keyboard.Key9,
	sdl.SCANCODE_0: keyboard.Key0,

	sdl.SCANCODE_Q: keyboard.KeyQ,
	sdl.SCANCODE_W: keyboard.KeyW,
	sdl.SCANCODE_E: keyboard.KeyE,
	sdl.SCANCODE_R: keyboard.KeyR,
	sdl.SCANCODE_T: keyboard.KeyT,
	sdl.SCANCODE_Y: keyboard.KeyY,
	sdl.SCANCODE_U: keyboard.KeyU,
	sdl.SCANCODE_I: keyboard.KeyI,
	sdl.SCANCODE_O: keyboard.KeyO,
	sdl.SCANCODE_P: keyboard.KeyP,

	sdl.SCANCODE_A: keyboard.KeyA,
	sdl.SCANCODE_S: keyboard.KeyS,
	sdl.SCANCODE_D: keyboard.KeyD,
	sdl.SCANCODE_F: keyboard.KeyF,
	sdl.SCANCODE_G: keyboard.KeyG,
	sdl.SCANCODE_H: keyboard.KeyH,
	sdl.SCANCODE_J: keyboard.KeyJ,
	sdl.SCANCODE_K: keyboard.KeyK,
	sdl.SCANCODE_L: keyboard.KeyL,

	sdl.SCANCODE_Z: keyboard.KeyZ,
	sdl.SCANCODE_X: keyboard.KeyX,
	sdl.SCANCODE_C: keyboard.KeyC,
	sdl.SCANCODE_V: keyboard.KeyV,
	sdl.SCANCODE_B: keyboard.KeyB,
	sdl.SCANCODE_N: keyboard.KeyN,
	sdl.SCANCODE_M: keyboard.KeyM,

	sdl.SCANCODE_RETURN: keyboard.KeyEnter,
	sdl.SCANCODE_SPACE:  keyboard.KeySpace,
	sdl.SCANCODE_LSHIFT: keyboard.KeyCapsShift,
	sdl.SCANCODE_RSHIFT: keyboard.KeyCapsShift,
	sdl.SCANCODE_RCTRL:  keyboard.KeySymbolShift,
	sdl.SCANCODE_LCTRL:  keyboard.KeySymbolShift,

	// conveniences for keys the Spectrum spells with a shift
	sdl.SCANCODE_BACKSPACE: keyboard.Key0, // with CAPS SHIFT below
}

// Input polls the host keyboard and routes it to the key matrix.
type Input struct {
	kb *keyboard.Matrix

	// OnControl receives host-level requests. May be nil.
	OnControl func(Control)
}

// NewInput is the preferred method of initialisation for the Input type.
func NewInput(kb *keyboard.Matrix) *Input {
	return &Input{kb: kb}
}

// Service drains the SDL event queue. Call once per frame on the main
// thread.
func (inp *Input) Service() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			inp.control(CtrlQuit)

		case *sdl.KeyboardEvent:
			down := ev.Type == sdl.KEYDOWN

			if down && ev.Repeat == 0 {
				shifted := ev.Keysym.Mod&sdl.KMOD_SHIFT != 0
				switch ev.Keysym.Scancode {
				case sdl.SCANCODE_ESCAPE:
					inp.control(CtrlQuit)
					continue
				case sdl.SCANCODE_F5:
					inp.control(CtrlTapePlayPause)
					continue
				case sdl.SCANCODE_F6:
					inp.control(CtrlTapeRewind)
					continue
				case sdl.SCANCODE_F7:
					if shifted {
						inp.control(CtrlRecordAppend)
					} else {
						inp.control(CtrlRecord)
					}
					continue
				}
			}

			key, ok := keyMap[ev.Keysym.Scancode]
			if !ok {
				continue
			}

			// backspace is CAPS SHIFT + 0
			if ev.Keysym.Scancode == sdl.SCANCODE_BACKSPACE {
				if down {
					inp.kb.KeyDown(keyboard.KeyCapsShift)
				} else {
					inp.kb.KeyUp(keyboard.KeyCapsShift)
				}
			}

			if down {
				inp.kb.KeyDown(key)
			} else {
				inp.kb.KeyUp(key)
			}
		}
	}
}

func (inp *Input) control(c Control) {
	if inp.OnControl != nil {
		inp.OnControl(c)
	}
}
