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

// Package ula implements the I/O side of the ULA: the port 0xFE register
// that carries the border colour, the beeper and MIC output bits, and on
// reads the keyboard half-rows and the EAR input.
//
// Writes are not applied immediately. They are queued with the T-state at
// which the OUT happened - mid-instruction, as reported by the CPU's time
// cursor - and applied in order when the main loop calls ProcessEvents()
// after the instruction has completed. Tight beeper loops depend on these
// timestamps being better than instruction-granular.
package ula

import (
	"github.com/hardknott/speccy48/hardware/keyboard"
)

// QueueLen is the capacity of the write-event FIFO. A single instruction
// can produce at most a handful of writes (OTIR being the pathological
// case) so the queue drains every instruction in practice.
const QueueLen = 64

// WriteEvent is a single queued write to port 0xFE.
type WriteEvent struct {
	Value  uint8
	TState uint64
}

// BeeperOut receives speaker level transitions. Implemented by the beeper
// pipeline.
type BeeperOut interface {
	Push(tstate uint64, level uint8)
}

// MICOut receives MIC line levels, one per port write. Implemented by the
// tape recorder; level de-duplication happens there.
type MICOut interface {
	Mic(tstate uint64, level uint8)
}

// EARIn supplies the EAR input bit. Implemented by the tape deck. Driving
// reports whether anything is connected and playing; when false the line
// floats high.
type EARIn interface {
	EARBit() (level bool, driving bool)
}

// ULA is the I/O model of the chip.
type ULA struct {
	kb     *keyboard.Matrix
	beeper BeeperOut
	mic    MICOut
	ear    EARIn

	queue [QueueLen]WriteEvent
	head  int
	used  int

	// timestamp of the most recently queued event, for the monotonic clamp
	lastT uint64

	// BorderColour is the current border colour index (0..7). The
	// presentation layer reads it when painting the frame.
	BorderColour uint8

	// current speaker level, bit 4 of the last processed write
	beeperLevel uint8
}

// NewULA is the preferred method of initialisation for the ULA type.
func NewULA(kb *keyboard.Matrix) *ULA {
	return &ULA{kb: kb}
}

// Attach connects the ULA's event consumers. Any of the arguments may be
// nil, in which case the corresponding events are discarded (or, for the
// EAR, read as a floating line).
func (u *ULA) Attach(beeper BeeperOut, mic MICOut, ear EARIn) {
	u.beeper = beeper
	u.mic = mic
	u.ear = ear
}

// Write queues a write to port 0xFE. Timestamps are clamped forward so the
// queue never goes backwards in time; on overflow the oldest event is
// dropped.
func (u *ULA) Write(value uint8, tstate uint64) {
	if tstate < u.lastT {
		tstate = u.lastT
	}
	u.lastT = tstate

	if u.used == QueueLen {
		u.head = (u.head + 1) % QueueLen
		u.used--
	}
	u.queue[(u.head+u.used)%QueueLen] = WriteEvent{Value: value, TState: tstate}
	u.used++
}

// ProcessEvents applies every queued write in order: border colour, beeper
// transitions and MIC forwarding. Called by the main loop after each
// instruction.
func (u *ULA) ProcessEvents() {
	for u.used > 0 {
		ev := u.queue[u.head]
		u.head = (u.head + 1) % QueueLen
		u.used--

		u.BorderColour = ev.Value & 0x07

		if b := ev.Value >> 4 & 0x01; b != u.beeperLevel {
			u.beeperLevel = b
			if u.beeper != nil {
				u.beeper.Push(ev.TState, b)
			}
		}

		if u.mic != nil {
			u.mic.Mic(ev.TState, ev.Value>>3&0x01)
		}
	}
}

// Queued returns the number of events waiting to be processed.
func (u *ULA) Queued() int {
	return u.used
}

// Read samples the keyboard half-rows selected by the high byte of the
// port address and merges in the EAR bit. Bits 5 and 7 are unused and read
// high.
func (u *ULA) Read(highByte uint8) uint8 {
	v := u.kb.ReadRows(highByte) | 0xa0

	ear := true
	if u.ear != nil {
		if level, driving := u.ear.EARBit(); driving {
			ear = level
		}
	}
	if ear {
		v |= 0x40
	}

	return v
}
