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

// Package hardware assembles the 48K machine: CPU, memory, ULA, keyboard,
// beeper and the tape subsystem, all owned by the Speccy type. Nothing in
// the emulation is package-level state; tests build as many machines as
// they like.
package hardware

import (
	"github.com/hardknott/speccy48/beeper"
	"github.com/hardknott/speccy48/hardware/clocks"
	"github.com/hardknott/speccy48/hardware/cpu"
	"github.com/hardknott/speccy48/hardware/keyboard"
	"github.com/hardknott/speccy48/hardware/memory"
	"github.com/hardknott/speccy48/hardware/ports"
	"github.com/hardknott/speccy48/hardware/ula"
	"github.com/hardknott/speccy48/tape"
)

// Speccy is the 48K machine.
type Speccy struct {
	CPU      *cpu.CPU
	Mem      *memory.Memory
	Keyboard *keyboard.Matrix
	ULA      *ula.ULA
	Ports    *ports.Ports
	Beeper   *beeper.Beeper

	// the tape deck and recorder are optional
	Deck     tape.Player
	Recorder *tape.Recorder

	// ThrottleEnabled allows the run loop to sleep on beeper latency. Set
	// when an audio device is actually consuming samples; without one the
	// latency figure only ever grows and throttling would stall the
	// emulation
	ThrottleEnabled bool

	// TStates is the master clock: the number of T-states since power on.
	// Every timestamped event in the emulation is ordered against it.
	TStates uint64

	// T-states accumulated towards the next frame interrupt
	frameT int
}

// NewSpeccy creates a 48K machine with the given ROM image loaded. The
// beeper argument may be nil when no audio is wanted; the core still
// tracks speaker state through the ULA either way.
func NewSpeccy(rom []byte, bpr *beeper.Beeper) (*Speccy, error) {
	spc := &Speccy{
		Mem:      memory.NewMemory(),
		Keyboard: keyboard.NewMatrix(),
		Beeper:   bpr,
	}

	if err := spc.Mem.LoadROM(rom); err != nil {
		return nil, err
	}

	spc.ULA = ula.NewULA(spc.Keyboard)
	spc.Ports = ports.NewPorts(spc.ULA)
	spc.CPU = cpu.NewCPU(spc.Mem, spc.Ports)

	spc.attach()

	return spc, nil
}

// attach wires the ULA's event consumers from whatever is currently
// connected.
func (spc *Speccy) attach() {
	var b ula.BeeperOut
	if spc.Beeper != nil {
		b = spc.Beeper
	}

	var m ula.MICOut
	if spc.Recorder != nil {
		m = spc.Recorder
	}

	var e ula.EARIn
	if spc.Deck != nil {
		e = spc.Deck
	}

	spc.ULA.Attach(b, m, e)
}

// AttachTape connects a tape player to the EAR line.
func (spc *Speccy) AttachTape(p tape.Player) {
	spc.Deck = p
	spc.attach()
}

// AttachRecorder connects a recorder to the MIC line.
func (spc *Speccy) AttachRecorder(r *tape.Recorder) {
	spc.Recorder = r
	spc.attach()
}

// Reset returns the machine to its power-on state. The ROM survives; the
// tape stays where it is.
func (spc *Speccy) Reset() {
	spc.CPU.Reset()
	spc.Mem.Reset()
	spc.Keyboard.Reset()
}

// Step executes one instruction and everything that hangs off it: ULA
// write events, tape movement, recorder idle detection and the frame
// interrupt. Returns true when a frame boundary was crossed, which is the
// cue to render.
func (spc *Speccy) Step() (bool, error) {
	t, err := spc.CPU.Step(spc.TStates)
	if err != nil {
		return false, err
	}
	spc.TStates += uint64(t)

	spc.ULA.ProcessEvents()

	if spc.Deck != nil {
		spc.Deck.Update(spc.TStates)
	}
	if spc.Recorder != nil {
		spc.Recorder.Update(spc.TStates, false)
	}

	spc.frameT += t
	if spc.frameT >= clocks.TStatesPerFrame {
		spc.frameT -= clocks.TStatesPerFrame

		// Interrupt is a no-op (and returns zero) when interrupts are
		// masked; the frame still happens
		it := spc.CPU.Interrupt(0xff)
		spc.TStates += uint64(it)
		spc.frameT += it

		return true, nil
	}

	return false, nil
}
