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

// Package clocks defines the timing constants of the 48K machine. Every
// timestamp in the emulation is a count of T-states: ticks of the 3.5MHz
// CPU clock.
package clocks

// CPUClock is the Z80 clock of the 48K machine in T-states per second.
const CPUClock = 3500000

// TStatesPerFrame is the number of T-states between two ULA frame
// interrupts. Dividing the CPU clock by this value gives the (approximate)
// 50Hz frame rate of the machine.
const TStatesPerFrame = 69888

// FramesPerSecond is the nominal frame/interrupt rate.
const FramesPerSecond = 50
