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

// Package cpu implements the Z80 as fitted to the 48K machine. One
// instruction is executed per call to Step(), which returns the number of
// T-states consumed. All documented instructions are implemented, as are
// the undocumented ones a 48K program can reasonably meet: SLL, the
// IXh/IXl/IYh/IYl register halves, the DDCB/FDCB register-copy forms, the
// NEG and RETN aliases, and IN F,(C) / OUT (C),0. The undocumented X and Y
// flag bits are maintained everywhere, which is what lets the ZEXALL
// exerciser run clean.
//
// The CPU reads and writes memory through the MemoryBus interface and
// performs I/O through the PortBus interface. Port writes carry the
// T-state at which the write happened within the executing instruction, so
// that the ULA can timestamp border and beeper changes with better than
// instruction resolution.
package cpu
