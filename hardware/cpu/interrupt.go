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

package cpu

// Interrupt accepts a maskable interrupt. The bus argument is the byte the
// interrupting device places on the data bus during the acknowledge cycle;
// on the 48K machine nothing drives the bus so it reads 0xff. Returns the
// number of T-states consumed, which is zero when interrupts are masked.
func (mc *CPU) Interrupt(bus uint8) int {
	if !mc.IFF1 {
		return 0
	}

	// a halted CPU resumes at the instruction after the HALT
	if mc.Halted {
		mc.Halted = false
		mc.PC++
	}

	mc.IFF1 = false
	mc.IFF2 = false
	mc.incR()

	mc.t = 0
	mc.push(mc.PC)

	switch mc.IM {
	case 2:
		// the device byte and the I register form a pointer into the
		// vector table
		vector := uint16(mc.I)<<8 | uint16(bus)
		mc.PC = mc.readWord(vector)
		return 19
	default:
		// IM 0 behaves as IM 1 with nothing driving the bus: 0xff is RST 38
		mc.PC = 0x0038
		return 13
	}
}

// NMI accepts the non-maskable interrupt. IFF2 keeps the pre-interrupt
// state of IFF1 so that RETN can restore it.
func (mc *CPU) NMI() int {
	if mc.Halted {
		mc.Halted = false
		mc.PC++
	}

	mc.IFF1 = false
	mc.incR()

	mc.t = 0
	mc.push(mc.PC)
	mc.PC = 0x0066

	return 11
}
