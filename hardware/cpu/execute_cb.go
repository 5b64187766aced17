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

// rotShift dispatches the eight rotate/shift operations of the CB set:
// RLC, RRC, RL, RR, SLA, SRA, SLL, SRL. SLL is undocumented but fully
// functional silicon.
func (mc *CPU) rotShift(op uint8, v uint8) uint8 {
	switch op {
	case 0:
		return mc.rlc(v)
	case 1:
		return mc.rrc(v)
	case 2:
		return mc.rl(v)
	case 3:
		return mc.rr(v)
	case 4:
		return mc.sla(v)
	case 5:
		return mc.sra(v)
	case 6:
		return mc.sll(v)
	}
	return mc.srl(v)
}

// executeCB runs the CB-prefixed set. The layout is completely regular:
// the top two bits select rotate/shift, BIT, RES or SET; the middle three
// bits are the operation or bit number; the bottom three the operand.
func (mc *CPU) executeCB() {
	opcode := mc.fetchOpcode()

	x := opcode >> 6
	y := (opcode >> 3) & 0x07
	z := opcode & 0x07

	switch x {
	case 0: // rotate/shift
		if z == 6 {
			addr := mc.HL()
			v := mc.rotShift(y, mc.readByte(addr))
			mc.internal(1)
			mc.writeByte(addr, v)
		} else {
			mc.reg8setPlain(z, mc.rotShift(y, mc.reg8getPlain(z)))
		}
	case 1: // BIT y,r
		if z == 6 {
			v := mc.readByte(mc.HL())
			mc.internal(1)
			mc.bit(uint(y), v, v)
		} else {
			v := mc.reg8getPlain(z)
			mc.bit(uint(y), v, v)
		}
	case 2: // RES y,r
		if z == 6 {
			addr := mc.HL()
			v := mc.readByte(addr) &^ (1 << y)
			mc.internal(1)
			mc.writeByte(addr, v)
		} else {
			mc.reg8setPlain(z, mc.reg8getPlain(z)&^(1<<y))
		}
	case 3: // SET y,r
		if z == 6 {
			addr := mc.HL()
			v := mc.readByte(addr) | 1<<y
			mc.internal(1)
			mc.writeByte(addr, v)
		} else {
			mc.reg8setPlain(z, mc.reg8getPlain(z)|1<<y)
		}
	}
}

// executeIndexCB runs the DDCB/FDCB-prefixed set: bit manipulation on a
// displaced memory operand. The displacement byte comes before the
// sub-opcode, and the sub-opcode fetch is a plain read; the refresh
// register is not advanced for it.
//
// The undocumented forms with a register z-field (anything but 6) perform
// the memory operation and additionally copy the result into the named
// register. BIT is the exception: it has no result to copy, and every
// z-field behaves identically. The X and Y flags of the indexed BIT come
// from the high byte of the effective address, not from the operand.
func (mc *CPU) executeIndexCB() {
	d := int8(mc.fetchByte())
	addr := mc.hlPair() + uint16(int16(d))

	opcode := mc.fetchByte()
	mc.internal(2)

	x := opcode >> 6
	y := (opcode >> 3) & 0x07
	z := opcode & 0x07

	if x == 1 { // BIT y,(IX+d)
		v := mc.readByte(addr)
		mc.internal(1)
		mc.bit(uint(y), v, uint8(addr>>8))
		return
	}

	var v uint8
	switch x {
	case 0: // rotate/shift
		v = mc.rotShift(y, mc.readByte(addr))
	case 2: // RES
		v = mc.readByte(addr) &^ (1 << y)
	case 3: // SET
		v = mc.readByte(addr) | 1<<y
	}
	mc.internal(1)
	mc.writeByte(addr, v)

	if z != 6 {
		mc.reg8setPlain(z, v)
	}
}
