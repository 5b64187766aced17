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

import (
	"github.com/hardknott/speccy48/curated"
)

// executeED runs the ED-prefixed set. Opcodes the silicon does not define
// in this table are decode failures: meeting one means the program counter
// has wandered somewhere it shouldn't have.
func (mc *CPU) executeED() error {
	opcode := mc.fetchOpcode()

	switch opcode {
	case 0x40, 0x48, 0x50, 0x58, 0x60, 0x68, 0x78: // IN r,(C)
		v := mc.portRead(mc.BC())
		mc.inr(v)
		mc.reg8setPlain((opcode>>3)&0x07, v)
	case 0x70: // IN F,(C) - input and set flags, discard the value
		mc.inr(mc.portRead(mc.BC()))

	case 0x41, 0x49, 0x51, 0x59, 0x61, 0x69, 0x79: // OUT (C),r
		mc.portWrite(mc.BC(), mc.reg8getPlain((opcode>>3)&0x07))
	case 0x71: // OUT (C),0
		mc.portWrite(mc.BC(), 0)

	case 0x42: // SBC HL,BC
		mc.internal(7)
		mc.sbc16(mc.BC())
	case 0x52: // SBC HL,DE
		mc.internal(7)
		mc.sbc16(mc.DE())
	case 0x62: // SBC HL,HL
		mc.internal(7)
		mc.sbc16(mc.HL())
	case 0x72: // SBC HL,SP
		mc.internal(7)
		mc.sbc16(mc.SP)

	case 0x4a: // ADC HL,BC
		mc.internal(7)
		mc.adc16(mc.BC())
	case 0x5a: // ADC HL,DE
		mc.internal(7)
		mc.adc16(mc.DE())
	case 0x6a: // ADC HL,HL
		mc.internal(7)
		mc.adc16(mc.HL())
	case 0x7a: // ADC HL,SP
		mc.internal(7)
		mc.adc16(mc.SP)

	case 0x43: // LD (nn),BC
		mc.writeWord(mc.fetchWord(), mc.BC())
	case 0x53: // LD (nn),DE
		mc.writeWord(mc.fetchWord(), mc.DE())
	case 0x63: // LD (nn),HL
		mc.writeWord(mc.fetchWord(), mc.HL())
	case 0x73: // LD (nn),SP
		mc.writeWord(mc.fetchWord(), mc.SP)

	case 0x4b: // LD BC,(nn)
		mc.SetBC(mc.readWord(mc.fetchWord()))
	case 0x5b: // LD DE,(nn)
		mc.SetDE(mc.readWord(mc.fetchWord()))
	case 0x6b: // LD HL,(nn)
		mc.SetHL(mc.readWord(mc.fetchWord()))
	case 0x7b: // LD SP,(nn)
		mc.SP = mc.readWord(mc.fetchWord())

	case 0x44, 0x4c, 0x54, 0x5c, 0x64, 0x6c, 0x74, 0x7c: // NEG (and aliases)
		v := mc.A
		mc.A = 0
		mc.sub8(v, false)

	case 0x45, 0x55, 0x5d, 0x65, 0x6d, 0x75, 0x7d: // RETN (and aliases)
		mc.IFF1 = mc.IFF2
		mc.PC = mc.pop()
	case 0x4d: // RETI
		// identical to RETN on this hardware: the 48K machine has no
		// peripheral that watches for the RETI opcode sequence
		mc.IFF1 = mc.IFF2
		mc.PC = mc.pop()

	case 0x46, 0x4e, 0x66, 0x6e: // IM 0
		mc.IM = 0
	case 0x56, 0x76: // IM 1
		mc.IM = 1
	case 0x5e, 0x7e: // IM 2
		mc.IM = 2

	case 0x47: // LD I,A
		mc.internal(1)
		mc.I = mc.A
	case 0x4f: // LD R,A
		mc.internal(1)
		mc.R = mc.A
	case 0x57: // LD A,I
		mc.internal(1)
		mc.A = mc.I
		mc.ldAIR()
	case 0x5f: // LD A,R
		mc.internal(1)
		mc.A = mc.R
		mc.ldAIR()

	case 0x67: // RRD
		addr := mc.HL()
		v := mc.readByte(addr)
		mc.internal(4)
		mc.writeByte(addr, v>>4|mc.A<<4)
		mc.A = mc.A&0xf0 | v&0x0f
		mc.F = szxy(mc.A) | parity[mc.A] | mc.F&FlagC
	case 0x6f: // RLD
		addr := mc.HL()
		v := mc.readByte(addr)
		mc.internal(4)
		mc.writeByte(addr, v<<4|mc.A&0x0f)
		mc.A = mc.A&0xf0 | v>>4
		mc.F = szxy(mc.A) | parity[mc.A] | mc.F&FlagC

	case 0xa0: // LDI
		mc.blockLD(1, false)
	case 0xa8: // LDD
		mc.blockLD(-1, false)
	case 0xb0: // LDIR
		mc.blockLD(1, true)
	case 0xb8: // LDDR
		mc.blockLD(-1, true)

	case 0xa1: // CPI
		mc.blockCP(1, false)
	case 0xa9: // CPD
		mc.blockCP(-1, false)
	case 0xb1: // CPIR
		mc.blockCP(1, true)
	case 0xb9: // CPDR
		mc.blockCP(-1, true)

	case 0xa2: // INI
		mc.blockIN(1, false)
	case 0xaa: // IND
		mc.blockIN(-1, false)
	case 0xb2: // INIR
		mc.blockIN(1, true)
	case 0xba: // INDR
		mc.blockIN(-1, true)

	case 0xa3: // OUTI
		mc.blockOUT(1, false)
	case 0xab: // OUTD
		mc.blockOUT(-1, false)
	case 0xb3: // OTIR
		mc.blockOUT(1, true)
	case 0xbb: // OTDR
		mc.blockOUT(-1, true)

	default:
		return curated.Errorf(UnknownOpcode, "ed", opcode, mc.PC-2)
	}

	return nil
}

// ldAIR sets the flags common to LD A,I and LD A,R. P/V reports the state
// of IFF2, which is how a program can discover whether interrupts were
// enabled.
func (mc *CPU) ldAIR() {
	f := szxy(mc.A) | mc.F&FlagC
	if mc.IFF2 {
		f |= FlagPV
	}
	mc.F = f
}

// blockLD implements LDI/LDD and their repeating forms. The undocumented X
// and Y flags come from bits 3 and 1 of A plus the transferred byte - note
// bit 1, not bit 5, feeding Y.
func (mc *CPU) blockLD(dir int, repeat bool) {
	hl := mc.HL()
	de := mc.DE()
	v := mc.readByte(hl)
	mc.writeByte(de, v)
	mc.internal(2)

	mc.SetHL(hl + uint16(dir))
	mc.SetDE(de + uint16(dir))
	bc := mc.BC() - 1
	mc.SetBC(bc)

	n := mc.A + v
	f := mc.F & (FlagS | FlagZ | FlagC)
	f |= n & FlagX
	if n&0x02 != 0 {
		f |= FlagY
	}
	if bc != 0 {
		f |= FlagPV
	}
	mc.F = f

	if repeat && bc != 0 {
		mc.internal(5)
		mc.PC -= 2
	}
}

// blockCP implements CPI/CPD and their repeating forms. X and Y come from
// A - (HL) - H, computed after the borrow flag has been updated.
func (mc *CPU) blockCP(dir int, repeat bool) {
	hl := mc.HL()
	v := mc.readByte(hl)
	mc.internal(5)

	r := mc.A - v
	halfBorrow := mc.A&0x0f < v&0x0f

	mc.SetHL(hl + uint16(dir))
	bc := mc.BC() - 1
	mc.SetBC(bc)

	f := FlagN | mc.F&FlagC | r&FlagS
	if r == 0 {
		f |= FlagZ
	}
	n := r
	if halfBorrow {
		f |= FlagH
		n--
	}
	f |= n & FlagX
	if n&0x02 != 0 {
		f |= FlagY
	}
	if bc != 0 {
		f |= FlagPV
	}
	mc.F = f

	if repeat && bc != 0 && r != 0 {
		mc.internal(5)
		mc.PC -= 2
	}
}

// blockIN implements INI/IND and their repeating forms, including the
// undocumented flag behaviour derived from the transferred value and the
// port address.
func (mc *CPU) blockIN(dir int, repeat bool) {
	mc.internal(1)
	v := mc.portRead(mc.BC())
	hl := mc.HL()
	mc.writeByte(hl, v)

	mc.B--
	c := mc.C + uint8(dir)
	mc.SetHL(hl + uint16(dir))

	mc.F = mc.blockIOFlags(v, uint16(v)+uint16(c))

	if repeat && mc.B != 0 {
		mc.internal(5)
		mc.PC -= 2
	}
}

// blockOUT implements OUTI/OUTD and their repeating forms.
func (mc *CPU) blockOUT(dir int, repeat bool) {
	mc.internal(1)
	hl := mc.HL()
	v := mc.readByte(hl)

	mc.B--
	mc.SetHL(hl + uint16(dir))
	mc.portWrite(mc.BC(), v)

	mc.F = mc.blockIOFlags(v, uint16(v)+uint16(mc.L))

	if repeat && mc.B != 0 {
		mc.internal(5)
		mc.PC -= 2
	}
}

// blockIOFlags computes the flag register after a block I/O step. S, Z, X
// and Y come from the decremented B; N is bit 7 of the transferred value;
// H and C are set together from the carry of the k sum; P/V is the parity
// of (k & 7) xor B.
func (mc *CPU) blockIOFlags(v uint8, k uint16) uint8 {
	f := szxy(mc.B)
	if v&0x80 != 0 {
		f |= FlagN
	}
	if k > 0xff {
		f |= FlagH | FlagC
	}
	f = f&^FlagPV | parity[uint8(k)&0x07^mc.B]
	return f
}
