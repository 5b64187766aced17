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

// register field helpers. a three-bit register field selects B, C, D, E, H,
// L, (HL) or A in that order. when a DD or FD prefix is active, H and L
// become the halves of the index register and (HL) becomes (IX+d)/(IY+d) -
// but not in the same instruction as a displaced memory access, where the
// named register is the real one. the "plain" variants implement the latter
// rule.

func (mc *CPU) reg8get(code uint8) uint8 {
	switch code {
	case 0:
		return mc.B
	case 1:
		return mc.C
	case 2:
		return mc.D
	case 3:
		return mc.E
	case 4:
		switch mc.index {
		case useIX:
			return uint8(mc.IX >> 8)
		case useIY:
			return uint8(mc.IY >> 8)
		}
		return mc.H
	case 5:
		switch mc.index {
		case useIX:
			return uint8(mc.IX)
		case useIY:
			return uint8(mc.IY)
		}
		return mc.L
	}
	return mc.A
}

func (mc *CPU) reg8set(code uint8, v uint8) {
	switch code {
	case 0:
		mc.B = v
	case 1:
		mc.C = v
	case 2:
		mc.D = v
	case 3:
		mc.E = v
	case 4:
		switch mc.index {
		case useIX:
			mc.IX = mc.IX&0x00ff | uint16(v)<<8
		case useIY:
			mc.IY = mc.IY&0x00ff | uint16(v)<<8
		default:
			mc.H = v
		}
	case 5:
		switch mc.index {
		case useIX:
			mc.IX = mc.IX&0xff00 | uint16(v)
		case useIY:
			mc.IY = mc.IY&0xff00 | uint16(v)
		default:
			mc.L = v
		}
	case 7:
		mc.A = v
	}
}

func (mc *CPU) reg8getPlain(code uint8) uint8 {
	switch code {
	case 0:
		return mc.B
	case 1:
		return mc.C
	case 2:
		return mc.D
	case 3:
		return mc.E
	case 4:
		return mc.H
	case 5:
		return mc.L
	}
	return mc.A
}

func (mc *CPU) reg8setPlain(code uint8, v uint8) {
	switch code {
	case 0:
		mc.B = v
	case 1:
		mc.C = v
	case 2:
		mc.D = v
	case 3:
		mc.E = v
	case 4:
		mc.H = v
	case 5:
		mc.L = v
	case 7:
		mc.A = v
	}
}

// hlPair reads the HL pair, or the index register when a prefix is active.
func (mc *CPU) hlPair() uint16 {
	switch mc.index {
	case useIX:
		return mc.IX
	case useIY:
		return mc.IY
	}
	return mc.HL()
}

func (mc *CPU) setHLPair(v uint16) {
	switch mc.index {
	case useIX:
		mc.IX = v
	case useIY:
		mc.IY = v
	default:
		mc.SetHL(v)
	}
}

// memOperandAddr resolves the address of a (HL) operand, or of a
// (IX+d)/(IY+d) operand when a prefix is active. The displacement is
// fetched at most once per instruction; the five T-state surcharge is the
// address calculation.
func (mc *CPU) memOperandAddr() uint16 {
	if mc.index == noIndex {
		return mc.HL()
	}
	if !mc.indexAddrValid {
		d := int8(mc.fetchByte())
		mc.internal(5)
		mc.indexAddr = mc.hlPair() + uint16(int16(d))
		mc.indexAddrValid = true
	}
	return mc.indexAddr
}

// condition decodes the three-bit condition field of conditional jumps,
// calls and returns: NZ, Z, NC, C, PO, PE, P, M.
func (mc *CPU) condition(code uint8) bool {
	switch code {
	case 0:
		return mc.F&FlagZ == 0
	case 1:
		return mc.F&FlagZ != 0
	case 2:
		return mc.F&FlagC == 0
	case 3:
		return mc.F&FlagC != 0
	case 4:
		return mc.F&FlagPV == 0
	case 5:
		return mc.F&FlagPV != 0
	case 6:
		return mc.F&FlagS == 0
	}
	return mc.F&FlagS != 0
}

// execute runs a single opcode from the main table. The opcode fetch (and
// any prefix fetches) have already been paid for.
func (mc *CPU) execute(opcode uint8) {
	// the LD r,r' quarter of the opcode space, minus HALT
	if opcode >= 0x40 && opcode <= 0x7f && opcode != 0x76 {
		y := (opcode >> 3) & 0x07
		z := opcode & 0x07
		switch {
		case y == 6:
			mc.writeByte(mc.memOperandAddr(), mc.reg8getPlain(z))
		case z == 6:
			mc.reg8setPlain(y, mc.readByte(mc.memOperandAddr()))
		default:
			mc.reg8set(y, mc.reg8get(z))
		}
		return
	}

	// the arithmetic/logic quarter
	if opcode >= 0x80 && opcode <= 0xbf {
		var v uint8
		if opcode&0x07 == 6 {
			v = mc.readByte(mc.memOperandAddr())
		} else {
			v = mc.reg8get(opcode & 0x07)
		}
		mc.alu((opcode>>3)&0x07, v)
		return
	}

	switch opcode {
	case 0x00: // NOP

	case 0x01: // LD BC,nn
		mc.SetBC(mc.fetchWord())
	case 0x02: // LD (BC),A
		mc.writeByte(mc.BC(), mc.A)
	case 0x03: // INC BC
		mc.internal(2)
		mc.SetBC(mc.BC() + 1)
	case 0x04: // INC B
		mc.B = mc.inc8(mc.B)
	case 0x05: // DEC B
		mc.B = mc.dec8(mc.B)
	case 0x06: // LD B,n
		mc.B = mc.fetchByte()
	case 0x07: // RLCA
		c := mc.A >> 7
		mc.A = mc.A<<1 | c
		mc.F = mc.F&(FlagS|FlagZ|FlagPV) | mc.A&(FlagX|FlagY) | c&FlagC
	case 0x08: // EX AF,AF'
		mc.A, mc.AltA = mc.AltA, mc.A
		mc.F, mc.AltF = mc.AltF, mc.F
	case 0x09: // ADD HL,BC
		mc.internal(7)
		mc.setHLPair(mc.add16(mc.hlPair(), mc.BC()))
	case 0x0a: // LD A,(BC)
		mc.A = mc.readByte(mc.BC())
	case 0x0b: // DEC BC
		mc.internal(2)
		mc.SetBC(mc.BC() - 1)
	case 0x0c: // INC C
		mc.C = mc.inc8(mc.C)
	case 0x0d: // DEC C
		mc.C = mc.dec8(mc.C)
	case 0x0e: // LD C,n
		mc.C = mc.fetchByte()
	case 0x0f: // RRCA
		c := mc.A & FlagC
		mc.A = mc.A>>1 | c<<7
		mc.F = mc.F&(FlagS|FlagZ|FlagPV) | mc.A&(FlagX|FlagY) | c

	case 0x10: // DJNZ d
		mc.internal(1)
		d := int8(mc.fetchByte())
		mc.B--
		if mc.B != 0 {
			mc.internal(5)
			mc.PC += uint16(int16(d))
		}
	case 0x11: // LD DE,nn
		mc.SetDE(mc.fetchWord())
	case 0x12: // LD (DE),A
		mc.writeByte(mc.DE(), mc.A)
	case 0x13: // INC DE
		mc.internal(2)
		mc.SetDE(mc.DE() + 1)
	case 0x14: // INC D
		mc.D = mc.inc8(mc.D)
	case 0x15: // DEC D
		mc.D = mc.dec8(mc.D)
	case 0x16: // LD D,n
		mc.D = mc.fetchByte()
	case 0x17: // RLA
		c := mc.A >> 7
		mc.A = mc.A<<1 | mc.F&FlagC
		mc.F = mc.F&(FlagS|FlagZ|FlagPV) | mc.A&(FlagX|FlagY) | c&FlagC
	case 0x18: // JR d
		d := int8(mc.fetchByte())
		mc.internal(5)
		mc.PC += uint16(int16(d))
	case 0x19: // ADD HL,DE
		mc.internal(7)
		mc.setHLPair(mc.add16(mc.hlPair(), mc.DE()))
	case 0x1a: // LD A,(DE)
		mc.A = mc.readByte(mc.DE())
	case 0x1b: // DEC DE
		mc.internal(2)
		mc.SetDE(mc.DE() - 1)
	case 0x1c: // INC E
		mc.E = mc.inc8(mc.E)
	case 0x1d: // DEC E
		mc.E = mc.dec8(mc.E)
	case 0x1e: // LD E,n
		mc.E = mc.fetchByte()
	case 0x1f: // RRA
		c := mc.A & FlagC
		mc.A = mc.A>>1 | mc.F<<7
		mc.F = mc.F&(FlagS|FlagZ|FlagPV) | mc.A&(FlagX|FlagY) | c

	case 0x20, 0x28, 0x30, 0x38: // JR cc,d
		d := int8(mc.fetchByte())
		if mc.condition((opcode >> 3) & 0x03) {
			mc.internal(5)
			mc.PC += uint16(int16(d))
		}
	case 0x21: // LD HL,nn
		mc.setHLPair(mc.fetchWord())
	case 0x22: // LD (nn),HL
		mc.writeWord(mc.fetchWord(), mc.hlPair())
	case 0x23: // INC HL
		mc.internal(2)
		mc.setHLPair(mc.hlPair() + 1)
	case 0x24: // INC H
		mc.reg8set(4, mc.inc8(mc.reg8get(4)))
	case 0x25: // DEC H
		mc.reg8set(4, mc.dec8(mc.reg8get(4)))
	case 0x26: // LD H,n
		mc.reg8set(4, mc.fetchByte())
	case 0x27: // DAA
		mc.daa()
	case 0x29: // ADD HL,HL
		mc.internal(7)
		hl := mc.hlPair()
		mc.setHLPair(mc.add16(hl, hl))
	case 0x2a: // LD HL,(nn)
		mc.setHLPair(mc.readWord(mc.fetchWord()))
	case 0x2b: // DEC HL
		mc.internal(2)
		mc.setHLPair(mc.hlPair() - 1)
	case 0x2c: // INC L
		mc.reg8set(5, mc.inc8(mc.reg8get(5)))
	case 0x2d: // DEC L
		mc.reg8set(5, mc.dec8(mc.reg8get(5)))
	case 0x2e: // LD L,n
		mc.reg8set(5, mc.fetchByte())
	case 0x2f: // CPL
		mc.A = ^mc.A
		mc.F = mc.F&(FlagS|FlagZ|FlagPV|FlagC) | FlagH | FlagN | mc.A&(FlagX|FlagY)

	case 0x31: // LD SP,nn
		mc.SP = mc.fetchWord()
	case 0x32: // LD (nn),A
		mc.writeByte(mc.fetchWord(), mc.A)
	case 0x33: // INC SP
		mc.internal(2)
		mc.SP++
	case 0x34: // INC (HL)
		addr := mc.memOperandAddr()
		v := mc.inc8(mc.readByte(addr))
		mc.internal(1)
		mc.writeByte(addr, v)
	case 0x35: // DEC (HL)
		addr := mc.memOperandAddr()
		v := mc.dec8(mc.readByte(addr))
		mc.internal(1)
		mc.writeByte(addr, v)
	case 0x36: // LD (HL),n
		if mc.index == noIndex {
			addr := mc.HL()
			mc.writeByte(addr, mc.fetchByte())
		} else {
			// the displacement is fetched before the operand byte and the
			// address calculation overlaps the operand fetch
			d := int8(mc.fetchByte())
			addr := mc.hlPair() + uint16(int16(d))
			n := mc.fetchByte()
			mc.internal(2)
			mc.writeByte(addr, n)
		}
	case 0x39: // ADD HL,SP
		mc.internal(7)
		mc.setHLPair(mc.add16(mc.hlPair(), mc.SP))
	case 0x37: // SCF
		mc.F = mc.F&(FlagS|FlagZ|FlagPV) | FlagC | mc.A&(FlagX|FlagY)
	case 0x3a: // LD A,(nn)
		mc.A = mc.readByte(mc.fetchWord())
	case 0x3b: // DEC SP
		mc.internal(2)
		mc.SP--
	case 0x3c: // INC A
		mc.A = mc.inc8(mc.A)
	case 0x3d: // DEC A
		mc.A = mc.dec8(mc.A)
	case 0x3e: // LD A,n
		mc.A = mc.fetchByte()
	case 0x3f: // CCF
		c := mc.F & FlagC
		mc.F = mc.F&(FlagS|FlagZ|FlagPV) | c<<4 | (c^FlagC)&FlagC | mc.A&(FlagX|FlagY)

	case 0x76: // HALT
		mc.Halted = true
		mc.PC--

	case 0xc0, 0xc8, 0xd0, 0xd8, 0xe0, 0xe8, 0xf0, 0xf8: // RET cc
		mc.internal(1)
		if mc.condition((opcode >> 3) & 0x07) {
			mc.PC = mc.pop()
		}
	case 0xc1: // POP BC
		mc.SetBC(mc.pop())
	case 0xc2, 0xca, 0xd2, 0xda, 0xe2, 0xea, 0xf2, 0xfa: // JP cc,nn
		nn := mc.fetchWord()
		if mc.condition((opcode >> 3) & 0x07) {
			mc.PC = nn
		}
	case 0xc3: // JP nn
		mc.PC = mc.fetchWord()
	case 0xc4, 0xcc, 0xd4, 0xdc, 0xe4, 0xec, 0xf4, 0xfc: // CALL cc,nn
		nn := mc.fetchWord()
		if mc.condition((opcode >> 3) & 0x07) {
			mc.internal(1)
			mc.push(mc.PC)
			mc.PC = nn
		}
	case 0xc5: // PUSH BC
		mc.internal(1)
		mc.push(mc.BC())
	case 0xc6: // ADD A,n
		mc.add8(mc.fetchByte(), false)
	case 0xc7, 0xcf, 0xd7, 0xdf, 0xe7, 0xef, 0xf7, 0xff: // RST p
		mc.internal(1)
		mc.push(mc.PC)
		mc.PC = uint16(opcode & 0x38)
	case 0xc9: // RET
		mc.PC = mc.pop()
	case 0xcd: // CALL nn
		nn := mc.fetchWord()
		mc.internal(1)
		mc.push(mc.PC)
		mc.PC = nn
	case 0xce: // ADC A,n
		mc.add8(mc.fetchByte(), mc.F&FlagC != 0)

	case 0xd1: // POP DE
		mc.SetDE(mc.pop())
	case 0xd3: // OUT (n),A
		n := mc.fetchByte()
		mc.portWrite(uint16(mc.A)<<8|uint16(n), mc.A)
	case 0xd5: // PUSH DE
		mc.internal(1)
		mc.push(mc.DE())
	case 0xd6: // SUB n
		mc.sub8(mc.fetchByte(), false)
	case 0xd9: // EXX
		mc.B, mc.AltB = mc.AltB, mc.B
		mc.C, mc.AltC = mc.AltC, mc.C
		mc.D, mc.AltD = mc.AltD, mc.D
		mc.E, mc.AltE = mc.AltE, mc.E
		mc.H, mc.AltH = mc.AltH, mc.H
		mc.L, mc.AltL = mc.AltL, mc.L
	case 0xdb: // IN A,(n)
		n := mc.fetchByte()
		mc.A = mc.portRead(uint16(mc.A)<<8 | uint16(n))
	case 0xde: // SBC A,n
		mc.sub8(mc.fetchByte(), mc.F&FlagC != 0)

	case 0xe1: // POP HL
		mc.setHLPair(mc.pop())
	case 0xe3: // EX (SP),HL
		v := mc.readWord(mc.SP)
		mc.internal(1)
		mc.writeWord(mc.SP, mc.hlPair())
		mc.internal(2)
		mc.setHLPair(v)
	case 0xe5: // PUSH HL
		mc.internal(1)
		mc.push(mc.hlPair())
	case 0xe6: // AND n
		mc.and8(mc.fetchByte())
	case 0xe9: // JP (HL)
		mc.PC = mc.hlPair()
	case 0xeb: // EX DE,HL
		// the index prefixes have no effect on this instruction
		d := mc.DE()
		mc.SetDE(mc.HL())
		mc.SetHL(d)
	case 0xee: // XOR n
		mc.xor8(mc.fetchByte())

	case 0xf1: // POP AF
		mc.SetAF(mc.pop())
	case 0xf3: // DI
		mc.IFF1 = false
		mc.IFF2 = false
	case 0xf5: // PUSH AF
		mc.internal(1)
		mc.push(mc.AF())
	case 0xf6: // OR n
		mc.or8(mc.fetchByte())
	case 0xf9: // LD SP,HL
		mc.internal(2)
		mc.SP = mc.hlPair()
	case 0xfb: // EI
		// interrupts are not accepted until after the next instruction
		mc.eiDelay = true
	case 0xfe: // CP n
		mc.cp(mc.fetchByte())
	}
}

// alu dispatches the eight accumulator operations selected by the y field
// of the arithmetic quarter: ADD, ADC, SUB, SBC, AND, XOR, OR, CP.
func (mc *CPU) alu(op uint8, v uint8) {
	switch op {
	case 0:
		mc.add8(v, false)
	case 1:
		mc.add8(v, mc.F&FlagC != 0)
	case 2:
		mc.sub8(v, false)
	case 3:
		mc.sub8(v, mc.F&FlagC != 0)
	case 4:
		mc.and8(v)
	case 5:
		mc.xor8(v)
	case 6:
		mc.or8(v)
	case 7:
		mc.cp(v)
	}
}
