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

import "fmt"

// Flag bits in the F register. The X and Y bits have no documented meaning;
// they are copies of bits 3 and 5 of whatever value the last flag-affecting
// instruction happened to put on the internal bus.
const (
	FlagC  uint8 = 0x01
	FlagN  uint8 = 0x02
	FlagPV uint8 = 0x04
	FlagX  uint8 = 0x08
	FlagH  uint8 = 0x10
	FlagY  uint8 = 0x20
	FlagZ  uint8 = 0x40
	FlagS  uint8 = 0x80
)

// BC returns the BC register pair.
func (mc *CPU) BC() uint16 {
	return uint16(mc.B)<<8 | uint16(mc.C)
}

// SetBC sets the BC register pair.
func (mc *CPU) SetBC(v uint16) {
	mc.B = uint8(v >> 8)
	mc.C = uint8(v)
}

// DE returns the DE register pair.
func (mc *CPU) DE() uint16 {
	return uint16(mc.D)<<8 | uint16(mc.E)
}

// SetDE sets the DE register pair.
func (mc *CPU) SetDE(v uint16) {
	mc.D = uint8(v >> 8)
	mc.E = uint8(v)
}

// HL returns the HL register pair.
func (mc *CPU) HL() uint16 {
	return uint16(mc.H)<<8 | uint16(mc.L)
}

// SetHL sets the HL register pair.
func (mc *CPU) SetHL(v uint16) {
	mc.H = uint8(v >> 8)
	mc.L = uint8(v)
}

// AF returns the AF register pair.
func (mc *CPU) AF() uint16 {
	return uint16(mc.A)<<8 | uint16(mc.F)
}

// SetAF sets the AF register pair.
func (mc *CPU) SetAF(v uint16) {
	mc.A = uint8(v >> 8)
	mc.F = uint8(v)
}

// incR advances the low seven bits of the refresh register. Bit 7 is under
// program control (LD R,A) and is never touched by the refresh increment.
func (mc *CPU) incR() {
	mc.R = (mc.R & 0x80) | ((mc.R + 1) & 0x7f)
}

func (mc *CPU) String() string {
	s := fmt.Sprintf("AF=%04x BC=%04x DE=%04x HL=%04x IX=%04x IY=%04x\n",
		mc.AF(), mc.BC(), mc.DE(), mc.HL(), mc.IX, mc.IY)
	s += fmt.Sprintf("AF'=%02x%02x BC'=%02x%02x DE'=%02x%02x HL'=%02x%02x\n",
		mc.AltA, mc.AltF, mc.AltB, mc.AltC, mc.AltD, mc.AltE, mc.AltH, mc.AltL)
	s += fmt.Sprintf("PC=%04x SP=%04x I=%02x R=%02x IFF1=%v IFF2=%v IM=%d",
		mc.PC, mc.SP, mc.I, mc.R, mc.IFF1, mc.IFF2, mc.IM)
	return s
}

// parity of every byte value, expressed as the P/V flag bit. the flag is
// set for even parity.
var parity [256]uint8

func init() {
	for i := 0; i < 256; i++ {
		p := uint8(0)
		for b := 0; b < 8; b++ {
			p ^= uint8(i) >> uint(b) & 1
		}
		if p == 0 {
			parity[i] = FlagPV
		}
	}
}
