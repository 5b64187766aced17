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

// Package memory implements the flat 64K address space of the 48K machine.
// The lower 16K is ROM: writes to it are silently ignored, which is exactly
// what the unexpanded hardware does.
package memory

import (
	"github.com/hardknott/speccy48/curated"
)

// InvalidROM is returned by LoadROM when the image is not the size of the
// 48K machine's ROM.
const InvalidROM = "memory: invalid ROM image: %d bytes (expected %d)"

// ROMSize is the size of the 48K machine's ROM.
const ROMSize = 0x4000

// ScreenBase is the first address of the screen bitmap.
const ScreenBase = 0x4000

// AttrBase is the first address of the screen attribute area.
const AttrBase = 0x5800

// ScreenTop is the first address past the attribute area.
const ScreenTop = 0x5b00

// Memory is the flat 64K address space.
type Memory struct {
	data [0x10000]uint8
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory() *Memory {
	return &Memory{}
}

// Reset zeroes the RAM area. The ROM area is untouched.
func (mem *Memory) Reset() {
	for i := ROMSize; i < len(mem.data); i++ {
		mem.data[i] = 0
	}
}

// LoadROM copies a 16K ROM image into the bottom of the address space.
func (mem *Memory) LoadROM(data []byte) error {
	if len(data) != ROMSize {
		return curated.Errorf(InvalidROM, len(data), ROMSize)
	}
	copy(mem.data[:ROMSize], data)
	return nil
}

// Read returns the byte at the address.
func (mem *Memory) Read(address uint16) uint8 {
	return mem.data[address]
}

// Write stores the byte at the address. Writes below 0x4000 land in ROM and
// are ignored.
func (mem *Memory) Write(address uint16, data uint8) {
	if address < ROMSize {
		return
	}
	mem.data[address] = data
}

// ReadWord returns the little-endian word at the address. The high byte
// wraps around the top of the address space.
func (mem *Memory) ReadWord(address uint16) uint16 {
	lo := mem.data[address]
	hi := mem.data[address+1]
	return uint16(lo) | (uint16(hi) << 8)
}

// WriteWord stores the little-endian word at the address, wrapping around
// the top of the address space.
func (mem *Memory) WriteWord(address uint16, data uint16) {
	mem.Write(address, uint8(data))
	mem.Write(address+1, uint8(data>>8))
}

// Data exposes the underlying storage. Used by the presentation layer to
// read the screen area without going through Read() byte by byte.
func (mem *Memory) Data() []uint8 {
	return mem.data[:]
}
