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

// Package ports implements the I/O space of the 48K machine. Decoding is
// as sparse as the real hardware: the ULA answers any port with bit 0
// clear, and nothing else is attached. Reads of unclaimed ports float
// high.
package ports

import (
	"github.com/hardknott/speccy48/hardware/ula"
)

// Ports routes CPU I/O to the attached devices. It implements the
// cpu.PortBus interface.
type Ports struct {
	ula *ula.ULA
}

// NewPorts is the preferred method of initialisation for the Ports type.
func NewPorts(u *ula.ULA) *Ports {
	return &Ports{ula: u}
}

// PortRead implements the cpu.PortBus interface.
func (p *Ports) PortRead(port uint16) uint8 {
	if port&0x0001 == 0 {
		return p.ula.Read(uint8(port >> 8))
	}

	// unclaimed. with no floating-bus model the data lines read high
	return 0xff
}

// PortWrite implements the cpu.PortBus interface.
func (p *Ports) PortWrite(port uint16, data uint8, tstate uint64) {
	if port&0x0001 == 0 {
		p.ula.Write(data, tstate)
	}
}
