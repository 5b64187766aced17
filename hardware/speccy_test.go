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

package hardware_test

import (
	"testing"

	"github.com/hardknott/speccy48/beeper"
	"github.com/hardknott/speccy48/hardware"
	"github.com/hardknott/speccy48/hardware/clocks"
	"github.com/hardknott/speccy48/hardware/memory"
	"github.com/hardknott/speccy48/test"
)

// buildROM assembles a tiny program into an otherwise empty 16K image.
func buildROM(program ...uint8) []byte {
	rom := make([]byte, memory.ROMSize)
	copy(rom, program)
	return rom
}

func TestROMSizeEnforced(t *testing.T) {
	_, err := hardware.NewSpeccy(make([]byte, 100), nil)
	test.ExpectFailure(t, err)
}

// An OUT to an even port lands in the ULA: border colour, beeper event and
// the write-to-event timestamp all line up.
func TestBorderAndBeeperThroughTheCore(t *testing.T) {
	bpr := beeper.NewBeeper(44100)

	// LD A,0x17; OUT (0xFE),A; JR -2
	spc, err := hardware.NewSpeccy(buildROM(
		0x3e, 0x17,
		0xd3, 0xfe,
		0x18, 0xfe,
	), bpr)
	test.DemandSuccess(t, err)

	_, err = spc.Step() // LD A,n
	test.ExpectSuccess(t, err)
	_, err = spc.Step() // OUT
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, spc.ULA.BorderColour, uint8(7))

	// the OUT write cycle starts 7 T-states into the instruction, which
	// itself starts after the 7 T-states of LD A,n
	test.ExpectEquality(t, bpr.Pending(), 1)
	test.ExpectEquality(t, spc.TStates, uint64(18))
}

// The frame interrupt fires every 69888 T-states when interrupts are
// enabled and is skipped (but the frame still reported) when masked.
func TestFrameBoundary(t *testing.T) {
	// IM 1; EI; then spin
	spc, err := hardware.NewSpeccy(buildROM(
		0xed, 0x56, // IM 1
		0xfb,       // EI
		0x18, 0xfe, // JR -2
	), nil)
	test.DemandSuccess(t, err)

	frames := 0
	for spc.TStates < clocks.TStatesPerFrame*2+100 {
		frame, err := spc.Step()
		test.DemandSuccess(t, err)
		if frame {
			frames++
			// the interrupt routine at 0x0038 is zeroed ROM: NOPs. that
			// is fine for this test
		}
	}

	test.ExpectEquality(t, frames, 2)
}

func TestStepAdvancesClock(t *testing.T) {
	spc, err := hardware.NewSpeccy(buildROM(0x00, 0x00), nil) // NOPs
	test.DemandSuccess(t, err)

	_, err = spc.Step()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, spc.TStates, uint64(4))

	_, err = spc.Step()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, spc.TStates, uint64(8))
}
