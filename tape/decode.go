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

package tape

// The pulse decoder turns a recorded run of MIC pulses back into bytes.
// It is the inverse of Synthesize() with enough tolerance to survive the
// timing slop a real program introduces: the ROM SAVE routine is cycle
// exact but things like custom loaders are not.

// minimum number of pilot pulses required before the decoder will look for
// the sync pair. fewer than this is noise, not a block.
const minPilotPulses = 100

// tolerance returns how far a measured pulse may stray from the reference
// duration and still classify.
func tolerance(ref uint32) uint32 {
	t := ref / 4
	if t < 200 {
		t = 200
	}
	return t
}

func near(d, ref uint32) bool {
	t := tolerance(ref)
	return d+t >= ref && d <= ref+t
}

// decodePulses classifies a block's pulses back into payload bytes.
// Returns false if the pulse train does not look like a standard-speed
// block.
func decodePulses(pulses []uint32) ([]byte, bool) {
	// consume the pilot tone
	i := 0
	for i < len(pulses) && near(pulses[i], PilotPulse) {
		i++
	}
	if i < minPilotPulses {
		return nil, false
	}

	// the sync pair
	if i+2 > len(pulses) || !near(pulses[i], Sync1Pulse) || !near(pulses[i+1], Sync2Pulse) {
		return nil, false
	}
	i += 2

	// data pulses come in pairs, one pair per bit, eight pairs per byte.
	// trim stragglers (the recorder may have caught the start of the
	// pause) so the count is a whole number of bytes
	data := pulses[i:]
	for len(data)%16 != 0 {
		data = data[:len(data)-1]
	}
	if len(data) == 0 {
		return nil, false
	}

	var out []byte
	var b uint8
	var nbits int

	for j := 0; j+1 < len(data); j += 2 {
		bit, ok := classifyPair(data[j], data[j+1])
		if !ok {
			return nil, false
		}
		b = b<<1 | bit
		nbits++
		if nbits == 8 {
			out = append(out, b)
			b = 0
			nbits = 0
		}
	}

	return out, true
}

// classifyPair decides whether a pair of half-pulses encodes a 0 or a 1.
// When the halves disagree with both references individually, the sum of
// the pair against twice the reference is the tie-break: the boundary
// between the two halves may have been measured badly while their total
// is still sound.
func classifyPair(a, b uint32) (uint8, bool) {
	if near(a, Bit0Pulse) && near(b, Bit0Pulse) {
		return 0, true
	}
	if near(a, Bit1Pulse) && near(b, Bit1Pulse) {
		return 1, true
	}

	sum := a + b
	if near(sum, 2*Bit0Pulse) {
		return 0, true
	}
	if near(sum, 2*Bit1Pulse) {
		return 1, true
	}

	return 0, false
}
