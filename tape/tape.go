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

// Package tape implements the cassette subsystem: loading of TAP, TZX and
// audio (WAV/MP3) images, pulse waveform synthesis and playback, and
// recording of the MIC line back to TAP or WAV.
//
// Everything on a Spectrum tape is ultimately a square wave. The package
// represents it as a Waveform: an initial level and a list of pulse
// durations in T-states, each pulse ending in a level toggle. TAP and TZX
// images carry bytes and are synthesised into pulses using the ROM loader
// timings; audio files are converted by measuring the distance between
// zero crossings.
package tape

// Error patterns returned by the tape subsystem.
const (
	// ParseError: the input file is malformed or uses an unsupported
	// feature
	ParseError = "tape: %v"

	// IOError: the filesystem let us down during a load or save
	IOError = "tape: %v: %v"

	// StateConflict: the requested operation does not fit the current
	// session, e.g. append-recording to a TAP destination
	StateConflict = "tape: %v"
)

// ROM loader timings, in T-states. Every Spectrum tape routine of the
// standard-speed kind uses these.
const (
	PilotPulse = 2168
	Sync1Pulse = 667
	Sync2Pulse = 735
	Bit0Pulse  = 855
	Bit1Pulse  = 1710

	// pilot tone lengths for header (flag 0x00) and data blocks
	PilotHeaderCount = 8063
	PilotDataCount   = 3223
)

// TStatesPerMS converts block pause times to T-states.
const TStatesPerMS = 3500

// Block is one TAP-style block: a payload (flag byte, data, checksum) and
// the pause that follows it.
type Block struct {
	Data    []byte
	PauseMS uint32
}

// IsHeader reports whether the block's flag byte marks it as a header.
func (blk Block) IsHeader() bool {
	return len(blk.Data) > 0 && blk.Data[0] == 0x00
}

// Checksum returns the XOR of all payload bytes but the last, which is how
// the ROM computes the check byte stored there.
func (blk Block) Checksum() byte {
	var c byte
	for _, b := range blk.Data[:len(blk.Data)-1] {
		c ^= b
	}
	return c
}

// Pulse is a run of T-states at a constant level, ending in a toggle.
type Pulse struct {
	Duration uint32
}

// Waveform is an ordered list of pulses with the level the tape starts at.
// SampleRate is non-zero for waveforms that came from an audio file; it
// enables seeking by time.
type Waveform struct {
	Pulses       []Pulse
	InitialLevel bool
	SampleRate   int
}

// Duration returns the total length of the waveform in T-states.
func (w *Waveform) Duration() uint64 {
	var d uint64
	for _, p := range w.Pulses {
		d += uint64(p.Duration)
	}
	return d
}

// Synthesize expands a block list into the pulse waveform the ROM loader
// would expect to hear: pilot tone, two sync pulses, two pulses per data
// bit MSB-first, and the block pause folded into the following pulse as an
// extension of the current level.
func Synthesize(blocks []Block) *Waveform {
	w := &Waveform{}

	// a pending pause extends the next pulse rather than producing a pulse
	// of its own: the level simply holds until the next toggle
	var pending uint32

	emit := func(duration uint32) {
		w.Pulses = append(w.Pulses, Pulse{Duration: duration + pending})
		pending = 0
	}

	for _, blk := range blocks {
		pilot := PilotDataCount
		if blk.IsHeader() {
			pilot = PilotHeaderCount
		}
		for i := 0; i < pilot; i++ {
			emit(PilotPulse)
		}

		emit(Sync1Pulse)
		emit(Sync2Pulse)

		for _, b := range blk.Data {
			for bit := 0; bit < 8; bit++ {
				d := uint32(Bit0Pulse)
				if b&0x80 != 0 {
					d = Bit1Pulse
				}
				emit(d)
				emit(d)
				b <<= 1
			}
		}

		pending = blk.PauseMS * TStatesPerMS
	}

	// a trailing pause has no following pulse to extend
	if pending > 0 {
		w.Pulses = append(w.Pulses, Pulse{Duration: pending})
	}

	return w
}
