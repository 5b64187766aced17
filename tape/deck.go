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

import (
	"github.com/hardknott/speccy48/logger"
)

// Player is a tape playback source. The deck drives the EAR line from the
// main loop's Update() calls; the ULA samples EARBit() during port reads.
//
// All timestamps are emulation T-states. Pausing records the time left to
// the next transition so that resuming continues the pulse where it
// stopped; pausing and resuming at the same instant is a no-op.
type Player interface {
	Start(now uint64)
	Pause(now uint64)
	Resume(now uint64)
	Rewind()
	Update(now uint64)
	EARBit() (level bool, driving bool)
	Playing() bool
	Done() bool
}

// Deck plays a Waveform: WAV and MP3 sources, or a pre-synthesised block
// list.
type Deck struct {
	wave *Waveform

	cursor  int
	level   bool
	playing bool
	done    bool
	started bool

	// T-state of the next level toggle, and the time left to it while
	// paused
	next      uint64
	remainder uint32

	// cumulative T-states since head-zero
	position uint64

	// Debug enables per-control logging
	Debug bool
}

// NewDeck is the preferred method of initialisation for the Deck type.
func NewDeck(wave *Waveform) *Deck {
	return &Deck{
		wave:  wave,
		level: wave.InitialLevel,
	}
}

// Start playback from the head position.
func (d *Deck) Start(now uint64) {
	d.cursor = 0
	d.position = 0
	d.level = d.wave.InitialLevel
	d.done = len(d.wave.Pulses) == 0
	d.playing = !d.done
	d.started = true
	if d.playing {
		d.next = now + uint64(d.wave.Pulses[0].Duration)
	}
	if d.Debug {
		logger.Logf("tape", "play: %d pulses", len(d.wave.Pulses))
	}
}

// Pause playback, remembering how much of the current pulse is left.
func (d *Deck) Pause(now uint64) {
	if !d.playing {
		return
	}
	if d.next > now {
		d.remainder = uint32(d.next - now)
	} else {
		d.remainder = 0
	}
	d.playing = false
	if d.Debug {
		logger.Logf("tape", "pause at pulse %d", d.cursor)
	}
}

// Resume playback using the remainder recorded by Pause.
func (d *Deck) Resume(now uint64) {
	if d.playing || d.done || !d.started {
		return
	}
	d.next = now + uint64(d.remainder)
	d.playing = true
	if d.Debug {
		logger.Logf("tape", "resume at pulse %d", d.cursor)
	}
}

// Rewind to the head position. Playback stops.
func (d *Deck) Rewind() {
	d.cursor = 0
	d.position = 0
	d.level = d.wave.InitialLevel
	d.playing = false
	d.done = false
	d.started = false
	d.remainder = 0
	if d.Debug {
		logger.Log("tape", "rewind")
	}
}

// Seek moves the head to the pulse containing the given T-state position.
// Only meaningful for audio-sourced waveforms, which is also the only
// place the tape counter UI wants it.
func (d *Deck) Seek(t uint64) {
	var cum uint64
	d.cursor = len(d.wave.Pulses)
	d.remainder = 0

	for i, p := range d.wave.Pulses {
		if cum+uint64(p.Duration) > t {
			d.cursor = i
			d.remainder = uint32(cum + uint64(p.Duration) - t)
			break
		}
		cum += uint64(p.Duration)
	}

	d.position = t
	d.done = d.cursor == len(d.wave.Pulses)
	d.playing = false
	d.started = true

	// each pulse boundary is a toggle, so the level at pulse n is the
	// initial level flipped n times
	d.level = d.wave.InitialLevel != (d.cursor&1 == 1)
}

// Position returns the head position in T-states since head-zero.
func (d *Deck) Position() uint64 {
	return d.position
}

// Update advances playback to the given time, toggling the EAR level at
// each pulse boundary that has passed.
func (d *Deck) Update(now uint64) {
	for d.playing && now >= d.next {
		d.position += uint64(d.wave.Pulses[d.cursor].Duration)
		d.level = !d.level
		d.cursor++

		if d.cursor >= len(d.wave.Pulses) {
			d.playing = false
			d.done = true
			logger.Log("tape", "end of tape")
			return
		}

		d.next += uint64(d.wave.Pulses[d.cursor].Duration)
	}
}

// EARBit implements the ula.EARIn interface.
func (d *Deck) EARBit() (bool, bool) {
	return d.level, d.playing
}

// Playing implements the Player interface.
func (d *Deck) Playing() bool {
	return d.playing
}

// Done implements the Player interface.
func (d *Deck) Done() bool {
	return d.done
}
