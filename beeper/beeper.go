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

// Package beeper converts the sparse stream of speaker level transitions
// produced at CPU rate into a PCM stream at the host sample rate.
//
// The producer (the ULA, on the emulation thread) pushes timestamped level
// changes into a ring; the consumer (the host audio callback, on its own
// thread) resamples them. The ring is the only structure in the emulator
// shared between threads. Both sides take a short lock per operation - the
// audio-lock idiom - rather than anything cleverer; an enqueue or a buffer
// fill holds it for microseconds.
package beeper

import (
	"sync"

	"github.com/hardknott/speccy48/hardware/clocks"
	"github.com/hardknott/speccy48/logger"
)

// RingLen is the capacity of the event ring. A single frame of the
// busiest beeper music manages a few thousand transitions; 8192 gives
// headroom without meaningful memory cost.
const RingLen = 8192

// Amplitude of the generated square wave in 16-bit sample units.
const Amplitude = 2000

// dcAlpha is the pole of the DC-blocking filter.
const dcAlpha = 0.995

// rewindTolerance is how far, in samples, a producer timestamp may fall
// behind the playback position before the pipeline resynchronises.
const rewindTolerance = 8

// idleSilence is the number of empty-queue samples after which the
// consumer stops repeating the last level and emits true silence.
const idleSilence = 512

// Event is a single speaker level transition.
type Event struct {
	TState uint64
	Level  uint8
}

// Beeper is the transition ring and resampler.
type Beeper struct {
	crit sync.Mutex

	ring [RingLen]Event
	head int
	used int

	sampleRate      int
	cyclesPerSample float64

	// playbackPos is the T-state the consumer has reached; writerCursor
	// the highest T-state the producer has announced
	playbackPos  float64
	writerCursor uint64

	// current output level and DC-blocker state
	level uint8
	xPrev float64
	yPrev float64

	idleCt int

	// Debug enables logging of resync and overflow events
	Debug bool
}

// NewBeeper is the preferred method of initialisation for the Beeper type.
// The sample rate is that of the host audio device.
func NewBeeper(sampleRate int) *Beeper {
	return &Beeper{
		sampleRate:      sampleRate,
		cyclesPerSample: float64(clocks.CPUClock) / float64(sampleRate),
	}
}

// SampleRate returns the configured host sample rate.
func (b *Beeper) SampleRate() int {
	return b.sampleRate
}

// Push appends a level transition. Called by the ULA on the emulation
// thread. On overflow the oldest event is dropped: the audio consumer is
// the higher-priority side and recent history is worth more than old.
func (b *Beeper) Push(tstate uint64, level uint8) {
	b.crit.Lock()
	defer b.crit.Unlock()

	// a timestamp well behind the playback position means the timeline has
	// been rebased (tape rewind, emulator reset). flush and follow it
	if float64(tstate)+float64(rewindTolerance)*b.cyclesPerSample < b.playbackPos {
		if b.Debug {
			logger.Logf("beeper", "resync: event at %d, playback at %.0f", tstate, b.playbackPos)
		}
		b.head = 0
		b.used = 0
		b.playbackPos = float64(tstate)
		b.writerCursor = tstate
		b.xPrev = b.raw(level)
		b.yPrev = 0
	}

	if b.used == RingLen {
		b.head = (b.head + 1) % RingLen
		b.used--
		if b.Debug {
			logger.Log("beeper", "ring overflow: dropped oldest event")
		}
	}
	b.ring[(b.head+b.used)%RingLen] = Event{TState: tstate, Level: level}
	b.used++

	if tstate > b.writerCursor {
		b.writerCursor = tstate
	}
}

// Latency returns the distance between producer and consumer in samples.
// The main loop throttles when this exceeds its threshold.
func (b *Beeper) Latency() int {
	b.crit.Lock()
	defer b.crit.Unlock()

	d := float64(b.writerCursor) - b.playbackPos
	if d <= 0 {
		return 0
	}
	return int(d / b.cyclesPerSample)
}

// Pending returns the number of events waiting in the ring.
func (b *Beeper) Pending() int {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.used
}

func (b *Beeper) raw(level uint8) float64 {
	if level != 0 {
		return Amplitude
	}
	return -Amplitude
}

// Resample fills the buffer with mono 16-bit samples. Called by the host
// audio callback on the audio thread.
func (b *Beeper) Resample(buf []int16) {
	b.crit.Lock()
	defer b.crit.Unlock()

	for i := range buf {
		tNext := b.playbackPos + b.cyclesPerSample

		if b.used == 0 {
			b.idleCt++
		} else {
			b.idleCt = 0
			for b.used > 0 && float64(b.ring[b.head].TState) <= tNext {
				b.level = b.ring[b.head].Level
				b.head = (b.head + 1) % RingLen
				b.used--
			}
		}

		if b.idleCt >= idleSilence {
			// long idle: emit true silence and keep the filter settled
			buf[i] = 0
			b.xPrev = 0
			b.yPrev = 0
		} else {
			x := b.raw(b.level)
			y := x - b.xPrev + dcAlpha*b.yPrev
			b.xPrev = x
			b.yPrev = y
			buf[i] = clamp16(y)
		}

		b.playbackPos = tNext
	}
}

func clamp16(v float64) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
