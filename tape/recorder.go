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
	"fmt"

	"github.com/hardknott/speccy48/curated"
	"github.com/hardknott/speccy48/hardware/clocks"
	"github.com/hardknott/speccy48/logger"
	"github.com/hardknott/speccy48/wavwriter"
)

// RecordFormat selects what the recorder writes on stop.
type RecordFormat int

// List of recording formats.
const (
	RecordNone RecordFormat = iota
	RecordTAP
	RecordWAV
)

// idleThreshold is the silent gap, in T-states, that closes a block.
// Roughly a tenth of a second: much longer than any legal inter-pulse gap,
// much shorter than the pause between SAVEd blocks.
const idleThreshold = 350000

// Recorder captures the MIC line. Level transitions accumulate into
// blocks; a long enough silence closes the block, which is then decoded
// back to bytes (for TAP output) and rendered to samples (for WAV output
// and as a fallback record of what was heard).
type Recorder struct {
	path       string
	format     RecordFormat
	sampleRate int

	recording  bool
	appendMode bool

	// the open block: pulse durations and the level it started at
	pulses     []uint32
	blockOpen  bool
	startLevel uint8
	lastLevel  uint8
	lastT      uint64

	// finished capture
	blocks []Block
	audio  []int16

	// session has captured something that has not been written out yet
	dirty bool

	// Debug enables per-event logging
	Debug bool
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type. The sample rate applies to WAV output.
func NewRecorder(path string, format RecordFormat, sampleRate int) *Recorder {
	return &Recorder{
		path:       path,
		format:     format,
		sampleRate: sampleRate,
	}
}

// Recording reports whether a recording session is open.
func (r *Recorder) Recording() bool {
	return r.recording
}

// Start opens a recording session. A normal start abandons any previous
// capture and will overwrite the destination from the playback head
// position: for WAV destinations the audio before headTStates survives as
// a prefix. A shift-record (appendMode) preserves the existing file in
// full and grows it; that only makes sense for WAV destinations.
func (r *Recorder) Start(now uint64, appendMode bool, headTStates uint64) error {
	if r.format == RecordNone {
		return curated.Errorf(StateConflict, "record: no output configured")
	}
	if appendMode && r.format != RecordWAV {
		return curated.Errorf(StateConflict, "record: append is only possible with a wav output")
	}
	if r.recording {
		return curated.Errorf(StateConflict, "record: already recording")
	}

	r.pulses = r.pulses[:0]
	r.blockOpen = false
	r.blocks = nil
	r.audio = nil
	r.dirty = false
	r.appendMode = appendMode

	if r.format == RecordWAV && !appendMode && headTStates > 0 {
		// overwriting from the middle of the tape: keep what comes before
		// the head
		n := int64(headTStates * uint64(r.sampleRate) / clocks.CPUClock)
		prefix, err := wavwriter.ReadPrefix(r.path, n, r.sampleRate)
		if err != nil {
			return err
		}
		r.audio = prefix
		if len(prefix) > 0 {
			r.dirty = true
		}
	}

	r.recording = true
	logger.Logf("recorder", "recording to %s", r.path)
	return nil
}

// Mic implements the ula.MICOut interface. Every 0xFE write reports its
// MIC bit here; only transitions matter.
func (r *Recorder) Mic(t uint64, level uint8) {
	if !r.recording {
		return
	}

	if !r.blockOpen {
		r.blockOpen = true
		r.startLevel = level
		r.lastLevel = level
		r.lastT = t
		if r.Debug {
			logger.Logf("recorder", "block opened at %d", t)
		}
		return
	}

	if level == r.lastLevel {
		return
	}

	r.pulses = append(r.pulses, uint32(t-r.lastT))
	r.lastLevel = level
	r.lastT = t
}

// Update closes the open block once the MIC line has been quiet for long
// enough, or immediately when forced. Called by the main loop every
// instruction and at shutdown.
func (r *Recorder) Update(now uint64, force bool) {
	if !r.recording || !r.blockOpen {
		return
	}
	if !force && now-r.lastT < idleThreshold {
		return
	}
	r.closeBlock(now)
}

// closeBlock renders the open block to samples and, for TAP destinations,
// attempts to decode it back into bytes.
func (r *Recorder) closeBlock(now uint64) {
	if len(r.pulses) > 0 {
		if r.format == RecordTAP && len(r.pulses) >= minPilotPulses {
			if data, ok := decodePulses(r.pulses); ok {
				r.blocks = append(r.blocks, Block{Data: data, PauseMS: defaultPauseMS})
				logger.Logf("recorder", "decoded block: %d bytes", len(data))
			} else {
				logger.Logf("recorder", "could not decode a block of %d pulses; dropped", len(r.pulses))
			}
		}

		// the audio rendering is always kept, whatever the destination
		// format
		r.renderAudio()
		r.dirty = true
	}

	// silence from the last transition to the close, at the level the line
	// was left at
	idle := now - r.lastT
	if idle > idleThreshold {
		idle = idleThreshold
	}
	r.appendRun(r.lastLevel, idle)

	r.pulses = r.pulses[:0]
	r.blockOpen = false
}

// renderAudio converts the open block's pulses to samples, one run per
// pulse, starting at the block's opening level.
func (r *Recorder) renderAudio() {
	level := r.startLevel
	for _, d := range r.pulses {
		r.appendRun(level, uint64(d))
		level ^= 1
	}
}

// appendRun emits duration T-states worth of samples at a level.
func (r *Recorder) appendRun(level uint8, duration uint64) {
	n := duration * uint64(r.sampleRate) / clocks.CPUClock
	s := int16(-micAmplitude)
	if level != 0 {
		s = micAmplitude
	}
	for i := uint64(0); i < n; i++ {
		r.audio = append(r.audio, s)
	}
}

// micAmplitude is the sample value used for a high MIC level.
const micAmplitude = 16000

// Stop closes the session and writes the capture out. The output file is
// only touched when something was captured.
func (r *Recorder) Stop(now uint64) error {
	if !r.recording {
		return nil
	}

	r.Update(now, true)
	r.recording = false

	if !r.dirty {
		logger.Log("recorder", "nothing captured")
		return nil
	}

	switch r.format {
	case RecordTAP:
		if len(r.blocks) == 0 {
			logger.Log("recorder", "no decodable blocks; tap not written")
			return nil
		}
		return SaveTAP(r.path, r.blocks)

	case RecordWAV:
		if r.appendMode {
			return wavwriter.Append(r.path, r.audio, r.sampleRate)
		}
		return wavwriter.Save(r.path, r.audio, r.sampleRate)
	}

	return curated.Errorf(StateConflict, fmt.Sprintf("record: unsupported format (%d)", r.format))
}
