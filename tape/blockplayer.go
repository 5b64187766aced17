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

// playback phase of the block player.
type phase int

const (
	phaseIdle phase = iota
	phasePilot
	phaseSync1
	phaseSync2
	phaseData
	phasePause
	phaseDone
)

// BlockPlayer plays a TAP/TZX block list directly, generating the ROM
// loader waveform on the fly instead of expanding it up front. The pulse
// sequence is identical to what Synthesize() produces; the ratchet in
// Update() is the same as the Deck's.
type BlockPlayer struct {
	blocks []Block

	phase    phase
	blockIdx int

	// countdown of pilot pulses in the current block
	pilotRemaining int

	// progress through the current block's data
	byteIdx    int
	bitIdx     uint
	secondHalf bool

	level   bool
	playing bool

	next      uint64
	remainder uint32
	position  uint64

	// duration of the pulse currently in progress
	curDur uint32

	// Debug enables per-control logging
	Debug bool
}

// NewBlockPlayer is the preferred method of initialisation for the
// BlockPlayer type.
func NewBlockPlayer(blocks []Block) *BlockPlayer {
	return &BlockPlayer{
		blocks: blocks,
	}
}

// Start playback from the first block.
func (bp *BlockPlayer) Start(now uint64) {
	bp.Rewind()
	if len(bp.blocks) == 0 {
		bp.phase = phaseDone
		return
	}
	bp.enterBlock(0)
	bp.playing = true
	d, _ := bp.nextDuration()
	bp.curDur = d
	bp.next = now + uint64(d)
	if bp.Debug {
		logger.Logf("tape", "play: %d blocks", len(bp.blocks))
	}
}

// Pause playback, remembering how much of the current pulse is left.
func (bp *BlockPlayer) Pause(now uint64) {
	if !bp.playing {
		return
	}
	if bp.next > now {
		bp.remainder = uint32(bp.next - now)
	} else {
		bp.remainder = 0
	}
	bp.playing = false
}

// Resume playback using the remainder recorded by Pause.
func (bp *BlockPlayer) Resume(now uint64) {
	if bp.playing || bp.phase == phaseDone {
		return
	}
	if bp.phase == phaseIdle {
		return
	}
	bp.next = now + uint64(bp.remainder)
	bp.playing = true
}

// Rewind to the first block. Playback stops.
func (bp *BlockPlayer) Rewind() {
	bp.phase = phaseIdle
	bp.blockIdx = 0
	bp.pilotRemaining = 0
	bp.byteIdx = 0
	bp.bitIdx = 0
	bp.secondHalf = false
	bp.level = false
	bp.playing = false
	bp.remainder = 0
	bp.position = 0
}

// enterBlock primes the state machine for the pilot tone of a block.
func (bp *BlockPlayer) enterBlock(idx int) {
	bp.blockIdx = idx
	bp.phase = phasePilot
	if bp.blocks[idx].IsHeader() {
		bp.pilotRemaining = PilotHeaderCount
	} else {
		bp.pilotRemaining = PilotDataCount
	}
	bp.byteIdx = 0
	bp.bitIdx = 0
	bp.secondHalf = false
}

// nextDuration returns the duration of the upcoming pulse and advances the
// state machine past it. Returns false when the tape has run out.
func (bp *BlockPlayer) nextDuration() (uint32, bool) {
	switch bp.phase {
	case phasePilot:
		bp.pilotRemaining--
		if bp.pilotRemaining == 0 {
			bp.phase = phaseSync1
		}
		return PilotPulse, true

	case phaseSync1:
		bp.phase = phaseSync2
		return Sync1Pulse, true

	case phaseSync2:
		if len(bp.blocks[bp.blockIdx].Data) > 0 {
			bp.phase = phaseData
		} else {
			bp.phase = phasePause
		}
		return Sync2Pulse, true

	case phaseData:
		blk := bp.blocks[bp.blockIdx]
		b := blk.Data[bp.byteIdx]

		d := uint32(Bit0Pulse)
		if b<<bp.bitIdx&0x80 != 0 {
			d = Bit1Pulse
		}

		if !bp.secondHalf {
			bp.secondHalf = true
			return d, true
		}

		// the second half-pulse of the bit: move on
		bp.secondHalf = false
		bp.bitIdx++
		if bp.bitIdx == 8 {
			bp.bitIdx = 0
			bp.byteIdx++
			if bp.byteIdx == len(blk.Data) {
				bp.phase = phasePause
			}
		}
		return d, true

	case phasePause:
		pause := bp.blocks[bp.blockIdx].PauseMS * TStatesPerMS

		if bp.blockIdx+1 >= len(bp.blocks) {
			bp.phase = phaseDone
			if pause == 0 {
				return 0, false
			}
			return pause, true
		}

		// the pause extends into the first pilot pulse of the next block:
		// the level holds until that pulse's toggle
		bp.enterBlock(bp.blockIdx + 1)
		bp.pilotRemaining--
		if bp.pilotRemaining == 0 {
			bp.phase = phaseSync1
		}
		return pause + PilotPulse, true

	case phaseDone:
		return 0, false
	}

	return 0, false
}

// Update advances playback to the given time.
func (bp *BlockPlayer) Update(now uint64) {
	for bp.playing && now >= bp.next {
		bp.position += uint64(bp.curDur)
		bp.level = !bp.level

		d, ok := bp.nextDuration()
		if !ok {
			bp.playing = false
			logger.Log("tape", "end of tape")
			return
		}
		bp.curDur = d
		bp.next += uint64(d)
	}
}

// EARBit implements the ula.EARIn interface.
func (bp *BlockPlayer) EARBit() (bool, bool) {
	return bp.level, bp.playing
}

// Playing implements the Player interface.
func (bp *BlockPlayer) Playing() bool {
	return bp.playing
}

// Done implements the Player interface.
func (bp *BlockPlayer) Done() bool {
	return bp.phase == phaseDone
}
