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

// Package sdlaudio feeds the beeper pipeline to the host audio device.
// A dedicated goroutine pulls sample buffers from the beeper's resampler
// and queues them with SDL, pacing itself against the device's queue
// depth. That goroutine is the beeper's consumer thread.
package sdlaudio

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/hardknott/speccy48/beeper"
	"github.com/hardknott/speccy48/curated"
	"github.com/hardknott/speccy48/logger"
	"github.com/hardknott/speccy48/wavwriter"
)

// NoAudioDevice is returned when the host audio device cannot be opened.
// The emulator continues without sound.
const NoAudioDevice = "sdlaudio: %v"

// SampleRate of the host stream.
const SampleRate = 44100

// bufferLength is the number of samples pulled from the beeper per queue
// operation. Small enough to keep latency down, large enough that the
// queueing overhead doesn't matter.
const bufferLength = 512

// keep at most this many buffers queued with the device. beyond that the
// feeder sleeps.
const maxQueuedBuffers = 4

// Audio connects the beeper to an SDL audio device.
type Audio struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	bpr *beeper.Beeper

	// audio-dump capture of everything sent to the device
	dumpPath string
	dump     []int16

	quit chan struct{}
	done chan struct{}
}

// NewAudio opens the host audio device and starts the feeder goroutine.
// The dumpPath, if not empty, receives a WAV copy of every sample played.
func NewAudio(bpr *beeper.Beeper, dumpPath string) (*Audio, error) {
	aud := &Audio{
		bpr:      bpr,
		dumpPath: dumpPath,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return nil, curated.Errorf(NoAudioDevice, err)
	}

	spec := &sdl.AudioSpec{
		Freq:     SampleRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  bufferLength,
	}

	var err error
	var actualSpec sdl.AudioSpec

	aud.id, err = sdl.OpenAudioDevice("", false, spec, &actualSpec, 0)
	if err != nil {
		return nil, curated.Errorf(NoAudioDevice, err)
	}
	aud.spec = actualSpec

	sdl.PauseAudioDevice(aud.id, false)

	go aud.feed()

	logger.Logf("sdlaudio", "%dHz, %d sample buffers", aud.spec.Freq, bufferLength)
	return aud, nil
}

// feed runs on its own goroutine for the lifetime of the device. It is the
// sole consumer of the beeper ring.
func (aud *Audio) feed() {
	defer close(aud.done)

	buf := make([]int16, bufferLength)
	raw := make([]byte, bufferLength*2)

	// sleeping for half a buffer's worth keeps the queue depth stable
	// without busy waiting
	interval := time.Duration(bufferLength) * time.Second / (2 * time.Duration(aud.spec.Freq))

	for {
		select {
		case <-aud.quit:
			return
		default:
		}

		if sdl.GetQueuedAudioSize(aud.id) >= uint32(maxQueuedBuffers*len(raw)) {
			time.Sleep(interval)
			continue
		}

		aud.bpr.Resample(buf)

		for i, s := range buf {
			raw[i*2] = byte(s)
			raw[i*2+1] = byte(uint16(s) >> 8)
		}

		if err := sdl.QueueAudio(aud.id, raw); err != nil {
			logger.Logf("sdlaudio", "queue: %v", err)
		}

		if aud.dumpPath != "" {
			aud.dump = append(aud.dump, buf...)
		}
	}
}

// End stops the feeder and closes the device. The audio dump, if one was
// requested, is written now.
func (aud *Audio) End() error {
	close(aud.quit)
	<-aud.done
	sdl.CloseAudioDevice(aud.id)

	if aud.dumpPath != "" {
		return wavwriter.Save(aud.dumpPath, aud.dump, int(aud.spec.Freq))
	}
	return nil
}
