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
	"io"
	"math"
	"os"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"

	"github.com/hardknott/speccy48/curated"
	"github.com/hardknott/speccy48/hardware/clocks"
	"github.com/hardknott/speccy48/logger"
)

// pcmData is an audio recording reduced to what the zero-crossing
// converter needs: mono samples and their rate.
type pcmData struct {
	sampleRate float64
	data       []float32
}

// LoadWAV reads a WAV recording of a tape and converts it to a waveform.
// Only the formats a tape recording plausibly uses are accepted: integer
// PCM, one channel, 8 or 16 bits.
func LoadWAV(path string) (*Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, curated.Errorf(IOError, path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, curated.Errorf(ParseError, "wav: not a valid wav file")
	}

	if dec.WavAudioFormat != 1 {
		return nil, curated.Errorf(ParseError, fmt.Sprintf("wav: unsupported audio format %d (PCM only)", dec.WavAudioFormat))
	}
	if dec.NumChans != 1 {
		return nil, curated.Errorf(ParseError, fmt.Sprintf("wav: %d channels (mono only)", dec.NumChans))
	}
	if dec.BitDepth != 8 && dec.BitDepth != 16 {
		return nil, curated.Errorf(ParseError, fmt.Sprintf("wav: %d bits per sample (8 or 16 only)", dec.BitDepth))
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, curated.Errorf(ParseError, fmt.Sprintf("wav: %v", err))
	}
	floatBuf := buf.AsFloat32Buffer()

	p := pcmData{
		sampleRate: float64(dec.SampleRate),
		data:       floatBuf.Data,
	}

	logger.Logf("tape", "%s: %0.0fHz, %0.2fs of audio", path, p.sampleRate, float64(len(p.data))/p.sampleRate)
	return p.toWaveform(), nil
}

// LoadMP3 reads an MP3 recording of a tape and converts it to a waveform.
func LoadMP3(path string) (*Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, curated.Errorf(IOError, path, err)
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, curated.Errorf(ParseError, fmt.Sprintf("mp3: %v", err))
	}

	p := pcmData{
		sampleRate: float64(dec.SampleRate()),
	}

	// the go-mp3 stream is always 16-bit little-endian two-channel, four
	// bytes per sample. we want the left channel
	chunk := make([]byte, 4096)
	err = nil
	for err != io.EOF {
		var n int
		n, err = dec.Read(chunk)
		if err != nil && err != io.EOF {
			return nil, curated.Errorf(ParseError, fmt.Sprintf("mp3: %v", err))
		}
		for i := 0; i+1 < n; i += 4 {
			v := int(chunk[i]) | int(chunk[i+1])<<8
			if v >= 32768 {
				v -= 65536
			}
			p.data = append(p.data, float32(v))
		}
	}

	logger.Logf("tape", "%s: %0.0fHz, %0.2fs of audio", path, p.sampleRate, float64(len(p.data))/p.sampleRate)
	return p.toWaveform(), nil
}

// toWaveform converts sampled audio into pulses by measuring runs between
// zero crossings. The sign of the first sample sets the initial level;
// each run becomes one pulse of the run's length in T-states, rounded to
// nearest and never zero.
func (p pcmData) toWaveform() *Waveform {
	w := &Waveform{
		SampleRate: int(p.sampleRate),
	}

	if len(p.data) == 0 {
		return w
	}

	tstatesPerSample := float64(clocks.CPUClock) / p.sampleRate

	w.InitialLevel = p.data[0] >= 0

	level := w.InitialLevel
	run := 0
	for _, s := range p.data {
		if (s >= 0) == level {
			run++
			continue
		}

		w.Pulses = append(w.Pulses, Pulse{Duration: runDuration(run, tstatesPerSample)})
		level = !level
		run = 1
	}
	w.Pulses = append(w.Pulses, Pulse{Duration: runDuration(run, tstatesPerSample)})

	return w
}

func runDuration(run int, tstatesPerSample float64) uint32 {
	d := uint32(math.Round(float64(run) * tstatesPerSample))
	if d < 1 {
		d = 1
	}
	return d
}
