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

package tape_test

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hardknott/speccy48/hardware/clocks"
	"github.com/hardknott/speccy48/tape"
	"github.com/hardknott/speccy48/wavwriter"
)

// A WAV of alternating-sign runs converts to pulses of the run length
// scaled to T-states.
func TestWAVZeroCrossing(t *testing.T) {
	const runLen = 100
	const runs = 10

	samples := make([]int16, 0, runLen*runs)
	for r := 0; r < runs; r++ {
		v := int16(8000)
		if r%2 == 1 {
			v = -8000
		}
		for i := 0; i < runLen; i++ {
			samples = append(samples, v)
		}
	}

	path := filepath.Join(t.TempDir(), "tape.wav")
	require.NoError(t, wavwriter.Save(path, samples, 44100))

	w, err := tape.LoadWAV(path)
	require.NoError(t, err)

	assert.True(t, w.InitialLevel, "first run is positive")
	assert.Equal(t, 44100, w.SampleRate)
	require.Len(t, w.Pulses, runs)

	want := uint32(math.Round(runLen * float64(clocks.CPUClock) / 44100))
	for i, p := range w.Pulses {
		assert.Equal(t, want, p.Duration, "pulse %d", i)
	}
}

func TestLoadWAVMissingFile(t *testing.T) {
	_, err := tape.LoadWAV(filepath.Join(t.TempDir(), "nope.wav"))
	assert.Error(t, err)
}
