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

package wavwriter_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hardknott/speccy48/curated"
	"github.com/hardknott/speccy48/wavwriter"
)

const sampleRate = 44100

func ramp(n int, base int16) []int16 {
	s := make([]int16, n)
	for i := range s {
		s[i] = base + int16(i)
	}
	return s
}

// findDataChunk walks the RIFF structure of a written file and returns the
// offset and size of the data chunk.
func findDataChunk(t *testing.T, raw []byte) (int, uint32) {
	t.Helper()
	require.GreaterOrEqual(t, len(raw), 12)
	require.Equal(t, "RIFF", string(raw[0:4]))
	require.Equal(t, "WAVE", string(raw[8:12]))

	offset := 12
	for offset+8 <= len(raw) {
		id := string(raw[offset : offset+4])
		size := binary.LittleEndian.Uint32(raw[offset+4 : offset+8])
		if id == "data" {
			return offset, size
		}
		offset += 8 + int(size)
		if size%2 == 1 {
			offset++
		}
	}
	t.Fatal("no data chunk")
	return 0, 0
}

func TestSaveAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.wav")
	in := ramp(100, -50)

	require.NoError(t, wavwriter.Save(path, in, sampleRate))

	out, err := wavwriter.ReadPrefix(path, 100, sampleRate)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

// Appending grows the data chunk by exactly the new samples and patches
// both size fields.
func TestAppendPatchesSizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.wav")

	require.NoError(t, wavwriter.Save(path, ramp(100, 0), sampleRate))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	_, oldSize := findDataChunk(t, raw)
	oldRIFF := binary.LittleEndian.Uint32(raw[4:8])
	assert.Equal(t, uint32(200), oldSize)

	require.NoError(t, wavwriter.Append(path, ramp(50, 1000), sampleRate))

	raw, err = os.ReadFile(path)
	require.NoError(t, err)
	dataOffset, newSize := findDataChunk(t, raw)
	newRIFF := binary.LittleEndian.Uint32(raw[4:8])

	assert.Equal(t, oldSize+100, newSize, "data chunk grows by new samples * 2")
	assert.Equal(t, oldRIFF+100, newRIFF, "RIFF size patched to match")

	// a canonical header: the data chunk sits right after fmt
	assert.Equal(t, 36, dataOffset)

	// the appended samples follow the originals untouched
	samples, err := wavwriter.ReadPrefix(path, 150, sampleRate)
	require.NoError(t, err)
	require.Len(t, samples, 150)
	assert.Equal(t, int16(99), samples[99])
	assert.Equal(t, int16(1000), samples[100])
	assert.Equal(t, int16(1049), samples[149])
}

func TestAppendCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.wav")

	require.NoError(t, wavwriter.Append(path, ramp(10, 0), sampleRate))

	out, err := wavwriter.ReadPrefix(path, 10, sampleRate)
	require.NoError(t, err)
	assert.Len(t, out, 10)
}

func TestAppendFormatMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.wav")

	require.NoError(t, wavwriter.Save(path, ramp(10, 0), sampleRate))

	err := wavwriter.Append(path, ramp(10, 0), 22050)
	assert.Error(t, err)
	assert.True(t, curated.Is(err, wavwriter.FormatMismatch))
}

func TestReadPrefixClampsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.wav")

	require.NoError(t, wavwriter.Save(path, ramp(10, 0), sampleRate))

	out, err := wavwriter.ReadPrefix(path, 100, sampleRate)
	require.NoError(t, err)
	assert.Len(t, out, 10)
}

func TestReadPrefixMissingFile(t *testing.T) {
	out, err := wavwriter.ReadPrefix(filepath.Join(t.TempDir(), "nope.wav"), 10, sampleRate)
	require.NoError(t, err)
	assert.Nil(t, out)
}
