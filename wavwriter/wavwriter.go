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

// Package wavwriter writes mono 16-bit PCM WAV files: the tape recorder's
// audio output and the beeper's --audio-dump stream. Whole-file writes go
// through the go-wav encoder; appending to an existing file is done by
// patching the RIFF and data chunk sizes in place, which no streaming
// encoder can do for us.
package wavwriter

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/youpy/go-wav"

	"github.com/hardknott/speccy48/curated"
	"github.com/hardknott/speccy48/logger"
)

// EncodeError is returned when a WAV file cannot be written.
const EncodeError = "wavwriter: %v: %v"

// FormatMismatch is returned when appending to a file whose format does
// not match the samples being appended.
const FormatMismatch = "wavwriter: %v: append format mismatch: %v"

// Save writes samples to path as a mono 16-bit PCM WAV file, replacing
// whatever was there.
func Save(path string, samples []int16, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return curated.Errorf(EncodeError, path, err)
	}

	enc := wav.NewWriter(f, uint32(len(samples)), 1, uint32(sampleRate), 16)

	buf := make([]wav.Sample, len(samples))
	for i, s := range samples {
		buf[i].Values[0] = int(s)
	}
	if err := enc.WriteSamples(buf); err != nil {
		f.Close()
		return curated.Errorf(EncodeError, path, err)
	}

	if err := f.Close(); err != nil {
		return curated.Errorf(EncodeError, path, err)
	}

	logger.Logf("wavwriter", "wrote %d samples to %s", len(samples), path)
	return nil
}

// header describes the parts of an existing WAV file that appending needs
// to know about.
type header struct {
	audioFormat   uint16
	numChannels   uint16
	sampleRate    uint32
	bitsPerSample uint16

	// file offset and current byte length of the data chunk
	dataOffset int64
	dataSize   uint32
}

// parseHeader walks the RIFF structure of an open file looking for the
// fmt and data chunks.
func parseHeader(f *os.File) (header, error) {
	var h header

	var riffHdr [12]byte
	if _, err := f.ReadAt(riffHdr[:], 0); err != nil {
		return h, err
	}
	if string(riffHdr[0:4]) != "RIFF" || string(riffHdr[8:12]) != "WAVE" {
		return h, io.ErrUnexpectedEOF
	}

	offset := int64(12)
	seenFmt := false
	for {
		var chunkHdr [8]byte
		if _, err := f.ReadAt(chunkHdr[:], offset); err != nil {
			return h, err
		}
		id := string(chunkHdr[0:4])
		size := binary.LittleEndian.Uint32(chunkHdr[4:8])

		switch id {
		case "fmt ":
			var fmtChunk [16]byte
			if _, err := f.ReadAt(fmtChunk[:], offset+8); err != nil {
				return h, err
			}
			h.audioFormat = binary.LittleEndian.Uint16(fmtChunk[0:2])
			h.numChannels = binary.LittleEndian.Uint16(fmtChunk[2:4])
			h.sampleRate = binary.LittleEndian.Uint32(fmtChunk[4:8])
			h.bitsPerSample = binary.LittleEndian.Uint16(fmtChunk[14:16])
			seenFmt = true
		case "data":
			if !seenFmt {
				return h, io.ErrUnexpectedEOF
			}
			h.dataOffset = offset
			h.dataSize = size
			return h, nil
		}

		// chunks are word aligned
		offset += 8 + int64(size)
		if size%2 == 1 {
			offset++
		}
	}
}

// Append adds samples to the data chunk of an existing WAV file and
// patches the RIFF and data chunk sizes. The existing file must be mono
// 16-bit PCM at the same sample rate. If the file does not exist it is
// created as with Save.
func Append(path string, samples []int16, sampleRate int) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0644)
	if os.IsNotExist(err) {
		return Save(path, samples, sampleRate)
	}
	if err != nil {
		return curated.Errorf(EncodeError, path, err)
	}
	defer f.Close()

	h, err := parseHeader(f)
	if err != nil {
		return curated.Errorf(EncodeError, path, err)
	}

	if h.audioFormat != 1 || h.bitsPerSample != 16 {
		return curated.Errorf(FormatMismatch, path, "not 16-bit PCM")
	}
	if h.numChannels != 1 {
		return curated.Errorf(FormatMismatch, path, "not mono")
	}
	if h.sampleRate != uint32(sampleRate) {
		return curated.Errorf(FormatMismatch, path, "sample rate differs")
	}

	// append the new samples at the end of the data chunk
	if _, err := f.Seek(h.dataOffset+8+int64(h.dataSize), io.SeekStart); err != nil {
		return curated.Errorf(EncodeError, path, err)
	}
	if err := binary.Write(f, binary.LittleEndian, samples); err != nil {
		return curated.Errorf(EncodeError, path, err)
	}

	// patch the data chunk size and the RIFF size
	added := uint32(len(samples) * 2)

	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], h.dataSize+added)
	if _, err := f.WriteAt(u32[:], h.dataOffset+4); err != nil {
		return curated.Errorf(EncodeError, path, err)
	}

	var riffSize [4]byte
	if _, err := f.ReadAt(riffSize[:], 4); err != nil {
		return curated.Errorf(EncodeError, path, err)
	}
	binary.LittleEndian.PutUint32(riffSize[:], binary.LittleEndian.Uint32(riffSize[:])+added)
	if _, err := f.WriteAt(riffSize[:], 4); err != nil {
		return curated.Errorf(EncodeError, path, err)
	}

	logger.Logf("wavwriter", "appended %d samples to %s", len(samples), path)
	return nil
}

// ReadPrefix returns the first n samples of an existing mono 16-bit PCM
// WAV file. Used when a recording overwrites a tape from the middle: the
// audio before the head position survives. A missing file is not an error;
// it yields no samples.
func ReadPrefix(path string, n int64, sampleRate int) ([]int16, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, curated.Errorf(EncodeError, path, err)
	}
	defer f.Close()

	h, err := parseHeader(f)
	if err != nil {
		return nil, curated.Errorf(EncodeError, path, err)
	}
	if h.audioFormat != 1 || h.bitsPerSample != 16 || h.numChannels != 1 || h.sampleRate != uint32(sampleRate) {
		return nil, curated.Errorf(FormatMismatch, path, "existing file is not mono 16-bit PCM at the recording rate")
	}

	avail := int64(h.dataSize / 2)
	if n > avail {
		n = avail
	}
	if n <= 0 {
		return nil, nil
	}

	if _, err := f.Seek(h.dataOffset+8, io.SeekStart); err != nil {
		return nil, curated.Errorf(EncodeError, path, err)
	}
	samples := make([]int16, n)
	if err := binary.Read(f, binary.LittleEndian, samples); err != nil {
		return nil, curated.Errorf(EncodeError, path, err)
	}

	return samples, nil
}
