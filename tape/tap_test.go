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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hardknott/speccy48/curated"
	"github.com/hardknott/speccy48/tape"
)

func TestReadTAP(t *testing.T) {
	var buf bytes.Buffer
	// two records: 3 bytes and 2 bytes
	buf.Write([]byte{0x03, 0x00, 0x00, 0x10, 0x10})
	buf.Write([]byte{0x02, 0x00, 0xff, 0xff})

	blocks, err := tape.ReadTAP(&buf)
	assert.NoError(t, err)
	assert.Len(t, blocks, 2)
	assert.Equal(t, []byte{0x00, 0x10, 0x10}, blocks[0].Data)
	assert.Equal(t, []byte{0xff, 0xff}, blocks[1].Data)
	assert.True(t, blocks[0].IsHeader())
	assert.False(t, blocks[1].IsHeader())
}

func TestReadTAPTruncated(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"short length", []byte{0x03}},
		{"short payload", []byte{0x03, 0x00, 0x01}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tape.ReadTAP(bytes.NewReader(tc.data))
			assert.Error(t, err)
			assert.True(t, curated.Is(err, tape.ParseError))
		})
	}
}

func TestWriteTAPRoundTrip(t *testing.T) {
	in := []tape.Block{
		{Data: []byte{0x00, 0x01, 0x02, 0x03}},
		{Data: []byte{0xff, 0xaa}},
	}

	var buf bytes.Buffer
	assert.NoError(t, tape.WriteTAP(&buf, in))

	// the record framing is length-LE + payload
	assert.Equal(t, []byte{0x04, 0x00, 0x00, 0x01, 0x02, 0x03, 0x02, 0x00, 0xff, 0xaa}, buf.Bytes())

	out, err := tape.ReadTAP(&buf)
	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, in[0].Data, out[0].Data)
	assert.Equal(t, in[1].Data, out[1].Data)
}

func TestReadTZX(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("ZXTape!\x1a")
	buf.Write([]byte{1, 20}) // version 1.20
	// standard speed block: pause 1000ms, 3 bytes
	buf.Write([]byte{0x10, 0xe8, 0x03, 0x03, 0x00, 0xff, 0x01, 0x02})

	blocks, err := tape.ReadTZX(&buf)
	assert.NoError(t, err)
	assert.Len(t, blocks, 1)
	assert.Equal(t, []byte{0xff, 0x01, 0x02}, blocks[0].Data)
	assert.Equal(t, uint32(1000), blocks[0].PauseMS)
}

func TestReadTZXUnknownBlock(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("ZXTape!\x1a")
	buf.Write([]byte{1, 20})
	buf.Write([]byte{0x30, 0x04, 't', 'e', 'x', 't'}) // text description block

	_, err := tape.ReadTZX(&buf)
	assert.Error(t, err)
	assert.True(t, curated.Is(err, tape.ParseError))
	// the message names the offending ID and where it was found
	assert.Contains(t, err.Error(), "0x30")
	assert.Contains(t, err.Error(), "offset 10")
}

func TestReadTZXBadSignature(t *testing.T) {
	_, err := tape.ReadTZX(bytes.NewReader([]byte("NotATape!!")))
	assert.Error(t, err)
	assert.True(t, curated.Is(err, tape.ParseError))
}
