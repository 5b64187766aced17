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
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/hardknott/speccy48/curated"
	"github.com/hardknott/speccy48/logger"
)

// tzxSignature opens every TZX file, followed by major/minor version
// bytes.
var tzxSignature = []byte("ZXTape!\x1a")

// tzxStandardSpeed is the only block ID the 48K subset needs: everything a
// standard ROM loader can read is expressible with it.
const tzxStandardSpeed = 0x10

// ReadTZX parses the supported subset of a TZX image: the signature and a
// stream of standard-speed data blocks. Any other block ID is an error
// naming the ID and its offset; silently skipping unknown blocks would
// produce a tape that loads wrongly with no indication why.
func ReadTZX(r io.Reader) ([]Block, error) {
	sig := make([]byte, len(tzxSignature)+2)
	if _, err := io.ReadFull(r, sig); err != nil {
		return nil, curated.Errorf(ParseError, "tzx: truncated signature")
	}
	if !bytes.Equal(sig[:len(tzxSignature)], tzxSignature) {
		return nil, curated.Errorf(ParseError, "tzx: bad signature")
	}

	major := sig[len(tzxSignature)]
	minor := sig[len(tzxSignature)+1]
	logger.Logf("tape", "tzx version %d.%02d", major, minor)

	var blocks []Block
	offset := int64(len(sig))

	for {
		var id [1]byte
		_, err := io.ReadFull(r, id[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, curated.Errorf(ParseError, fmt.Sprintf("tzx: read error at offset %d: %v", offset, err))
		}

		switch id[0] {
		case tzxStandardSpeed:
			var hdr struct {
				PauseMS uint16
				Length  uint16
			}
			if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
				return nil, curated.Errorf(ParseError, fmt.Sprintf("tzx: truncated block header at offset %d", offset))
			}

			data := make([]byte, hdr.Length)
			if _, err := io.ReadFull(r, data); err != nil {
				return nil, curated.Errorf(ParseError, fmt.Sprintf("tzx: truncated block at offset %d (wanted %d bytes)", offset, hdr.Length))
			}

			blocks = append(blocks, Block{Data: data, PauseMS: uint32(hdr.PauseMS)})
			offset += 1 + 4 + int64(hdr.Length)

		default:
			return nil, curated.Errorf(ParseError, fmt.Sprintf("tzx: unsupported block ID %#02x at offset %d", id[0], offset))
		}
	}

	if len(blocks) == 0 {
		return nil, curated.Errorf(ParseError, "tzx: no blocks in file")
	}

	return blocks, nil
}

// LoadTZX reads a TZX image from the filesystem.
func LoadTZX(path string) ([]Block, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, curated.Errorf(IOError, path, err)
	}
	defer f.Close()

	blocks, err := ReadTZX(f)
	if err != nil {
		return nil, err
	}

	logger.Logf("tape", "%s: %d blocks", path, len(blocks))
	return blocks, nil
}
