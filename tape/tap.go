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
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/hardknott/speccy48/curated"
	"github.com/hardknott/speccy48/logger"
)

// the pause written after each block when converting to TAP. the format
// itself has no field for it; one second is what everything assumes.
const defaultPauseMS = 1000

// ReadTAP parses a TAP image: a bare concatenation of records, each a
// little-endian u16 length followed by that many payload bytes.
func ReadTAP(r io.Reader) ([]Block, error) {
	var blocks []Block
	var offset int64

	for {
		var length uint16
		err := binary.Read(r, binary.LittleEndian, &length)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, curated.Errorf(ParseError, fmt.Sprintf("tap: truncated record length at offset %d", offset))
		}
		offset += 2

		data := make([]byte, length)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, curated.Errorf(ParseError, fmt.Sprintf("tap: truncated record at offset %d (wanted %d bytes)", offset, length))
		}
		offset += int64(length)

		blocks = append(blocks, Block{Data: data, PauseMS: defaultPauseMS})
	}

	if len(blocks) == 0 {
		return nil, curated.Errorf(ParseError, "tap: no blocks in file")
	}

	return blocks, nil
}

// LoadTAP reads a TAP image from the filesystem.
func LoadTAP(path string) ([]Block, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, curated.Errorf(IOError, path, err)
	}
	defer f.Close()

	blocks, err := ReadTAP(f)
	if err != nil {
		return nil, err
	}

	logger.Logf("tape", "%s: %d blocks", path, len(blocks))
	return blocks, nil
}

// WriteTAP serialises blocks as a TAP image.
func WriteTAP(w io.Writer, blocks []Block) error {
	for _, blk := range blocks {
		if err := binary.Write(w, binary.LittleEndian, uint16(len(blk.Data))); err != nil {
			return err
		}
		if _, err := w.Write(blk.Data); err != nil {
			return err
		}
	}
	return nil
}

// SaveTAP writes blocks to the filesystem as a TAP image.
func SaveTAP(path string, blocks []Block) error {
	f, err := os.Create(path)
	if err != nil {
		return curated.Errorf(IOError, path, err)
	}

	if err := WriteTAP(f, blocks); err != nil {
		f.Close()
		return curated.Errorf(IOError, path, err)
	}

	if err := f.Close(); err != nil {
		return curated.Errorf(IOError, path, err)
	}

	logger.Logf("tape", "wrote %d blocks to %s", len(blocks), path)
	return nil
}
