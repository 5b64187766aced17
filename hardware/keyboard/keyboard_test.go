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

package keyboard_test

import (
	"testing"

	"github.com/hardknott/speccy48/hardware/keyboard"
	"github.com/hardknott/speccy48/test"
)

func TestMatrix(t *testing.T) {
	kb := keyboard.NewMatrix()

	// all keys up
	for row := 0; row < keyboard.NumRows; row++ {
		test.ExpectEquality(t, kb.Row(row), uint8(0xff))
	}

	// Q is half-row 2, bit 0, active low
	kb.KeyDown(keyboard.KeyQ)
	test.ExpectEquality(t, kb.Row(2), uint8(0xfe))

	kb.KeyUp(keyboard.KeyQ)
	test.ExpectEquality(t, kb.Row(2), uint8(0xff))
}

func TestReadRowsCombines(t *testing.T) {
	kb := keyboard.NewMatrix()

	// CAPS SHIFT (row 0) and SPACE (row 7) together: selecting both
	// half-rows ANDs their lines
	kb.KeyDown(keyboard.KeyCapsShift)
	kb.KeyDown(keyboard.KeySpace)

	test.ExpectEquality(t, kb.ReadRows(0xfe), uint8(0x1e)) // row 0 only
	test.ExpectEquality(t, kb.ReadRows(0x7f), uint8(0x1e)) // row 7 only
	test.ExpectEquality(t, kb.ReadRows(0x7e), uint8(0x1e)) // both
	test.ExpectEquality(t, kb.ReadRows(0xff), uint8(0x1f)) // neither
}
