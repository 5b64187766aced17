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

package cpu_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hardknott/speccy48/hardware/cpu"
)

// The ZEXDOC and ZEXALL exercisers are the reference test for Z80 flag
// behaviour: they CRC the flag results of every instruction form against
// values recorded from real silicon. ZEXALL includes the undocumented X
// and Y bits.
//
// The binaries are CP/M programs and are not distributed with the source.
// Drop zexdoc.com and/or zexall.com into testdata/ to enable these tests.
// Expect several minutes per run.
//
// Hosting them takes a three-call BDOS shim: function 2 (write character),
// function 9 (write $-terminated string) and function 0 (warm boot, which
// the exercisers reach by jumping to address zero on completion).

func TestZEXDOC(t *testing.T) {
	runZEX(t, filepath.Join("testdata", "zexdoc.com"))
}

func TestZEXALL(t *testing.T) {
	runZEX(t, filepath.Join("testdata", "zexall.com"))
}

func runZEX(t *testing.T, path string) {
	if testing.Short() {
		t.Skip("exerciser run is not short")
	}

	prog, err := os.ReadFile(path)
	if err != nil {
		t.Skipf("no exerciser binary at %s", path)
	}

	mem := newMockMem()
	copy(mem.internal[0x0100:], prog)

	// the BDOS entry point returns immediately; the call is intercepted
	// below when PC lands on it
	mem.internal[0x0005] = 0xc9 // RET

	mc := cpu.NewCPU(mem, newMockPorts())
	mc.PC = 0x0100
	mc.SP = 0xf000

	output := strings.Builder{}

	for {
		switch mc.PC {
		case 0x0000:
			// warm boot: the exerciser is done
			if strings.Contains(output.String(), "ERROR") {
				t.Logf("%s", output.String())
				t.Fatal("exerciser reported errors")
			}
			t.Logf("%s", output.String())
			return

		case 0x0005:
			// BDOS call
			switch mc.C {
			case 2:
				output.WriteByte(mc.E)
			case 9:
				addr := mc.DE()
				for mem.internal[addr] != '$' {
					output.WriteByte(mem.internal[addr])
					addr++
				}
			case 0:
				mc.PC = 0x0000
				continue
			}
		}

		if _, err := mc.Step(0); err != nil {
			t.Fatalf("%v\n%s", err, mc.String())
		}
	}
}
