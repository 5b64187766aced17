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

package hardware

import (
	"time"

	"github.com/hardknott/speccy48/hardware/clocks"
)

// the pacing loop will not try to catch up more than this much real time
// in one iteration. a debugger stop or a laptop suspend otherwise turns
// into a long burst of fast-forward.
const maxCatchUp = 250 * time.Millisecond

// beeper latency above which the main loop eases off, and the longest
// single sleep it will take to do so.
const (
	throttleSamples = 4096
	throttleSleep   = 8 * time.Millisecond
)

// Run drives the machine at wall-clock speed until continueCheck says
// otherwise. continueCheck is called once per video frame with rendering
// expected to happen inside it; returning false ends the run.
func (spc *Speccy) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	last := time.Now()

	for {
		// budget of T-states owed for the real time that has passed
		now := time.Now()
		elapsed := now.Sub(last)
		if elapsed > maxCatchUp {
			elapsed = maxCatchUp
		}
		last = now

		budget := int64(elapsed.Seconds() * clocks.CPUClock)

		for budget > 0 {
			start := spc.TStates

			frame, err := spc.Step()
			if err != nil {
				return err
			}

			budget -= int64(spc.TStates - start)

			if frame {
				cont, err := continueCheck()
				if err != nil {
					return err
				}
				if !cont {
					return nil
				}
			}
		}

		// let the audio consumer catch up if we have run too far ahead
		if spc.ThrottleEnabled && spc.Beeper != nil && spc.Beeper.Latency() > throttleSamples {
			time.Sleep(throttleSleep)
		} else {
			// brief yield so the pacing loop is not a pure spin
			time.Sleep(time.Millisecond)
		}
	}
}
