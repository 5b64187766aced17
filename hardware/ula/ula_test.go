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

package ula_test

import (
	"testing"

	"github.com/hardknott/speccy48/hardware/keyboard"
	"github.com/hardknott/speccy48/hardware/ula"
	"github.com/hardknott/speccy48/test"
)

type beeperSpy struct {
	events []ula.WriteEvent
}

func (b *beeperSpy) Push(tstate uint64, level uint8) {
	b.events = append(b.events, ula.WriteEvent{Value: level, TState: tstate})
}

type micSpy struct {
	events []ula.WriteEvent
}

func (m *micSpy) Mic(tstate uint64, level uint8) {
	m.events = append(m.events, ula.WriteEvent{Value: level, TState: tstate})
}

type earStub struct {
	level   bool
	driving bool
}

func (e *earStub) EARBit() (bool, bool) {
	return e.level, e.driving
}

func TestBorderAndBeeperEvents(t *testing.T) {
	kb := keyboard.NewMatrix()
	u := ula.NewULA(kb)
	bpr := &beeperSpy{}
	mic := &micSpy{}
	u.Attach(bpr, mic, nil)

	// border colour 7, speaker up
	u.Write(0x17, 100)
	u.ProcessEvents()
	test.ExpectEquality(t, u.BorderColour, uint8(7))
	test.ExpectEquality(t, len(bpr.events), 1)
	test.ExpectEquality(t, bpr.events[0].TState, uint64(100))
	test.ExpectEquality(t, bpr.events[0].Value, uint8(1))

	// same speaker level again: no event
	u.Write(0x10, 150)
	u.ProcessEvents()
	test.ExpectEquality(t, len(bpr.events), 1)

	// speaker down
	u.Write(0x00, 200)
	u.ProcessEvents()
	test.ExpectEquality(t, len(bpr.events), 2)
	test.ExpectEquality(t, bpr.events[1].TState, uint64(200))
	test.ExpectEquality(t, bpr.events[1].Value, uint8(0))
}

func TestMicForwarding(t *testing.T) {
	kb := keyboard.NewMatrix()
	u := ula.NewULA(kb)
	mic := &micSpy{}
	u.Attach(nil, mic, nil)

	// bit 3 is the MIC line; every write is forwarded
	u.Write(0x18, 100)
	u.Write(0x10, 200)
	u.ProcessEvents()

	test.ExpectEquality(t, len(mic.events), 2)
	test.ExpectEquality(t, mic.events[0].Value, uint8(1))
	test.ExpectEquality(t, mic.events[1].Value, uint8(0))
}

func TestTimestampClamp(t *testing.T) {
	kb := keyboard.NewMatrix()
	u := ula.NewULA(kb)
	bpr := &beeperSpy{}
	u.Attach(bpr, nil, nil)

	u.Write(0x10, 100)
	// a timestamp in the past is clamped forward
	u.Write(0x00, 50)
	u.ProcessEvents()

	test.ExpectEquality(t, len(bpr.events), 2)
	test.ExpectEquality(t, bpr.events[0].TState, uint64(100))
	test.ExpectEquality(t, bpr.events[1].TState, uint64(100))
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	kb := keyboard.NewMatrix()
	u := ula.NewULA(kb)
	u.Attach(nil, nil, nil)

	for i := 0; i < ula.QueueLen+10; i++ {
		u.Write(uint8(i&0x07), uint64(i))
	}
	test.ExpectEquality(t, u.Queued(), ula.QueueLen)

	u.ProcessEvents()
	// the last write wins the border colour
	test.ExpectEquality(t, u.BorderColour, uint8((ula.QueueLen+9)&0x07))
	test.ExpectEquality(t, u.Queued(), 0)
}

func TestKeyboardRead(t *testing.T) {
	kb := keyboard.NewMatrix()
	u := ula.NewULA(kb)
	u.Attach(nil, nil, nil)

	// all keys up, no tape: every line floats high
	test.ExpectEquality(t, u.Read(0x00), uint8(0xff))

	// press A: half-row 1, bit 0. selecting with high byte 0xfd
	kb.KeyDown(keyboard.KeyA)
	test.ExpectEquality(t, u.Read(0xfd), uint8(0xfe))

	// not visible on a different half-row select
	test.ExpectEquality(t, u.Read(0xfe), uint8(0xff))
	kb.KeyUp(keyboard.KeyA)
}

func TestEARBit(t *testing.T) {
	kb := keyboard.NewMatrix()
	u := ula.NewULA(kb)
	ear := &earStub{}
	u.Attach(nil, nil, ear)

	// tape playing and driving the line low
	ear.driving = true
	ear.level = false
	test.ExpectEquality(t, u.Read(0x00), uint8(0xbf))

	ear.level = true
	test.ExpectEquality(t, u.Read(0x00), uint8(0xff))

	// not playing: the line floats high
	ear.driving = false
	ear.level = false
	test.ExpectEquality(t, u.Read(0x00), uint8(0xff))
}
