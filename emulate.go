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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hardknott/speccy48/beeper"
	"github.com/hardknott/speccy48/curated"
	"github.com/hardknott/speccy48/gui/sdl"
	"github.com/hardknott/speccy48/gui/sdlaudio"
	"github.com/hardknott/speccy48/hardware"
	"github.com/hardknott/speccy48/hardware/cpu"
	"github.com/hardknott/speccy48/logger"
	"github.com/hardknott/speccy48/tape"
)

// emulate builds the machine from the configuration and runs it until the
// user quits or a signal arrives.
func emulate(conf Config) error {
	rom, err := os.ReadFile(conf.ROMPath)
	if err != nil {
		return err
	}

	// the beeper always exists, even with audio off: the core keeps its
	// bookkeeping and the latency figures stay meaningful for logging
	bpr := beeper.NewBeeper(sdlaudio.SampleRate)
	bpr.Debug = conf.BeeperLog

	spc, err := hardware.NewSpeccy(rom, bpr)
	if err != nil {
		return err
	}

	// tape input
	var deck tape.Player
	switch conf.TapeFormat {
	case TapeTAP:
		blocks, err := tape.LoadTAP(conf.TapePath)
		if err != nil {
			return err
		}
		bp := tape.NewBlockPlayer(blocks)
		bp.Debug = conf.TapeDebug
		deck = bp
	case TapeTZX:
		blocks, err := tape.LoadTZX(conf.TapePath)
		if err != nil {
			return err
		}
		bp := tape.NewBlockPlayer(blocks)
		bp.Debug = conf.TapeDebug
		deck = bp
	case TapeWAV:
		wave, err := tape.LoadWAV(conf.TapePath)
		if err != nil {
			return err
		}
		d := tape.NewDeck(wave)
		d.Debug = conf.TapeDebug
		deck = d
	case TapeMP3:
		wave, err := tape.LoadMP3(conf.TapePath)
		if err != nil {
			return err
		}
		d := tape.NewDeck(wave)
		d.Debug = conf.TapeDebug
		deck = d
	}
	if deck != nil {
		spc.AttachTape(deck)
	}

	// tape output
	var rec *tape.Recorder
	if conf.RecordPath != "" {
		format := tape.RecordTAP
		if conf.RecordWAV {
			format = tape.RecordWAV
		}
		rec = tape.NewRecorder(conf.RecordPath, format, sdlaudio.SampleRate)
		rec.Debug = conf.TapeDebug
		spc.AttachRecorder(rec)
	}

	// host audio. failure is not fatal: the machine runs silent
	var aud *sdlaudio.Audio
	if !conf.NoAudio {
		aud, err = sdlaudio.NewAudio(bpr, conf.AudioDumpPath)
		if err != nil {
			logger.Logf("emulation", "no audio: %v", err)
			fmt.Fprintf(os.Stderr, "speccy48: audio: %v\n", err)
			aud = nil
		} else {
			spc.ThrottleEnabled = true
		}
	}

	scr, err := sdl.NewScreen(conf.Scale)
	if err != nil {
		return err
	}
	defer scr.Destroy()

	inp := sdl.NewInput(spc.Keyboard)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	running := true
	inp.OnControl = func(c sdl.Control) {
		switch c {
		case sdl.CtrlQuit:
			running = false

		case sdl.CtrlTapePlayPause:
			if deck == nil {
				return
			}
			switch {
			case deck.Playing():
				deck.Pause(spc.TStates)
			case deck.Done():
				logger.Log("tape", "end of tape; rewind first")
			default:
				// a deck that has never started has nothing to resume
				deck.Resume(spc.TStates)
				if !deck.Playing() {
					deck.Start(spc.TStates)
				}
			}

		case sdl.CtrlTapeRewind:
			if deck != nil {
				deck.Rewind()
			}

		case sdl.CtrlRecord, sdl.CtrlRecordAppend:
			if rec == nil {
				return
			}
			if rec.Recording() {
				if err := rec.Stop(spc.TStates); err != nil {
					fmt.Fprintf(os.Stderr, "speccy48: %v\n", err)
				}
				return
			}

			var head uint64
			if d, ok := deck.(*tape.Deck); ok && d != nil {
				head = d.Position()
			}
			if err := rec.Start(spc.TStates, c == sdl.CtrlRecordAppend || conf.RecordAppend, head); err != nil {
				fmt.Fprintf(os.Stderr, "speccy48: %v\n", err)
			}
		}
	}

	err = spc.Run(func() (bool, error) {
		select {
		case <-quit:
			return false, nil
		default:
		}

		inp.Service()
		if err := scr.Present(spc.Mem.Data(), spc.ULA.BorderColour); err != nil {
			return false, err
		}

		return running, nil
	})

	// an unknown opcode is unrecoverable: report and abort with the
	// diagnostics the error carries
	if err != nil && curated.Has(err, cpu.UnknownOpcode) {
		fmt.Fprintf(os.Stderr, "speccy48: fatal: %v\n", err)
		logger.Write(os.Stderr)
		os.Exit(1)
	}

	// orderly shutdown: stop the tape, flush the recorder, close audio
	if deck != nil && deck.Playing() {
		deck.Pause(spc.TStates)
	}
	if rec != nil {
		if serr := rec.Stop(spc.TStates); serr != nil && err == nil {
			err = serr
		}
	}
	if aud != nil {
		if aerr := aud.End(); aerr != nil && err == nil {
			err = aerr
		}
	}

	return err
}
