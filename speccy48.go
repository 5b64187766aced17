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

// Speccy48 is an emulator of the 48K ZX Spectrum: Z80, ULA, beeper and
// cassette, with a plain SDL window for a display.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"

	"github.com/hardknott/speccy48/logger"
	"github.com/hardknott/speccy48/statsview"
	"github.com/hardknott/speccy48/version"
)

// TapeFormat enumerates the recognised tape input formats.
type TapeFormat int

// List of tape input formats.
const (
	TapeNone TapeFormat = iota
	TapeTAP
	TapeTZX
	TapeWAV
	TapeMP3
)

// Config collects everything the command line can say.
type Config struct {
	ROMPath string

	TapePath   string
	TapeFormat TapeFormat

	RecordPath   string
	RecordWAV    bool
	RecordAppend bool

	AudioDumpPath string
	NoAudio       bool

	TapeDebug bool
	BeeperLog bool

	Scale int
}

// tapeFormatFromPath infers the tape format from the file extension.
func tapeFormatFromPath(path string) (TapeFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tap":
		return TapeTAP, nil
	case ".tzx":
		return TapeTZX, nil
	case ".wav":
		return TapeWAV, nil
	case ".mp3":
		return TapeMP3, nil
	}
	return TapeNone, fmt.Errorf("unrecognised tape format: %s", path)
}

func main() {
	app := cli.NewApp()

	app.Name = "speccy48"
	app.Usage = "a 48K ZX Spectrum emulator"
	app.ArgsUsage = "<rom-file>"
	app.Version = version.Version()

	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "tape", Usage: "tape input file (.tap/.tzx/.wav/.mp3)"},
		cli.StringFlag{Name: "record", Usage: "recorder output file (.tap/.wav)"},
		cli.BoolFlag{Name: "append", Usage: "append to the recording target instead of overwriting (wav only)"},
		cli.StringFlag{Name: "audio-dump", Usage: "write all beeper output to a wav file"},
		cli.BoolFlag{Name: "no-audio", Usage: "do not open the host audio device"},
		cli.BoolFlag{Name: "tape-debug", Usage: "verbose tape logging"},
		cli.BoolFlag{Name: "beeper-log", Usage: "verbose beeper pipeline logging"},
		cli.IntFlag{Name: "scale", Value: 2, Usage: "window scale factor"},
		cli.BoolFlag{Name: "log", Usage: "echo the log to stderr"},
		cli.BoolFlag{Name: "stats", Usage: "run the statistics server (requires the statsview build tag)"},
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.NewExitError("speccy48: a rom file is required", 2)
		}

		conf := Config{
			ROMPath:       c.Args().First(),
			TapePath:      c.String("tape"),
			RecordPath:    c.String("record"),
			RecordAppend:  c.Bool("append"),
			AudioDumpPath: c.String("audio-dump"),
			NoAudio:       c.Bool("no-audio"),
			TapeDebug:     c.Bool("tape-debug"),
			BeeperLog:     c.Bool("beeper-log"),
			Scale:         c.Int("scale"),
		}

		if conf.TapePath != "" {
			var err error
			conf.TapeFormat, err = tapeFormatFromPath(conf.TapePath)
			if err != nil {
				return cli.NewExitError(fmt.Sprintf("speccy48: %v", err), 2)
			}
		}

		if conf.RecordPath != "" {
			switch strings.ToLower(filepath.Ext(conf.RecordPath)) {
			case ".tap":
				conf.RecordWAV = false
			case ".wav":
				conf.RecordWAV = true
			default:
				return cli.NewExitError(fmt.Sprintf("speccy48: unrecognised recording format: %s", conf.RecordPath), 2)
			}
		}

		if c.Bool("log") {
			logger.SetEcho(os.Stderr)
		}

		if c.Bool("stats") {
			if !statsview.Available() {
				fmt.Fprintln(os.Stderr, "speccy48: this build does not include the statistics server")
			} else {
				statsview.Launch(os.Stderr)
			}
		}

		if err := emulate(conf); err != nil {
			return cli.NewExitError(fmt.Sprintf("speccy48: %v", err), 1)
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
