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

// Package sdl is the host presentation layer: a window showing the screen
// memory and border, and the keyboard routed into the key matrix. It is
// strictly a consumer of the core: it reads the screen area of memory and
// the current border colour once per frame and draws whole frames.
package sdl

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/hardknott/speccy48/curated"
	"github.com/hardknott/speccy48/hardware/memory"
)

// CreateError is returned when the window or renderer cannot be created.
const CreateError = "sdl: %v"

// screen geometry. the real border is asymmetric and wider; a uniform 32
// pixels looks right in a window
const (
	screenWidth  = 256
	screenHeight = 192
	borderSize   = 32
	totalWidth   = screenWidth + 2*borderSize
	totalHeight  = screenHeight + 2*borderSize

	// bytes per pixel in the texture
	depth = 4
)

// the FLASH attribute swaps ink and paper at this frame cadence
const flashFrames = 16

// the 48K palette: normal and bright variants of the eight colours, as
// {R, G, B} byte triples.
var palette = [2][8][3]byte{
	{
		{0x00, 0x00, 0x00},
		{0x00, 0x00, 0xcd},
		{0xcd, 0x00, 0x00},
		{0xcd, 0x00, 0xcd},
		{0x00, 0xcd, 0x00},
		{0x00, 0xcd, 0xcd},
		{0xcd, 0xcd, 0x00},
		{0xcf, 0xcf, 0xcf},
	},
	{
		{0x00, 0x00, 0x00},
		{0x00, 0x00, 0xff},
		{0xff, 0x00, 0x00},
		{0xff, 0x00, 0xff},
		{0x00, 0xff, 0x00},
		{0x00, 0xff, 0xff},
		{0xff, 0xff, 0x00},
		{0xff, 0xff, 0xff},
	},
}

// Screen is the emulator window.
type Screen struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	pixels []byte

	// frame counter for the FLASH cadence
	frame int
}

// NewScreen creates the emulator window at the given integer scale.
func NewScreen(scale int) (*Screen, error) {
	if err := sdl.InitSubSystem(sdl.INIT_VIDEO); err != nil {
		return nil, curated.Errorf(CreateError, err)
	}

	scr := &Screen{
		pixels: make([]byte, totalWidth*totalHeight*depth),
	}

	var err error

	scr.window, err = sdl.CreateWindow("Speccy48",
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(totalWidth*scale), int32(totalHeight*scale),
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return nil, curated.Errorf(CreateError, err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, uint32(sdl.RENDERER_ACCELERATED)|uint32(sdl.RENDERER_PRESENTVSYNC))
	if err != nil {
		return nil, curated.Errorf(CreateError, err)
	}

	scr.texture, err = scr.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888), int(sdl.TEXTUREACCESS_STREAMING), int32(totalWidth), int32(totalHeight))
	if err != nil {
		return nil, curated.Errorf(CreateError, err)
	}

	return scr, nil
}

// Present draws a whole frame: the border from the current border colour
// and the 256x192 bitmap decoded from the screen area of memory.
func (scr *Screen) Present(mem []uint8, borderColour uint8) error {
	scr.frame++
	flash := scr.frame/flashFrames&1 == 1

	scr.fillBorder(borderColour)

	for y := 0; y < screenHeight; y++ {
		// the bitmap interleaving of the 48K screen: the three character
		// rows of y are scattered across the address bits
		rowAddr := memory.ScreenBase |
			(y&0x07)<<8 | (y&0x38)<<2 | (y&0xc0)<<5

		for col := 0; col < screenWidth/8; col++ {
			bits := mem[rowAddr|col]
			attr := mem[memory.AttrBase+(y/8)*32+col]

			ink := attr & 0x07
			paper := attr >> 3 & 0x07
			bright := attr >> 6 & 0x01
			if flash && attr&0x80 != 0 {
				ink, paper = paper, ink
			}

			for b := 0; b < 8; b++ {
				c := paper
				if bits&(0x80>>b) != 0 {
					c = ink
				}
				scr.setPixel(borderSize+col*8+b, borderSize+y, bright, c)
			}
		}
	}

	if err := scr.texture.Update(nil, scr.pixels, totalWidth*depth); err != nil {
		return curated.Errorf(CreateError, err)
	}
	if err := scr.renderer.Copy(scr.texture, nil, nil); err != nil {
		return curated.Errorf(CreateError, err)
	}
	scr.renderer.Present()

	return nil
}

func (scr *Screen) setPixel(x, y int, bright, colour uint8) {
	rgb := palette[bright][colour]
	i := (y*totalWidth + x) * depth
	scr.pixels[i] = rgb[0]
	scr.pixels[i+1] = rgb[1]
	scr.pixels[i+2] = rgb[2]
	scr.pixels[i+3] = 0xff
}

func (scr *Screen) fillBorder(colour uint8) {
	rgb := palette[0][colour&0x07]
	for y := 0; y < totalHeight; y++ {
		for x := 0; x < totalWidth; x++ {
			// skip the bitmap area
			if y >= borderSize && y < borderSize+screenHeight && x == borderSize {
				x = borderSize + screenWidth
			}
			i := (y*totalWidth + x) * depth
			scr.pixels[i] = rgb[0]
			scr.pixels[i+1] = rgb[1]
			scr.pixels[i+2] = rgb[2]
			scr.pixels[i+3] = 0xff
		}
	}
}

// Destroy releases the window and its resources.
func (scr *Screen) Destroy() {
	scr.texture.Destroy()
	scr.renderer.Destroy()
	scr.window.Destroy()
}
