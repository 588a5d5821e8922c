package frames

import (
	"fmt"
	"image/color"
	"os"

	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// loadFont parses the TTF at path, falling back to the built-in Go font
// when the asset is missing. A missing font degrades styling; it never
// fails frame composition.
func loadFont(path string, fallback []byte) *truetype.Font {
	data, err := os.ReadFile(path)
	if err == nil {
		if f, parseErr := truetype.Parse(data); parseErr == nil {
			return f
		}
		log.Warnf("[frames] font %s is unreadable — using built-in font", path)
	} else {
		log.Warnf("[frames] font %s not found — using built-in font", path)
	}
	f, err := truetype.Parse(fallback)
	if err != nil {
		// The embedded Go fonts always parse.
		panic(fmt.Sprintf("parse built-in font: %v", err))
	}
	return f
}

func builtinRegular() []byte { return goregular.TTF }
func builtinBold() []byte    { return gobold.TTF }

func (c *Composer) face(f *truetype.Font, size int) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: float64(size)})
}

// hexToColor parses "#rrggbb" into an opaque color.
func hexToColor(hex string) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
