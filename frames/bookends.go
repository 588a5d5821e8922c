package frames

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// RenderIntro composes the title card shown before the first question
// of a full-format video.
func (c *Composer) RenderIntro(title string, questionCount int) image.Image {
	width := c.cfg.Video.FullWidth
	height := c.cfg.Video.FullHeight
	dc := gg.NewContext(width, height)
	dc.SetColor(c.background)
	dc.Clear()

	cx := float64(width) / 2
	cy := float64(height) / 2

	dc.SetFontFace(c.face(c.bold, 80))
	dc.SetColor(c.correct)
	dc.DrawStringAnchored(title, cx, cy-80, 0.5, 0.5)

	dc.SetFontFace(c.face(c.regular, 40))
	dc.SetColor(c.text)
	dc.DrawStringAnchored(fmt.Sprintf("%d Questions", questionCount), cx, cy+40, 0.5, 0.5)

	return dc.Image()
}

// RenderOutro composes the closing card with the final score and a
// call to action.
func (c *Composer) RenderOutro(score, total int) image.Image {
	width := c.cfg.Video.FullWidth
	height := c.cfg.Video.FullHeight
	dc := gg.NewContext(width, height)
	dc.SetColor(c.background)
	dc.Clear()

	cx := float64(width) / 2
	cy := float64(height) / 2

	dc.SetFontFace(c.face(c.bold, 70))
	dc.SetColor(c.text)
	dc.DrawStringAnchored("Quiz Complete!", cx, cy-120, 0.5, 0.5)

	dc.SetFontFace(c.face(c.bold, 100))
	dc.SetColor(c.correct)
	dc.DrawStringAnchored(fmt.Sprintf("%d/%d", score, total), cx, cy, 0.5, 0.5)

	dc.SetFontFace(c.face(c.regular, 40))
	dc.SetColor(c.text)
	dc.DrawStringAnchored("Like & Subscribe for more!", cx, cy+140, 0.5, 0.5)

	return dc.Image()
}

// fitImage scales an image down to fit inside maxW x maxH, keeping its
// aspect ratio. Images already small enough are returned as-is.
func fitImage(img image.Image, maxW, maxH int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxW && h <= maxH {
		return img
	}

	scale := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < scale {
		scale = s
	}
	dstW := int(float64(w) * scale)
	dstH := int(float64(h) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}
