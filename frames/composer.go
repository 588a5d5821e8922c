// Package frames renders video-grade still images for every display
// state of a quiz question. Rendering is a pure function of the display
// state: fonts and colors are fixed at construction and the same state
// always produces the same pixels.
package frames

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"

	"github.com/MVinothkumarAWS/k2-Quiz/config"
	"github.com/MVinothkumarAWS/k2-Quiz/types"
)

const lineSpacing = 1.3

type Composer struct {
	cfg     *config.Config
	regular *truetype.Font
	bold    *truetype.Font

	background color.RGBA
	text       color.RGBA
	optionBox  color.RGBA
	timer      color.RGBA
	correct    color.RGBA
}

// NewComposer loads fonts and parses the palette once. Missing font
// assets fall back to the built-in Go fonts.
func NewComposer(cfg *config.Config) *Composer {
	return &Composer{
		cfg:        cfg,
		regular:    loadFont(cfg.Fonts.Regular, builtinRegular()),
		bold:       loadFont(cfg.Fonts.Bold, builtinBold()),
		background: hexToColor(cfg.Colors.Background),
		text:       hexToColor(cfg.Colors.Text),
		optionBox:  hexToColor(cfg.Colors.OptionBox),
		timer:      hexToColor(cfg.Colors.Timer),
		correct:    hexToColor(cfg.Colors.Correct),
	}
}

// Dimensions returns the frame size for a format.
func (c *Composer) Dimensions(format types.Format) (int, int) {
	if format == types.FormatShorts {
		return c.cfg.Video.ShortsWidth, c.cfg.Video.ShortsHeight
	}
	return c.cfg.Video.FullWidth, c.cfg.Video.FullHeight
}

// Render composes one complete frame for the given display state.
func (c *Composer) Render(state *types.DisplayState, format types.Format) image.Image {
	width, height := c.Dimensions(format)
	dc := gg.NewContext(width, height)
	dc.SetColor(c.background)
	dc.Clear()

	if format == types.FormatShorts {
		c.renderShorts(dc, state)
	} else {
		c.renderFull(dc, state)
	}
	return dc.Image()
}

func (c *Composer) renderShorts(dc *gg.Context, state *types.DisplayState) {
	width := float64(dc.Width())
	height := float64(dc.Height())
	padding := 60.0

	maxTextWidth := width - padding*2

	// Measure the question block so question + options sit in the
	// upper third of the frame.
	dc.SetFontFace(c.face(c.bold, c.cfg.Fonts.QuestionSize))
	qLines := dc.WordWrap(state.Question, maxTextWidth)
	qHeight := float64(len(qLines)) * float64(c.cfg.Fonts.QuestionSize) * lineSpacing

	const (
		optionHeight  = 64.0
		optionSpacing = 14.0
		gap           = 60.0
	)
	optionsTotal := float64(types.OptionCount) * (optionHeight + optionSpacing)
	contentHeight := qHeight + gap + optionsTotal
	y := (height - contentHeight) / 3
	if y < 100 {
		y = 100
	}

	dc.SetColor(c.text)
	dc.DrawStringWrapped(state.Question, padding, y, 0, 0, maxTextWidth, lineSpacing, gg.AlignLeft)
	y += qHeight + gap

	c.drawOptions(dc, state, padding, y, width-padding*2, optionHeight, optionSpacing, 15)

	if state.Countdown > 0 {
		c.drawCountdown(dc, state.Countdown, width/2, height-160)
	}
}

func (c *Composer) renderFull(dc *gg.Context, state *types.DisplayState) {
	width := float64(dc.Width())
	height := float64(dc.Height())
	padding := 80.0

	leftWidth := width * 0.55
	rightStart := leftWidth + 40

	// Question at top-left.
	maxTextWidth := leftWidth - padding
	dc.SetFontFace(c.face(c.bold, c.cfg.Fonts.QuestionSize))
	qLines := dc.WordWrap(state.Question, maxTextWidth)
	qHeight := float64(len(qLines)) * float64(c.cfg.Fonts.QuestionSize) * lineSpacing

	y := 100.0
	dc.SetColor(c.text)
	dc.DrawStringWrapped(state.Question, padding, y, 0, 0, maxTextWidth, lineSpacing, gg.AlignLeft)
	y += qHeight + 65

	const (
		optionHeight  = 80.0
		optionSpacing = 15.0
	)
	c.drawOptions(dc, state, padding, y, leftWidth-padding, optionHeight, optionSpacing, 12)

	// Illustration panel on the right.
	if state.Illustration != nil {
		panelW := int(width - rightStart - padding)
		fitted := fitImage(state.Illustration, panelW, 450)
		imgX := int(rightStart) + (panelW-fitted.Bounds().Dx())/2
		imgY := 150 + (450-fitted.Bounds().Dy())/2
		dc.DrawImage(fitted, imgX, imgY)
	}

	// Bottom bar: question counter, countdown, score.
	bottomY := height - 100
	if state.Progress != nil {
		dc.SetFontFace(c.face(c.regular, 36))
		dc.SetColor(c.text)
		counter := fmt.Sprintf("Q: %d/%d", state.Progress.Number, state.Progress.Total)
		dc.DrawStringAnchored(counter, padding, bottomY, 0, 0.5)

		dc.SetColor(c.correct)
		scoreText := fmt.Sprintf("Score: %d", state.Progress.Score)
		dc.DrawStringAnchored(scoreText, width-padding, bottomY, 1, 0.5)
	}
	if state.Countdown > 0 {
		c.drawCountdown(dc, state.Countdown, width/2, bottomY-40)
	}
}

// drawOptions draws the four labeled option boxes, highlighting the
// correct one with the accent color and an outward glow.
func (c *Composer) drawOptions(dc *gg.Context, state *types.DisplayState, x, y, boxWidth, boxHeight, spacing, radius float64) {
	dc.SetFontFace(c.face(c.regular, c.cfg.Fonts.OptionSize))

	for i := 0; i < types.OptionCount; i++ {
		optY := y + float64(i)*(boxHeight+spacing)
		highlighted := state.Highlight == i

		if highlighted {
			c.drawGlow(dc, x, optY, boxWidth, boxHeight, radius)
			dc.SetColor(c.correct)
		} else {
			dc.SetColor(c.optionBox)
		}
		dc.DrawRoundedRectangle(x, optY, boxWidth, boxHeight, radius)
		dc.Fill()

		display := fmt.Sprintf("%s) %s", types.OptionLabels[i], state.Options[i])
		if highlighted {
			dc.SetRGB(0, 0, 0)
		} else {
			dc.SetColor(c.text)
		}
		dc.DrawStringAnchored(display, x+30, optY+boxHeight/2, 0, 0.35)
	}
}

// drawGlow draws a concentric halo of decreasing opacity around a box.
func (c *Composer) drawGlow(dc *gg.Context, x, y, w, h, radius float64) {
	for i := 3; i >= 1; i-- {
		expand := float64(i) * 8
		alpha := 100 / i
		dc.SetRGBA255(int(c.correct.R), int(c.correct.G), int(c.correct.B), alpha)
		dc.DrawRoundedRectangle(x-expand, y-expand, w+expand*2, h+expand*2, radius+expand)
		dc.Fill()
	}
}

// drawCountdown draws the countdown numeral on a dark badge, centered
// horizontally at (cx, top).
func (c *Composer) drawCountdown(dc *gg.Context, value int, cx, top float64) {
	dc.SetFontFace(c.face(c.bold, c.cfg.Fonts.TimerSize))
	text := strconv.Itoa(value)
	tw, th := dc.MeasureString(text)

	const badgePad = 18.0
	dc.SetRGBA255(0, 0, 0, 255)
	dc.DrawRoundedRectangle(cx-tw/2-badgePad, top-badgePad, tw+badgePad*2, th+badgePad*2, 20)
	dc.Fill()

	dc.SetColor(c.timer)
	dc.DrawStringAnchored(text, cx, top+th/2, 0.5, 0.35)
}
