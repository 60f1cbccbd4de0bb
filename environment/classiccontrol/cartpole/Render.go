package cartpole

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

var (
	skyShade    = color.RGBA{240, 240, 240, 255}
	trackColour = color.RGBA{60, 60, 60, 255}
	cartColour  = color.RGBA{40, 80, 160, 255}
	poleColour  = color.RGBA{200, 120, 40, 255}
	boundColour = color.RGBA{180, 40, 40, 255}
)

// Render draws a cart and pole at physical state s on a track of
// half-width maxX and returns the image
func Render(s PhysicalState, poleLength, maxX float64, width,
	height int) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetColor(skyShade)
	dc.Clear()

	// Leave a margin of 10% of the track on each side
	scale := float64(width) / (2.2 * maxX)
	toPixels := func(x float64) float64 {
		return float64(width)/2 + x*scale
	}
	trackY := float64(height) * 0.75

	// Track and bounds
	dc.SetColor(trackColour)
	dc.SetLineWidth(2.0)
	dc.DrawLine(0, trackY, float64(width), trackY)
	dc.Stroke()

	dc.SetColor(boundColour)
	for _, bound := range []float64{-maxX, maxX} {
		dc.DrawLine(toPixels(bound), trackY-10, toPixels(bound), trackY+10)
	}
	dc.Stroke()

	// Cart
	cartW, cartH := 0.4*scale, 0.2*scale
	cartX := toPixels(s.X)
	dc.SetColor(cartColour)
	dc.DrawRectangle(cartX-cartW/2, trackY-cartH, cartW, cartH)
	dc.Fill()

	// Pole, with angle measured from the vertical
	poleLen := 2 * poleLength * scale
	tipX := cartX + poleLen*math.Sin(s.Angle)
	tipY := trackY - cartH - poleLen*math.Cos(s.Angle)
	dc.SetColor(poleColour)
	dc.SetLineWidth(6.0)
	dc.DrawLine(cartX, trackY-cartH, tipX, tipY)
	dc.Stroke()

	return dc.Image()
}

// SavePNG renders the current state of the Cartpole to a PNG file
func (c *Cartpole) SavePNG(filename string, width, height int) error {
	img := Render(c.state, c.length, c.MaxXPos(), width, height)
	if err := gg.SavePNG(filename, img); err != nil {
		return fmt.Errorf("savePNG: %v", err)
	}
	return nil
}
