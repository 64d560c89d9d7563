// Package samples synthesizes placeholder puzzle images so a generated
// manifest always has files behind it, with or without network access.
package samples

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultSize    = 600
	DefaultQuality = 85

	// basicfont glyphs are 7x13; scale them up to stay readable on 600px
	textScale = 3
)

// DefaultPalette is cycled by slot index: slot i fades from palette[i] to
// palette[i+1].
var DefaultPalette = []color.RGBA{
	{255, 107, 107, 255}, // red
	{255, 193, 7, 255},   // yellow
	{76, 175, 80, 255},   // green
	{33, 150, 243, 255},  // blue
	{156, 39, 176, 255},  // purple
	{255, 152, 0, 255},   // orange
}

var textColor = color.RGBA{255, 255, 255, 255}

type Generator struct {
	Size    int
	Quality int
	Palette []color.RGBA
}

func NewGenerator() *Generator {
	return &Generator{
		Size:    DefaultSize,
		Quality: DefaultQuality,
		Palette: DefaultPalette,
	}
}

// Render draws the image for one (category, index) slot. The output depends
// only on its arguments and the generator settings.
func (g *Generator) Render(category string, index int) *image.RGBA {
	size := g.Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	from := g.Palette[mod(index, len(g.Palette))]
	to := g.Palette[mod(index+1, len(g.Palette))]

	for y := 0; y < size; y++ {
		ratio := float64(y) / float64(size)
		c := color.RGBA{
			R: lerp(from.R, to.R, ratio),
			G: lerp(from.G, to.G, ratio),
			B: lerp(from.B, to.B, ratio),
			A: 255,
		}
		row := img.Pix[y*img.Stride : y*img.Stride+size*4]
		for x := 0; x < size; x++ {
			row[x*4+0] = c.R
			row[x*4+1] = c.G
			row[x*4+2] = c.B
			row[x*4+3] = c.A
		}
	}

	center := size / 2
	drawCentered(img, strings.ToUpper(category), center, center-size/15)
	drawCentered(img, fmt.Sprintf("Image %d", index+1), center, center+size/15)
	return img
}

// WriteImage renders one slot and encodes it as JPEG at path.
func (g *Generator) WriteImage(path, category string, index int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := jpeg.Encode(f, g.Render(category, index), &jpeg.Options{Quality: g.Quality}); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func drawCentered(dst *image.RGBA, text string, cx, cy int) {
	face := basicfont.Face7x13
	d := &font.Drawer{Face: face}
	w := d.MeasureString(text).Ceil()
	h := face.Metrics().Height.Ceil()
	if w == 0 || h == 0 {
		return
	}

	glyphs := image.NewRGBA(image.Rect(0, 0, w, h))
	d.Dst = glyphs
	d.Src = image.NewUniform(textColor)
	d.Dot = fixed.P(0, face.Metrics().Ascent.Ceil())
	d.DrawString(text)

	sw, sh := w*textScale, h*textScale
	r := image.Rect(cx-sw/2, cy-sh/2, cx-sw/2+sw, cy-sh/2+sh)
	xdraw.NearestNeighbor.Scale(dst, r, glyphs, glyphs.Bounds(), xdraw.Over, nil)
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a)*(1-t) + float64(b)*t)
}

func mod(i, n int) int {
	m := i % n
	if m < 0 {
		m += n
	}
	return m
}
