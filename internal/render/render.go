// Package render draws stroke characters to PNG for inspecting stroke data
// and learner attempts.
package render

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/fogleman/gg"

	"github.com/abhisek/lingo/internal/content"
	"github.com/abhisek/lingo/internal/geometry"
)

// DefaultSize is the output edge length in pixels.
const DefaultSize = 300

var (
	background     = color.RGBA{0xF8, 0xFA, 0xFC, 0xFF}
	gridColor      = color.RGBA{0xE2, 0xE8, 0xF0, 0xFF}
	doneColor      = color.RGBA{0x0F, 0x17, 0x2A, 0xFF}
	remainingColor = color.RGBA{0xCB, 0xD5, 0xE1, 0xFF}
	userColor      = color.RGBA{0x8B, 0x5C, 0xF6, 0xFF}
	startColor     = color.RGBA{0xF4, 0x3F, 0x5E, 0xFF}
)

// Options controls what is drawn besides the character outline.
type Options struct {
	// Size is the output edge length in pixels. Zero means DefaultSize.
	Size int
	// Completed is how many strokes are drawn as finished. Negative means all.
	Completed int
	// User strokes are overlaid in canvas coordinates.
	User [][]geometry.Point
	// MarkStarts draws a dot where each remaining stroke begins.
	MarkStarts bool
}

// Character draws ch onto a new context. Canvas coordinates are scaled from
// geometry.CanvasSize to the output size.
func Character(ch content.StrokeCharacter, opts Options) *gg.Context {
	size := opts.Size
	if size <= 0 {
		size = DefaultSize
	}
	completed := opts.Completed
	if completed < 0 || completed > len(ch.StrokeOrder) {
		completed = len(ch.StrokeOrder)
	}
	scale := float64(size) / geometry.CanvasSize

	dc := gg.NewContext(size, size)
	dc.SetColor(background)
	dc.Clear()
	drawGrid(dc, float64(size))

	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	for i, path := range ch.StrokeOrder {
		c := remainingColor
		if i < completed {
			c = doneColor
		}
		drawPath(dc, path.Points, strokeWidth(path.Width)*scale, scale, c)
	}
	for _, pts := range opts.User {
		drawPath(dc, pts, 4*scale, scale, userColor)
	}
	if opts.MarkStarts {
		for _, path := range ch.StrokeOrder[completed:] {
			if len(path.Points) == 0 {
				continue
			}
			p := path.Points[0]
			dc.SetColor(startColor)
			dc.DrawCircle(p.X*scale, p.Y*scale, 5*scale)
			dc.Fill()
		}
	}
	return dc
}

// WritePNG renders ch and encodes it as PNG to w.
func WritePNG(w io.Writer, ch content.StrokeCharacter, opts Options) error {
	if err := Character(ch, opts).EncodePNG(w); err != nil {
		return fmt.Errorf("encode %s: %w", ch.Character, err)
	}
	return nil
}

// SavePNG renders ch to the file at path.
func SavePNG(path string, ch content.StrokeCharacter, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePNG(f, ch, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// drawGrid draws the practice-sheet cross and diagonals.
func drawGrid(dc *gg.Context, size float64) {
	dc.SetColor(gridColor)
	dc.SetLineWidth(1)
	dc.SetDash(6, 4)
	dc.DrawLine(size/2, 0, size/2, size)
	dc.DrawLine(0, size/2, size, size/2)
	dc.DrawLine(0, 0, size, size)
	dc.DrawLine(size, 0, 0, size)
	dc.Stroke()
	dc.SetDash()
	dc.DrawRectangle(0.5, 0.5, size-1, size-1)
	dc.Stroke()
}

func drawPath(dc *gg.Context, pts []geometry.Point, width, scale float64, c color.Color) {
	if len(pts) == 0 {
		return
	}
	dc.SetColor(c)
	dc.SetLineWidth(width)
	dc.MoveTo(pts[0].X*scale, pts[0].Y*scale)
	for _, p := range pts[1:] {
		dc.LineTo(p.X*scale, p.Y*scale)
	}
	if len(pts) == 1 {
		dc.LineTo(pts[0].X*scale, pts[0].Y*scale)
	}
	dc.Stroke()
}

func strokeWidth(w float64) float64 {
	if w <= 0 {
		return 8
	}
	return w
}
