// Package render lays out a simulated sequence as a sheet of grayscale tiles.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/sheikhrachel/gol-tiles/model"
)

// ErrEmptySequence is returned when there is nothing to render.
var ErrEmptySequence = errors.New("empty sequence")

const (
	defaultColumnsPerRow = 5
	defaultCellSize      = 6
	defaultPadding       = 4
)

// Tiler renders one tile per generation, ColumnsPerRow tiles per row.
// Dead and alive cells map to the two ends of the gray scale.
type Tiler struct {
	ColumnsPerRow int
	CellSize      int // pixels per cell edge
	Padding       int

	Dead       color.Gray
	Alive      color.Gray
	Background color.Gray
	Ink        color.Gray
	Face       font.Face
}

// NewTiler returns a tiler with the default layout and a black/white color map
func NewTiler() *Tiler {
	return &Tiler{
		ColumnsPerRow: defaultColumnsPerRow,
		CellSize:      defaultCellSize,
		Padding:       defaultPadding,
		Dead:          color.Gray{Y: 0},
		Alive:         color.Gray{Y: 255},
		Background:    color.Gray{Y: 255},
		Ink:           color.Gray{Y: 0},
		Face:          basicfont.Face7x13,
	}
}

// Layout returns the tile rows and columns used for n generations.
func (t *Tiler) Layout(n int) (rows, cols int) {
	return (n + t.ColumnsPerRow - 1) / t.ColumnsPerRow, t.ColumnsPerRow
}

// Caption is the title drawn above generation i (0-based).
func Caption(i int) string {
	return fmt.Sprintf("Generation %d", i+1)
}

// geometry holds pixel measurements shared by every tile of a sheet.
type geometry struct {
	tileW, tileH int
	captionH     int
	ascent       int
}

func (t *Tiler) geometry(seq model.Sequence) geometry {
	rows, cols := seq.Dims()
	metrics := t.Face.Metrics()
	textW := font.MeasureString(t.Face, Caption(len(seq)-1)).Ceil()

	gm := geometry{
		ascent:   metrics.Ascent.Ceil(),
		captionH: metrics.Height.Ceil() + t.Padding,
	}
	gm.tileW = max(cols*t.CellSize, textW) + 2*t.Padding
	gm.tileH = gm.captionH + rows*t.CellSize + 2*t.Padding
	return gm
}

// TileOrigin returns the top-left pixel of the tile for generation i.
func (t *Tiler) TileOrigin(seq model.Sequence, i int) image.Point {
	return t.tileOrigin(t.geometry(seq), i)
}

// CellOrigin returns the top-left pixel of cell (row, col) in the tile for generation i.
func (t *Tiler) CellOrigin(seq model.Sequence, i, row, col int) image.Point {
	gm := t.geometry(seq)
	return t.cellOrigin(gm, t.tileOrigin(gm, i), row, col)
}

func (t *Tiler) tileOrigin(gm geometry, i int) image.Point {
	return image.Pt((i%t.ColumnsPerRow)*gm.tileW, (i/t.ColumnsPerRow)*gm.tileH)
}

func (t *Tiler) cellOrigin(gm geometry, tile image.Point, row, col int) image.Point {
	return image.Pt(
		tile.X+t.Padding+col*t.CellSize,
		tile.Y+t.Padding+gm.captionH+row*t.CellSize,
	)
}

func (t *Tiler) validate(seq model.Sequence) error {
	if len(seq) == 0 {
		return ErrEmptySequence
	}
	if t.ColumnsPerRow < 1 || t.CellSize < 1 || t.Padding < 0 {
		return errors.Wrapf(model.ErrInvalidArgument,
			"[Tiler] bad layout columns=%d cell=%d padding=%d", t.ColumnsPerRow, t.CellSize, t.Padding)
	}
	if t.Face == nil {
		return errors.Wrap(model.ErrInvalidArgument, "[Tiler] no font face")
	}
	rows, cols := seq.Dims()
	for i, g := range seq {
		if err := g.Validate(); err != nil {
			return errors.Wrapf(err, "[Tiler] generation %d", i)
		}
		if g.Rows() != rows || g.Cols() != cols {
			return errors.Wrapf(model.ErrInvalidArgument,
				"[Tiler] generation %d is %dx%d, want %dx%d", i, g.Rows(), g.Cols(), rows, cols)
		}
	}
	return nil
}

// Render draws every generation of seq onto a single grayscale sheet.
// Slots past the last generation stay Background.
func (t *Tiler) Render(seq model.Sequence) (*image.Gray, error) {
	if err := t.validate(seq); err != nil {
		return nil, err
	}

	gm := t.geometry(seq)
	tileRows, tileCols := t.Layout(len(seq))
	img := image.NewGray(image.Rect(0, 0, tileCols*gm.tileW, tileRows*gm.tileH))
	draw.Draw(img, img.Bounds(), image.NewUniform(t.Background), image.Point{}, draw.Src)

	var (
		ink   = image.NewUniform(t.Ink)
		dead  = image.NewUniform(t.Dead)
		alive = image.NewUniform(t.Alive)
	)
	for i, g := range seq {
		origin := t.tileOrigin(gm, i)

		d := font.Drawer{
			Dst:  img,
			Src:  ink,
			Face: t.Face,
			Dot:  fixed.P(origin.X+t.Padding, origin.Y+t.Padding+gm.ascent),
		}
		d.DrawString(Caption(i))

		for row := range g.Rows() {
			for col := range g.Cols() {
				src := dead
				if g.Alive(row, col) {
					src = alive
				}
				p := t.cellOrigin(gm, origin, row, col)
				draw.Draw(img, image.Rect(p.X, p.Y, p.X+t.CellSize, p.Y+t.CellSize),
					src, image.Point{}, draw.Src)
			}
		}
	}
	return img, nil
}

// WritePNG renders seq and encodes the sheet as PNG
func (t *Tiler) WritePNG(w io.Writer, seq model.Sequence) error {
	img, err := t.Render(seq)
	if err != nil {
		return errors.Wrap(err, "[WritePNG] failed to render sequence")
	}
	if err := png.Encode(w, img); err != nil {
		return errors.Wrap(err, "[WritePNG] failed to encode png")
	}
	return nil
}
