package render

import (
	"image/color"
	"os"

	"avalonreport/domain/observation"
	"avalonreport/internal/config"
	"avalonreport/internal/errors"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	figureTitle = "Dataset Overview: Avalon Nuclear Safety Monitoring System"
	footerNote  = "panic_mode = 1 when Avalon recommends evacuation/shutdown despite true_risk_level <= 2"
)

// Dashboard renders the eight-panel overview figure to a PNG file
type Dashboard struct {
	cfg config.RenderConfig
}

// NewDashboard creates a renderer with the given canvas settings
func NewDashboard(cfg config.RenderConfig) *Dashboard {
	return &Dashboard{cfg: cfg}
}

// Render draws the full figure for the table and writes it to outPath,
// overwriting any existing file.
func (d *Dashboard) Render(t *observation.Table, outPath string) error {
	panels, err := buildPanels(t)
	if err != nil {
		return errors.RenderFailed("failed to build report panels", err)
	}

	width := vg.Length(d.cfg.WidthInches) * vg.Inch
	height := vg.Length(d.cfg.HeightInches) * vg.Inch
	img := vgimg.NewWith(
		vgimg.UseWH(width, height),
		vgimg.UseDPI(d.cfg.DPI),
		vgimg.UseBackgroundColor(color.White),
	)
	canvas := draw.New(img)

	drawFigureText(canvas, width, height)

	grid := newGrid(width, height)
	panels.summary.Draw(grid.cell(canvas, 0, 0, 1))
	panels.pie.Draw(grid.cell(canvas, 0, 1, 1))
	panels.risk.Draw(grid.cell(canvas, 0, 2, 1))
	panels.incident.Draw(grid.cell(canvas, 0, 3, 1))
	panels.pressure.Draw(grid.cell(canvas, 1, 0, 4))
	panels.years.Draw(grid.cell(canvas, 2, 0, 2))
	panels.countries.Draw(grid.cell(canvas, 2, 2, 2))

	file, err := os.Create(outPath)
	if err != nil {
		return errors.WriteFailed("failed to create report file "+outPath, err)
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(file); err != nil {
		file.Close()
		return errors.WriteFailed("failed to write report file "+outPath, err)
	}
	if err := file.Close(); err != nil {
		return errors.WriteFailed("failed to close report file "+outPath, err)
	}
	return nil
}

// drawFigureText paints the figure-level title and footer annotation
func drawFigureText(c draw.Canvas, width, height vg.Length) {
	title := text.Style{
		Color:   color.Black,
		Font:    plot.DefaultFont,
		XAlign:  draw.XCenter,
		YAlign:  draw.YTop,
		Handler: plot.DefaultTextHandler,
	}
	title.Font.Size = vg.Points(20)
	title.Font.Weight = xfont.WeightBold
	c.FillText(title, vg.Point{X: width / 2, Y: height - vg.Points(12)}, figureTitle)

	footer := text.Style{
		Color:   color.Black,
		Font:    plot.DefaultFont,
		XAlign:  draw.XCenter,
		YAlign:  draw.YBottom,
		Handler: plot.DefaultTextHandler,
	}
	footer.Font.Size = vg.Points(10)
	footer.Font.Style = xfont.StyleItalic
	c.FillText(footer, vg.Point{X: width / 2, Y: vg.Points(8)}, footerNote)
}

// grid computes the fixed 3x4 panel layout: four cells in the top row, a
// full-width middle row, and two double-width cells in the bottom row.
type grid struct {
	left, bottom vg.Length
	cellW, cellH vg.Length
	hGap, vGap   vg.Length
}

func newGrid(width, height vg.Length) grid {
	const (
		marginX   = 0.35 * vg.Inch
		marginTop = 0.85 * vg.Inch
		marginBot = 0.55 * vg.Inch
		hGap      = 0.30 * vg.Inch
		vGap      = 0.30 * vg.Inch
	)
	innerW := width - 2*marginX - 3*hGap
	innerH := height - marginTop - marginBot - 2*vGap
	return grid{
		left:   marginX,
		bottom: marginBot,
		cellW:  innerW / 4,
		cellH:  innerH / 3,
		hGap:   hGap,
		vGap:   vGap,
	}
}

// cell returns the sub-canvas for a panel at the given top-indexed row,
// starting column, and column span.
func (g grid) cell(c draw.Canvas, row, col, span int) draw.Canvas {
	x0 := g.left + vg.Length(col)*(g.cellW+g.hGap)
	x1 := x0 + vg.Length(span)*g.cellW + vg.Length(span-1)*g.hGap
	y1 := g.bottom + 3*g.cellH + 2*g.vGap - vg.Length(row)*(g.cellH+g.vGap)
	y0 := y1 - g.cellH
	return draw.Canvas{
		Canvas: c.Canvas,
		Rectangle: vg.Rectangle{
			Min: vg.Point{X: x0, Y: y0},
			Max: vg.Point{X: x1, Y: y1},
		},
	}
}
