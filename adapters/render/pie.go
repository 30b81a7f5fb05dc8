package render

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// wedge is one pie slice: its share of the whole and its fill color
type wedge struct {
	frac float64
	col  color.Color
}

// wedgePlotter draws a pie chart inside a plot with hidden axes. The pie is
// centered on the data-space origin with radius 1, so companion label
// plotters can position text in the same coordinate space.
type wedgePlotter struct {
	wedges []wedge
	start  float64 // start angle in radians, counterclockwise
}

var _ plot.Plotter = (*wedgePlotter)(nil)

// Plot implements plot.Plotter
func (w *wedgePlotter) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	center := vg.Point{X: trX(0), Y: trY(0)}

	// Keep the pie circular even in a non-square panel.
	rx := trX(1) - trX(0)
	ry := trY(1) - trY(0)
	radius := rx
	if ry < radius {
		radius = ry
	}

	angle := w.start
	for _, wd := range w.wedges {
		theta := 2 * math.Pi * wd.frac
		var path vg.Path
		path.Move(center)
		path.Arc(center, radius, angle, theta)
		path.Close()
		c.SetColor(wd.col)
		c.Fill(path)
		angle += theta
	}
}

// DataRange implements plot.DataRanger so the hidden axes scale the unit
// circle with a margin for outside labels.
func (w *wedgePlotter) DataRange() (xmin, xmax, ymin, ymax float64) {
	return -1.3, 1.3, -1.3, 1.3
}

// midAngles returns the bisecting angle of each wedge, for label placement
func (w *wedgePlotter) midAngles() []float64 {
	mids := make([]float64, len(w.wedges))
	angle := w.start
	for i, wd := range w.wedges {
		theta := 2 * math.Pi * wd.frac
		mids[i] = angle + theta/2
		angle += theta
	}
	return mids
}
