package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"avalonreport/domain/observation"

	"github.com/dustin/go-humanize"
	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Fixed panel palette
var (
	colorNormal   = color.NRGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff} // green
	colorPanic    = color.NRGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff} // red
	colorBlue     = color.NRGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}
	colorOrange   = color.NRGBA{R: 0xf3, G: 0x9c, B: 0x12, A: 0xff}
	colorPurple   = color.NRGBA{R: 0x9b, G: 0x59, B: 0xb6, A: 0xff}
	colorCarrot   = color.NRGBA{R: 0xe6, G: 0x7e, B: 0x22, A: 0xff}
	colorDarkRed  = color.NRGBA{R: 0xc0, G: 0x39, B: 0x2b, A: 0xff}
	colorBarsBase = color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
)

// panelSet holds the seven plotted panels; the footer is figure-level text
type panelSet struct {
	summary   *plot.Plot
	pie       *plot.Plot
	risk      *plot.Plot
	incident  *plot.Plot
	pressure  *plot.Plot
	years     *plot.Plot
	countries *plot.Plot
}

// buildPanels computes every aggregation and assembles the panel plots.
// An empty table cannot be plotted and aborts the render.
func buildPanels(t *observation.Table) (*panelSet, error) {
	if t.Len() == 0 {
		return nil, fmt.Errorf("observation table has no rows")
	}

	pressure, err := t.PressureSummaries()
	if err != nil {
		return nil, err
	}

	set := &panelSet{}
	if set.summary, err = summaryPanel(t.Summarize()); err != nil {
		return nil, err
	}
	if set.pie, err = piePanel(t); err != nil {
		return nil, err
	}
	if set.risk, err = riskPanel(t.CountsByRiskLevel()); err != nil {
		return nil, err
	}
	if set.incident, err = incidentPanel(t); err != nil {
		return nil, err
	}
	if set.pressure, err = pressurePanel(pressure); err != nil {
		return nil, err
	}
	if set.years, err = yearPanel(t.YearSeries()); err != nil {
		return nil, err
	}
	if set.countries, err = countriesPanel(t.TopCountries(10)); err != nil {
		return nil, err
	}
	return set, nil
}

func titled(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(11)
	p.Title.TextStyle.Font.Weight = xfont.WeightBold
	p.X.Label.TextStyle.Font.Size = vg.Points(10)
	p.Y.Label.TextStyle.Font.Size = vg.Points(10)
	return p
}

// summaryPanel renders the static-format dataset summary text block
func summaryPanel(sum observation.Summary) (*plot.Plot, error) {
	p := plot.New()
	p.HideAxes()

	block := fmt.Sprintf(
		"DATASET SUMMARY\n"+
			"=================\n"+
			"Records: %s\n"+
			"Features: %d\n"+
			"Countries: %d\n"+
			"Time Span: %d-%d\n"+
			"Missing Values: %d",
		humanize.Comma(int64(sum.Records)),
		sum.Fields,
		sum.Countries,
		sum.MinYear, sum.MaxYear,
		sum.MissingValues,
	)

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: 0.08, Y: 0.5}},
		Labels: []string{block},
	})
	if err != nil {
		return nil, err
	}
	labels.TextStyle[0].Font = font.Font{
		Typeface: "Liberation",
		Variant:  "Mono",
		Size:     vg.Points(11),
	}
	labels.TextStyle[0].YAlign = draw.YCenter
	p.Add(labels)

	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	return p, nil
}

// piePanel renders the panic-mode share as a two-wedge pie with percent
// labels inside the wedges and category labels outside.
func piePanel(t *observation.Table) (*plot.Plot, error) {
	panicCount := t.PanicCount()
	normalCount := t.Len() - panicCount

	p := plot.New()
	p.HideAxes()
	p.Title.Text = fmt.Sprintf("Panic Mode Distribution\n(n=%d panic cases)", panicCount)
	p.Title.TextStyle.Font.Size = vg.Points(11)
	p.Title.TextStyle.Font.Weight = xfont.WeightBold

	fracs := []float64{
		float64(normalCount) / float64(t.Len()),
		float64(panicCount) / float64(t.Len()),
	}
	// Start at 12 o'clock, counterclockwise, like the canonical report.
	pie := &wedgePlotter{
		start: math.Pi / 2,
		wedges: []wedge{
			{frac: fracs[0], col: colorNormal},
			{frac: fracs[1], col: colorPanic},
		},
	}
	p.Add(pie)

	names := []string{"Normal", "Panic Mode"}
	mids := pie.midAngles()
	var pctXYs, nameXYs plotter.XYs
	var pctLabels, nameLabels []string
	for i, mid := range mids {
		if fracs[i] <= 0 {
			continue
		}
		pctXYs = append(pctXYs, plotter.XY{X: 0.55 * math.Cos(mid), Y: 0.55 * math.Sin(mid)})
		pctLabels = append(pctLabels, fmt.Sprintf("%.1f%%", fracs[i]*100))
		nameXYs = append(nameXYs, plotter.XY{X: 1.12 * math.Cos(mid), Y: 1.12 * math.Sin(mid)})
		nameLabels = append(nameLabels, names[i])
	}

	pct, err := plotter.NewLabels(plotter.XYLabels{XYs: pctXYs, Labels: pctLabels})
	if err != nil {
		return nil, err
	}
	for i := range pct.TextStyle {
		pct.TextStyle[i].XAlign = draw.XCenter
		pct.TextStyle[i].YAlign = draw.YCenter
		pct.TextStyle[i].Font.Size = vg.Points(11)
		pct.TextStyle[i].Font.Weight = xfont.WeightBold
	}
	p.Add(pct)

	cats, err := plotter.NewLabels(plotter.XYLabels{XYs: nameXYs, Labels: nameLabels})
	if err != nil {
		return nil, err
	}
	for i := range cats.TextStyle {
		cats.TextStyle[i].XAlign = draw.XCenter
		cats.TextStyle[i].YAlign = draw.YCenter
		cats.TextStyle[i].Font.Size = vg.Points(10)
	}
	p.Add(cats)

	return p, nil
}

// riskPanel renders per-level row counts as colored bars with count labels
func riskPanel(levels []observation.LevelCount) (*plot.Plot, error) {
	p := titled("True Risk Level Distribution")
	p.X.Label.Text = "True Risk Level"
	p.Y.Label.Text = "Count"

	palette := []color.Color{colorBlue, colorOrange, colorPanic, colorDarkRed}
	names := make([]string, len(levels))
	maxCount := 0

	var labelXYs plotter.XYs
	var labelText []string
	for i, lc := range levels {
		bars, err := plotter.NewBarChart(plotter.Values{float64(lc.Count)}, vg.Points(26))
		if err != nil {
			return nil, err
		}
		bars.XMin = float64(i)
		bars.Color = palette[i%len(palette)]
		bars.LineStyle.Width = 0
		p.Add(bars)

		names[i] = strconv.Itoa(lc.Level)
		labelXYs = append(labelXYs, plotter.XY{X: float64(i), Y: float64(lc.Count)})
		labelText = append(labelText, strconv.Itoa(lc.Count))
		if lc.Count > maxCount {
			maxCount = lc.Count
		}
	}
	p.NominalX(names...)

	if err := addBarLabels(p, labelXYs, labelText); err != nil {
		return nil, err
	}

	p.Y.Min = 0
	p.Y.Max = float64(maxCount) * 1.15
	return p, nil
}

// incidentPanel renders the incident split with count and percent labels
func incidentPanel(t *observation.Table) (*plot.Plot, error) {
	b := t.IncidentCounts()

	p := titled("Actual Incidents Occurred")
	p.Y.Label.Text = "Count"

	counts := []int{b.None, b.Occurred}
	colors := []color.Color{colorNormal, colorPanic}
	maxCount := 0

	var labelXYs plotter.XYs
	var labelText []string
	for i, count := range counts {
		bars, err := plotter.NewBarChart(plotter.Values{float64(count)}, vg.Points(34))
		if err != nil {
			return nil, err
		}
		bars.XMin = float64(i)
		bars.Color = colors[i]
		bars.LineStyle.Width = 0
		p.Add(bars)

		labelXYs = append(labelXYs, plotter.XY{X: float64(i), Y: float64(count)})
		labelText = append(labelText, fmt.Sprintf("%d\n(%.1f%%)", count, t.Percentage(count)))
		if count > maxCount {
			maxCount = count
		}
	}
	p.NominalX("No Incident", "Incident")

	if err := addBarLabels(p, labelXYs, labelText); err != nil {
		return nil, err
	}

	p.Y.Min = 0
	p.Y.Max = float64(maxCount) * 1.25
	return p, nil
}

// pressurePanel renders the three external-pressure boxplots with mean markers
func pressurePanel(summaries []observation.PressureSummary) (*plot.Plot, error) {
	p := titled("External Pressure Variables Distribution (Key Tipping Point Signals)")
	p.Y.Label.Text = "Score"
	p.Add(plotter.NewGrid())

	colors := []color.NRGBA{colorBlue, colorPurple, colorCarrot}
	means := make(plotter.XYs, 0, len(summaries))
	for i, ps := range summaries {
		box, err := plotter.NewBoxPlot(vg.Points(70), float64(i), plotter.Values(ps.Values))
		if err != nil {
			return nil, err
		}
		box.FillColor = withAlpha(colors[i%len(colors)], 0xb2)
		p.Add(box)
		means = append(means, plotter.XY{X: float64(i), Y: ps.Mean})
	}

	meanMarks, err := plotter.NewScatter(means)
	if err != nil {
		return nil, err
	}
	meanMarks.GlyphStyle = draw.GlyphStyle{
		Color:  colorNormal,
		Radius: vg.Points(4),
		Shape:  draw.PyramidGlyph{},
	}
	p.Add(meanMarks)

	p.NominalX("Public Anxiety", "Social Media Rumors", "Regulatory Scrutiny")
	return p, nil
}

// yearPanel renders per-year record counts as a filled, marked line
func yearPanel(series []observation.YearCount) (*plot.Plot, error) {
	p := titled("Temporal Distribution of Observations")
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Number of Records"
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(series))
	for i, yc := range series {
		xys[i] = plotter.XY{X: float64(yc.Year), Y: float64(yc.Count)}
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = colorBarsBase
	line.FillColor = withAlpha(colorBarsBase, 0x4c)
	p.Add(line)

	marks, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	marks.GlyphStyle = draw.GlyphStyle{
		Color:  colorBarsBase,
		Radius: vg.Points(2.5),
		Shape:  draw.CircleGlyph{},
	}
	p.Add(marks)

	p.Y.Min = 0
	return p, nil
}

// countriesPanel renders the top-country counts as horizontal bars with the
// highest count at the top.
func countriesPanel(top []observation.CountryCount) (*plot.Plot, error) {
	p := titled("Top 10 Countries by Observation Count")
	p.X.Label.Text = "Number of Records"

	// Nominal Y positions run bottom-up, so reverse to put the leader on top.
	n := len(top)
	values := make(plotter.Values, n)
	names := make([]string, n)
	maxCount := 0
	for i, cc := range top {
		values[n-1-i] = float64(cc.Count)
		names[n-1-i] = cc.Country
		if cc.Count > maxCount {
			maxCount = cc.Count
		}
	}

	bars, err := plotter.NewBarChart(values, vg.Points(11))
	if err != nil {
		return nil, err
	}
	bars.Horizontal = true
	bars.Color = colorBarsBase
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalY(names...)

	var labelXYs plotter.XYs
	var labelText []string
	pad := float64(maxCount) * 0.015
	for i, v := range values {
		labelXYs = append(labelXYs, plotter.XY{X: v + pad, Y: float64(i)})
		labelText = append(labelText, strconv.Itoa(int(v)))
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: labelXYs, Labels: labelText})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].YAlign = draw.YCenter
		labels.TextStyle[i].Font.Size = vg.Points(8)
	}
	p.Add(labels)

	p.X.Min = 0
	p.X.Max = float64(maxCount) * 1.12
	return p, nil
}

// addBarLabels puts value annotations just above vertical bars
func addBarLabels(p *plot.Plot, xys plotter.XYs, texts []string) error {
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YBottom
		labels.TextStyle[i].Font.Size = vg.Points(9)
	}
	labels.Offset = vg.Point{Y: vg.Points(2)}
	p.Add(labels)
	return nil
}

func withAlpha(c color.NRGBA, alpha uint8) color.NRGBA {
	c.A = alpha
	return c
}
