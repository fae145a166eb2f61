// Package report renders frequency-response curves and mode shapes to
// image files and terminal charts.
package report

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/shearlab/internal/modal"
	"github.com/san-kum/shearlab/internal/shear"
	"github.com/san-kum/shearlab/internal/sweep"
)

// FRFOptions control the rendered response chart. The output format
// follows the file extension (.png, .svg, .pdf).
type FRFOptions struct {
	Title  string
	HzAxis bool
	LogY   bool
	Rows   int // 0 plots every curve
}

// SaveFRF writes one chart with a line per degree of freedom.
func SaveFRF(path string, r *sweep.Result, floors int, opts FRFOptions) error {
	if len(r.Omegas) == 0 {
		return &shear.RangeError{Field: "response", Detail: "empty frequency grid"}
	}
	rows := opts.Rows
	if rows <= 0 || rows > len(r.Displacements) {
		rows = len(r.Displacements)
	}

	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = "frequency response"
	}
	p.X.Label.Text = "frequency (rad/s)"
	xs := r.Omegas
	if opts.HzAxis {
		xs = r.HzAxis()
		p.X.Label.Text = "frequency (hz)"
	}
	p.Y.Label.Text = "displacement (m)"
	if opts.LogY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Add(plotter.NewGrid())

	for d := 0; d < rows; d++ {
		pts := curvePoints(xs, r.Curve(d), opts.LogY)
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(d)
		line.Dashes = plotutil.Dashes(d)
		p.Add(line)
		p.Legend.Add(curveLabel(d, floors), line)
	}
	p.Legend.Top = true

	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}

// curvePoints drops grid points a skipped singular solve left as NaN
// and, on a log axis, amplitudes the scale cannot place.
func curvePoints(xs, ys []float64, logY bool) plotter.XYs {
	pts := make(plotter.XYs, 0, len(ys))
	for i, v := range ys {
		if math.IsNaN(v) {
			continue
		}
		y := v
		if logY {
			y = math.Abs(v)
			if y <= 0 {
				continue
			}
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: y})
	}
	return pts
}

func curveLabel(dof, floors int) string {
	if dof < floors {
		return fmt.Sprintf("floor %d", dof+1)
	}
	return fmt.Sprintf("absorber %d", dof-floors+1)
}

// SaveModes draws the story profile of each mode, ground pinned at
// zero. Absorber coordinates carry no height and are left off the
// diagram.
func SaveModes(path string, modes []modal.Mode, floors int, title string) error {
	if len(modes) == 0 {
		return &shear.RangeError{Field: "modes", Detail: "empty mode set"}
	}

	p := plot.New()
	p.Title.Text = title
	if p.Title.Text == "" {
		p.Title.Text = "mode shapes"
	}
	p.X.Label.Text = "normalized displacement"
	p.Y.Label.Text = "floor"
	p.Add(plotter.NewGrid())

	for i, m := range modes {
		shape := m.Normalized()
		pts := make(plotter.XYs, 0, floors+1)
		pts = append(pts, plotter.XY{})
		for f := 0; f < floors && f < len(shape); f++ {
			pts = append(pts, plotter.XY{X: shape[f], Y: float64(f + 1)})
		}

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		p.Add(line, points)
		p.Legend.Add(fmt.Sprintf("mode %d (%.2f hz)", i+1, m.Hz), line)
	}
	p.Legend.Top = true
	p.Legend.Left = true

	return p.Save(6*vg.Inch, 8*vg.Inch, path)
}

// ASCIIFRF renders one response curve for the terminal. Skipped grid
// points draw as zero.
func ASCIIFRF(r *sweep.Result, dof, floors, width, height int) string {
	if dof < 0 || dof >= len(r.Displacements) || len(r.Omegas) == 0 {
		return ""
	}

	curve := r.Curve(dof)
	data := make([]float64, len(curve))
	for i, v := range curve {
		a := math.Abs(v)
		if math.IsNaN(a) {
			a = 0
		}
		data[i] = a
	}

	caption := fmt.Sprintf("%s, %.1f..%.1f rad/s",
		curveLabel(dof, floors), r.Omegas[0], r.Omegas[len(r.Omegas)-1])
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
