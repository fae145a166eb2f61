// Package metrics reduces frequency-response curves to scalar
// indicators: peak amplitudes, attenuation against a baseline and
// half-power damping estimates.
package metrics

import (
	"math"

	"github.com/san-kum/shearlab/internal/shear"
	"github.com/san-kum/shearlab/internal/sweep"
)

// Peak is the largest amplitude on one response curve. Amplitude means
// |value| so the measure holds for signed output too.
type Peak struct {
	DOF   int
	Omega float64
	Hz    float64
	Value float64
}

// PeakOf scans one curve, skipping grid points a singular solve left as
// NaN.
func PeakOf(r *sweep.Result, dof int) Peak {
	p := Peak{DOF: dof}
	if i := peakIndex(r.Curve(dof)); i >= 0 {
		p.Value = math.Abs(r.Curve(dof)[i])
		p.Omega = r.Omegas[i]
		p.Hz = p.Omega / (2 * math.Pi)
	}
	return p
}

func peakIndex(curve []float64) int {
	best, idx := 0.0, -1
	for i, v := range curve {
		a := math.Abs(v)
		if math.IsNaN(a) {
			continue
		}
		if a > best {
			best, idx = a, i
		}
	}
	return idx
}

// PeakResponse collects the peak of every curve in the result.
func PeakResponse(r *sweep.Result) []Peak {
	out := make([]Peak, len(r.Displacements))
	for d := range r.Displacements {
		out[d] = PeakOf(r, d)
	}
	return out
}

// MaxPeak returns the largest peak across the first rows curves.
func MaxPeak(r *sweep.Result, rows int) Peak {
	if rows > len(r.Displacements) {
		rows = len(r.Displacements)
	}
	best := Peak{DOF: -1}
	for d := 0; d < rows; d++ {
		if p := PeakOf(r, d); p.Value > best.Value || best.DOF < 0 {
			best = p
		}
	}
	return best
}

// Attenuation compares peak amplitudes curve by curve and reports the
// after/before ratio. A ratio below one means the damped system moved
// less.
func Attenuation(before, after *sweep.Result) []float64 {
	n := len(before.Displacements)
	if len(after.Displacements) < n {
		n = len(after.Displacements)
	}
	out := make([]float64, n)
	for d := 0; d < n; d++ {
		b := PeakOf(before, d).Value
		a := PeakOf(after, d).Value
		if b == 0 {
			out[d] = math.NaN()
			continue
		}
		out[d] = a / b
	}
	return out
}

// HalfPowerDamping estimates the viscous damping ratio of the resonance
// dominating one curve from its −3 dB width: ζ ≈ (ω₂−ω₁)/(2·ω_peak).
// Both crossings must lie inside the grid.
func HalfPowerDamping(r *sweep.Result, dof int) (float64, error) {
	curve := r.Curve(dof)
	peakIdx := peakIndex(curve)
	if peakIdx < 0 || curve[peakIdx] == 0 {
		return 0, &shear.RangeError{Field: "response", Detail: "flat curve has no resonance"}
	}
	peakOmega := r.Omegas[peakIdx]
	target := math.Abs(curve[peakIdx]) / math.Sqrt2

	lo, ok := crossing(r.Omegas, curve, peakIdx, -1, target)
	if !ok {
		return 0, &shear.RangeError{Field: "response", Detail: "lower half-power point outside grid"}
	}
	hi, ok := crossing(r.Omegas, curve, peakIdx, +1, target)
	if !ok {
		return 0, &shear.RangeError{Field: "response", Detail: "upper half-power point outside grid"}
	}

	return (hi - lo) / (2 * peakOmega), nil
}

// crossing walks from the peak in one direction until the curve drops
// through target and interpolates the crossing frequency.
func crossing(omegas, curve []float64, from, dir int, target float64) (float64, bool) {
	prev := math.Abs(curve[from])
	for i := from + dir; i >= 0 && i < len(curve); i += dir {
		v := math.Abs(curve[i])
		if math.IsNaN(v) {
			return 0, false
		}
		if v < target {
			w0, w1 := omegas[i-dir], omegas[i]
			t := (prev - target) / (prev - v)
			return w0 + t*(w1-w0), true
		}
		prev = v
	}
	return 0, false
}
