// Package damping fits Rayleigh proportional-damping coefficients to a
// target modal damping ratio.
package damping

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/shearlab/internal/modal"
	"github.com/san-kum/shearlab/internal/shear"
)

// Coefficients are the multipliers of C = α·M + β·K.
type Coefficients struct {
	Alpha float64 // mass-proportional, 1/s
	Beta  float64 // stiffness-proportional, s
}

// Fit solves for the coefficients that best reproduce one damping ratio
// across all supplied natural frequencies. The Rayleigh model gives each
// mode ζ(ω) = α/(2ω) + β·ω/2, so every frequency contributes the row
// α + β·ω² = 2·ζ·ω and the system is solved in the least-squares sense.
// With one or two frequencies the fit is exact.
//
// A zero ratio short-circuits to zero coefficients.
func Fit(omegas []float64, zeta float64) (Coefficients, error) {
	if len(omegas) == 0 {
		return Coefficients{}, &shear.RangeError{Field: "omegas", Detail: "need at least one natural frequency"}
	}
	if zeta < 0 {
		return Coefficients{}, &shear.ConfigError{Field: "damping_ratio", Detail: fmt.Sprintf("%g must not be negative", zeta)}
	}
	for i, w := range omegas {
		if w < 0 {
			return Coefficients{}, &shear.RangeError{Field: "omegas", Detail: fmt.Sprintf("frequency %d is negative (%g rad/s)", i+1, w)}
		}
	}
	if zeta == 0 {
		return Coefficients{}, nil
	}

	a := mat.NewDense(len(omegas), 2, nil)
	b := mat.NewVecDense(len(omegas), nil)
	for i, w := range omegas {
		a.Set(i, 0, 1)
		a.Set(i, 1, w*w)
		b.SetVec(i, 2*zeta*w)
	}

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return Coefficients{}, &shear.NumericalError{Op: "rayleigh", Detail: "degenerate frequency set: " + err.Error()}
	}
	return Coefficients{Alpha: x.AtVec(0), Beta: x.AtVec(1)}, nil
}

// FromModes fits against every mode of a modal analysis.
func FromModes(modes []modal.Mode, zeta float64) (Coefficients, error) {
	return Fit(modal.Omegas(modes), zeta)
}

// Ratio evaluates the modal damping ratio the coefficients produce at a
// circular frequency.
func (c Coefficients) Ratio(omega float64) float64 {
	if omega == 0 {
		return 0
	}
	return c.Alpha/(2*omega) + c.Beta*omega/2
}
