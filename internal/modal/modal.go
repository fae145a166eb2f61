package modal

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/shearlab/internal/shear"
)

// Mode pairs one natural frequency with its shape. Shapes are
// mass-normalized: vᵀ·M·v = 1 for the matrices the mode came from.
type Mode struct {
	Omega float64   // rad/s
	Hz    float64
	Shape []float64 // one entry per degree of freedom
}

// Normalized returns the shape scaled so its largest component by
// magnitude is one. The mode itself is unchanged.
func (m Mode) Normalized() []float64 {
	peak := 0.0
	for _, v := range m.Shape {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	out := make([]float64, len(m.Shape))
	if peak == 0 {
		return out
	}
	for i, v := range m.Shape {
		out[i] = v / peak
	}
	return out
}

// Analyze solves K·v = λ·M·v for a symmetric stiffness matrix and a
// positive definite mass matrix. The mass matrix is reduced by its
// Cholesky factor M = L·Lᵀ so that A = L⁻¹·K·L⁻ᵀ has the same
// eigenvalues, then shapes are recovered through v = L⁻ᵀ·y.
//
// Modes come back sorted by ascending frequency. Eigenvalues that are
// negative beyond roundoff report ErrNumerical; tiny negatives clamp to
// zero.
func Analyze(k, m *mat.SymDense) ([]Mode, error) {
	n := k.SymmetricDim()
	if n == 0 {
		return nil, &shear.RangeError{Field: "stiffness", Detail: "empty matrix"}
	}
	if m.SymmetricDim() != n {
		return nil, &shear.RangeError{
			Field:  "mass",
			Detail: fmt.Sprintf("mass is %d×%d but stiffness is %d×%d", m.SymmetricDim(), m.SymmetricDim(), n, n),
		}
	}

	var chol mat.Cholesky
	if !chol.Factorize(m) {
		return nil, &shear.NumericalError{Op: "cholesky", Detail: "mass matrix is not positive definite"}
	}
	var l mat.TriDense
	chol.LTo(&l)

	// A = L⁻¹·K·L⁻ᵀ through two triangular solves. The second solve
	// produces Aᵀ, which equals A up to roundoff.
	var w mat.Dense
	if err := w.Solve(&l, k); err != nil {
		return nil, &shear.NumericalError{Op: "reduce", Detail: err.Error()}
	}
	var at mat.Dense
	if err := at.Solve(&l, w.T()); err != nil {
		return nil, &shear.NumericalError{Op: "reduce", Detail: err.Error()}
	}
	a := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			a.SetSym(i, j, 0.5*(at.At(i, j)+at.At(j, i)))
		}
	}

	var es mat.EigenSym
	if !es.Factorize(a, true) {
		return nil, &shear.NumericalError{Op: "eigensolve", Detail: "eigendecomposition did not converge"}
	}
	vals := es.Values(nil)
	var y mat.Dense
	es.VectorsTo(&y)

	var v mat.Dense
	if err := v.Solve(l.T(), &y); err != nil {
		return nil, &shear.NumericalError{Op: "backtransform", Detail: err.Error()}
	}

	scale := 0.0
	for _, lam := range vals {
		if a := math.Abs(lam); a > scale {
			scale = a
		}
	}
	tol := 1e-9 * scale
	if tol == 0 {
		tol = 1e-12
	}

	order := make([]int, n)
	sorted := make([]float64, n)
	copy(sorted, vals)
	floats.Argsort(sorted, order)

	modes := make([]Mode, n)
	for rank, idx := range order {
		lam := vals[idx]
		if lam < -tol {
			return nil, &shear.NumericalError{
				Op:     "eigensolve",
				Detail: fmt.Sprintf("negative eigenvalue %g, system is not positive semidefinite", lam),
			}
		}
		if lam < 0 {
			lam = 0
		}
		omega := math.Sqrt(lam)
		shape := make([]float64, n)
		mat.Col(shape, idx, &v)
		modes[rank] = Mode{
			Omega: omega,
			Hz:    omega / (2 * math.Pi),
			Shape: shape,
		}
	}
	return modes, nil
}

// Omegas collects the circular frequencies of modes in order.
func Omegas(modes []Mode) []float64 {
	out := make([]float64, len(modes))
	for i, m := range modes {
		out[i] = m.Omega
	}
	return out
}

// FrequenciesHz collects the frequencies of modes in Hz.
func FrequenciesHz(modes []Mode) []float64 {
	out := make([]float64, len(modes))
	for i, m := range modes {
		out[i] = m.Hz
	}
	return out
}
