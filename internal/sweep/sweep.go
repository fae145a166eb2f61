package sweep

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/shearlab/internal/shear"
)

// OutputMode selects how complex floor displacements reduce to one real
// number per grid point.
type OutputMode int

const (
	// Magnitude reports |Re(x)|, the displacement amplitude envelope.
	Magnitude OutputMode = iota
	// Signed reports Re(x) with its phase sign intact.
	Signed
)

func (m OutputMode) String() string {
	switch m {
	case Magnitude:
		return "magnitude"
	case Signed:
		return "signed"
	}
	return fmt.Sprintf("OutputMode(%d)", int(m))
}

// SingularPolicy selects how singular per-frequency solves are handled.
type SingularPolicy int

const (
	// Skip records the failed frequency and continues the sweep.
	Skip SingularPolicy = iota
	// Abort fails the whole sweep on the first singular frequency.
	Abort
)

func (p SingularPolicy) String() string {
	switch p {
	case Skip:
		return "skip"
	case Abort:
		return "abort"
	}
	return fmt.Sprintf("SingularPolicy(%d)", int(p))
}

// PointError records a solve that failed at one excitation frequency.
type PointError struct {
	Omega float64
	Err   error
}

func (e *PointError) Error() string {
	return fmt.Sprintf("omega=%g rad/s: %v", e.Omega, e.Err)
}

func (e *PointError) Unwrap() error {
	return e.Err
}

// Options tunes one sweep run. The zero value requests magnitude output
// over all degrees of freedom with a unit load on floor 1, skipping
// singular points, with one worker per CPU.
type Options struct {
	Force      *mat.VecDense // nil means unit load at floor 1
	Output     OutputMode
	FloorsOnly bool // drop absorber rows from the result
	Workers    int  // <= 0 means GOMAXPROCS
	OnSingular SingularPolicy
}

// Result holds one response curve per output degree of freedom, row
// index matching the system's DOF layout.
type Result struct {
	Omegas        []float64
	Displacements [][]float64 // [dof][grid point]
	Output        OutputMode
	Errors        []PointError
}

// Curve returns the response row for one degree of freedom.
func (r *Result) Curve(dof int) []float64 {
	return r.Displacements[dof]
}

// HzAxis returns the grid converted to Hz.
func (r *Result) HzAxis() []float64 {
	out := make([]float64, len(r.Omegas))
	for i, w := range r.Omegas {
		out[i] = w / (2 * math.Pi)
	}
	return out
}

// Frequencies builds the inclusive grid start, start+step, ..., end.
// The end point is kept when it lands within rounding of a step.
func Frequencies(start, end, step float64) ([]float64, error) {
	if step <= 0 {
		return nil, &shear.RangeError{Field: "sweep.step", Detail: fmt.Sprintf("step %g must be positive", step)}
	}
	if start < 0 {
		return nil, &shear.RangeError{Field: "sweep.start", Detail: fmt.Sprintf("start %g must not be negative", start)}
	}
	if end < start {
		return nil, &shear.RangeError{Field: "sweep.end", Detail: fmt.Sprintf("end %g below start %g", end, start)}
	}
	n := int(math.Floor((end-start)/step+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out, nil
}

// At solves B(ω)·x = f for the complex displacement vector x at a single
// excitation frequency. The complex system is embedded as the real block
// system [[K−ω²M, −ωC], [ωC, K−ω²M]] over [Re(x); Im(x)].
//
// A finite solution behind an ill-conditioning warning is accepted: a
// lightly damped system near resonance is exactly that. Non-finite
// solutions report ErrNumerical.
func At(sys *shear.Matrices, omega float64, force *mat.VecDense) ([]complex128, error) {
	if omega < 0 {
		return nil, &shear.RangeError{Field: "omega", Detail: fmt.Sprintf("%g rad/s must not be negative", omega)}
	}
	n := sys.DOF()
	if force.Len() != n {
		return nil, &shear.RangeError{Field: "force", Detail: fmt.Sprintf("length %d for %d DOF", force.Len(), n)}
	}

	b := mat.NewDense(2*n, 2*n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			re := sys.K.At(i, j) - omega*omega*sys.M.At(i, j)
			im := omega * sys.C.At(i, j)
			b.Set(i, j, re)
			b.Set(n+i, n+j, re)
			b.Set(i, n+j, -im)
			b.Set(n+i, j, im)
		}
	}
	rhs := mat.NewVecDense(2*n, nil)
	for i := 0; i < n; i++ {
		rhs.SetVec(i, force.AtVec(i))
	}

	var lu mat.LU
	lu.Factorize(b)
	var x mat.VecDense
	if err := lu.SolveVecTo(&x, false, rhs); err != nil {
		// An exactly singular factorization leaves the solution empty;
		// an ill-conditioned one fills it and may still be usable.
		if x.Len() != 2*n || !finiteVec(&x) {
			return nil, &shear.NumericalError{
				Op:     "sweep",
				Detail: fmt.Sprintf("dynamic stiffness singular at omega=%g rad/s", omega),
			}
		}
	}

	out := make([]complex128, n)
	for i := 0; i < n; i++ {
		out[i] = complex(x.AtVec(i), x.AtVec(n+i))
	}
	return out, nil
}

// Run sweeps the frequency grid and collects one response curve per
// output degree of freedom. Grid points are split into chunks and solved
// concurrently; results land at their grid index, so the curves are
// deterministic regardless of worker count.
//
// Under the Abort policy a singular grid point fails the run after the
// sweep finishes with the offending frequency's error.
func Run(sys *shear.Matrices, omegas []float64, opts Options) (*Result, error) {
	if len(omegas) == 0 {
		return nil, &shear.RangeError{Field: "sweep", Detail: "empty frequency grid"}
	}
	force := opts.Force
	if force == nil {
		var err error
		force, err = sys.ForceAt(1)
		if err != nil {
			return nil, err
		}
	}
	if force.Len() != sys.DOF() {
		return nil, &shear.RangeError{
			Field:  "force",
			Detail: fmt.Sprintf("length %d for %d DOF", force.Len(), sys.DOF()),
		}
	}

	rows := sys.DOF()
	if opts.FloorsOnly && sys.Floors() < rows {
		rows = sys.Floors()
	}

	disp := make([][]float64, rows)
	for d := range disp {
		disp[d] = make([]float64, len(omegas))
	}
	pointErrs := make([]error, len(omegas))

	parallelFor(len(omegas), minChunk, opts.Workers, func(start, end int) {
		for idx := start; idx < end; idx++ {
			x, err := At(sys, omegas[idx], force)
			if err != nil {
				pointErrs[idx] = err
				for d := 0; d < rows; d++ {
					disp[d][idx] = math.NaN()
				}
				continue
			}
			for d := 0; d < rows; d++ {
				v := real(x[d])
				if opts.Output == Magnitude {
					v = math.Abs(v)
				}
				disp[d][idx] = v
			}
		}
	})

	res := &Result{
		Omegas:        append([]float64(nil), omegas...),
		Displacements: disp,
		Output:        opts.Output,
	}
	for idx, err := range pointErrs {
		if err == nil {
			continue
		}
		pe := PointError{Omega: omegas[idx], Err: err}
		if opts.OnSingular == Abort {
			return nil, &pe
		}
		res.Errors = append(res.Errors, pe)
	}
	return res, nil
}

func finiteVec(v *mat.VecDense) bool {
	for i := 0; i < v.Len(); i++ {
		x := v.AtVec(i)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
