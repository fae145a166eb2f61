package shear

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrices is one immutable mass/damping/stiffness triple. The first
// Floors() indices are floor displacements, any further indices are
// absorbers in attachment order.
type Matrices struct {
	M *mat.SymDense
	C *mat.SymDense
	K *mat.SymDense

	floors int
}

// Assemble builds the undamped base triple for a bare frame. The mass
// matrix is diagonal, the stiffness matrix couples each floor to its
// neighbors through the story springs, and the damping matrix is zero.
func Assemble(b *Building) *Matrices {
	n := b.Floors()
	m := mat.NewSymDense(n, nil)
	c := mat.NewSymDense(n, nil)
	k := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		m.SetSym(i, i, b.Masses[i])
		diag := b.Stiffnesses[i]
		if i+1 < n {
			diag += b.Stiffnesses[i+1]
			k.SetSym(i, i+1, -b.Stiffnesses[i+1])
		}
		k.SetSym(i, i, diag)
	}
	return &Matrices{M: m, C: c, K: k, floors: n}
}

// Floors returns the number of floor degrees of freedom.
func (s *Matrices) Floors() int {
	return s.floors
}

// DOF returns the total number of degrees of freedom, floors plus
// attached absorbers.
func (s *Matrices) DOF() int {
	return s.M.SymmetricDim()
}

// WithRayleigh returns a copy whose damping matrix is the proportional
// combination C = α·M + β·K of the receiver's mass and stiffness.
// Apply it before attaching absorbers so that only the frame is damped
// proportionally; absorbers carry their own dashpots.
func (s *Matrices) WithRayleigh(alpha, beta float64) *Matrices {
	out := s.clone()
	n := out.DOF()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.C.SetSym(i, j, alpha*out.M.At(i, j)+beta*out.K.At(i, j))
		}
	}
	return out
}

// WithAbsorbers returns a copy extended by one degree of freedom per
// absorber, appended in slice order. Every entry of the receiver keeps
// its index and value; each absorber adds its mass on the new diagonal
// and couples its spring and dashpot between the new index and the
// attachment floor. The receiver is not modified.
func (s *Matrices) WithAbsorbers(absorbers []Absorber) (*Matrices, error) {
	for i, a := range absorbers {
		if err := a.validate(s.floors, i); err != nil {
			return nil, err
		}
	}
	out := s
	for _, a := range absorbers {
		out = out.extend(a)
	}
	if out == s {
		out = s.clone()
	}
	return out, nil
}

// ForceAt returns a load vector with a unit force at the given floor and
// zeros everywhere else.
func (s *Matrices) ForceAt(floor int) (*mat.VecDense, error) {
	if floor < 1 || floor > s.floors {
		return nil, &RangeError{Field: "force.floor", Detail: fmt.Sprintf("floor %d outside 1..%d", floor, s.floors)}
	}
	f := mat.NewVecDense(s.DOF(), nil)
	f.SetVec(floor-1, 1)
	return f, nil
}

func (s *Matrices) extend(a Absorber) *Matrices {
	n := s.DOF()
	m := growSym(s.M, n+1)
	c := growSym(s.C, n+1)
	k := growSym(s.K, n+1)
	fl := a.Floor - 1

	m.SetSym(n, n, a.Mass)
	k.SetSym(fl, fl, k.At(fl, fl)+a.Stiffness)
	k.SetSym(n, n, a.Stiffness)
	k.SetSym(fl, n, -a.Stiffness)
	c.SetSym(fl, fl, c.At(fl, fl)+a.Damping)
	c.SetSym(n, n, a.Damping)
	c.SetSym(fl, n, -a.Damping)

	return &Matrices{M: m, C: c, K: k, floors: s.floors}
}

func (s *Matrices) clone() *Matrices {
	n := s.DOF()
	return &Matrices{
		M:      growSym(s.M, n),
		C:      growSym(s.C, n),
		K:      growSym(s.K, n),
		floors: s.floors,
	}
}

// growSym copies src into the top-left block of a fresh n×n symmetric
// matrix, n ≥ dim(src).
func growSym(src *mat.SymDense, n int) *mat.SymDense {
	dst := mat.NewSymDense(n, nil)
	old := src.SymmetricDim()
	for i := 0; i < old; i++ {
		for j := i; j < old; j++ {
			if v := src.At(i, j); v != 0 {
				dst.SetSym(i, j, v)
			}
		}
	}
	return dst
}
