package shear

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func testBuilding(t *testing.T, floors int) *Building {
	t.Helper()
	b, err := UniformBuilding(floors, 1000, 5e5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return b
}

func checkSymmetric(t *testing.T, name string, s *mat.SymDense) {
	t.Helper()
	n := s.SymmetricDim()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if s.At(i, j) != s.At(j, i) {
				t.Errorf("%s[%d][%d]=%g differs from %s[%d][%d]=%g", name, i, j, s.At(i, j), name, j, i, s.At(j, i))
			}
		}
	}
}

func TestAssembleShearChain(t *testing.T) {
	sys := Assemble(testBuilding(t, 3))

	if sys.DOF() != 3 || sys.Floors() != 3 {
		t.Fatalf("expected 3 DOF for 3 floors, got %d/%d", sys.DOF(), sys.Floors())
	}

	k := 5e5
	wantK := [][]float64{
		{2 * k, -k, 0},
		{-k, 2 * k, -k},
		{0, -k, k},
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if got := sys.K.At(i, j); got != wantK[i][j] {
				t.Errorf("K[%d][%d]: expected %g, got %g", i, j, wantK[i][j], got)
			}
		}
		if got := sys.M.At(i, i); got != 1000 {
			t.Errorf("M[%d][%d]: expected 1000, got %g", i, i, got)
		}
		for j := 0; j < 3; j++ {
			if i != j && sys.M.At(i, j) != 0 {
				t.Errorf("M[%d][%d]: expected 0, got %g", i, j, sys.M.At(i, j))
			}
			if sys.C.At(i, j) != 0 {
				t.Errorf("C[%d][%d]: expected 0 before damping, got %g", i, j, sys.C.At(i, j))
			}
		}
	}

	checkSymmetric(t, "M", sys.M)
	checkSymmetric(t, "K", sys.K)
}

func TestAssembleNonUniformStories(t *testing.T) {
	b, err := NewBuilding([]float64{1000, 2000}, []float64{4e5, 1e5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sys := Assemble(b)

	if got := sys.K.At(0, 0); got != 5e5 {
		t.Errorf("K[0][0]: expected 5e5, got %g", got)
	}
	if got := sys.K.At(0, 1); got != -1e5 {
		t.Errorf("K[0][1]: expected -1e5, got %g", got)
	}
	if got := sys.K.At(1, 1); got != 1e5 {
		t.Errorf("K[1][1]: expected 1e5, got %g", got)
	}
}

func TestWithRayleigh(t *testing.T) {
	sys := Assemble(testBuilding(t, 3))
	alpha, beta := 0.8, 2e-4

	damped := sys.WithRayleigh(alpha, beta)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := alpha*sys.M.At(i, j) + beta*sys.K.At(i, j)
			if got := damped.C.At(i, j); math.Abs(got-want) > 1e-9 {
				t.Errorf("C[%d][%d]: expected %g, got %g", i, j, want, got)
			}
		}
	}

	// The receiver keeps its zero damping.
	if sys.C.At(0, 0) != 0 {
		t.Errorf("expected receiver damping untouched, got %g", sys.C.At(0, 0))
	}

	checkSymmetric(t, "C", damped.C)
}

func TestWithAbsorbersExtension(t *testing.T) {
	sys := Assemble(testBuilding(t, 3))
	ext, err := sys.WithAbsorbers([]Absorber{{Mass: 50, Stiffness: 250, Damping: 10, Floor: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ext.DOF() != 4 {
		t.Fatalf("expected 4 DOF after one absorber, got %d", ext.DOF())
	}
	if ext.Floors() != 3 {
		t.Errorf("expected floor count unchanged at 3, got %d", ext.Floors())
	}

	// Coupling entries join floor 2 (index 1) and the new index 3.
	if got := ext.K.At(1, 3); got != -250 {
		t.Errorf("K[1][3]: expected -250, got %g", got)
	}
	if got := ext.K.At(3, 1); got != -250 {
		t.Errorf("K[3][1]: expected -250, got %g", got)
	}
	if got := ext.K.At(3, 3); got != 250 {
		t.Errorf("K[3][3]: expected 250, got %g", got)
	}
	if got := ext.K.At(1, 1); got != sys.K.At(1, 1)+250 {
		t.Errorf("K[1][1]: expected %g, got %g", sys.K.At(1, 1)+250, got)
	}
	if got := ext.M.At(3, 3); got != 50 {
		t.Errorf("M[3][3]: expected 50, got %g", got)
	}
	if got := ext.C.At(1, 3); got != -10 {
		t.Errorf("C[1][3]: expected -10, got %g", got)
	}
	if got := ext.C.At(3, 3); got != 10 {
		t.Errorf("C[3][3]: expected 10, got %g", got)
	}

	// All prior entries except the attachment diagonal survive unchanged.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == 1 && j == 1 {
				continue
			}
			if ext.K.At(i, j) != sys.K.At(i, j) {
				t.Errorf("K[%d][%d]: expected %g preserved, got %g", i, j, sys.K.At(i, j), ext.K.At(i, j))
			}
			if ext.M.At(i, j) != sys.M.At(i, j) {
				t.Errorf("M[%d][%d]: expected %g preserved, got %g", i, j, sys.M.At(i, j), ext.M.At(i, j))
			}
		}
	}

	checkSymmetric(t, "M", ext.M)
	checkSymmetric(t, "C", ext.C)
	checkSymmetric(t, "K", ext.K)
}

func TestWithAbsorbersDoesNotMutateReceiver(t *testing.T) {
	sys := Assemble(testBuilding(t, 3))
	before := mat.NewSymDense(3, nil)
	before.CopySym(sys.K)

	_, err := sys.WithAbsorbers([]Absorber{{Mass: 50, Stiffness: 250, Floor: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sys.DOF() != 3 {
		t.Errorf("expected receiver to stay at 3 DOF, got %d", sys.DOF())
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if sys.K.At(i, j) != before.At(i, j) {
				t.Errorf("K[%d][%d] changed from %g to %g", i, j, before.At(i, j), sys.K.At(i, j))
			}
		}
	}
}

func TestWithAbsorbersAppendsInOrder(t *testing.T) {
	sys := Assemble(testBuilding(t, 3))
	ext, err := sys.WithAbsorbers([]Absorber{
		{Mass: 40, Stiffness: 100, Floor: 1},
		{Mass: 60, Stiffness: 200, Floor: 3},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ext.DOF() != 5 {
		t.Fatalf("expected 5 DOF, got %d", ext.DOF())
	}
	if got := ext.M.At(3, 3); got != 40 {
		t.Errorf("M[3][3]: expected first absorber mass 40, got %g", got)
	}
	if got := ext.M.At(4, 4); got != 60 {
		t.Errorf("M[4][4]: expected second absorber mass 60, got %g", got)
	}
	if got := ext.K.At(0, 3); got != -100 {
		t.Errorf("K[0][3]: expected -100, got %g", got)
	}
	if got := ext.K.At(2, 4); got != -200 {
		t.Errorf("K[2][4]: expected -200, got %g", got)
	}
}

func TestAssembleIdempotent(t *testing.T) {
	abs := []Absorber{{Mass: 50, Stiffness: 250, Damping: 10, Floor: 2}}

	build := func() *Matrices {
		sys := Assemble(testBuilding(t, 3)).WithRayleigh(0.2, 1e-4)
		ext, err := sys.WithAbsorbers(abs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return ext
	}

	a, b := build(), build()
	for i := 0; i < a.DOF(); i++ {
		for j := 0; j < a.DOF(); j++ {
			if a.M.At(i, j) != b.M.At(i, j) || a.C.At(i, j) != b.C.At(i, j) || a.K.At(i, j) != b.K.At(i, j) {
				t.Errorf("entry [%d][%d] differs between identical assemblies", i, j)
			}
		}
	}
}

func TestWithAbsorbersValidation(t *testing.T) {
	sys := Assemble(testBuilding(t, 3))

	cases := []struct {
		name string
		a    Absorber
	}{
		{"floor too high", Absorber{Mass: 50, Stiffness: 250, Floor: 4}},
		{"floor zero", Absorber{Mass: 50, Stiffness: 250, Floor: 0}},
		{"zero mass", Absorber{Mass: 0, Stiffness: 250, Floor: 1}},
		{"negative damping", Absorber{Mass: 50, Stiffness: 250, Damping: -1, Floor: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sys.WithAbsorbers([]Absorber{tc.a})
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestForceAt(t *testing.T) {
	sys := Assemble(testBuilding(t, 3))
	ext, err := sys.WithAbsorbers([]Absorber{{Mass: 50, Stiffness: 250, Floor: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := ext.ForceAt(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Len() != 4 {
		t.Fatalf("expected force vector over 4 DOF, got %d", f.Len())
	}
	for i := 0; i < 4; i++ {
		want := 0.0
		if i == 0 {
			want = 1.0
		}
		if f.AtVec(i) != want {
			t.Errorf("f[%d]: expected %g, got %g", i, want, f.AtVec(i))
		}
	}

	if _, err := ext.ForceAt(4); !errors.Is(err, ErrInputRange) {
		t.Errorf("expected ErrInputRange for absorber index, got %v", err)
	}
	if _, err := ext.ForceAt(0); !errors.Is(err, ErrInputRange) {
		t.Errorf("expected ErrInputRange, got %v", err)
	}
}
