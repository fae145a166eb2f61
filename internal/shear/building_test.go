package shear

import (
	"errors"
	"math"
	"testing"
)

func TestStoryStiffness(t *testing.T) {
	// k = 12·E·I/h³ with I = w·t³/12 collapses to E·w·t³/h³.
	k := StoryStiffness(2.5e10, 3.0, 0.35, 0.35)

	want := 2.5e10 * 0.35 * math.Pow(0.35, 3) / math.Pow(3.0, 3)
	if math.Abs(k-want) > 1e-6*want {
		t.Errorf("expected stiffness %g, got %g", want, k)
	}
}

func TestNewBuildingValidation(t *testing.T) {
	cases := []struct {
		name        string
		masses      []float64
		stiffnesses []float64
	}{
		{"empty", nil, nil},
		{"length mismatch", []float64{1, 2}, []float64{1}},
		{"zero mass", []float64{1, 0}, []float64{1, 1}},
		{"negative stiffness", []float64{1, 1}, []float64{1, -5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBuilding(tc.masses, tc.stiffnesses)
			if err == nil {
				t.Fatal("expected configuration error, got nil")
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestUniformBuilding(t *testing.T) {
	b, err := UniformBuilding(3, 1000, 5e5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.Floors() != 3 {
		t.Errorf("expected 3 floors, got %d", b.Floors())
	}

	if math.Abs(b.TotalMass()-3000) > 1e-9 {
		t.Errorf("expected total mass 3000, got %f", b.TotalMass())
	}

	for i, k := range b.Stiffnesses {
		if k != 5e5 {
			t.Errorf("story %d: expected stiffness 5e5, got %g", i+1, k)
		}
	}
}

func TestUniformBuildingRejectsZeroFloors(t *testing.T) {
	_, err := UniformBuilding(0, 1000, 5e5)
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}
