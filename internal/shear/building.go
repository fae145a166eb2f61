package shear

import "fmt"

// Building holds the bare frame: one lumped mass per floor and one lateral
// story stiffness per story, floor 1 first.
type Building struct {
	Masses      []float64 // kg
	Stiffnesses []float64 // N/m, story i connects floor i to the level below
}

// Absorber is a tuned mass damper attached to a single floor.
type Absorber struct {
	Mass      float64 // kg
	Stiffness float64 // N/m
	Damping   float64 // N·s/m
	Floor     int     // 1..Floors
}

// StoryStiffness returns the lateral stiffness of one story of height h
// whose columns act as a fixed-fixed plate of width w and thickness t:
// k = 12·E·I/h³ with I = w·t³/12.
func StoryStiffness(youngs, h, w, t float64) float64 {
	return youngs * w * t * t * t / (h * h * h)
}

// NewBuilding validates per-floor parameters and returns the frame.
// Slices must have equal nonzero length, masses and stiffnesses must be
// positive.
func NewBuilding(masses, stiffnesses []float64) (*Building, error) {
	if len(masses) == 0 {
		return nil, &ConfigError{Field: "floors", Detail: "need at least one floor"}
	}
	if len(masses) != len(stiffnesses) {
		return nil, &ConfigError{
			Field:  "stiffnesses",
			Detail: fmt.Sprintf("have %d stories for %d floors", len(stiffnesses), len(masses)),
		}
	}
	for i, m := range masses {
		if m <= 0 {
			return nil, &ConfigError{Field: "masses", Detail: fmt.Sprintf("floor %d mass %g must be positive", i+1, m)}
		}
	}
	for i, k := range stiffnesses {
		if k <= 0 {
			return nil, &ConfigError{Field: "stiffnesses", Detail: fmt.Sprintf("story %d stiffness %g must be positive", i+1, k)}
		}
	}
	return &Building{Masses: masses, Stiffnesses: stiffnesses}, nil
}

// UniformBuilding returns a frame with identical floors.
func UniformBuilding(floors int, mass, stiffness float64) (*Building, error) {
	if floors < 1 {
		return nil, &ConfigError{Field: "floors", Detail: fmt.Sprintf("%d floors, need at least one", floors)}
	}
	masses := make([]float64, floors)
	stiffnesses := make([]float64, floors)
	for i := range masses {
		masses[i] = mass
		stiffnesses[i] = stiffness
	}
	return NewBuilding(masses, stiffnesses)
}

func (b *Building) Floors() int {
	return len(b.Masses)
}

func (b *Building) TotalMass() float64 {
	sum := 0.0
	for _, m := range b.Masses {
		sum += m
	}
	return sum
}

func (a Absorber) validate(floors, index int) error {
	field := fmt.Sprintf("absorbers[%d]", index)
	if a.Mass <= 0 {
		return &ConfigError{Field: field + ".mass", Detail: fmt.Sprintf("%g must be positive", a.Mass)}
	}
	if a.Stiffness <= 0 {
		return &ConfigError{Field: field + ".stiffness", Detail: fmt.Sprintf("%g must be positive", a.Stiffness)}
	}
	if a.Damping < 0 {
		return &ConfigError{Field: field + ".damping", Detail: fmt.Sprintf("%g must not be negative", a.Damping)}
	}
	if a.Floor < 1 || a.Floor > floors {
		return &ConfigError{Field: field + ".floor", Detail: fmt.Sprintf("floor %d outside 1..%d", a.Floor, floors)}
	}
	return nil
}
