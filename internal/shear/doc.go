// Package shear models multi-story shear buildings and their tuned mass
// dampers as mass, damping and stiffness matrices.
//
// The package defines the fundamental types for linear structural dynamics
// of a shear frame (M·ẍ + C·ẋ + K·x = f):
//
//   - [Building]: per-floor masses and story stiffnesses
//   - [Absorber]: a tuned mass damper attached to one floor
//   - [Matrices]: one immutable M/C/K triple in SI units
//
// # Example
//
//	b, _ := shear.UniformBuilding(3, 12000, 1.4e7)
//	sys := shear.Assemble(b).WithRayleigh(0.8, 1e-4)
//	sys, _ = sys.WithAbsorbers([]shear.Absorber{{Mass: 700, Stiffness: 1.6e5, Floor: 3}})
//
// # Degree-of-Freedom Layout
//
// Floor displacements occupy indices 0..Floors()-1, one per floor with
// floor 1 first. Each absorber appends exactly one index in the order the
// absorbers were attached. Matrices never mutate: WithRayleigh and
// WithAbsorbers return fresh triples and leave the receiver intact.
package shear
