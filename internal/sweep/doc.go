// Package sweep evaluates steady-state frequency response curves for
// assembled shear-building systems.
//
// For each excitation frequency ω the dynamic stiffness B(ω) = K − ω²M + iωC
// is solved against a fixed load vector:
//
//   - [At]: one complex solve at a single frequency
//   - [Run]: a whole sweep across a frequency grid, chunked over workers
//   - [Frequencies]: inclusive grid builder from start/end/step
//
// # Singular Points
//
// An undamped system excited exactly at a natural frequency has a
// singular B(ω). [Options.OnSingular] picks the policy: [Skip] records a
// [PointError] and leaves NaN at that grid point, [Abort] fails the whole
// sweep. Near-resonant but damped solves are finite and always accepted.
package sweep
