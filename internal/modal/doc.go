// Package modal extracts natural frequencies and mode shapes from
// assembled mass and stiffness matrices.
//
// [Analyze] solves the generalized symmetric eigenproblem K·v = λ·M·v by
// Cholesky reduction to standard form and returns one [Mode] per degree
// of freedom, sorted by ascending frequency.
//
// # Frequency Units
//
// Eigenvalues λ are squared circular frequencies. Each mode reports both
// ω = √λ in rad/s and f = ω/2π in Hz:
//
//	modes, _ := modal.Analyze(sys.K, sys.M)
//	fmt.Printf("fundamental: %.2f Hz\n", modes[0].Hz)
package modal
