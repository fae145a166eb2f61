// Package engine wires configuration, matrix assembly, damping, modal
// analysis and frequency sweeps into one analysis pipeline.
//
// [New] eagerly validates the configuration and builds every derived
// artifact, so a constructed engine can always answer:
//
//   - [Engine.Modes]: natural frequencies and shapes of the full system
//   - [Engine.Coefficients]: fitted Rayleigh damping coefficients
//   - [Engine.FrequencyResponse]: response curves over any grid
//   - [Engine.Run]: the configured sweep bundled into a [Result]
//
// # Degree-of-Freedom Order
//
// Floors come first, then absorbers in attachment order. In random mode
// the generated absorbers attach before the curated list, all drawn from
// the configured seed, so a run is reproducible end to end.
package engine
