// Package generators provides the additive texture sources: sparse colored
// noise and randomized crackle bursts.
//
// Generators accumulate into the caller's stereo buffer. Each owns a plain
// State record, a parameter table describing it, a seeded randomizer and a
// click-free enable fader. Process never allocates and accepts any block
// length.
//
// Generators are not thread-safe.
package generators
