// Package effects provides the in-place texture processors: a history
// buffer glitcher, a randomized gate and a pitch-drift resampler.
//
// Effects transform the buffer they are given. Each owns a plain State
// record, a parameter table, a seeded randomizer and an enable fader that
// crossfades between the dry input and the processed signal, so switching
// an effect never clicks. All buffers are sized at construction; Process
// never allocates and accepts any block length.
//
// Effects are not thread-safe.
package effects
