// Package engine owns the fixed texture module set and runs it as one
// stereo pipeline.
//
// The pipeline order is noise1, noise2, crackle1, crackle2 (additive
// generators), then glitch1, glitch2, rgate and pitch (in-place effects).
// A shared entropy source is advanced once per chunk and fed to the noise,
// crackle and pitch modules.
//
// Control methods (Set, Get, State, SetState, SetPlayMode, ...) are safe
// for concurrent use. They update a control-side mirror of the State and
// publish changes to the audio side over a buffered channel; when the
// channel is full the whole mirror is published as a pending snapshot that
// supersedes the queued changes. Process is called from a single audio
// goroutine and never blocks or allocates.
package engine
