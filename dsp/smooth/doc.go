// Package smooth provides per-sample control smoothing: a [Smoother] that
// glides a parameter toward its target to avoid zipper noise, and a [Fader]
// that ramps a module in or out when it is enabled or disabled.
//
// Both types are real-time safe (no allocation after construction) and not
// thread-safe.
package smooth
