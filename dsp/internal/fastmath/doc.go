// Package fastmath provides the exponential functions used on the audio
// path (crackle envelope, pitch ratio).
//
// Builds with the fastmath tag route them through algo-approx, trading a
// small relative error (<0.1% for |x| <= 10) for speed. Default builds use
// the standard library.
package fastmath
