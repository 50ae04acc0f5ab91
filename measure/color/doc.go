// Package color measures the level and spectral tilt of rendered texture
// audio.
//
// Analyze reports RMS, peak and crest factor together with the spectral
// slope in dB per octave, estimated by a least-squares fit over
// third-octave band powers of a windowed (Hann by default), averaged FFT. White noise
// measures close to 0 dB/octave, pink close to -3 and brown close to -6.
package color
