// Package design computes biquad coefficients for the runtime in
// dsp/filter/biquad.
//
// Formulas follow the RBJ Audio EQ Cookbook. Invalid frequencies or sample
// rates yield identity coefficients so that a misconfigured filter passes
// audio through unchanged instead of muting it.
package design
