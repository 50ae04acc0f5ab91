// Package preset reads and writes engine states as versioned JSON
// documents:
//
//	{
//	  "version": 1,
//	  "name": "rain on tin",
//	  "author": "...",
//	  "license": "CC0-1.0",
//	  "modules": {
//	    "noise1": {"enabled": true, "type": "pink", "density": 0.4},
//	    "rgate":  {"min_interval": 120}
//	  },
//	  "global": {"play_mode": "on", "entropy_rate": 0.5}
//	}
//
// Decoding is best effort. Parameters missing from the document keep
// their defaults; unknown modules, unknown parameters and malformed values
// are skipped and reported as Issues. Only unparseable JSON and
// unsupported versions fail.
package preset
