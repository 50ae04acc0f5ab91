package levels

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-texture/internal/testutil"
)

func TestCalculateSine(t *testing.T) {
	x := testutil.DeterministicSine(1000, 48000, 1, 48000)
	s := Calculate(x)

	if math.Abs(s.RMS-1/math.Sqrt2) > 1e-3 {
		t.Errorf("RMS = %v", s.RMS)
	}
	if math.Abs(s.CrestDB-3.0103) > 0.01 {
		t.Errorf("CrestDB = %v", s.CrestDB)
	}
	if math.Abs(s.DC) > 1e-9 {
		t.Errorf("DC = %v", s.DC)
	}
	// 1000 cycles, two crossings each.
	if s.ZeroCrossings < 1998 || s.ZeroCrossings > 2000 {
		t.Errorf("ZeroCrossings = %d", s.ZeroCrossings)
	}
	// A sinusoid has excess kurtosis -1.5.
	if math.Abs(s.Kurtosis+1.5) > 0.01 {
		t.Errorf("Kurtosis = %v", s.Kurtosis)
	}
}

func TestKurtosisSeparatesImpulses(t *testing.T) {
	uniform := Calculate(testutil.DeterministicNoise(1, 1, 1<<16))
	if math.Abs(uniform.Kurtosis+1.2) > 0.05 {
		t.Fatalf("uniform kurtosis = %v, want -1.2", uniform.Kurtosis)
	}

	sparse := make([]float64, 1<<16)
	for i := 0; i < len(sparse); i += 1000 {
		sparse[i] = 1
	}
	if k := Calculate(sparse).Kurtosis; k < 100 {
		t.Fatalf("impulse kurtosis = %v, want large", k)
	}
}

func TestAccumulatorMatchesCalculate(t *testing.T) {
	x := testutil.DeterministicNoise(9, 0.7, 10000)
	want := Calculate(x)

	var a Accumulator
	for i := 0; i < len(x); i += 333 {
		a.Update(x[i:min(i+333, len(x))])
	}
	got := a.Result()
	if got.Length != want.Length || got.ZeroCrossings != want.ZeroCrossings || got.Peak != want.Peak {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for name, pair := range map[string][2]float64{
		"rms":      {got.RMS, want.RMS},
		"dc":       {got.DC, want.DC},
		"kurtosis": {got.Kurtosis, want.Kurtosis},
		"skewness": {got.Skewness, want.Skewness},
	} {
		if math.Abs(pair[0]-pair[1]) > 1e-12 {
			t.Errorf("%s = %v, want %v", name, pair[0], pair[1])
		}
	}

	a.Reset()
	if a.Result() != (Stats{}) {
		t.Fatal("Reset left state")
	}
}

func TestEmptyAndSilent(t *testing.T) {
	if Calculate(nil) != (Stats{}) {
		t.Fatal("empty input should give zero Stats")
	}
	s := Calculate(make([]float64, 64))
	if s.Length != 64 || s.RMS != 0 || s.CrestDB != 0 || s.Kurtosis != 0 {
		t.Fatalf("silence = %+v", s)
	}
}
