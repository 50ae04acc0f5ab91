package dither_test

import (
	"fmt"

	"github.com/cwbudde/algo-texture/dsp/dither"
)

func ExampleQuantizer_ProcessInPlace() {
	q, err := dither.NewQuantizer(dither.WithBitDepth(8), dither.WithType(dither.None))
	if err != nil {
		panic(err)
	}

	buf := []float64{0, 0.25, 0.5, 1.5}
	q.ProcessInPlace(buf)
	fmt.Printf("%.4f %.4f %.4f %.4f\n", buf[0], buf[1], buf[2], buf[3])
	// Output: 0.0000 0.2520 0.5039 1.0000
}
