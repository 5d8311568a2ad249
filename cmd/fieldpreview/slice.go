package main

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/lattice/components"
	"github.com/pthm-cable/lattice/params"
	"github.com/pthm-cable/lattice/systems"
)

// sliceView is a horizontal cut through the attribute field.
type sliceView struct {
	Size   int     // samples per side
	Extent float64 // half width of the cut in lattice units
	Y      float64 // height of the cut
}

// sample evaluates graph on a Size x Size grid over [-Extent, Extent] in X
// and Z. When noiseOnly is set the color is the fractional noise value in
// gray instead of the band color. Output is row-major with rows along Z,
// together with the fraction of samples in each band.
func (v sliceView) sample(dst []components.Attributes, graph *systems.AttributeGraph, p params.Parameters, t float64, noiseOnly bool) ([]components.Attributes, [3]float64) {
	n := v.Size * v.Size
	if cap(dst) < n {
		dst = make([]components.Attributes, n)
	}
	dst = dst[:n]
	var bands [3]float64

	step := 2 * v.Extent / float64(v.Size)
	for row := 0; row < v.Size; row++ {
		z := -v.Extent + (float64(row)+0.5)*step
		for col := 0; col < v.Size; col++ {
			x := -v.Extent + (float64(col)+0.5)*step
			eval := graph.EvaluateDetailed(mgl64.Vec3{x, v.Y, z}, t, p)
			bands[eval.Band]++
			attrs := eval.Attributes
			if noiseOnly {
				g := systems.Mod(eval.Noise, 1)
				attrs.Color = mgl64.Vec3{g, g, g}
			}
			dst[row*v.Size+col] = attrs
		}
	}
	for i := range bands {
		bands[i] /= float64(n)
	}
	return dst, bands
}
