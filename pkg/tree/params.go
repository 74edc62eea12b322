// Package tree implements the recursive fractal tree grower. Growth is
// driven by morphological parameters and steered by environmental
// attract/repel points; the output is a scene graph of tapered
// cylinders, spheres, transforms and color tags (see pkg/scene).
package tree

import "github.com/phloem/arbor/pkg/scene"

// DefaultSpatialBound effectively disables the spatial guard: branch
// angle accumulators never approach it under sane parameters.
const DefaultSpatialBound = 1e6

// DefaultSegments is the default tessellation resolution hint attached
// to emitted primitives.
const DefaultSegments = 32

// Params configures a generation run. All fields are plain values; the
// zero value is not useful, start from DefaultParams.
type Params struct {
	// Depth is the recursion depth bound. 0 emits no geometry.
	Depth int

	// R is a base radius carried through the recursion and decremented
	// each level. It takes no part in any geometry computation; it is
	// preserved as a passthrough for compatibility with existing
	// parameter sets.
	R float64

	// CurX, CurY are the initial planar position accumulators. They
	// double as orientation-angle accumulators during growth.
	CurX, CurY float64

	// NBranches is the base fan-out count per node.
	NBranches int

	// BranchLen and BranchD are the root branch length and diameter.
	BranchLen, BranchD float64

	// Ang is the initial branch angle in degrees; AngDec is subtracted
	// from it at each branch step when AngRandVar is zero.
	Ang, AngDec float64

	// AngRandVar, when positive, replaces the AngDec decrement with a
	// uniform draw from [ang-AngRandVar, ang+AngRandVar] per branch.
	AngRandVar float64

	// BranchXOffset and BranchYOffset are the base angular offset
	// magnitudes per branch slot.
	BranchXOffset, BranchYOffset float64

	// FixedXOffset and FixedYOffset select the constant offset instead
	// of a uniform draw from [-offset, +offset] biased by steering.
	FixedXOffset, FixedYOffset bool

	// MaxBranchVariation, when positive, adds a uniform draw from
	// [0, MaxBranchVariation] to the fan-out count, re-drawn at every
	// node. Siblings at the same level may differ.
	MaxBranchVariation int

	// DFactor and LenFactor are the per-level diameter and length decay
	// multipliers, both in (0,1].
	DFactor, LenFactor float64

	// PaletteIndex selects one of the predefined palettes. Out-of-range
	// values fall back to the default warm palette.
	PaletteIndex int

	// SpatialBound terminates a subtree when max(|curX|,|curY|) of its
	// root exceeds it, regardless of remaining depth.
	SpatialBound float64

	// Segments is the tessellation resolution hint passed to the
	// geometry backend with every primitive.
	Segments int

	// Attract and Repel are the environment points, constant for the
	// whole run.
	Attract, Repel []scene.Vec3
}

// DefaultParams returns the default generation parameters.
func DefaultParams() Params {
	return Params{
		Depth:         4,
		R:             10,
		NBranches:     3,
		BranchLen:     18,
		BranchD:       3,
		Ang:           30,
		AngDec:        5,
		BranchXOffset: 0.4,
		BranchYOffset: 0.4,
		DFactor:       0.86,
		LenFactor:     0.95,
		PaletteIndex:  0,
		SpatialBound:  DefaultSpatialBound,
		Segments:      DefaultSegments,
	}
}
