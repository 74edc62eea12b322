package tree

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/phloem/arbor/pkg/palette"
	"github.com/phloem/arbor/pkg/scene"
	"github.com/phloem/arbor/pkg/steer"
)

// growthState is the per-node recursion state. Each recursive call
// receives its own derived copy; nothing is shared between siblings.
type growthState struct {
	depth    int
	level    int
	length   float64
	diameter float64
	ang      float64
	curX     float64
	curY     float64
	r        float64
}

// grower bundles the read-only run configuration: parameters,
// environment points, the selected palette and the random source.
type grower struct {
	p   Params
	pal palette.Palette
	rng *rand.Rand
	g   *scene.Graph
}

// Grow runs a generation with the given parameters and returns the
// resulting scene graph. A nil rng selects a fixed-seed source, making
// default runs reproducible.
func Grow(p Params, rng *rand.Rand) *scene.Graph {
	g := scene.New()
	if id, ok := GrowInto(g, p, rng); ok {
		g.AddRoot(id)
	}
	return g
}

// GrowInto runs a generation emitting into an existing graph and
// returns the root node of the grown tree. ok is false when nothing
// was emitted (depth 0, or the spatial bound already violated at the
// root); the graph is left untouched in that case.
func GrowInto(g *scene.Graph, p Params, rng *rand.Rand) (scene.NodeID, bool) {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	gr := &grower{
		p:   p,
		pal: palette.Select(p.PaletteIndex),
		rng: rng,
		g:   g,
	}
	// The root path folds in the current graph size so that repeated
	// growths into the same graph get distinct node IDs.
	rootPath := fmt.Sprintf("tree-%d", g.NodeCount())
	root, ok := gr.branch(growthState{
		depth:    p.Depth,
		level:    0,
		length:   p.BranchLen,
		diameter: p.BranchD,
		ang:      p.Ang,
		curX:     p.CurX,
		curY:     p.CurY,
		r:        p.R,
	}, rootPath)
	if !ok {
		return scene.ZeroID, false
	}
	return root.ID, true
}

// branch draws one branch segment and recurses into its children.
// It returns ok=false without touching the graph when the state is
// terminal (depth exhausted or spatial bound exceeded).
func (gr *grower) branch(s growthState, path string) (*scene.Node, bool) {
	if s.depth <= 0 {
		return nil, false
	}
	if math.Max(math.Abs(s.curX), math.Abs(s.curY)) > gr.p.SpatialBound {
		return nil, false
	}

	diaTop := s.diameter * gr.p.DFactor
	node := emitBranch(gr.g, path, s.length, s.diameter, diaTop, gr.p.Segments, gr.pal.At(s.level))

	// Steering is sampled at the segment tip: the planar accumulators
	// plus the decayed length as z. The z component is recomputed from
	// the level, not accumulated depth-wise.
	pos := scene.Vec3{X: s.curX, Y: s.curY, Z: gr.p.BranchLengthAt(s.level)}
	st := steer.InfluenceVector(pos, gr.p.Attract, gr.p.Repel)

	n := gr.p.NBranches
	if gr.p.MaxBranchVariation > 0 {
		// Re-drawn at every node: siblings at the same level may differ.
		n += gr.rng.Intn(gr.p.MaxBranchVariation + 1)
	}

	for i := 0; i < n; i++ {
		slot := float64(i) * 360 / float64(n)

		xOff := gr.p.BranchXOffset
		if !gr.p.FixedXOffset {
			xOff = gr.uniform(-gr.p.BranchXOffset, gr.p.BranchXOffset) + 10*st.X
		}
		yOff := gr.p.BranchYOffset
		if !gr.p.FixedYOffset {
			yOff = gr.uniform(-gr.p.BranchYOffset, gr.p.BranchYOffset) + 10*st.Y
		}

		// Random angle variance and the fixed decrement are mutually
		// exclusive; the variance draw discards the decrement rule.
		childAng := s.ang - gr.p.AngDec
		if gr.p.AngRandVar > 0 {
			childAng = gr.uniform(s.ang-gr.p.AngRandVar, s.ang+gr.p.AngRandVar)
		}

		// The orientation angles double as the planar position
		// accumulators passed down the recursion.
		xAng := sinDeg(slot+xOff)*childAng + 20*st.X
		yAng := cosDeg(slot+yOff)*childAng + 20*st.Y
		childX := s.curX + xAng
		childY := s.curY + yAng

		child, ok := gr.branch(growthState{
			depth:    s.depth - 1,
			level:    s.level + 1,
			length:   s.length * gr.p.LenFactor,
			diameter: diaTop,
			ang:      childAng,
			curX:     childX,
			curY:     childY,
			r:        s.r - 1,
		}, fmt.Sprintf("%s/%d", path, i))
		if !ok {
			// Terminal child: no geometry for it or its descendants.
			continue
		}

		translation := scene.Vec3{Z: s.length}
		rotation := scene.Vec3{X: xAng, Y: yAng}
		place := &scene.Node{
			ID:       scene.NewNodeID(fmt.Sprintf("%s/%d/place", path, i)),
			Kind:     scene.NodeTransform,
			Children: []scene.NodeID{child.ID},
			Data: scene.TransformData{
				Translation: &translation,
				Rotation:    &rotation,
			},
		}
		gr.g.AddNode(place)
		node.Children = append(node.Children, place.ID)
	}

	return node, true
}

// uniform draws from [min, max).
func (gr *grower) uniform(min, max float64) float64 {
	return min + gr.rng.Float64()*(max-min)
}
