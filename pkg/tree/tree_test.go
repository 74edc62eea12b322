package tree

import (
	"math"
	"math/rand"
	"testing"

	"github.com/phloem/arbor/pkg/scene"
)

// flatParams returns a fully deterministic configuration: fixed zero
// offsets, no angle variance, no fan-out variation, no environment
// points.
func flatParams(depth, branches int) Params {
	p := DefaultParams()
	p.Depth = depth
	p.NBranches = branches
	p.BranchXOffset = 0
	p.BranchYOffset = 0
	p.FixedXOffset = true
	p.FixedYOffset = true
	return p
}

func TestDecayIdentity(t *testing.T) {
	const d, f = 3.0, 0.86
	for level := 0; level < 12; level++ {
		want := d * math.Pow(f, float64(level))
		if got := BranchDiameter(d, f, level); math.Abs(got-want) > 1e-12 {
			t.Errorf("BranchDiameter(%v, %v, %d) = %v, want %v", d, f, level, got, want)
		}
	}
	if got := BranchDiameter(d, f, 0); got != d {
		t.Errorf("level 0 diameter = %v, want %v", got, d)
	}
	if got := BranchLength(18, 0.95, 0); got != 18 {
		t.Errorf("level 0 length = %v, want 18", got)
	}
}

func TestDecayMonotonic(t *testing.T) {
	for _, f := range []float64{0.5, 0.86, 0.95, 1.0} {
		prev := math.Inf(1)
		for level := 0; level < 20; level++ {
			cur := BranchLength(18, f, level)
			if cur > prev {
				t.Fatalf("factor %v: length increased at level %d (%v > %v)", f, level, cur, prev)
			}
			prev = cur
		}
	}
}

func TestDepthZeroEmitsNothing(t *testing.T) {
	p := flatParams(0, 4)
	g := Grow(p, nil)
	if g.NodeCount() != 0 {
		t.Errorf("depth 0 emitted %d nodes, want 0", g.NodeCount())
	}
	if len(g.Roots) != 0 {
		t.Errorf("depth 0 registered %d roots, want 0", len(g.Roots))
	}
}

func TestBalancedSegmentCount(t *testing.T) {
	// Without fan-out variation a balanced tree of depth D and constant
	// branch count N holds sum_{i=0}^{D-1} N^i segments.
	tests := []struct {
		depth, branches int
	}{
		{1, 4},
		{2, 4},
		{3, 3},
		{4, 2},
		{5, 1},
	}
	for _, tt := range tests {
		want := 0
		for i := 0; i < tt.depth; i++ {
			want += int(math.Pow(float64(tt.branches), float64(i)))
		}
		g := Grow(flatParams(tt.depth, tt.branches), nil)
		if got := g.SegmentCount(); got != want {
			t.Errorf("depth=%d branches=%d: %d segments, want %d",
				tt.depth, tt.branches, got, want)
		}
		// Every segment carries a tip cap sphere.
		if got := g.CountKind(scene.NodePrimitive); got != 2*want {
			t.Errorf("depth=%d branches=%d: %d primitives, want %d",
				tt.depth, tt.branches, got, 2*want)
		}
	}
}

func TestOneParentFourChildren(t *testing.T) {
	// One parent plus one full fan of four children, evenly spaced at
	// 90 degree slots.
	p := flatParams(2, 4)
	g := Grow(p, nil)

	if got := g.SegmentCount(); got != 5 {
		t.Fatalf("segment count = %d, want 5", got)
	}

	root := g.Get(g.Roots[0])
	if root == nil || root.Kind != scene.NodeColor {
		t.Fatalf("root is %v, want color node", root)
	}

	// Child placements hang off the root in slot order; the tip-cap
	// transform carries no rotation and is skipped.
	var placements []*scene.Node
	for _, c := range g.Children(root) {
		if c.Kind == scene.NodeTransform {
			if td, ok := c.Data.(scene.TransformData); ok && td.Rotation != nil {
				placements = append(placements, c)
			}
		}
	}
	if len(placements) != 4 {
		t.Fatalf("placement count = %d, want 4", len(placements))
	}

	// Ang 30 decremented by 5 gives the child angle 25; the slot angle
	// distributes it over sin/cos at 0, 90, 180, 270 degrees.
	childAng := p.Ang - p.AngDec
	wantRot := [][2]float64{
		{0, childAng},
		{childAng, 0},
		{0, -childAng},
		{-childAng, 0},
	}
	for i, place := range placements {
		td := place.Data.(scene.TransformData)
		if td.Translation == nil || td.Translation.Z != p.BranchLen {
			t.Errorf("slot %d: translation = %v, want z=%v", i, td.Translation, p.BranchLen)
		}
		if math.Abs(td.Rotation.X-wantRot[i][0]) > 1e-9 ||
			math.Abs(td.Rotation.Y-wantRot[i][1]) > 1e-9 {
			t.Errorf("slot %d: rotation = (%v, %v), want (%v, %v)",
				i, td.Rotation.X, td.Rotation.Y, wantRot[i][0], wantRot[i][1])
		}
	}
}

func TestSpatialBoundPrunesSubtrees(t *testing.T) {
	p := flatParams(5, 3)
	p.SpatialBound = 1
	// Every child accumulates |curX| or |curY| of about the child
	// angle, which far exceeds the bound, so only the root survives.
	g := Grow(p, nil)
	if got := g.SegmentCount(); got != 1 {
		t.Errorf("segment count = %d, want 1 (all subtrees pruned)", got)
	}
}

func TestSpatialBoundAtRoot(t *testing.T) {
	p := flatParams(4, 3)
	p.CurX = 50
	p.SpatialBound = 10
	g := Grow(p, nil)
	if g.NodeCount() != 0 {
		t.Errorf("root outside bound emitted %d nodes, want 0", g.NodeCount())
	}
}

func TestFanOutVariationBounds(t *testing.T) {
	p := flatParams(3, 2)
	p.MaxBranchVariation = 2
	g := Grow(p, rand.New(rand.NewSource(7)))

	min, max := 0, 0
	for i := 0; i < p.Depth; i++ {
		min += int(math.Pow(float64(p.NBranches), float64(i)))
		max += int(math.Pow(float64(p.NBranches+p.MaxBranchVariation), float64(i)))
	}
	got := g.SegmentCount()
	if got < min || got > max {
		t.Errorf("segment count = %d, want within [%d, %d]", got, min, max)
	}
}

func TestSeededRunsAreReproducible(t *testing.T) {
	p := DefaultParams()
	p.Depth = 4
	p.MaxBranchVariation = 3
	p.AngRandVar = 10
	p.Attract = []scene.Vec3{{X: 0, Y: 0, Z: 100}}
	p.Repel = []scene.Vec3{{X: 40, Y: 0, Z: 10}}

	a := Grow(p, rand.New(rand.NewSource(42)))
	b := Grow(p, rand.New(rand.NewSource(42)))

	if a.SegmentCount() != b.SegmentCount() {
		t.Errorf("same seed produced %d vs %d segments",
			a.SegmentCount(), b.SegmentCount())
	}
	if a.NodeCount() != b.NodeCount() {
		t.Errorf("same seed produced %d vs %d nodes", a.NodeCount(), b.NodeCount())
	}
}

func TestPaletteCyclesByLevel(t *testing.T) {
	p := flatParams(2, 1)
	g := Grow(p, nil)

	root := g.Get(g.Roots[0])
	rootColor := root.Data.(scene.ColorData)
	if rootColor.Name != "sienna" {
		t.Errorf("level 0 color = %q, want sienna", rootColor.Name)
	}

	// Find the single child's color node one placement down.
	var childColor *scene.ColorData
	for _, c := range g.Children(root) {
		if c.Kind != scene.NodeTransform {
			continue
		}
		for _, cc := range g.Children(c) {
			if cc.Kind == scene.NodeColor {
				cd := cc.Data.(scene.ColorData)
				childColor = &cd
			}
		}
	}
	if childColor == nil {
		t.Fatal("no child color node found")
	}
	if childColor.Name != "peru" {
		t.Errorf("level 1 color = %q, want peru", childColor.Name)
	}
}

func TestPaletteIndexFallback(t *testing.T) {
	p := flatParams(1, 1)
	p.PaletteIndex = 99
	g := Grow(p, nil)
	root := g.Get(g.Roots[0])
	if got := root.Data.(scene.ColorData).Name; got != "sienna" {
		t.Errorf("fallback palette root color = %q, want sienna", got)
	}
}

func TestTaperAndCap(t *testing.T) {
	p := flatParams(1, 1)
	g := Grow(p, nil)

	root := g.Get(g.Roots[0])
	children := g.Children(root)
	if len(children) < 2 {
		t.Fatalf("branch node has %d children, want segment + tip", len(children))
	}

	seg, ok := children[0].Data.(scene.TaperedCylinderData)
	if !ok {
		t.Fatalf("first child is %T, want tapered cylinder", children[0].Data)
	}
	if seg.RadiusBottom != p.BranchD/2 {
		t.Errorf("base radius = %v, want %v", seg.RadiusBottom, p.BranchD/2)
	}
	wantTop := p.BranchD * p.DFactor / 2
	if math.Abs(seg.RadiusTop-wantTop) > 1e-12 {
		t.Errorf("top radius = %v, want %v", seg.RadiusTop, wantTop)
	}
	if seg.Height != p.BranchLen {
		t.Errorf("segment height = %v, want %v", seg.Height, p.BranchLen)
	}
	if seg.Segments != p.Segments {
		t.Errorf("segment resolution = %d, want %d", seg.Segments, p.Segments)
	}

	tip := children[1]
	if tip.Kind != scene.NodeTransform {
		t.Fatalf("second child is %v, want tip transform", tip.Kind)
	}
	tipChildren := g.Children(tip)
	if len(tipChildren) != 1 {
		t.Fatalf("tip transform has %d children, want 1", len(tipChildren))
	}
	capData, ok := tipChildren[0].Data.(scene.SphereData)
	if !ok {
		t.Fatalf("tip child is %T, want sphere", tipChildren[0].Data)
	}
	if math.Abs(capData.Radius-wantTop) > 1e-12 {
		t.Errorf("cap radius = %v, want half the top diameter %v", capData.Radius, wantTop)
	}
}

func TestShowPoints(t *testing.T) {
	g := scene.New()
	attract := []scene.Vec3{{X: 0, Y: 0, Z: 100}, {X: 20, Y: 0, Z: 50}}
	repel := []scene.Vec3{{X: -30, Y: 10, Z: 5}}
	ShowPoints(g, attract, repel, 2)

	if got := g.CountKind(scene.NodePrimitive); got != 3 {
		t.Errorf("marker primitive count = %d, want 3", got)
	}
	if g.SegmentCount() != 0 {
		t.Error("markers must emit no tree geometry")
	}

	group := g.Lookup("markers")
	if group == nil {
		t.Fatal("marker group not found")
	}
	greens, reds := 0, 0
	for _, c := range g.Children(group) {
		switch c.Data.(scene.ColorData).Name {
		case "green":
			greens++
		case "red":
			reds++
		}
	}
	if greens != 2 || reds != 1 {
		t.Errorf("markers = %d green / %d red, want 2 / 1", greens, reds)
	}
}
