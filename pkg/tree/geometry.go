package tree

import (
	"fmt"
	"math"

	"github.com/phloem/arbor/pkg/palette"
	"github.com/phloem/arbor/pkg/scene"
)

// BranchDiameter returns the branch diameter at a recursion level:
// d scaled by factor^level. Non-increasing in level for factor <= 1.
func BranchDiameter(d, factor float64, level int) float64 {
	return d * math.Pow(factor, float64(level))
}

// BranchLength returns the branch length at a recursion level:
// l scaled by factor^level.
func BranchLength(l, factor float64, level int) float64 {
	return l * math.Pow(factor, float64(level))
}

// BranchDiameterAt returns the decayed diameter at a level under these
// parameters.
func (p Params) BranchDiameterAt(level int) float64 {
	return BranchDiameter(p.BranchD, p.DFactor, level)
}

// BranchLengthAt returns the decayed length at a level under these
// parameters.
func (p Params) BranchLengthAt(level int) float64 {
	return BranchLength(p.BranchLen, p.LenFactor, level)
}

// sinDeg and cosDeg evaluate trigonometry in degrees; all angles in
// the growth math are degree-valued.
func sinDeg(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }
func cosDeg(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }

// emitBranch draws one branch segment into the graph: a color node
// wrapping a tapered cylinder from the local origin along +z (base =
// parent diameter, top = decayed diameter) and a tip cap sphere of half
// the top diameter. It returns the color node, to which child
// transforms are attached, so that the segment's geometry precedes its
// children in pre-order.
func emitBranch(g *scene.Graph, path string, length, diaBase, diaTop float64, segments int, c palette.Color) *scene.Node {
	seg := &scene.Node{
		ID:   scene.NewNodeID(path + "/seg"),
		Kind: scene.NodePrimitive,
		Data: scene.TaperedCylinderData{
			PrimKind:     scene.PrimTaperedCylinder,
			Height:       length,
			RadiusBottom: diaBase / 2,
			RadiusTop:    diaTop / 2,
			Segments:     segments,
		},
	}
	g.AddNode(seg)

	cap := &scene.Node{
		ID:   scene.NewNodeID(path + "/cap"),
		Kind: scene.NodePrimitive,
		Data: scene.SphereData{
			PrimKind: scene.PrimSphere,
			Radius:   diaTop / 2,
			Segments: segments,
		},
	}
	g.AddNode(cap)

	// The cap sits at the segment tip.
	tipOffset := scene.Vec3{Z: length}
	tip := &scene.Node{
		ID:       scene.NewNodeID(path + "/tip"),
		Kind:     scene.NodeTransform,
		Children: []scene.NodeID{cap.ID},
		Data:     scene.TransformData{Translation: &tipOffset},
	}
	g.AddNode(tip)

	color := &scene.Node{
		ID:       scene.NewNodeID(path),
		Kind:     scene.NodeColor,
		Name:     fmt.Sprintf("branch %s", path),
		Children: []scene.NodeID{seg.ID, tip.ID},
		Data:     scene.ColorData{Name: c.Name, Hex: c.Hex},
	}
	g.AddNode(color)
	return color
}
