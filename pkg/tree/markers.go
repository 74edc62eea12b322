package tree

import (
	"fmt"

	"github.com/phloem/arbor/pkg/scene"
)

// Marker colors: attractors green, repellers red.
var (
	attractColor = scene.ColorData{Name: "green", Hex: "#008000"}
	repelColor   = scene.ColorData{Name: "red", Hex: "#FF0000"}
)

// ShowPoints emits a sphere marker per environment point into the
// graph: green for attractors, red for repellers, each of the given
// size (sphere radius). It emits no tree geometry. The returned group
// node is registered as a graph root.
func ShowPoints(g *scene.Graph, attract, repel []scene.Vec3, size float64) scene.NodeID {
	group := &scene.Node{
		ID:   scene.NewNodeID("markers"),
		Kind: scene.NodeGroup,
		Name: "markers",
		Data: scene.GroupData{Description: "environment point markers"},
	}

	for i, p := range attract {
		id := emitMarker(g, fmt.Sprintf("markers/attract/%d", i), p, size, attractColor)
		group.Children = append(group.Children, id)
	}
	for i, p := range repel {
		id := emitMarker(g, fmt.Sprintf("markers/repel/%d", i), p, size, repelColor)
		group.Children = append(group.Children, id)
	}

	g.AddNode(group)
	g.AddRoot(group.ID)
	return group.ID
}

// emitMarker adds one colored sphere translated to the point.
func emitMarker(g *scene.Graph, path string, p scene.Vec3, size float64, c scene.ColorData) scene.NodeID {
	sphere := &scene.Node{
		ID:   scene.NewNodeID(path + "/sphere"),
		Kind: scene.NodePrimitive,
		Data: scene.SphereData{
			PrimKind: scene.PrimSphere,
			Radius:   size,
			Segments: DefaultSegments,
		},
	}
	g.AddNode(sphere)

	at := p
	place := &scene.Node{
		ID:       scene.NewNodeID(path + "/place"),
		Kind:     scene.NodeTransform,
		Children: []scene.NodeID{sphere.ID},
		Data:     scene.TransformData{Translation: &at},
	}
	g.AddNode(place)

	color := &scene.Node{
		ID:       scene.NewNodeID(path),
		Kind:     scene.NodeColor,
		Children: []scene.NodeID{place.ID},
		Data:     c,
	}
	g.AddNode(color)
	return color.ID
}
