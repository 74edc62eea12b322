// Package tessellate walks a scene graph and produces triangle meshes
// or a combined solid using a geometry kernel. One mesh is produced per
// primitive, tagged with the innermost enclosing color.
package tessellate

import (
	"fmt"

	"github.com/phloem/arbor/pkg/kernel"
	"github.com/phloem/arbor/pkg/scene"
)

// walkState accumulates spatial transforms and color tags during
// traversal. Transforms compose: the innermost is applied to the
// primitive first, then each enclosing transform outward.
type walkState struct {
	transforms []scene.TransformData
	colors     []scene.ColorData
}

func (ws *walkState) pushTransform(td scene.TransformData) {
	ws.transforms = append(ws.transforms, td)
}

func (ws *walkState) popTransform() {
	ws.transforms = ws.transforms[:len(ws.transforms)-1]
}

func (ws *walkState) pushColor(cd scene.ColorData) {
	ws.colors = append(ws.colors, cd)
}

func (ws *walkState) popColor() {
	ws.colors = ws.colors[:len(ws.colors)-1]
}

// color returns the innermost color tag, if any.
func (ws *walkState) color() (scene.ColorData, bool) {
	if len(ws.colors) == 0 {
		return scene.ColorData{}, false
	}
	return ws.colors[len(ws.colors)-1], true
}

// place applies the accumulated transforms to a solid, innermost first.
// Each transform rotates its subtree, then translates it.
func (ws *walkState) place(k kernel.Kernel, s kernel.Solid) kernel.Solid {
	for i := len(ws.transforms) - 1; i >= 0; i-- {
		td := ws.transforms[i]
		if td.Rotation != nil && !td.Rotation.IsZero() {
			s = k.Rotate(s, td.Rotation.X, td.Rotation.Y, td.Rotation.Z)
		}
		if td.Translation != nil && !td.Translation.IsZero() {
			s = k.Translate(s, td.Translation.X, td.Translation.Y, td.Translation.Z)
		}
	}
	return s
}

// Tessellate walks the scene graph and produces one triangle mesh per
// primitive using the provided geometry kernel. The tessellator is
// read-only and never mutates the graph. Meshes appear in depth-first
// pre-order of the scene.
func Tessellate(g *scene.Graph, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if g == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	err := walk(g, func(n *scene.Node, ws *walkState) error {
		solid, err := buildPrimitive(k, n)
		if err != nil {
			return err
		}
		solid = ws.place(k, solid)

		mesh, err := k.ToMesh(solid)
		if err != nil {
			return fmt.Errorf("tessellate: ToMesh failed for node %s: %w", n.ID.Short(), err)
		}
		if n.Name != "" {
			mesh.Name = n.Name
		} else {
			mesh.Name = n.ID.Short()
		}
		if c, ok := ws.color(); ok {
			mesh.Color = c.Hex
		}
		meshes = append(meshes, mesh)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return meshes, nil
}

// Combine walks the scene graph and returns the union of all placed
// primitives as a single solid, for export paths that cannot carry
// per-part colors (STL). ok is false when the scene has no primitives.
func Combine(g *scene.Graph, k kernel.Kernel) (kernel.Solid, bool, error) {
	if g == nil {
		return nil, false, nil
	}

	var combined kernel.Solid
	err := walk(g, func(n *scene.Node, ws *walkState) error {
		solid, err := buildPrimitive(k, n)
		if err != nil {
			return err
		}
		solid = ws.place(k, solid)
		if combined == nil {
			combined = solid
		} else {
			combined = k.Union(combined, solid)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return combined, combined != nil, nil
}

// visitFn is called for every primitive node with the active walk state.
type visitFn func(n *scene.Node, ws *walkState) error

// walk traverses the graph roots in order, maintaining the walk state.
func walk(g *scene.Graph, visit visitFn) error {
	ws := &walkState{}
	for _, rootID := range g.Roots {
		root := g.Get(rootID)
		if root == nil {
			continue
		}
		if err := walkNode(g, root, ws, visit); err != nil {
			return fmt.Errorf("tessellate: error walking root %s: %w", rootID.Short(), err)
		}
	}
	return nil
}

// walkNode recursively traverses a node and its children.
func walkNode(g *scene.Graph, n *scene.Node, ws *walkState, visit visitFn) error {
	switch n.Kind {
	case scene.NodePrimitive:
		return visit(n, ws)

	case scene.NodeTransform:
		td, ok := n.Data.(scene.TransformData)
		if !ok {
			return fmt.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
		}
		ws.pushTransform(td)
		defer ws.popTransform()
		return walkChildren(g, n, ws, visit)

	case scene.NodeColor:
		cd, ok := n.Data.(scene.ColorData)
		if !ok {
			return fmt.Errorf("color node %s has unexpected data type %T", n.ID.Short(), n.Data)
		}
		ws.pushColor(cd)
		defer ws.popColor()
		return walkChildren(g, n, ws, visit)

	case scene.NodeGroup:
		return walkChildren(g, n, ws, visit)

	default:
		return fmt.Errorf("unknown node kind: %v", n.Kind)
	}
}

// walkChildren recurses into a node's children in order.
func walkChildren(g *scene.Graph, n *scene.Node, ws *walkState, visit visitFn) error {
	for _, child := range g.Children(n) {
		if err := walkNode(g, child, ws, visit); err != nil {
			return err
		}
	}
	return nil
}

// buildPrimitive creates kernel geometry for a primitive node.
func buildPrimitive(k kernel.Kernel, n *scene.Node) (kernel.Solid, error) {
	switch data := n.Data.(type) {
	case scene.TaperedCylinderData:
		if data.RadiusBottom == data.RadiusTop {
			return k.Cylinder(data.Height, data.RadiusBottom, data.Segments), nil
		}
		return k.Cone(data.Height, data.RadiusBottom, data.RadiusTop, data.Segments), nil
	case scene.SphereData:
		return k.Sphere(data.Radius, data.Segments), nil
	default:
		return nil, fmt.Errorf("primitive node %s has unsupported data type %T", n.ID.Short(), n.Data)
	}
}
