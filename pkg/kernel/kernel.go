// Package kernel defines the abstract geometry backend interface.
// Implementations (sdfx) provide solid modeling behind this interface.
// The kernel abstraction allows swapping backends without changing the
// scene graph or the tessellator.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry backend interface.
type Kernel interface {
	// Primitives. Cylinder and Cone have their base at the local origin
	// extending along +z; Sphere is centered at the local origin.
	// The segments parameter is a tessellation resolution hint.
	Cylinder(height, radius float64, segments int) Solid
	Cone(height, radiusBottom, radiusTop float64, segments int) Solid
	Sphere(radius float64, segments int) Solid

	// Boolean operations
	Union(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)

	// SaveSTL writes a solid to an STL file.
	SaveSTL(s Solid, path string) error
}
