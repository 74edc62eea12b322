package scene

// ---------------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------------

// PrimitiveKind distinguishes between primitive shapes.
type PrimitiveKind int

const (
	PrimTaperedCylinder PrimitiveKind = iota // truncated cone along local +z
	PrimSphere                               // sphere centered at local origin
)

// TaperedCylinderData represents a branch segment body: a truncated
// cone with its base at the local origin extending along +z.
type TaperedCylinderData struct {
	PrimKind     PrimitiveKind `json:"prim_kind"`
	Height       float64       `json:"height"`
	RadiusBottom float64       `json:"radius_bottom"`
	RadiusTop    float64       `json:"radius_top"`
	Segments     int           `json:"segments"` // tessellation resolution hint
}

func (TaperedCylinderData) nodeData() {}

// SphereData represents a sphere centered at the local origin.
type SphereData struct {
	PrimKind PrimitiveKind `json:"prim_kind"`
	Radius   float64       `json:"radius"`
	Segments int           `json:"segments"`
}

func (SphereData) nodeData() {}

// ---------------------------------------------------------------------------
// Transform
// ---------------------------------------------------------------------------

// TransformData places its children: children are rotated first, then
// translated. Rotation is Euler angles in degrees around X, Y, Z.
type TransformData struct {
	Translation *Vec3 `json:"translation,omitempty"`
	Rotation    *Vec3 `json:"rotation,omitempty"`
}

func (TransformData) nodeData() {}

// ---------------------------------------------------------------------------
// Color
// ---------------------------------------------------------------------------

// ColorData tags all descendant primitives with a color. The innermost
// enclosing color node wins.
type ColorData struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

func (ColorData) nodeData() {}

// ---------------------------------------------------------------------------
// Group
// ---------------------------------------------------------------------------

// GroupData represents a logical grouping of scene nodes.
type GroupData struct {
	Description string `json:"description,omitempty"`
}

func (GroupData) nodeData() {}
