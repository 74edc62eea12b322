// Package scene defines the geometry scene graph emitted by the tree
// grower. A scene is a DAG of primitive, transform, color and group
// nodes; backends (see pkg/tessellate and pkg/kernel) walk it to
// produce meshes or solids. Scenes are built once and never mutated
// after generation.
package scene
