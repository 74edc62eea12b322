// Package steer computes the environmental influence direction used to
// bias branch growth toward attractor points and away from repeller
// points.
package steer

import "github.com/phloem/arbor/pkg/scene"

// ClosestPoint returns the point in pts nearest to q by Euclidean
// distance. Ties are broken by first occurrence in list order. The
// second return value is false when pts is empty.
func ClosestPoint(q scene.Vec3, pts []scene.Vec3) (scene.Vec3, bool) {
	if len(pts) == 0 {
		return scene.Vec3{}, false
	}
	best := pts[0]
	bestDist := q.Distance(pts[0])
	for _, p := range pts[1:] {
		if d := q.Distance(p); d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best, true
}

// InfluenceVector returns a unit vector combining attraction toward the
// nearest attract point and repulsion away from the nearest repel
// point. With no points, or when the two contributions cancel exactly,
// it returns the zero vector.
func InfluenceVector(pos scene.Vec3, attract, repel []scene.Vec3) scene.Vec3 {
	var sum scene.Vec3

	if p, ok := ClosestPoint(pos, attract); ok {
		sum = sum.Add(p.Sub(pos).Normalize())
	}
	if p, ok := ClosestPoint(pos, repel); ok {
		sum = sum.Add(pos.Sub(p).Normalize())
	}

	// Normalize guards the zero vector itself.
	return sum.Normalize()
}
