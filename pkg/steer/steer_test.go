package steer

import (
	"math"
	"testing"

	"github.com/phloem/arbor/pkg/scene"
)

func TestClosestPoint(t *testing.T) {
	pts := []scene.Vec3{{X: 0, Y: 0, Z: 0}, {X: 10, Y: 0, Z: 0}}
	q := scene.Vec3{X: 1, Y: 0, Z: 0}

	p, ok := ClosestPoint(q, pts)
	if !ok {
		t.Fatal("expected a point to be found")
	}
	if p != (scene.Vec3{X: 0, Y: 0, Z: 0}) {
		t.Errorf("ClosestPoint = %v, want (0,0,0)", p)
	}
}

func TestClosestPointEmpty(t *testing.T) {
	_, ok := ClosestPoint(scene.Vec3{X: 1, Y: 2, Z: 3}, nil)
	if ok {
		t.Fatal("empty point list must report not-found")
	}
}

func TestClosestPointTieBreaksFirst(t *testing.T) {
	// Two points equidistant from the query: first in list order wins.
	pts := []scene.Vec3{{X: -5, Y: 0, Z: 0}, {X: 5, Y: 0, Z: 0}}
	p, ok := ClosestPoint(scene.Vec3{}, pts)
	if !ok {
		t.Fatal("expected a point to be found")
	}
	if p != pts[0] {
		t.Errorf("tie broken to %v, want first point %v", p, pts[0])
	}
}

func TestClosestPointAtOrigin(t *testing.T) {
	// A real environment point at the origin must still be found; the
	// search uses an explicit found flag, not a zero-vector sentinel.
	pts := []scene.Vec3{{X: 0, Y: 0, Z: 0}}
	p, ok := ClosestPoint(scene.Vec3{X: 100, Y: 100, Z: 100}, pts)
	if !ok {
		t.Fatal("point at origin must be found")
	}
	if !p.IsZero() {
		t.Errorf("ClosestPoint = %v, want origin", p)
	}
}

func TestInfluenceVectorAttract(t *testing.T) {
	v := InfluenceVector(scene.Vec3{}, []scene.Vec3{{X: 0, Y: 0, Z: 100}}, nil)
	if v != (scene.Vec3{X: 0, Y: 0, Z: 1}) {
		t.Errorf("InfluenceVector = %v, want (0,0,1)", v)
	}
}

func TestInfluenceVectorRepel(t *testing.T) {
	v := InfluenceVector(scene.Vec3{}, nil, []scene.Vec3{{X: 0, Y: 0, Z: 100}})
	if v != (scene.Vec3{X: 0, Y: 0, Z: -1}) {
		t.Errorf("InfluenceVector = %v, want (0,0,-1)", v)
	}
}

func TestInfluenceVectorUnitNorm(t *testing.T) {
	attract := []scene.Vec3{{X: 30, Y: 10, Z: 50}, {X: -5, Y: 0, Z: 80}}
	repel := []scene.Vec3{{X: 0, Y: -40, Z: 20}}
	v := InfluenceVector(scene.Vec3{X: 1, Y: 2, Z: 3}, attract, repel)
	if math.Abs(v.Length()-1) > 1e-12 {
		t.Errorf("norm = %f, want 1", v.Length())
	}
}

func TestInfluenceVectorZeroCases(t *testing.T) {
	// No points at all.
	if v := InfluenceVector(scene.Vec3{X: 1, Y: 1, Z: 1}, nil, nil); !v.IsZero() {
		t.Errorf("no points: InfluenceVector = %v, want zero", v)
	}

	// Exact cancellation: attractor and repeller in the same direction.
	attract := []scene.Vec3{{X: 0, Y: 0, Z: 10}}
	repel := []scene.Vec3{{X: 0, Y: 0, Z: 20}}
	if v := InfluenceVector(scene.Vec3{}, attract, repel); !v.IsZero() {
		t.Errorf("cancellation: InfluenceVector = %v, want zero", v)
	}
}

func TestInfluenceVectorNearestSelection(t *testing.T) {
	// The far attractor to -x must lose to the near one at +x.
	attract := []scene.Vec3{{X: -1000, Y: 0, Z: 0}, {X: 10, Y: 0, Z: 0}}
	v := InfluenceVector(scene.Vec3{}, attract, nil)
	if v != (scene.Vec3{X: 1, Y: 0, Z: 0}) {
		t.Errorf("InfluenceVector = %v, want (1,0,0)", v)
	}
}
