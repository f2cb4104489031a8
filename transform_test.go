package scrollfx

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- localTransform ---

func TestLocalTransformIdentity(t *testing.T) {
	n := NewContainer("test")
	assertMatrix(t, "identity", n.localTransform(), identityTransform)
}

func TestLocalTransformTranslation(t *testing.T) {
	n := NewContainer("test")
	n.X, n.Y = 10, 20
	n.TranslateX, n.TranslateY = 5, -5
	assertMatrix(t, "translation", n.localTransform(), [6]float64{1, 0, 0, 1, 15, 15})
}

func TestLocalTransformScaleAroundCenter(t *testing.T) {
	n := NewNode("test", 10, 10)
	n.Scale = 2
	// The center (5,5) stays put: 5 - 2*5 = -5.
	assertMatrix(t, "scale", n.localTransform(), [6]float64{2, 0, 0, 2, -5, -5})
}

func TestLocalTransformRotation90AroundCenter(t *testing.T) {
	n := NewNode("test", 20, 20)
	n.Rotation = 90
	got := n.localTransform()
	assertMatrix(t, "rot90", got, [6]float64{0, 1, -1, 0, 20, 0})
	cx, cy := transformPoint(got, 10, 10)
	assertNear(t, "center x", cx, 10)
	assertNear(t, "center y", cy, 10)
}

func TestLocalTransformTiltForeshortens(t *testing.T) {
	n := NewNode("test", 100, 40)
	n.RotateY = 60
	got := n.localTransform()
	assertNear(t, "a", got[0], 0.5)
	assertNear(t, "d", got[3], 1)
	assertNear(t, "tx", got[4], 25)

	n.RotateY = 0
	n.RotateX = 60
	got = n.localTransform()
	assertNear(t, "a", got[0], 1)
	assertNear(t, "d", got[3], 0.5)
	assertNear(t, "ty", got[5], 10)
}

// --- Affine helpers ---

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 0.5, -1, 3, 7, 9}
	assertMatrix(t, "I*m", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "m*I", multiplyAffine(m, identityTransform), m)
}

func TestInvertAffineRoundTrip(t *testing.T) {
	m := [6]float64{2, 0.5, -1, 3, 7, 9}
	assertMatrix(t, "m*inv", multiplyAffine(m, invertAffine(m)), identityTransform)
}

func TestInvertAffineSingular(t *testing.T) {
	m := [6]float64{0, 0, 0, 0, 5, 5}
	assertMatrix(t, "singular", invertAffine(m), identityTransform)
}

// --- World transforms ---

func TestWorldTransformComposesParents(t *testing.T) {
	parent := NewContainer("parent")
	parent.X, parent.Y = 100, 50
	child := NewContainer("child")
	child.X, child.Y = 10, 20
	parent.AddChild(child)

	m := worldTransform(child)
	assertNear(t, "tx", m[4], 110)
	assertNear(t, "ty", m[5], 70)
}

func TestWorldAlphaMultiplies(t *testing.T) {
	parent := NewContainer("parent")
	parent.Alpha = 0.5
	child := NewContainer("child")
	child.Alpha = 0.5
	parent.AddChild(child)
	assertNear(t, "alpha", worldAlpha(child), 0.25)
}

func TestLocalToDocumentRoundTrip(t *testing.T) {
	parent := NewNode("parent", 200, 200)
	parent.X, parent.Y = 40, 300
	parent.Rotation = 30
	child := NewNode("child", 50, 50)
	child.X, child.Y = 20, 10
	child.Scale = 1.5
	child.TranslateY = 12
	parent.AddChild(child)

	dx, dy := child.LocalToDocument(7, 9)
	lx, ly := child.DocumentToLocal(dx, dy)
	if !approxEqual(lx, 7, 1e-6) || !approxEqual(ly, 9, 1e-6) {
		t.Errorf("round trip = (%v,%v), want (7,9)", lx, ly)
	}
}
